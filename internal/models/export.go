package models

// ExportDocument is the backup document produced by the settings export.
type ExportDocument struct {
	Users    []User    `json:"users" yaml:"users"`
	Posts    []Post    `json:"posts" yaml:"posts"`
	Children []Child   `json:"children" yaml:"children"`
	Meetings []Meeting `json:"meetings" yaml:"meetings"`
}
