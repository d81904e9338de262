package models

// DefaultMeetingLocation is used when a meeting is created without a location.
const DefaultMeetingLocation = "Sede Central - MIR"

// Meeting is an agenda item ("pauta") scoped to one department.
// Date is a display string, not a parsed timestamp.
type Meeting struct {
	ID       string     `json:"id" yaml:"id"`
	Dept     Department `json:"dept" yaml:"dept"`
	Title    string     `json:"title" yaml:"title"`
	Date     string     `json:"date" yaml:"date"`
	Location string     `json:"location" yaml:"location"`
}
