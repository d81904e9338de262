package models

// ClassLevel is the children's-ministry class a child attends.
type ClassLevel string

const (
	ClassJardim ClassLevel = "Jardim"
	ClassJunior ClassLevel = "Junior"
	ClassSenior ClassLevel = "Sênior"
)

// Valid reports whether c is a known class level.
func (c ClassLevel) Valid() bool {
	switch c {
	case ClassJardim, ClassJunior, ClassSenior:
		return true
	}
	return false
}

// ChildStatus marks whether a registry entry is current.
type ChildStatus string

const (
	ChildActive   ChildStatus = "active"
	ChildInactive ChildStatus = "inactive"
)

// Valid reports whether s is a known status.
func (s ChildStatus) Valid() bool {
	return s == ChildActive || s == ChildInactive
}

// Child is an entry in the children's registry.
type Child struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Age        int         `json:"age" yaml:"age"`
	ClassLevel ClassLevel  `json:"classLevel" yaml:"classLevel"`
	JoinedAt   string      `json:"joinedAt" yaml:"joinedAt"`
	Status     ChildStatus `json:"status" yaml:"status"`
}

// AttendanceRecord is one Sunday's presence mark for a child.
// Nothing in the service populates these; they are only accepted as input to insights.
type AttendanceRecord struct {
	ID      string `json:"id"`
	ChildID string `json:"childId"`
	Date    string `json:"date"`
	Present bool   `json:"present"`
}
