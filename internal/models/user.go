package models

import "time"

// Role is the member's standing inside the ministry.
type Role string

const (
	RoleServo Role = "Servo"
	RoleLider Role = "Líder"
	RoleAdmin Role = "Admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleServo, RoleLider, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered member. Username is the login key; there is no password.
type User struct {
	ID         string     `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Username   string     `json:"username" yaml:"username"`
	Department Department `json:"department" yaml:"department"`
	Role       Role       `json:"role" yaml:"role"`
	JoinedAt   time.Time  `json:"joinedAt" yaml:"joinedAt"`
	Avatar     string     `json:"avatar,omitempty" yaml:"avatar,omitempty"`
}
