package models

import "time"

// ChatRole identifies the speaker of a chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one turn of an assistant conversation. Chat history lives in
// memory for the session and is never written to the persisted store.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// AttendanceInsight is one risk assessment produced by the assistant.
type AttendanceInsight struct {
	Target    string `json:"target"`
	RiskLevel string `json:"riskLevel"`
	Analysis  string `json:"analysis"`
	Action    string `json:"action"`
}

// AttendanceReport is the structured answer of the insights request.
type AttendanceReport struct {
	Insights     []AttendanceInsight `json:"insights"`
	GeneralTrend string              `json:"generalTrend"`
}
