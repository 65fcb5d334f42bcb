package domain

import "time"

// AuthEventType names an authentication outcome recorded in the audit trail.
type AuthEventType string

const (
	AuthEventRegistered      AuthEventType = "registered"
	AuthEventLogin           AuthEventType = "login"
	AuthEventLogout          AuthEventType = "logout"
	AuthEventResetRequested  AuthEventType = "reset_requested"
	AuthEventPasswordChanged AuthEventType = "password_changed"
)

// AuthEvent is an append-only audit record. UserID is zero when the actor
// could not be resolved (unknown login, unknown reset email).
type AuthEvent struct {
	Type       AuthEventType
	UserID     int64
	Identifier string
	Success    bool
	Reason     string
	OccurredAt time.Time
}
