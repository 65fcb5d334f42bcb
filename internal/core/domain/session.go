package domain

import "time"

// SessionData is the server-side state behind a session cookie.
type SessionData struct {
	UserID    int64     `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
