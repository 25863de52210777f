package domain

import "time"

// CollaboratorAssignment grants a collaborator access to one specific event.
// The match is exact by event id, never group-wide.
type CollaboratorAssignment struct {
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
