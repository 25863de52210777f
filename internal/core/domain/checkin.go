package domain

import (
	"errors"
	"time"
)

var ErrCheckinNotFound = errors.New("check-in not found")
var ErrAlreadyRegistered = errors.New("already registered for event")
var ErrNotRegistered = errors.New("not registered for event")

// Checkin is an attendee's registration record for a single event.
// CheckedInAt is nil until the attendee is marked present at the door.
type Checkin struct {
	ID           string     `json:"id"`
	EventID      string     `json:"event_id"`
	UserID       string     `json:"user_id"`
	RegisteredAt time.Time  `json:"registered_at"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
	Source       string     `json:"source,omitempty"`
}

// CheckedIn reports whether the attendee has been marked present.
func (c *Checkin) CheckedIn() bool {
	return c.CheckedInAt != nil
}
