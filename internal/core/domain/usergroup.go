package domain

import (
	"errors"
	"time"
)

var ErrGroupNotFound = errors.New("user group not found")

// UserGroup is a local community chapter. Exactly one leader runs it; events,
// sponsors, and contributions are owned through it.
type UserGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city,omitempty"`
	LeaderID  string    `json:"leader_id"`
	CreatedAt time.Time `json:"created_at"`
}
