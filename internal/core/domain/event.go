package domain

import (
	"errors"
	"time"
)

// EventStatus represents the lifecycle state of an event.
type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCompleted EventStatus = "completed"
	EventCancelled EventStatus = "cancelled"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[EventStatus][]EventStatus{
	EventDraft:     {EventPublished, EventCancelled},
	EventPublished: {EventCompleted, EventCancelled},
}

var ErrEventNotFound = errors.New("event not found")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrEventFull = errors.New("event is at capacity")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s EventStatus) CanTransitionTo(next EventStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Event is a community gathering owned by a user group.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Venue       string      `json:"venue"`
	StartsAt    time.Time   `json:"starts_at"`
	EndsAt      time.Time   `json:"ends_at"`
	Capacity    int         `json:"capacity"`
	UserGroupID string      `json:"user_group_id"`
	CreatedBy   string      `json:"created_by"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
