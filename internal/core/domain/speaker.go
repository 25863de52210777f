package domain

import (
	"errors"
	"time"
)

// ApplicationStatus is the review state of a speaker application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

var ErrApplicationNotFound = errors.New("speaker application not found")
var ErrApplicationExists = errors.New("speaker application already submitted")
var ErrApplicationClosed = errors.New("speaker application already reviewed")

// SpeakerApplication is a talk proposal submitted by a speaker for an event.
type SpeakerApplication struct {
	ID        string            `json:"id"`
	EventID   string            `json:"event_id"`
	UserID    string            `json:"user_id"`
	Title     string            `json:"title"`
	Abstract  string            `json:"abstract"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
