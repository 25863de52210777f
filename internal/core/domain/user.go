package domain

import (
	"errors"
	"time"
)

// Role classifies an account. Every user holds exactly one role; it changes
// only through administrative action, never during a session.
type Role string

const (
	RoleCommunityLeader Role = "COMMUNITY_LEADER"
	RoleSpeaker         Role = "SPEAKER"
	RoleAttendee        Role = "ATTENDEE"
	RoleCollaborator    Role = "COLLABORATOR"
)

// Valid reports whether r is one of the four enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCommunityLeader, RoleSpeaker, RoleAttendee, RoleCollaborator:
		return true
	}
	return false
}

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// ErrIdentityNotFound signals that session claims could not be built because
// the backing identity no longer resolves (deleted or revoked mid-session).
// Callers must force re-authentication; this is never retried silently.
var ErrIdentityNotFound = errors.New("identity not found")

// User is the durable identity record.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	UserGroupID  string    `json:"user_group_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
