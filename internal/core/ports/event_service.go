package ports

import (
	"context"
	"time"

	"github.com/communityos/eventhub/internal/core/domain"
)

// CreateEventInput carries all data needed to create a new event.
type CreateEventInput struct {
	Title       string
	Description string
	Venue       string
	StartsAt    time.Time
	EndsAt      time.Time
	Capacity    int
}

// UpdateEventInput carries the mutable event fields. Nil pointers leave the
// stored value unchanged.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Venue       *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	Capacity    *int
}

// ListEventsInput carries all parameters for the list endpoint.
type ListEventsInput struct {
	UserGroupID string
	Status      string
	Search      string
	Page        int
	Limit       int
}

// ListEventsResult is returned by List.
type ListEventsResult struct {
	Items      []*domain.Event
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// EventService defines use-case operations for events. Every mutating
// operation takes the caller's session claims and re-checks permission
// against the concrete resource id server-side.
type EventService interface {
	Create(ctx context.Context, claims *domain.SessionClaims, input CreateEventInput) (*domain.Event, error)
	Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.Event, error)
	List(ctx context.Context, claims *domain.SessionClaims, input ListEventsInput) (*ListEventsResult, error)
	Update(ctx context.Context, claims *domain.SessionClaims, id string, input UpdateEventInput) (*domain.Event, error)
	Transition(ctx context.Context, claims *domain.SessionClaims, id string, next domain.EventStatus) (*domain.Event, error)
	Delete(ctx context.Context, claims *domain.SessionClaims, id string) error
}
