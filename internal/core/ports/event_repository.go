package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// ListEventsFilter carries all query parameters for listing events.
type ListEventsFilter struct {
	UserGroupID string // optional: scope to one group
	Status      string // optional: filter by event status
	Search      string // optional: partial match on title or venue
	Page        int    // 1-based
	Limit       int    // max rows per page (capped at 100 by service)
}

// EventRepository defines persistence operations for events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// List returns a page of events matching filter and the total count.
	List(ctx context.Context, filter ListEventsFilter) ([]*domain.Event, int64, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id string) error
}
