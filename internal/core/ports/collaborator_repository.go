package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// CollaboratorRepository defines persistence for per-event collaborator assignments.
type CollaboratorRepository interface {
	Assign(ctx context.Context, assignment *domain.CollaboratorAssignment) error
	Remove(ctx context.Context, eventID, userID string) error
	// Exists reports whether an assignment matches the exact event id.
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.CollaboratorAssignment, error)
}
