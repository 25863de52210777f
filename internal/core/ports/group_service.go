package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// UpdateGroupInput carries the mutable group fields.
type UpdateGroupInput struct {
	Name *string
	City *string
}

// GroupService defines use-case operations for user groups, including
// per-event collaborator assignments (collaborators belong to the group's
// door-staff management, not to events as such).
type GroupService interface {
	Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.UserGroup, error)
	List(ctx context.Context, claims *domain.SessionClaims) ([]*domain.UserGroup, error)
	Update(ctx context.Context, claims *domain.SessionClaims, id string, input UpdateGroupInput) (*domain.UserGroup, error)
	AssignCollaborator(ctx context.Context, claims *domain.SessionClaims, eventID, userID string) error
	RemoveCollaborator(ctx context.Context, claims *domain.SessionClaims, eventID, userID string) error
	ListCollaborators(ctx context.Context, claims *domain.SessionClaims, eventID string) ([]*domain.CollaboratorAssignment, error)
}
