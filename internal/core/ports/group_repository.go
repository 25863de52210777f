package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// GroupRepository defines persistence for user groups.
type GroupRepository interface {
	Create(ctx context.Context, group *domain.UserGroup) (*domain.UserGroup, error)
	FindByID(ctx context.Context, id string) (*domain.UserGroup, error)
	// FindByLeader returns the group the user currently leads, or
	// domain.ErrGroupNotFound when they lead none.
	FindByLeader(ctx context.Context, leaderID string) (*domain.UserGroup, error)
	Update(ctx context.Context, group *domain.UserGroup) error
	List(ctx context.Context) ([]*domain.UserGroup, error)
}
