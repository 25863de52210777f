package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// ContributionRepository defines persistence for monetary and in-kind contributions.
type ContributionRepository interface {
	Create(ctx context.Context, contribution *domain.Contribution) (*domain.Contribution, error)
	FindByID(ctx context.Context, id string) (*domain.Contribution, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Contribution, error)
	Delete(ctx context.Context, id string) error
}
