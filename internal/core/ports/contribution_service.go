package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// ContributionInput records a monetary or in-kind contribution.
type ContributionInput struct {
	Kind        domain.ContributionKind
	AmountCents int64
	Currency    string
	Description string
}

// ContributionService defines use-case operations for contributions.
type ContributionService interface {
	Create(ctx context.Context, claims *domain.SessionClaims, eventID string, input ContributionInput) (*domain.Contribution, error)
	Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.Contribution, error)
	ListByEvent(ctx context.Context, claims *domain.SessionClaims, eventID string) ([]*domain.Contribution, error)
	Delete(ctx context.Context, claims *domain.SessionClaims, id string) error
}
