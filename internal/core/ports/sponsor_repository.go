package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// SponsorRepository defines persistence for event sponsors.
type SponsorRepository interface {
	Create(ctx context.Context, sponsor *domain.Sponsor) (*domain.Sponsor, error)
	FindByID(ctx context.Context, id string) (*domain.Sponsor, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Sponsor, error)
	Update(ctx context.Context, sponsor *domain.Sponsor) error
	Delete(ctx context.Context, id string) error
}
