package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// SponsorInput carries sponsor fields for create and update.
type SponsorInput struct {
	Name    string
	Tier    string
	Website string
}

// SponsorService defines use-case operations for event sponsors.
type SponsorService interface {
	Create(ctx context.Context, claims *domain.SessionClaims, eventID string, input SponsorInput) (*domain.Sponsor, error)
	Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.Sponsor, error)
	ListByEvent(ctx context.Context, claims *domain.SessionClaims, eventID string) ([]*domain.Sponsor, error)
	Update(ctx context.Context, claims *domain.SessionClaims, id string, input SponsorInput) (*domain.Sponsor, error)
	Delete(ctx context.Context, claims *domain.SessionClaims, id string) error
}
