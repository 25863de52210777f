package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// ApplyInput is a new talk proposal.
type ApplyInput struct {
	Title    string
	Abstract string
}

// UpdateApplicationInput carries the fields a speaker may amend while the
// application is still pending.
type UpdateApplicationInput struct {
	Title    *string
	Abstract *string
}

// SpeakerService defines use-case operations for speaker applications.
type SpeakerService interface {
	Apply(ctx context.Context, claims *domain.SessionClaims, eventID string, input ApplyInput) (*domain.SpeakerApplication, error)
	Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.SpeakerApplication, error)
	Update(ctx context.Context, claims *domain.SessionClaims, id string, input UpdateApplicationInput) (*domain.SpeakerApplication, error)
	// Review accepts or rejects a pending application; leader-only.
	Review(ctx context.Context, claims *domain.SessionClaims, id string, decision domain.ApplicationStatus) (*domain.SpeakerApplication, error)
	ListByEvent(ctx context.Context, claims *domain.SessionClaims, eventID string) ([]*domain.SpeakerApplication, error)
}
