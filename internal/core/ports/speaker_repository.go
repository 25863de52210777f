package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// SpeakerRepository defines persistence for speaker applications.
type SpeakerRepository interface {
	Create(ctx context.Context, app *domain.SpeakerApplication) (*domain.SpeakerApplication, error)
	FindByID(ctx context.Context, id string) (*domain.SpeakerApplication, error)
	FindByEventAndUser(ctx context.Context, eventID, userID string) (*domain.SpeakerApplication, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.SpeakerApplication, error)
	Update(ctx context.Context, app *domain.SpeakerApplication) error
}
