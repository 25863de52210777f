package ports

import (
	"context"
	"time"

	"github.com/communityos/eventhub/internal/core/domain"
)

// CheckinRepository defines persistence for registrations and door check-ins.
type CheckinRepository interface {
	Create(ctx context.Context, checkin *domain.Checkin) (*domain.Checkin, error)
	FindByID(ctx context.Context, id string) (*domain.Checkin, error)
	FindByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Checkin, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Checkin, error)
	CountByEvent(ctx context.Context, eventID string) (int64, error)
	// MarkCheckedIn atomically stamps the registration as present. It is a
	// no-op returning domain.ErrCheckinNotFound when no registration exists.
	MarkCheckedIn(ctx context.Context, eventID, userID string, at time.Time, source string) error
	Delete(ctx context.Context, id string) error
}
