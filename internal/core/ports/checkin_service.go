package ports

import (
	"context"
	"time"

	"github.com/communityos/eventhub/internal/core/domain"
)

// CheckinScanInput is a single door scan passed from the transport layer to
// the check-in pipeline.
type CheckinScanInput struct {
	EventID   string
	UserID    string
	ScannedAt time.Time
	Source    string
}

// CheckinService covers attendee registration and the door-scan pipeline.
type CheckinService interface {
	// Register creates a registration for the claims holder on the event.
	Register(ctx context.Context, claims *domain.SessionClaims, eventID string) (*domain.Checkin, error)
	// ListByEvent returns the event roster for leaders and collaborators.
	ListByEvent(ctx context.Context, claims *domain.SessionClaims, eventID string) ([]*domain.Checkin, error)
	// AuthorizeScan checks that the claims holder may check attendees in at
	// the given event. Scans mutate check-in state, so the transport layer
	// must call this with the concrete event id before enqueueing.
	AuthorizeScan(ctx context.Context, claims *domain.SessionClaims, eventID string) error
	// Process marks one scanned attendee as present: deduplicates replayed
	// scans, verifies the registration, and stamps the check-in time.
	Process(ctx context.Context, scan CheckinScanInput) error
}
