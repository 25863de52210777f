package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/communityos/eventhub/internal/core/authz"
	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/core/ports"
)

// DedupChecker abstracts the scan-replay store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, eventID, userID string, ts time.Time) (bool, error)
	Mark(ctx context.Context, eventID, userID string, ts time.Time) error
}

type checkinService struct {
	checkins  ports.CheckinRepository
	events    ports.EventRepository
	dedup     DedupChecker
	evaluator *authz.Evaluator
	log       zerolog.Logger
}

// NewCheckinService returns a CheckinService implementation.
func NewCheckinService(
	checkins ports.CheckinRepository,
	events ports.EventRepository,
	dedup DedupChecker,
	evaluator *authz.Evaluator,
	log zerolog.Logger,
) ports.CheckinService {
	return &checkinService{
		checkins:  checkins,
		events:    events,
		dedup:     dedup,
		evaluator: evaluator,
		log:       log,
	}
}

// Register creates a registration for the claims holder. Only published
// events with remaining capacity accept registrations.
func (s *checkinService) Register(ctx context.Context, claims *domain.SessionClaims, eventID string) (*domain.Checkin, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceCheckin, authz.ActionCreate, "") {
		return nil, domain.ErrForbidden
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.EventPublished {
		return nil, domain.ErrEventNotFound
	}

	if existing, err := s.checkins.FindByEventAndUser(ctx, eventID, claims.UserID); err == nil && existing != nil {
		return nil, domain.ErrAlreadyRegistered
	}

	if event.Capacity > 0 {
		count, err := s.checkins.CountByEvent(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("register: count registrations: %w", err)
		}
		if count >= int64(event.Capacity) {
			return nil, domain.ErrEventFull
		}
	}

	created, err := s.checkins.Create(ctx, &domain.Checkin{
		EventID:      eventID,
		UserID:       claims.UserID,
		RegisteredAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("event_id", eventID).Str("user_id", claims.UserID).Msg("attendee registered")
	return created, nil
}

// ListByEvent returns the roster. Allowed for the owning leader and for
// collaborators assigned to this exact event.
func (s *checkinService) ListByEvent(ctx context.Context, claims *domain.SessionClaims, eventID string) ([]*domain.Checkin, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceCheckin, authz.ActionRead, eventID) {
		return nil, domain.ErrForbidden
	}
	return s.checkins.ListByEvent(ctx, eventID)
}

// AuthorizeScan verifies checkin permission against the exact event. Only
// the owning group's leader and collaborators assigned to this event pass;
// a coarse role check is not enough for a mutation.
func (s *checkinService) AuthorizeScan(ctx context.Context, claims *domain.SessionClaims, eventID string) error {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceCheckin, authz.ActionCheckin, eventID) {
		return domain.ErrForbidden
	}
	return nil
}

// Process validates, deduplicates, and persists a single door scan.
func (s *checkinService) Process(ctx context.Context, scan ports.CheckinScanInput) error {
	// 1. Replay check — silently skip scans already handled.
	isDup, err := s.dedup.IsDuplicate(ctx, scan.EventID, scan.UserID, scan.ScannedAt)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", scan.EventID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("event_id", scan.EventID).Str("user_id", scan.UserID).Msg("duplicate scan skipped")
		return nil
	}

	// 2. The registration must exist.
	checkin, err := s.checkins.FindByEventAndUser(ctx, scan.EventID, scan.UserID)
	if err != nil {
		return fmt.Errorf("process scan: %w", domain.ErrNotRegistered)
	}

	// 3. Re-presenting an already checked-in badge is a no-op.
	if checkin.CheckedIn() {
		s.log.Debug().Str("event_id", scan.EventID).Str("user_id", scan.UserID).Msg("already checked in")
		return nil
	}

	// 4. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, scan.EventID, scan.UserID, scan.ScannedAt); markErr != nil {
		s.log.Warn().Err(markErr).Str("event_id", scan.EventID).Msg("failed to set dedup key")
	}

	// 5. Atomically stamp the check-in.
	if err := s.checkins.MarkCheckedIn(ctx, scan.EventID, scan.UserID, scan.ScannedAt, scan.Source); err != nil {
		return fmt.Errorf("process scan: mark checked in: %w", err)
	}

	s.log.Info().
		Str("event_id", scan.EventID).
		Str("user_id", scan.UserID).
		Str("source", scan.Source).
		Msg("attendee checked in")

	return nil
}
