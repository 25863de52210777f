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

type sponsorService struct {
	sponsors  ports.SponsorRepository
	events    ports.EventRepository
	evaluator *authz.Evaluator
	log       zerolog.Logger
}

// NewSponsorService returns a SponsorService implementation.
func NewSponsorService(sponsors ports.SponsorRepository, events ports.EventRepository, evaluator *authz.Evaluator, log zerolog.Logger) ports.SponsorService {
	return &sponsorService{sponsors: sponsors, events: events, evaluator: evaluator, log: log}
}

// Create attaches a sponsor to an event. The event must belong to the
// caller's led group; re-checked against the concrete event, not coarsely.
func (s *sponsorService) Create(ctx context.Context, claims *domain.SessionClaims, eventID string, input ports.SponsorInput) (*domain.Sponsor, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceSponsor, authz.ActionCreate, "") {
		return nil, domain.ErrForbidden
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.UserGroupID != claims.LedGroupID() {
		return nil, domain.ErrForbidden
	}

	created, err := s.sponsors.Create(ctx, &domain.Sponsor{
		EventID:     eventID,
		UserGroupID: event.UserGroupID,
		Name:        input.Name,
		Tier:        input.Tier,
		Website:     input.Website,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create sponsor: %w", err)
	}

	s.log.Info().Str("sponsor_id", created.ID).Str("event_id", eventID).Msg("sponsor added")
	return created, nil
}

func (s *sponsorService) Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.Sponsor, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceSponsor, authz.ActionRead, id) {
		return nil, domain.ErrSponsorNotFound
	}
	return s.sponsors.FindByID(ctx, id)
}

func (s *sponsorService) ListByEvent(ctx context.Context, claims *domain.SessionClaims, eventID string) ([]*domain.Sponsor, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceSponsor, authz.ActionRead, "") {
		return nil, domain.ErrForbidden
	}
	return s.sponsors.ListByEvent(ctx, eventID)
}

func (s *sponsorService) Update(ctx context.Context, claims *domain.SessionClaims, id string, input ports.SponsorInput) (*domain.Sponsor, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceSponsor, authz.ActionUpdate, id) {
		return nil, domain.ErrForbidden
	}

	sponsor, err := s.sponsors.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sponsor.Name = input.Name
	sponsor.Tier = input.Tier
	sponsor.Website = input.Website

	if err := s.sponsors.Update(ctx, sponsor); err != nil {
		return nil, fmt.Errorf("update sponsor: %w", err)
	}
	return sponsor, nil
}

func (s *sponsorService) Delete(ctx context.Context, claims *domain.SessionClaims, id string) error {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceSponsor, authz.ActionDelete, id) {
		return domain.ErrForbidden
	}
	return s.sponsors.Delete(ctx, id)
}
