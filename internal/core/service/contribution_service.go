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

type contributionService struct {
	contributions ports.ContributionRepository
	events        ports.EventRepository
	evaluator     *authz.Evaluator
	log           zerolog.Logger
}

// NewContributionService returns a ContributionService implementation.
func NewContributionService(contributions ports.ContributionRepository, events ports.EventRepository, evaluator *authz.Evaluator, log zerolog.Logger) ports.ContributionService {
	return &contributionService{contributions: contributions, events: events, evaluator: evaluator, log: log}
}

// Create records a contribution against an event of the caller's led group.
func (s *contributionService) Create(ctx context.Context, claims *domain.SessionClaims, eventID string, input ports.ContributionInput) (*domain.Contribution, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceContribution, authz.ActionCreate, "") {
		return nil, domain.ErrForbidden
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.UserGroupID != claims.LedGroupID() {
		return nil, domain.ErrForbidden
	}

	if input.Kind != domain.ContributionMonetary && input.Kind != domain.ContributionInKind {
		return nil, fmt.Errorf("%w: contribution kind %q", domain.ErrInvalidTransition, input.Kind)
	}

	contribution := &domain.Contribution{
		EventID:     eventID,
		UserID:      claims.UserID,
		Kind:        input.Kind,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if input.Kind == domain.ContributionMonetary {
		contribution.AmountCents = input.AmountCents
		contribution.Currency = input.Currency
	}

	created, err := s.contributions.Create(ctx, contribution)
	if err != nil {
		return nil, fmt.Errorf("create contribution: %w", err)
	}

	s.log.Info().Str("contribution_id", created.ID).Str("event_id", eventID).Str("kind", string(input.Kind)).Msg("contribution recorded")
	return created, nil
}

func (s *contributionService) Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.Contribution, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceContribution, authz.ActionRead, id) {
		return nil, domain.ErrContributionNotFound
	}
	return s.contributions.FindByID(ctx, id)
}

func (s *contributionService) ListByEvent(ctx context.Context, claims *domain.SessionClaims, eventID string) ([]*domain.Contribution, error) {
	// Contribution records are group-internal: the list is gated by the
	// event, so only the owning leader passes.
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !claims.Authenticated() || event.UserGroupID != claims.LedGroupID() {
		return nil, domain.ErrForbidden
	}
	return s.contributions.ListByEvent(ctx, eventID)
}

func (s *contributionService) Delete(ctx context.Context, claims *domain.SessionClaims, id string) error {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceContribution, authz.ActionDelete, id) {
		return domain.ErrForbidden
	}
	return s.contributions.Delete(ctx, id)
}
