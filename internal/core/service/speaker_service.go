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

type speakerService struct {
	applications ports.SpeakerRepository
	events       ports.EventRepository
	evaluator    *authz.Evaluator
	log          zerolog.Logger
}

// NewSpeakerService returns a SpeakerService implementation.
func NewSpeakerService(applications ports.SpeakerRepository, events ports.EventRepository, evaluator *authz.Evaluator, log zerolog.Logger) ports.SpeakerService {
	return &speakerService{applications: applications, events: events, evaluator: evaluator, log: log}
}

// Apply submits a talk proposal. Submission is the one speaker operation not
// covered by the decision table (the table scopes speakers to records they
// already own), so the role gate lives here: only speaker accounts apply,
// and only to published events.
func (s *speakerService) Apply(ctx context.Context, claims *domain.SessionClaims, eventID string, input ports.ApplyInput) (*domain.SpeakerApplication, error) {
	if !claims.Authenticated() || claims.Role != domain.RoleSpeaker {
		return nil, domain.ErrForbidden
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.EventPublished {
		return nil, domain.ErrEventNotFound
	}

	if existing, err := s.applications.FindByEventAndUser(ctx, eventID, claims.UserID); err == nil && existing != nil {
		return nil, domain.ErrApplicationExists
	}

	now := time.Now().UTC()
	created, err := s.applications.Create(ctx, &domain.SpeakerApplication{
		EventID:   eventID,
		UserID:    claims.UserID,
		Title:     input.Title,
		Abstract:  input.Abstract,
		Status:    domain.ApplicationPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	s.log.Info().Str("application_id", created.ID).Str("event_id", eventID).Msg("speaker application submitted")
	return created, nil
}

func (s *speakerService) Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.SpeakerApplication, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceSpeaker, authz.ActionRead, id) {
		return nil, domain.ErrApplicationNotFound
	}
	return s.applications.FindByID(ctx, id)
}

// Update amends a pending application. The evaluator allows the owning
// speaker and the owning group's leader.
func (s *speakerService) Update(ctx context.Context, claims *domain.SessionClaims, id string, input ports.UpdateApplicationInput) (*domain.SpeakerApplication, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceSpeaker, authz.ActionUpdate, id) {
		return nil, domain.ErrForbidden
	}

	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationPending {
		return nil, domain.ErrApplicationClosed
	}

	if input.Title != nil {
		app.Title = *input.Title
	}
	if input.Abstract != nil {
		app.Abstract = *input.Abstract
	}
	app.UpdatedAt = time.Now().UTC()

	if err := s.applications.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}
	return app, nil
}

// Review accepts or rejects a pending application; only the owning group's
// leader passes both the role gate and the ownership check.
func (s *speakerService) Review(ctx context.Context, claims *domain.SessionClaims, id string, decision domain.ApplicationStatus) (*domain.SpeakerApplication, error) {
	if !claims.Authenticated() || claims.Role != domain.RoleCommunityLeader {
		return nil, domain.ErrForbidden
	}
	if decision != domain.ApplicationAccepted && decision != domain.ApplicationRejected {
		return nil, fmt.Errorf("%w: decision %q", domain.ErrInvalidTransition, decision)
	}
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceSpeaker, authz.ActionUpdate, id) {
		return nil, domain.ErrForbidden
	}

	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationPending {
		return nil, domain.ErrApplicationClosed
	}

	app.Status = decision
	app.UpdatedAt = time.Now().UTC()
	if err := s.applications.Update(ctx, app); err != nil {
		return nil, fmt.Errorf("review application: %w", err)
	}

	s.log.Info().Str("application_id", id).Str("decision", string(decision)).Msg("speaker application reviewed")
	return app, nil
}

func (s *speakerService) ListByEvent(ctx context.Context, claims *domain.SessionClaims, eventID string) ([]*domain.SpeakerApplication, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceSpeaker, authz.ActionRead, "") {
		return nil, domain.ErrForbidden
	}
	return s.applications.ListByEvent(ctx, eventID)
}
