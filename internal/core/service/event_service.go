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

const maxPageLimit = 100

// EventService implements event use cases. Coarse permission checks gate
// creation; every operation on a concrete event re-checks with the id.
type EventService struct {
	events    ports.EventRepository
	evaluator *authz.Evaluator
	log       zerolog.Logger
}

func NewEventService(events ports.EventRepository, evaluator *authz.Evaluator, log zerolog.Logger) *EventService {
	return &EventService{events: events, evaluator: evaluator, log: log}
}

func (s *EventService) Create(ctx context.Context, claims *domain.SessionClaims, input ports.CreateEventInput) (*domain.Event, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceEvent, authz.ActionCreate, "") {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	event := &domain.Event{
		Title:       input.Title,
		Description: input.Description,
		Venue:       input.Venue,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Capacity:    input.Capacity,
		UserGroupID: claims.LedGroupID(),
		CreatedBy:   claims.UserID,
		Status:      domain.EventDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info().Str("event_id", created.ID).Str("user_group_id", created.UserGroupID).Msg("event created")
	return created, nil
}

// Get returns the event. Drafts stay invisible to anyone outside the owning
// group: denial surfaces as not-found so existence does not leak.
func (s *EventService) Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.Event, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceEvent, authz.ActionRead, id) {
		return nil, domain.ErrEventNotFound
	}

	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.Status == domain.EventDraft && claims.LedGroupID() != event.UserGroupID {
		return nil, domain.ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context, claims *domain.SessionClaims, input ports.ListEventsInput) (*ports.ListEventsResult, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceEvent, authz.ActionRead, "") {
		return nil, domain.ErrForbidden
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListEventsFilter{
		UserGroupID: input.UserGroupID,
		Status:      input.Status,
		Search:      input.Search,
		Page:        page,
		Limit:       limit,
	}
	// Only the owning leader sees unpublished statuses.
	if claims.LedGroupID() == "" || claims.LedGroupID() != input.UserGroupID {
		filter.Status = string(domain.EventPublished)
	}

	items, total, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListEventsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *EventService) Update(ctx context.Context, claims *domain.SessionClaims, id string, input ports.UpdateEventInput) (*domain.Event, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceEvent, authz.ActionUpdate, id) {
		return nil, domain.ErrForbidden
	}

	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		event.Title = *input.Title
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Venue != nil {
		event.Venue = *input.Venue
	}
	if input.StartsAt != nil {
		event.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		event.EndsAt = *input.EndsAt
	}
	if input.Capacity != nil {
		event.Capacity = *input.Capacity
	}
	event.UpdatedAt = time.Now().UTC()

	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *EventService) Transition(ctx context.Context, claims *domain.SessionClaims, id string, next domain.EventStatus) (*domain.Event, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceEvent, authz.ActionUpdate, id) {
		return nil, domain.ErrForbidden
	}

	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !event.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, event.Status, next)
	}

	event.Status = next
	event.UpdatedAt = time.Now().UTC()
	if err := s.events.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("transition event: %w", err)
	}

	s.log.Info().Str("event_id", id).Str("status", string(next)).Msg("event status changed")
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, claims *domain.SessionClaims, id string) error {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceEvent, authz.ActionDelete, id) {
		return domain.ErrForbidden
	}
	return s.events.Delete(ctx, id)
}
