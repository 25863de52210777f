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

type groupService struct {
	groups        ports.GroupRepository
	users         ports.UserRepository
	events        ports.EventRepository
	collaborators ports.CollaboratorRepository
	evaluator     *authz.Evaluator
	log           zerolog.Logger
}

// NewGroupService returns a GroupService implementation.
func NewGroupService(
	groups ports.GroupRepository,
	users ports.UserRepository,
	events ports.EventRepository,
	collaborators ports.CollaboratorRepository,
	evaluator *authz.Evaluator,
	log zerolog.Logger,
) ports.GroupService {
	return &groupService{
		groups:        groups,
		users:         users,
		events:        events,
		collaborators: collaborators,
		evaluator:     evaluator,
		log:           log,
	}
}

func (s *groupService) Get(ctx context.Context, claims *domain.SessionClaims, id string) (*domain.UserGroup, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceUserGroup, authz.ActionRead, id) {
		return nil, domain.ErrGroupNotFound
	}
	return s.groups.FindByID(ctx, id)
}

func (s *groupService) List(ctx context.Context, claims *domain.SessionClaims) ([]*domain.UserGroup, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceUserGroup, authz.ActionRead, "") {
		return nil, domain.ErrForbidden
	}
	return s.groups.List(ctx)
}

func (s *groupService) Update(ctx context.Context, claims *domain.SessionClaims, id string, input ports.UpdateGroupInput) (*domain.UserGroup, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceUserGroup, authz.ActionUpdate, id) {
		return nil, domain.ErrForbidden
	}

	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		group.Name = *input.Name
	}
	if input.City != nil {
		group.City = *input.City
	}

	if err := s.groups.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	return group, nil
}

// AssignCollaborator grants a user door access to one exact event. Gated by
// update permission on the event, which only the owning leader holds.
func (s *groupService) AssignCollaborator(ctx context.Context, claims *domain.SessionClaims, eventID, userID string) error {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceEvent, authz.ActionUpdate, eventID) {
		return domain.ErrForbidden
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}

	if err := s.collaborators.Assign(ctx, &domain.CollaboratorAssignment{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		return fmt.Errorf("assign collaborator: %w", err)
	}

	s.log.Info().Str("event_id", eventID).Str("user_id", userID).Msg("collaborator assigned")
	return nil
}

func (s *groupService) RemoveCollaborator(ctx context.Context, claims *domain.SessionClaims, eventID, userID string) error {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceEvent, authz.ActionUpdate, eventID) {
		return domain.ErrForbidden
	}
	return s.collaborators.Remove(ctx, eventID, userID)
}

func (s *groupService) ListCollaborators(ctx context.Context, claims *domain.SessionClaims, eventID string) ([]*domain.CollaboratorAssignment, error) {
	if !s.evaluator.HasPermission(ctx, claims, authz.ResourceEvent, authz.ActionUpdate, eventID) {
		return nil, domain.ErrForbidden
	}
	return s.collaborators.ListByEvent(ctx, eventID)
}
