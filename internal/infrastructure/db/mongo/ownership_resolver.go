package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/communityos/eventhub/internal/core/authz"
	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/core/ports"
)

// OwnershipResolver answers the two lookups the permission evaluator needs:
// who owns a resource, and whether a collaborator assignment matches an
// exact event. It reads through the repositories rather than raw
// collections so ownership always reflects the same documents the services
// operate on.
type OwnershipResolver struct {
	events        ports.EventRepository
	groups        ports.GroupRepository
	checkins      ports.CheckinRepository
	speakers      ports.SpeakerRepository
	sponsors      ports.SponsorRepository
	contributions ports.ContributionRepository
	collaborators ports.CollaboratorRepository
}

func NewOwnershipResolver(
	events ports.EventRepository,
	groups ports.GroupRepository,
	checkins ports.CheckinRepository,
	speakers ports.SpeakerRepository,
	sponsors ports.SponsorRepository,
	contributions ports.ContributionRepository,
	collaborators ports.CollaboratorRepository,
) *OwnershipResolver {
	return &OwnershipResolver{
		events:        events,
		groups:        groups,
		checkins:      checkins,
		speakers:      speakers,
		sponsors:      sponsors,
		contributions: contributions,
		collaborators: collaborators,
	}
}

func (r *OwnershipResolver) ResolveOwnership(ctx context.Context, resource authz.Resource, resourceID string) (authz.Ownership, error) {
	switch resource {
	case authz.ResourceEvent:
		return r.eventOwnership(ctx, resourceID)

	case authz.ResourceUserGroup:
		group, err := r.groups.FindByID(ctx, resourceID)
		if err != nil {
			return authz.Ownership{}, err
		}
		return authz.Ownership{OwningGroupID: group.ID, OwnerUserID: group.LeaderID}, nil

	case authz.ResourceCheckin:
		// Roster endpoints pass the event id; individual registrations
		// pass the checkin id. Try the record first, then the event.
		if checkin, err := r.checkins.FindByID(ctx, resourceID); err == nil {
			own, err := r.eventOwnership(ctx, checkin.EventID)
			if err != nil {
				return authz.Ownership{}, err
			}
			own.OwnerUserID = checkin.UserID
			return own, nil
		} else if !errors.Is(err, domain.ErrCheckinNotFound) {
			return authz.Ownership{}, err
		}
		return r.eventOwnership(ctx, resourceID)

	case authz.ResourceSpeaker:
		app, err := r.speakers.FindByID(ctx, resourceID)
		if err != nil {
			return authz.Ownership{}, err
		}
		own, err := r.eventOwnership(ctx, app.EventID)
		if err != nil {
			return authz.Ownership{}, err
		}
		own.OwnerUserID = app.UserID
		return own, nil

	case authz.ResourceSponsor:
		sponsor, err := r.sponsors.FindByID(ctx, resourceID)
		if err != nil {
			return authz.Ownership{}, err
		}
		return authz.Ownership{OwningGroupID: sponsor.UserGroupID, EventID: sponsor.EventID}, nil

	case authz.ResourceContribution:
		contribution, err := r.contributions.FindByID(ctx, resourceID)
		if err != nil {
			return authz.Ownership{}, err
		}
		own, err := r.eventOwnership(ctx, contribution.EventID)
		if err != nil {
			return authz.Ownership{}, err
		}
		own.OwnerUserID = contribution.UserID
		return own, nil
	}

	return authz.Ownership{}, fmt.Errorf("unresolvable resource %q", resource)
}

func (r *OwnershipResolver) IsCollaborator(ctx context.Context, userID, eventID string) (bool, error) {
	return r.collaborators.Exists(ctx, eventID, userID)
}

func (r *OwnershipResolver) eventOwnership(ctx context.Context, eventID string) (authz.Ownership, error) {
	event, err := r.events.FindByID(ctx, eventID)
	if err != nil {
		return authz.Ownership{}, err
	}
	return authz.Ownership{
		OwningGroupID: event.UserGroupID,
		OwnerUserID:   event.CreatedBy,
		EventID:       event.ID,
	}, nil
}
