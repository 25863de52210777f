package authz

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// Facade is a read-only convenience layer over session claims for display
// and navigation gating. It never decides authorization for state-changing
// actions itself: the canonical decision path is always the Evaluator,
// re-invoked with fresh claims at the point of action.
type Facade struct {
	claims    *domain.SessionClaims
	evaluator *Evaluator
}

func NewFacade(claims *domain.SessionClaims, evaluator *Evaluator) Facade {
	return Facade{claims: claims, evaluator: evaluator}
}

func (f Facade) hasRole(role domain.Role) bool {
	return f.claims.Authenticated() && f.claims.Role == role
}

func (f Facade) IsCommunityLeader() bool { return f.hasRole(domain.RoleCommunityLeader) }
func (f Facade) IsSpeaker() bool         { return f.hasRole(domain.RoleSpeaker) }
func (f Facade) IsAttendee() bool        { return f.hasRole(domain.RoleAttendee) }
func (f Facade) IsCollaborator() bool    { return f.hasRole(domain.RoleCollaborator) }

// CanManageUserGroup requires a community leader with a currently led group.
func (f Facade) CanManageUserGroup() bool {
	return f.IsCommunityLeader() && f.claims.LedUserGroup != nil
}

// CanCreateEvents requires a community leader with a currently led group.
func (f Facade) CanCreateEvents() bool {
	return f.IsCommunityLeader() && f.claims.LedUserGroup != nil
}

// CheckPermission delegates to the permission evaluator.
func (f Facade) CheckPermission(ctx context.Context, resource Resource, action Action, resourceID string) bool {
	if f.evaluator == nil {
		return false
	}
	return f.evaluator.HasPermission(ctx, f.claims, resource, action, resourceID)
}
