package authz

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/communityos/eventhub/internal/core/domain"
)

// Ownership is the result of resolving who owns a concrete resource instance.
type Ownership struct {
	// OwnerUserID is the user that owns the record (applicant, attendee, creator).
	OwnerUserID string
	// OwningGroupID is the group that owns the record.
	OwningGroupID string
	// EventID is the event the record hangs off, when there is one. For the
	// event resource itself this is the resource id.
	EventID string
}

// OwnershipResolver answers "who owns this resource instance" and "is this
// user a collaborator on this event". Implementations read the backing store.
type OwnershipResolver interface {
	ResolveOwnership(ctx context.Context, resource Resource, resourceID string) (Ownership, error)
	IsCollaborator(ctx context.Context, userID, eventID string) (bool, error)
}

// Evaluator decides allow/deny for a claims holder against the decision
// table, resolving ownership of concrete resource ids on demand.
type Evaluator struct {
	ownership OwnershipResolver
	log       zerolog.Logger
}

func NewEvaluator(ownership OwnershipResolver, log zerolog.Logger) *Evaluator {
	return &Evaluator{ownership: ownership, log: log}
}

// HasPermission reports whether the claims holder may perform action on the
// resource. Absent or unauthenticated claims are a normal false result,
// never an error.
//
// When resourceID is non-empty the target's ownership is resolved first; a
// missing resource or failed lookup denies. When resourceID is empty only
// the coarse role-level permission is evaluated — suitable for UI
// affordances, never as the sole authorization for a mutating action.
//
// For fixed inputs and fixed backing data the result is stable; it changes
// between calls only when the ownership data underneath changed.
func (e *Evaluator) HasPermission(ctx context.Context, claims *domain.SessionClaims, resource Resource, action Action, resourceID string) bool {
	if !claims.Authenticated() {
		return false
	}

	if !KnownResource(resource) || !KnownAction(action) {
		// Outside the closed vocabulary: a bug in the calling code, not user input.
		e.log.Error().
			Str("resource", string(resource)).
			Str("action", string(action)).
			Msg("permission check outside the closed vocabulary")
		return false
	}

	if resourceID == "" {
		return IsAllowed(claims.Role, resource, action, e.coarseContext(claims))
	}

	own, err := e.ownership.ResolveOwnership(ctx, resource, resourceID)
	if err != nil {
		// Missing resource and lookup failure both deny; the distinction is
		// observability only, never the caller-visible result.
		e.log.Warn().Err(err).
			Str("resource", string(resource)).
			Str("resource_id", resourceID).
			Msg("ownership lookup failed")
		return false
	}

	rc := RuleContext{
		ActorID:       claims.UserID,
		LedGroupID:    claims.LedGroupID(),
		OwningGroupID: own.OwningGroupID,
		OwnerUserID:   own.OwnerUserID,
	}

	if claims.Role == domain.RoleCollaborator && own.EventID != "" {
		matched, err := e.ownership.IsCollaborator(ctx, claims.UserID, own.EventID)
		if err != nil {
			e.log.Warn().Err(err).
				Str("event_id", own.EventID).
				Msg("collaborator lookup failed")
			return false
		}
		rc.Collaborator = matched
	}

	return IsAllowed(claims.Role, resource, action, rc)
}

// coarseContext assumes the most favorable ownership the claims could ever
// satisfy: the actor owning the record, the led group owning the group
// resource. Rules that need facts the claims cannot supply still deny —
// a leader without a led group cannot pass ownGroup even coarsely.
func (e *Evaluator) coarseContext(claims *domain.SessionClaims) RuleContext {
	return RuleContext{
		ActorID:       claims.UserID,
		LedGroupID:    claims.LedGroupID(),
		OwningGroupID: claims.LedGroupID(),
		OwnerUserID:   claims.UserID,
		Collaborator:  claims.Role == domain.RoleCollaborator,
	}
}
