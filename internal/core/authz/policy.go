package authz

import "github.com/communityos/eventhub/internal/core/domain"

// RuleContext carries the ownership facts a single decision may depend on.
// Fields a rule needs but finds empty cause that rule to deny.
type RuleContext struct {
	// ActorID is the id of the user the decision is made for.
	ActorID string
	// LedGroupID is the id of the group the actor leads, if any.
	LedGroupID string
	// OwningGroupID is the id of the group that owns the target resource.
	OwningGroupID string
	// OwnerUserID is the id of the user that owns the target resource.
	OwnerUserID string
	// Collaborator is true when the actor holds a collaborator assignment
	// on the target resource's event.
	Collaborator bool
}

type ruleFn func(rc RuleContext) bool

// ownGroup allows when the actor leads the group that owns the resource.
func ownGroup(rc RuleContext) bool {
	return rc.LedGroupID != "" && rc.OwningGroupID != "" && rc.LedGroupID == rc.OwningGroupID
}

// ownRecord allows when the actor is the resource's owning user.
func ownRecord(rc RuleContext) bool {
	return rc.ActorID != "" && rc.OwnerUserID != "" && rc.ActorID == rc.OwnerUserID
}

// assignedEvent allows when a collaborator assignment matched the exact event.
func assignedEvent(rc RuleContext) bool {
	return rc.Collaborator
}

// public allows unconditionally; used for resources readable by any member.
func public(RuleContext) bool {
	return true
}

type ruleKey struct {
	role     domain.Role
	resource Resource
	action   Action
}

// policy is the single decision table for the whole application. A missing
// key is a deny; there is no wildcard and no fallback rule.
var policy = buildPolicy()

func buildPolicy() map[ruleKey]ruleFn {
	t := make(map[ruleKey]ruleFn)

	grant := func(role domain.Role, resources []Resource, actions []Action, fn ruleFn) {
		for _, r := range resources {
			for _, a := range actions {
				t[ruleKey{role, r, a}] = fn
			}
		}
	}

	crud := []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

	// Community leaders have full control over their own group's resources
	// and nothing else — not even another leader's group.
	grant(domain.RoleCommunityLeader,
		[]Resource{ResourceEvent, ResourceUserGroup, ResourceSponsor, ResourceSpeaker, ResourceContribution},
		crud, ownGroup)
	// Leaders also run the door at their own events.
	grant(domain.RoleCommunityLeader,
		[]Resource{ResourceCheckin},
		[]Action{ActionCreate, ActionRead, ActionDelete, ActionCheckin}, ownGroup)

	// Collaborators act on the single event they are assigned to.
	grant(domain.RoleCollaborator,
		[]Resource{ResourceEvent, ResourceCheckin},
		[]Action{ActionRead, ActionCheckin}, assignedEvent)

	// Speakers manage only their own application.
	grant(domain.RoleSpeaker,
		[]Resource{ResourceSpeaker},
		[]Action{ActionRead, ActionUpdate}, ownRecord)

	// Attendees read public resources and register themselves.
	grant(domain.RoleAttendee,
		[]Resource{ResourceEvent, ResourceUserGroup, ResourceSponsor, ResourceSpeaker},
		[]Action{ActionRead}, public)
	grant(domain.RoleAttendee,
		[]Resource{ResourceCheckin},
		[]Action{ActionCreate}, ownRecord)

	return t
}

// IsAllowed decides whether role may perform action on resource given the
// ownership facts in rc. It is a pure function of its inputs: no lookups,
// no side effects, a single yes/no with no partial or advisory results.
func IsAllowed(role domain.Role, resource Resource, action Action, rc RuleContext) bool {
	if !role.Valid() || !KnownResource(resource) || !KnownAction(action) {
		return false
	}
	fn, ok := policy[ruleKey{role, resource, action}]
	if !ok {
		return false
	}
	return fn(rc)
}
