// Package authz implements role-based access control over session claims:
// a closed resource/action vocabulary, one exhaustive decision table, a
// claims builder, a permission evaluator, and a read-only auth facade.
//
// Everything here is fail-closed: unknown vocabulary, missing ownership
// context, or a failed lookup all yield a plain deny, never an error.
package authz

// Resource names a kind of protected entity. The set is closed; anything
// outside it is undefined and denied.
type Resource string

const (
	ResourceEvent        Resource = "event"
	ResourceUserGroup    Resource = "usergroup"
	ResourceCheckin      Resource = "checkin"
	ResourceSponsor      Resource = "sponsor"
	ResourceSpeaker      Resource = "speaker"
	ResourceContribution Resource = "contribution"
)

// Action names an operation on a resource. The set is closed.
type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionCheckin Action = "checkin"
)

var knownResources = map[Resource]struct{}{
	ResourceEvent:        {},
	ResourceUserGroup:    {},
	ResourceCheckin:      {},
	ResourceSponsor:      {},
	ResourceSpeaker:      {},
	ResourceContribution: {},
}

var knownActions = map[Action]struct{}{
	ActionCreate:  {},
	ActionRead:    {},
	ActionUpdate:  {},
	ActionDelete:  {},
	ActionCheckin: {},
}

// KnownResource reports whether r belongs to the closed vocabulary.
func KnownResource(r Resource) bool {
	_, ok := knownResources[r]
	return ok
}

// KnownAction reports whether a belongs to the closed vocabulary.
func KnownAction(a Action) bool {
	_, ok := knownActions[a]
	return ok
}
