package authz

import (
	"testing"

	"github.com/communityos/eventhub/internal/core/domain"
)

func allRoles() []domain.Role {
	return []domain.Role{
		domain.RoleCommunityLeader,
		domain.RoleSpeaker,
		domain.RoleAttendee,
		domain.RoleCollaborator,
	}
}

func TestIsAllowed_UnknownVocabularyDenied(t *testing.T) {
	// Favorable context so only the vocabulary gate can deny.
	rc := RuleContext{
		ActorID:       "u1",
		LedGroupID:    "g1",
		OwningGroupID: "g1",
		OwnerUserID:   "u1",
		Collaborator:  true,
	}

	for _, role := range allRoles() {
		if IsAllowed(role, "payment", ActionRead, rc) {
			t.Errorf("role %s allowed on unknown resource", role)
		}
		if IsAllowed(role, ResourceEvent, "archive", rc) {
			t.Errorf("role %s allowed on unknown action", role)
		}
		if IsAllowed(role, "payment", "archive", rc) {
			t.Errorf("role %s allowed on unknown resource/action pair", role)
		}
	}

	if IsAllowed("SUPERUSER", ResourceEvent, ActionRead, rc) {
		t.Errorf("unknown role allowed")
	}
}

func TestIsAllowed_LeaderOwnGroupOnly(t *testing.T) {
	own := RuleContext{ActorID: "u1", LedGroupID: "g1", OwningGroupID: "g1"}
	other := RuleContext{ActorID: "u1", LedGroupID: "g1", OwningGroupID: "g2"}

	for _, res := range []Resource{ResourceEvent, ResourceUserGroup, ResourceSponsor, ResourceSpeaker, ResourceContribution} {
		for _, act := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete} {
			if !IsAllowed(domain.RoleCommunityLeader, res, act, own) {
				t.Errorf("leader denied %s on own-group %s", act, res)
			}
			if IsAllowed(domain.RoleCommunityLeader, res, act, other) {
				t.Errorf("leader allowed %s on other-group %s", act, res)
			}
		}
	}
}

func TestIsAllowed_LeaderMissingContext(t *testing.T) {
	// An ownership rule invoked without its owning id denies, never throws.
	if IsAllowed(domain.RoleCommunityLeader, ResourceEvent, ActionUpdate, RuleContext{ActorID: "u1", LedGroupID: "g1"}) {
		t.Errorf("leader allowed with no owning group id")
	}
	if IsAllowed(domain.RoleCommunityLeader, ResourceEvent, ActionUpdate, RuleContext{ActorID: "u1", OwningGroupID: "g1"}) {
		t.Errorf("leader without led group allowed")
	}
}

func TestIsAllowed_CollaboratorByAssignment(t *testing.T) {
	assigned := RuleContext{ActorID: "u2", Collaborator: true}
	unassigned := RuleContext{ActorID: "u2"}

	for _, res := range []Resource{ResourceEvent, ResourceCheckin} {
		if !IsAllowed(domain.RoleCollaborator, res, ActionRead, assigned) {
			t.Errorf("assigned collaborator denied read on %s", res)
		}
		if !IsAllowed(domain.RoleCollaborator, res, ActionCheckin, assigned) {
			t.Errorf("assigned collaborator denied checkin on %s", res)
		}
		if IsAllowed(domain.RoleCollaborator, res, ActionRead, unassigned) {
			t.Errorf("unassigned collaborator allowed read on %s", res)
		}
	}

	if IsAllowed(domain.RoleCollaborator, ResourceEvent, ActionUpdate, assigned) {
		t.Errorf("collaborator allowed update")
	}
	if IsAllowed(domain.RoleCollaborator, ResourceSponsor, ActionRead, assigned) {
		t.Errorf("collaborator allowed sponsor read")
	}
}

func TestIsAllowed_SpeakerOwnApplicationOnly(t *testing.T) {
	own := RuleContext{ActorID: "u3", OwnerUserID: "u3"}
	other := RuleContext{ActorID: "u3", OwnerUserID: "u4"}

	for _, act := range []Action{ActionRead, ActionUpdate} {
		if !IsAllowed(domain.RoleSpeaker, ResourceSpeaker, act, own) {
			t.Errorf("speaker denied %s on own application", act)
		}
		if IsAllowed(domain.RoleSpeaker, ResourceSpeaker, act, other) {
			t.Errorf("speaker allowed %s on another speaker's application", act)
		}
	}

	if IsAllowed(domain.RoleSpeaker, ResourceSpeaker, ActionDelete, own) {
		t.Errorf("speaker allowed delete")
	}
	if IsAllowed(domain.RoleSpeaker, ResourceEvent, ActionUpdate, own) {
		t.Errorf("speaker allowed event update")
	}
}

func TestIsAllowed_Attendee(t *testing.T) {
	rc := RuleContext{ActorID: "u5"}

	for _, res := range []Resource{ResourceEvent, ResourceUserGroup, ResourceSponsor, ResourceSpeaker} {
		if !IsAllowed(domain.RoleAttendee, res, ActionRead, rc) {
			t.Errorf("attendee denied read on public resource %s", res)
		}
	}

	if !IsAllowed(domain.RoleAttendee, ResourceCheckin, ActionCreate, RuleContext{ActorID: "u5", OwnerUserID: "u5"}) {
		t.Errorf("attendee denied self registration")
	}
	if IsAllowed(domain.RoleAttendee, ResourceCheckin, ActionCreate, RuleContext{ActorID: "u5", OwnerUserID: "u6"}) {
		t.Errorf("attendee allowed registering someone else")
	}
	if IsAllowed(domain.RoleAttendee, ResourceEvent, ActionUpdate, rc) {
		t.Errorf("attendee allowed event update")
	}
}

func TestPolicy_TableUsesClosedVocabulary(t *testing.T) {
	// Every key in the table must come from the documented vocabulary, so
	// that a new resource or action forces an explicit policy decision.
	for key := range policy {
		if !key.role.Valid() {
			t.Errorf("policy key with unknown role %q", key.role)
		}
		if !KnownResource(key.resource) {
			t.Errorf("policy key with unknown resource %q", key.resource)
		}
		if !KnownAction(key.action) {
			t.Errorf("policy key with unknown action %q", key.action)
		}
	}
}
