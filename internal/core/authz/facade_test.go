package authz

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/communityos/eventhub/internal/core/domain"
)

func TestFacade_RolePredicates(t *testing.T) {
	ev := NewEvaluator(newStubResolver(), zerolog.Nop())

	leader := NewFacade(leaderClaims("u1", "g1"), ev)
	if !leader.IsCommunityLeader() || leader.IsSpeaker() || leader.IsAttendee() || leader.IsCollaborator() {
		t.Fatalf("leader predicates wrong")
	}

	attendee := NewFacade(&domain.SessionClaims{UserID: "u5", Role: domain.RoleAttendee, Status: domain.AuthStatusAuthenticated}, ev)
	if !attendee.IsAttendee() || attendee.IsCommunityLeader() {
		t.Fatalf("attendee predicates wrong")
	}

	// Unauthenticated claims satisfy no predicate.
	signedOut := NewFacade(&domain.SessionClaims{UserID: "u1", Role: domain.RoleCommunityLeader, Status: domain.AuthStatusUnauthenticated}, ev)
	if signedOut.IsCommunityLeader() {
		t.Fatalf("unauthenticated claims passed a role predicate")
	}
	none := NewFacade(nil, ev)
	if none.IsCommunityLeader() || none.IsSpeaker() || none.IsAttendee() || none.IsCollaborator() {
		t.Fatalf("nil claims passed a role predicate")
	}
}

func TestFacade_CompositePredicatesRequireLedGroup(t *testing.T) {
	ev := NewEvaluator(newStubResolver(), zerolog.Nop())

	with := NewFacade(leaderClaims("u1", "g1"), ev)
	if !with.CanManageUserGroup() || !with.CanCreateEvents() {
		t.Fatalf("leader with led group denied composite predicates")
	}

	without := NewFacade(leaderClaims("u1", ""), ev)
	if without.CanManageUserGroup() || without.CanCreateEvents() {
		t.Fatalf("leader without led group passed composite predicates")
	}

	attendee := NewFacade(&domain.SessionClaims{UserID: "u5", Role: domain.RoleAttendee, Status: domain.AuthStatusAuthenticated}, ev)
	if attendee.CanCreateEvents() {
		t.Fatalf("attendee passed CanCreateEvents")
	}
}

func TestFacade_CheckPermissionDelegates(t *testing.T) {
	r := newStubResolver()
	r.ownership["event:e1"] = Ownership{OwningGroupID: "g1", EventID: "e1"}
	ev := NewEvaluator(r, zerolog.Nop())
	ctx := context.Background()

	f := NewFacade(leaderClaims("u1", "g1"), ev)
	if !f.CheckPermission(ctx, ResourceEvent, ActionUpdate, "e1") {
		t.Fatalf("facade denied what the evaluator allows")
	}
	if f.CheckPermission(ctx, ResourceEvent, ActionUpdate, "e9") {
		t.Fatalf("facade allowed what the evaluator denies")
	}

	bare := NewFacade(leaderClaims("u1", "g1"), nil)
	if bare.CheckPermission(ctx, ResourceEvent, ActionUpdate, "e1") {
		t.Fatalf("facade without evaluator must deny")
	}
}
