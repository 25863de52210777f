package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/communityos/eventhub/internal/core/domain"
)

type stubResolver struct {
	ownership     map[string]Ownership // keyed by resource:id
	collaborators map[string]bool      // keyed by user:event
	lookupErr     error
	collabErr     error
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		ownership:     make(map[string]Ownership),
		collaborators: make(map[string]bool),
	}
}

func (r *stubResolver) ResolveOwnership(_ context.Context, resource Resource, resourceID string) (Ownership, error) {
	if r.lookupErr != nil {
		return Ownership{}, r.lookupErr
	}
	own, ok := r.ownership[string(resource)+":"+resourceID]
	if !ok {
		return Ownership{}, domain.ErrEventNotFound
	}
	return own, nil
}

func (r *stubResolver) IsCollaborator(_ context.Context, userID, eventID string) (bool, error) {
	if r.collabErr != nil {
		return false, r.collabErr
	}
	return r.collaborators[userID+":"+eventID], nil
}

func leaderClaims(userID, ledGroupID string) *domain.SessionClaims {
	c := &domain.SessionClaims{
		UserID: userID,
		Role:   domain.RoleCommunityLeader,
		Status: domain.AuthStatusAuthenticated,
	}
	if ledGroupID != "" {
		c.LedUserGroup = &domain.UserGroupRef{ID: ledGroupID, Name: "led"}
	}
	return c
}

func TestEvaluator_UnauthenticatedAlwaysDenied(t *testing.T) {
	ev := NewEvaluator(newStubResolver(), zerolog.Nop())
	ctx := context.Background()

	resources := []Resource{ResourceEvent, ResourceUserGroup, ResourceCheckin, ResourceSponsor, ResourceSpeaker, ResourceContribution}
	actions := []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionCheckin}

	for _, res := range resources {
		for _, act := range actions {
			if ev.HasPermission(ctx, nil, res, act, "any-id") {
				t.Errorf("nil claims allowed %s on %s", act, res)
			}
			unauth := &domain.SessionClaims{UserID: "u1", Role: domain.RoleCommunityLeader, Status: domain.AuthStatusUnauthenticated}
			if ev.HasPermission(ctx, unauth, res, act, "any-id") {
				t.Errorf("unauthenticated claims allowed %s on %s", act, res)
			}
		}
	}
}

func TestEvaluator_LeaderOwnershipResolution(t *testing.T) {
	r := newStubResolver()
	r.ownership["event:e1"] = Ownership{OwningGroupID: "g1", OwnerUserID: "u9", EventID: "e1"}
	r.ownership["event:e2"] = Ownership{OwningGroupID: "g2", OwnerUserID: "u8", EventID: "e2"}
	ev := NewEvaluator(r, zerolog.Nop())
	ctx := context.Background()

	claims := leaderClaims("u1", "g1")
	if !ev.HasPermission(ctx, claims, ResourceEvent, ActionUpdate, "e1") {
		t.Fatalf("leader denied update on own group's event")
	}
	if ev.HasPermission(ctx, claims, ResourceEvent, ActionUpdate, "e2") {
		t.Fatalf("leader allowed update on another group's event")
	}
}

func TestEvaluator_OwnershipLookupFailureDenies(t *testing.T) {
	r := newStubResolver()
	ev := NewEvaluator(r, zerolog.Nop())
	ctx := context.Background()
	claims := leaderClaims("u1", "g1")

	// Resource not found.
	if ev.HasPermission(ctx, claims, ResourceEvent, ActionUpdate, "missing") {
		t.Fatalf("allowed on missing resource")
	}

	// Store failure.
	r.lookupErr = errors.New("store down")
	r.ownership["event:e1"] = Ownership{OwningGroupID: "g1"}
	if ev.HasPermission(ctx, claims, ResourceEvent, ActionUpdate, "e1") {
		t.Fatalf("allowed despite lookup failure")
	}
}

func TestEvaluator_CollaboratorExactEventMatch(t *testing.T) {
	r := newStubResolver()
	r.ownership["checkin:e1"] = Ownership{OwningGroupID: "g1", EventID: "e1"}
	r.ownership["checkin:e2"] = Ownership{OwningGroupID: "g1", EventID: "e2"}
	r.collaborators["u2:e1"] = true
	ev := NewEvaluator(r, zerolog.Nop())
	ctx := context.Background()

	claims := &domain.SessionClaims{UserID: "u2", Role: domain.RoleCollaborator, Status: domain.AuthStatusAuthenticated}

	if !ev.HasPermission(ctx, claims, ResourceCheckin, ActionCheckin, "e1") {
		t.Fatalf("assigned collaborator denied checkin on e1")
	}
	if ev.HasPermission(ctx, claims, ResourceCheckin, ActionCheckin, "e2") {
		t.Fatalf("collaborator allowed checkin on unassigned e2")
	}

	// Collaborator lookup failure denies.
	r.collabErr = errors.New("store down")
	if ev.HasPermission(ctx, claims, ResourceCheckin, ActionCheckin, "e1") {
		t.Fatalf("allowed despite collaborator lookup failure")
	}
}

func TestEvaluator_SpeakerOwnApplication(t *testing.T) {
	r := newStubResolver()
	r.ownership["speaker:a1"] = Ownership{OwnerUserID: "u3", EventID: "e1"}
	r.ownership["speaker:a2"] = Ownership{OwnerUserID: "u4", EventID: "e1"}
	ev := NewEvaluator(r, zerolog.Nop())
	ctx := context.Background()

	claims := &domain.SessionClaims{UserID: "u3", Role: domain.RoleSpeaker, Status: domain.AuthStatusAuthenticated}

	if !ev.HasPermission(ctx, claims, ResourceSpeaker, ActionUpdate, "a1") {
		t.Fatalf("speaker denied update on own application")
	}
	if ev.HasPermission(ctx, claims, ResourceSpeaker, ActionUpdate, "a2") {
		t.Fatalf("speaker allowed update on another speaker's application")
	}
}

func TestEvaluator_CoarseChecks(t *testing.T) {
	ev := NewEvaluator(newStubResolver(), zerolog.Nop())
	ctx := context.Background()

	// Leader with a led group may create events; without one, denied.
	if !ev.HasPermission(ctx, leaderClaims("u1", "g1"), ResourceEvent, ActionCreate, "") {
		t.Fatalf("leader with led group denied coarse event create")
	}
	if ev.HasPermission(ctx, leaderClaims("u1", ""), ResourceEvent, ActionCreate, "") {
		t.Fatalf("leader without led group allowed coarse event create")
	}

	attendee := &domain.SessionClaims{UserID: "u5", Role: domain.RoleAttendee, Status: domain.AuthStatusAuthenticated}
	if !ev.HasPermission(ctx, attendee, ResourceCheckin, ActionCreate, "") {
		t.Fatalf("attendee denied coarse self registration")
	}
	if ev.HasPermission(ctx, attendee, ResourceEvent, ActionCreate, "") {
		t.Fatalf("attendee allowed coarse event create")
	}
}

func TestEvaluator_UnknownVocabularyDenied(t *testing.T) {
	ev := NewEvaluator(newStubResolver(), zerolog.Nop())
	ctx := context.Background()
	claims := leaderClaims("u1", "g1")

	if ev.HasPermission(ctx, claims, "payment", ActionRead, "") {
		t.Fatalf("unknown resource allowed")
	}
	if ev.HasPermission(ctx, claims, ResourceEvent, "archive", "e1") {
		t.Fatalf("unknown action allowed")
	}
}
