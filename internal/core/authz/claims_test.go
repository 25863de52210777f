package authz

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/communityos/eventhub/internal/core/domain"
)

type stubIdentityStore struct {
	users map[string]*domain.User
	err   error
}

func (s *stubIdentityStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubGroupStore struct {
	byID     map[string]*domain.UserGroup
	byLeader map[string]*domain.UserGroup
	err      error
}

func (s *stubGroupStore) FindByID(_ context.Context, id string) (*domain.UserGroup, error) {
	if s.err != nil {
		return nil, s.err
	}
	g, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	clone := *g
	return &clone, nil
}

func (s *stubGroupStore) FindByLeader(_ context.Context, leaderID string) (*domain.UserGroup, error) {
	if s.err != nil {
		return nil, s.err
	}
	g, ok := s.byLeader[leaderID]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	clone := *g
	return &clone, nil
}

func seededStores() (*stubIdentityStore, *stubGroupStore) {
	users := &stubIdentityStore{users: map[string]*domain.User{
		"u1": {ID: "u1", Name: "Ada", Email: "ada@example.com", Role: domain.RoleCommunityLeader, UserGroupID: "g2"},
		"u2": {ID: "u2", Name: "Bo", Email: "bo@example.com", Role: domain.RoleAttendee, UserGroupID: "g1"},
		"u3": {ID: "u3", Name: "Cy", Email: "cy@example.com", Role: domain.RoleSpeaker},
	}}
	groups := &stubGroupStore{
		byID: map[string]*domain.UserGroup{
			"g1": {ID: "g1", Name: "Go Norte", LeaderID: "u1"},
			"g2": {ID: "g2", Name: "Go Sur", LeaderID: "u9"},
		},
		byLeader: map[string]*domain.UserGroup{
			"u1": {ID: "g1", Name: "Go Norte", LeaderID: "u1"},
		},
	}
	return users, groups
}

func TestBuilder_LeaderClaims(t *testing.T) {
	users, groups := seededStores()
	b := NewBuilder(users, groups)

	claims, err := b.Build(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if claims.Role != domain.RoleCommunityLeader {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.Status != domain.AuthStatusAuthenticated {
		t.Fatalf("expected authenticated status, got %s", claims.Status)
	}
	// Leadership and membership resolve independently: u1 leads g1 but is a
	// member of g2.
	if claims.LedUserGroup == nil || claims.LedUserGroup.ID != "g1" {
		t.Fatalf("expected led group g1, got %+v", claims.LedUserGroup)
	}
	if claims.UserGroup == nil || claims.UserGroup.ID != "g2" {
		t.Fatalf("expected membership group g2, got %+v", claims.UserGroup)
	}
}

func TestBuilder_NonLeaderNeverGetsLedGroup(t *testing.T) {
	users, groups := seededStores()
	// Even with a stale leadership row pointing at an attendee, the builder
	// only resolves leadership for community leaders.
	groups.byLeader["u2"] = groups.byID["g1"]
	b := NewBuilder(users, groups)

	claims, err := b.Build(context.Background(), "u2")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if claims.LedUserGroup != nil {
		t.Fatalf("attendee got a led group: %+v", claims.LedUserGroup)
	}
	if claims.UserGroup == nil || claims.UserGroup.ID != "g1" {
		t.Fatalf("expected membership group g1, got %+v", claims.UserGroup)
	}
}

func TestBuilder_Deterministic(t *testing.T) {
	users, groups := seededStores()
	b := NewBuilder(users, groups)

	first, err := b.Build(context.Background(), "u1")
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	second, err := b.Build(context.Background(), "u1")
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("claims differ across builds:\n%+v\n%+v", first, second)
	}
}

func TestBuilder_IdentityNotFound(t *testing.T) {
	users, groups := seededStores()
	b := NewBuilder(users, groups)

	claims, err := b.Build(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
	if claims != nil {
		t.Fatalf("expected no partial claims, got %+v", claims)
	}
}

func TestBuilder_StoreFailureIsAtomic(t *testing.T) {
	users, _ := seededStores()
	groups := &stubGroupStore{err: errors.New("store down")}
	b := NewBuilder(users, groups)

	claims, err := b.Build(context.Background(), "u1")
	if err == nil {
		t.Fatalf("expected error when group store fails")
	}
	if claims != nil {
		t.Fatalf("expected no partial claims, got %+v", claims)
	}
}

func TestBuilder_LeadershipTransferredAway(t *testing.T) {
	users, groups := seededStores()
	delete(groups.byLeader, "u1")
	b := NewBuilder(users, groups)

	claims, err := b.Build(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if claims.LedUserGroup != nil {
		t.Fatalf("expected no led group after transfer, got %+v", claims.LedUserGroup)
	}
}
