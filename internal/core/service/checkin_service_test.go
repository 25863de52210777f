package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/core/ports"
)

type checkinFixture struct {
	svc      ports.CheckinService
	checkins *stubCheckinRepo
	events   *stubEventRepo
	dedup    *stubDedup
	own      *stubOwnership
}

func newCheckinFixture() *checkinFixture {
	events := newStubEventRepo()
	checkins := newStubCheckinRepo()
	dedup := &stubDedup{}
	own := &stubOwnership{
		events:        events,
		checkins:      checkins,
		apps:          newStubSpeakerRepo(),
		groups:        newStubGroupRepo(),
		collaborators: make(map[string]bool),
	}
	return &checkinFixture{
		svc:      NewCheckinService(checkins, events, dedup, testEvaluator(own), zerolog.Nop()),
		checkins: checkins,
		events:   events,
		dedup:    dedup,
		own:      own,
	}
}

func (f *checkinFixture) seedEvent(id, groupID string, status domain.EventStatus, capacity int) {
	f.events.events[id] = &domain.Event{ID: id, UserGroupID: groupID, Status: status, Capacity: capacity}
}

func TestCheckinServiceRegister(t *testing.T) {
	f := newCheckinFixture()
	ctx := context.Background()
	f.seedEvent("e1", "g1", domain.EventPublished, 2)
	attendee := testClaims("u2", domain.RoleAttendee)

	created, err := f.svc.Register(ctx, attendee, "e1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if created.CheckedIn() {
		t.Error("fresh registration must not be checked in")
	}

	if _, err := f.svc.Register(ctx, attendee, "e1"); !errors.Is(err, domain.ErrAlreadyRegistered) {
		t.Errorf("second registration: expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestCheckinServiceRegisterDraftEventInvisible(t *testing.T) {
	f := newCheckinFixture()
	f.seedEvent("e1", "g1", domain.EventDraft, 0)

	_, err := f.svc.Register(context.Background(), testClaims("u2", domain.RoleAttendee), "e1")
	if !errors.Is(err, domain.ErrEventNotFound) {
		t.Errorf("draft event: expected ErrEventNotFound, got %v", err)
	}
}

func TestCheckinServiceRegisterCapacity(t *testing.T) {
	f := newCheckinFixture()
	ctx := context.Background()
	f.seedEvent("e1", "g1", domain.EventPublished, 1)

	if _, err := f.svc.Register(ctx, testClaims("u2", domain.RoleAttendee), "e1"); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	if _, err := f.svc.Register(ctx, testClaims("u3", domain.RoleAttendee), "e1"); !errors.Is(err, domain.ErrEventFull) {
		t.Errorf("over capacity: expected ErrEventFull, got %v", err)
	}
}

func TestCheckinServiceRegisterUnauthenticated(t *testing.T) {
	f := newCheckinFixture()
	f.seedEvent("e1", "g1", domain.EventPublished, 0)

	if _, err := f.svc.Register(context.Background(), nil, "e1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestCheckinServiceListByEvent(t *testing.T) {
	f := newCheckinFixture()
	ctx := context.Background()
	f.seedEvent("e1", "g1", domain.EventPublished, 0)
	f.seedEvent("e2", "g1", domain.EventPublished, 0)
	if _, err := f.svc.Register(ctx, testClaims("u2", domain.RoleAttendee), "e1"); err != nil {
		t.Fatalf("seed registration: %v", err)
	}

	owner := testLeaderClaims("u1", "g1")
	roster, err := f.svc.ListByEvent(ctx, owner, "e1")
	if err != nil {
		t.Fatalf("owning leader roster: %v", err)
	}
	if len(roster) != 1 {
		t.Errorf("expected 1 registration, got %d", len(roster))
	}

	otherLeader := testLeaderClaims("u9", "g2")
	if _, err := f.svc.ListByEvent(ctx, otherLeader, "e1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("other group's leader: expected ErrForbidden, got %v", err)
	}

	// A collaborator sees the roster only for the assigned event.
	collab := testClaims("u4", domain.RoleCollaborator)
	f.own.collaborators["u4:e1"] = true
	if _, err := f.svc.ListByEvent(ctx, collab, "e1"); err != nil {
		t.Errorf("assigned collaborator roster: %v", err)
	}
	if _, err := f.svc.ListByEvent(ctx, collab, "e2"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unassigned event: expected ErrForbidden, got %v", err)
	}
}

func TestCheckinServiceAuthorizeScan(t *testing.T) {
	f := newCheckinFixture()
	ctx := context.Background()
	f.seedEvent("e1", "g1", domain.EventPublished, 0)
	f.seedEvent("e2", "g2", domain.EventPublished, 0)

	// A collaborator with no assignment must not reach the scan queue.
	collab := testClaims("u4", domain.RoleCollaborator)
	if err := f.svc.AuthorizeScan(ctx, collab, "e1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unassigned collaborator: expected ErrForbidden, got %v", err)
	}

	f.own.collaborators["u4:e1"] = true
	if err := f.svc.AuthorizeScan(ctx, collab, "e1"); err != nil {
		t.Errorf("assigned collaborator: %v", err)
	}
	if err := f.svc.AuthorizeScan(ctx, collab, "e2"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("collaborator on other event: expected ErrForbidden, got %v", err)
	}

	// Leaders scan only at their own group's events.
	if err := f.svc.AuthorizeScan(ctx, testLeaderClaims("u1", "g1"), "e1"); err != nil {
		t.Errorf("owning leader: %v", err)
	}
	if err := f.svc.AuthorizeScan(ctx, testLeaderClaims("u9", "g9"), "e1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unrelated leader: expected ErrForbidden, got %v", err)
	}

	if err := f.svc.AuthorizeScan(ctx, nil, "e1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("nil claims: expected ErrForbidden, got %v", err)
	}
}

func TestCheckinServiceProcess(t *testing.T) {
	f := newCheckinFixture()
	ctx := context.Background()
	f.seedEvent("e1", "g1", domain.EventPublished, 0)
	if _, err := f.svc.Register(ctx, testClaims("u2", domain.RoleAttendee), "e1"); err != nil {
		t.Fatalf("seed registration: %v", err)
	}

	scan := ports.CheckinScanInput{EventID: "e1", UserID: "u2", ScannedAt: time.Now(), Source: "qr"}
	if err := f.svc.Process(ctx, scan); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	stored, err := f.checkins.FindByEventAndUser(ctx, "e1", "u2")
	if err != nil {
		t.Fatalf("FindByEventAndUser: %v", err)
	}
	if !stored.CheckedIn() {
		t.Error("expected check-in stamped")
	}
	if stored.Source != "qr" {
		t.Errorf("expected source qr, got %q", stored.Source)
	}
	if len(f.dedup.marked) != 1 {
		t.Errorf("expected one dedup mark, got %d", len(f.dedup.marked))
	}
}

func TestCheckinServiceProcessNotRegistered(t *testing.T) {
	f := newCheckinFixture()
	f.seedEvent("e1", "g1", domain.EventPublished, 0)

	err := f.svc.Process(context.Background(), ports.CheckinScanInput{EventID: "e1", UserID: "ghost", ScannedAt: time.Now()})
	if !errors.Is(err, domain.ErrNotRegistered) {
		t.Errorf("expected ErrNotRegistered, got %v", err)
	}
}

func TestCheckinServiceProcessDuplicateScanSkipped(t *testing.T) {
	f := newCheckinFixture()
	ctx := context.Background()
	f.seedEvent("e1", "g1", domain.EventPublished, 0)
	if _, err := f.svc.Register(ctx, testClaims("u2", domain.RoleAttendee), "e1"); err != nil {
		t.Fatalf("seed registration: %v", err)
	}
	f.dedup.dupResult = true

	if err := f.svc.Process(ctx, ports.CheckinScanInput{EventID: "e1", UserID: "u2", ScannedAt: time.Now()}); err != nil {
		t.Fatalf("duplicate scan must be a silent no-op, got %v", err)
	}
	stored, _ := f.checkins.FindByEventAndUser(ctx, "e1", "u2")
	if stored.CheckedIn() {
		t.Error("duplicate scan must not stamp the check-in")
	}
}

func TestCheckinServiceProcessAlreadyCheckedIn(t *testing.T) {
	f := newCheckinFixture()
	ctx := context.Background()
	f.seedEvent("e1", "g1", domain.EventPublished, 0)
	if _, err := f.svc.Register(ctx, testClaims("u2", domain.RoleAttendee), "e1"); err != nil {
		t.Fatalf("seed registration: %v", err)
	}

	first := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	if err := f.svc.Process(ctx, ports.CheckinScanInput{EventID: "e1", UserID: "u2", ScannedAt: first, Source: "qr"}); err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if err := f.svc.Process(ctx, ports.CheckinScanInput{EventID: "e1", UserID: "u2", ScannedAt: first.Add(time.Hour), Source: "manual"}); err != nil {
		t.Fatalf("re-scan must be a no-op, got %v", err)
	}

	stored, _ := f.checkins.FindByEventAndUser(ctx, "e1", "u2")
	if !stored.CheckedInAt.Equal(first) {
		t.Errorf("re-scan must not overwrite the original timestamp: %v", stored.CheckedInAt)
	}
}

func TestCheckinServiceProcessDedupFailureDoesNotBlock(t *testing.T) {
	f := newCheckinFixture()
	ctx := context.Background()
	f.seedEvent("e1", "g1", domain.EventPublished, 0)
	if _, err := f.svc.Register(ctx, testClaims("u2", domain.RoleAttendee), "e1"); err != nil {
		t.Fatalf("seed registration: %v", err)
	}
	f.dedup.dupErr = errors.New("redis down")
	f.dedup.markErr = errors.New("redis down")

	if err := f.svc.Process(ctx, ports.CheckinScanInput{EventID: "e1", UserID: "u2", ScannedAt: time.Now()}); err != nil {
		t.Fatalf("dedup store outage must not block scans, got %v", err)
	}
	stored, _ := f.checkins.FindByEventAndUser(ctx, "e1", "u2")
	if !stored.CheckedIn() {
		t.Error("expected check-in stamped despite dedup outage")
	}
}
