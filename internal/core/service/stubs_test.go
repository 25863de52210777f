package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/communityos/eventhub/internal/core/authz"
	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	clone := *user
	r.nextID++
	clone.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubGroupRepo struct {
	groups map[string]*domain.UserGroup
}

func newStubGroupRepo() *stubGroupRepo {
	return &stubGroupRepo{groups: make(map[string]*domain.UserGroup)}
}

func (r *stubGroupRepo) Create(_ context.Context, group *domain.UserGroup) (*domain.UserGroup, error) {
	clone := *group
	r.groups[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubGroupRepo) FindByID(_ context.Context, id string) (*domain.UserGroup, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGroupRepo) FindByLeader(_ context.Context, leaderID string) (*domain.UserGroup, error) {
	for _, g := range r.groups {
		if g.LeaderID == leaderID {
			clone := *g
			return &clone, nil
		}
	}
	return nil, domain.ErrGroupNotFound
}

func (r *stubGroupRepo) Update(_ context.Context, group *domain.UserGroup) error {
	if _, ok := r.groups[group.ID]; !ok {
		return domain.ErrGroupNotFound
	}
	clone := *group
	r.groups[group.ID] = &clone
	return nil
}

func (r *stubGroupRepo) List(_ context.Context) ([]*domain.UserGroup, error) {
	out := make([]*domain.UserGroup, 0, len(r.groups))
	for _, g := range r.groups {
		clone := *g
		out = append(out, &clone)
	}
	return out, nil
}

type stubEventRepo struct {
	events map[string]*domain.Event
	nextID int
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{events: make(map[string]*domain.Event)}
}

func (r *stubEventRepo) Create(_ context.Context, event *domain.Event) (*domain.Event, error) {
	clone := *event
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("e%d", r.nextID)
	}
	r.events[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEventRepo) List(_ context.Context, filter ports.ListEventsFilter) ([]*domain.Event, int64, error) {
	var out []*domain.Event
	for _, e := range r.events {
		if filter.UserGroupID != "" && e.UserGroupID != filter.UserGroupID {
			continue
		}
		if filter.Status != "" && string(e.Status) != filter.Status {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubEventRepo) Update(_ context.Context, event *domain.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

type stubCheckinRepo struct {
	checkins map[string]*domain.Checkin // keyed by event:user
	nextID   int
}

func newStubCheckinRepo() *stubCheckinRepo {
	return &stubCheckinRepo{checkins: make(map[string]*domain.Checkin)}
}

func checkinKey(eventID, userID string) string { return eventID + ":" + userID }

func (r *stubCheckinRepo) Create(_ context.Context, checkin *domain.Checkin) (*domain.Checkin, error) {
	clone := *checkin
	r.nextID++
	clone.ID = fmt.Sprintf("c%d", r.nextID)
	r.checkins[checkinKey(clone.EventID, clone.UserID)] = &clone
	out := clone
	return &out, nil
}

func (r *stubCheckinRepo) FindByID(_ context.Context, id string) (*domain.Checkin, error) {
	for _, c := range r.checkins {
		if c.ID == id {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCheckinNotFound
}

func (r *stubCheckinRepo) FindByEventAndUser(_ context.Context, eventID, userID string) (*domain.Checkin, error) {
	c, ok := r.checkins[checkinKey(eventID, userID)]
	if !ok {
		return nil, domain.ErrCheckinNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCheckinRepo) ListByEvent(_ context.Context, eventID string) ([]*domain.Checkin, error) {
	var out []*domain.Checkin
	for _, c := range r.checkins {
		if c.EventID == eventID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCheckinRepo) CountByEvent(_ context.Context, eventID string) (int64, error) {
	var n int64
	for _, c := range r.checkins {
		if c.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (r *stubCheckinRepo) MarkCheckedIn(_ context.Context, eventID, userID string, at time.Time, source string) error {
	c, ok := r.checkins[checkinKey(eventID, userID)]
	if !ok {
		return domain.ErrCheckinNotFound
	}
	stamp := at
	c.CheckedInAt = &stamp
	c.Source = source
	return nil
}

func (r *stubCheckinRepo) Delete(_ context.Context, id string) error {
	for k, c := range r.checkins {
		if c.ID == id {
			delete(r.checkins, k)
			return nil
		}
	}
	return domain.ErrCheckinNotFound
}

type stubSpeakerRepo struct {
	apps   map[string]*domain.SpeakerApplication
	nextID int
}

func newStubSpeakerRepo() *stubSpeakerRepo {
	return &stubSpeakerRepo{apps: make(map[string]*domain.SpeakerApplication)}
}

func (r *stubSpeakerRepo) Create(_ context.Context, app *domain.SpeakerApplication) (*domain.SpeakerApplication, error) {
	clone := *app
	r.nextID++
	clone.ID = fmt.Sprintf("a%d", r.nextID)
	r.apps[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSpeakerRepo) FindByID(_ context.Context, id string) (*domain.SpeakerApplication, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubSpeakerRepo) FindByEventAndUser(_ context.Context, eventID, userID string) (*domain.SpeakerApplication, error) {
	for _, a := range r.apps {
		if a.EventID == eventID && a.UserID == userID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubSpeakerRepo) ListByEvent(_ context.Context, eventID string) ([]*domain.SpeakerApplication, error) {
	var out []*domain.SpeakerApplication
	for _, a := range r.apps {
		if a.EventID == eventID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSpeakerRepo) Update(_ context.Context, app *domain.SpeakerApplication) error {
	if _, ok := r.apps[app.ID]; !ok {
		return domain.ErrApplicationNotFound
	}
	clone := *app
	r.apps[app.ID] = &clone
	return nil
}

type stubDedup struct {
	dupResult bool
	dupErr    error
	markErr   error
	marked    []string
}

func (d *stubDedup) IsDuplicate(_ context.Context, eventID, userID string, _ time.Time) (bool, error) {
	return d.dupResult, d.dupErr
}

func (d *stubDedup) Mark(_ context.Context, eventID, userID string, _ time.Time) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.marked = append(d.marked, eventID+":"+userID)
	return nil
}

// stubOwnership resolves ownership from the in-memory repos so evaluator
// decisions in service tests track the seeded data.
type stubOwnership struct {
	events        *stubEventRepo
	checkins      *stubCheckinRepo
	apps          *stubSpeakerRepo
	groups        *stubGroupRepo
	collaborators map[string]bool // user:event
}

func (o *stubOwnership) ResolveOwnership(ctx context.Context, resource authz.Resource, resourceID string) (authz.Ownership, error) {
	switch resource {
	case authz.ResourceEvent:
		e, err := o.events.FindByID(ctx, resourceID)
		if err != nil {
			return authz.Ownership{}, err
		}
		return authz.Ownership{OwningGroupID: e.UserGroupID, OwnerUserID: e.CreatedBy, EventID: e.ID}, nil
	case authz.ResourceCheckin:
		if c, err := o.checkins.FindByID(ctx, resourceID); err == nil {
			e, err := o.events.FindByID(ctx, c.EventID)
			if err != nil {
				return authz.Ownership{}, err
			}
			return authz.Ownership{OwnerUserID: c.UserID, OwningGroupID: e.UserGroupID, EventID: c.EventID}, nil
		}
		e, err := o.events.FindByID(ctx, resourceID)
		if err != nil {
			return authz.Ownership{}, err
		}
		return authz.Ownership{OwningGroupID: e.UserGroupID, EventID: e.ID}, nil
	case authz.ResourceSpeaker:
		a, err := o.apps.FindByID(ctx, resourceID)
		if err != nil {
			return authz.Ownership{}, err
		}
		own := authz.Ownership{OwnerUserID: a.UserID, EventID: a.EventID}
		if e, err := o.events.FindByID(ctx, a.EventID); err == nil {
			own.OwningGroupID = e.UserGroupID
		}
		return own, nil
	case authz.ResourceUserGroup:
		g, err := o.groups.FindByID(ctx, resourceID)
		if err != nil {
			return authz.Ownership{}, err
		}
		return authz.Ownership{OwningGroupID: g.ID, OwnerUserID: g.LeaderID}, nil
	}
	return authz.Ownership{}, domain.ErrEventNotFound
}

func (o *stubOwnership) IsCollaborator(_ context.Context, userID, eventID string) (bool, error) {
	return o.collaborators[userID+":"+eventID], nil
}

// ---------------------------------------------------------------------------
// Claims helpers.
// ---------------------------------------------------------------------------

func testLeaderClaims(userID, ledGroupID string) *domain.SessionClaims {
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

func testClaims(userID string, role domain.Role) *domain.SessionClaims {
	return &domain.SessionClaims{UserID: userID, Role: role, Status: domain.AuthStatusAuthenticated}
}

func testEvaluator(own *stubOwnership) *authz.Evaluator {
	return authz.NewEvaluator(own, zerolog.Nop())
}
