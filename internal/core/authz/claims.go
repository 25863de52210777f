package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/communityos/eventhub/internal/core/domain"
)

// IdentityStore resolves durable user records. The claims builder is the
// sole caller.
type IdentityStore interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// GroupStore resolves group membership and leadership for a user. Both are
// independently nullable.
type GroupStore interface {
	FindByID(ctx context.Context, id string) (*domain.UserGroup, error)
	FindByLeader(ctx context.Context, leaderID string) (*domain.UserGroup, error)
}

// Builder constructs session claims from the durable identity record.
// It runs once per authentication event and once per token refresh; the
// resulting claims are a snapshot and are never re-derived lazily.
type Builder struct {
	users  IdentityStore
	groups GroupStore
}

func NewBuilder(users IdentityStore, groups GroupStore) *Builder {
	return &Builder{users: users, groups: groups}
}

// Build resolves the identity and its group relationships and embeds the
// result verbatim. Either full claims are produced or construction fails
// atomically — there is no partial claims object.
//
// A missing identity returns domain.ErrIdentityNotFound; callers must treat
// that as "unauthenticated" and force re-authentication, not retry.
func (b *Builder) Build(ctx context.Context, userID string) (*domain.SessionClaims, error) {
	user, err := b.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("build claims: resolve identity: %w", err)
	}

	claims := &domain.SessionClaims{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		UserGroupID: user.UserGroupID,
		Status:      domain.AuthStatusAuthenticated,
	}

	if user.UserGroupID != "" {
		group, err := b.groups.FindByID(ctx, user.UserGroupID)
		switch {
		case err == nil:
			claims.UserGroup = &domain.UserGroupRef{ID: group.ID, Name: group.Name}
		case errors.Is(err, domain.ErrGroupNotFound):
			// Membership group deleted since assignment; claims carry no ref.
		default:
			return nil, fmt.Errorf("build claims: resolve membership: %w", err)
		}
	}

	// LedUserGroup is set only when the identity actually leads a group at
	// build time, and only community leaders can lead one.
	if user.Role == domain.RoleCommunityLeader {
		led, err := b.groups.FindByLeader(ctx, user.ID)
		switch {
		case err == nil:
			claims.LedUserGroup = &domain.UserGroupRef{ID: led.ID, Name: led.Name}
		case errors.Is(err, domain.ErrGroupNotFound):
			// Leadership transferred away; the leader keeps a claims object
			// with no led group and the policy denies group-scoped actions.
		default:
			return nil, fmt.Errorf("build claims: resolve leadership: %w", err)
		}
	}

	return claims, nil
}
