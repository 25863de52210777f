package domain

// AuthStatus is the authentication state attached to session claims.
type AuthStatus string

const (
	AuthStatusAuthenticated   AuthStatus = "authenticated"
	AuthStatusLoading         AuthStatus = "loading"
	AuthStatusUnauthenticated AuthStatus = "unauthenticated"
)

// UserGroupRef is the group snapshot embedded in session claims.
type UserGroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SessionClaims is the session-scoped projection of a User plus its group
// relationships, captured once at sign-in (and again on token refresh).
// It is a snapshot: it may go stale relative to the durable record, and that
// staleness window is bounded by the session lifetime.
//
// UserGroup and LedUserGroup are independently nullable — a leader need not
// also be a member-flagged user, and vice versa. LedUserGroup is set only
// when the identity actually led that group at claims-construction time.
type SessionClaims struct {
	UserID       string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         Role          `json:"role"`
	UserGroupID  string        `json:"user_group_id,omitempty"`
	UserGroup    *UserGroupRef `json:"user_group,omitempty"`
	LedUserGroup *UserGroupRef `json:"led_user_group,omitempty"`
	Status       AuthStatus    `json:"-"`
}

// Authenticated reports whether the claims represent a signed-in identity.
func (c *SessionClaims) Authenticated() bool {
	return c != nil && c.Status == AuthStatusAuthenticated
}

// LedGroupID returns the id of the group the claims holder leads, or "".
func (c *SessionClaims) LedGroupID() string {
	if c == nil || c.LedUserGroup == nil {
		return ""
	}
	return c.LedUserGroup.ID
}
