package ports

import (
	"context"

	"github.com/communityos/eventhub/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	Role        domain.Role
	UserGroupID string
}

// AuthService implements sign-up and the session lifecycle. Login and
// Refresh both rebuild session claims from the durable record; refresh
// failing with domain.ErrIdentityNotFound forces re-authentication.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.SessionClaims, error)
	Refresh(ctx context.Context, claims *domain.SessionClaims) (string, *domain.SessionClaims, error)
}
