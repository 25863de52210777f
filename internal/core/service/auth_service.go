package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/communityos/eventhub/internal/core/authz"
	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/core/ports"
	"github.com/communityos/eventhub/internal/pkg/token"
)

// AuthService implements registration and the session lifecycle.
type AuthService struct {
	users      ports.UserRepository
	builder    *authz.Builder
	secret     string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewAuthService(users ports.UserRepository, builder *authz.Builder, secret string, sessionTTL time.Duration, log zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{users: users, builder: builder, secret: secret, sessionTTL: sessionTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		UserGroupID:  input.UserGroupID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies the password, builds a fresh claims snapshot, and signs a
// session token carrying it.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.SessionClaims, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// An unknown email and a wrong password look identical to the
		// caller, so account existence cannot be probed.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	claims, err := s.builder.Build(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	signed, err := token.Sign(claims, s.secret, s.sessionTTL)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// Refresh rebuilds the claims snapshot from the durable record and signs a
// new token. domain.ErrIdentityNotFound propagates unchanged so the caller
// can force sign-out rather than retry.
func (s *AuthService) Refresh(ctx context.Context, claims *domain.SessionClaims) (string, *domain.SessionClaims, error) {
	if !claims.Authenticated() {
		return "", nil, domain.ErrInvalidCredentials
	}

	fresh, err := s.builder.Build(ctx, claims.UserID)
	if err != nil {
		return "", nil, err
	}

	signed, err := token.Sign(fresh, s.secret, s.sessionTTL)
	if err != nil {
		return "", nil, err
	}
	return signed, fresh, nil
}
