// Package token signs and parses the session token that carries enriched
// session claims between requests. The token is the transport for claims
// only; it never re-derives role or group data on its own.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/communityos/eventhub/internal/core/domain"
)

var ErrInvalidToken = errors.New("invalid session token")

type groupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// sessionTokenClaims is the JWT payload. Field names are part of the
// externally visible claims contract and must stay stable.
type sessionTokenClaims struct {
	jwt.RegisteredClaims
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	UserGroupID  string    `json:"user_group_id,omitempty"`
	UserGroup    *groupRef `json:"user_group,omitempty"`
	LedUserGroup *groupRef `json:"led_user_group,omitempty"`
}

// Sign serialises claims into an HS256 JWT valid for ttl.
func Sign(claims *domain.SessionClaims, secret string, ttl time.Duration) (string, error) {
	if claims == nil {
		return "", ErrInvalidToken
	}
	now := time.Now().UTC()
	payload := sessionTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:        claims.Name,
		Email:       claims.Email,
		Role:        string(claims.Role),
		UserGroupID: claims.UserGroupID,
	}
	if claims.UserGroup != nil {
		payload.UserGroup = &groupRef{ID: claims.UserGroup.ID, Name: claims.UserGroup.Name}
	}
	if claims.LedUserGroup != nil {
		payload.LedUserGroup = &groupRef{ID: claims.LedUserGroup.ID, Name: claims.LedUserGroup.Name}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	return t.SignedString([]byte(secret))
}

// Parse verifies the token signature and expiry and reconstructs the session
// claims snapshot embedded at sign time. Any verification failure returns
// ErrInvalidToken; callers treat the bearer as unauthenticated.
func Parse(tokenStr, secret string) (*domain.SessionClaims, error) {
	payload := &sessionTokenClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, payload, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}

	role := domain.Role(payload.Role)
	if !role.Valid() || payload.Subject == "" {
		return nil, ErrInvalidToken
	}

	claims := &domain.SessionClaims{
		UserID:      payload.Subject,
		Name:        payload.Name,
		Email:       payload.Email,
		Role:        role,
		UserGroupID: payload.UserGroupID,
		Status:      domain.AuthStatusAuthenticated,
	}
	if payload.UserGroup != nil {
		claims.UserGroup = &domain.UserGroupRef{ID: payload.UserGroup.ID, Name: payload.UserGroup.Name}
	}
	if payload.LedUserGroup != nil {
		claims.LedUserGroup = &domain.UserGroupRef{ID: payload.LedUserGroup.ID, Name: payload.LedUserGroup.Name}
	}
	return claims, nil
}
