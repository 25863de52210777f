package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/pkg/token"
)

// ClaimsKey is the echo context key under which middleware stores the
// caller's session claims.
const ClaimsKey = "claims"

// SessionCookieName is the cookie that carries the session token for
// browser clients. API clients send the same token as a bearer header.
const SessionCookieName = "eventhub_session"

// extractToken pulls the session token from the Authorization header or,
// failing that, the session cookie.
func extractToken(c echo.Context) string {
	if h := c.Request().Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Auth validates the session token and injects the claims snapshot into the
// request context. Requests without a valid token are rejected with 401.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			claims, err := token.Parse(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// Session resolves claims when a valid token is present but lets anonymous
// requests through with nil claims. Page handlers and guards decide what an
// unauthenticated visitor may see.
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw := extractToken(c); raw != "" {
				if claims, err := token.Parse(raw, secret); err == nil {
					c.Set(ClaimsKey, claims)
				}
			}
			return next(c)
		}
	}
}

// ClaimsFrom returns the session claims stored by Auth or Session, or nil
// when the request is anonymous.
func ClaimsFrom(c echo.Context) *domain.SessionClaims {
	claims, _ := c.Get(ClaimsKey).(*domain.SessionClaims)
	return claims
}

// WriteSessionCookie sets the session cookie for browser clients.
func WriteSessionCookie(c echo.Context, signed string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
