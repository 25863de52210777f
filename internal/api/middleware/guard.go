package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/api/metrics"
	"github.com/communityos/eventhub/internal/core/authz"
)

// GuardConfig parameterises a single permission gate. One guard
// implementation serves every protected page; only the resource, action,
// and redirect targets vary.
type GuardConfig struct {
	Evaluator *authz.Evaluator
	Resource  authz.Resource
	Action    authz.Action
	// Param is the route parameter holding the resource id. Empty means a
	// coarse check against the claims snapshot alone.
	Param string
	// SignInURL receives unauthenticated visitors.
	SignInURL string
	// FallbackURL receives authenticated visitors who lack permission.
	FallbackURL string
}

func (cfg GuardConfig) allowed(c echo.Context) bool {
	claims := ClaimsFrom(c)
	resourceID := ""
	if cfg.Param != "" {
		resourceID = c.Param(cfg.Param)
	}

	ok := cfg.Evaluator.HasPermission(c.Request().Context(), claims, cfg.Resource, cfg.Action, resourceID)
	if !ok {
		metrics.PermissionDenialsTotal.WithLabelValues(string(cfg.Resource), string(cfg.Action)).Inc()
	}
	return ok
}

// PageGuard protects a browser page. Anonymous visitors are redirected to
// the sign-in page; authenticated visitors without permission are redirected
// to the fallback page. The protected content itself is never written before
// the decision.
func PageGuard(cfg GuardConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ClaimsFrom(c) == nil {
				return c.Redirect(http.StatusSeeOther, cfg.SignInURL)
			}
			if !cfg.allowed(c) {
				return c.Redirect(http.StatusSeeOther, cfg.FallbackURL)
			}
			return next(c)
		}
	}
}
