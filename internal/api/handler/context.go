package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/api/middleware"
	"github.com/communityos/eventhub/internal/core/domain"
)

// ctxClaims extracts the session claims injected by the Auth middleware and
// fast-fails before any service call when they are missing.
func ctxClaims(c echo.Context) (*domain.SessionClaims, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil || !claims.Authenticated() {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
