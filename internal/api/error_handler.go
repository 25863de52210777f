package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/communityos/eventhub/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrIdentityNotFound):
		return http.StatusUnauthorized, "session no longer valid"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, "event not found"
	case errors.Is(err, domain.ErrGroupNotFound):
		return http.StatusNotFound, "user group not found"
	case errors.Is(err, domain.ErrCheckinNotFound):
		return http.StatusNotFound, "check-in not found"
	case errors.Is(err, domain.ErrSponsorNotFound):
		return http.StatusNotFound, "sponsor not found"
	case errors.Is(err, domain.ErrContributionNotFound):
		return http.StatusNotFound, "contribution not found"
	case errors.Is(err, domain.ErrApplicationNotFound):
		return http.StatusNotFound, "speaker application not found"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return http.StatusConflict, "already registered for event"
	case errors.Is(err, domain.ErrNotRegistered):
		return http.StatusUnprocessableEntity, "not registered for event"
	case errors.Is(err, domain.ErrEventFull):
		return http.StatusConflict, "event is at capacity"
	case errors.Is(err, domain.ErrApplicationExists):
		return http.StatusConflict, "speaker application already submitted"
	case errors.Is(err, domain.ErrApplicationClosed):
		return http.StatusUnprocessableEntity, "speaker application already reviewed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
