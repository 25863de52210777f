package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/api/metrics"
	"github.com/communityos/eventhub/internal/api/middleware"
	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessionTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, sessionTTL: sessionTTL}
}

type registerRequest struct {
	Name        string `json:"name"     validate:"required"`
	Email       string `json:"email"    validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role"     validate:"required,oneof=COMMUNITY_LEADER SPEAKER ATTENDEE COLLABORATOR"`
	UserGroupID string `json:"user_group_id,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token  string                `json:"token,omitempty"`
	User   *domain.User          `json:"user,omitempty"`
	Claims *domain.SessionClaims `json:"claims,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
		UserGroupID: req.UserGroupID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns the session token. The same token
// is also written as a session cookie for browser clients.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, claims, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failed").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()

	middleware.WriteSessionCookie(c, token, h.sessionTTL)
	return c.JSON(http.StatusOK, authResponse{Token: token, Claims: claims})
}

// Refresh rebuilds the session claims from the durable record and rotates
// the token. A deleted or revoked identity yields 401 and clears the cookie.
//
// @Summary      Refresh the session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	token, fresh, err := h.authService.Refresh(c.Request().Context(), claims)
	if err != nil {
		middleware.ClearSessionCookie(c)
		return err
	}

	middleware.WriteSessionCookie(c, token, h.sessionTTL)
	return c.JSON(http.StatusOK, authResponse{Token: token, Claims: fresh})
}

// Me returns the claims carried by the current session token. The snapshot
// may be stale relative to the durable record; clients that need the latest
// role or group linkage should call Refresh instead.
//
// @Summary      Current session claims
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Claims: claims})
}

// Logout clears the session cookie. Tokens already issued simply expire.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}
