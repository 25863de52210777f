package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/core/ports"
)

// SpeakerHandler handles HTTP requests for speaker applications.
type SpeakerHandler struct {
	service ports.SpeakerService
}

func NewSpeakerHandler(service ports.SpeakerService) *SpeakerHandler {
	return &SpeakerHandler{service: service}
}

type applyRequest struct {
	Title    string `json:"title"    validate:"required"`
	Abstract string `json:"abstract" validate:"required"`
}

type updateApplicationRequest struct {
	Title    *string `json:"title,omitempty"`
	Abstract *string `json:"abstract,omitempty"`
}

type reviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accepted rejected"`
}

// Apply handles POST /v1/events/:id/speakers.
//
// @Summary      Submit a talk proposal
// @Tags         speakers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Event id"
// @Param        body  body      applyRequest  true  "Talk proposal"
// @Success      201   {object}  domain.SpeakerApplication
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/events/{id}/speakers [post]
func (h *SpeakerHandler) Apply(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	app, err := h.service.Apply(c.Request().Context(), claims, c.Param("id"), ports.ApplyInput{
		Title:    req.Title,
		Abstract: req.Abstract,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}

// Get handles GET /v1/speakers/:id.
//
// @Summary      Get a speaker application
// @Tags         speakers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Application id"
// @Success      200  {object}  domain.SpeakerApplication
// @Failure      404  {object}  map[string]string
// @Router       /v1/speakers/{id} [get]
func (h *SpeakerHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	app, err := h.service.Get(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Update handles PATCH /v1/speakers/:id.
//
// @Summary      Amend a pending application
// @Tags         speakers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Application id"
// @Param        body  body      updateApplicationRequest  true  "Fields to change"
// @Success      200   {object}  domain.SpeakerApplication
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/speakers/{id} [patch]
func (h *SpeakerHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateApplicationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	app, err := h.service.Update(c.Request().Context(), claims, c.Param("id"), ports.UpdateApplicationInput{
		Title:    req.Title,
		Abstract: req.Abstract,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// Review handles POST /v1/speakers/:id/review.
//
// @Summary      Accept or reject a pending application
// @Tags         speakers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Application id"
// @Param        body  body      reviewRequest  true  "Decision"
// @Success      200   {object}  domain.SpeakerApplication
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/speakers/{id}/review [post]
func (h *SpeakerHandler) Review(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	app, err := h.service.Review(c.Request().Context(), claims, c.Param("id"), domain.ApplicationStatus(req.Decision))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// ListByEvent handles GET /v1/events/:id/speakers.
//
// @Summary      List applications for an event
// @Tags         speakers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {array}   domain.SpeakerApplication
// @Failure      403  {object}  map[string]string
// @Router       /v1/events/{id}/speakers [get]
func (h *SpeakerHandler) ListByEvent(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	apps, err := h.service.ListByEvent(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, apps)
}
