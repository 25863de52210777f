package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/core/ports"
)

// SponsorHandler handles HTTP requests for event sponsors.
type SponsorHandler struct {
	service ports.SponsorService
}

func NewSponsorHandler(service ports.SponsorService) *SponsorHandler {
	return &SponsorHandler{service: service}
}

type sponsorRequest struct {
	Name    string `json:"name" validate:"required"`
	Tier    string `json:"tier" validate:"required,oneof=platinum gold silver community"`
	Website string `json:"website,omitempty"`
}

func (r sponsorRequest) toInput() ports.SponsorInput {
	return ports.SponsorInput{Name: r.Name, Tier: r.Tier, Website: r.Website}
}

// Create handles POST /v1/events/:id/sponsors.
//
// @Summary      Add a sponsor to an event
// @Tags         sponsors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Event id"
// @Param        body  body      sponsorRequest  true  "Sponsor details"
// @Success      201   {object}  domain.Sponsor
// @Failure      403   {object}  map[string]string
// @Router       /v1/events/{id}/sponsors [post]
func (h *SponsorHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sponsorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sponsor, err := h.service.Create(c.Request().Context(), claims, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sponsor)
}

// Get handles GET /v1/sponsors/:id.
//
// @Summary      Get a sponsor
// @Tags         sponsors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sponsor id"
// @Success      200  {object}  domain.Sponsor
// @Failure      404  {object}  map[string]string
// @Router       /v1/sponsors/{id} [get]
func (h *SponsorHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	sponsor, err := h.service.Get(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sponsor)
}

// ListByEvent handles GET /v1/events/:id/sponsors.
//
// @Summary      List sponsors for an event
// @Tags         sponsors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {array}   domain.Sponsor
// @Router       /v1/events/{id}/sponsors [get]
func (h *SponsorHandler) ListByEvent(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	sponsors, err := h.service.ListByEvent(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sponsors)
}

// Update handles PATCH /v1/sponsors/:id.
//
// @Summary      Update a sponsor
// @Tags         sponsors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Sponsor id"
// @Param        body  body      sponsorRequest  true  "Sponsor details"
// @Success      200   {object}  domain.Sponsor
// @Failure      403   {object}  map[string]string
// @Router       /v1/sponsors/{id} [patch]
func (h *SponsorHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req sponsorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	sponsor, err := h.service.Update(c.Request().Context(), claims, c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sponsor)
}

// Delete handles DELETE /v1/sponsors/:id.
//
// @Summary      Remove a sponsor
// @Tags         sponsors
// @Security     BearerAuth
// @Param        id  path  string  true  "Sponsor id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /v1/sponsors/{id} [delete]
func (h *SponsorHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
