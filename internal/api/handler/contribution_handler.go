package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/core/ports"
)

// ContributionHandler handles HTTP requests for contributions.
type ContributionHandler struct {
	service ports.ContributionService
}

func NewContributionHandler(service ports.ContributionService) *ContributionHandler {
	return &ContributionHandler{service: service}
}

type contributionRequest struct {
	Kind        string `json:"kind"         validate:"required,oneof=monetary in_kind"`
	AmountCents int64  `json:"amount_cents" validate:"min=0"`
	Currency    string `json:"currency,omitempty"`
	Description string `json:"description,omitempty"`
}

// Create handles POST /v1/events/:id/contributions.
//
// @Summary      Record a contribution towards an event
// @Tags         contributions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Event id"
// @Param        body  body      contributionRequest  true  "Contribution details"
// @Success      201   {object}  domain.Contribution
// @Failure      403   {object}  map[string]string
// @Router       /v1/events/{id}/contributions [post]
func (h *ContributionHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req contributionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	contribution, err := h.service.Create(c.Request().Context(), claims, c.Param("id"), ports.ContributionInput{
		Kind:        domain.ContributionKind(req.Kind),
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contribution)
}

// Get handles GET /v1/contributions/:id.
//
// @Summary      Get a contribution
// @Tags         contributions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contribution id"
// @Success      200  {object}  domain.Contribution
// @Failure      404  {object}  map[string]string
// @Router       /v1/contributions/{id} [get]
func (h *ContributionHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	contribution, err := h.service.Get(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contribution)
}

// ListByEvent handles GET /v1/events/:id/contributions.
//
// @Summary      List contributions for an event
// @Tags         contributions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {array}   domain.Contribution
// @Failure      403  {object}  map[string]string
// @Router       /v1/events/{id}/contributions [get]
func (h *ContributionHandler) ListByEvent(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	contributions, err := h.service.ListByEvent(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contributions)
}

// Delete handles DELETE /v1/contributions/:id.
//
// @Summary      Remove a contribution record
// @Tags         contributions
// @Security     BearerAuth
// @Param        id  path  string  true  "Contribution id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /v1/contributions/{id} [delete]
func (h *ContributionHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
