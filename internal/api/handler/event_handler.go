package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/api/middleware"
	"github.com/communityos/eventhub/internal/core/domain"
	"github.com/communityos/eventhub/internal/core/ports"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// Create handles POST /v1/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEventRequest  true  "Event details"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	event, err := h.service.Create(c.Request().Context(), claims, ports.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, event)
}

// Get handles GET /v1/events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  map[string]string
// @Router       /v1/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	event, err := h.service.Get(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// List handles GET /v1/events.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        user_group_id  query     string  false  "Scope to one group"
// @Param        status         query     string  false  "Filter by status"
// @Param        search         query     string  false  "Partial match on title or venue"
// @Param        page           query     int     false  "Page (1-based)"
// @Param        limit          query     int     false  "Rows per page (max 100)"
// @Success      200  {object}  listEventsResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), claims, ports.ListEventsInput{
		UserGroupID: c.QueryParam("user_group_id"),
		Status:      c.QueryParam("status"),
		Search:      c.QueryParam("search"),
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listEventsResponse{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Update handles PATCH /v1/events/:id.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Event id"
// @Param        body  body      updateEventRequest  true  "Fields to change"
// @Success      200   {object}  domain.Event
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/events/{id} [patch]
func (h *EventHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	event, err := h.service.Update(c.Request().Context(), claims, c.Param("id"), ports.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Transition handles POST /v1/events/:id/transition.
//
// @Summary      Change an event's lifecycle status
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Event id"
// @Param        body  body      transitionEventRequest  true  "Target status"
// @Success      200   {object}  domain.Event
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/events/{id}/transition [post]
func (h *EventHandler) Transition(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req transitionEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	event, err := h.service.Transition(c.Request().Context(), claims, c.Param("id"), domain.EventStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /v1/events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Security     BearerAuth
// @Param        id  path  string  true  "Event id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claims, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
