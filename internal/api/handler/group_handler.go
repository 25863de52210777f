package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/core/ports"
)

// GroupHandler handles HTTP requests for user groups and collaborator
// assignments.
type GroupHandler struct {
	service ports.GroupService
}

func NewGroupHandler(service ports.GroupService) *GroupHandler {
	return &GroupHandler{service: service}
}

type updateGroupRequest struct {
	Name *string `json:"name,omitempty"`
	City *string `json:"city,omitempty"`
}

type assignCollaboratorRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// Get handles GET /v1/usergroups/:id.
//
// @Summary      Get a user group
// @Tags         usergroups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Group id"
// @Success      200  {object}  domain.UserGroup
// @Failure      404  {object}  map[string]string
// @Router       /v1/usergroups/{id} [get]
func (h *GroupHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	group, err := h.service.Get(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

// List handles GET /v1/usergroups.
//
// @Summary      List user groups
// @Tags         usergroups
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserGroup
// @Router       /v1/usergroups [get]
func (h *GroupHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	groups, err := h.service.List(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

// Update handles PATCH /v1/usergroups/:id.
//
// @Summary      Update a user group
// @Tags         usergroups
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Group id"
// @Param        body  body      updateGroupRequest  true  "Fields to change"
// @Success      200   {object}  domain.UserGroup
// @Failure      403   {object}  map[string]string
// @Router       /v1/usergroups/{id} [patch]
func (h *GroupHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	group, err := h.service.Update(c.Request().Context(), claims, c.Param("id"), ports.UpdateGroupInput{
		Name: req.Name,
		City: req.City,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, group)
}

// AssignCollaborator handles POST /v1/events/:id/collaborators.
//
// @Summary      Assign a collaborator to an event
// @Tags         usergroups
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                     true  "Event id"
// @Param        body  body  assignCollaboratorRequest  true  "Collaborator to assign"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /v1/events/{id}/collaborators [post]
func (h *GroupHandler) AssignCollaborator(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req assignCollaboratorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.AssignCollaborator(c.Request().Context(), claims, c.Param("id"), req.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveCollaborator handles DELETE /v1/events/:id/collaborators/:userID.
//
// @Summary      Remove a collaborator from an event
// @Tags         usergroups
// @Security     BearerAuth
// @Param        id      path  string  true  "Event id"
// @Param        userID  path  string  true  "Collaborator user id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /v1/events/{id}/collaborators/{userID} [delete]
func (h *GroupHandler) RemoveCollaborator(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.RemoveCollaborator(c.Request().Context(), claims, c.Param("id"), c.Param("userID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCollaborators handles GET /v1/events/:id/collaborators.
//
// @Summary      List an event's collaborators
// @Tags         usergroups
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {array}   domain.CollaboratorAssignment
// @Failure      403  {object}  map[string]string
// @Router       /v1/events/{id}/collaborators [get]
func (h *GroupHandler) ListCollaborators(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	assignments, err := h.service.ListCollaborators(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, assignments)
}
