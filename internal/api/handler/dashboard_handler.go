package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/api/middleware"
	"github.com/communityos/eventhub/internal/core/authz"
	"github.com/communityos/eventhub/internal/core/domain"
)

// DashboardHandler serves the signed-in landing pages. The JSON payloads
// carry the navigation flags the frontend uses to decide which sections to
// render; the guards on the routes remain the enforcement point.
type DashboardHandler struct {
	evaluator *authz.Evaluator
}

func NewDashboardHandler(evaluator *authz.Evaluator) *DashboardHandler {
	return &DashboardHandler{evaluator: evaluator}
}

type dashboardResponse struct {
	User       *domain.SessionClaims `json:"user"`
	Navigation navigationFlags       `json:"navigation"`
}

type navigationFlags struct {
	IsCommunityLeader  bool `json:"is_community_leader"`
	IsSpeaker          bool `json:"is_speaker"`
	IsAttendee         bool `json:"is_attendee"`
	IsCollaborator     bool `json:"is_collaborator"`
	CanManageUserGroup bool `json:"can_manage_user_group"`
	CanCreateEvents    bool `json:"can_create_events"`
}

// Home handles GET /dashboard.
//
// @Summary      Signed-in landing page
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Home(c echo.Context) error {
	claims := middleware.ClaimsFrom(c)
	auth := authz.NewFacade(claims, h.evaluator)

	return c.JSON(http.StatusOK, dashboardResponse{
		User: claims,
		Navigation: navigationFlags{
			IsCommunityLeader:  auth.IsCommunityLeader(),
			IsSpeaker:          auth.IsSpeaker(),
			IsAttendee:         auth.IsAttendee(),
			IsCollaborator:     auth.IsCollaborator(),
			CanManageUserGroup: auth.CanManageUserGroup(),
			CanCreateEvents:    auth.CanCreateEvents(),
		},
	})
}

// EditEvent handles GET /dashboard/events/:id/edit. The page guard has
// already verified update permission; the handler only acknowledges which
// event the edit form targets.
func (h *DashboardHandler) EditEvent(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"event_id": c.Param("id")})
}

// CheckinDesk handles GET /dashboard/events/:id/checkin, the door-scan page
// for leaders and assigned collaborators. Guarded upstream.
func (h *DashboardHandler) CheckinDesk(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"event_id": c.Param("id")})
}

// ManageGroup handles GET /dashboard/usergroup/:id. Guarded upstream.
func (h *DashboardHandler) ManageGroup(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"user_group_id": c.Param("id")})
}
