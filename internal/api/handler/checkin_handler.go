package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/communityos/eventhub/internal/core/ports"
)

// ScanDispatcher is the interface the handler uses to enqueue door scans.
type ScanDispatcher interface {
	Enqueue(scan ports.CheckinScanInput)
	EnqueueBatch(scans []ports.CheckinScanInput)
}

// CheckinHandler covers attendee registration, rosters, and door-scan ingestion.
type CheckinHandler struct {
	service    ports.CheckinService
	dispatcher ScanDispatcher
}

func NewCheckinHandler(service ports.CheckinService, dispatcher ScanDispatcher) *CheckinHandler {
	return &CheckinHandler{service: service, dispatcher: dispatcher}
}

// Register handles POST /v1/checkins — registers the caller for an event.
//
// @Summary      Register for an event
// @Tags         checkins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerCheckinRequest  true  "Event to register for"
// @Success      201   {object}  domain.Checkin
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /v1/checkins [post]
func (h *CheckinHandler) Register(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req registerCheckinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	checkin, err := h.service.Register(c.Request().Context(), claims, req.EventID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, checkin)
}

// ListByEvent handles GET /v1/events/:id/checkins — the event roster.
//
// @Summary      List registrations for an event
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {array}   domain.Checkin
// @Failure      403  {object}  map[string]string
// @Router       /v1/events/{id}/checkins [get]
func (h *CheckinHandler) ListByEvent(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	roster, err := h.service.ListByEvent(c.Request().Context(), claims, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roster)
}

// Scan handles POST /v1/checkins/scan — enqueues a single door scan, returns 202.
//
// @Summary      Ingest a single door scan
// @Tags         checkins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkinScanRequest  true  "Door scan"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/checkins/scan [post]
func (h *CheckinHandler) Scan(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req checkinScanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.AuthorizeScan(c.Request().Context(), claims, req.EventID); err != nil {
		return err
	}

	h.dispatcher.Enqueue(toScanInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "scan accepted"})
}

// ScanBatch handles POST /v1/checkins/scan/batch — enqueues a batch of scans, returns 202.
//
// @Summary      Ingest a batch of door scans
// @Tags         checkins
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []checkinScanRequest  true  "Array of door scans"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/checkins/scan/batch [post]
func (h *CheckinHandler) ScanBatch(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var reqs []checkinScanRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	ctx := c.Request().Context()
	authorized := make(map[string]bool, 1)
	inputs := make([]ports.CheckinScanInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("scan[%d]: %s", i, err.Error()))
		}
		// Batches usually target one event, so cache the per-event decision.
		if !authorized[req.EventID] {
			if err := h.service.AuthorizeScan(ctx, claims, req.EventID); err != nil {
				return err
			}
			authorized[req.EventID] = true
		}
		inputs = append(inputs, toScanInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "scans accepted",
		Count:   len(inputs),
	})
}

// toScanInput maps the HTTP request to the service DTO.
func toScanInput(r checkinScanRequest) ports.CheckinScanInput {
	return ports.CheckinScanInput{
		EventID:   r.EventID,
		UserID:    r.UserID,
		ScannedAt: r.ScannedAt,
		Source:    r.Source,
	}
}
