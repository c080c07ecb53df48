package handler

import (
	"net/http"

	"barberbook/internal/application/dto"
	"barberbook/internal/application/service"
	"barberbook/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DispatchHandler drives the bulk-send state machine and the manual
// single-message fallback.
type DispatchHandler struct {
	dispatchService service.DispatchService
	log             logger.Logger
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(dispatchService service.DispatchService, log logger.Logger) *DispatchHandler {
	return &DispatchHandler{
		dispatchService: dispatchService,
		log:             log,
	}
}

// Dispatch executes one state-machine action for the day bucket.
func (h *DispatchHandler) Dispatch(c echo.Context) error {
	userID, dateKey, err := bucketParams(c)
	if err != nil {
		return fail(c, err)
	}
	var req dto.DispatchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}

	ctx := c.Request().Context()
	var status *dto.DispatchStatus
	switch req.Action {
	case dto.DispatchActionRequest:
		status, err = h.dispatchService.RequestSend(ctx, userID, dateKey)
	case dto.DispatchActionConfirm:
		status, err = h.dispatchService.Confirm(ctx, userID, dateKey, req.ResendAck)
	case dto.DispatchActionCancel:
		status, err = h.dispatchService.Cancel(userID, dateKey)
	default:
		return c.JSON(http.StatusBadRequest, errorBody{Error: "unknown action"})
	}
	if err != nil {
		if status != nil {
			// A failed send still carries its terminal status for the UI.
			return c.JSON(httpStatusFor(err), status)
		}
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, status)
}

// DispatchStatus reports the state machine without advancing it.
func (h *DispatchHandler) DispatchStatus(c echo.Context) error {
	userID, dateKey, err := bucketParams(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, h.dispatchService.Status(userID, dateKey))
}

// ComposeManual returns the prefilled composer URI for one appointment.
func (h *DispatchHandler) ComposeManual(c echo.Context) error {
	userID, dateKey, err := bucketParams(c)
	if err != nil {
		return fail(c, err)
	}
	resp, err := h.dispatchService.ComposeManual(c.Request().Context(), userID, dateKey, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
