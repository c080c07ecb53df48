package handler

import (
	"errors"
	"fmt"
	"net/http"

	"barberbook/internal/application/dto"
	"barberbook/internal/application/service"
	"barberbook/internal/pkg/datekey"
	appErrors "barberbook/internal/pkg/errors"
	"barberbook/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScheduleHandler exposes day buckets and appointment lifecycle operations.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
	daybookService  service.DaybookService
	log             logger.Logger
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(
	scheduleService service.ScheduleService,
	daybookService service.DaybookService,
	log logger.Logger,
) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		daybookService:  daybookService,
		log:             log,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// httpStatusFor maps application error kinds onto HTTP statuses.
func httpStatusFor(err error) int {
	switch {
	case errors.Is(err, appErrors.ErrInvalidContact),
		errors.Is(err, appErrors.ErrInvalidDateKey),
		errors.Is(err, appErrors.ErrInvalidTime),
		errors.Is(err, appErrors.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, appErrors.ErrAppointmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, appErrors.ErrDispatchBusy):
		return http.StatusConflict
	case errors.Is(err, appErrors.ErrDispatchState):
		return http.StatusConflict
	case errors.Is(err, appErrors.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, appErrors.ErrDispatchConnectivity):
		return http.StatusBadGateway
	case errors.Is(err, appErrors.ErrDispatchServer):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fail(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return c.JSON(he.Code, errorBody{Error: fmt.Sprintf("%v", he.Message)})
	}
	return c.JSON(httpStatusFor(err), errorBody{Error: err.Error()})
}

// bucketParams validates the :uid and :date path parameters.
func bucketParams(c echo.Context) (userID, dateKey string, err error) {
	userID = c.Param("uid")
	dateKey = c.Param("date")
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "missing uid")
	}
	if !datekey.Valid(dateKey) {
		return "", "", appErrors.ErrInvalidDateKey
	}
	return userID, dateKey, nil
}

// GetDay returns the current snapshot of one day bucket.
func (h *ScheduleHandler) GetDay(c echo.Context) error {
	userID, dateKey, err := bucketParams(c)
	if err != nil {
		return fail(c, err)
	}
	snap, err := h.daybookService.Snapshot(c.Request().Context(), userID, dateKey)
	if err != nil {
		h.log.Error(fmt.Sprintf("Failed to build day snapshot %s/%s", userID, dateKey), err)
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// WatchDay streams day snapshots over SSE until the client disconnects.
func (h *ScheduleHandler) WatchDay(c echo.Context) error {
	userID, dateKey, err := bucketParams(c)
	if err != nil {
		return fail(c, err)
	}

	ctx := c.Request().Context()
	snapshots := make(chan dto.DaySnapshot, 4)
	watch := h.daybookService.NewWatch(func(snap dto.DaySnapshot) {
		select {
		case snapshots <- snap:
		case <-ctx.Done():
		}
	})
	if err := watch.SetDay(ctx, userID, dateKey); err != nil {
		return fail(c, err)
	}
	defer watch.Close()

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/event-stream")
	resp.Header().Set(echo.HeaderCacheControl, "no-cache")
	resp.Header().Set(echo.HeaderConnection, "keep-alive")
	resp.WriteHeader(http.StatusOK)

	enc := newSSEEncoder(resp)
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap := <-snapshots:
			if err := enc.WriteEvent("snapshot", snap); err != nil {
				h.log.Debug(fmt.Sprintf("Watch stream for %s/%s closed: %v", userID, dateKey, err))
				return nil
			}
			resp.Flush()
		}
	}
}

// CreateAppointment adds a new appointment to the bucket.
func (h *ScheduleHandler) CreateAppointment(c echo.Context) error {
	userID, dateKey, err := bucketParams(c)
	if err != nil {
		return fail(c, err)
	}
	var req dto.CreateAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}
	appt, err := h.scheduleService.Create(c.Request().Context(), userID, dateKey, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, appt)
}

// EditAppointmentTime reschedules an appointment within its day.
func (h *ScheduleHandler) EditAppointmentTime(c echo.Context) error {
	userID, dateKey, err := bucketParams(c)
	if err != nil {
		return fail(c, err)
	}
	var req dto.EditAppointmentTimeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}
	if err := h.scheduleService.EditTime(c.Request().Context(), userID, dateKey, c.Param("id"), req); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAppointment removes an appointment.
func (h *ScheduleHandler) DeleteAppointment(c echo.Context) error {
	userID, dateKey, err := bucketParams(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.scheduleService.Delete(c.Request().Context(), userID, dateKey, c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DuplicateAppointment copies an appointment to the same weekday next week.
func (h *ScheduleHandler) DuplicateAppointment(c echo.Context) error {
	userID, dateKey, err := bucketParams(c)
	if err != nil {
		return fail(c, err)
	}
	result, err := h.scheduleService.DuplicateToNextWeek(c.Request().Context(), userID, dateKey, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// UnlockDay hides the lock indicator for the current session. No sent flag
// changes; the lock returns with the next snapshot of a still-sent day.
func (h *ScheduleHandler) UnlockDay(c echo.Context) error {
	userID, dateKey, err := bucketParams(c)
	if err != nil {
		return fail(c, err)
	}
	h.daybookService.SuppressLock(userID, dateKey)
	return c.NoContent(http.StatusNoContent)
}
