package handler

import (
	"net/http"

	"barberbook/internal/application/dto"
	"barberbook/internal/application/service"
	"barberbook/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SettingsHandler exposes the barber profile and message template.
type SettingsHandler struct {
	settingsService service.SettingsService
	log             logger.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		log:             log,
	}
}

// GetSettings returns the saved settings, with defaults for a new user.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	userID := c.Param("uid")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "missing uid"})
	}
	settings, err := h.settingsService.Get(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// SaveSettings stores the name and template on explicit save.
func (h *SettingsHandler) SaveSettings(c echo.Context) error {
	userID := c.Param("uid")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "missing uid"})
	}
	var req dto.SaveSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid request body"})
	}
	settings, err := h.settingsService.Save(c.Request().Context(), userID, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}
