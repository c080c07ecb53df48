package router

import (
	"fmt"
	"net/http"

	"barberbook/internal/interfaces/api/handler"
	apimiddleware "barberbook/internal/interfaces/api/middleware"
	"barberbook/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	ScheduleHandler *handler.ScheduleHandler
	DispatchHandler *handler.DispatchHandler
	SettingsHandler *handler.SettingsHandler
	DispatchLimiter *apimiddleware.RateLimiter
	Logger          logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "barberbook up")
	})

	api := e.Group("/api/users/:uid")

	day := api.Group("/days/:date")
	day.GET("", cfg.ScheduleHandler.GetDay)
	day.GET("/watch", cfg.ScheduleHandler.WatchDay)
	day.POST("/appointments", cfg.ScheduleHandler.CreateAppointment)
	day.PATCH("/appointments/:id", cfg.ScheduleHandler.EditAppointmentTime)
	day.DELETE("/appointments/:id", cfg.ScheduleHandler.DeleteAppointment)
	day.POST("/appointments/:id/duplicate", cfg.ScheduleHandler.DuplicateAppointment)
	day.POST("/appointments/:id/compose", cfg.DispatchHandler.ComposeManual)
	day.POST("/unlock", cfg.ScheduleHandler.UnlockDay)
	day.GET("/dispatch", cfg.DispatchHandler.DispatchStatus)
	day.POST("/dispatch", cfg.DispatchHandler.Dispatch, cfg.DispatchLimiter.Middleware())

	api.GET("/settings", cfg.SettingsHandler.GetSettings)
	api.PUT("/settings", cfg.SettingsHandler.SaveSettings)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
