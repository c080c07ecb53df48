package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	appService "barberbook/internal/application/service"

	"barberbook/internal/infrastructure/database/sqlite"
	dispatchClient "barberbook/internal/infrastructure/dispatch"
	"barberbook/internal/infrastructure/realtime"
	"barberbook/internal/infrastructure/scheduler"

	"barberbook/internal/interfaces/api/handler"
	apimiddleware "barberbook/internal/interfaces/api/middleware"
	"barberbook/internal/interfaces/api/router"

	appLogger "barberbook/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

func gracefulShutdown(apiServer *http.Server, retentionService appService.RetentionService, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	log.Println("Stopping retention scheduler...")
	retentionService.Stop()
	log.Println("Retention scheduler stopped.")

	log.Println("Closing database connection...")
	if err := sqlite.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	// Give in-flight requests five seconds to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	done <- true
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
		appLog.Warn("PORT environment variable not set, defaulting to 8080")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		appLog.Error("Invalid PORT environment variable", err)
		os.Exit(1)
	}

	// --- Infrastructure ---
	db := sqlite.NewDB()
	apptRepo := sqlite.NewAppointmentRepository(db)
	settingsRepo := sqlite.NewSettingsRepository(db)
	appLog.Info("Database and repositories initialized.")

	hub := realtime.New()
	reminderClient := dispatchClient.NewClient(appLog)
	cronScheduler := scheduler.NewScheduler(appLog)

	// --- Application Services ---
	daybookSvc := appService.NewDaybookService(apptRepo, hub, appLog)
	scheduleSvc := appService.NewScheduleService(apptRepo, daybookSvc, appLog)
	settingsSvc := appService.NewSettingsService(settingsRepo, appLog)
	dispatchSvc := appService.NewDispatchService(apptRepo, settingsSvc, reminderClient, appLog)
	retentionSvc := appService.NewRetentionService(cronScheduler, apptRepo, appLog)
	appLog.Info("Application services initialized.")

	if err := retentionSvc.Start(); err != nil {
		// Housekeeping is not worth refusing to serve over.
		appLog.Error("Failed to schedule retention purge on startup", err)
	}

	// --- API Handlers ---
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, daybookSvc, appLog)
	dispatchHandler := handler.NewDispatchHandler(dispatchSvc, appLog)
	settingsHandler := handler.NewSettingsHandler(settingsSvc, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		ScheduleHandler: scheduleHandler,
		DispatchHandler: dispatchHandler,
		SettingsHandler: settingsHandler,
		DispatchLimiter: apimiddleware.NewRateLimiter(dispatchRPS(), dispatchBurst()),
		Logger:          appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // the watch stream writes indefinitely
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, retentionSvc, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	<-done
	appLog.Info("Graceful shutdown complete.")
}

func dispatchRPS() float64 {
	if raw := os.Getenv("SEND_RATE_RPS"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
			return v
		}
	}
	return 1
}

func dispatchBurst() int {
	if raw := os.Getenv("SEND_RATE_BURST"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return 3
}
