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

	appService "github.com/pavan-8374/PillAlarm/internal/application/service"
	"github.com/pavan-8374/PillAlarm/internal/infrastructure/audio"
	"github.com/pavan-8374/PillAlarm/internal/infrastructure/database/sqlite"
	"github.com/pavan-8374/PillAlarm/internal/infrastructure/display"
	"github.com/pavan-8374/PillAlarm/internal/infrastructure/timer"
	"github.com/pavan-8374/PillAlarm/internal/interfaces/api/handler"
	"github.com/pavan-8374/PillAlarm/internal/interfaces/api/router"
	appLogger "github.com/pavan-8374/PillAlarm/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

// audioSounder adapts the oto-backed sounder to the service interface.
type audioSounder struct {
	sounder *audio.Sounder
}

func (a audioSounder) Play() (appService.Playback, error) {
	playback, err := a.sounder.Play()
	if err != nil {
		return nil, err
	}
	return playback, nil
}

func gracefulShutdown(apiServer *http.Server, schedulerSvc appService.SchedulerService, alertSvc appService.AlertService, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the wake-up timer first so nothing fires mid-teardown
	log.Println("Stopping wake-up timer...")
	schedulerSvc.Stop()
	log.Println("Wake-up timer stopped.")

	// Silence any alarm still sounding
	alertSvc.Shutdown()

	// Close database connection
	log.Println("Closing database connection...")
	if err := sqlite.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	// The context gives in-flight requests 5 seconds to finish
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080" // Default port
		appLog.Warn("PORT environment variable not set, defaulting to 8080")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		appLog.Error("Invalid PORT environment variable", err)
		os.Exit(1)
	}

	// Exact wake-ups are on unless the platform denies the capability.
	exactAlarms := os.Getenv("EXACT_ALARMS") != "false"
	if !exactAlarms {
		appLog.Warn("Exact alarms disabled; wake-ups degrade to best-effort minute precision")
	}

	// --- Infrastructure ---
	db := sqlite.NewDB()
	alarmRepo := sqlite.NewAlarmRepository(db)
	medicineRepo := sqlite.NewMedicineRepository(db)
	appLog.Info("Database and repositories initialized.")

	wakeTimer := timer.NewTimer(appLog, exactAlarms)
	sounder := audio.NewSounder(appLog)
	presenter := display.NewConsolePresenter(appLog)

	// --- Application Services ---
	schedulerSvc := appService.NewSchedulerService(wakeTimer, alarmRepo, appLog)
	alertSvc := appService.NewAlertService(audioSounder{sounder: sounder}, presenter, appLog)
	alarmSvc := appService.NewAlarmService(alarmRepo, schedulerSvc, appLog)
	medicineSvc := appService.NewMedicineService(medicineRepo, alarmRepo, schedulerSvc, appLog)
	appLog.Info("Application services initialized.")

	// The fire handler only sees the payload; re-arming for next week runs
	// on the scheduler side, where the store is available.
	wakeTimer.SetHandler(func(payload timer.Payload) {
		alertSvc.HandleAlert(payload)
		schedulerSvc.HandleFired(context.Background(), uint(payload.AlarmID))
	})

	// --- Initialize Schedules ---
	appLog.Info("Re-arming alarm schedules...")
	if err := schedulerSvc.InitializeSchedules(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to initialize schedules on startup", err)
	} else {
		appLog.Info("Alarm schedules re-armed.")
	}

	// --- API Handlers ---
	alarmHandler := handler.NewAlarmHandler(alarmSvc, alertSvc, appLog)
	medicineHandler := handler.NewMedicineHandler(medicineSvc, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		AlarmHandler:    alarmHandler,
		MedicineHandler: medicineHandler,
		Logger:          appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, schedulerSvc, alertSvc, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
