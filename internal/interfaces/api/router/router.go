package router

import (
	"fmt"
	"net/http"

	"github.com/pavan-8374/PillAlarm/internal/interfaces/api/handler"
	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	AlarmHandler    *handler.AlarmHandler
	MedicineHandler *handler.MedicineHandler
	Logger          logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
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
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	api := e.Group("/api")

	// Medicine registry
	api.POST("/medicines", cfg.MedicineHandler.CreateMedicine)
	api.GET("/medicines/:medicineID", cfg.MedicineHandler.GetMedicine)
	api.PATCH("/medicines/:medicineID", cfg.MedicineHandler.RenameMedicine)
	api.DELETE("/medicines/:medicineID", cfg.MedicineHandler.DeleteMedicine)
	api.GET("/users/:userID/medicines", cfg.MedicineHandler.ListMedicines)

	// Alarms per medicine
	api.GET("/medicines/:medicineID/alarms", cfg.AlarmHandler.ListAlarms)
	api.POST("/medicines/:medicineID/alarms", cfg.AlarmHandler.CreateAlarm)
	api.DELETE("/alarms/:id", cfg.AlarmHandler.DeleteAlarm)

	// Alert acknowledgement
	api.GET("/alerts/active", cfg.AlarmHandler.ActiveAlert)
	api.POST("/alerts/:id/ack", cfg.AlarmHandler.AcknowledgeAlert)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
