package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pavan-8374/PillAlarm/internal/application/dto"
	"github.com/pavan-8374/PillAlarm/internal/application/service"
	appErrors "github.com/pavan-8374/PillAlarm/internal/pkg/errors"
	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AlarmHandler exposes the alarm view-model surface over HTTP.
type AlarmHandler struct {
	alarmService service.AlarmService
	alertService service.AlertService
	log          logger.Logger
}

// NewAlarmHandler creates a new AlarmHandler.
func NewAlarmHandler(
	alarmService service.AlarmService,
	alertService service.AlertService,
	log logger.Logger,
) *AlarmHandler {
	return &AlarmHandler{
		alarmService: alarmService,
		alertService: alertService,
		log:          log,
	}
}

// ListAlarms handles GET /api/medicines/:medicineID/alarms.
func (h *AlarmHandler) ListAlarms(c echo.Context) error {
	ctx := c.Request().Context()
	medicineID := c.Param("medicineID")

	alarms, err := h.alarmService.Load(ctx, medicineID)
	if err != nil {
		h.log.Error(fmt.Sprintf("Failed to load alarms for medicine %s", medicineID), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load alarms"})
	}
	return c.JSON(http.StatusOK, alarms)
}

// CreateAlarm handles POST /api/medicines/:medicineID/alarms.
func (h *AlarmHandler) CreateAlarm(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateAlarmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	req.MedicineID = c.Param("medicineID")

	alarm, err := h.alarmService.AddAlarm(ctx, req)
	if err != nil {
		if errors.Is(err, appErrors.ErrInvalidTime) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		h.log.Error(fmt.Sprintf("Failed to create alarm for medicine %s", req.MedicineID), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create alarm"})
	}
	return c.JSON(http.StatusCreated, alarm)
}

// DeleteAlarm handles DELETE /api/alarms/:id.
func (h *AlarmHandler) DeleteAlarm(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid alarm id"})
	}

	if err := h.alarmService.DeleteAlarm(ctx, uint(id)); err != nil {
		h.log.Error(fmt.Sprintf("Failed to delete alarm %d", id), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete alarm"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ActiveAlert handles GET /api/alerts/active.
func (h *AlarmHandler) ActiveAlert(c echo.Context) error {
	payload, ok := h.alertService.Active()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no active alert"})
	}
	return c.JSON(http.StatusOK, payload)
}

// AcknowledgeAlert handles POST /api/alerts/:id/ack, the single terminal
// action for an active alert.
func (h *AlarmHandler) AcknowledgeAlert(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid alarm id"})
	}

	if err := h.alertService.Acknowledge(id); err != nil {
		if errors.Is(err, appErrors.ErrAlertNotActive) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "no active alert for this alarm"})
		}
		h.log.Error(fmt.Sprintf("Failed to acknowledge alarm %d", id), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to acknowledge alert"})
	}
	return c.NoContent(http.StatusNoContent)
}
