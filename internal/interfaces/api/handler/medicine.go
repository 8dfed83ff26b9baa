package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pavan-8374/PillAlarm/internal/application/dto"
	"github.com/pavan-8374/PillAlarm/internal/application/service"
	appErrors "github.com/pavan-8374/PillAlarm/internal/pkg/errors"
	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MedicineHandler exposes the medicine registry over HTTP.
type MedicineHandler struct {
	medicineService service.MedicineService
	log             logger.Logger
}

// NewMedicineHandler creates a new MedicineHandler.
func NewMedicineHandler(medicineService service.MedicineService, log logger.Logger) *MedicineHandler {
	return &MedicineHandler{
		medicineService: medicineService,
		log:             log,
	}
}

// CreateMedicine handles POST /api/medicines.
func (h *MedicineHandler) CreateMedicine(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateMedicineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	medicine, err := h.medicineService.CreateMedicine(ctx, req)
	if err != nil {
		h.log.Error("Failed to create medicine", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to create medicine"})
	}
	return c.JSON(http.StatusCreated, medicine)
}

// GetMedicine handles GET /api/medicines/:medicineID.
func (h *MedicineHandler) GetMedicine(c echo.Context) error {
	ctx := c.Request().Context()
	medicineID := c.Param("medicineID")

	medicine, err := h.medicineService.GetMedicine(ctx, medicineID)
	if err != nil {
		if errors.Is(err, appErrors.ErrMedicineNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "medicine not found"})
		}
		h.log.Error(fmt.Sprintf("Failed to get medicine %s", medicineID), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to get medicine"})
	}
	return c.JSON(http.StatusOK, medicine)
}

// ListMedicines handles GET /api/users/:userID/medicines.
func (h *MedicineHandler) ListMedicines(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("userID")

	medicines, err := h.medicineService.ListMedicines(ctx, userID)
	if err != nil {
		h.log.Error(fmt.Sprintf("Failed to list medicines for user %s", userID), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list medicines"})
	}
	return c.JSON(http.StatusOK, medicines)
}

// RenameMedicine handles PATCH /api/medicines/:medicineID.
func (h *MedicineHandler) RenameMedicine(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RenameMedicineRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	req.MedicineID = c.Param("medicineID")
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}

	if err := h.medicineService.RenameMedicine(ctx, req); err != nil {
		if errors.Is(err, appErrors.ErrMedicineNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "medicine not found"})
		}
		h.log.Error(fmt.Sprintf("Failed to rename medicine %s", req.MedicineID), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to rename medicine"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteMedicine handles DELETE /api/medicines/:medicineID.
func (h *MedicineHandler) DeleteMedicine(c echo.Context) error {
	ctx := c.Request().Context()
	medicineID := c.Param("medicineID")

	if err := h.medicineService.DeleteMedicine(ctx, medicineID); err != nil {
		h.log.Error(fmt.Sprintf("Failed to delete medicine %s", medicineID), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to delete medicine"})
	}
	return c.NoContent(http.StatusNoContent)
}
