package service

import (
	"context"

	"github.com/pavan-8374/PillAlarm/internal/application/dto"
)

// MedicineService manages the medicine registry the alarms hang off.
type MedicineService interface {
	// CreateMedicine registers a medicine and returns it with its assigned id.
	CreateMedicine(ctx context.Context, req dto.CreateMedicineRequest) (dto.MedicineResponse, error)
	// GetMedicine retrieves a medicine by id.
	GetMedicine(ctx context.Context, medicineID string) (dto.MedicineResponse, error)
	// ListMedicines retrieves all medicines owned by a user.
	ListMedicines(ctx context.Context, userID string) ([]dto.MedicineResponse, error)
	// RenameMedicine updates a medicine's display data and refreshes the
	// denormalized copy carried by its alarms.
	RenameMedicine(ctx context.Context, req dto.RenameMedicineRequest) error
	// DeleteMedicine removes a medicine together with all of its alarms,
	// cancelling each alarm's wake-up.
	DeleteMedicine(ctx context.Context, medicineID string) error
}
