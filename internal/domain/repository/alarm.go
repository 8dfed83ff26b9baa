package repository

import (
	"context"

	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
)

// AlarmRepository defines the interface for alarm data operations. It is the
// single owner of the durable alarm table; the scheduler derives its timer
// registrations from it and persists nothing of its own.
type AlarmRepository interface {
	// FindByID retrieves an alarm by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Alarm, error)
	// FindByMedicineID retrieves all alarms for a specific medicine.
	// An unknown medicine yields an empty slice, not an error.
	FindByMedicineID(ctx context.Context, medicineID string) ([]*entity.Alarm, error)
	// FindAll retrieves every alarm (used for rescheduling on startup).
	FindAll(ctx context.Context) ([]*entity.Alarm, error)
	// Create inserts an alarm and returns its assigned ID. An insert whose
	// id collides with an existing row replaces that row.
	Create(ctx context.Context, alarm *entity.Alarm) (uint, error)
	// Delete removes the alarm with the given ID. Deleting an absent row is
	// a no-op, not an error.
	Delete(ctx context.Context, id uint) error
	// DeleteByMedicineID removes every alarm tied to a medicine.
	DeleteByMedicineID(ctx context.Context, medicineID string) error
	// UpdateMedicinePayload rewrites the denormalized display payload on
	// every alarm for a medicine (used when the medicine is renamed).
	UpdateMedicinePayload(ctx context.Context, medicineID, name, imageURL string) error
}
