package repository

import (
	"context"

	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
)

// MedicineRepository defines the interface for medicine data operations.
type MedicineRepository interface {
	// FindByID retrieves a medicine by its document id.
	FindByID(ctx context.Context, id string) (*entity.Medicine, error)
	// FindByUserID retrieves all medicines owned by a user.
	FindByUserID(ctx context.Context, userID string) ([]*entity.Medicine, error)
	// Create inserts a new medicine record.
	Create(ctx context.Context, medicine *entity.Medicine) error
	// Update updates an existing medicine record.
	Update(ctx context.Context, medicine *entity.Medicine) error
	// Delete removes a medicine by its document id.
	Delete(ctx context.Context, id string) error
}
