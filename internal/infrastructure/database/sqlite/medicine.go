package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
	"github.com/pavan-8374/PillAlarm/internal/domain/repository"

	"gorm.io/gorm"
)

type medicineRepository struct {
	db *gorm.DB
}

// NewMedicineRepository creates a new instance of MedicineRepository.
func NewMedicineRepository(db *gorm.DB) repository.MedicineRepository {
	return &medicineRepository{db: db}
}

// FindByID retrieves a medicine by its document id.
func (r *medicineRepository) FindByID(ctx context.Context, id string) (*entity.Medicine, error) {
	var medicine entity.Medicine
	if err := r.db.WithContext(ctx).Where("medicine_id = ?", id).First(&medicine).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("medicine with ID %s not found: %w", id, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find medicine by id %s: %w", id, err)
	}
	return &medicine, nil
}

// FindByUserID retrieves all medicines owned by a user.
func (r *medicineRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Medicine, error) {
	var medicines []*entity.Medicine
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at asc").Find(&medicines).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find medicines by user_id %s: %w", userID, err)
	}
	return medicines, nil
}

// Create inserts a new medicine record.
func (r *medicineRepository) Create(ctx context.Context, medicine *entity.Medicine) error {
	if err := r.db.WithContext(ctx).Create(medicine).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to create medicine %s: %w", medicine.ID, err)
	}
	return nil
}

// Update updates an existing medicine record.
func (r *medicineRepository) Update(ctx context.Context, medicine *entity.Medicine) error {
	// Use Save to update all fields, including zero values
	if err := r.db.WithContext(ctx).Save(medicine).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to update medicine %s: %w", medicine.ID, err)
	}
	return nil
}

// Delete removes a medicine by its document id.
func (r *medicineRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("medicine_id = ?", id).Delete(&entity.Medicine{}).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete medicine %s: %w", id, err)
	}
	return nil
}
