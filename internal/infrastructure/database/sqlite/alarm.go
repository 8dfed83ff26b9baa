package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
	"github.com/pavan-8374/PillAlarm/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type alarmRepository struct {
	db *gorm.DB
}

// NewAlarmRepository creates a new instance of AlarmRepository.
func NewAlarmRepository(db *gorm.DB) repository.AlarmRepository {
	return &alarmRepository{db: db}
}

// FindByID retrieves an alarm by its ID.
func (r *alarmRepository) FindByID(ctx context.Context, id uint) (*entity.Alarm, error) {
	var alarm entity.Alarm
	if err := r.db.WithContext(ctx).First(&alarm, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("alarm with ID %d not found: %w", id, err)
		}
		return nil, fmt.Errorf("🔴 ERROR: failed to find alarm by id %d: %w", id, err)
	}
	return &alarm, nil
}

// FindByMedicineID retrieves all alarms for a specific medicine. A medicine
// with no alarms yields an empty slice.
func (r *alarmRepository) FindByMedicineID(ctx context.Context, medicineID string) ([]*entity.Alarm, error) {
	var alarms []*entity.Alarm
	if err := r.db.WithContext(ctx).Where("medicine_id = ?", medicineID).Find(&alarms).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find alarms by medicine_id %s: %w", medicineID, err)
	}
	return alarms, nil
}

// FindAll retrieves all alarms (used for rescheduling on startup).
func (r *alarmRepository) FindAll(ctx context.Context) ([]*entity.Alarm, error) {
	var alarms []*entity.Alarm
	if err := r.db.WithContext(ctx).Find(&alarms).Error; err != nil {
		return nil, fmt.Errorf("🔴 ERROR: failed to find all alarms: %w", err)
	}
	return alarms, nil
}

// Create inserts an alarm and returns its assigned ID. If the id collides
// with an existing row, the new row replaces it.
func (r *alarmRepository) Create(ctx context.Context, alarm *entity.Alarm) (uint, error) {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(alarm).Error; err != nil {
		return 0, fmt.Errorf("🔴 ERROR: failed to create alarm for medicine %s: %w", alarm.MedicineID, err)
	}
	return alarm.ID, nil
}

// Delete removes the alarm with the given ID. An absent row is a no-op.
func (r *alarmRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Alarm{}, id).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete alarm %d: %w", id, err)
	}
	return nil
}

// DeleteByMedicineID deletes all alarms tied to a specific medicine.
func (r *alarmRepository) DeleteByMedicineID(ctx context.Context, medicineID string) error {
	if err := r.db.WithContext(ctx).Where("medicine_id = ?", medicineID).Delete(&entity.Alarm{}).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to delete alarms for medicine %s: %w", medicineID, err)
	}
	return nil
}

// UpdateMedicinePayload rewrites the denormalized display columns on every
// alarm for a medicine.
func (r *alarmRepository) UpdateMedicinePayload(ctx context.Context, medicineID, name, imageURL string) error {
	if err := r.db.WithContext(ctx).Model(&entity.Alarm{}).
		Where("medicine_id = ?", medicineID).
		Updates(map[string]interface{}{"medicine_name": name, "medicine_image_url": imageURL}).Error; err != nil {
		return fmt.Errorf("🔴 ERROR: failed to refresh alarm payload for medicine %s: %w", medicineID, err)
	}
	return nil
}
