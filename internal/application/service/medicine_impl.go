package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pavan-8374/PillAlarm/internal/application/dto"
	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
	"github.com/pavan-8374/PillAlarm/internal/domain/repository"
	appErrors "github.com/pavan-8374/PillAlarm/internal/pkg/errors"
	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicineService struct {
	medicineRepo repository.MedicineRepository
	alarmRepo    repository.AlarmRepository
	schedulerSvc SchedulerService
	log          logger.Logger
}

// NewMedicineService creates a new instance of MedicineService.
func NewMedicineService(
	medicineRepo repository.MedicineRepository,
	alarmRepo repository.AlarmRepository,
	schedulerSvc SchedulerService,
	log logger.Logger,
) MedicineService {
	return &medicineService{
		medicineRepo: medicineRepo,
		alarmRepo:    alarmRepo,
		schedulerSvc: schedulerSvc,
		log:          log,
	}
}

// CreateMedicine registers a medicine under a fresh document id.
func (s *medicineService) CreateMedicine(ctx context.Context, req dto.CreateMedicineRequest) (dto.MedicineResponse, error) {
	medicine := &entity.Medicine{
		ID:       uuid.NewString(),
		UserID:   req.UserID,
		Name:     req.Name,
		ImageURL: req.ImageURL,
	}
	if err := s.medicineRepo.Create(ctx, medicine); err != nil {
		s.log.Error(fmt.Sprintf("Failed to create medicine for user %s", req.UserID), err)
		return dto.MedicineResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	s.log.Info(fmt.Sprintf("Created medicine %s (%s) for user %s", medicine.ID, medicine.Name, req.UserID))
	return dto.ToMedicineResponse(medicine), nil
}

// GetMedicine retrieves a medicine by id.
func (s *medicineService) GetMedicine(ctx context.Context, medicineID string) (dto.MedicineResponse, error) {
	medicine, err := s.medicineRepo.FindByID(ctx, medicineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MedicineResponse{}, appErrors.ErrMedicineNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to get medicine %s", medicineID), err)
		return dto.MedicineResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToMedicineResponse(medicine), nil
}

// ListMedicines retrieves all medicines owned by a user.
func (s *medicineService) ListMedicines(ctx context.Context, userID string) ([]dto.MedicineResponse, error) {
	medicines, err := s.medicineRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to list medicines for user %s", userID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}
	return dto.ToMedicineResponseList(medicines), nil
}

// RenameMedicine updates a medicine and reconciles the denormalized display
// payload its alarms carry, so the next fire shows the new name.
func (s *medicineService) RenameMedicine(ctx context.Context, req dto.RenameMedicineRequest) error {
	medicine, err := s.medicineRepo.FindByID(ctx, req.MedicineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrMedicineNotFound
		}
		s.log.Error(fmt.Sprintf("Failed to find medicine %s for rename", req.MedicineID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	medicine.Name = req.Name
	if req.ImageURL != "" {
		medicine.ImageURL = req.ImageURL
	}
	if err := s.medicineRepo.Update(ctx, medicine); err != nil {
		s.log.Error(fmt.Sprintf("Failed to rename medicine %s", req.MedicineID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if err := s.alarmRepo.UpdateMedicinePayload(ctx, medicine.ID, medicine.Name, medicine.ImageURL); err != nil {
		// The rename itself succeeded; the stale alarm payload heals on the
		// next schedule edit, so only log.
		s.log.Error(fmt.Sprintf("Failed to refresh alarm payload after renaming medicine %s", medicine.ID), err)
	}

	s.log.Info(fmt.Sprintf("Renamed medicine %s to %s", medicine.ID, medicine.Name))
	return nil
}

// DeleteMedicine removes a medicine and all of its alarms. Store deletion and
// wake-up cancellation are paired so no registration is orphaned.
func (s *medicineService) DeleteMedicine(ctx context.Context, medicineID string) error {
	alarms, err := s.alarmRepo.FindByMedicineID(ctx, medicineID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to find alarms for medicine %s during delete", medicineID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if err := s.alarmRepo.DeleteByMedicineID(ctx, medicineID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete alarms for medicine %s", medicineID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	for _, alarm := range alarms {
		if err := s.schedulerSvc.Cancel(ctx, alarm.ID); err != nil {
			s.log.Error(fmt.Sprintf("Failed to cancel alarm %d while deleting medicine %s", alarm.ID, medicineID), err)
		}
	}

	if err := s.medicineRepo.Delete(ctx, medicineID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete medicine %s", medicineID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.log.Info(fmt.Sprintf("Deleted medicine %s and %d alarms", medicineID, len(alarms)))
	return nil
}
