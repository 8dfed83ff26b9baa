package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/pavan-8374/PillAlarm/internal/application/dto"
	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
	"github.com/pavan-8374/PillAlarm/internal/domain/repository"
	"github.com/pavan-8374/PillAlarm/internal/domain/schedule"
	appErrors "github.com/pavan-8374/PillAlarm/internal/pkg/errors"
	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"
)

type alarmService struct {
	alarmRepo    repository.AlarmRepository
	schedulerSvc SchedulerService
	log          logger.Logger

	mu          sync.Mutex // protects projection state and subscribers
	medicineID  string
	subscribers map[int]chan []dto.AlarmResponse
	nextSubID   int
}

// NewAlarmService creates a new instance of AlarmService.
func NewAlarmService(
	alarmRepo repository.AlarmRepository,
	schedulerSvc SchedulerService,
	log logger.Logger,
) AlarmService {
	return &alarmService{
		alarmRepo:    alarmRepo,
		schedulerSvc: schedulerSvc,
		log:          log,
		subscribers:  make(map[int]chan []dto.AlarmResponse),
	}
}

func (s *alarmService) toResponses(alarms []*entity.Alarm) []dto.AlarmResponse {
	list := make([]dto.AlarmResponse, len(alarms))
	for i, a := range alarms {
		list[i] = dto.ToAlarmResponse(a, s.schedulerSvc.State(a.ID))
	}
	return list
}

// refresh reloads the projected medicine's rows and pushes the snapshot to
// every subscriber. Slow subscribers miss intermediate snapshots rather than
// blocking the mutation path.
func (s *alarmService) refresh(ctx context.Context) {
	s.mu.Lock()
	medicineID := s.medicineID
	s.mu.Unlock()
	if medicineID == "" {
		return
	}

	alarms, err := s.alarmRepo.FindByMedicineID(ctx, medicineID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to refresh alarm projection for medicine %s", medicineID), err)
		return
	}
	snapshot := s.toResponses(alarms)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Debug(fmt.Sprintf("Pushing snapshot of %d alarms to %d subscribers", len(snapshot), len(s.subscribers)))
	for _, ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			// drain the stale snapshot, then push the fresh one
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// Load fetches the alarms for a medicine and points the projection at it.
// An unknown medicine yields an empty list, never an error.
func (s *alarmService) Load(ctx context.Context, medicineID string) ([]dto.AlarmResponse, error) {
	alarms, err := s.alarmRepo.FindByMedicineID(ctx, medicineID)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to load alarms for medicine %s", medicineID), err)
		return nil, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	s.mu.Lock()
	s.medicineID = medicineID
	s.mu.Unlock()

	return s.toResponses(alarms), nil
}

// AddAlarm validates, persists and schedules a new alarm.
func (s *alarmService) AddAlarm(ctx context.Context, req dto.CreateAlarmRequest) (dto.AlarmResponse, error) {
	if req.Hour < 1 || req.Hour > 12 || req.Minute < 0 || req.Minute > 59 {
		return dto.AlarmResponse{}, fmt.Errorf("%w: hour=%d minute=%d", appErrors.ErrInvalidTime, req.Hour, req.Minute)
	}

	alarm := &entity.Alarm{
		MedicineID:       req.MedicineID,
		MedicineName:     req.MedicineName,
		MedicineImageURL: req.MedicineImageURL,
		Hour:             req.Hour,
		Minute:           req.Minute,
		PM:               req.PM,
		Days:             schedule.ParseDaySet(req.Days),
	}

	alarmID, err := s.alarmRepo.Create(ctx, alarm)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to create alarm for medicine %s", req.MedicineID), err)
		return dto.AlarmResponse{}, fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	// An empty day set is stored but skipped here; not an error.
	state, err := s.schedulerSvc.Schedule(ctx, alarm)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to schedule alarm %d after insert", alarmID), err)
		return dto.AlarmResponse{}, err
	}

	s.log.Info(fmt.Sprintf("Created alarm %d for medicine %s (%s)", alarmID, req.MedicineID, state))
	s.refresh(ctx)
	return dto.ToAlarmResponse(alarm, state), nil
}

// DeleteAlarm removes the alarm row and cancels its wake-up as one logical
// operation, so no orphaned registration can outlive the record.
func (s *alarmService) DeleteAlarm(ctx context.Context, alarmID uint) error {
	if err := s.alarmRepo.Delete(ctx, alarmID); err != nil {
		s.log.Error(fmt.Sprintf("Failed to delete alarm %d", alarmID), err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	if err := s.schedulerSvc.Cancel(ctx, alarmID); err != nil {
		// Cancel is contractually a no-op for unknown ids; a failure here
		// is unexpected but the row is already gone, so only log it.
		s.log.Error(fmt.Sprintf("Failed to cancel schedule for deleted alarm %d", alarmID), err)
	}

	s.log.Info(fmt.Sprintf("Deleted alarm %d", alarmID))
	s.refresh(ctx)
	return nil
}

// Subscribe registers a projection listener. The returned cancel function
// must be called to release it.
func (s *alarmService) Subscribe() (<-chan []dto.AlarmResponse, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan []dto.AlarmResponse, 1)
	s.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(ch)
		}
	}
	return ch, cancel
}
