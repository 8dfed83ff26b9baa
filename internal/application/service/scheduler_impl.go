package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pavan-8374/PillAlarm/internal/domain/constant"
	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
	"github.com/pavan-8374/PillAlarm/internal/domain/repository"
	"github.com/pavan-8374/PillAlarm/internal/domain/schedule"
	"github.com/pavan-8374/PillAlarm/internal/infrastructure/timer"
	appErrors "github.com/pavan-8374/PillAlarm/internal/pkg/errors"
	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"
)

type schedulerService struct {
	timer     TimerRegistry
	alarmRepo repository.AlarmRepository
	log       logger.Logger
	mu        sync.Mutex // protects states
	states    map[uint]constant.AlarmState
	now       func() time.Time
}

// NewSchedulerService creates a new instance of SchedulerService.
func NewSchedulerService(
	tmr TimerRegistry,
	alarmRepo repository.AlarmRepository,
	log logger.Logger,
) SchedulerService {
	return &schedulerService{
		timer:     tmr,
		alarmRepo: alarmRepo,
		log:       log,
		states:    make(map[uint]constant.AlarmState),
		now:       time.Now,
	}
}

func (s *schedulerService) setState(alarmID uint, state constant.AlarmState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[alarmID] = state
}

// State returns the lifecycle state last observed for an alarm id.
func (s *schedulerService) State(alarmID uint) constant.AlarmState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[alarmID] // zero value is StateUnscheduled
}

// Schedule computes the next occurrence and registers a wake-up for it.
// Re-scheduling an already armed id replaces its registration.
func (s *schedulerService) Schedule(ctx context.Context, alarm *entity.Alarm) (constant.AlarmState, error) {
	next, ok := schedule.NextOccurrence(alarm.Hour, alarm.Minute, alarm.PM, alarm.Days, s.now())
	if !ok {
		// No weekdays selected. A normal inert state, not a failure: drop
		// any stale registration and leave the record unscheduled.
		s.timer.Deregister(alarm.ID)
		s.setState(alarm.ID, constant.StateUnscheduled)
		s.log.Info(fmt.Sprintf("Alarm %d has no weekdays selected, skipping wake-up registration", alarm.ID))
		return constant.StateUnscheduled, nil
	}

	payload := timer.Payload{
		AlarmID:          int(alarm.ID),
		MedicineName:     alarm.MedicineName,
		MedicineImageURL: alarm.MedicineImageURL,
	}

	effective, err := s.timer.Register(alarm.ID, next, payload)
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to register wake-up for alarm %d", alarm.ID), err)
		return constant.StateUnscheduled, fmt.Errorf("%w: %v", appErrors.ErrScheduling, err)
	}

	state := constant.StateArmed
	if !s.timer.Exact() {
		state = constant.StateBestEffort
	}
	s.setState(alarm.ID, state)
	s.log.Info(fmt.Sprintf("Alarm %d %s for %v", alarm.ID, state, effective))
	return state, nil
}

// Cancel deregisters the wake-up for an alarm id. Always safe. Cancellation
// is terminal: the id is dropped from state tracking entirely rather than
// parked in a tombstone entry, so the map does not grow with every alarm the
// process has ever seen.
func (s *schedulerService) Cancel(ctx context.Context, alarmID uint) error {
	s.timer.Deregister(alarmID)
	s.mu.Lock()
	delete(s.states, alarmID)
	s.mu.Unlock()
	s.log.Info(fmt.Sprintf("Cancelled schedule for alarm %d", alarmID))
	return nil
}

// HandleFired marks the alarm fired and re-arms its next weekly occurrence.
// The record may be gone by fire time (deleted while the wake-up was in
// flight); that is a normal outcome, not an error.
func (s *schedulerService) HandleFired(ctx context.Context, alarmID uint) {
	s.setState(alarmID, constant.StateFired)

	alarm, err := s.alarmRepo.FindByID(ctx, alarmID)
	if err != nil {
		s.log.Warn(fmt.Sprintf("Alarm %d not found after firing, not re-arming: %v", alarmID, err))
		return
	}

	if _, err := s.Schedule(ctx, alarm); err != nil {
		s.log.Error(fmt.Sprintf("Failed to re-arm alarm %d after firing", alarmID), err)
	}
}

// InitializeSchedules loads alarms from the DB and schedules them on startup.
// Wake-up registrations do not survive a restart, so every schedulable record
// is re-armed here.
func (s *schedulerService) InitializeSchedules(ctx context.Context) error {
	s.log.Info("Initializing alarm schedules from database...")
	alarms, err := s.alarmRepo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to retrieve alarms for initialization", err)
		return fmt.Errorf("%w: %v", appErrors.ErrDatabaseOperation, err)
	}

	armedCount := 0
	skippedCount := 0
	for _, alarm := range alarms {
		if !alarm.Schedulable() {
			// Inert row, nothing registered at boot to drop.
			skippedCount++
			continue
		}
		if _, err := s.Schedule(ctx, alarm); err != nil {
			s.log.Error(fmt.Sprintf("Failed to schedule alarm %d during init", alarm.ID), err)
			continue
		}
		armedCount++
	}

	s.log.Info(fmt.Sprintf("Schedule initialization complete. Armed: %d, Skipped (no weekdays): %d", armedCount, skippedCount))
	return nil
}

// Stop stops the underlying timer.
func (s *schedulerService) Stop() {
	s.timer.Stop()
}
