package service

import (
	"fmt"
	"sync"

	"github.com/pavan-8374/PillAlarm/internal/infrastructure/timer"
	appErrors "github.com/pavan-8374/PillAlarm/internal/pkg/errors"
	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"
)

type activeAlert struct {
	payload  timer.Payload
	playback Playback
}

type alertService struct {
	sounder   Sounder
	presenter AlertPresenter
	log       logger.Logger
	mu        sync.Mutex // the audio resource belongs to at most one alert
	active    *activeAlert
}

// NewAlertService creates a new instance of AlertService.
func NewAlertService(
	sounder Sounder,
	presenter AlertPresenter,
	log logger.Logger,
) AlertService {
	return &alertService{
		sounder:   sounder,
		presenter: presenter,
		log:       log,
	}
}

// HandleAlert presents the alert and starts the looping alarm sound.
func (s *alertService) HandleAlert(payload timer.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A new alert silences the previous one first.
	if s.active != nil {
		s.log.Warn(fmt.Sprintf("Alarm %d fired while alarm %d was still active; replacing it", payload.AlarmID, s.active.payload.AlarmID))
		if s.active.playback != nil {
			s.active.playback.Stop()
		}
		s.presenter.Dismiss(s.active.payload.AlarmID)
	}

	playback, err := s.sounder.Play()
	if err != nil {
		// No resolvable sound device: the visual alert is the fallback.
		s.log.Error(fmt.Sprintf("Failed to start alarm sound for alarm %d", payload.AlarmID), err)
		playback = nil
	}

	s.active = &activeAlert{payload: payload, playback: playback}
	s.presenter.Present(payload)
	s.log.Info(fmt.Sprintf("Alert active for alarm %d (%s)", payload.AlarmID, payload.MedicineName))
}

// Acknowledge is the single terminal action for an active alert.
func (s *alertService) Acknowledge(alarmID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil || s.active.payload.AlarmID != alarmID {
		return appErrors.ErrAlertNotActive
	}

	if s.active.playback != nil {
		s.active.playback.Stop()
	}
	s.presenter.Dismiss(alarmID)
	s.active = nil
	s.log.Info(fmt.Sprintf("Alarm %d acknowledged", alarmID))
	return nil
}

// Active returns the payload of the active alert, if any.
func (s *alertService) Active() (timer.Payload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return timer.Payload{}, false
	}
	return s.active.payload, true
}

// Shutdown silences any active alert during process teardown.
func (s *alertService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.playback != nil {
		s.active.playback.Stop()
	}
	s.active = nil
}
