package service

import (
	"github.com/pavan-8374/PillAlarm/internal/infrastructure/timer"
)

// AlertPresenter is the full-screen alert surface, an external collaborator.
// Present must not block the invoking callback.
type AlertPresenter interface {
	Present(payload timer.Payload)
	Dismiss(alarmID int)
}

// Playback is one looping alarm sound in progress.
type Playback interface {
	Stop()
}

// Sounder starts alarm sound playback. Satisfied by *audio.Sounder.
type Sounder interface {
	Play() (Playback, error)
}

// AlertService reacts to wake-up callbacks. It derives everything from the
// delivered payload, never from scheduler or store state, so it works after
// a cold start. The sound loops until the one permitted exit, Acknowledge.
type AlertService interface {
	// HandleAlert presents the alert and starts the looping sound. At most
	// one alert is active; a new one silences and replaces the previous.
	// Audio failure is logged and never suppresses the presentation.
	HandleAlert(payload timer.Payload)
	// Acknowledge stops the sound, releases the player and dismisses the
	// presentation for the active alert. Returns ErrAlertNotActive if the
	// given alarm id has no active alert.
	Acknowledge(alarmID int) error
	// Active returns the payload of the active alert, if any.
	Active() (timer.Payload, bool)
	// Shutdown silences any active alert without requiring acknowledgement,
	// for process teardown only.
	Shutdown()
}
