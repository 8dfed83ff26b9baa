package service

import (
	"context"

	"github.com/pavan-8374/PillAlarm/internal/application/dto"
)

// AlarmService is the view-model surface consumed by the UI: load, add and
// delete alarms for one medicine, plus an observable projection of the
// current rows. Time or day changes are delete-then-recreate; there is no
// update operation.
type AlarmService interface {
	// Load fetches the alarms for a medicine and makes that medicine the
	// subject of the observable projection.
	Load(ctx context.Context, medicineID string) ([]dto.AlarmResponse, error)
	// AddAlarm validates, persists and schedules a new alarm. Adding an
	// alarm with no weekdays stores an inert record and registers nothing.
	AddAlarm(ctx context.Context, req dto.CreateAlarmRequest) (dto.AlarmResponse, error)
	// DeleteAlarm removes the alarm and deregisters its wake-up in the same
	// logical operation. Deleting an absent alarm is a no-op.
	DeleteAlarm(ctx context.Context, alarmID uint) error
	// Subscribe returns a channel receiving a snapshot of the projected
	// alarm list after every mutation, and a cancel function.
	Subscribe() (<-chan []dto.AlarmResponse, func())
}
