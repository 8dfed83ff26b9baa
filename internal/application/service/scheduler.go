package service

import (
	"context"
	"time"

	"github.com/pavan-8374/PillAlarm/internal/domain/constant"
	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
	"github.com/pavan-8374/PillAlarm/internal/infrastructure/timer"
)

// TimerRegistry is the slice of the wake-up timer the scheduler needs.
// Satisfied by *timer.Timer.
type TimerRegistry interface {
	// Register arms a wake-up for the alarm id at the given instant,
	// replacing any prior registration for that id. Returns the effective
	// instant, which may be later than requested in best-effort mode.
	Register(id uint, at time.Time, payload timer.Payload) (time.Time, error)
	// Deregister removes any wake-up for the id. Safe for unknown ids.
	Deregister(id uint)
	// Exact reports whether exact wake-up semantics are permitted.
	Exact() bool
	// Stop stops the timer, waiting for in-flight wake-ups.
	Stop()
}

// SchedulerService bridges alarm records and the wake-up timer. It persists
// nothing itself: timer registrations are always derived from store contents,
// and InitializeSchedules re-derives them after a process restart.
type SchedulerService interface {
	// Schedule computes the alarm's next occurrence and arms a wake-up for
	// it. An alarm with an empty day set is skipped without error and left
	// unscheduled; denied exact-timer capability degrades to best-effort.
	// The returned state is Armed, BestEffort, or Unscheduled.
	Schedule(ctx context.Context, alarm *entity.Alarm) (constant.AlarmState, error)
	// Cancel deregisters the wake-up for an alarm id. Calling it for an id
	// that was never scheduled is a no-op, not an error.
	Cancel(ctx context.Context, alarmID uint) error
	// HandleFired records that the timer fired for an alarm id and re-arms
	// the record for its next weekly occurrence.
	HandleFired(ctx context.Context, alarmID uint)
	// InitializeSchedules loads every alarm from the store and schedules
	// the schedulable ones. Called once at startup.
	InitializeSchedules(ctx context.Context) error
	// State returns the lifecycle state last observed for an alarm id.
	State(alarmID uint) constant.AlarmState
	// Stop stops the underlying timer.
	Stop()
}
