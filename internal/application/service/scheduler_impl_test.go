package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/pavan-8374/PillAlarm/internal/domain/constant"
	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
	"github.com/pavan-8374/PillAlarm/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 2025-06-11 10:00 local time.
var schedulerTestNow = time.Date(2025, time.June, 11, 10, 0, 0, 0, time.Local)

func newTestScheduler(t *testing.T, tmr *fakeTimer, repo *fakeAlarmRepo) *schedulerService {
	t.Helper()
	svc, ok := NewSchedulerService(tmr, repo, testLog).(*schedulerService)
	require.True(t, ok)
	svc.now = func() time.Time { return schedulerTestNow }
	return svc
}

func testAlarm(id uint, days string) *entity.Alarm {
	return &entity.Alarm{
		ID:           id,
		MedicineID:   "med-1",
		MedicineName: "Aspirin",
		Hour:         9,
		Minute:       30,
		PM:           false,
		Days:         schedule.ParseDaySet(strings.Split(days, ",")),
	}
}

func TestSchedulerService_Schedule(t *testing.T) {
	t.Run("arms an alarm with selected weekdays", func(t *testing.T) {
		tmr := newFakeTimer(true)
		svc := newTestScheduler(t, tmr, newFakeAlarmRepo())

		state, err := svc.Schedule(context.Background(), testAlarm(1, "Mon,Thu"))

		require.NoError(t, err)
		assert.Equal(t, constant.StateArmed, state)
		assert.Equal(t, constant.StateArmed, svc.State(1))
		require.True(t, tmr.registered(1))
		// Thursday 9:30 is the nearest candidate from Wednesday 10:00.
		want := time.Date(2025, time.June, 12, 9, 30, 0, 0, time.Local)
		assert.Equal(t, want, tmr.registrations[1])
		assert.Equal(t, "Aspirin", tmr.payloads[1].MedicineName)
		assert.Equal(t, 1, tmr.payloads[1].AlarmID)
	})

	t.Run("reports best-effort when exact wake-ups are unavailable", func(t *testing.T) {
		tmr := newFakeTimer(false)
		svc := newTestScheduler(t, tmr, newFakeAlarmRepo())

		state, err := svc.Schedule(context.Background(), testAlarm(1, "Mon"))

		require.NoError(t, err)
		assert.Equal(t, constant.StateBestEffort, state)
		assert.Equal(t, constant.StateBestEffort, svc.State(1))
	})

	t.Run("skips an alarm with no weekdays selected", func(t *testing.T) {
		tmr := newFakeTimer(true)
		svc := newTestScheduler(t, tmr, newFakeAlarmRepo())

		state, err := svc.Schedule(context.Background(), testAlarm(1, ""))

		require.NoError(t, err)
		assert.Equal(t, constant.StateUnscheduled, state)
		assert.False(t, tmr.registered(1))
	})

	t.Run("clearing weekdays drops an existing registration", func(t *testing.T) {
		tmr := newFakeTimer(true)
		svc := newTestScheduler(t, tmr, newFakeAlarmRepo())

		_, err := svc.Schedule(context.Background(), testAlarm(1, "Mon"))
		require.NoError(t, err)
		require.True(t, tmr.registered(1))

		state, err := svc.Schedule(context.Background(), testAlarm(1, ""))
		require.NoError(t, err)
		assert.Equal(t, constant.StateUnscheduled, state)
		assert.False(t, tmr.registered(1))
	})

	t.Run("re-scheduling replaces rather than duplicates", func(t *testing.T) {
		tmr := newFakeTimer(true)
		svc := newTestScheduler(t, tmr, newFakeAlarmRepo())

		_, err := svc.Schedule(context.Background(), testAlarm(1, "Mon"))
		require.NoError(t, err)
		_, err = svc.Schedule(context.Background(), testAlarm(1, "Fri"))
		require.NoError(t, err)

		assert.Equal(t, 1, tmr.count())
		want := time.Date(2025, time.June, 13, 9, 30, 0, 0, time.Local)
		assert.Equal(t, want, tmr.registrations[1])
	})
}

func TestSchedulerService_Cancel(t *testing.T) {
	t.Run("deregisters an armed alarm and drops its tracking entry", func(t *testing.T) {
		tmr := newFakeTimer(true)
		svc := newTestScheduler(t, tmr, newFakeAlarmRepo())

		_, err := svc.Schedule(context.Background(), testAlarm(1, "Mon"))
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(context.Background(), 1))
		assert.False(t, tmr.registered(1))
		assert.Equal(t, constant.StateUnscheduled, svc.State(1))

		// Cancellation evicts rather than tombstones, so the state map
		// stays bounded by the set of live alarms.
		svc.mu.Lock()
		_, tracked := svc.states[1]
		svc.mu.Unlock()
		assert.False(t, tracked)
	})

	t.Run("cancelling a never-scheduled id is not an error", func(t *testing.T) {
		tmr := newFakeTimer(true)
		svc := newTestScheduler(t, tmr, newFakeAlarmRepo())

		assert.NoError(t, svc.Cancel(context.Background(), 42))
	})
}

func TestSchedulerService_HandleFired(t *testing.T) {
	t.Run("re-arms the next weekly occurrence", func(t *testing.T) {
		tmr := newFakeTimer(true)
		repo := newFakeAlarmRepo()
		svc := newTestScheduler(t, tmr, repo)

		alarm := testAlarm(0, "Wed")
		id, err := repo.Create(context.Background(), alarm)
		require.NoError(t, err)

		svc.HandleFired(context.Background(), id)

		require.True(t, tmr.registered(id))
		// 9:30 Wednesday has already passed at the frozen now, so the next
		// occurrence is a week out.
		want := time.Date(2025, time.June, 18, 9, 30, 0, 0, time.Local)
		assert.Equal(t, want, tmr.registrations[id])
		assert.Equal(t, constant.StateArmed, svc.State(id))
	})

	t.Run("does not re-arm when the record was deleted", func(t *testing.T) {
		tmr := newFakeTimer(true)
		svc := newTestScheduler(t, tmr, newFakeAlarmRepo())

		svc.HandleFired(context.Background(), 7)

		assert.False(t, tmr.registered(7))
		assert.Equal(t, constant.StateFired, svc.State(7))
	})
}

func TestSchedulerService_InitializeSchedules(t *testing.T) {
	tmr := newFakeTimer(true)
	repo := newFakeAlarmRepo()
	svc := newTestScheduler(t, tmr, repo)

	ctx := context.Background()
	armedID, err := repo.Create(ctx, testAlarm(0, "Mon,Fri"))
	require.NoError(t, err)
	inertID, err := repo.Create(ctx, testAlarm(0, ""))
	require.NoError(t, err)

	require.NoError(t, svc.InitializeSchedules(ctx))

	assert.True(t, tmr.registered(armedID))
	assert.False(t, tmr.registered(inertID))
	assert.Equal(t, constant.StateArmed, svc.State(armedID))
	assert.Equal(t, constant.StateUnscheduled, svc.State(inertID))
}

func TestSchedulerService_Stop(t *testing.T) {
	tmr := newFakeTimer(true)
	svc := newTestScheduler(t, tmr, newFakeAlarmRepo())

	svc.Stop()
	assert.True(t, tmr.stopped)
}
