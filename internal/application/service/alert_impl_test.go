package service

import (
	"errors"
	"testing"

	"github.com/pavan-8374/PillAlarm/internal/infrastructure/timer"
	appErrors "github.com/pavan-8374/PillAlarm/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertPayload(id int) timer.Payload {
	return timer.Payload{AlarmID: id, MedicineName: "Aspirin"}
}

func TestAlertService_HandleAlert(t *testing.T) {
	t.Run("presents the alert and starts the looping sound", func(t *testing.T) {
		sounder := &fakeSounder{}
		presenter := &fakePresenter{}
		svc := NewAlertService(sounder, presenter, testLog)

		svc.HandleAlert(alertPayload(1))

		require.Len(t, presenter.presented, 1)
		assert.Equal(t, 1, presenter.presented[0].AlarmID)
		require.Len(t, sounder.playbacks, 1)
		assert.False(t, sounder.playbacks[0].isStopped())

		payload, ok := svc.Active()
		require.True(t, ok)
		assert.Equal(t, "Aspirin", payload.MedicineName)
	})

	t.Run("a new alert silences and dismisses the previous one", func(t *testing.T) {
		sounder := &fakeSounder{}
		presenter := &fakePresenter{}
		svc := NewAlertService(sounder, presenter, testLog)

		svc.HandleAlert(alertPayload(1))
		svc.HandleAlert(alertPayload(2))

		require.Len(t, sounder.playbacks, 2)
		assert.True(t, sounder.playbacks[0].isStopped())
		assert.False(t, sounder.playbacks[1].isStopped())
		assert.Equal(t, []int{1}, presenter.dismissed)

		payload, ok := svc.Active()
		require.True(t, ok)
		assert.Equal(t, 2, payload.AlarmID)
	})

	t.Run("falls back to the visual alert when audio is unavailable", func(t *testing.T) {
		sounder := &fakeSounder{err: errors.New("no audio device")}
		presenter := &fakePresenter{}
		svc := NewAlertService(sounder, presenter, testLog)

		svc.HandleAlert(alertPayload(1))

		require.Len(t, presenter.presented, 1)
		_, ok := svc.Active()
		assert.True(t, ok)

		// Acknowledging a soundless alert must still work.
		assert.NoError(t, svc.Acknowledge(1))
	})
}

func TestAlertService_Acknowledge(t *testing.T) {
	t.Run("stops the sound and dismisses the alert", func(t *testing.T) {
		sounder := &fakeSounder{}
		presenter := &fakePresenter{}
		svc := NewAlertService(sounder, presenter, testLog)

		svc.HandleAlert(alertPayload(1))
		require.NoError(t, svc.Acknowledge(1))

		assert.True(t, sounder.playbacks[0].isStopped())
		assert.Equal(t, []int{1}, presenter.dismissed)
		_, ok := svc.Active()
		assert.False(t, ok)
	})

	t.Run("acknowledging twice fails the second time", func(t *testing.T) {
		sounder := &fakeSounder{}
		svc := NewAlertService(sounder, &fakePresenter{}, testLog)

		svc.HandleAlert(alertPayload(1))
		require.NoError(t, svc.Acknowledge(1))
		assert.ErrorIs(t, svc.Acknowledge(1), appErrors.ErrAlertNotActive)
	})

	t.Run("rejects an id that is not the active alert", func(t *testing.T) {
		sounder := &fakeSounder{}
		svc := NewAlertService(sounder, &fakePresenter{}, testLog)

		svc.HandleAlert(alertPayload(1))
		assert.ErrorIs(t, svc.Acknowledge(2), appErrors.ErrAlertNotActive)

		// The mismatch must not have silenced the real alert.
		assert.False(t, sounder.playbacks[0].isStopped())
	})

	t.Run("fails when nothing is active", func(t *testing.T) {
		svc := NewAlertService(&fakeSounder{}, &fakePresenter{}, testLog)
		assert.ErrorIs(t, svc.Acknowledge(1), appErrors.ErrAlertNotActive)
	})
}

func TestAlertService_Shutdown(t *testing.T) {
	sounder := &fakeSounder{}
	svc := NewAlertService(sounder, &fakePresenter{}, testLog)

	svc.HandleAlert(alertPayload(1))
	svc.Shutdown()

	assert.True(t, sounder.playbacks[0].isStopped())
	_, ok := svc.Active()
	assert.False(t, ok)
}
