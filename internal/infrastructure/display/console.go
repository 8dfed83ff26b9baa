package display

import (
	"fmt"

	"github.com/pavan-8374/PillAlarm/internal/infrastructure/timer"
	"github.com/pavan-8374/PillAlarm/internal/pkg/logger"
)

// ConsolePresenter renders alerts to the process log. It stands in for the
// platform's full-screen alert surface, which is an external collaborator.
type ConsolePresenter struct {
	log logger.Logger
}

// NewConsolePresenter creates a ConsolePresenter.
func NewConsolePresenter(log logger.Logger) *ConsolePresenter {
	return &ConsolePresenter{log: log}
}

// Present shows the alert. It must not block the invoking callback.
func (p *ConsolePresenter) Present(payload timer.Payload) {
	p.log.Info(fmt.Sprintf("🔔 ALARM %d: time to take %s", payload.AlarmID, payload.MedicineName))
	if payload.MedicineImageURL != "" {
		p.log.Info(fmt.Sprintf("Medicine image: %s", payload.MedicineImageURL))
	}
	p.log.Info(fmt.Sprintf("Acknowledge with POST /api/alerts/%d/ack to stop the alarm", payload.AlarmID))
}

// Dismiss removes the alert for the given alarm id.
func (p *ConsolePresenter) Dismiss(alarmID int) {
	p.log.Info(fmt.Sprintf("Alarm %d acknowledged, alert dismissed", alarmID))
}
