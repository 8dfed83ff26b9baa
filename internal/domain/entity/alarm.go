package entity

import "github.com/pavan-8374/PillAlarm/internal/domain/schedule"

// Alarm is one recurring reminder definition: a 12-hour wall-clock time plus
// the set of weekdays it repeats on, tied to a medicine. The medicine name and
// image URL are denormalized on purpose so the alert handler can render
// without a lookup at fire time.
type Alarm struct {
	ID               uint             `gorm:"primaryKey;autoIncrement"`
	MedicineID       string           `gorm:"column:medicine_id;index"`
	MedicineName     string           `gorm:"column:medicine_name"`
	MedicineImageURL string           `gorm:"column:medicine_image_url"`
	Hour             int              `gorm:"column:hour"`   // 12-hour clock, 1..12
	Minute           int              `gorm:"column:minute"` // 0..59
	PM               bool             `gorm:"column:pm"`
	Days             schedule.DaySet  `gorm:"column:days;type:text"`
}

// TableName specifies the table name for the Alarm entity.
func (Alarm) TableName() string {
	return "alarms"
}

// Schedulable reports whether the alarm can produce an occurrence. An alarm
// with no weekdays is a legal row but must never reach the timer.
func (a *Alarm) Schedulable() bool {
	return !a.Days.IsEmpty()
}
