package dto

import (
	"github.com/pavan-8374/PillAlarm/internal/domain/constant"
	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
)

// CreateAlarmRequest is the DTO for creating a new alarm. The medicine name
// and image URL ride along so the alert can render without a lookup at fire
// time.
type CreateAlarmRequest struct {
	MedicineID       string   `json:"medicine_id"`
	MedicineName     string   `json:"medicine_name"`
	MedicineImageURL string   `json:"medicine_image_url,omitempty"`
	Hour             int      `json:"hour"`
	Minute           int      `json:"minute"`
	PM               bool     `json:"pm"`
	Days             []string `json:"days"`
}

// AlarmResponse is the DTO for sending alarm information to the client.
type AlarmResponse struct {
	ID           uint     `json:"id"`
	MedicineID   string   `json:"medicine_id"`
	MedicineName string   `json:"medicine_name"`
	Hour         int      `json:"hour"`
	Minute       int      `json:"minute"`
	PM           bool     `json:"pm"`
	Days         []string `json:"days"`
	State        string   `json:"state"`
}

// ToAlarmResponse converts an entity.Alarm to an AlarmResponse DTO.
func ToAlarmResponse(a *entity.Alarm, state constant.AlarmState) AlarmResponse {
	return AlarmResponse{
		ID:           a.ID,
		MedicineID:   a.MedicineID,
		MedicineName: a.MedicineName,
		Hour:         a.Hour,
		Minute:       a.Minute,
		PM:           a.PM,
		Days:         a.Days.Tokens(),
		State:        state.String(),
	}
}
