package dto

import (
	"github.com/pavan-8374/PillAlarm/internal/domain/entity"
)

// CreateMedicineRequest is the DTO for registering a medicine.
type CreateMedicineRequest struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// RenameMedicineRequest is the DTO for renaming a medicine. The denormalized
// copy on its alarms is refreshed in the same operation.
type RenameMedicineRequest struct {
	MedicineID string `json:"medicine_id"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url,omitempty"`
}

// MedicineResponse is the DTO for sending medicine information to the client.
type MedicineResponse struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// ToMedicineResponse converts an entity.Medicine to a MedicineResponse DTO.
func ToMedicineResponse(m *entity.Medicine) MedicineResponse {
	return MedicineResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Name:     m.Name,
		ImageURL: m.ImageURL,
	}
}

// ToMedicineResponseList converts a slice of entity.Medicine to DTOs.
func ToMedicineResponseList(medicines []*entity.Medicine) []MedicineResponse {
	list := make([]MedicineResponse, len(medicines))
	for i, m := range medicines {
		list[i] = ToMedicineResponse(m)
	}
	return list
}
