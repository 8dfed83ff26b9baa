package entity

import "time"

// Medicine is the local projection of a medicine record. The authoritative
// copy lives with the cloud collaborator; this table only carries what the
// alarm core needs, keyed by the collaborator's document id.
type Medicine struct {
	ID        string    `gorm:"column:medicine_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;index"`
	Name      string    `gorm:"column:name"`
	ImageURL  string    `gorm:"column:image_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the Medicine entity.
func (Medicine) TableName() string {
	return "medicines"
}
