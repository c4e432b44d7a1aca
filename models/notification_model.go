package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
)

type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RecipientID uuid.UUID `gorm:"not null;index" json:"recipient_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Severity    string    `gorm:"size:20;not null;default:'info'" json:"severity"`
	Read        bool      `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
