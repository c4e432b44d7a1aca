package models

import (
	"time"

	"github.com/google/uuid"
)

type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID      uuid.UUID `gorm:"not null" json:"student_id"`
	TutorID        uuid.UUID `gorm:"not null" json:"tutor_id"`
	Subject        string    `gorm:"size:255;not null" json:"subject"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	CompletionDate time.Time `gorm:"not null" json:"completion_date"`
	CertificateURL string    `gorm:"size:255;not null" json:"certificate_url"`

	Student User `gorm:"foreignkey:StudentID" json:"-"`
	Tutor   User `gorm:"foreignkey:TutorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
