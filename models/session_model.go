package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionPending   = "pending"
	SessionConfirmed = "confirmed"
	SessionCompleted = "completed"
	SessionCancelled = "cancelled"
)

// Session is one tutoring booking between a student and a tutor. The review
// fields (Rating, ReviewComment, ReviewedAt) are set exactly once, by the
// student, after the session is completed.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code      string    `gorm:"size:12;not null;unique" json:"code"`
	StudentID uuid.UUID `gorm:"not null" json:"student_id"`
	TutorID   uuid.UUID `gorm:"not null" json:"tutor_id"`

	Subject    string    `gorm:"size:255;not null" json:"subject"`
	ModuleCode *string   `gorm:"size:50" json:"module_code"`
	Topic      string    `gorm:"type:text" json:"topic"`
	Date       time.Time `gorm:"not null" json:"date"`
	TimeSlot   string    `gorm:"size:5;not null" json:"time_slot"`
	Duration   int       `gorm:"not null;default:60" json:"duration"`
	Location   string    `gorm:"size:255" json:"location"`
	Notes      *string   `gorm:"type:text" json:"notes"`

	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	Rating        *int       `json:"rating"`
	ReviewComment *string    `gorm:"type:text" json:"review_comment"`
	ReviewedAt    *time.Time `json:"reviewed_at"`

	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Tutor   User `gorm:"foreignkey:TutorID" json:"tutor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StartsAt combines the session date with its time-of-day label. The zero
// time is returned when the label does not parse.
func (s *Session) StartsAt() time.Time {
	t, err := time.Parse("15:04", s.TimeSlot)
	if err != nil {
		return time.Time{}
	}
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), t.Hour(), t.Minute(), 0, 0, s.Date.Location())
}
