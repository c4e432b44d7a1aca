package models

import (
	"time"

	"github.com/google/uuid"
)

// TutorProfile holds the aggregate fields derived from a tutor's completed
// sessions. Rating, ReviewCount, TotalSessions and HoursTaught are written
// only by the session lifecycle and the rating aggregator, never by client
// input.
type TutorProfile struct {
	UserID        uuid.UUID  `gorm:"primary_key" json:"user_id"`
	Headline      *string    `gorm:"size:255" json:"headline"`
	Bio           *string    `gorm:"type:text" json:"bio"`
	Rating        float64    `gorm:"default:0" json:"rating"`
	ReviewCount   int        `gorm:"default:0" json:"review_count"`
	TotalSessions int        `gorm:"default:0" json:"total_sessions"`
	HoursTaught   float64    `gorm:"default:0" json:"hours_taught"`
	Subjects      []*Subject `gorm:"many2many:tutor_subjects;" json:"subjects"`
	User          User       `gorm:"foreignkey:UserID" json:"user"`
	CreatedAt     time.Time  `json:"-"`
	UpdatedAt     time.Time  `json:"-"`
}
