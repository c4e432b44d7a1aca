package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'student'" json:"role"`
	IsTutor  bool      `gorm:"default:false" json:"is_tutor"`

	XP     int      `gorm:"default:0" json:"xp"`
	Badges []*Badge `gorm:"many2many:user_badges;" json:"badges,omitempty"`

	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`
	YearOfStudy       *string `gorm:"size:50" json:"year_of_study"`
	SubjectsNeedHelp  *string `gorm:"type:text" json:"subjects_need_help"`

	TutorProfile *TutorProfile `gorm:"foreignkey:UserID" json:"tutor_profile,omitempty"`

	IsActive bool `gorm:"default:true" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
