package services

import (
	"log"

	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	xpForSessionCompletion = 10
	badgeNameFirstSession  = "First Session"
)

// firstSessionBadgeDue reports whether this completion is the student's
// first and the badge has not been awarded already.
func firstSessionBadgeDue(completedCount int64, badges []*models.Badge) bool {
	if completedCount != 1 {
		return false
	}
	for _, badge := range badges {
		if badge.Name == badgeNameFirstSession {
			return false
		}
	}
	return true
}

func AwardRewardsForSessionCompletion(studentID uuid.UUID) {
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var student models.User
		if err := tx.Preload("Badges").First(&student, "id = ?", studentID).Error; err != nil {
			return err
		}

		student.XP += xpForSessionCompletion
		if err := tx.Save(&student).Error; err != nil {
			return err
		}

		var completedSessionsCount int64
		if err := tx.Model(&models.Session{}).
			Where("student_id = ? AND status = ?", studentID, models.SessionCompleted).
			Count(&completedSessionsCount).Error; err != nil {
			return err
		}

		if firstSessionBadgeDue(completedSessionsCount, student.Badges) {
			var firstSessionBadge models.Badge
			if err := tx.Where("name = ?", badgeNameFirstSession).First(&firstSessionBadge).Error; err == nil {
				if err := tx.Model(&student).Association("Badges").Append(&firstSessionBadge); err != nil {
					return err
				}
			} else {
				log.Printf("Warning: Badge '%s' not found in database. Cannot award.", badgeNameFirstSession)
			}
		}

		return nil
	})

	if err != nil {
		log.Printf("🔥 Failed to award rewards to student %s: %v", studentID, err)
	} else {
		log.Printf("✅ Awarded %d XP to student %s.", xpForSessionCompletion, studentID)
	}
}
