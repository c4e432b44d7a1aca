package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/anjiri1684/peer_tutor/notifications"
)

// SendSessionReminders notifies both parties of confirmed sessions starting
// in roughly one hour. Runs every 5 minutes under cron; the window matches
// the cadence so each session is reminded once.
func SendSessionReminders() {
	log.Println("Running job: SendSessionReminders...")

	now := time.Now()
	lowerBound := now.Add(60 * time.Minute)
	upperBound := now.Add(65 * time.Minute)

	var confirmedSessions []models.Session
	err := database.DB.
		Where("status = ? AND date BETWEEN ? AND ?",
			models.SessionConfirmed,
			now.Truncate(24*time.Hour),
			now.Truncate(24*time.Hour).Add(48*time.Hour)).
		Find(&confirmedSessions).Error
	if err != nil {
		log.Printf("Error checking for upcoming sessions: %v", err)
		return
	}

	for _, session := range confirmedSessions {
		startsAt := session.StartsAt()
		if startsAt.IsZero() || startsAt.Before(lowerBound) || !startsAt.Before(upperBound) {
			continue
		}

		log.Printf("Sending reminder for session %s", session.Code)
		message := fmt.Sprintf("Your %s session starts at %s in %s.", session.Subject, session.TimeSlot, session.Location)

		go notifications.Dispatch(session.StudentID, "Session Starting Soon", message, models.SeverityInfo)
		go notifications.Dispatch(session.TutorID, "Session Starting Soon", message, models.SeverityInfo)
	}
}
