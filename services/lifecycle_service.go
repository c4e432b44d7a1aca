package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/anjiri1684/peer_tutor/notifications"
	"github.com/anjiri1684/peer_tutor/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateSessionInput struct {
	TutorID    uuid.UUID
	Subject    string
	ModuleCode *string
	Topic      string
	Date       time.Time
	TimeSlot   string
	Duration   int
	Location   string
	Notes      *string
}

// CreateSession books a new session for the student. Every session starts
// pending; the tutor is notified of the request after the row is committed.
func CreateSession(studentID uuid.UUID, input CreateSessionInput) (models.Session, error) {
	var session models.Session

	if studentID == input.TutorID {
		return session, ErrSelfBooking
	}

	var tutor models.User
	if err := database.DB.First(&tutor, "id = ? AND is_tutor = ?", input.TutorID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session, ErrTutorNotFound
		}
		return session, err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		code, err := utils.GenerateUniqueSessionCode(tx)
		if err != nil {
			return err
		}

		session = models.Session{
			Code:       code,
			StudentID:  studentID,
			TutorID:    input.TutorID,
			Subject:    input.Subject,
			ModuleCode: input.ModuleCode,
			Topic:      input.Topic,
			Date:       input.Date,
			TimeSlot:   input.TimeSlot,
			Duration:   input.Duration,
			Location:   input.Location,
			Notes:      input.Notes,
			Status:     models.SessionPending,
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return session, err
	}

	go notifications.Dispatch(
		session.TutorID,
		"New Booking Request",
		fmt.Sprintf("You have a new %s session request for %s at %s.", session.Subject, session.Date.Format("Jan 2"), session.TimeSlot),
		models.SeverityInfo,
	)

	return session, nil
}

// Transition applies one status change on behalf of the acting party. The
// session row is read under a row lock so concurrent transitions validate
// against the committed status, never a stale one. The status write and the
// tutor aggregate update commit in one transaction; a rejected transition
// leaves the session untouched. Notifications go out after commit,
// best-effort.
func Transition(sessionID, actorID uuid.UUID, target string) (models.Session, error) {
	var session models.Session

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		if err := ValidateTransition(&session, actorID, target); err != nil {
			return err
		}

		session.Status = target
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		if target == models.SessionCompleted {
			return RecomputeTutorWorkload(tx, session.TutorID)
		}
		return nil
	})
	if err != nil {
		return session, err
	}

	dispatchTransitionNotification(&session, actorID, target)

	if target == models.SessionCompleted {
		go AwardRewardsForSessionCompletion(session.StudentID)
		go CheckAndGenerateCertificate(session)
	}

	return session, nil
}

func dispatchTransitionNotification(session *models.Session, actorID uuid.UUID, target string) {
	switch target {
	case models.SessionConfirmed:
		go notifications.Dispatch(
			session.StudentID,
			"Request Accepted",
			fmt.Sprintf("Your tutor accepted the %s session on %s.", session.Subject, session.Date.Format("Jan 2")),
			models.SeveritySuccess,
		)
	case models.SessionCancelled:
		recipient := session.TutorID
		if actorID == session.TutorID {
			recipient = session.StudentID
		}
		go notifications.Dispatch(
			recipient,
			"Session Cancelled",
			fmt.Sprintf("The %s session on %s has been cancelled.", session.Subject, session.Date.Format("Jan 2")),
			models.SeverityWarning,
		)
	case models.SessionCompleted:
		go notifications.Dispatch(
			session.StudentID,
			"Session Completed",
			fmt.Sprintf("Your %s session was marked as completed. You can now leave a review.", session.Subject),
			models.SeveritySuccess,
		)
	}
}

// AttachReview records the student's one-time review and recomputes the
// tutor's rating aggregate in the same transaction, so the review write and
// the aggregate update succeed or fail together. The locked read keeps the
// review write-once: two racing reviews serialize, and the second sees the
// first's rating and is rejected.
func AttachReview(sessionID, actorID uuid.UUID, rating int, comment string) (models.Session, error) {
	var session models.Session

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}

		if err := ValidateReview(&session, actorID); err != nil {
			return err
		}

		now := time.Now()
		session.Rating = &rating
		session.ReviewComment = &comment
		session.ReviewedAt = &now
		if err := tx.Save(&session).Error; err != nil {
			return err
		}

		return RecomputeTutorRating(tx, session.TutorID)
	})
	if err != nil {
		return session, err
	}

	log.Printf("✅ Review recorded for session %s, tutor %s rating recomputed.", session.Code, session.TutorID)
	return session, nil
}

// UpdateSessionNotes is the only post-completion edit a session allows.
func UpdateSessionNotes(sessionID, actorID uuid.UUID, notes string) (models.Session, error) {
	var session models.Session

	if err := database.DB.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session, ErrSessionNotFound
		}
		return session, err
	}

	if session.StudentID != actorID && session.TutorID != actorID {
		return session, ErrAccessDenied
	}
	if session.Status != models.SessionCompleted {
		return session, ErrInvalidState
	}

	session.Notes = &notes
	if err := database.DB.Save(&session).Error; err != nil {
		return session, err
	}
	return session, nil
}
