package services

import (
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/google/uuid"
)

// ValidateTransition gates every status change against the actor's identity
// and the session's current status. Completed and cancelled are terminal.
//
//	pending   -> confirmed  (tutor only)
//	pending   -> cancelled  (student or tutor)
//	confirmed -> cancelled  (student or tutor)
//	confirmed -> completed  (tutor only)
func ValidateTransition(session *models.Session, actorID uuid.UUID, target string) error {
	isStudent := session.StudentID == actorID
	isTutor := session.TutorID == actorID

	if !isStudent && !isTutor {
		return ErrAccessDenied
	}

	switch target {
	case models.SessionConfirmed:
		if !isTutor {
			return ErrAccessDenied
		}
		if session.Status != models.SessionPending {
			return ErrInvalidTransition
		}
	case models.SessionCancelled:
		if session.Status != models.SessionPending && session.Status != models.SessionConfirmed {
			return ErrInvalidTransition
		}
	case models.SessionCompleted:
		if !isTutor {
			return ErrAccessDenied
		}
		if session.Status != models.SessionConfirmed {
			return ErrInvalidTransition
		}
	default:
		return ErrInvalidTransition
	}

	return nil
}

// ValidateReview gates review attachment: student party only, completed
// sessions only, exactly once.
func ValidateReview(session *models.Session, actorID uuid.UUID) error {
	if session.StudentID != actorID {
		return ErrAccessDenied
	}
	if session.Status != models.SessionCompleted {
		return ErrInvalidState
	}
	if session.Rating != nil {
		return ErrAlreadyReviewed
	}
	return nil
}
