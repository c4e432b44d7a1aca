package services

import (
	"errors"
	"testing"

	"github.com/anjiri1684/peer_tutor/models"
	"github.com/google/uuid"
)

func TestValidateTransition(t *testing.T) {
	studentID := uuid.New()
	tutorID := uuid.New()
	strangerID := uuid.New()

	session := func(status string) *models.Session {
		return &models.Session{StudentID: studentID, TutorID: tutorID, Status: status}
	}

	tests := []struct {
		name    string
		session *models.Session
		actor   uuid.UUID
		target  string
		wantErr error
	}{
		{"tutor confirms pending", session(models.SessionPending), tutorID, models.SessionConfirmed, nil},
		{"student cannot confirm", session(models.SessionPending), studentID, models.SessionConfirmed, ErrAccessDenied},
		{"stranger cannot confirm", session(models.SessionPending), strangerID, models.SessionConfirmed, ErrAccessDenied},
		{"confirm from confirmed", session(models.SessionConfirmed), tutorID, models.SessionConfirmed, ErrInvalidTransition},
		{"student cancels pending", session(models.SessionPending), studentID, models.SessionCancelled, nil},
		{"tutor cancels pending", session(models.SessionPending), tutorID, models.SessionCancelled, nil},
		{"student cancels confirmed", session(models.SessionConfirmed), studentID, models.SessionCancelled, nil},
		{"stranger cannot cancel", session(models.SessionConfirmed), strangerID, models.SessionCancelled, ErrAccessDenied},
		{"cancel completed", session(models.SessionCompleted), studentID, models.SessionCancelled, ErrInvalidTransition},
		{"cancel cancelled", session(models.SessionCancelled), tutorID, models.SessionCancelled, ErrInvalidTransition},
		{"tutor completes confirmed", session(models.SessionConfirmed), tutorID, models.SessionCompleted, nil},
		{"student cannot complete", session(models.SessionConfirmed), studentID, models.SessionCompleted, ErrAccessDenied},
		{"complete from pending", session(models.SessionPending), tutorID, models.SessionCompleted, ErrInvalidTransition},
		{"complete from completed", session(models.SessionCompleted), tutorID, models.SessionCompleted, ErrInvalidTransition},
		{"complete from cancelled", session(models.SessionCancelled), tutorID, models.SessionCompleted, ErrInvalidTransition},
		{"unknown target", session(models.SessionPending), tutorID, "archived", ErrInvalidTransition},
		{"pending target is not reachable", session(models.SessionConfirmed), tutorID, models.SessionPending, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.session.Status
			err := ValidateTransition(tt.session, tt.actor, tt.target)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateTransition() error = %v, want %v", err, tt.wantErr)
			}
			if tt.session.Status != before {
				t.Fatalf("ValidateTransition() mutated status: %s -> %s", before, tt.session.Status)
			}
		})
	}
}

func TestValidateReview(t *testing.T) {
	studentID := uuid.New()
	tutorID := uuid.New()
	rating := 5

	tests := []struct {
		name    string
		session *models.Session
		actor   uuid.UUID
		wantErr error
	}{
		{
			"student reviews completed session",
			&models.Session{StudentID: studentID, TutorID: tutorID, Status: models.SessionCompleted},
			studentID, nil,
		},
		{
			"tutor cannot review",
			&models.Session{StudentID: studentID, TutorID: tutorID, Status: models.SessionCompleted},
			tutorID, ErrAccessDenied,
		},
		{
			"stranger cannot review",
			&models.Session{StudentID: studentID, TutorID: tutorID, Status: models.SessionCompleted},
			uuid.New(), ErrAccessDenied,
		},
		{
			"review on pending session",
			&models.Session{StudentID: studentID, TutorID: tutorID, Status: models.SessionPending},
			studentID, ErrInvalidState,
		},
		{
			"review on cancelled session",
			&models.Session{StudentID: studentID, TutorID: tutorID, Status: models.SessionCancelled},
			studentID, ErrInvalidState,
		},
		{
			"second review rejected",
			&models.Session{StudentID: studentID, TutorID: tutorID, Status: models.SessionCompleted, Rating: &rating},
			studentID, ErrAlreadyReviewed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateReview(tt.session, tt.actor); !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateReview() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
