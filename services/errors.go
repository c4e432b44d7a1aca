package services

import "errors"

// Lifecycle errors are surfaced to handlers as typed failures so they can be
// mapped to client-visible statuses. Recommendation-path failures are never
// exposed through these; they degrade to the rule-based ranking internally.
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrTutorNotFound     = errors.New("tutor not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrSelfBooking       = errors.New("you cannot book a session with yourself")
	ErrAccessDenied      = errors.New("you are not allowed to perform this action on this session")
	ErrInvalidTransition = errors.New("the session status does not allow this transition")
	ErrInvalidState      = errors.New("reviews can only be submitted for completed sessions")
	ErrAlreadyReviewed   = errors.New("a review for this session has already been submitted")
)
