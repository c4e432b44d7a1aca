package handlers

import (
	"errors"
	"time"

	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/anjiri1684/peer_tutor/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	TutorID    string  `json:"tutor_id" validate:"required,uuid"`
	Subject    string  `json:"subject" validate:"required"`
	ModuleCode *string `json:"module_code,omitempty"`
	Topic      string  `json:"topic" validate:"required"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	TimeSlot   string  `json:"time_slot" validate:"required,datetime=15:04"`
	Duration   int     `json:"duration" validate:"required,min=15,max=240"`
	Location   string  `json:"location" validate:"required"`
	Notes      *string `json:"notes,omitempty"`
}

func actorID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	id, _ := uuid.Parse(claims["user_id"].(string))
	return id
}

// mapLifecycleError translates the typed lifecycle failures into HTTP
// statuses. Unknown errors stay 500.
func mapLifecycleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound), errors.Is(err, services.ErrTutorNotFound), errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTransition), errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrSelfBooking):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyReviewed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Something went wrong"})
	}
}

func CreateSession(c *fiber.Ctx) error {
	studentID := actorID(c)

	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tutorID, _ := uuid.Parse(req.TutorID)
	date, _ := time.Parse("2006-01-02", req.Date)

	session, err := services.CreateSession(studentID, services.CreateSessionInput{
		TutorID:    tutorID,
		Subject:    req.Subject,
		ModuleCode: req.ModuleCode,
		Topic:      req.Topic,
		Date:       date,
		TimeSlot:   req.TimeSlot,
		Duration:   req.Duration,
		Location:   req.Location,
		Notes:      req.Notes,
	})
	if err != nil {
		return mapLifecycleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

func transitionHandler(target string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID, err := uuid.Parse(c.Params("sessionId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
		}

		session, err := services.Transition(sessionID, actorID(c), target)
		if err != nil {
			return mapLifecycleError(c, err)
		}

		return c.JSON(session)
	}
}

func ConfirmSession(c *fiber.Ctx) error  { return transitionHandler(models.SessionConfirmed)(c) }
func CancelSession(c *fiber.Ctx) error   { return transitionHandler(models.SessionCancelled)(c) }
func CompleteSession(c *fiber.Ctx) error { return transitionHandler(models.SessionCompleted)(c) }

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func CreateReview(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := services.AttachReview(sessionID, actorID(c), req.Rating, req.Comment)
	if err != nil {
		return mapLifecycleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

type SessionNotesRequest struct {
	Notes string `json:"notes" validate:"required"`
}

func UpdateSessionNotes(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	var req SessionNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	session, err := services.UpdateSessionNotes(sessionID, actorID(c), req.Notes)
	if err != nil {
		return mapLifecycleError(c, err)
	}

	return c.JSON(session)
}

func GetMySessions(c *fiber.Ctx) error {
	studentID := actorID(c)

	var sessions []models.Session
	database.DB.
		Preload("Tutor").
		Where("student_id = ?", studentID).
		Order("date desc, created_at desc").
		Find(&sessions)

	return c.JSON(sessions)
}

func GetMyTutorSessions(c *fiber.Ctx) error {
	tutorID := actorID(c)

	var sessions []models.Session
	database.DB.
		Preload("Student").
		Where("tutor_id = ?", tutorID).
		Order("date desc, created_at desc").
		Find(&sessions)

	return c.JSON(sessions)
}
