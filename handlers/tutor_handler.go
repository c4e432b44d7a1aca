package handlers

import (
	"errors"

	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TutorApplicationRequest struct {
	Headline string   `json:"headline" validate:"required"`
	Bio      string   `json:"bio" validate:"required"`
	Subjects []string `json:"subjects" validate:"required,min=1,dive,required"`
}

// ApplyToBeATutor activates tutoring for the current user. Peer platform:
// no moderation queue, the profile goes live immediately.
func ApplyToBeATutor(c *fiber.Ctx) error {
	userID := actorID(c)

	var req TutorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existingProfile models.TutorProfile
	err := database.DB.Where("user_id = ?", userID).First(&existingProfile).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You already have a tutor profile."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var newProfile models.TutorProfile
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		newProfile = models.TutorProfile{
			UserID:   userID,
			Headline: &req.Headline,
			Bio:      &req.Bio,
		}
		if err := tx.Create(&newProfile).Error; err != nil {
			return err
		}

		for _, name := range req.Subjects {
			var subject models.Subject
			if err := tx.Where("name = ?", name).FirstOrCreate(&subject, models.Subject{Name: name}).Error; err != nil {
				return err
			}
			if err := tx.Model(&newProfile).Association("Subjects").Append(&subject); err != nil {
				return err
			}
		}

		return tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"is_tutor": true, "role": "tutor"}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create tutor profile"})
	}

	return c.Status(fiber.StatusCreated).JSON(newProfile)
}

func ListTutors(c *fiber.Ctx) error {
	var profiles []models.TutorProfile
	database.DB.
		Preload("User").
		Preload("Subjects").
		Joins("JOIN users on users.id = tutor_profiles.user_id").
		Where("users.is_active = ?", true).
		Order("tutor_profiles.rating desc").
		Find(&profiles)

	return c.JSON(profiles)
}

func GetTutorProfile(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	var profile models.TutorProfile
	if err := database.DB.Preload("User").Preload("Subjects").First(&profile, "user_id = ?", tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	return c.JSON(profile)
}

type CreateAvailabilityRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

func CreateAvailabilitySlot(c *fiber.Ctx) error {
	tutorID := actorID(c)

	var req CreateAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.StartTime >= req.EndTime {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Start time must be before end time"})
	}

	newSlot := models.AvailabilitySlot{
		TutorID:   tutorID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := database.DB.Create(&newSlot).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create availability slot"})
	}

	return c.Status(fiber.StatusCreated).JSON(newSlot)
}

func GetMyAvailability(c *fiber.Ctx) error {
	tutorID := actorID(c)

	var slots []models.AvailabilitySlot
	database.DB.Where("tutor_id = ?", tutorID).Find(&slots)

	return c.JSON(slots)
}

func DeleteAvailabilitySlot(c *fiber.Ctx) error {
	tutorID := actorID(c)

	slotID, err := uuid.Parse(c.Params("slotId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot id"})
	}

	result := database.DB.Where("id = ? AND tutor_id = ?", slotID, tutorID).Delete(&models.AvailabilitySlot{})
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Availability slot not found"})
	}

	return c.JSON(fiber.Map{"message": "Availability slot deleted"})
}

func GetTutorAvailability(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}

	var slots []models.AvailabilitySlot
	database.DB.Where("tutor_id = ?", tutorID).Find(&slots)

	return c.JSON(slots)
}
