package handlers

import (
	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/gofiber/fiber/v2"
)

type UpdateProfileRequest struct {
	FullName          *string `json:"full_name"`
	ProfilePictureURL *string `json:"profile_picture_url"`
	YearOfStudy       *string `json:"year_of_study"`
	SubjectsNeedHelp  *string `json:"subjects_need_help"`
}

func GetProfile(c *fiber.Ctx) error {
	userID := actorID(c)

	var user models.User
	if err := database.DB.Preload("Badges").Preload("TutorProfile.Subjects").First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := actorID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.YearOfStudy != nil {
		user.YearOfStudy = req.YearOfStudy
	}
	if req.SubjectsNeedHelp != nil {
		user.SubjectsNeedHelp = req.SubjectsNeedHelp
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(user)
}

func GetMyCertificates(c *fiber.Ctx) error {
	userID := actorID(c)

	var certificates []models.Certificate
	database.DB.Where("student_id = ?", userID).Order("completion_date desc").Find(&certificates)

	return c.JSON(certificates)
}
