package handlers

import (
	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetMyNotifications(c *fiber.Ctx) error {
	userID := actorID(c)

	var notifications []models.Notification
	database.DB.
		Where("recipient_id = ?", userID).
		Order("created_at desc").
		Limit(50).
		Find(&notifications)

	return c.JSON(notifications)
}

func MarkNotificationRead(c *fiber.Ctx) error {
	userID := actorID(c)

	notificationID, err := uuid.Parse(c.Params("notificationId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid notification id"})
	}

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, userID).
		Update("read", true)
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Notification not found"})
	}

	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}
