package handlers

import (
	"errors"

	"github.com/anjiri1684/peer_tutor/services"
	"github.com/gofiber/fiber/v2"
)

// GetRecommendations serves the personalized tutor ranking. The engine is a
// constructed dependency so tests and fallback-only deployments can swap the
// AI client.
func GetRecommendations(engine *services.RecommendationEngine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID := actorID(c)

		result, err := engine.Recommend(c.UserContext(), studentID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build recommendations"})
		}

		return c.JSON(result)
	}
}
