package routes

import (
	"github.com/anjiri1684/peer_tutor/handlers"
	"github.com/anjiri1684/peer_tutor/middleware"
	"github.com/anjiri1684/peer_tutor/services"
	"github.com/gofiber/fiber/v2"
)

func RecommendationRoutes(app *fiber.App, engine *services.RecommendationEngine) {
	api := app.Group("/api/v1")

	api.Get("/recommendations", middleware.Protected(), handlers.GetRecommendations(engine))
}
