package routes

import (
	"github.com/anjiri1684/peer_tutor/handlers"
	"github.com/anjiri1684/peer_tutor/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("/me", handlers.GetProfile)
	profile.Put("/me", handlers.UpdateProfile)
	profile.Get("/certificates", handlers.GetMyCertificates)
}
