package routes

import (
	"github.com/anjiri1684/peer_tutor/handlers"
	"github.com/anjiri1684/peer_tutor/middleware"
	"github.com/gofiber/fiber/v2"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/tutors", handlers.ListTutors)
	api.Get("/tutors/:tutorId", handlers.GetTutorProfile)
	api.Get("/tutors/:tutorId/availability", handlers.GetTutorAvailability)

	tutor := api.Group("/tutor", middleware.Protected())
	tutor.Post("/apply", handlers.ApplyToBeATutor)

	availability := tutor.Group("/availability", middleware.TutorRequired())
	availability.Post("", handlers.CreateAvailabilitySlot)
	availability.Get("/me", handlers.GetMyAvailability)
	availability.Delete("/:slotId", handlers.DeleteAvailabilitySlot)
}
