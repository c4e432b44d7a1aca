package routes

import (
	"github.com/anjiri1684/peer_tutor/handlers"
	"github.com/anjiri1684/peer_tutor/middleware"
	"github.com/gofiber/fiber/v2"
)

func SessionRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	session := api.Group("/sessions", middleware.Protected())
	session.Get("/me", handlers.GetMySessions)
	session.Post("", handlers.CreateSession)
	session.Post("/:sessionId/cancel", handlers.CancelSession)
	session.Post("/:sessionId/review", handlers.CreateReview)
	session.Put("/:sessionId/notes", handlers.UpdateSessionNotes)

	tutorSession := api.Group("/tutor/sessions", middleware.Protected(), middleware.TutorRequired())
	tutorSession.Get("/me", handlers.GetMyTutorSessions)
	tutorSession.Post("/:sessionId/confirm", handlers.ConfirmSession)
	tutorSession.Post("/:sessionId/complete", handlers.CompleteSession)
}
