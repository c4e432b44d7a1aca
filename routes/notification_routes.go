package routes

import (
	"github.com/anjiri1684/peer_tutor/handlers"
	"github.com/anjiri1684/peer_tutor/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notification := api.Group("/notifications", middleware.Protected())
	notification.Get("/me", handlers.GetMyNotifications)
	notification.Put("/:notificationId/read", handlers.MarkNotificationRead)

	app.Get("/ws/notifications", middleware.Protected(), handlers.WebsocketUpgrade, handlers.NotificationSocket())
}
