package handlers

import (
	ws "github.com/anjiri1684/peer_tutor/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func WebsocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("user_id", actorID(c))
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// NotificationSocket keeps the connection registered with the hub until the
// client disconnects. The hub pushes notifications; nothing is read from the
// client beyond control frames.
func NotificationSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &ws.Client{
			UserID: conn.Locals("user_id").(uuid.UUID),
			Conn:   conn,
		}

		ws.Register <- client
		defer func() {
			ws.Unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})
}
