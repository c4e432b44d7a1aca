package notifications

import (
	"log"

	"github.com/anjiri1684/peer_tutor/database"
	"github.com/anjiri1684/peer_tutor/models"
	"github.com/anjiri1684/peer_tutor/websocket"
	"github.com/google/uuid"
)

// Dispatch persists a notification for the recipient and pushes it to their
// websocket connection if one is open. Delivery is strictly best-effort: a
// failure here never rolls back the operation that triggered it, the session
// status remains the source of truth.
func Dispatch(recipientID uuid.UUID, title, message, severity string) {
	notification := models.Notification{
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Severity:    severity,
	}

	if err := database.DB.Create(&notification).Error; err != nil {
		log.Printf("🔥 Failed to persist notification for %s: %v", recipientID, err)
		return
	}

	select {
	case websocket.Push <- &notification:
	default:
		// Hub not draining; the persisted row is still visible via the API.
	}
}
