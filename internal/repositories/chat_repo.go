package repositories

import "foodcourt/internal/models"

// ChatRepository defines the interface for chat message data access.
type ChatRepository interface {
	Create(message *models.ChatMessage) error
	GetByUser(userID uint) ([]models.ChatMessage, error)
	// Participants aggregates one row per user who has ever chatted:
	// their latest message plus the count of their unread messages.
	Participants() ([]models.ChatParticipant, error)
	MarkRead(userID uint, sender string) error
}
