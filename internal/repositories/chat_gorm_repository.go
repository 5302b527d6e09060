package repositories

import (
	"fmt"

	"foodcourt/internal/models"

	"gorm.io/gorm"
)

// GORMChatRepository is a GORM implementation of ChatRepository.
type GORMChatRepository struct {
	db *gorm.DB
}

// NewGORMChatRepository creates a new instance of GORMChatRepository.
func NewGORMChatRepository(db *gorm.DB) *GORMChatRepository {
	return &GORMChatRepository{db: db}
}

// Create inserts a new chat message.
func (r *GORMChatRepository) Create(message *models.ChatMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

// GetByUser retrieves one user's conversation, oldest first.
func (r *GORMChatRepository) GetByUser(userID uint) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to get chat messages for user %d: %w", userID, err)
	}
	return messages, nil
}

// participantsQuery collapses chat_messages to its latest row per user and
// joins the user name plus the unread count of messages the user sent.
// Plain SQL rather than a stored procedure so it also runs on SQLite in
// tests.
const participantsQuery = `
SELECT cm.user_id,
       u.name AS user_name,
       cm.message,
       cm.created_at,
       (SELECT COUNT(*)
          FROM chat_messages c2
         WHERE c2.user_id = cm.user_id
           AND c2.sender = 'user'
           AND NOT c2.is_read) AS unread_count
  FROM chat_messages cm
  LEFT JOIN users u ON u.id = cm.user_id
 WHERE cm.id = (SELECT c3.id
                  FROM chat_messages c3
                 WHERE c3.user_id = cm.user_id
                 ORDER BY c3.created_at DESC, c3.id DESC
                 LIMIT 1)
 ORDER BY cm.created_at DESC`

// Participants aggregates the admin-facing conversation list.
func (r *GORMChatRepository) Participants() ([]models.ChatParticipant, error) {
	var participants []models.ChatParticipant
	if err := r.db.Raw(participantsQuery).Scan(&participants).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate chat participants: %w", err)
	}
	return participants, nil
}

// MarkRead marks all messages of a (user, sender) pair as read.
func (r *GORMChatRepository) MarkRead(userID uint, sender string) error {
	if err := r.db.Model(&models.ChatMessage{}).
		Where("user_id = ? AND sender = ?", userID, sender).
		Update("is_read", true).Error; err != nil {
		return fmt.Errorf("failed to mark chat messages read for user %d: %w", userID, err)
	}
	return nil
}
