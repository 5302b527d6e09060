package services

import (
	"fmt"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
)

// ChatService handles the support chat between users and admins.
type ChatService struct {
	repo repositories.ChatRepository
}

// NewChatService creates a new ChatService.
func NewChatService(repo repositories.ChatRepository) *ChatService {
	return &ChatService{repo: repo}
}

// MessagesByUser returns one conversation, oldest first.
func (s *ChatService) MessagesByUser(userID uint) ([]models.ChatMessage, error) {
	return s.repo.GetByUser(userID)
}

// Send stores a new chat message and returns it with its assigned id.
func (s *ChatService) Send(userID uint, sender, message string) (*models.ChatMessage, error) {
	if userID == 0 || sender == "" || message == "" {
		return nil, fmt.Errorf("missing required fields: %w", ErrInvalidInput)
	}

	msg := &models.ChatMessage{
		UserID:  userID,
		Sender:  sender,
		Message: message,
	}
	if err := s.repo.Create(msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Participants returns the admin conversation list. Rows coming back from
// the aggregation can carry an empty user name when the account was
// deleted; those get a synthesized fallback.
func (s *ChatService) Participants() ([]models.ChatParticipant, error) {
	participants, err := s.repo.Participants()
	if err != nil {
		return nil, err
	}
	for i := range participants {
		if participants[i].UserName == "" {
			participants[i].UserName = fmt.Sprintf("User #%d", participants[i].UserID)
		}
	}
	return participants, nil
}

// MarkRead marks all messages of a (user, sender) pair as read.
func (s *ChatService) MarkRead(userID uint, sender string) error {
	if userID == 0 || sender == "" {
		return fmt.Errorf("missing required fields: %w", ErrInvalidInput)
	}
	return s.repo.MarkRead(userID, sender)
}
