package repositories

import (
	"sort"
	"sync"
	"time"

	"foodcourt/internal/models"
)

// MockChatRepository is an in-memory implementation of ChatRepository.
type MockChatRepository struct {
	messages map[uint]models.ChatMessage
	// UserNames maps user ids to display names for the participants
	// aggregation. Unknown ids aggregate with an empty name.
	UserNames map[uint]string
	nextID    uint
	mu        sync.RWMutex
}

// NewMockChatRepository creates a new instance of MockChatRepository.
func NewMockChatRepository() *MockChatRepository {
	return &MockChatRepository{
		messages:  make(map[uint]models.ChatMessage),
		UserNames: make(map[uint]string),
		nextID:    1,
	}
}

// Create adds a new chat message.
func (r *MockChatRepository) Create(message *models.ChatMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == 0 {
		message.ID = r.nextID
	}
	if message.ID >= r.nextID {
		r.nextID = message.ID + 1
	}
	message.CreatedAt = time.Now()
	r.messages[message.ID] = *message
	return nil
}

// GetByUser returns one conversation, oldest first.
func (r *MockChatRepository) GetByUser(userID uint) ([]models.ChatMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.ChatMessage
	for _, m := range r.messages {
		if m.UserID == userID {
			list = append(list, m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// Participants aggregates one row per user: their latest message and the
// count of their unread user-sent messages.
func (r *MockChatRepository) Participants() ([]models.ChatParticipant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	latest := make(map[uint]models.ChatMessage)
	unread := make(map[uint]int)
	for _, m := range r.messages {
		if cur, ok := latest[m.UserID]; !ok || m.ID > cur.ID {
			latest[m.UserID] = m
		}
		if m.Sender == models.SenderUser && !m.IsRead {
			unread[m.UserID]++
		}
	}

	list := make([]models.ChatParticipant, 0, len(latest))
	for userID, m := range latest {
		list = append(list, models.ChatParticipant{
			UserID:      userID,
			UserName:    r.UserNames[userID],
			Message:     m.Message,
			CreatedAt:   m.CreatedAt,
			UnreadCount: unread[userID],
		})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UserID < list[j].UserID })
	return list, nil
}

// MarkRead marks all messages of a (user, sender) pair as read.
func (r *MockChatRepository) MarkRead(userID uint, sender string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.messages {
		if m.UserID == userID && m.Sender == sender {
			m.IsRead = true
			r.messages[id] = m
		}
	}
	return nil
}
