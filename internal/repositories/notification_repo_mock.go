package repositories

import (
	"sort"
	"sync"
	"time"

	"foodcourt/internal/models"
)

// MockNotificationRepository is an in-memory implementation of NotificationRepository.
type MockNotificationRepository struct {
	notifications map[uint]models.Notification
	nextID        uint
	mu            sync.RWMutex

	// FailErr, when set, makes Create fail. Used to exercise the
	// no-rollback guarantee of the status transition.
	FailErr error
}

// NewMockNotificationRepository creates a new instance of MockNotificationRepository.
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		notifications: make(map[uint]models.Notification),
		nextID:        1,
	}
}

// Create adds a new notification.
func (r *MockNotificationRepository) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailErr != nil {
		return r.FailErr
	}
	if notification.ID == 0 {
		notification.ID = r.nextID
	}
	if notification.ID >= r.nextID {
		r.nextID = notification.ID + 1
	}
	notification.CreatedAt = time.Now()
	r.notifications[notification.ID] = *notification
	return nil
}

// GetByUser returns a user's notifications, newest first.
func (r *MockNotificationRepository) GetByUser(userID uint) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			list = append(list, n)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// MarkRead marks one notification as read.
func (r *MockNotificationRepository) MarkRead(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.notifications[id]; ok {
		n.IsRead = true
		r.notifications[id] = n
	}
	return nil
}

// MarkAllRead marks every notification of a user as read.
func (r *MockNotificationRepository) MarkAllRead(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
			r.notifications[id] = n
		}
	}
	return nil
}
