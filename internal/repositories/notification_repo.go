package repositories

import "foodcourt/internal/models"

// NotificationRepository defines the interface for notification data access.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByUser(userID uint) ([]models.Notification, error)
	MarkRead(id uint) error
	MarkAllRead(userID uint) error
}
