package services

import (
	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
)

// NotificationService exposes the read side of notifications. Creation
// happens only inside the order status transition.
type NotificationService struct {
	repo repositories.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// ListByUser returns a user's notifications, newest first.
func (s *NotificationService) ListByUser(userID uint) ([]models.Notification, error) {
	return s.repo.GetByUser(userID)
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(id uint) error {
	return s.repo.MarkRead(id)
}

// MarkAllRead marks every notification of a user as read.
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.repo.MarkAllRead(userID)
}
