package handlers

import (
	"log"

	"foodcourt/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles HTTP requests for user notifications.
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// RegisterRoutes registers the notification routes with the Fiber app.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/users/:userId/notifications", h.HandleListByUser)
	router.Put("/notifications/:id/read", h.HandleMarkRead)
	router.Put("/users/:userId/notifications/read-all", h.HandleMarkAllRead)
}

// HandleListByUser returns a user's notifications, newest first.
func (h *NotificationHandler) HandleListByUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	notifications, err := h.service.ListByUser(userID)
	if err != nil {
		log.Printf("Error fetching notifications for user %d: %v", userID, err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", notifications)
}

// HandleMarkRead marks one notification as read.
func (h *NotificationHandler) HandleMarkRead(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.MarkRead(id); err != nil {
		log.Printf("Error marking notification %d as read: %v", id, err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Notification marked as read", nil)
}

// HandleMarkAllRead marks all of a user's notifications as read.
func (h *NotificationHandler) HandleMarkAllRead(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.MarkAllRead(userID); err != nil {
		log.Printf("Error marking notifications read for user %d: %v", userID, err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "All notifications marked as read", nil)
}
