package handlers

import (
	"log"

	"foodcourt/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler handles HTTP requests for the support chat.
type ChatHandler struct {
	service *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// RegisterRoutes registers the chat routes with the Fiber app.
func (h *ChatHandler) RegisterRoutes(router fiber.Router) {
	chat := router.Group("/chat")
	chat.Get("/messages/:userId", h.HandleMessages)
	chat.Post("/messages", h.HandleSend)
	chat.Get("/users", h.HandleParticipants)
	chat.Post("/mark-read", h.HandleMarkRead)
}

// HandleMessages returns the full conversation with one user, oldest first.
// Responses carry no-cache headers so polling clients always see new
// messages.
func (h *ChatHandler) HandleMessages(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	c.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Set("Pragma", "no-cache")
	c.Set("Expires", "0")

	messages, err := h.service.MessagesByUser(userID)
	if err != nil {
		log.Printf("Error fetching chat messages for user %d: %v", userID, err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", messages)
}

// SendMessageRequest is the body of a chat message.
type SendMessageRequest struct {
	UserID  uint   `json:"userId"`
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// HandleSend stores a new chat message.
func (h *ChatHandler) HandleSend(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	message, err := h.service.Send(req.UserID, req.Sender, req.Message)
	if err != nil {
		log.Printf("Error sending chat message: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusCreated, "Message sent", message)
}

// HandleParticipants returns every user with chat history, along with their
// latest message and unread count.
func (h *ChatHandler) HandleParticipants(c *fiber.Ctx) error {
	participants, err := h.service.Participants()
	if err != nil {
		log.Printf("Error fetching chat participants: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", participants)
}

// MarkReadRequest is the body of a mark-read call.
type MarkReadRequest struct {
	UserID uint   `json:"userId"`
	Sender string `json:"sender"`
}

// HandleMarkRead marks a side of a conversation as read.
func (h *ChatHandler) HandleMarkRead(c *fiber.Ctx) error {
	var req MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.service.MarkRead(req.UserID, req.Sender); err != nil {
		log.Printf("Error marking chat messages as read: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Messages marked as read", nil)
}
