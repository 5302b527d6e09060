package handlers

import (
	"encoding/json"
	"log"
	"strings"

	"foodcourt/internal/models"
	"foodcourt/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders and order items.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orders := router.Group("/orders")
	orders.Post("/", h.HandleCreate)
	orders.Get("/", h.HandleList)
	orders.Put("/:id/status", h.HandleUpdateStatus)
	orders.Get("/:id/details", h.HandleDetails)
	orders.Get("/:id/items", h.HandleItems)

	router.Get("/users/:id/orders", h.HandleUserOrders)
}

// orderItemRequest accepts item fields as either JSON numbers or strings.
// Clients are inconsistent about this, so everything is kept raw and the
// service layer does the parsing.
type orderItemRequest struct {
	ProductID json.RawMessage `json:"product_id"`
	ID        json.RawMessage `json:"id"`
	Name      string          `json:"name"`
	Quantity  json.RawMessage `json:"quantity"`
	Price     json.RawMessage `json:"price"`
}

// CreateOrderRequest is the body of an order creation.
type CreateOrderRequest struct {
	UserID      uint               `json:"user_id"`
	TotalAmount float64            `json:"total_amount"`
	Items       []orderItemRequest `json:"items"`
}

// rawString renders a raw JSON scalar as its textual value, stripping the
// quotes when the client sent a string.
func rawString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "null" {
		return ""
	}
	return s
}

// HandleCreate creates an order with its items.
func (h *OrderHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	input := services.CreateOrderInput{
		UserID:      req.UserID,
		TotalAmount: req.TotalAmount,
		Items:       make([]services.OrderItemInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		productID := rawString(item.ProductID)
		if productID == "" {
			productID = rawString(item.ID)
		}
		input.Items = append(input.Items, services.OrderItemInput{
			ProductID: productID,
			Name:      item.Name,
			Quantity:  rawString(item.Quantity),
			Price:     rawString(item.Price),
		})
	}

	order, err := h.service.CreateOrder(input)
	if err != nil {
		log.Printf("Error creating order: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusCreated, "Order created successfully", order)
}

// HandleList returns all orders with their items, optionally filtered by the
// user_id and status query parameters.
func (h *OrderHandler) HandleList(c *fiber.Ctx) error {
	userID := uint(c.QueryInt("user_id"))
	status := models.OrderStatus(c.Query("status"))

	orders, err := h.service.ListOrders(userID, status)
	if err != nil {
		log.Printf("Error fetching orders: %v", err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", orders)
}

// UpdateStatusRequest is the body of a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// HandleUpdateStatus transitions an order to a new status.
func (h *OrderHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	status, err := h.service.TransitionStatus(id, models.OrderStatus(req.Status), req.Reason)
	if err != nil {
		log.Printf("Error updating order %d status: %v", id, err)
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "Order status updated successfully", fiber.Map{
		"id":     id,
		"status": status,
	})
}

// HandleDetails returns an order together with its items.
func (h *OrderHandler) HandleDetails(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	order, err := h.service.OrderDetails(id)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", order)
}

// HandleItems returns the items of an order.
func (h *OrderHandler) HandleItems(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	items, err := h.service.ItemsByOrder(id)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", items)
}

// HandleUserOrders returns the orders belonging to one user, without items.
func (h *OrderHandler) HandleUserOrders(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	orders, err := h.service.OrdersByUser(id)
	if err != nil {
		return failFromError(c, err)
	}
	return success(c, fiber.StatusOK, "", orders)
}
