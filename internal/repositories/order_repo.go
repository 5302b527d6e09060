package repositories

import "foodcourt/internal/models"

// OrderRepository defines the interface for order data access.
// Orders are never deleted, so the interface carries no Delete.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	// Find lists orders newest first. userID 0 and status "" disable the
	// respective filter.
	Find(userID uint, status models.OrderStatus) ([]models.Order, error)
	UpdateFields(id uint, fields map[string]interface{}) error
}

// OrderItemRepository defines the interface for order item data access.
type OrderItemRepository interface {
	Create(item *models.OrderItem) error
	GetByOrderID(orderID uint) ([]models.OrderItem, error)
	GetAll() ([]models.OrderItem, error)
	GetWithEmptyName() ([]models.OrderItem, error)
	UpdateFields(id uint, fields map[string]interface{}) error
}
