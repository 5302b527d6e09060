package repositories

import (
	"errors"
	"fmt"

	"foodcourt/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create inserts a new order row. Items are inserted separately through
// the OrderItemRepository; there is no transaction across the two.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves a single order by its id, without items.
func (r *GORMOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// Find lists orders newest first with optional user and status filters.
func (r *GORMOrderRepository) Find(userID uint, status models.OrderStatus) ([]models.Order, error) {
	query := r.db.Order("id DESC")
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	return orders, nil
}

// UpdateFields applies a partial update to an order row.
func (r *GORMOrderRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GORMOrderItemRepository is a GORM implementation of OrderItemRepository.
type GORMOrderItemRepository struct {
	db *gorm.DB
}

// NewGORMOrderItemRepository creates a new instance of GORMOrderItemRepository.
func NewGORMOrderItemRepository(db *gorm.DB) *GORMOrderItemRepository {
	return &GORMOrderItemRepository{db: db}
}

// Create inserts a single order item.
func (r *GORMOrderItemRepository) Create(item *models.OrderItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

// GetByOrderID retrieves all items belonging to an order.
func (r *GORMOrderItemRepository) GetByOrderID(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get items for order %d: %w", orderID, err)
	}
	return items, nil
}

// GetAll retrieves every order item.
func (r *GORMOrderItemRepository) GetAll() ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	return items, nil
}

// GetWithEmptyName retrieves items whose denormalized name is missing.
func (r *GORMOrderItemRepository) GetWithEmptyName() ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.Where("name IS NULL OR name = ''").Order("id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get unnamed order items: %w", err)
	}
	return items, nil
}

// UpdateFields applies a partial update to an order item row.
func (r *GORMOrderItemRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	res := r.db.Model(&models.OrderItem{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update order item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
