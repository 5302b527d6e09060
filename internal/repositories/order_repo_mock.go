package repositories

import (
	"sort"
	"sync"
	"time"

	"foodcourt/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[uint]models.Order
	nextID uint
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[uint]models.Order),
		nextID: 1,
	}
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == 0 {
		order.ID = r.nextID
	}
	if order.ID >= r.nextID {
		r.nextID = order.ID + 1
	}
	order.CreatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// GetByID returns an order by its id.
func (r *MockOrderRepository) GetByID(id uint) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

// Find returns orders newest first with optional filters.
func (r *MockOrderRepository) Find(userID uint, status models.OrderStatus) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if userID != 0 && o.UserID != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// UpdateFields applies a partial update to an order.
func (r *MockOrderRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "status":
			switch v := value.(type) {
			case models.OrderStatus:
				order.Status = v
			case string:
				order.Status = models.OrderStatus(v)
			}
		case "return_reason":
			order.ReturnReason = value.(string)
		case "delivered_at":
			switch v := value.(type) {
			case time.Time:
				order.DeliveredAt = &v
			case *time.Time:
				order.DeliveredAt = v
			}
		}
	}
	r.orders[id] = order
	return nil
}

// MockOrderItemRepository is an in-memory implementation of OrderItemRepository.
type MockOrderItemRepository struct {
	items  map[uint]models.OrderItem
	nextID uint
	mu     sync.RWMutex

	// FailOnName, when non-empty, makes Create fail for an item carrying
	// that name. Used to exercise partial-insert behavior.
	FailOnName string
	FailErr    error
}

// NewMockOrderItemRepository creates a new instance of MockOrderItemRepository.
func NewMockOrderItemRepository() *MockOrderItemRepository {
	return &MockOrderItemRepository{
		items:  make(map[uint]models.OrderItem),
		nextID: 1,
	}
}

// Create adds a new order item.
func (r *MockOrderItemRepository) Create(item *models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailOnName != "" && item.Name == r.FailOnName {
		return r.FailErr
	}
	if item.ID == 0 {
		item.ID = r.nextID
	}
	if item.ID >= r.nextID {
		r.nextID = item.ID + 1
	}
	r.items[item.ID] = *item
	return nil
}

// GetByOrderID returns the items of one order, oldest first.
func (r *MockOrderItemRepository) GetByOrderID(orderID uint) ([]models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.OrderItem
	for _, item := range r.items {
		if item.OrderID == orderID {
			list = append(list, item)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// GetAll returns every item, oldest first.
func (r *MockOrderItemRepository) GetAll() ([]models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.OrderItem, 0, len(r.items))
	for _, item := range r.items {
		list = append(list, item)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// GetWithEmptyName returns items missing their denormalized name.
func (r *MockOrderItemRepository) GetWithEmptyName() ([]models.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.OrderItem
	for _, item := range r.items {
		if item.Name == "" {
			list = append(list, item)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

// UpdateFields applies a partial update to an order item.
func (r *MockOrderItemRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	for key, value := range fields {
		switch key {
		case "name":
			item.Name = value.(string)
		case "product_id":
			item.ProductID = value.(uint)
		}
	}
	r.items[id] = item
	return nil
}
