package models

import "time"

// OrderStatus enumerates the legal order states. Any status may be set from
// any prior status; the enum is the only gate.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusReturning  OrderStatus = "returning"
	StatusReturned   OrderStatus = "returned"
)

// ValidStatuses lists every accepted order status, in display order.
var ValidStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
	StatusReturning,
	StatusReturned,
}

func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a member of the status enum.
func (s OrderStatus) IsValid() bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order represents a customer order. Orders are created pending, mutated
// only through the status-transition operation, and never deleted.
type Order struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	UserID       uint        `json:"user_id"`
	TotalAmount  float64     `json:"total_amount"`
	Status       OrderStatus `json:"status" gorm:"type:varchar(20)"`
	ReturnReason string      `json:"return_reason,omitempty"`
	DeliveredAt  *time.Time  `json:"delivered_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`

	// Items is filled by a separate query, mirroring the order_items table.
	Items []OrderItem `json:"items,omitempty" gorm:"-"`
}

// OrderItem is a single line of an order. Name is a denormalized copy of the
// product name; ProductID may point at a since-deleted product.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
