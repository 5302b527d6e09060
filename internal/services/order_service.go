package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"
	"foodcourt/pkg/rabbitmq"
)

// OrderService owns order creation, order queries, and the order lifecycle:
// the legal set of statuses and the notification side effect of each
// transition.
type OrderService struct {
	orderRepo        repositories.OrderRepository
	itemRepo         repositories.OrderItemRepository
	productRepo      repositories.ProductRepository
	notificationRepo repositories.NotificationRepository
	mqClient         *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil, in which
// case event publication is skipped.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	itemRepo repositories.OrderItemRepository,
	productRepo repositories.ProductRepository,
	notificationRepo repositories.NotificationRepository,
	mqClient *rabbitmq.Client,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		itemRepo:         itemRepo,
		productRepo:      productRepo,
		notificationRepo: notificationRepo,
		mqClient:         mqClient,
	}
}

// OrderItemInput is one requested order line, with the numeric fields still
// in their raw textual form: clients send product_id, quantity, and price as
// either JSON numbers or strings.
type OrderItemInput struct {
	ProductID string
	Name      string
	Quantity  string
	Price     string
}

// CreateOrderInput is the payload of the order-creation operation.
type CreateOrderInput struct {
	UserID      uint
	TotalAmount float64
	Items       []OrderItemInput
}

// CreateOrder inserts the order row first and then each item individually.
// There is no transaction across the rows: a failing item aborts the
// remaining ones and reports the error while earlier inserts stay in place.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 || input.TotalAmount == 0 || len(input.Items) == 0 {
		return nil, fmt.Errorf("invalid order data: %w", ErrInvalidInput)
	}

	order := &models.Order{
		UserID:      input.UserID,
		TotalAmount: input.TotalAmount,
		Status:      models.StatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	for _, in := range input.Items {
		pid, err := strconv.ParseUint(strings.TrimSpace(in.ProductID), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid product ID: %s: %w", in.ProductID, ErrInvalidInput)
		}
		productID := uint(pid)

		quantity, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
		if err != nil || quantity < 1 {
			quantity = 1
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
		if err != nil || price < 0 {
			price = 0
		}

		item := &models.OrderItem{
			OrderID:   order.ID,
			ProductID: productID,
			Name:      resolveDisplayName(in.Name, s.productRepo.GetByID, productID),
			Quantity:  quantity,
			Price:     price,
		}
		if err := s.itemRepo.Create(item); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, *item)
	}

	s.publishOrderEvent("order.created", map[string]interface{}{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
	})

	return order, nil
}

// TransitionStatus sets a new status on an order and records exactly one
// notification for the order's owner. Any status may be set from any prior
// status; membership in the enum is the only gate. The status update and the
// notification insert are both attempted with no compensating rollback if
// the second write fails.
func (s *OrderService) TransitionStatus(orderID uint, newStatus models.OrderStatus, reason string) (models.OrderStatus, error) {
	if !newStatus.IsValid() {
		return "", fmt.Errorf("invalid status %q, valid values are: %s: %w",
			newStatus, joinStatuses(), ErrInvalidInput)
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return "", err
	}

	items, err := s.itemRepo.GetByOrderID(orderID)
	if err != nil {
		return "", err
	}
	descriptor := itemsDescriptor(items)

	fields := map[string]interface{}{"status": newStatus}
	if newStatus == models.StatusReturning && reason != "" {
		fields["return_reason"] = reason
	}
	if newStatus == models.StatusDelivered {
		fields["delivered_at"] = time.Now()
	}
	if err := s.orderRepo.UpdateFields(orderID, fields); err != nil {
		return "", err
	}

	title, message := notificationForStatus(newStatus, order.Status, descriptor)
	notification := &models.Notification{
		UserID:  order.UserID,
		Title:   title,
		Message: message,
		IsRead:  false,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		return "", err
	}

	s.publishOrderEvent("order.status_changed", map[string]interface{}{
		"order_id":   orderID,
		"user_id":    order.UserID,
		"old_status": order.Status,
		"new_status": newStatus,
	})

	return newStatus, nil
}

// ListOrders returns orders newest first with nested items, optionally
// filtered by user and status.
func (s *OrderService) ListOrders(userID uint, status models.OrderStatus) ([]models.Order, error) {
	orders, err := s.orderRepo.Find(userID, status)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		items, err := s.itemsWithNames(orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// OrdersByUser returns one user's orders, newest first, without items.
func (s *OrderService) OrdersByUser(userID uint) ([]models.Order, error) {
	return s.orderRepo.Find(userID, "")
}

// OrderDetails returns a single order with its items.
func (s *OrderService) OrderDetails(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemsWithNames(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

// ItemsByOrder returns the items of one order.
func (s *OrderService) ItemsByOrder(orderID uint) ([]models.OrderItem, error) {
	return s.itemsWithNames(orderID)
}

// itemsWithNames loads an order's items and substitutes the placeholder for
// any still-empty denormalized name, so responses never show a blank line.
func (s *OrderService) itemsWithNames(orderID uint) ([]models.OrderItem, error) {
	items, err := s.itemRepo.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Name == "" {
			items[i].Name = placeholderName(items[i].ProductID)
		}
	}
	return items, nil
}

// publishOrderEvent publishes best-effort: a broker failure is logged and
// never fails the request.
func (s *OrderService) publishOrderEvent(event string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishOrderEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}

// placeholderName synthesizes the display name used when no real product
// name can be resolved.
func placeholderName(productID uint) string {
	return fmt.Sprintf("Product #%d", productID)
}

// resolveDisplayName picks the display name for an order item: the supplied
// name if present, else the product's current name, else the placeholder.
func resolveDisplayName(supplied string, productLookup func(uint) (*models.Product, error), productID uint) string {
	if supplied != "" {
		return supplied
	}
	if product, err := productLookup(productID); err == nil && product.Name != "" {
		return product.Name
	}
	return placeholderName(productID)
}

// itemsDescriptor builds the human-readable summary of an order's items
// used in notification text: empty for no items, the single item's name
// (or "#<product_id>"), or a count for several items.
func itemsDescriptor(items []models.OrderItem) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		if items[0].Name != "" {
			return items[0].Name
		}
		return fmt.Sprintf("#%d", items[0].ProductID)
	default:
		return fmt.Sprintf("(%d sản phẩm)", len(items))
	}
}

// notificationForStatus derives the notification wording for a transition.
// The only conditional on the previous state: a delivery that follows a
// return request reads as a rejection of that request.
func notificationForStatus(newStatus, prevStatus models.OrderStatus, descriptor string) (title, message string) {
	switch newStatus {
	case models.StatusProcessing:
		return "Order is being processed",
			fmt.Sprintf("Your order %s is being processed.", descriptor)
	case models.StatusShipped:
		return "Order is being shipped",
			fmt.Sprintf("Your order %s is on its way to you.", descriptor)
	case models.StatusDelivered:
		if prevStatus == models.StatusReturning {
			return "Return request rejected",
				fmt.Sprintf("Your return request for %s was rejected. Contact us for details.", descriptor)
		}
		return "Order delivered successfully",
			fmt.Sprintf("Your order %s was delivered. Thank you!", descriptor)
	case models.StatusCancelled:
		return "Order cancelled",
			fmt.Sprintf("Your order %s was cancelled.", descriptor)
	case models.StatusReturning:
		return "Return request received",
			fmt.Sprintf("Your return request for %s was received and will be reviewed.", descriptor)
	case models.StatusReturned:
		return "Order returned successfully",
			fmt.Sprintf("Your order %s was returned. Refund will post in 3–5 business days.", descriptor)
	default:
		return "Order status updated",
			fmt.Sprintf("Your order %s was updated to status %s.", descriptor, newStatus)
	}
}

func joinStatuses() string {
	parts := make([]string, len(models.ValidStatuses))
	for i, s := range models.ValidStatuses {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}
