package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/example/restaurantflow/internal/models"
)

// OrderService drives the order lifecycle: creation with price snapshots and
// stock deduction, status updates for orders and their line items, and
// availability derived from recipes and current stock.
type OrderService struct {
	db        *gorm.DB
	inventory *InventoryService
	notifier  Notifier
}

// NewOrderService constructs OrderService. notifier may be nil.
func NewOrderService(db *gorm.DB, inventory *InventoryService, notifier Notifier) *OrderService {
	return &OrderService{db: db, inventory: inventory, notifier: notifier}
}

type CreateOrderItemInput struct {
	MenuItemID          uint   `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

type CreateOrderInput struct {
	OrderType   string                 `json:"order_type"`
	TableNumber *int                   `json:"table_number"`
	Items       []CreateOrderItemInput `json:"items"`
}

const (
	minQuantity = 1
	maxQuantity = 20

	// The API accepts tables up to 999 while the storage constraint only
	// allows 1..10; out-of-range values are rejected by the database, not
	// here. Known inconsistency, kept for compatibility.
	maxTableNumber = 999

	orderNumberAttempts = 3
)

// CreateOrder validates the request fail-fast, snapshots current menu
// prices, persists the order and its items as one unit and then deducts
// ingredient stock per line item. The deduction is best-effort: failures are
// logged and never roll back the order. Emits one NewOrder event on success.
func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, invalidf("items", "at least one item is required")
	}

	orderType := in.OrderType
	if orderType == "" {
		orderType = models.OrderTypeDineIn
	}
	switch orderType {
	case models.OrderTypeDineIn:
		if in.TableNumber == nil {
			return nil, invalidf("table_number", "table number is required for dine-in orders")
		}
		if *in.TableNumber < 1 || *in.TableNumber > maxTableNumber {
			return nil, invalidf("table_number", "table number must be between 1 and %d", maxTableNumber)
		}
	case models.OrderTypeTakeAway:
		if in.TableNumber != nil {
			return nil, invalidf("table_number", "take-away orders have no table number")
		}
	default:
		return nil, invalidf("order_type", "unknown order type %q", in.OrderType)
	}

	now := time.Now().UTC()
	order := models.Order{
		OrderType:     orderType,
		TableNumber:   in.TableNumber,
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodCash,
		CreatedAt:     now,
	}

	var total float64
	lookups := make([]models.MenuItem, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity < minQuantity || item.Quantity > maxQuantity {
			return nil, invalidf("items", "quantity for menu item %d must be between %d and %d",
				item.MenuItemID, minQuantity, maxQuantity)
		}

		var menuItem models.MenuItem
		if err := s.db.First(&menuItem, item.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, invalidf("items", "menu item %d not found", item.MenuItemID)
			}
			return nil, err
		}
		if !menuItem.IsAvailable {
			return nil, invalidf("items", "menu item %q is not available", menuItem.Name)
		}

		order.Items = append(order.Items, models.OrderItem{
			MenuItemID:      menuItem.ID,
			Quantity:        item.Quantity,
			Price:           menuItem.Price,
			Status:          models.OrderStatusPending,
			SpecialRequests: item.SpecialInstructions,
			CreatedAt:       now,
		})
		total += menuItem.Price * float64(item.Quantity)
		lookups = append(lookups, menuItem)
	}
	order.TotalAmount = total

	// The random suffix can collide; the unique index rejects the duplicate
	// and we regenerate a bounded number of times instead of failing the
	// whole order.
	var createErr error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = generateOrderNumber()
		createErr = s.db.Create(&order).Error
		if createErr == nil {
			break
		}
		if !isDuplicateOrderNumber(createErr) {
			return nil, createErr
		}
		log.Printf("[Order] order number %s collided, regenerating", order.OrderNumber)
	}
	if createErr != nil {
		return nil, createErr
	}

	// Attach after the insert so gorm does not try to upsert the menu items.
	// Kitchen displays render item names straight off the NewOrder payload.
	for i := range order.Items {
		order.Items[i].MenuItem = &lookups[i]
	}

	s.deductStockForOrder(&order)

	if s.notifier != nil {
		s.notifier.NotifyNewOrder(&order)
	}
	return &order, nil
}

// deductStockForOrder subtracts recipe quantities for every line item. Each
// adjustment failure is logged and skipped; inventory bookkeeping never
// blocks a placed order, so stock can drift negative under load.
func (s *OrderService) deductStockForOrder(order *models.Order) {
	for _, item := range order.Items {
		var menuItem models.MenuItem
		if err := s.db.First(&menuItem, item.MenuItemID).Error; err != nil {
			log.Printf("[Order] menu item %d lookup failed during stock deduction for %s: %v",
				item.MenuItemID, order.OrderNumber, err)
			continue
		}

		var recipe []models.MenuItemIngredient
		if err := s.db.Where("menu_item_id = ?", item.MenuItemID).Find(&recipe).Error; err != nil {
			log.Printf("[Order] recipe lookup failed for menu item %d on %s: %v",
				item.MenuItemID, order.OrderNumber, err)
			continue
		}

		reason := fmt.Sprintf("Order %s: %s x%d", order.OrderNumber, menuItem.Name, item.Quantity)
		for _, line := range recipe {
			delta := -line.Quantity * float64(item.Quantity)
			if _, err := s.inventory.AdjustStock(line.IngredientID, delta, reason); err != nil {
				log.Printf("[Order] stock deduction failed for ingredient %d on %s: %v",
					line.IngredientID, order.OrderNumber, err)
			}
		}
	}
}

// UpdateOrderStatus sets the order's status. No transition guard is applied;
// models.ValidTransition documents the intended pipeline. Completed stamps
// CompletedAt; no other status touches a timestamp on the order.
func (s *OrderService) UpdateOrderStatus(orderID uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}

	updatedAt := time.Now().UTC()
	order.Status = status
	if status == models.OrderStatusCompleted {
		order.CompletedAt = &updatedAt
	}
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyOrderStatusChanged(order.ID, status, updatedAt)
	}
	return &order, nil
}

// UpdateOrderItemStatus sets a line item's status. InProgress stamps
// StartedCookingAt and Ready stamps ReadyAt; setting the same status again
// re-stamps the timestamp, the call is not idempotent.
func (s *OrderService) UpdateOrderItemStatus(orderItemID uint, status models.OrderStatus) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := s.db.First(&item, orderItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order item %d: %w", orderItemID, ErrNotFound)
		}
		return nil, err
	}

	now := time.Now().UTC()
	item.Status = status
	switch status {
	case models.OrderStatusInProgress:
		item.StartedCookingAt = &now
	case models.OrderStatusReady:
		item.ReadyAt = &now
	}
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// IsMenuItemAvailable reports whether every recipe line of the menu item has
// enough stock for one more portion. It is a point-in-time read and reserves
// nothing; two concurrent checks can both pass and both deduct afterwards.
// A menu item with no recipe is always available.
func (s *OrderService) IsMenuItemAvailable(menuItemID uint) (bool, error) {
	var recipe []models.MenuItemIngredient
	if err := s.db.Where("menu_item_id = ?", menuItemID).Find(&recipe).Error; err != nil {
		return false, err
	}

	for _, line := range recipe {
		var ingredient models.Ingredient
		if err := s.db.First(&ingredient, line.IngredientID).Error; err != nil {
			return false, err
		}
		if ingredient.CurrentStock < line.Quantity {
			return false, nil
		}
	}
	return true, nil
}

// GetOrder returns one order with its items and their menu items.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Items.MenuItem").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, err
	}
	return &order, nil
}

// ListOrders returns orders, optionally filtered by status. The unfiltered
// view is newest first; a status filter returns oldest first, the order the
// kitchen works a backlog in.
func (s *OrderService) ListOrders(status *models.OrderStatus) ([]models.Order, error) {
	query := s.db.Preload("Items").Preload("Items.MenuItem")
	ordering := "created_at desc"
	if status != nil {
		query = query.Where("status = ?", *status)
		ordering = "created_at"
	}

	var orders []models.Order
	err := query.Order(ordering).Find(&orders).Error
	return orders, err
}

// ListOrdersByDateRange returns orders created in [from, to), oldest first.
func (s *OrderService) ListOrdersByDateRange(from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Preload("Items.MenuItem").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at").
		Find(&orders).Error
	return orders, err
}

// ListActiveOrders returns orders that are neither completed nor cancelled,
// oldest first, the ordering kitchen displays work through.
func (s *OrderService) ListActiveOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Preload("Items.MenuItem").
		Where("status NOT IN ?", []models.OrderStatus{models.OrderStatusCompleted, models.OrderStatusCancelled}).
		Order("created_at").
		Find(&orders).Error
	return orders, err
}

const recentCompletedLimit = 20

// ListRecentCompleted returns the last completed orders for the counter
// hand-off view.
func (s *OrderService) ListRecentCompleted() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Preload("Items.MenuItem").
		Where("status = ?", models.OrderStatusCompleted).
		Order("completed_at desc").
		Limit(recentCompletedLimit).
		Find(&orders).Error
	return orders, err
}

func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%04d", time.Now().Format("20060102"), 1000+rand.Intn(9000))
}

func isDuplicateOrderNumber(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// sqlite: "UNIQUE constraint failed: orders.order_number"
	// postgres: "duplicate key value violates unique constraint"
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
