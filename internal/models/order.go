package models

import "time"

// OrderStatus values are serialized numerically; clients depend on the
// ordinals, do not reorder.
type OrderStatus int

const (
	OrderStatusPending OrderStatus = iota
	OrderStatusInProgress
	OrderStatusReady
	OrderStatusCompleted
	OrderStatusCancelled
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "pending"
	case OrderStatusInProgress:
		return "in_progress"
	case OrderStatusReady:
		return "ready"
	case OrderStatusCompleted:
		return "completed"
	case OrderStatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the known status values.
func (s OrderStatus) Valid() bool {
	return s >= OrderStatusPending && s <= OrderStatusCancelled
}

// Terminal reports whether no further transitions leave s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// ValidTransition describes the intended cook pipeline:
// Pending -> InProgress -> Ready -> Completed, with Cancelled reachable from
// any non-terminal state. The status update paths do not currently enforce
// it; this is the single place a guard would plug in.
func ValidTransition(from, to OrderStatus) bool {
	if from == to || from.Terminal() {
		return false
	}
	if to == OrderStatusCancelled {
		return true
	}
	switch from {
	case OrderStatusPending:
		return to == OrderStatusInProgress
	case OrderStatusInProgress:
		return to == OrderStatusReady
	case OrderStatusReady:
		return to == OrderStatusCompleted
	default:
		return false
	}
}

const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeTakeAway = "take_away"
)

// PaymentMethodCash is the only payment method in use; payment processing is
// handled outside this system.
const PaymentMethodCash = "cash"

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	OrderNumber   string      `gorm:"uniqueIndex" json:"order_number"`
	OrderType     string      `json:"order_type"`
	TableNumber   *int        `gorm:"check:table_number IS NULL OR (table_number >= 1 AND table_number <= 10)" json:"table_number,omitempty"`
	Status        OrderStatus `json:"status"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"`
	CreatedAt     time.Time   `json:"created_at"`
	CompletedAt   *time.Time  `json:"completed_at,omitempty"`
	Items         []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"index" json:"order_id"`
	MenuItemID uint      `json:"menu_item_id"`
	MenuItem   *MenuItem `json:"menu_item,omitempty"`
	Quantity   int       `json:"quantity"`
	// Price is captured when the order is placed; later menu price changes
	// never alter it.
	Price            float64     `json:"price"`
	Status           OrderStatus `json:"status"`
	SpecialRequests  string      `json:"special_requests"`
	CreatedAt        time.Time   `json:"created_at"`
	StartedCookingAt *time.Time  `json:"started_cooking_at,omitempty"`
	ReadyAt          *time.Time  `json:"ready_at,omitempty"`
}
