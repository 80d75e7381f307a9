package services

import (
	"time"

	"github.com/example/restaurantflow/internal/models"
)

// Notifier pushes state-change events to every connected station. Delivery
// is best-effort at-most-once: a station that is offline when an event fires
// misses it and recovers by reloading. Implementations must never block the
// calling request path on a slow or dead station.
type Notifier interface {
	NotifyNewOrder(order *models.Order)
	NotifyOrderStatusChanged(orderID uint, status models.OrderStatus, updatedAt time.Time)
	NotifyMenuUpdated()
	NotifyInventoryUpdated(ingredientID uint)
}
