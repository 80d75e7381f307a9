package ws

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/restaurantflow/internal/models"
)

// Event topic names.
const (
	EventNewOrder           = "NewOrder"
	EventOrderStatusChanged = "OrderStatusChanged"
	EventMenuUpdated        = "MenuUpdated"
	EventInventoryUpdated   = "InventoryUpdated"
)

// Event is the envelope written to every connected station.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// OrderStatusUpdate is the payload of an OrderStatusChanged event.
type OrderStatusUpdate struct {
	OrderID   uint               `json:"order_id"`
	Status    models.OrderStatus `json:"status"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Conn is the subset of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// sendBuffer bounds the per-station queue; a station that falls this far
// behind is dropped rather than allowed to stall publishers.
const sendBuffer = 16

type station struct {
	name string
	conn Conn
	send chan Event
}

// Hub broadcasts events to all connected stations. Each station has its own
// bounded send queue drained by a dedicated goroutine, so Publish never
// blocks the calling request path on a slow or dead connection. Delivery is
// best-effort at-most-once: there is no replay, a write failure or a full
// queue evicts the connection. Stations reconcile missed events by
// reloading. Events reach each live station in publish order.
type Hub struct {
	mu       sync.Mutex
	stations map[uuid.UUID]station
}

// NewHub constructs an empty Hub. One process-lifetime instance is shared by
// all publishers.
func NewHub() *Hub {
	return &Hub{stations: make(map[uuid.UUID]station)}
}

// Add registers a connection under a fresh id and starts its write loop.
// name labels the station (kitchen, counter, tablet) for logs only; delivery
// is always to everyone.
func (h *Hub) Add(name string, conn Conn) uuid.UUID {
	id := uuid.New()
	st := station{name: name, conn: conn, send: make(chan Event, sendBuffer)}
	h.mu.Lock()
	h.stations[id] = st
	h.mu.Unlock()
	go h.writeLoop(id, st)
	log.Printf("[Hub] station %q connected (%s)", name, id)
	return id
}

// writeLoop drains one station's queue. A write failure evicts the station;
// anything still queued is dropped.
func (h *Hub) writeLoop(id uuid.UUID, st station) {
	for event := range st.send {
		if err := st.conn.WriteJSON(event); err != nil {
			log.Printf("[Hub] write to station %q failed, dropping: %v", st.name, err)
			h.Remove(id)
			return
		}
	}
}

// Remove drops and closes a connection. Safe to call twice.
func (h *Hub) Remove(id uuid.UUID) {
	h.mu.Lock()
	st, ok := h.stations[id]
	if ok {
		delete(h.stations, id)
		close(st.send)
	}
	h.mu.Unlock()
	if ok {
		st.conn.Close()
		log.Printf("[Hub] station %q disconnected (%s)", st.name, id)
	}
}

// Count returns the number of connected stations.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stations)
}

// Publish enqueues the event for every connected station without blocking.
// A station whose queue is full cannot keep up and is closed and evicted;
// the event is not retried. Closing the connection also unsticks a write
// loop that is parked on a stalled socket.
func (h *Hub) Publish(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, st := range h.stations {
		select {
		case st.send <- event:
		default:
			log.Printf("[Hub] station %q not keeping up, dropping", st.name)
			delete(h.stations, id)
			close(st.send)
			st.conn.Close()
		}
	}
}

// NotifyNewOrder implements services.Notifier.
func (h *Hub) NotifyNewOrder(order *models.Order) {
	h.Publish(Event{Event: EventNewOrder, Data: order})
}

// NotifyOrderStatusChanged implements services.Notifier.
func (h *Hub) NotifyOrderStatusChanged(orderID uint, status models.OrderStatus, updatedAt time.Time) {
	h.Publish(Event{Event: EventOrderStatusChanged, Data: OrderStatusUpdate{
		OrderID:   orderID,
		Status:    status,
		UpdatedAt: updatedAt,
	}})
}

// NotifyMenuUpdated implements services.Notifier.
func (h *Hub) NotifyMenuUpdated() {
	h.Publish(Event{Event: EventMenuUpdated})
}

// NotifyInventoryUpdated implements services.Notifier.
func (h *Hub) NotifyInventoryUpdated(ingredientID uint) {
	h.Publish(Event{Event: EventInventoryUpdated, Data: ingredientID})
}

// UpgradeRequired gates the websocket route behind the upgrade check.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler upgrades the connection and keeps it registered until the station
// goes away. Inbound messages are ignored; the read loop only detects
// disconnects. Stations pass ?station=<name> to label themselves.
func (h *Hub) Handler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		id := h.Add(c.Query("station"), c)
		defer h.Remove(id)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	})
}
