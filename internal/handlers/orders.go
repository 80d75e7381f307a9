package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/restaurantflow/internal/models"
	"github.com/example/restaurantflow/internal/services"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	orders *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrder places a new order from a customer station.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req services.CreateOrderInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	order, err := h.orders.CreateOrder(req)
	if err != nil {
		return serviceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": order})
}

// ListOrders returns all orders, optionally filtered by status or by a
// from/to date range (YYYY-MM-DD, inclusive).
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	if c.Query("from") != "" || c.Query("to") != "" {
		from, err := time.Parse("2006-01-02", c.Query("from"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid from date")
		}
		to, err := time.Parse("2006-01-02", c.Query("to"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid to date")
		}

		orders, err := h.orders.ListOrdersByDateRange(from, to.AddDate(0, 0, 1))
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{"success": true, "data": orders})
	}

	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || !models.OrderStatus(parsed).Valid() {
			return fiber.NewError(fiber.StatusBadRequest, "invalid status")
		}
		s := models.OrderStatus(parsed)
		status = &s
	}

	orders, err := h.orders.ListOrders(status)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// ListActiveOrders returns orders still moving through the kitchen.
func (h *OrderHandler) ListActiveOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListActiveOrders()
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// ListRecentCompleted returns the last completed orders for the counter.
func (h *OrderHandler) ListRecentCompleted(c *fiber.Ctx) error {
	orders, err := h.orders.ListRecentCompleted()
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// GetOrder returns a single order with its items.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.GetOrder(id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}

type updateStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateOrderStatus sets an order's status from a staff station.
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !req.Status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	order, err := h.orders.UpdateOrderStatus(id, req.Status)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": order})
}

// UpdateOrderItemStatus sets a line item's status from the kitchen.
func (h *OrderHandler) UpdateOrderItemStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !req.Status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	item, err := h.orders.UpdateOrderItemStatus(id, req.Status)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

// GetMenuItemAvailability reports whether one more portion can be made.
func (h *OrderHandler) GetMenuItemAvailability(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	available, err := h.orders.IsMenuItemAvailable(id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"available": available}})
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
