package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/restaurantflow/internal/models"
	"github.com/example/restaurantflow/internal/services"
)

// InventoryHandler manages ingredient and stock endpoints.
type InventoryHandler struct {
	inventory *services.InventoryService
}

// NewInventoryHandler constructs InventoryHandler.
func NewInventoryHandler(inventory *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// ListIngredients returns active ingredients.
func (h *InventoryHandler) ListIngredients(c *fiber.Ctx) error {
	ingredients, err := h.inventory.ListIngredients()
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ingredients})
}

// ListLowStock returns ingredients at or below their minimum stock.
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	ingredients, err := h.inventory.ListLowStock()
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ingredients})
}

type ingredientRequest struct {
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"current_stock"`
	MinimumStock float64 `json:"minimum_stock"`
}

// CreateIngredient persists a new ingredient.
func (h *InventoryHandler) CreateIngredient(c *fiber.Ctx) error {
	var req ingredientRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if req.Unit == "" {
		return fiber.NewError(fiber.StatusBadRequest, "unit is required")
	}

	ingredient := models.Ingredient{
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		MinimumStock: req.MinimumStock,
	}
	if err := h.inventory.CreateIngredient(&ingredient); err != nil {
		return serviceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": ingredient})
}

// UpdateIngredient updates name, unit and minimum stock. Stock levels only
// change through the adjust endpoint.
func (h *InventoryHandler) UpdateIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req ingredientRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	ingredient, err := h.inventory.UpdateIngredient(id, req.Name, req.Unit, req.MinimumStock)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ingredient})
}

// DeleteIngredient soft-deletes an ingredient.
func (h *InventoryHandler) DeleteIngredient(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.inventory.DeleteIngredient(id); err != nil {
		return serviceError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type adjustStockRequest struct {
	Quantity float64 `json:"quantity"`
	Reason   string  `json:"reason"`
}

// AdjustStock applies a signed stock delta with an audit reason.
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req adjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	ingredient, err := h.inventory.AdjustStock(id, req.Quantity, req.Reason)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": ingredient})
}

// ListLogs returns the stock adjustment audit trail, newest first.
func (h *InventoryHandler) ListLogs(c *fiber.Ctx) error {
	var ingredientID *uint
	if raw := c.QueryInt("ingredient_id"); raw > 0 {
		id := uint(raw)
		ingredientID = &id
	}

	logs, err := h.inventory.ListLogs(ingredientID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": logs})
}
