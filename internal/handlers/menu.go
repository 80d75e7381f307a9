package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/restaurantflow/internal/models"
	"github.com/example/restaurantflow/internal/services"
)

// MenuHandler manages menu items, categories and recipes.
type MenuHandler struct {
	menu *services.MenuService
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(menu *services.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// ListMenuItems returns all menu items, optionally filtered by category.
func (h *MenuHandler) ListMenuItems(c *fiber.Ctx) error {
	if raw := c.QueryInt("category_id"); raw > 0 {
		items, err := h.menu.ListMenuItemsByCategory(uint(raw))
		if err != nil {
			return serviceError(err)
		}
		return c.JSON(fiber.Map{"success": true, "data": items})
	}

	items, err := h.menu.ListMenuItems()
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// GetMenuItem returns a single menu item.
func (h *MenuHandler) GetMenuItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.menu.GetMenuItem(id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

type menuItemRequest struct {
	Name                        string  `json:"name"`
	Description                 string  `json:"description"`
	Price                       float64 `json:"price"`
	IsAvailable                 bool    `json:"is_available"`
	EstimatedCookingTimeMinutes int     `json:"estimated_cooking_time_minutes"`
	CategoryID                  uint    `json:"category_id"`
}

// CreateMenuItem persists a new menu item.
func (h *MenuHandler) CreateMenuItem(c *fiber.Ctx) error {
	var req menuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if req.Price <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "price must be positive")
	}

	item := models.MenuItem{
		Name:                        req.Name,
		Description:                 req.Description,
		Price:                       req.Price,
		IsAvailable:                 req.IsAvailable,
		EstimatedCookingTimeMinutes: req.EstimatedCookingTimeMinutes,
		CategoryID:                  req.CategoryID,
	}
	if err := h.menu.CreateMenuItem(&item); err != nil {
		return serviceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// UpdateMenuItem updates an existing menu item.
func (h *MenuHandler) UpdateMenuItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req menuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if req.Price <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "price must be positive")
	}

	item, err := h.menu.UpdateMenuItem(id, models.MenuItem{
		Name:                        req.Name,
		Description:                 req.Description,
		Price:                       req.Price,
		IsAvailable:                 req.IsAvailable,
		EstimatedCookingTimeMinutes: req.EstimatedCookingTimeMinutes,
		CategoryID:                  req.CategoryID,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

// DeleteMenuItem removes a menu item.
func (h *MenuHandler) DeleteMenuItem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.menu.DeleteMenuItem(id); err != nil {
		return serviceError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetRecipe returns the recipe lines of a menu item.
func (h *MenuHandler) GetRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	lines, err := h.menu.GetRecipe(id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": lines})
}

type recipeLineRequest struct {
	IngredientID uint    `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// SetRecipe replaces the recipe of a menu item.
func (h *MenuHandler) SetRecipe(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req []recipeLineRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	lines := make([]models.MenuItemIngredient, 0, len(req))
	for _, line := range req {
		if line.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity must be positive")
		}
		lines = append(lines, models.MenuItemIngredient{
			IngredientID: line.IngredientID,
			Quantity:     line.Quantity,
		})
	}

	if err := h.menu.SetRecipe(id, lines); err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// ListCategories returns categories in display order.
func (h *MenuHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.menu.ListCategories()
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": categories})
}

// CreateCategory persists a new category.
func (h *MenuHandler) CreateCategory(c *fiber.Ctx) error {
	var payload models.Category
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	if err := h.menu.CreateCategory(&payload); err != nil {
		return serviceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateCategory updates an existing category.
func (h *MenuHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var payload models.Category
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.menu.UpdateCategory(id, payload)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": category})
}

// DeleteCategory removes a category.
func (h *MenuHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.menu.DeleteCategory(id); err != nil {
		return serviceError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
