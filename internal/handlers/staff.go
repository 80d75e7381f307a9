package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/restaurantflow/internal/models"
	"github.com/example/restaurantflow/internal/utils"
)

// StaffHandler manages staff records.
type StaffHandler struct {
	db *gorm.DB
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

// ListStaff returns paginated staff records.
func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	var staff []models.Staff
	var total int64

	if err := h.db.Model(&models.Staff{}).Count(&total).Error; err != nil {
		return err
	}

	if err := h.db.Limit(pg.Limit).Offset(pg.Offset).Order("name").
		Find(&staff).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       staff,
		"pagination": utils.PaginationMeta(pg, total),
	})
}

// GetStaff returns a single staff member.
func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var member models.Staff
	if err := h.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "staff member not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": member})
}

type staffRequest struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// CreateStaff persists a new staff member.
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var req staffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	member := models.Staff{
		Name:      req.Name,
		Role:      req.Role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.db.Create(&member).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": member})
}

// UpdateStaff updates an existing staff member.
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var member models.Staff
	if err := h.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "staff member not found")
		}
		return err
	}

	var req staffRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	member.Name = req.Name
	member.Role = req.Role
	member.IsActive = req.IsActive
	if err := h.db.Save(&member).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": member})
}

// DeleteStaff deactivates a staff member.
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.db.Model(&models.Staff{}).Where("id = ?", id).
		Update("is_active", false).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
