package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/example/restaurantflow/internal/models"
)

// InventoryService is the single owner of ingredient stock. Every stock
// change, whether a restock, a waste write-off or an order deduction, goes
// through AdjustStock so the audit trail stays complete.
type InventoryService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewInventoryService constructs InventoryService. notifier may be nil.
func NewInventoryService(db *gorm.DB, notifier Notifier) *InventoryService {
	return &InventoryService{db: db, notifier: notifier}
}

// AdjustStock adds delta to the ingredient's stock and appends one inventory
// log row, atomically. Stock has no floor and may go negative. Returns the
// updated ingredient.
func (s *InventoryService) AdjustStock(ingredientID uint, delta float64, reason string) (*models.Ingredient, error) {
	if reason == "" {
		return nil, invalidf("reason", "reason is required")
	}

	var ingredient models.Ingredient
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ingredient, ingredientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("ingredient %d: %w", ingredientID, ErrNotFound)
			}
			return err
		}

		ingredient.CurrentStock += delta
		if err := tx.Save(&ingredient).Error; err != nil {
			return err
		}

		entry := models.InventoryLog{
			IngredientID:    ingredientID,
			QuantityChanged: delta,
			StockAfter:      ingredient.CurrentStock,
			Reason:          reason,
			CreatedAt:       time.Now().UTC(),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyInventoryUpdated(ingredientID)
	}
	return &ingredient, nil
}

// ListIngredients returns active ingredients ordered by name.
func (s *InventoryService) ListIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.Where("is_active = ?", true).Order("name").Find(&ingredients).Error
	return ingredients, err
}

// GetIngredient returns one ingredient by id.
func (s *InventoryService) GetIngredient(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ingredient %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &ingredient, nil
}

// ListLowStock returns active ingredients at or below their minimum stock,
// most depleted first.
func (s *InventoryService) ListLowStock() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.
		Where("is_active = ? AND current_stock <= minimum_stock", true).
		Order("current_stock").
		Find(&ingredients).Error
	return ingredients, err
}

const inventoryLogLimit = 100

// ListLogs returns the newest inventory log rows, optionally filtered by
// ingredient, capped at the last 100 entries.
func (s *InventoryService) ListLogs(ingredientID *uint) ([]models.InventoryLog, error) {
	query := s.db.Preload("Ingredient").Model(&models.InventoryLog{})
	if ingredientID != nil {
		query = query.Where("ingredient_id = ?", *ingredientID)
	}

	var logs []models.InventoryLog
	err := query.Order("created_at desc").Limit(inventoryLogLimit).Find(&logs).Error
	return logs, err
}

// CreateIngredient persists a new ingredient.
func (s *InventoryService) CreateIngredient(ingredient *models.Ingredient) error {
	ingredient.IsActive = true
	return s.db.Create(ingredient).Error
}

// UpdateIngredient updates name, unit and thresholds. CurrentStock is not
// touched here; stock changes go through AdjustStock only.
func (s *InventoryService) UpdateIngredient(id uint, name, unit string, minimumStock float64) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredient(id)
	if err != nil {
		return nil, err
	}

	ingredient.Name = name
	ingredient.Unit = unit
	ingredient.MinimumStock = minimumStock
	if err := s.db.Save(ingredient).Error; err != nil {
		return nil, err
	}
	return ingredient, nil
}

// DeleteIngredient soft-deletes by clearing the active flag; logs and
// historical recipes keep referencing the row.
func (s *InventoryService) DeleteIngredient(id uint) error {
	if _, err := s.GetIngredient(id); err != nil {
		return err
	}
	return s.db.Model(&models.Ingredient{}).Where("id = ?", id).
		Update("is_active", false).Error
}
