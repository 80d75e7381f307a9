package models

import "time"

type Ingredient struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	CurrentStock float64 `json:"current_stock"`
	MinimumStock float64 `json:"minimum_stock"`
	IsActive     bool    `json:"is_active"`
}

// IsLowStock reports whether the ingredient is at or below its reorder
// threshold.
func (i Ingredient) IsLowStock() bool {
	return i.CurrentStock <= i.MinimumStock
}

// InventoryLog is an append-only audit row. Every stock change produces
// exactly one entry; StockAfter always equals the previous stock plus
// QuantityChanged, and the ingredient's CurrentStock always equals the
// StockAfter of its newest entry.
type InventoryLog struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	IngredientID    uint        `gorm:"index" json:"ingredient_id"`
	Ingredient      *Ingredient `json:"ingredient,omitempty"`
	QuantityChanged float64     `json:"quantity_changed"`
	StockAfter      float64     `json:"stock_after"`
	Reason          string      `json:"reason"`
	CreatedAt       time.Time   `json:"created_at"`
}
