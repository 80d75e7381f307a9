package models

import "time"

type Category struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

type MenuItem struct {
	ID                          uint      `gorm:"primaryKey" json:"id"`
	Name                        string    `json:"name"`
	Description                 string    `json:"description"`
	Price                       float64   `json:"price"`
	IsAvailable                 bool      `json:"is_available"`
	EstimatedCookingTimeMinutes int       `json:"estimated_cooking_time_minutes"`
	CategoryID                  uint      `gorm:"index" json:"category_id"`
	Category                    *Category `json:"category,omitempty"`
	CreatedAt                   time.Time `json:"created_at"`
	UpdatedAt                   time.Time `json:"updated_at"`

	Ingredients []MenuItemIngredient `gorm:"foreignKey:MenuItemID" json:"ingredients,omitempty"`
}

// MenuItemIngredient is one recipe line: how much of an ingredient a single
// portion of a menu item consumes. The composite key keeps at most one line
// per (menu item, ingredient) pair.
type MenuItemIngredient struct {
	MenuItemID   uint        `gorm:"primaryKey;autoIncrement:false" json:"menu_item_id"`
	IngredientID uint        `gorm:"primaryKey;autoIncrement:false" json:"ingredient_id"`
	Quantity     float64     `json:"quantity"`
	Ingredient   *Ingredient `json:"ingredient,omitempty"`
}
