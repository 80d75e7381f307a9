package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/example/restaurantflow/internal/models"
)

// MenuService manages menu items, categories and recipes. Every mutation
// emits a MenuUpdated event so stations reload their menu views.
type MenuService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewMenuService constructs MenuService. notifier may be nil.
func NewMenuService(db *gorm.DB, notifier Notifier) *MenuService {
	return &MenuService{db: db, notifier: notifier}
}

// ListCategories returns categories in display order.
func (s *MenuService) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("display_order").Find(&categories).Error
	return categories, err
}

// CreateCategory persists a new category.
func (s *MenuService) CreateCategory(category *models.Category) error {
	if err := s.db.Create(category).Error; err != nil {
		return err
	}
	s.menuChanged()
	return nil
}

// UpdateCategory updates an existing category.
func (s *MenuService) UpdateCategory(id uint, update models.Category) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	category.Name = update.Name
	category.Description = update.Description
	category.DisplayOrder = update.DisplayOrder
	category.IsActive = update.IsActive
	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	s.menuChanged()
	return &category, nil
}

// DeleteCategory removes a category.
func (s *MenuService) DeleteCategory(id uint) error {
	if err := s.db.Delete(&models.Category{}, id).Error; err != nil {
		return err
	}
	s.menuChanged()
	return nil
}

// ListMenuItems returns all menu items with their categories.
func (s *MenuService) ListMenuItems() ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.Preload("Category").Find(&items).Error
	return items, err
}

// ListMenuItemsByCategory returns menu items belonging to one category.
func (s *MenuService) ListMenuItemsByCategory(categoryID uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := s.db.Preload("Category").Where("category_id = ?", categoryID).Find(&items).Error
	return items, err
}

// GetMenuItem returns one menu item with its category.
func (s *MenuService) GetMenuItem(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.Preload("Category").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("menu item %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}

// CreateMenuItem persists a new menu item.
func (s *MenuService) CreateMenuItem(item *models.MenuItem) error {
	item.CreatedAt = time.Now().UTC()
	if err := s.db.Create(item).Error; err != nil {
		return err
	}
	s.menuChanged()
	return nil
}

// UpdateMenuItem updates an existing menu item. Historical order items keep
// prices captured at order time, so a price change here never alters past
// order totals.
func (s *MenuService) UpdateMenuItem(id uint, update models.MenuItem) (*models.MenuItem, error) {
	item, err := s.GetMenuItem(id)
	if err != nil {
		return nil, err
	}

	item.Name = update.Name
	item.Description = update.Description
	item.Price = update.Price
	item.IsAvailable = update.IsAvailable
	item.EstimatedCookingTimeMinutes = update.EstimatedCookingTimeMinutes
	item.CategoryID = update.CategoryID
	item.UpdatedAt = time.Now().UTC()
	if err := s.db.Save(item).Error; err != nil {
		return nil, err
	}
	s.menuChanged()
	return item, nil
}

// DeleteMenuItem removes a menu item and its recipe lines.
func (s *MenuService) DeleteMenuItem(id uint) error {
	if _, err := s.GetMenuItem(id); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", id).Delete(&models.MenuItemIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MenuItem{}, id).Error
	})
	if err != nil {
		return err
	}
	s.menuChanged()
	return nil
}

// GetRecipe returns the recipe lines of a menu item with their ingredients.
func (s *MenuService) GetRecipe(menuItemID uint) ([]models.MenuItemIngredient, error) {
	var lines []models.MenuItemIngredient
	err := s.db.Preload("Ingredient").Where("menu_item_id = ?", menuItemID).Find(&lines).Error
	return lines, err
}

// SetRecipe replaces all recipe lines of a menu item in one transaction.
// Duplicate ingredient ids in the input collapse to the last occurrence so
// the composite key keeps one quantity per (menu item, ingredient) pair.
func (s *MenuService) SetRecipe(menuItemID uint, lines []models.MenuItemIngredient) error {
	if _, err := s.GetMenuItem(menuItemID); err != nil {
		return err
	}

	byIngredient := make(map[uint]models.MenuItemIngredient, len(lines))
	order := make([]uint, 0, len(lines))
	for _, line := range lines {
		if _, seen := byIngredient[line.IngredientID]; !seen {
			order = append(order, line.IngredientID)
		}
		line.MenuItemID = menuItemID
		byIngredient[line.IngredientID] = line
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", menuItemID).Delete(&models.MenuItemIngredient{}).Error; err != nil {
			return err
		}
		for _, ingredientID := range order {
			line := byIngredient[ingredientID]
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.menuChanged()
	return nil
}

func (s *MenuService) menuChanged() {
	if s.notifier != nil {
		s.notifier.NotifyMenuUpdated()
	}
}
