package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/restaurantflow/internal/database"
	"github.com/example/restaurantflow/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// The in-memory database lives per connection.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64, available bool) models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:        name,
		Price:       price,
		IsAvailable: available,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed menu item %s: %v", name, err)
	}
	return item
}

func seedIngredient(t *testing.T, db *gorm.DB, name string, stock, minimum float64) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{
		Name:         name,
		Unit:         "pcs",
		CurrentStock: stock,
		MinimumStock: minimum,
		IsActive:     true,
	}
	if err := db.Create(&ingredient).Error; err != nil {
		t.Fatalf("seed ingredient %s: %v", name, err)
	}
	return ingredient
}

func seedRecipeLine(t *testing.T, db *gorm.DB, menuItemID, ingredientID uint, quantity float64) {
	t.Helper()
	line := models.MenuItemIngredient{
		MenuItemID:   menuItemID,
		IngredientID: ingredientID,
		Quantity:     quantity,
	}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("seed recipe line: %v", err)
	}
}

func intPtr(v int) *int { return &v }

type statusEvent struct {
	OrderID   uint
	Status    models.OrderStatus
	UpdatedAt time.Time
}

// recordingNotifier captures events for assertions.
type recordingNotifier struct {
	newOrders    []*models.Order
	statuses     []statusEvent
	menuUpdates  int
	inventoryIDs []uint
}

func (n *recordingNotifier) NotifyNewOrder(order *models.Order) {
	n.newOrders = append(n.newOrders, order)
}

func (n *recordingNotifier) NotifyOrderStatusChanged(orderID uint, status models.OrderStatus, updatedAt time.Time) {
	n.statuses = append(n.statuses, statusEvent{OrderID: orderID, Status: status, UpdatedAt: updatedAt})
}

func (n *recordingNotifier) NotifyMenuUpdated() {
	n.menuUpdates++
}

func (n *recordingNotifier) NotifyInventoryUpdated(ingredientID uint) {
	n.inventoryIDs = append(n.inventoryIDs, ingredientID)
}
