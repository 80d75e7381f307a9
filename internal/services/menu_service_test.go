package services

import (
	"errors"
	"testing"

	"github.com/example/restaurantflow/internal/models"
)

func TestSetRecipeReplacesAllLines(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, nil)

	burger := seedMenuItem(t, db, "Cheeseburger", 80.00, true)
	bun := seedIngredient(t, db, "Bun", 10, 2)
	cheese := seedIngredient(t, db, "Cheese", 10, 2)
	patty := seedIngredient(t, db, "Patty", 10, 2)

	if err := svc.SetRecipe(burger.ID, []models.MenuItemIngredient{
		{IngredientID: bun.ID, Quantity: 1},
		{IngredientID: cheese.ID, Quantity: 2},
	}); err != nil {
		t.Fatalf("SetRecipe error: %v", err)
	}

	if err := svc.SetRecipe(burger.ID, []models.MenuItemIngredient{
		{IngredientID: bun.ID, Quantity: 1},
		{IngredientID: patty.ID, Quantity: 1},
	}); err != nil {
		t.Fatalf("SetRecipe error: %v", err)
	}

	recipe, err := svc.GetRecipe(burger.ID)
	if err != nil {
		t.Fatalf("GetRecipe error: %v", err)
	}
	if len(recipe) != 2 {
		t.Fatalf("recipe lines = %d, want 2", len(recipe))
	}
	for _, line := range recipe {
		if line.IngredientID == cheese.ID {
			t.Fatal("replaced line still present")
		}
	}
}

func TestSetRecipeCollapsesDuplicateIngredients(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, nil)

	burger := seedMenuItem(t, db, "Cheeseburger", 80.00, true)
	cheese := seedIngredient(t, db, "Cheese", 10, 2)

	if err := svc.SetRecipe(burger.ID, []models.MenuItemIngredient{
		{IngredientID: cheese.ID, Quantity: 1},
		{IngredientID: cheese.ID, Quantity: 3},
	}); err != nil {
		t.Fatalf("SetRecipe error: %v", err)
	}

	recipe, err := svc.GetRecipe(burger.ID)
	if err != nil {
		t.Fatalf("GetRecipe error: %v", err)
	}
	if len(recipe) != 1 {
		t.Fatalf("recipe lines = %d, want 1 per ingredient", len(recipe))
	}
	if recipe[0].Quantity != 3 {
		t.Fatalf("quantity = %v, want last occurrence 3", recipe[0].Quantity)
	}
}

func TestSetRecipeUnknownMenuItem(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, nil)

	err := svc.SetRecipe(404, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMenuMutationsEmitMenuUpdated(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewMenuService(db, notifier)

	category := models.Category{Name: "Mains", DisplayOrder: 1, IsActive: true}
	if err := svc.CreateCategory(&category); err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	item := models.MenuItem{Name: "Cheeseburger", Price: 80.00, IsAvailable: true, CategoryID: category.ID}
	if err := svc.CreateMenuItem(&item); err != nil {
		t.Fatalf("CreateMenuItem error: %v", err)
	}

	if _, err := svc.UpdateMenuItem(item.ID, models.MenuItem{
		Name: "Cheeseburger", Price: 90.00, IsAvailable: true, CategoryID: category.ID,
	}); err != nil {
		t.Fatalf("UpdateMenuItem error: %v", err)
	}

	if err := svc.DeleteMenuItem(item.ID); err != nil {
		t.Fatalf("DeleteMenuItem error: %v", err)
	}

	if notifier.menuUpdates != 4 {
		t.Fatalf("MenuUpdated events = %d, want 4", notifier.menuUpdates)
	}
}

func TestListCategoriesByDisplayOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, nil)

	for _, c := range []models.Category{
		{Name: "Desserts", DisplayOrder: 3, IsActive: true},
		{Name: "Mains", DisplayOrder: 1, IsActive: true},
		{Name: "Drinks", DisplayOrder: 2, IsActive: true},
	} {
		category := c
		if err := svc.CreateCategory(&category); err != nil {
			t.Fatalf("CreateCategory error: %v", err)
		}
	}

	categories, err := svc.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories error: %v", err)
	}
	want := []string{"Mains", "Drinks", "Desserts"}
	for i, name := range want {
		if categories[i].Name != name {
			t.Fatalf("position %d = %s, want %s", i, categories[i].Name, name)
		}
	}
}

func TestDeleteMenuItemRemovesRecipe(t *testing.T) {
	db := newTestDB(t)
	svc := NewMenuService(db, nil)

	burger := seedMenuItem(t, db, "Cheeseburger", 80.00, true)
	bun := seedIngredient(t, db, "Bun", 10, 2)
	seedRecipeLine(t, db, burger.ID, bun.ID, 1)

	if err := svc.DeleteMenuItem(burger.ID); err != nil {
		t.Fatalf("DeleteMenuItem error: %v", err)
	}

	var count int64
	db.Model(&models.MenuItemIngredient{}).Where("menu_item_id = ?", burger.ID).Count(&count)
	if count != 0 {
		t.Fatalf("recipe lines = %d, want 0", count)
	}
}
