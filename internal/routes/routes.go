package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/restaurantflow/internal/handlers"
	"github.com/example/restaurantflow/internal/services"
	"github.com/example/restaurantflow/internal/ws"
)

// Register wires up all HTTP routes and the websocket endpoint.
func Register(app *fiber.App, db *gorm.DB, hub *ws.Hub) {
	inventoryService := services.NewInventoryService(db, hub)
	menuService := services.NewMenuService(db, hub)
	orderService := services.NewOrderService(db, inventoryService, hub)

	orderHandler := handlers.NewOrderHandler(orderService)
	menuHandler := handlers.NewMenuHandler(menuService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	staffHandler := handlers.NewStaffHandler(db)

	api := app.Group("/api")

	// Orders
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/", orderHandler.ListOrders)
	orders.Get("/active", orderHandler.ListActiveOrders)
	orders.Get("/completed", orderHandler.ListRecentCompleted)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Put("/:id/status", orderHandler.UpdateOrderStatus)
	orders.Put("/items/:id/status", orderHandler.UpdateOrderItemStatus)

	// Menu
	menu := api.Group("/menu")
	menu.Get("/items", menuHandler.ListMenuItems)
	menu.Post("/items", menuHandler.CreateMenuItem)
	menu.Get("/items/:id", menuHandler.GetMenuItem)
	menu.Put("/items/:id", menuHandler.UpdateMenuItem)
	menu.Delete("/items/:id", menuHandler.DeleteMenuItem)
	menu.Get("/items/:id/ingredients", menuHandler.GetRecipe)
	menu.Put("/items/:id/ingredients", menuHandler.SetRecipe)
	menu.Get("/items/:id/availability", orderHandler.GetMenuItemAvailability)
	menu.Get("/categories", menuHandler.ListCategories)
	menu.Post("/categories", menuHandler.CreateCategory)
	menu.Put("/categories/:id", menuHandler.UpdateCategory)
	menu.Delete("/categories/:id", menuHandler.DeleteCategory)

	// Inventory
	inventory := api.Group("/inventory")
	inventory.Get("/", inventoryHandler.ListIngredients)
	inventory.Get("/low-stock", inventoryHandler.ListLowStock)
	inventory.Get("/logs", inventoryHandler.ListLogs)
	inventory.Post("/", inventoryHandler.CreateIngredient)
	inventory.Put("/:id", inventoryHandler.UpdateIngredient)
	inventory.Delete("/:id", inventoryHandler.DeleteIngredient)
	inventory.Post("/:id/adjust", inventoryHandler.AdjustStock)

	// Staff
	staff := api.Group("/staff")
	staff.Get("/", staffHandler.ListStaff)
	staff.Post("/", staffHandler.CreateStaff)
	staff.Get("/:id", staffHandler.GetStaff)
	staff.Put("/:id", staffHandler.UpdateStaff)
	staff.Delete("/:id", staffHandler.DeleteStaff)

	// Station push channel
	app.Use("/ws", ws.UpgradeRequired)
	app.Get("/ws", hub.Handler())
}
