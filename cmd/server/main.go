package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/restaurantflow/internal/config"
	"github.com/example/restaurantflow/internal/database"
	"github.com/example/restaurantflow/internal/routes"
	"github.com/example/restaurantflow/internal/ws"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DBDriver, cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName: "RestaurantFlow Server",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	hub := ws.NewHub()
	routes.Register(app, db, hub)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
