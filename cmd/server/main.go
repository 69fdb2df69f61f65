package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/JunaidParamberi/MacroMateBack/internal/config"
	"github.com/JunaidParamberi/MacroMateBack/internal/database"
	"github.com/JunaidParamberi/MacroMateBack/internal/routes"
	"github.com/JunaidParamberi/MacroMateBack/internal/storage"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Pick the state store. Without DB_URL the server runs on in-memory
	// state, which is enough for local development.
	var blobs storage.BlobStore
	if cfg.DBUrl != "" {
		if err := database.ConnectDB(cfg.DBUrl); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB()
		blobs = storage.NewPostgresBlobStore(database.DB)
	} else {
		log.Println("DB_URL not set, using in-memory state")
		blobs = storage.NewMemoryBlobStore()
	}

	// 3. Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(cors.New())
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	routes.RegisterRoutes(context.Background(), app, cfg, blobs)

	// 4. Start Server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
