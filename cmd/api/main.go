package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"scout-exchange/internal/config"
	"scout-exchange/internal/gateway"
	"scout-exchange/internal/handler"
	"scout-exchange/internal/middleware"
	"scout-exchange/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// The gateway is built here and injected everywhere; nothing else in
	// the process owns a transport client.
	var gw gateway.Gateway
	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v (notifications stay within this process)", err)
		gw = gateway.NewMemoryGateway()
	} else {
		gw = gateway.NewRedisGatewayWithClient(redisClient, cfg.PublishTimeout)
	}

	services := service.NewServices(gw)
	defer services.Close()

	handlers := handler.NewHandlers(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRoutes(app *fiber.App, h *handler.Handlers) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	v1.Get("/meta", h.Meta.Get)

	sessions := v1.Group("/sessions")
	sessions.Post("/", h.Session.Create)
	sessions.Get("/:id", h.Session.Get)
	sessions.Patch("/:id/role", h.Session.SetRole)
	sessions.Put("/:id/fields/:name", h.Session.UpdateField)
	sessions.Post("/:id/deliverables", h.Session.ToggleDeliverable)
	sessions.Post("/:id/load", h.Session.Load)
	sessions.Post("/:id/submit", h.Session.Submit)
	sessions.Post("/:id/reset", h.Session.Reset)
	sessions.Get("/:id/viewer", h.Session.Viewer)
	sessions.Delete("/:id", h.Session.Destroy)

	sessions.Get("/:id/notification", h.Notification.Get)
	sessions.Post("/:id/notification/view", h.Notification.ViewDetails)
	sessions.Post("/:id/notification/dismiss", h.Notification.Dismiss)
	sessions.Post("/:id/notification/open", h.Notification.Open)
}
