package internal

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/routes"
	"github.com/lk16/reversi/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 40 * time.Second // Searches may take up to config.MaxAnalysisTimeBudget
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024
	servicesTimeout     = 10 * time.Second
)

// SetupApp loads the configuration, connects to the external services and builds the app.
func SetupApp() (*fiber.App, *config.ServerConfig) {
	cfg := config.LoadServerConfig()

	ctx, cancel := context.WithTimeout(context.Background(), servicesTimeout)
	defer cancel()

	services, err := services.InitServices(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	return NewApp(cfg, services), cfg
}

// NewApp builds the app on top of existing connections.
func NewApp(cfg *config.ServerConfig, services *services.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup connections to external services and config in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		return c.Next()
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logging())

	routes.SetupRoutes(app)

	app.Hooks().OnShutdown(services.Shutdown)

	return app
}
