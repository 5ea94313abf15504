package ws

import (
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/middleware"
	"github.com/lk16/reversi/internal/ws"
)

func handleWs(c *websocket.Conn) {
	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

	h := ws.NewHandler(c, cfg.AI.SearchOptions())
	err := h.Handle()
	if err != nil {
		slog.Error("ws handle error", "error", err)
	}
}

// upgradeRequired rejects plain HTTP requests to the websocket endpoint.
func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", middleware.Token(), upgradeRequired, websocket.New(handleWs))
}
