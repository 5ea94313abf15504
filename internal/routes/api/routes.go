package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api", middleware.Token())

	// Game routes
	apiGroup.Post("/games", CreateGame)
	apiGroup.Get("/games/:id", GetGame)
	apiGroup.Delete("/games/:id", DeleteGame)
	apiGroup.Get("/games/:id/board", GetBoard)
	apiGroup.Post("/games/:id/moves", PlayMove)
	apiGroup.Post("/games/:id/ai-move", PlayAIMove)
	apiGroup.Post("/games/:id/undo", Undo)

	// Analysis routes
	apiGroup.Post("/analyze", Analyze)

	// Archive routes
	apiGroup.Get("/results", GetResults)
}
