package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/search"
)

// Analyze searches a position for the player to move. Completed searches are cached.
func Analyze(c *fiber.Ctx) error {
	var payload models.AnalyzePayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	board := payload.Position()
	cfg := serverConfig(c)

	depth := payload.Depth
	if depth == 0 {
		depth = cfg.AI.Depth
	}

	timeBudget := time.Duration(payload.TimeBudgetMs) * time.Millisecond
	if timeBudget == 0 {
		timeBudget = cfg.AI.TimeBudget
	}

	if !othello.HasMoves(board, board.Turn()) {
		return sendError(c, search.ErrNoLegalMoves)
	}

	cache := repository.NewAnalysisRepository(c)

	cached, ok, err := cache.Get(c.Context(), board, depth, cfg.AI.Weights)
	if err != nil {
		return sendError(c, err)
	}

	if ok {
		return c.Status(fiber.StatusOK).JSON(models.NewSearchResponse(cached, true))
	}

	engine, err := search.NewEngine(cfg.AI.SearchOptions())
	if err != nil {
		return sendError(c, err)
	}

	result, err := engine.BestMove(c.Context(), board, board.Turn(), depth, timeBudget)
	if err != nil {
		return sendError(c, err)
	}

	if err = cache.Put(c.Context(), board, depth, cfg.AI.Weights, result); err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewSearchResponse(result, false))
}
