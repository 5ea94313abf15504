package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/repository"
	"github.com/lk16/reversi/internal/search"
)

// lookupDifficulty resolves difficulty names, with the configured engine settings as the custom difficulty.
func lookupDifficulty(cfg *config.ServerConfig) func(string) (game.Difficulty, error) {
	return game.Lookup(game.Difficulty{
		Depth:      cfg.AI.Depth,
		TimeBudget: cfg.AI.TimeBudget,
		Weights:    cfg.AI.Weights,
	})
}

func serverConfig(c *fiber.Ctx) *config.ServerConfig {
	return c.Locals("config").(*config.ServerConfig) //nolint: errcheck
}

func loadGame(c *fiber.Ctx) (*game.Game, error) {
	cfg := serverConfig(c)
	repo := repository.NewGameRepository(c)
	return repo.Load(c.Context(), c.Params("id"), lookupDifficulty(cfg), cfg.AI.SearchOptions())
}

// saveGame stores the game and archives it once it is over. lastSearch may be nil.
func saveGame(c *fiber.Ctx, g *game.Game, lastSearch *search.Result) error {
	id := c.Params("id")

	if err := repository.NewGameRepository(c).Save(c.Context(), id, g); err != nil {
		return sendError(c, err)
	}

	if g.IsOver() {
		if err := repository.NewArchiveRepository(c).Archive(c.Context(), id, g); err != nil {
			slog.Error("Failed to archive game", "id", id, "error", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(id, g, lastSearch))
}

// CreateGame starts a game against the engine.
func CreateGame(c *fiber.Ctx) error {
	var payload models.CreateGamePayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	cfg := serverConfig(c)

	difficulty, err := lookupDifficulty(cfg)(payload.Difficulty)
	if err != nil {
		return sendError(c, err)
	}

	g, err := game.New(payload.Start(), payload.AIPlayer(), difficulty, cfg.AI.SearchOptions())
	if err != nil {
		return sendError(c, err)
	}

	id, err := repository.NewGameRepository(c).Create(c.Context(), g)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.NewGameResponse(id, g, nil))
}

// GetGame returns the state of a game.
func GetGame(c *fiber.Ctx) error {
	g, err := loadGame(c)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.NewGameResponse(c.Params("id"), g, nil))
}

// GetBoard returns the current board of a game in grid format.
func GetBoard(c *fiber.Ctx) error {
	board, err := repository.NewGameRepository(c).LoadBoard(c.Context(), c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).SendString(othello.EncodeGrid(board))
}

// DeleteGame abandons a game.
func DeleteGame(c *fiber.Ctx) error {
	repo := repository.NewGameRepository(c)

	if _, err := repo.LoadBoard(c.Context(), c.Params("id")); err != nil {
		return sendError(c, err)
	}

	if err := repo.Delete(c.Context(), c.Params("id")); err != nil {
		return sendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// PlayMove plays a human move.
func PlayMove(c *fiber.Ctx) error {
	var payload models.MovePayload
	if err := c.BodyParser(&payload); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	g, err := loadGame(c)
	if err != nil {
		return sendError(c, err)
	}

	if _, err = g.PlayField(payload.Field); err != nil {
		return sendError(c, err)
	}

	return saveGame(c, g, nil)
}

// PlayAIMove lets the engine play a move.
func PlayAIMove(c *fiber.Ctx) error {
	g, err := loadGame(c)
	if err != nil {
		return sendError(c, err)
	}

	result, err := g.PlayAI(c.Context())
	if err != nil {
		return sendError(c, err)
	}

	slog.Debug("Engine played", "id", c.Params("id"), "move", result.Move.String(), "depth", result.Depth,
		"score", result.Score, "nodes", result.Nodes, "status", result.Status)

	return saveGame(c, g, &result)
}

// Undo takes back the last human move and the engine replies to it.
func Undo(c *fiber.Ctx) error {
	g, err := loadGame(c)
	if err != nil {
		return sendError(c, err)
	}

	if err = g.Undo(); err != nil {
		return sendError(c, err)
	}

	return saveGame(c, g, nil)
}
