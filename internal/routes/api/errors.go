package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/repository"
)

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, othello.ErrInvalidMove),
		errors.Is(err, othello.ErrInvalidBoardState),
		errors.Is(err, game.ErrUnknownDifficulty):
		return fiber.StatusBadRequest
	case errors.Is(err, othello.ErrNoLegalMoves),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNotAITurn),
		errors.Is(err, game.ErrNotHumanTurn),
		errors.Is(err, game.ErrNothingToUndo):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func sendError(c *fiber.Ctx, err error) error {
	return c.Status(errorStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
	})
}
