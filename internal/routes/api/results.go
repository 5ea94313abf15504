package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/repository"
)

const defaultResultsLimit = 20

// GetResults returns the latest finished games.
func GetResults(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultResultsLimit)

	games, err := repository.NewArchiveRepository(c).Latest(c.Context(), limit)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.ResultsResponse{Games: games})
}
