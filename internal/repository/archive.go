package repository

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/services"
)

const maxResults = 100

// ArchiveRepository stores finished games in Postgres.
type ArchiveRepository struct {
	services *services.Services
}

func NewArchiveRepository(c *fiber.Ctx) *ArchiveRepository {
	return NewArchiveRepositoryFromServices(c.Locals("services").(*services.Services)) //nolint: errcheck
}

func NewArchiveRepositoryFromServices(services *services.Services) *ArchiveRepository {
	return &ArchiveRepository{
		services: services,
	}
}

// Archive stores a finished game. Archiving the same game twice has no effect.
func (repo *ArchiveRepository) Archive(ctx context.Context, id string, g *game.Game) error {
	if !g.IsOver() {
		return fmt.Errorf("cannot archive game %s: game is not over", id)
	}

	summary := g.Summary()

	query := `
		INSERT INTO games (id, difficulty, ai_color, dark, light, winner, moves, final_board)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING;
	`

	_, err := repo.services.Postgres.ExecContext(ctx, query,
		id,
		g.Difficulty().Name,
		g.AIColor().String(),
		summary.Dark,
		summary.Light,
		models.WinnerName(summary),
		models.MoveList(models.Fields(g.Moves())),
		othello.EncodeGrid(g.Board()),
	)
	if err != nil {
		return fmt.Errorf("error archiving game: %w", err)
	}

	return nil
}

// Latest returns the most recently finished games, newest first.
func (repo *ArchiveRepository) Latest(ctx context.Context, limit int) ([]models.FinishedGame, error) {
	if limit <= 0 || limit > maxResults {
		limit = maxResults
	}

	query := `
		SELECT id, difficulty, ai_color, dark, light, winner, moves, final_board, finished_at
		FROM games
		ORDER BY finished_at DESC
		LIMIT $1;
	`

	games := make([]models.FinishedGame, 0)
	if err := repo.services.Postgres.SelectContext(ctx, &games, query, limit); err != nil {
		return nil, fmt.Errorf("error getting finished games: %w", err)
	}

	return games, nil
}
