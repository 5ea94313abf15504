package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/services"
	"github.com/redis/go-redis/v9"
)

const gameKeyPrefix = "game:"

var ErrGameNotFound = errors.New("game not found")

// GameRepository stores games in progress in Redis.
// Each game is a hash with the current board in grid format and a snapshot to restore the game from.
type GameRepository struct {
	services *services.Services
	ttl      time.Duration
}

func NewGameRepository(c *fiber.Ctx) *GameRepository {
	return NewGameRepositoryFromServices(c.Locals("services").(*services.Services)) //nolint: errcheck
}

func NewGameRepositoryFromServices(services *services.Services) *GameRepository {
	return &GameRepository{
		services: services,
		ttl:      config.GameTTL,
	}
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

// Create stores a new game and returns its ID.
func (repo *GameRepository) Create(ctx context.Context, g *game.Game) (string, error) {
	id := uuid.New().String()

	if err := repo.Save(ctx, id, g); err != nil {
		return "", err
	}

	return id, nil
}

// Save stores the game and resets its TTL.
func (repo *GameRepository) Save(ctx context.Context, id string, g *game.Game) error {
	snapshot, err := json.Marshal(g.Snapshot())
	if err != nil {
		return fmt.Errorf("error marshaling game: %w", err)
	}

	redisConn := repo.services.Redis
	key := gameKey(id)

	pipe := redisConn.TxPipeline()
	pipe.HSet(ctx, key,
		"board", othello.EncodeGrid(g.Board()),
		"snapshot", snapshot,
		"updated_at", time.Now().UTC().Format(time.RFC3339),
	)
	pipe.Expire(ctx, key, repo.ttl)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error storing game: %w", err)
	}

	return nil
}

// Load restores a game. Difficulties are resolved with lookup and the engine is built from base.
func (repo *GameRepository) Load(
	ctx context.Context,
	id string,
	lookup func(name string) (game.Difficulty, error),
	base search.Options,
) (*game.Game, error) {
	data, err := repo.services.Redis.HGet(ctx, gameKey(id), "snapshot").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("error getting game: %w", err)
	}

	var snapshot game.Snapshot
	if err = json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("error unmarshaling game: %w", err)
	}

	g, err := game.Restore(snapshot, lookup, base)
	if err != nil {
		return nil, fmt.Errorf("error restoring game %s: %w", id, err)
	}

	return g, nil
}

// LoadBoard returns the current board of a game without restoring it.
func (repo *GameRepository) LoadBoard(ctx context.Context, id string) (othello.Board, error) {
	grid, err := repo.services.Redis.HGet(ctx, gameKey(id), "board").Result()
	if errors.Is(err, redis.Nil) {
		return othello.Board{}, ErrGameNotFound
	}

	if err != nil {
		return othello.Board{}, fmt.Errorf("error getting board: %w", err)
	}

	return othello.DecodeGrid(grid)
}

// Delete removes a game.
func (repo *GameRepository) Delete(ctx context.Context, id string) error {
	if err := repo.services.Redis.Del(ctx, gameKey(id)).Err(); err != nil {
		return fmt.Errorf("error deleting game: %w", err)
	}
	return nil
}
