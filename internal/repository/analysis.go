package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/eval"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
	"github.com/lk16/reversi/internal/services"
	"github.com/redis/go-redis/v9"
)

const analysisKeyPrefix = "analysis:"

// cachedAnalysis is a search result stored in the frame of the normalized position.
type cachedAnalysis struct {
	Square int    `json:"square"`
	Depth  int    `json:"depth"`
	Score  int    `json:"score"`
	Nodes  uint64 `json:"nodes"`
}

// AnalysisRepository caches completed search results in Redis.
// Positions are normalized, so all 8 symmetric variants share one entry.
type AnalysisRepository struct {
	services *services.Services
	ttl      time.Duration
}

func NewAnalysisRepository(c *fiber.Ctx) *AnalysisRepository {
	return NewAnalysisRepositoryFromServices(c.Locals("services").(*services.Services)) //nolint: errcheck
}

func NewAnalysisRepositoryFromServices(services *services.Services) *AnalysisRepository {
	return &AnalysisRepository{
		services: services,
		ttl:      config.AnalysisTTL,
	}
}

func analysisKey(normalized othello.Normalized, depth int, weights eval.Config) string {
	return fmt.Sprintf("%s%s:%d:%s", analysisKeyPrefix, normalized, depth, weights.Fingerprint())
}

// Get returns the cached result of searching b to depth with weights, if any.
func (repo *AnalysisRepository) Get(
	ctx context.Context,
	b othello.Board,
	depth int,
	weights eval.Config,
) (search.Result, bool, error) {
	normalized, symmetry := b.Normalize()

	data, err := repo.services.Redis.Get(ctx, analysisKey(normalized, depth, weights)).Bytes()
	if errors.Is(err, redis.Nil) {
		return search.Result{}, false, nil
	}

	if err != nil {
		return search.Result{}, false, fmt.Errorf("error getting analysis: %w", err)
	}

	var cached cachedAnalysis
	if err = json.Unmarshal(data, &cached); err != nil {
		return search.Result{}, false, fmt.Errorf("error unmarshaling analysis: %w", err)
	}

	move := othello.NewMove(othello.InverseTransformIndex(cached.Square, symmetry), b.Turn())

	// Stale or corrupt entries are treated as a miss.
	if !othello.IsLegal(b, move) {
		return search.Result{}, false, nil
	}

	return search.Result{
		Move:   move,
		Depth:  cached.Depth,
		Score:  cached.Score,
		Nodes:  cached.Nodes,
		Status: search.StatusCompleted,
	}, true, nil
}

// Put stores a result of searching b to depth with weights. Only completed searches are stored,
// since a search that hit its deadline depends on the speed of the machine.
func (repo *AnalysisRepository) Put(
	ctx context.Context,
	b othello.Board,
	depth int,
	weights eval.Config,
	result search.Result,
) error {
	if result.Status != search.StatusCompleted {
		return nil
	}

	normalized, symmetry := b.Normalize()

	data, err := json.Marshal(cachedAnalysis{
		Square: othello.TransformIndex(result.Move.Index(), symmetry),
		Depth:  result.Depth,
		Score:  result.Score,
		Nodes:  result.Nodes,
	})
	if err != nil {
		return fmt.Errorf("error marshaling analysis: %w", err)
	}

	err = repo.services.Redis.Set(ctx, analysisKey(normalized, depth, weights), data, repo.ttl).Err()
	if err != nil {
		return fmt.Errorf("error storing analysis: %w", err)
	}

	return nil
}
