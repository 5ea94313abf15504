package services

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
type Services struct {
	Postgres *sqlx.DB
	Redis    *redis.Client
}

// InitServices connects to Postgres and Redis and makes sure the database schema exists.
func InitServices(ctx context.Context, cfg *config.ServerConfig) (*Services, error) {
	postgres, err := InitPostgres(ctx, cfg.PostgresURL)
	if err != nil {
		return nil, err
	}

	if err = Migrate(ctx, postgres); err != nil {
		return nil, err
	}

	redis, err := InitRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	return &Services{
		Postgres: postgres,
		Redis:    redis,
	}, nil
}

// Shutdown closes all connections. It is not named Close: fasthttp closes every io.Closer stored
// in the request user values when the request ends.
func (s *Services) Shutdown() error {
	if err := s.Redis.Close(); err != nil {
		return fmt.Errorf("error closing Redis: %w", err)
	}

	if err := s.Postgres.Close(); err != nil {
		return fmt.Errorf("error closing database: %w", err)
	}

	return nil
}
