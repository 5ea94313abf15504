package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lk16/reversi/internal/eval"
	"github.com/lk16/reversi/internal/search"
)

const (
	// GameTTL is how long an idle game is kept in Redis.
	GameTTL = 24 * time.Hour

	// AnalysisTTL is how long a cached search result is kept in Redis.
	AnalysisTTL = 7 * 24 * time.Hour

	// MaxAnalysisDepth bounds the depth clients may request.
	MaxAnalysisDepth = 20

	// MaxAnalysisTimeBudget bounds the time budget clients may request.
	MaxAnalysisTimeBudget = 30 * time.Second
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost  string
	ServerPort  string
	RedisURL    string
	PostgresURL string
	Token       string
	Prefork     bool
	AI          AIConfig
}

// AIConfig configures the engine used by the game service and the terminal client.
type AIConfig struct {
	Depth      int
	TimeBudget time.Duration
	Workers    int
	Weights    eval.Config
}

// SearchOptions returns the engine options described by the config.
func (cfg AIConfig) SearchOptions() search.Options {
	options := search.DefaultOptions()
	options.MaxDepth = cfg.Depth
	options.TimeBudget = cfg.TimeBudget
	options.Workers = cfg.Workers
	options.Weights = cfg.Weights
	return options
}

// LoadDotEnv loads a .env file from the working directory if there is one.
func LoadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("Cannot load .env file", "error", err)
		os.Exit(1)
	}
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	LoadDotEnv()

	return &ServerConfig{
		ServerHost:  getEnvMust("REVERSI_SERVER_HOST"),
		ServerPort:  getEnvMust("REVERSI_SERVER_PORT"),
		RedisURL:    getEnvMust("REVERSI_REDIS_URL"),
		PostgresURL: getEnvMust("REVERSI_POSTGRES_URL"),
		Token:       getEnvMust("REVERSI_TOKEN"),
		Prefork:     getEnvMustBool("REVERSI_PREFORK"),
		AI:          LoadAIConfig(),
	}
}

// LoadAIConfig loads the engine configuration. Every variable is optional.
func LoadAIConfig() AIConfig {
	cfg, err := ParseAIConfig(os.Getenv)
	if err != nil {
		slog.Error("Cannot load AI configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

// ParseAIConfig reads the engine configuration through getenv. Unset variables keep their defaults.
func ParseAIConfig(getenv func(string) string) (AIConfig, error) {
	cfg := AIConfig{
		Depth:      search.DefaultMaxDepth,
		TimeBudget: search.DefaultTimeBudget,
		Workers:    1,
		Weights:    eval.DefaultConfig(),
	}

	if value := getenv("REVERSI_AI_DEPTH"); value != "" {
		depth, err := strconv.Atoi(value)
		if err != nil || depth < 1 || depth > MaxAnalysisDepth {
			return AIConfig{}, fmt.Errorf("REVERSI_AI_DEPTH must be between 1 and %d, got %q", MaxAnalysisDepth, value)
		}
		cfg.Depth = depth
	}

	if value := getenv("REVERSI_AI_TIME_BUDGET"); value != "" {
		budget, err := time.ParseDuration(value)
		if err != nil {
			return AIConfig{}, fmt.Errorf("REVERSI_AI_TIME_BUDGET: %w", err)
		}
		cfg.TimeBudget = budget
	}

	if value := getenv("REVERSI_AI_WORKERS"); value != "" {
		workers, err := strconv.Atoi(value)
		if err != nil || workers < 1 {
			return AIConfig{}, fmt.Errorf("REVERSI_AI_WORKERS must be a positive number, got %q", value)
		}
		cfg.Workers = workers
	}

	if value := getenv("REVERSI_AI_WEIGHTS"); value != "" {
		weights, err := eval.ParseConfig([]byte(value))
		if err != nil {
			return AIConfig{}, fmt.Errorf("REVERSI_AI_WEIGHTS: %w", err)
		}
		cfg.Weights = weights
	}

	return cfg, nil
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}
