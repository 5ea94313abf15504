// Package tests contains helpers for testing the routes against in-memory services.
package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/services"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const TestToken = "test-token"

// Env is an app wired to an in-memory Redis and a mocked Postgres.
type Env struct {
	App      *fiber.App
	Config   *config.ServerConfig
	Redis    *miniredis.Miniredis
	Postgres sqlmock.Sqlmock
}

// NewEnv builds an app for a single test.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ai, err := config.ParseAIConfig(func(string) string { return "" })
	require.NoError(t, err)

	// Keep searches short.
	ai.Depth = 3
	ai.TimeBudget = 0

	cfg := &config.ServerConfig{
		ServerHost: "localhost",
		ServerPort: "0",
		Token:      TestToken,
		AI:         ai,
	}

	svc := &services.Services{
		Postgres: sqlx.NewDb(db, "postgres"),
		Redis:    client,
	}

	return &Env{
		App:      internal.NewApp(cfg, svc),
		Config:   cfg,
		Redis:    server,
		Postgres: mock,
	}
}

// Do sends a request with the test token. body is encoded as JSON unless it is nil.
func (e *Env) Do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)

	req.Header.Set("X-Token", TestToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// Decode reads a JSON response body into v.
func Decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
