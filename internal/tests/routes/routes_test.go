package routes_test

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/tests"
	"github.com/stretchr/testify/require"
)

func TestUnknownRoute(t *testing.T) {
	env := tests.NewEnv(t)

	resp := env.Do(t, http.MethodGet, "/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebsocketRequiresUpgrade(t *testing.T) {
	env := tests.NewEnv(t)

	resp := env.Do(t, http.MethodGet, "/ws", nil)
	require.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)
}

func TestWebsocketRequiresToken(t *testing.T) {
	env := tests.NewEnv(t)

	req, err := http.NewRequest(http.MethodGet, "/ws", nil)
	require.NoError(t, err)

	resp, err := env.App.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConnectionsOutliveRequests(t *testing.T) {
	env := tests.NewEnv(t)

	resp := env.Do(t, http.MethodGet, "/version", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.Do(t, http.MethodPost, "/api/games", models.CreateGamePayload{Difficulty: "easy"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var game models.GameResponse
	tests.Decode(t, resp, &game)

	for range 3 {
		resp = env.Do(t, http.MethodGet, "/api/games/"+game.ID, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	env.Postgres.ExpectQuery("SELECT (.+) FROM games").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp = env.Do(t, http.MethodGet, "/api/results", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, env.Postgres.ExpectationsWereMet())
}
