package api_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/tests"
	"github.com/stretchr/testify/require"
)

func createGame(t *testing.T, env *tests.Env, payload models.CreateGamePayload) models.GameResponse {
	t.Helper()

	resp := env.Do(t, http.MethodPost, "/api/games", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var game models.GameResponse
	tests.Decode(t, resp, &game)
	return game
}

func TestGamesNoAuth(t *testing.T) {
	env := tests.NewEnv(t)

	req, err := http.NewRequest(http.MethodPost, "/api/games", nil)
	require.NoError(t, err)

	resp, err := env.App.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGamesWrongToken(t *testing.T) {
	env := tests.NewEnv(t)

	req, err := http.NewRequest(http.MethodGet, "/api/results", nil)
	require.NoError(t, err)
	req.Header.Set("X-Token", "wrong")

	resp, err := env.App.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateGame(t *testing.T) {
	env := tests.NewEnv(t)

	game := createGame(t, env, models.CreateGamePayload{Difficulty: "easy", AIColor: "light"})

	require.Len(t, game.ID, 36)
	require.Equal(t, othello.EncodeGrid(othello.NewBoardStart()), game.Board)
	require.Equal(t, "dark", game.Turn)
	require.Equal(t, "light", game.AIColor)
	require.Equal(t, "easy", game.Difficulty)
	require.Equal(t, []string{"d3", "c4", "f5", "e6"}, game.LegalMoves)
	require.Empty(t, game.Moves)
	require.Equal(t, 2, game.Dark)
	require.Equal(t, 2, game.Light)

	// The board is stored as grid text.
	require.Equal(t, game.Board, env.Redis.HGet("game:"+game.ID, "board"))

	resp := env.Do(t, http.MethodGet, "/api/games/"+game.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loaded models.GameResponse
	tests.Decode(t, resp, &loaded)
	require.Equal(t, game, loaded)
}

func TestCreateGameDefaultsToCustomDifficulty(t *testing.T) {
	env := tests.NewEnv(t)

	game := createGame(t, env, models.CreateGamePayload{})
	require.Equal(t, "custom", game.Difficulty)
	require.Equal(t, "light", game.AIColor)
}

func TestCreateGameBadRequests(t *testing.T) {
	env := tests.NewEnv(t)

	cases := []struct {
		name    string
		payload models.CreateGamePayload
	}{
		{"bad color", models.CreateGamePayload{AIColor: "green"}},
		{"bad board", models.CreateGamePayload{Board: "DDD"}},
		{"bad difficulty", models.CreateGamePayload{Difficulty: "impossible"}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.Do(t, http.MethodPost, "/api/games", tt.payload)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGameNotFound(t *testing.T) {
	env := tests.NewEnv(t)

	resp := env.Do(t, http.MethodGet, "/api/games/00000000-0000-0000-0000-000000000000", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetBoard(t *testing.T) {
	env := tests.NewEnv(t)
	game := createGame(t, env, models.CreateGamePayload{Difficulty: "easy", AIColor: "light"})

	resp := env.Do(t, http.MethodPost, "/api/games/"+game.ID+"/moves", models.MovePayload{Field: "d3"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.Do(t, http.MethodGet, "/api/games/"+game.ID+"/board", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	board, err := othello.DecodeGrid(string(body))
	require.NoError(t, err)
	require.Equal(t, 1, board.MoveCount())
	require.Equal(t, othello.Light, board.Turn())
	require.Equal(t, othello.Dark, board.Cell(2, 3))

	resp = env.Do(t, http.MethodGet, "/api/games/unknown/board", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteGame(t *testing.T) {
	env := tests.NewEnv(t)
	game := createGame(t, env, models.CreateGamePayload{Difficulty: "easy"})
	path := "/api/games/" + game.ID

	resp := env.Do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.False(t, env.Redis.Exists("game:"+game.ID))

	resp = env.Do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.Do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayGame(t *testing.T) {
	env := tests.NewEnv(t)
	game := createGame(t, env, models.CreateGamePayload{Difficulty: "easy", AIColor: "light"})
	path := "/api/games/" + game.ID

	// The engine cannot move before the human.
	resp := env.Do(t, http.MethodPost, path+"/ai-move", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.Do(t, http.MethodPost, path+"/moves", models.MovePayload{Field: "a1"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.Do(t, http.MethodPost, path+"/moves", models.MovePayload{Field: "q1"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.Do(t, http.MethodPost, path+"/moves", models.MovePayload{Field: "d3"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var afterMove models.GameResponse
	tests.Decode(t, resp, &afterMove)
	require.Equal(t, []string{"d3"}, afterMove.Moves)
	require.Equal(t, "light", afterMove.Turn)

	// The human cannot move twice.
	resp = env.Do(t, http.MethodPost, path+"/moves", models.MovePayload{Field: "c5"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.Do(t, http.MethodPost, path+"/ai-move", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var afterAI models.GameResponse
	tests.Decode(t, resp, &afterAI)
	require.Len(t, afterAI.Moves, 2)
	require.Equal(t, "dark", afterAI.Turn)
	require.NotNil(t, afterAI.LastSearch)
	require.Equal(t, afterAI.Moves[1], afterAI.LastSearch.Move)
	require.Equal(t, 1, afterAI.LastSearch.Depth)

	resp = env.Do(t, http.MethodPost, path+"/undo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var afterUndo models.GameResponse
	tests.Decode(t, resp, &afterUndo)
	require.Empty(t, afterUndo.Moves)
	require.Equal(t, game.Board, afterUndo.Board)

	resp = env.Do(t, http.MethodPost, path+"/undo", nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestFinishedGameIsArchived(t *testing.T) {
	env := tests.NewEnv(t)

	// Light takes h1 and ends the game.
	start := "" +
		"LDDDDDD.\n" +
		"DDDDDDDD\n" +
		"DDDDDDDD\n" +
		"DDDDDDDD\n" +
		"DDDDDDDD\n" +
		"DDDDDDDD\n" +
		"DDDDDDDD\n" +
		"DDDDDDDD\n" +
		"D 59\n"

	game := createGame(t, env, models.CreateGamePayload{Difficulty: "easy", AIColor: "dark", Board: start})
	require.Equal(t, "light", game.Turn)

	env.Postgres.ExpectExec("INSERT INTO games").
		WithArgs(game.ID, "easy", "dark", 56, 8, "dark", `{"h1"}`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp := env.Do(t, http.MethodPost, "/api/games/"+game.ID+"/moves", models.MovePayload{Field: "h1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var finished models.GameResponse
	tests.Decode(t, resp, &finished)
	require.True(t, finished.Over)
	require.Equal(t, "dark", finished.Winner)
	require.Empty(t, finished.LegalMoves)

	require.NoError(t, env.Postgres.ExpectationsWereMet())
}
