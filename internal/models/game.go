package models

import (
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
)

// GameResponse represents the state of a game as seen by the client.
type GameResponse struct {
	ID         string          `json:"id"`
	Board      string          `json:"board"`
	Turn       string          `json:"turn"`
	AIColor    string          `json:"ai_color"`
	Difficulty string          `json:"difficulty"`
	LegalMoves []string        `json:"legal_moves"`
	Moves      []string        `json:"moves"`
	Dark       int             `json:"dark"`
	Light      int             `json:"light"`
	Over       bool            `json:"over"`
	Winner     string          `json:"winner,omitempty"`
	LastSearch *SearchResponse `json:"last_search,omitempty"`
}

// NewGameResponse converts a game. lastSearch may be nil.
func NewGameResponse(id string, g *game.Game, lastSearch *search.Result) GameResponse {
	summary := g.Summary()

	response := GameResponse{
		ID:         id,
		Board:      othello.EncodeGrid(g.Board()),
		Turn:       g.Turn().String(),
		AIColor:    g.AIColor().String(),
		Difficulty: g.Difficulty().Name,
		LegalMoves: Fields(g.LegalMoves()),
		Moves:      Fields(g.Moves()),
		Dark:       summary.Dark,
		Light:      summary.Light,
		Over:       summary.Over,
	}

	if summary.Over {
		response.Winner = WinnerName(summary)
	}

	if lastSearch != nil {
		searchResponse := NewSearchResponse(*lastSearch, false)
		response.LastSearch = &searchResponse
	}

	return response
}

// NewSearchResponse converts a search result.
func NewSearchResponse(result search.Result, cached bool) SearchResponse {
	return SearchResponse{
		Move:      result.Move.String(),
		Depth:     result.Depth,
		Score:     result.Score,
		Nodes:     result.Nodes,
		ElapsedMs: result.Elapsed.Milliseconds(),
		Status:    result.Status.String(),
		Cached:    cached,
	}
}

// Fields converts moves to field notation.
func Fields(moves []othello.Move) []string {
	fields := make([]string, len(moves))
	for i, move := range moves {
		fields[i] = move.String()
	}
	return fields
}

// WinnerName returns "dark", "light" or "draw".
func WinnerName(summary game.Summary) string {
	if summary.Draw {
		return "draw"
	}
	return summary.Winner.String()
}
