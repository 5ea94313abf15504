package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/othello"
)

// CreateGamePayload represents a request to start a game against the engine.
type CreateGamePayload struct {
	Difficulty string `json:"difficulty"`
	AIColor    string `json:"ai_color"`

	// Board is an optional start position in grid format.
	Board string `json:"board,omitempty"`

	// Set by Validate.
	aiPlayer othello.Color
	start    othello.Board
}

// Validate validates the create game payload and decodes the AI color and start position.
func (p *CreateGamePayload) Validate() error {
	if p.AIColor == "" {
		p.AIColor = othello.Light.String()
	}

	aiPlayer, err := othello.ParseColor(p.AIColor)
	if err != nil {
		return fmt.Errorf("ai_color: %w", err)
	}

	start := othello.NewBoardStart()
	if p.Board != "" {
		start, err = othello.DecodeGrid(p.Board)
		if err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	p.aiPlayer = aiPlayer
	p.start = start
	return nil
}

// AIPlayer returns the color played by the engine. Only valid after Validate succeeded.
func (p *CreateGamePayload) AIPlayer() othello.Color {
	return p.aiPlayer
}

// Start returns the start position, the opening if no board was given. Only valid after Validate succeeded.
func (p *CreateGamePayload) Start() othello.Board {
	return p.start
}

// MovePayload represents a human move in field notation, e.g. "d3".
type MovePayload struct {
	Field string `json:"field"`
}

// Validate validates the move payload.
func (p *MovePayload) Validate() error {
	if _, _, err := othello.ParseField(p.Field); err != nil {
		return err
	}
	return nil
}

// AnalyzePayload represents a request to search a position.
type AnalyzePayload struct {
	Board        string `json:"board"`
	Depth        int    `json:"depth"`
	TimeBudgetMs int    `json:"time_budget_ms"`

	// Set by Validate.
	position othello.Board
}

// Validate validates the analyze payload and decodes the board.
func (p *AnalyzePayload) Validate() error {
	if p.Board == "" {
		return errors.New("board is missing")
	}

	position, err := othello.DecodeGrid(p.Board)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}

	if p.Depth < 0 || p.Depth > config.MaxAnalysisDepth {
		return fmt.Errorf("depth must be between 0 and %d", config.MaxAnalysisDepth)
	}

	if p.TimeBudgetMs < 0 || time.Duration(p.TimeBudgetMs)*time.Millisecond > config.MaxAnalysisTimeBudget {
		return fmt.Errorf("time_budget_ms must be between 0 and %d", config.MaxAnalysisTimeBudget.Milliseconds())
	}

	p.position = position
	return nil
}

// Position returns the decoded board. Only valid after Validate succeeded.
func (p *AnalyzePayload) Position() othello.Board {
	return p.position
}

// SearchResponse represents the outcome of a search.
type SearchResponse struct {
	Move      string `json:"move"`
	Depth     int    `json:"depth"`
	Score     int    `json:"score"`
	Nodes     uint64 `json:"nodes"`
	ElapsedMs int64  `json:"elapsed_ms"`
	Status    string `json:"status"`
	Cached    bool   `json:"cached"`
}

// FinishedGame is an archived game.
type FinishedGame struct {
	ID         string    `json:"id"          db:"id"`
	Difficulty string    `json:"difficulty"  db:"difficulty"`
	AIColor    string    `json:"ai_color"    db:"ai_color"`
	Dark       int       `json:"dark"        db:"dark"`
	Light      int       `json:"light"       db:"light"`
	Winner     string    `json:"winner"      db:"winner"`
	Moves      MoveList  `json:"moves"       db:"moves"`
	FinalBoard string    `json:"final_board" db:"final_board"`
	FinishedAt time.Time `json:"finished_at" db:"finished_at"`
}

// ResultsResponse lists the latest finished games.
type ResultsResponse struct {
	Games []FinishedGame `json:"games"`
}

// MoveList is a list of moves in field notation that implements sql.Scanner and driver.Valuer.
type MoveList []string

// Scan implements the sql.Scanner interface for MoveList.
func (m *MoveList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		if s, isString := value.(string); isString {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("cannot scan %T into MoveList", value)
		}
	}

	if bytes == nil {
		return errors.New("cannot scan nil into MoveList")
	}

	// We should have a string that looks like "{d3,c5}"
	s := strings.Trim(string(bytes), "{}")

	if s == "" {
		*m = MoveList{}
		return nil
	}

	parts := strings.Split(s, ",")

	moves := make([]string, len(parts))
	for i, part := range parts {
		if _, _, err := othello.ParseField(part); err != nil {
			return fmt.Errorf("cannot convert %s to move: %w", part, err)
		}
		moves[i] = part
	}
	*m = moves

	return nil
}

// Value implements the driver.Valuer interface for MoveList.
func (m MoveList) Value() (driver.Value, error) {
	return pq.Array([]string(m)).Value()
}

// VersionResponse contains the commit the server was built from.
type VersionResponse struct {
	Commit string `json:"commit"`
}
