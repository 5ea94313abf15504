package game

import (
	"fmt"

	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
)

// Snapshot is the serializable state of a Game.
type Snapshot struct {
	Start      string   `json:"start"`
	Moves      []string `json:"moves"`
	AIColor    string   `json:"ai_color"`
	Difficulty string   `json:"difficulty"`
}

// Snapshot returns the state needed to restore the game.
func (g *Game) Snapshot() Snapshot {
	moves := make([]string, len(g.moves))
	for i, move := range g.moves {
		moves[i] = move.String()
	}

	return Snapshot{
		Start:      othello.EncodeGrid(g.Start()),
		Moves:      moves,
		AIColor:    g.aiColor.String(),
		Difficulty: g.difficulty.Name,
	}
}

// Restore replays a snapshot. The difficulty is resolved with lookup.
func Restore(snapshot Snapshot, lookup func(name string) (Difficulty, error), base search.Options) (*Game, error) {
	start, err := othello.DecodeGrid(snapshot.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to decode start board: %w", err)
	}

	aiColor, err := othello.ParseColor(snapshot.AIColor)
	if err != nil {
		return nil, fmt.Errorf("failed to parse AI color: %w", err)
	}

	difficulty, err := lookup(snapshot.Difficulty)
	if err != nil {
		return nil, err
	}

	game, err := New(start, aiColor, difficulty, base)
	if err != nil {
		return nil, err
	}

	for _, field := range snapshot.Moves {
		row, col, err := othello.ParseField(field)
		if err != nil {
			return nil, fmt.Errorf("failed to parse move %s: %w", field, err)
		}

		move := othello.Move{Row: row, Col: col, Player: game.Turn()}
		if err := game.push(move); err != nil {
			return nil, fmt.Errorf("failed to replay move %s: %w", field, err)
		}
	}

	return game, nil
}
