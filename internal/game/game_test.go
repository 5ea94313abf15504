package game

import (
	"context"
	"testing"
	"time"

	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, start othello.Board, aiColor othello.Color) *Game {
	t.Helper()

	g, err := New(start, aiColor, Easy(), search.DefaultOptions())
	require.NoError(t, err)
	return g
}

func mustDecode(t *testing.T, grid string) othello.Board {
	t.Helper()

	b, err := othello.DecodeGrid(grid)
	require.NoError(t, err)
	return b
}

func TestGameHumanThenAI(t *testing.T) {
	g := newGame(t, othello.NewBoardStart(), othello.Light)

	require.Equal(t, othello.Dark, g.HumanColor())
	require.False(t, g.AIToMove())
	require.Len(t, g.LegalMoves(), 4)

	_, err := g.PlayAI(context.Background())
	require.ErrorIs(t, err, ErrNotAITurn)

	move, err := g.PlayField("d3")
	require.NoError(t, err)
	require.Equal(t, othello.Dark, move.Player)
	require.True(t, g.AIToMove())

	_, err = g.PlayField("c5")
	require.ErrorIs(t, err, ErrNotHumanTurn)

	result, err := g.PlayAI(context.Background())
	require.NoError(t, err)
	require.Equal(t, othello.Light, result.Move.Player)
	require.Equal(t, 1, result.Depth)
	require.Len(t, g.Moves(), 2)
	require.Equal(t, 2, g.Board().MoveCount())

	require.NoError(t, g.Undo())
	require.Empty(t, g.Moves())
	require.Equal(t, othello.NewBoardStart(), g.Board())

	require.ErrorIs(t, g.Undo(), ErrNothingToUndo)
}

func TestGameAIStarts(t *testing.T) {
	g := newGame(t, othello.NewBoardStart(), othello.Dark)

	require.True(t, g.AIToMove())

	_, err := g.Play(2, 3)
	require.ErrorIs(t, err, ErrNotHumanTurn)

	_, err = g.PlayAI(context.Background())
	require.NoError(t, err)
	require.False(t, g.AIToMove())

	// Only the engine has moved.
	require.ErrorIs(t, g.Undo(), ErrNothingToUndo)
}

func TestGameInvalidMoves(t *testing.T) {
	g := newGame(t, othello.NewBoardStart(), othello.Light)

	for _, field := range []string{"a1", "d4", "z9", ""} {
		_, err := g.PlayField(field)
		require.ErrorIs(t, err, othello.ErrInvalidMove, field)
	}

	require.Empty(t, g.Moves())
}

func TestGameOver(t *testing.T) {
	full := mustDecode(t, ""+
		"DDDDDDDD\n"+
		"DDDDDDDD\n"+
		"DDDDDDDD\n"+
		"DDDDDDDD\n"+
		"LLLLLLLL\n"+
		"LLLLLLLL\n"+
		"LLLLLLLL\n"+
		"LLLLLLLL\n"+
		"D 60\n")

	g := newGame(t, full, othello.Light)

	require.True(t, g.IsOver())
	require.False(t, g.AIToMove())

	_, err := g.Play(0, 0)
	require.ErrorIs(t, err, ErrGameOver)

	_, err = g.PlayAI(context.Background())
	require.ErrorIs(t, err, ErrGameOver)

	require.Equal(t, Summary{Dark: 32, Light: 32, Winner: othello.Empty, Draw: true, Over: true}, g.Summary())
	require.Equal(t, othello.EncodeGrid(full)+"dark score: 32\nlight score: 32\ndraw game\n", g.ResultText())
}

func TestGamePassesBlockedStart(t *testing.T) {
	// Dark is to move but cannot. Light takes h1 and ends the game.
	start := mustDecode(t, ""+
		"LDDDDDD.\n"+
		"DDDDDDDD\n"+
		"DDDDDDDD\n"+
		"DDDDDDDD\n"+
		"DDDDDDDD\n"+
		"DDDDDDDD\n"+
		"DDDDDDDD\n"+
		"DDDDDDDD\n"+
		"D 59\n")

	g := newGame(t, start, othello.Dark)
	require.Equal(t, othello.Light, g.Turn())
	require.False(t, g.AIToMove())

	_, err := g.PlayField("h1")
	require.NoError(t, err)

	require.True(t, g.IsOver())

	summary := g.Summary()
	require.Equal(t, 56, summary.Dark)
	require.Equal(t, 8, summary.Light)
	require.Equal(t, othello.Dark, summary.Winner)
	require.Contains(t, g.ResultText(), "dark wins\n")
}

func TestGamePlaysToTheEnd(t *testing.T) {
	g := newGame(t, othello.NewBoardStart(), othello.Light)

	for !g.IsOver() {
		if g.AIToMove() {
			_, err := g.PlayAI(context.Background())
			require.NoError(t, err)
			continue
		}

		moves := g.LegalMoves()
		require.NotEmpty(t, moves)

		_, err := g.Play(moves[0].Row, moves[0].Col)
		require.NoError(t, err)
	}

	summary := g.Summary()
	require.True(t, summary.Over)
	require.Equal(t, othello.StartDiscs+len(g.Moves()), summary.Dark+summary.Light)
}

func TestSnapshotRestore(t *testing.T) {
	g := newGame(t, othello.NewBoardStart(), othello.Light)

	for range 3 {
		_, err := g.PlayField(g.LegalMoves()[0].String())
		require.NoError(t, err)

		_, err = g.PlayAI(context.Background())
		require.NoError(t, err)
	}

	snapshot := g.Snapshot()
	require.Len(t, snapshot.Moves, 6)
	require.Equal(t, "light", snapshot.AIColor)
	require.Equal(t, "easy", snapshot.Difficulty)

	restored, err := Restore(snapshot, DifficultyByName, search.DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, g.Board(), restored.Board())
	require.Equal(t, g.Moves(), restored.Moves())
	require.Equal(t, g.Difficulty(), restored.Difficulty())

	// Undo works on a restored game.
	require.NoError(t, restored.Undo())
	require.Len(t, restored.Moves(), 4)
}

func TestRestoreErrors(t *testing.T) {
	valid := Snapshot{
		Start:      othello.EncodeGrid(othello.NewBoardStart()),
		Moves:      []string{"d3"},
		AIColor:    "light",
		Difficulty: "easy",
	}

	tests := []struct {
		name   string
		modify func(*Snapshot)
	}{
		{"bad start", func(s *Snapshot) { s.Start = "garbage" }},
		{"bad color", func(s *Snapshot) { s.AIColor = "blue" }},
		{"bad difficulty", func(s *Snapshot) { s.Difficulty = "impossible" }},
		{"bad field", func(s *Snapshot) { s.Moves = []string{"x1"} }},
		{"illegal move", func(s *Snapshot) { s.Moves = []string{"a1"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshot := valid
			tt.modify(&snapshot)

			_, err := Restore(snapshot, DifficultyByName, search.DefaultOptions())
			require.Error(t, err)
		})
	}

	_, err := Restore(valid, DifficultyByName, search.DefaultOptions())
	require.NoError(t, err)
}

func TestNewRejectsEmptyAIColor(t *testing.T) {
	_, err := New(othello.NewBoardStart(), othello.Empty, Easy(), search.DefaultOptions())
	require.Error(t, err)
}

func TestDifficultyByName(t *testing.T) {
	hard, err := DifficultyByName("HARD")
	require.NoError(t, err)
	require.Equal(t, Hard(), hard)

	_, err = DifficultyByName("impossible")
	require.ErrorIs(t, err, ErrUnknownDifficulty)

	require.Len(t, Difficulties(), 3)
}

func TestDifficultyOptions(t *testing.T) {
	base := search.DefaultOptions()
	base.Workers = 4

	options := Medium().Options(base)
	require.Equal(t, 4, options.MaxDepth)
	require.Equal(t, 5*time.Second, options.TimeBudget)
	require.Equal(t, 4, options.Workers)

	easy := Easy().Options(base)
	require.Equal(t, 1, easy.MaxDepth)
	require.LessOrEqual(t, easy.TimeBudget, time.Duration(0))
}

func TestLookup(t *testing.T) {
	lookup := Lookup(Difficulty{Depth: 3, Weights: Hard().Weights})

	for _, name := range []string{"", "custom", "Custom"} {
		difficulty, err := lookup(name)
		require.NoError(t, err)
		require.Equal(t, CustomName, difficulty.Name)
		require.Equal(t, 3, difficulty.Depth)
	}

	medium, err := lookup("medium")
	require.NoError(t, err)
	require.Equal(t, Medium(), medium)

	_, err = lookup("nope")
	require.ErrorIs(t, err, ErrUnknownDifficulty)
}
