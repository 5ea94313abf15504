package eval //nolint:testpackage

import (
	"math"
	"sync"
	"testing"

	"github.com/lk16/reversi/internal/othello"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, grid string) othello.Board {
	t.Helper()

	b, err := othello.DecodeGrid(grid)
	require.NoError(t, err)
	return b
}

func TestPositionTableSymmetric(t *testing.T) {
	for s := range othello.Symmetries {
		for i := range othello.Squares {
			require.Equal(t, positionTable[i], positionTable[othello.TransformIndex(i, s)], "symmetry %d square %d", s, i)
		}
	}
}

func TestHeuristicStartIsBalanced(t *testing.T) {
	e := New(DefaultConfig())
	b := othello.NewBoardStart()

	require.Equal(t, 0, e.Heuristic(b, othello.Dark))
	require.Equal(t, 0, e.Heuristic(b, othello.Light))
}

func TestHeuristicIsZeroSum(t *testing.T) {
	e := New(DefaultConfig())

	b, err := othello.ApplyMove(othello.NewBoardStart(), othello.Move{Row: 2, Col: 3, Player: othello.Dark})
	require.NoError(t, err)

	require.Equal(t, -e.Heuristic(b, othello.Dark), e.Heuristic(b, othello.Light))
}

func TestHeuristicTerms(t *testing.T) {
	// Dark owns a1, light has no corner. Both sides still have moves.
	b := mustDecode(t, ""+
		"D.......\n"+
		".L......\n"+
		"........\n"+
		"...LD...\n"+
		"...DL...\n"+
		"........\n"+
		"........\n"+
		"........\n"+
		"L 2\n")

	tests := []struct {
		name    string
		weights Weights
		want    int
	}{
		{
			name:    "material",
			weights: Weights{Material: 1},
			want:    3 - 3,
		},
		{
			name:    "position",
			weights: Weights{Position: 1},
			want:    (99 + 0 + 0) - (-24 + 0 + 0),
		},
		{
			name:    "corner",
			weights: Weights{Corner: 7},
			want:    7,
		},
		{
			name:    "mobility",
			weights: Weights{Mobility: 1},
			want:    othello.Mobility(b, othello.Dark) - othello.Mobility(b, othello.Light),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(Uniform(tt.weights))
			require.Equal(t, tt.want, e.Heuristic(b, othello.Dark))
		})
	}
}

func TestHeuristicTerminalDominates(t *testing.T) {
	won := mustDecode(t, ""+
		"LLLLLLLL\n"+
		"LLLLLLLL\n"+
		"LLLLLLLL\n"+
		"LLLLLLLL\n"+
		"LLLLLLLL\n"+
		"LLLLLLLL\n"+
		"LLLLLLLL\n"+
		"LLLL....\n"+
		"D 56\n")

	maxWeights := Weights{Material: MaxWeight, Position: MaxWeight, Mobility: MaxWeight, Corner: MaxWeight}
	e := New(Uniform(maxWeights))

	score := e.Heuristic(won, othello.Light)
	require.Equal(t, Terminal(60), score)
	require.True(t, IsTerminalScore(score))
	require.Equal(t, -score, e.Heuristic(won, othello.Dark))

	// A full board with the largest possible non-terminal advantage still scores below any win.
	upperBound := MaxWeight * (othello.Squares + 784 + othello.Squares + 4)
	require.Less(t, upperBound, Terminal(1))
	require.Greater(t, Terminal(2), Terminal(1))
	require.Equal(t, 0, Terminal(0))
}

func TestWeightsForPhase(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, cfg.Midgame, cfg.WeightsFor(60))
	require.Equal(t, cfg.Midgame, cfg.WeightsFor(DefaultEndgameEmpties+1))
	require.Equal(t, cfg.Endgame, cfg.WeightsFor(DefaultEndgameEmpties))
	require.Equal(t, cfg.Endgame, cfg.WeightsFor(0))

	require.Greater(t, cfg.Endgame.Material, cfg.Midgame.Material)
	require.Greater(t, cfg.Midgame.Mobility, cfg.Endgame.Mobility)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	require.NoError(t, PositionalConfig().Validate())

	cfg := DefaultConfig()
	cfg.Midgame.Mobility = -1
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Endgame.Corner = MaxWeight + 1
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.EndgameEmpties = 61
	require.Error(t, cfg.Validate())
}

func TestWeightsValidateReportsFirstInvalidWeight(t *testing.T) {
	w := Weights{Material: -1, Position: -2, Mobility: -3, Corner: MaxWeight + 1}

	for range 20 {
		err := w.Validate()
		require.EqualError(t, err, "material_weight must be between 0 and 1000, got -1")
	}

	w.Material = 0
	require.ErrorContains(t, w.Validate(), "position_weight")

	w.Position = 0
	w.Mobility = 0
	require.ErrorContains(t, w.Validate(), "corner_weight")
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Config
		wantErr bool
	}{
		{
			name: "empty object keeps defaults",
			data: `{}`,
			want: DefaultConfig(),
		},
		{
			name: "bare weights apply to both phases",
			data: `{"material_weight": 1, "position_weight": 2, "mobility_weight": 3, "corner_weight": 4}`,
			want: Uniform(Weights{Material: 1, Position: 2, Mobility: 3, Corner: 4}),
		},
		{
			name: "partial phase",
			data: `{"midgame": {"mobility_weight": 5}, "endgame_empties": 20}`,
			want: func() Config {
				cfg := DefaultConfig()
				cfg.Midgame.Mobility = 5
				cfg.EndgameEmpties = 20
				return cfg
			}(),
		},
		{
			name:    "out of range",
			data:    `{"corner_weight": 5000}`,
			wantErr: true,
		},
		{
			name:    "malformed",
			data:    `{"corner_weight":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFingerprint(t *testing.T) {
	require.Equal(t, "1.10.60.300/100.2.10.100/14", DefaultConfig().Fingerprint())
	require.NotEqual(t, DefaultConfig().Fingerprint(), PositionalConfig().Fingerprint())
}

func TestHeuristicConcurrent(t *testing.T) {
	e := New(DefaultConfig())
	b := othello.NewBoardStart()
	want := e.Heuristic(b, othello.Dark)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				require.Equal(t, want, e.Heuristic(b, othello.Dark))
			}
		}()
	}
	wg.Wait()
}

func TestTerminalScoresFitInt32(t *testing.T) {
	for _, margin := range []int{-othello.Squares, -1, 1, othello.Squares} {
		score := int64(Terminal(margin))
		require.LessOrEqual(t, score, int64(math.MaxInt32), margin)
		require.GreaterOrEqual(t, score, int64(math.MinInt32), margin)
		require.True(t, IsTerminalScore(Terminal(margin)), margin)
	}

	require.Zero(t, Terminal(0))
}
