package othello //nolint:testpackage

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlipHorizontally(t *testing.T) {
	for i := range Squares {
		row, col := i/Size, i%Size
		want := uint64(1) << (row*Size + Size - 1 - col)
		require.Equal(t, want, flipHorizontally(uint64(1)<<i))
	}
}

func TestFlipVertically(t *testing.T) {
	for i := range Squares {
		row, col := i/Size, i%Size
		want := uint64(1) << ((Size-1-row)*Size + col)
		require.Equal(t, want, flipVertically(uint64(1)<<i))
	}
}

func TestFlipDiagonally(t *testing.T) {
	for i := range Squares {
		row, col := i/Size, i%Size
		want := uint64(1) << (col*Size + row)
		require.Equal(t, want, flipDiagonally(uint64(1)<<i))
	}
}

func TestInverseTransformIndex(t *testing.T) {
	for s := range Symmetries {
		for i := range Squares {
			require.Equal(t, i, InverseTransformIndex(TransformIndex(i, s), s), "symmetry %d index %d", s, i)
		}
	}
}

// slowMoveMask computes legal moves with the direction scan only.
func slowMoveMask(own, opp uint64) uint64 {
	mask := uint64(0)
	for i := range Squares {
		if flipped(own, opp, i) != 0 {
			mask |= uint64(1) << i
		}
	}
	return mask
}

func TestMoveMaskMatchesDirectionScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42)) //nolint:gosec

	for range 200 {
		b := randomBoard(t, rng, 4+rng.Intn(56))
		own, opp := b.Bitboards(b.Turn())

		require.Equal(t, slowMoveMask(own, opp), moveMask(own, opp), "board:\n%s", b)
		require.Equal(t, slowMoveMask(opp, own), moveMask(opp, own), "board:\n%s", b)
	}
}

func TestFlippedOccupiedSquare(t *testing.T) {
	own, opp := NewBoardStart().Bitboards(Dark)
	require.Zero(t, flipped(own, opp, index(3, 3)))
	require.Zero(t, flipped(own, opp, index(3, 4)))
}

func TestSquares(t *testing.T) {
	var got []int
	squares(0x8000000000000081, func(i int) {
		got = append(got, i)
	})
	require.Equal(t, []int{0, 7, 63}, got)
	require.Equal(t, 3, bits.OnesCount64(0x8000000000000081))
}

// randomBoard plays random legal moves from the opening until the board holds discs discs or the game ends.
func randomBoard(t *testing.T, rng *rand.Rand, discs int) Board {
	t.Helper()

	b := NewBoardStart()
	for b.CountDiscs() < discs && !IsTerminal(b) {
		moves := LegalMoves(b, b.Turn())
		require.NotEmpty(t, moves)

		next, err := ApplyMove(b, moves[rng.Intn(len(moves))])
		require.NoError(t, err)
		b = next
	}
	return b
}
