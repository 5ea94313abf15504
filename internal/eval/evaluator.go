package eval

import (
	"math/bits"

	"github.com/lk16/reversi/internal/othello"
)

const (
	cornerMask = 0x8100000000000081

	// TerminalBase is larger than any heuristic value reachable with weights up to MaxWeight.
	TerminalBase = 1 << 30

	// TerminalMarginScale rewards larger wins so search prefers them over narrow ones.
	TerminalMarginScale = 1 << 20
)

// positionTable holds per-square weights: corners are good, squares next to corners are risky.
// It is symmetric under all 8 board symmetries.
var positionTable = [othello.Squares]int{
	99, -8, 8, 6, 6, 8, -8, 99,
	-8, -24, -4, -3, -3, -4, -24, -8,
	8, -4, 7, 4, 4, 7, -4, 8,
	6, -3, 4, 0, 0, 4, -3, 6,
	6, -3, 4, 0, 0, 4, -3, 6,
	8, -4, 7, 4, 4, 7, -4, 8,
	-8, -24, -4, -3, -3, -4, -24, -8,
	99, -8, 8, 6, 6, 8, -8, 99,
}

// PositionWeight returns the table weight of a square.
func PositionWeight(index int) int {
	return positionTable[index]
}

// Evaluator scores boards. It has no mutable state and is safe for concurrent use.
type Evaluator struct {
	cfg Config
}

// New creates an Evaluator with the given weights.
func New(cfg Config) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Config returns the weights of the evaluator.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Heuristic scores b from the point of view of player. Higher is better for player.
// Finished games score beyond any heuristic value, proportional to the disc margin.
func (e *Evaluator) Heuristic(b othello.Board, player othello.Color) int {
	own, opp := b.Bitboards(player)

	ownMoves := bits.OnesCount64(othello.LegalMoveMask(b, player))
	oppMoves := bits.OnesCount64(othello.LegalMoveMask(b, player.Opponent()))

	if ownMoves == 0 && oppMoves == 0 {
		return Terminal(bits.OnesCount64(own) - bits.OnesCount64(opp))
	}

	empties := othello.Squares - bits.OnesCount64(own|opp)
	w := e.cfg.WeightsFor(empties)

	score := 0

	if w.Material != 0 {
		score += w.Material * (bits.OnesCount64(own) - bits.OnesCount64(opp))
	}

	if w.Position != 0 {
		score += w.Position * (tableSum(own) - tableSum(opp))
	}

	if w.Mobility != 0 {
		score += w.Mobility * (ownMoves - oppMoves)
	}

	if w.Corner != 0 {
		score += w.Corner * (bits.OnesCount64(own&cornerMask) - bits.OnesCount64(opp&cornerMask))
	}

	return score
}

// Terminal returns the score of a finished game with the given disc margin.
func Terminal(margin int) int {
	switch {
	case margin > 0:
		return TerminalBase + margin*TerminalMarginScale
	case margin < 0:
		return -TerminalBase + margin*TerminalMarginScale
	default:
		return 0
	}
}

// IsTerminalScore returns whether a score was produced by Terminal for a decided game.
func IsTerminalScore(score int) bool {
	return score >= TerminalBase || score <= -TerminalBase
}

func tableSum(discs uint64) int {
	sum := 0
	for discs != 0 {
		i := bits.TrailingZeros64(discs)
		discs &= discs - 1
		sum += positionTable[i]
	}
	return sum
}
