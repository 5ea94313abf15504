package search

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/lk16/reversi/internal/eval"
	"github.com/lk16/reversi/internal/othello"
)

// infinity is outside the range of any evaluation, including terminal scores.
// It fits in 32 bits, and so does its negation.
const infinity = math.MaxInt32

// deadline decides when a search must stop. It is shared by all workers of one search.
type deadline struct {
	ctx     context.Context
	at      time.Time
	enabled bool
	expired atomic.Bool
}

func newDeadline(ctx context.Context, budget time.Duration, start time.Time) *deadline {
	d := &deadline{ctx: ctx}

	if budget > 0 {
		d.at = start.Add(budget)
		d.enabled = true
	}

	if ctxDeadline, ok := ctx.Deadline(); ok && (!d.enabled || ctxDeadline.Before(d.at)) {
		d.at = ctxDeadline
		d.enabled = true
	}

	return d
}

// check returns whether the search must stop and remembers a positive answer.
func (d *deadline) check() bool {
	if d.expired.Load() {
		return true
	}

	if d.ctx.Err() != nil || (d.enabled && !time.Now().Before(d.at)) {
		d.expired.Store(true)
		return true
	}

	return false
}

// searcher runs alpha-beta over one subtree. It owns its node counter and transposition table,
// so each worker needs its own searcher. Board values are copied on every move.
type searcher struct {
	evaluator     *eval.Evaluator
	deadline      *deadline
	checkInterval uint64
	tt            *transpositionTable

	nodes uint64

	// abortable is false while searching depth 1, which always runs to completion.
	abortable bool

	// aborted is set once the deadline is seen. Scores computed after that are meaningless.
	aborted bool
}

func newSearcher(evaluator *eval.Evaluator, d *deadline, checkInterval int) *searcher {
	return &searcher{
		evaluator:     evaluator,
		deadline:      d,
		checkInterval: uint64(checkInterval),
		tt:            newTranspositionTable(defaultTableLimit),
	}
}

// visit counts a node and polls the deadline every checkInterval nodes.
func (s *searcher) visit() {
	s.nodes++

	if s.abortable && !s.aborted && s.nodes%s.checkInterval == 0 && s.deadline.check() {
		s.aborted = true
	}
}

// scoreFor returns the value of child for player, searching depth more plies.
// The child may have the same player to move when the opponent had to pass.
func (s *searcher) scoreFor(child othello.Board, player othello.Color, depth, alpha, beta int) int {
	if child.Turn() == player {
		return s.negamax(child, depth, alpha, beta)
	}
	return -s.negamax(child, depth, -beta, -alpha)
}

// negamax returns the value of b for the player to move. It fails soft: values outside
// (alpha, beta) are bounds. Once aborted, it returns 0 without searching.
func (s *searcher) negamax(b othello.Board, depth, alpha, beta int) int {
	s.visit()

	if s.aborted {
		return 0
	}

	player := b.Turn()

	if depth == 0 {
		return s.evaluator.Heuristic(b, player)
	}

	moves := othello.LegalMoves(b, player)

	if len(moves) == 0 {
		if !othello.HasMoves(b, player.Opponent()) {
			return s.evaluator.Heuristic(b, player)
		}

		// Forced pass: same depth, the opponent moves.
		return -s.negamax(b.WithTurn(player.Opponent()), depth, -beta, -alpha)
	}

	orderMoves(moves)
	if hint, ok := s.tt.probe(b); ok {
		promote(moves, hint)
	}

	best := -infinity
	bestIndex := moves[0].Index()

	for _, move := range moves {
		child, err := othello.ApplyMove(b, move)
		if err != nil {
			// Unreachable: moves come from LegalMoves.
			continue
		}

		score := s.scoreFor(child, player, depth-1, alpha, beta)

		if s.aborted {
			return 0
		}

		if score > best {
			best = score
			bestIndex = move.Index()
		}

		if score > alpha {
			alpha = score
		}

		if alpha >= beta {
			break
		}
	}

	s.tt.store(b, bestIndex)
	return best
}

// rootScores is the outcome of searching the root moves at one depth.
type rootScores struct {
	best  int
	score int
}

// searchRoot searches all root moves in order and returns the index (into moves) of the
// first move with the highest score. ok is false when the deadline interrupted the search.
func (s *searcher) searchRoot(b othello.Board, moves []othello.Move, depth int) (rootScores, bool) {
	player := b.Turn()
	alpha := -infinity
	result := rootScores{best: -1, score: -infinity}

	for i, move := range moves {
		child, err := othello.ApplyMove(b, move)
		if err != nil {
			continue
		}

		score := s.scoreFor(child, player, depth-1, alpha, infinity)

		if s.aborted {
			return rootScores{}, false
		}

		// Strictly greater: the earliest move wins ties.
		if score > result.score {
			result = rootScores{best: i, score: score}
		}

		if score > alpha {
			alpha = score
		}
	}

	s.tt.store(b, moves[result.best].Index())
	return result, true
}
