package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lk16/reversi/internal/eval"
	"github.com/lk16/reversi/internal/othello"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultCheckInterval is the number of nodes between two deadline checks.
	DefaultCheckInterval = 512

	// DefaultMaxDepth is the search depth used when none is given.
	DefaultMaxDepth = 8

	// DefaultTimeBudget is the wall-clock budget used when none is given.
	DefaultTimeBudget = 2 * time.Second
)

// ErrNoLegalMoves is returned by BestMove when the searching player has no move.
// It wraps othello.ErrNoLegalMoves, so either can be used with errors.Is.
var ErrNoLegalMoves = fmt.Errorf("search: %w", othello.ErrNoLegalMoves)

// Options configures an Engine.
type Options struct {
	// MaxDepth is the default maximum depth in plies for Search.
	MaxDepth int

	// TimeBudget is the default wall-clock budget for Search. Zero or less means no limit.
	TimeBudget time.Duration

	// Weights configures the evaluator.
	Weights eval.Config

	// Workers is the number of root moves searched concurrently. Values below 2 search sequentially.
	Workers int

	// CheckInterval is the number of nodes between two deadline checks.
	// A search overruns its deadline by at most this many node expansions per worker.
	CheckInterval int
}

// DefaultOptions returns the options used by the game presets unless overridden.
func DefaultOptions() Options {
	return Options{
		MaxDepth:      DefaultMaxDepth,
		TimeBudget:    DefaultTimeBudget,
		Weights:       eval.DefaultConfig(),
		Workers:       1,
		CheckInterval: DefaultCheckInterval,
	}
}

// Engine selects moves with iterative-deepening alpha-beta search.
// An Engine holds no per-search state and is safe for concurrent use.
type Engine struct {
	options   Options
	evaluator *eval.Evaluator
}

// NewEngine validates options and returns an Engine.
func NewEngine(options Options) (*Engine, error) {
	if err := options.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}

	if options.MaxDepth < 1 {
		options.MaxDepth = 1
	}

	if options.Workers < 1 {
		options.Workers = 1
	}

	if options.CheckInterval < 1 {
		options.CheckInterval = DefaultCheckInterval
	}

	return &Engine{
		options:   options,
		evaluator: eval.New(options.Weights),
	}, nil
}

// NewEngineMust is like NewEngine but panics on invalid options.
func NewEngineMust(options Options) *Engine {
	engine, err := NewEngine(options)
	if err != nil {
		panic(err)
	}
	return engine
}

// Options returns the options of the engine, with defaults applied.
func (e *Engine) Options() Options {
	return e.options
}

// Search is BestMove with the depth and time budget of the engine options.
func (e *Engine) Search(ctx context.Context, b othello.Board, player othello.Color) (Result, error) {
	return e.BestMove(ctx, b, player, e.options.MaxDepth, e.options.TimeBudget)
}

// BestMove searches depths 1 to maxDepth for player and returns the best move of the deepest
// completed depth. The search stops early when the time budget or ctx runs out, but depth 1
// always completes. A timeBudget of zero or less means no wall-clock limit.
func (e *Engine) BestMove(
	ctx context.Context,
	b othello.Board,
	player othello.Color,
	maxDepth int,
	timeBudget time.Duration,
) (Result, error) {
	start := time.Now()

	if !player.IsPlayer() {
		return Result{}, fmt.Errorf("%w: player %s", othello.ErrInvalidMove, player)
	}

	b = b.WithTurn(player)
	moves := othello.LegalMoves(b, player)

	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	if maxDepth < 1 {
		maxDepth = 1
	}

	orderMoves(moves)

	run := &run{
		engine:   e,
		board:    b,
		moves:    moves,
		deadline: newDeadline(ctx, timeBudget, start),
	}

	result := Result{Status: StatusCompleted}

	for depth := 1; depth <= maxDepth; depth++ {
		if depth > 1 && run.deadline.check() {
			result.Status = StatusDeadlineReached
			break
		}

		scores, ok := run.searchDepth(depth)
		if !ok {
			result.Status = StatusDeadlineReached
			break
		}

		best := run.moves[scores.best]
		result.Move = best
		result.Depth = depth
		result.Score = scores.score

		slog.Debug("Search depth completed",
			"depth", depth,
			"move", best.String(),
			"score", scores.score,
			"nodes", run.nodes(),
			"elapsed", time.Since(start),
		)

		// Every line reaches the end of the game, deeper searches give the same result.
		if depth >= b.Empties() {
			break
		}

		promote(run.moves, best.Index())
	}

	result.Nodes = run.nodes()
	result.Elapsed = time.Since(start)

	return result, nil
}

// run holds the state of one BestMove call.
type run struct {
	engine   *Engine
	board    othello.Board
	moves    []othello.Move
	deadline *deadline

	// sequential is used when the engine has one worker.
	sequential *searcher

	// perMove holds one searcher per root move square when searching in parallel.
	perMove map[int]*searcher
}

func (r *run) newSearcher() *searcher {
	return newSearcher(r.engine.evaluator, r.deadline, r.engine.options.CheckInterval)
}

func (r *run) searchDepth(depth int) (rootScores, bool) {
	if r.engine.options.Workers < 2 || len(r.moves) < 2 {
		if r.sequential == nil {
			r.sequential = r.newSearcher()
		}

		r.sequential.abortable = depth > 1
		return r.sequential.searchRoot(r.board, r.moves, depth)
	}

	return r.searchDepthParallel(depth)
}

var errAborted = errors.New("search aborted")

// searchDepthParallel searches each root move with a full window in its own goroutine.
// Scores are collected per position in the root order, so the selected move does not depend
// on which goroutine finishes first.
func (r *run) searchDepthParallel(depth int) (rootScores, bool) {
	if r.perMove == nil {
		r.perMove = make(map[int]*searcher, len(r.moves))
		for _, move := range r.moves {
			r.perMove[move.Index()] = r.newSearcher()
		}
	}

	player := r.board.Turn()
	scores := make([]int, len(r.moves))

	var group errgroup.Group
	group.SetLimit(r.engine.options.Workers)

	for i, move := range r.moves {
		s := r.perMove[move.Index()]
		s.abortable = depth > 1

		group.Go(func() error {
			child, err := othello.ApplyMove(r.board, move)
			if err != nil {
				return err
			}

			scores[i] = s.scoreFor(child, player, depth-1, -infinity, infinity)

			if s.aborted {
				return errAborted
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return rootScores{}, false
	}

	result := rootScores{best: 0, score: scores[0]}
	for i, score := range scores {
		if score > result.score {
			result = rootScores{best: i, score: score}
		}
	}

	return result, true
}

func (r *run) nodes() uint64 {
	var total uint64

	if r.sequential != nil {
		total += r.sequential.nodes
	}

	for _, s := range r.perMove {
		total += s.nodes
	}

	return total
}
