package search

import (
	"fmt"
	"time"

	"github.com/lk16/reversi/internal/othello"
)

// Status tells how a search ended.
type Status int

const (
	// StatusCompleted means every requested depth was searched, or deeper search could not change the result.
	StatusCompleted Status = iota

	// StatusDeadlineReached means the time budget ran out. The result comes from the last completed depth.
	StatusDeadlineReached
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusDeadlineReached:
		return "deadline_reached"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of a search.
type Result struct {
	// Move is the selected move.
	Move othello.Move

	// Depth is the deepest fully completed search depth.
	Depth int

	// Score is the evaluation of Move at Depth, from the searching player's point of view.
	Score int

	// Nodes is the number of visited nodes, over all depths.
	Nodes uint64

	// Elapsed is the wall-clock duration of the search.
	Elapsed time.Duration

	// Status tells if the search was cut short.
	Status Status
}

// NodesPerSecond returns the search speed.
func (r Result) NodesPerSecond() int64 {
	seconds := r.Elapsed.Seconds()
	if seconds < 0.000001 {
		return 0
	}
	return int64(float64(r.Nodes) / seconds)
}
