package search

import (
	"sort"

	"github.com/lk16/reversi/internal/eval"
	"github.com/lk16/reversi/internal/othello"
)

// squarePriority ranks squares for move ordering: corners first, then edges,
// squares next to corners last. Equal priorities keep row-major order.
var squarePriority = func() [othello.Squares]int {
	var priority [othello.Squares]int
	for i := range priority {
		priority[i] = eval.PositionWeight(i)
	}
	return priority
}()

// orderMoves sorts moves by static square priority. The sort is stable, so the
// result only depends on the input order, which is row-major for othello.LegalMoves.
func orderMoves(moves []othello.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return squarePriority[moves[i].Index()] > squarePriority[moves[j].Index()]
	})
}

// promote moves the move at square index to the front, keeping the order of the others.
func promote(moves []othello.Move, index int) {
	for i, move := range moves {
		if move.Index() != index {
			continue
		}

		copy(moves[1:i+1], moves[:i])
		moves[0] = move
		return
	}
}
