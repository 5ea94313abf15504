package search

import "github.com/lk16/reversi/internal/othello"

// defaultTableLimit caps the number of positions remembered during one search.
const defaultTableLimit = 1 << 18

// transpositionTable remembers the best move found for a position in an earlier iteration.
// It only influences move ordering, never scores, so it cannot change which move is selected.
// A table belongs to a single searcher and is not safe for concurrent use.
type transpositionTable struct {
	bestMoves map[othello.Board]int8
	limit     int
}

func newTranspositionTable(limit int) *transpositionTable {
	return &transpositionTable{
		bestMoves: make(map[othello.Board]int8),
		limit:     limit,
	}
}

// probe returns the remembered best move square for b.
func (tt *transpositionTable) probe(b othello.Board) (int, bool) {
	index, ok := tt.bestMoves[b]
	return int(index), ok
}

// store remembers the best move square for b. New positions are dropped once the table is full.
func (tt *transpositionTable) store(b othello.Board, index int) {
	if _, ok := tt.bestMoves[b]; !ok && len(tt.bestMoves) >= tt.limit {
		return
	}
	tt.bestMoves[b] = int8(index)
}

func (tt *transpositionTable) len() int {
	return len(tt.bestMoves)
}
