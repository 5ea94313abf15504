package othello

import "errors"

var (
	// ErrInvalidMove is returned when a move is not legal for the stated player.
	ErrInvalidMove = errors.New("invalid move")

	// ErrInvalidBoardState is returned when a board cannot occur in a game or cannot be decoded.
	ErrInvalidBoardState = errors.New("invalid board state")

	// ErrNoLegalMoves is returned when a move is requested for a player that has none.
	ErrNoLegalMoves = errors.New("no legal moves")
)
