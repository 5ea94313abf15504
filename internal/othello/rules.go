package othello

import (
	"fmt"
	"math/bits"
)

// legalMask returns a bitset of all legal moves of player.
func legalMask(b Board, player Color) uint64 {
	own, opp := b.Bitboards(player)
	return moveMask(own, opp)
}

// LegalMoves returns all legal moves of player in row-major order.
// An empty result means the player cannot move, which is not an error.
func LegalMoves(b Board, player Color) []Move {
	if !player.IsPlayer() {
		return nil
	}

	mask := legalMask(b, player)
	moves := make([]Move, 0, bits.OnesCount64(mask))

	squares(mask, func(i int) {
		moves = append(moves, NewMove(i, player))
	})

	return moves
}

// LegalMoveMask returns the legal moves of player as a bitset indexed by row*8+col.
func LegalMoveMask(b Board, player Color) uint64 {
	if !player.IsPlayer() {
		return 0
	}
	return legalMask(b, player)
}

// Mobility returns the number of legal moves of player.
func Mobility(b Board, player Color) int {
	return bits.OnesCount64(LegalMoveMask(b, player))
}

// HasMoves returns whether player has at least one legal move.
func HasMoves(b Board, player Color) bool {
	return LegalMoveMask(b, player) != 0
}

// IsLegal returns whether move is a legal move on b.
func IsLegal(b Board, move Move) bool {
	if !move.Player.IsPlayer() || !onBoard(move.Row, move.Col) {
		return false
	}
	return legalMask(b, move.Player)&(uint64(1)<<move.Index()) != 0
}

// Flips returns the discs that player would flip by playing at row, col as a bitset.
// The result is zero for occupied squares and for squares that are not legal moves.
func Flips(b Board, player Color, row, col int) uint64 {
	if !player.IsPlayer() || !onBoard(row, col) {
		return 0
	}
	own, opp := b.Bitboards(player)
	return flipped(own, opp, index(row, col))
}

// ApplyMove places a disc, flips the bounded runs of opponent discs and hands the turn over.
// If the opponent cannot move afterwards but the mover can, the mover keeps the turn.
func ApplyMove(b Board, move Move) (Board, error) {
	if !move.Player.IsPlayer() {
		return Board{}, fmt.Errorf("%w: player must be dark or light", ErrInvalidMove)
	}

	if !onBoard(move.Row, move.Col) {
		return Board{}, fmt.Errorf("%w: (%d, %d) is off the board", ErrInvalidMove, move.Row, move.Col)
	}

	own, opp := b.Bitboards(move.Player)

	if moveMask(own, opp) == 0 {
		return Board{}, fmt.Errorf("%w for %s", ErrNoLegalMoves, move.Player)
	}

	i := move.Index()
	bit := uint64(1) << i

	if (own|opp)&bit != 0 {
		return Board{}, fmt.Errorf("%w: %s is occupied", ErrInvalidMove, move)
	}

	flips := flipped(own, opp, i)
	if flips == 0 {
		return Board{}, fmt.Errorf("%w: %s flips no discs for %s", ErrInvalidMove, move, move.Player)
	}

	next := b.withDiscs(move.Player, own|bit|flips, opp&^flips)
	next.moveCount++

	opponent := move.Player.Opponent()
	next.turn = opponent

	if !HasMoves(next, opponent) && HasMoves(next, move.Player) {
		next.turn = move.Player
	}

	return next, nil
}

// Pass hands the turn to the opponent without changing the grid.
// It is only allowed when the player to move has no legal moves.
func Pass(b Board) (Board, error) {
	if HasMoves(b, b.turn) {
		return Board{}, fmt.Errorf("%w: %s cannot pass while having legal moves", ErrInvalidMove, b.turn)
	}

	b.turn = b.turn.Opponent()
	return b, nil
}

// IsTerminal returns whether neither player has a legal move.
func IsTerminal(b Board) bool {
	own, opp := b.Bitboards(Dark)
	return moveMask(own, opp) == 0 && moveMask(opp, own) == 0
}

// Score returns the number of dark and light discs.
func Score(b Board) (dark, light int) {
	own, opp := b.Bitboards(Dark)
	return bits.OnesCount64(own), bits.OnesCount64(opp)
}

// Winner returns the color with strictly more discs. The boolean is false on a draw.
func Winner(b Board) (Color, bool) {
	dark, light := Score(b)

	switch {
	case dark > light:
		return Dark, true
	case light > dark:
		return Light, true
	default:
		return Empty, false
	}
}
