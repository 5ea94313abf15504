package othello

import (
	"fmt"
	"math/bits"
)

const (
	// Size is the number of rows and columns of the board.
	Size = 8

	// Squares is the number of squares on the board.
	Squares = Size * Size

	// StartDiscs is the number of discs in the opening position.
	StartDiscs = 4
)

// Color is the content of a square or the identity of a player.
// Players are always Dark or Light, squares can also be Empty.
type Color uint8

const (
	Empty Color = iota
	Dark
	Light
)

// Opponent returns the other player. Empty has no opponent and returns Empty.
func (c Color) Opponent() Color {
	switch c {
	case Dark:
		return Light
	case Light:
		return Dark
	default:
		return Empty
	}
}

// IsPlayer returns whether c is Dark or Light.
func (c Color) IsPlayer() bool {
	return c == Dark || c == Light
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Dark:
		return "dark"
	case Light:
		return "light"
	default:
		return "empty"
	}
}

// ParseColor parses a color name as returned by Color.String.
func ParseColor(s string) (Color, error) {
	switch s {
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	default:
		return Empty, fmt.Errorf("unknown color %q", s)
	}
}

// centerMask holds the squares that are occupied in the opening and can never become empty.
const centerMask = uint64(1)<<27 | uint64(1)<<28 | uint64(1)<<35 | uint64(1)<<36

// Board is a snapshot of the game: the discs of both players, the player to move and the number of
// discs placed so far. Boards are values. No function in this package modifies a Board passed to it.
type Board struct {
	dark      uint64
	light     uint64
	turn      Color
	moveCount int
}

// NewBoardStart creates the canonical opening position with Dark to move.
func NewBoardStart() Board {
	return Board{
		dark:  uint64(1)<<index(3, 4) | uint64(1)<<index(4, 3),
		light: uint64(1)<<index(3, 3) | uint64(1)<<index(4, 4),
		turn:  Dark,
	}
}

// NewBoard creates a board from raw cells and checks that it can occur in a game.
func NewBoard(cells [Squares]Color, turn Color, moveCount int) (Board, error) {
	b := Board{turn: turn, moveCount: moveCount}

	for i, cell := range cells {
		switch cell {
		case Empty:
		case Dark:
			b.dark |= uint64(1) << i
		case Light:
			b.light |= uint64(1) << i
		default:
			return Board{}, fmt.Errorf("%w: square %d holds unknown value %d", ErrInvalidBoardState, i, cell)
		}
	}

	if err := b.validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

// NewBoardMust works like NewBoard but panics if the board is invalid.
func NewBoardMust(cells [Squares]Color, turn Color, moveCount int) Board {
	b, err := NewBoard(cells, turn, moveCount)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Board) validate() error {
	if !b.turn.IsPlayer() {
		return fmt.Errorf("%w: turn must be dark or light", ErrInvalidBoardState)
	}

	if missing := centerMask &^ (b.dark | b.light); missing != 0 {
		return fmt.Errorf("%w: center square %s is empty", ErrInvalidBoardState,
			fieldName(bits.TrailingZeros64(missing)))
	}

	discs := b.CountDiscs()
	if b.moveCount < 0 {
		return fmt.Errorf("%w: negative move count %d", ErrInvalidBoardState, b.moveCount)
	}

	if discs != StartDiscs+b.moveCount {
		return fmt.Errorf(
			"%w: %d discs is inconsistent with %d moves played",
			ErrInvalidBoardState, discs, b.moveCount,
		)
	}

	return nil
}

func index(row, col int) int {
	return row*Size + col
}

func onBoard(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

func (b Board) cell(i int) Color {
	bit := uint64(1) << i
	switch {
	case b.dark&bit != 0:
		return Dark
	case b.light&bit != 0:
		return Light
	default:
		return Empty
	}
}

// Cell returns the content of the square at row, col. Out of range coordinates are Empty.
func (b Board) Cell(row, col int) Color {
	if !onBoard(row, col) {
		return Empty
	}
	return b.cell(index(row, col))
}

// Cells returns the grid in row-major order.
func (b Board) Cells() [Squares]Color {
	var cells [Squares]Color
	for i := range cells {
		cells[i] = b.cell(i)
	}
	return cells
}

// Turn returns the player to move.
func (b Board) Turn() Color {
	return b.turn
}

// MoveCount returns the number of discs placed since the opening position.
func (b Board) MoveCount() int {
	return b.moveCount
}

// WithTurn returns a copy of the board with a different player to move.
func (b Board) WithTurn(turn Color) Board {
	b.turn = turn
	return b
}

// Bitboards returns the squares of player and of the opponent as bitsets.
// Both are zero if player is not Dark or Light.
func (b Board) Bitboards(player Color) (own, opp uint64) {
	switch player {
	case Dark:
		return b.dark, b.light
	case Light:
		return b.light, b.dark
	default:
		return 0, 0
	}
}

// withDiscs returns a copy of the board with the discs of player and the opponent replaced.
func (b Board) withDiscs(player Color, own, opp uint64) Board {
	if player == Dark {
		b.dark, b.light = own, opp
	} else {
		b.light, b.dark = own, opp
	}
	return b
}

// Count returns the number of squares with the given content.
func (b Board) Count(color Color) int {
	switch color {
	case Dark:
		return bits.OnesCount64(b.dark)
	case Light:
		return bits.OnesCount64(b.light)
	default:
		return b.Empties()
	}
}

// CountDiscs returns the number of discs on the board.
func (b Board) CountDiscs() int {
	return bits.OnesCount64(b.dark | b.light)
}

// Empties returns the number of empty squares.
func (b Board) Empties() int {
	return Squares - b.CountDiscs()
}

// Equal checks if two boards are equal.
func (b Board) Equal(other Board) bool {
	return b == other
}

// Key returns a compact string that identifies the grid and the player to move.
func (b Board) Key() string {
	own, opp := b.Bitboards(b.turn)
	return fmt.Sprintf("%016x%016x-%c", own, opp, turnSymbol(b.turn))
}

// Normalized is the symmetry-canonical form of a board, seen from the player to move.
type Normalized struct {
	Player   uint64
	Opponent uint64
}

// String returns the normalized position as hex.
func (n Normalized) String() string {
	return fmt.Sprintf("%016x%016x", n.Player, n.Opponent)
}

// Normalize returns the smallest of the 8 symmetric variants of the board
// and the symmetry that maps the board onto it.
func (b Board) Normalize() (Normalized, int) {
	own, opp := b.Bitboards(b.turn)

	best := Normalized{Player: own, Opponent: opp}
	symmetry := 0

	for s := 1; s < Symmetries; s++ {
		candidate := Normalized{Player: Transform(own, s), Opponent: Transform(opp, s)}

		if candidate.Player < best.Player ||
			(candidate.Player == best.Player && candidate.Opponent < best.Opponent) {
			best = candidate
			symmetry = s
		}
	}

	return best, symmetry
}

// ASCIIArtLines returns the ascii art lines for the board. Legal moves for the player to move are dotted.
func (b Board) ASCIIArtLines() []string {
	moves := legalMask(b, b.turn)
	lines := make([]string, Size+2)

	lines[0] = "+-a-b-c-d-e-f-g-h-+"
	for row := range Size {
		line := fmt.Sprintf("%d ", row+1)

		for col := range Size {
			i := index(row, col)

			switch cell := b.cell(i); {
			case cell == Light:
				line += "○ "
			case cell == Dark:
				line += "● "
			case moves&(uint64(1)<<i) != 0:
				line += "· "
			default:
				line += "  "
			}
		}

		lines[row+1] = line + "|"
	}

	lines[Size+1] = "+-----------------+"

	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b Board) Print() {
	for _, line := range b.ASCIIArtLines() {
		fmt.Println(line)
	}
}
