package othello

import (
	"fmt"
	"strings"
)

// Move is a disc placement by a player. It is only meaningful relative to a specific Board.
type Move struct {
	Row    int   `json:"row"`
	Col    int   `json:"col"`
	Player Color `json:"-"`
}

// NewMove creates a move from a square index.
func NewMove(index int, player Color) Move {
	return Move{Row: index / Size, Col: index % Size, Player: player}
}

// Index returns the square index of the move.
func (m Move) Index() int {
	return index(m.Row, m.Col)
}

// String returns the field notation of the move, e.g. "c4".
func (m Move) String() string {
	if !onBoard(m.Row, m.Col) {
		return "--"
	}
	return fieldName(m.Index())
}

func fieldName(index int) string {
	return fmt.Sprintf("%c%d", 'a'+index%Size, index/Size+1)
}

// ParseField converts field notation (e.g. "a1", "H8") to a row and column.
func ParseField(field string) (row, col int, err error) {
	if len(field) != 2 {
		return 0, 0, fmt.Errorf("invalid field length: %q", field)
	}

	field = strings.ToLower(field)

	if !('a' <= field[0] && field[0] <= 'h' && '1' <= field[1] && field[1] <= '8') {
		return 0, 0, fmt.Errorf("invalid field: %q", field)
	}

	col = int(field[0] - 'a')
	row = int(field[1] - '1')
	return row, col, nil
}
