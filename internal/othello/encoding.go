package othello

import (
	"fmt"
	"strconv"
	"strings"
)

// Grid symbols. The legacy symbols are used by save files that store the turn on the first line.
const (
	symbolEmpty = '.'
	symbolDark  = 'D'
	symbolLight = 'L'

	legacyEmpty = '*'
	legacyDark  = 'B'
	legacyLight = 'W'
)

func turnSymbol(c Color) byte {
	if c == Light {
		return symbolLight
	}
	return symbolDark
}

// EncodeGrid serializes a board as 8 rows of 8 symbols followed by a "<turn> <move count>" trailer.
func EncodeGrid(b Board) string {
	var sb strings.Builder
	sb.Grow((Size + 1) * (Size + 1))

	for row := range Size {
		for col := range Size {
			switch b.cell(index(row, col)) {
			case Dark:
				sb.WriteByte(symbolDark)
			case Light:
				sb.WriteByte(symbolLight)
			default:
				sb.WriteByte(symbolEmpty)
			}
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "%c %d\n", turnSymbol(b.turn), b.moveCount)
	return sb.String()
}

// DecodeGrid parses the output of EncodeGrid. It also accepts the legacy layout,
// which has the turn ("B" or "W") on the first line, uses '*', 'B' and 'W' as symbols and has no move count.
func DecodeGrid(s string) (Board, error) {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")

	// Trailing newlines are not part of the grid.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) > 0 && (lines[0] == string(legacyDark) || lines[0] == string(legacyLight)) {
		return decodeLegacy(lines)
	}

	if len(lines) != Size+1 {
		return Board{}, fmt.Errorf("%w: expected %d rows and a trailer, got %d lines", ErrInvalidBoardState, Size, len(lines))
	}

	cells, err := decodeRows(lines[:Size], symbolEmpty, symbolDark, symbolLight)
	if err != nil {
		return Board{}, err
	}

	turn, moveCount, err := decodeTrailer(lines[Size])
	if err != nil {
		return Board{}, err
	}

	return NewBoard(cells, turn, moveCount)
}

func decodeLegacy(lines []string) (Board, error) {
	if len(lines) != Size+1 {
		return Board{}, fmt.Errorf("%w: expected a turn line and %d rows, got %d lines", ErrInvalidBoardState, Size, len(lines))
	}

	turn := Dark
	if lines[0] == string(legacyLight) {
		turn = Light
	}

	cells, err := decodeRows(lines[1:], legacyEmpty, legacyDark, legacyLight)
	if err != nil {
		return Board{}, err
	}

	discs := 0
	for _, cell := range cells {
		if cell != Empty {
			discs++
		}
	}

	return NewBoard(cells, turn, discs-StartDiscs)
}

func decodeRows(rows []string, empty, dark, light byte) ([Squares]Color, error) {
	var cells [Squares]Color

	for row, line := range rows {
		if len(line) != Size {
			return cells, fmt.Errorf("%w: row %d has %d symbols, expected %d", ErrInvalidBoardState, row+1, len(line), Size)
		}

		for col := range Size {
			switch line[col] {
			case empty:
				cells[index(row, col)] = Empty
			case dark:
				cells[index(row, col)] = Dark
			case light:
				cells[index(row, col)] = Light
			default:
				return cells, fmt.Errorf("%w: unrecognized symbol %q in row %d", ErrInvalidBoardState, line[col], row+1)
			}
		}
	}

	return cells, nil
}

func decodeTrailer(line string) (Color, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Empty, 0, fmt.Errorf("%w: malformed trailer %q", ErrInvalidBoardState, line)
	}

	var turn Color
	switch fields[0] {
	case string(symbolDark):
		turn = Dark
	case string(symbolLight):
		turn = Light
	default:
		return Empty, 0, fmt.Errorf("%w: unrecognized turn %q", ErrInvalidBoardState, fields[0])
	}

	if !isMoveCount(fields[1]) {
		return Empty, 0, fmt.Errorf("%w: invalid move count %q", ErrInvalidBoardState, fields[1])
	}

	moveCount, err := strconv.Atoi(fields[1])
	if err != nil {
		return Empty, 0, fmt.Errorf("%w: invalid move count: %w", ErrInvalidBoardState, err)
	}

	return turn, moveCount, nil
}

// isMoveCount accepts decimal digits without sign or leading zeros.
func isMoveCount(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}

	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// MarshalText implements encoding.TextMarshaler using the grid format.
func (b Board) MarshalText() ([]byte, error) {
	return []byte(EncodeGrid(b)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using the grid format.
func (b *Board) UnmarshalText(text []byte) error {
	decoded, err := DecodeGrid(string(text))
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// String returns the grid encoding of the board.
func (b Board) String() string {
	return EncodeGrid(b)
}
