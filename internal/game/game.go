package game

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/search"
)

var (
	// ErrGameOver is returned when a move is requested after the game ended.
	ErrGameOver = errors.New("game is over")

	// ErrNotAITurn is returned by PlayAI when the human is to move.
	ErrNotAITurn = errors.New("not the turn of the AI")

	// ErrNotHumanTurn is returned by Play when the AI is to move.
	ErrNotHumanTurn = errors.New("not the turn of the human player")

	// ErrNothingToUndo is returned by Undo when no human move was played yet.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Game is one human against the engine, either complete or in progress.
type Game struct {
	// boards holds the start board followed by the board after every move.
	boards []othello.Board

	// moves holds the placements in the order they were played.
	moves []othello.Move

	aiColor    othello.Color
	difficulty Difficulty
	engine     *search.Engine
}

// New creates a game starting at start. If the side to move is blocked on start, it passes.
// The engine uses base with the depth, time budget and weights of difficulty.
func New(start othello.Board, aiColor othello.Color, difficulty Difficulty, base search.Options) (*Game, error) {
	if !aiColor.IsPlayer() {
		return nil, fmt.Errorf("invalid AI color: %s", aiColor)
	}

	engine, err := search.NewEngine(difficulty.Options(base))
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	return &Game{
		boards:     []othello.Board{passIfBlocked(start)},
		aiColor:    aiColor,
		difficulty: difficulty,
		engine:     engine,
	}, nil
}

// passIfBlocked hands the turn to the opponent if the side to move has no moves but the game is not over.
func passIfBlocked(b othello.Board) othello.Board {
	if passed, err := othello.Pass(b); err == nil && !othello.IsTerminal(b) {
		return passed
	}
	return b
}

// Board returns the current board.
func (g *Game) Board() othello.Board {
	return g.boards[len(g.boards)-1]
}

// Start returns the board before any move was played.
func (g *Game) Start() othello.Board {
	return g.boards[0]
}

// Moves returns a copy of the played moves.
func (g *Game) Moves() []othello.Move {
	moves := make([]othello.Move, len(g.moves))
	copy(moves, g.moves)
	return moves
}

// AIColor returns the color played by the engine.
func (g *Game) AIColor() othello.Color {
	return g.aiColor
}

// HumanColor returns the color played by the human.
func (g *Game) HumanColor() othello.Color {
	return g.aiColor.Opponent()
}

// Difficulty returns the difficulty of the engine.
func (g *Game) Difficulty() Difficulty {
	return g.difficulty
}

// Turn returns the color to move.
func (g *Game) Turn() othello.Color {
	return g.Board().Turn()
}

// LegalMoves returns the legal moves of the side to move.
func (g *Game) LegalMoves() []othello.Move {
	board := g.Board()
	return othello.LegalMoves(board, board.Turn())
}

// IsOver returns whether neither side can move.
func (g *Game) IsOver() bool {
	return othello.IsTerminal(g.Board())
}

// AIToMove returns whether the engine should play next.
func (g *Game) AIToMove() bool {
	return !g.IsOver() && g.Turn() == g.aiColor
}

// Play plays a move for the human.
func (g *Game) Play(row, col int) (othello.Move, error) {
	if g.IsOver() {
		return othello.Move{}, ErrGameOver
	}

	if g.AIToMove() {
		return othello.Move{}, ErrNotHumanTurn
	}

	move := othello.Move{Row: row, Col: col, Player: g.Turn()}
	if err := g.push(move); err != nil {
		return othello.Move{}, err
	}

	return move, nil
}

// PlayField is like Play, but takes a field such as "d3".
func (g *Game) PlayField(field string) (othello.Move, error) {
	row, col, err := othello.ParseField(field)
	if err != nil {
		return othello.Move{}, fmt.Errorf("%w: %w", othello.ErrInvalidMove, err)
	}
	return g.Play(row, col)
}

// PlayAI lets the engine choose and play a move.
func (g *Game) PlayAI(ctx context.Context) (search.Result, error) {
	if g.IsOver() {
		return search.Result{}, ErrGameOver
	}

	if !g.AIToMove() {
		return search.Result{}, ErrNotAITurn
	}

	result, err := g.engine.Search(ctx, g.Board(), g.aiColor)
	if err != nil {
		return search.Result{}, fmt.Errorf("search failed: %w", err)
	}

	if err := g.push(result.Move); err != nil {
		return search.Result{}, err
	}

	return result, nil
}

func (g *Game) push(move othello.Move) error {
	board, err := othello.ApplyMove(g.Board(), move)
	if err != nil {
		return err
	}

	g.boards = append(g.boards, board)
	g.moves = append(g.moves, move)
	return nil
}

// Undo takes back the last human move together with the engine moves that followed it.
func (g *Game) Undo() error {
	last := -1
	for i, move := range g.moves {
		if move.Player != g.aiColor {
			last = i
		}
	}

	if last == -1 {
		return ErrNothingToUndo
	}

	g.moves = g.moves[:last]
	g.boards = g.boards[:last+1]
	return nil
}

// Summary is the disc count of a game.
type Summary struct {
	Dark   int
	Light  int
	Winner othello.Color
	Draw   bool
	Over   bool
}

// Summary counts the discs of the current board.
func (g *Game) Summary() Summary {
	board := g.Board()
	dark, light := othello.Score(board)
	winner, ok := othello.Winner(board)

	return Summary{
		Dark:   dark,
		Light:  light,
		Winner: winner,
		Draw:   !ok,
		Over:   g.IsOver(),
	}
}

// ResultText returns the board followed by the scores and the outcome.
func (g *Game) ResultText() string {
	summary := g.Summary()

	var builder strings.Builder
	builder.WriteString(othello.EncodeGrid(g.Board()))
	fmt.Fprintf(&builder, "dark score: %d\n", summary.Dark)
	fmt.Fprintf(&builder, "light score: %d\n", summary.Light)

	if summary.Draw {
		builder.WriteString("draw game\n")
	} else {
		fmt.Fprintf(&builder, "%s wins\n", summary.Winner)
	}

	return builder.String()
}
