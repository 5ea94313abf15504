package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
)

const (
	saveFile   = "reversi/save.txt"
	resultFile = "reversi/result.log"
)

func main() {
	config.SetLogLevel()

	difficultyName := flag.String("difficulty", "medium", "easy, medium, hard or custom (uses REVERSI_AI_* variables)")
	humanColor := flag.String("color", "dark", "the color you play, dark or light")
	resume := flag.Bool("resume", false, "continue from the saved board")
	boardFile := flag.String("board", "", "start from the board in this file")
	flag.Parse()

	ai := config.LoadAIConfig()

	lookup := game.Lookup(game.Difficulty{Depth: ai.Depth, TimeBudget: ai.TimeBudget, Weights: ai.Weights})

	difficulty, err := lookup(*difficultyName)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	human, err := othello.ParseColor(*humanColor)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	start := othello.NewBoardStart()

	switch {
	case *boardFile != "":
		start = loadBoard(*boardFile)
	case *resume:
		path, err := xdg.SearchDataFile(saveFile)
		if err != nil {
			fmt.Println("No saved game found, starting a new game.")
		} else {
			start = loadBoard(path)
		}
	}

	g, err := game.New(start, human.Opponent(), difficulty, ai.SearchOptions())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err = play(context.Background(), g, os.Stdin, os.Stdout); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadBoard reads a board file. Boards that cannot be read are replaced by the opening.
func loadBoard(path string) othello.Board {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Cannot read board file, starting from the opening", "path", path, "error", err)
		return othello.NewBoardStart()
	}

	board, err := othello.DecodeGrid(string(data))
	if err != nil {
		slog.Warn("Invalid board file, starting from the opening", "path", path, "error", err)
		return othello.NewBoardStart()
	}

	return board
}

// writeDataFile writes content to a file under the XDG data directory and returns its path.
func writeDataFile(relPath, content string) (string, error) {
	path, err := xdg.DataFile(relPath)
	if err != nil {
		return "", fmt.Errorf("cannot locate %s: %w", relPath, err)
	}

	if err = os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("cannot write %s: %w", filepath.Base(path), err)
	}

	return path, nil
}

func play(ctx context.Context, g *game.Game, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for !g.IsOver() {
		printBoard(out, g)

		if g.AIToMove() {
			result, err := g.PlayAI(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%s plays %s (depth %d, score %d, %d nodes, %d nodes/s)\n",
				result.Move.Player, result.Move, result.Depth, result.Score, result.Nodes, result.NodesPerSecond())
			continue
		}

		fmt.Fprintf(out, "%s to move. Enter a field, undo, save or quit: ", g.Turn())

		if !scanner.Scan() {
			return scanner.Err()
		}

		command := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(command) {
		case "":
			continue
		case "quit":
			return nil
		case "save":
			path, err := writeDataFile(saveFile, othello.EncodeGrid(g.Board()))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved to %s\n", path)
		case "undo":
			if err := g.Undo(); err != nil {
				fmt.Fprintln(out, err)
			}
		default:
			if _, err := g.PlayField(command); err != nil {
				if errors.Is(err, othello.ErrInvalidMove) {
					fmt.Fprintf(out, "%s is not a legal move\n", command)
					continue
				}
				return err
			}
		}
	}

	printBoard(out, g)

	result := g.ResultText()
	fmt.Fprint(out, result)

	path, err := writeDataFile(resultFile, result)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Result written to %s\n", path)
	return nil
}

func printBoard(out io.Writer, g *game.Game) {
	for _, line := range g.Board().ASCIIArtLines() {
		fmt.Fprintln(out, line)
	}

	summary := g.Summary()
	fmt.Fprintf(out, "dark %d - %d light\n", summary.Dark, summary.Light)
}
