package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/reversi/internal/eval"
	"github.com/lk16/reversi/internal/othello"
)

func main() {
	boardFile := flag.String("file", "", "the board file to show")
	boardString := flag.String("board", "", "the board to show, in grid format")
	flag.Parse()

	text := *boardString
	if *boardFile != "" {
		data, err := os.ReadFile(*boardFile)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		text = string(data)
	}

	board, err := othello.DecodeGrid(text)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	board.Print()

	dark, light := othello.Score(board)
	fmt.Printf("dark %d - %d light, %s to move, %d moves played\n", dark, light, board.Turn(), board.MoveCount())
	fmt.Printf("legal moves: %v\n", othello.LegalMoves(board, board.Turn()))
	fmt.Printf("heuristic for %s: %d\n", board.Turn(), eval.New(eval.DefaultConfig()).Heuristic(board, board.Turn()))
	fmt.Printf("key: %s\n", board.Key())
}
