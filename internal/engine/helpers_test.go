package engine

import (
	"sort"
	"strings"
	"testing"

	"github.com/lgbarn/chess-cli-go/internal/chess"
)

// mustBoard parses fen or fails the test.
func mustBoard(t testing.TB, fen string) *chess.Board {
	t.Helper()
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) error: %v", fen, err)
	}
	return board
}

// playMoves applies space-separated coordinate moves.
func playMoves(t testing.TB, board *chess.Board, moves string) {
	t.Helper()
	for _, text := range strings.Fields(moves) {
		m, err := chess.ParseUCIMove(text)
		if err != nil {
			t.Fatalf("ParseUCIMove(%q) error: %v", text, err)
		}
		if err := ApplyMove(board, m); err != nil {
			t.Fatalf("ApplyMove(%q) error: %v", text, err)
		}
	}
}

// uciMoves renders moves in coordinate form, sorted.
func uciMoves(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.UCI()
	}
	sort.Strings(out)
	return out
}

// perft counts leaf nodes of the legal move tree to the given depth.
func perft(board *chess.Board, depth int) int {
	if depth == 0 {
		return 1
	}
	moves := LegalMoves(board)
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, m := range moves {
		child := board.Snapshot()
		makeMove(child, m)
		nodes += perft(child, depth-1)
	}
	return nodes
}
