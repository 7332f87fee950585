package testutil

import (
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/engine"
)

// Common test positions.
const (
	// KiwipeteFEN is a middlegame position rich in castling, pins and en
	// passant, widely used for move generator checks.
	KiwipeteFEN = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	// ScholarsMate is the coordinate move list of the four-move mate.
	ScholarsMate = "e2e4 e7e5 f1c4 b8c6 d1h5 g8f6 h5f7"
)

// ParseTestBoard parses a FEN string and returns the board, or nil if the
// FEN is invalid. An empty string yields the initial position.
func ParseTestBoard(fen string) *chess.Board {
	if fen == "" {
		return engine.NewInitialBoard()
	}
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil
	}
	return board
}

// MustParseBoard parses a FEN string and returns the board.
// It calls t.Fatal if the FEN is invalid.
func MustParseBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board := ParseTestBoard(fen)
	if board == nil {
		t.Fatalf("invalid test FEN: %q", fen)
	}
	return board
}

// MustParseMoves parses space-separated coordinate moves.
// It calls t.Fatal on the first malformed one.
func MustParseMoves(t *testing.T, moves string) []chess.Move {
	t.Helper()
	var out []chess.Move
	for _, text := range strings.Fields(moves) {
		m, err := chess.ParseUCIMove(text)
		if err != nil {
			t.Fatalf("invalid test move %q: %v", text, err)
		}
		out = append(out, m)
	}
	return out
}

// MustPlayMoves applies space-separated coordinate moves to board.
// It calls t.Fatal on the first illegal one.
func MustPlayMoves(t *testing.T, board *chess.Board, moves string) {
	t.Helper()
	for _, m := range MustParseMoves(t, moves) {
		if err := engine.ApplyMove(board, m); err != nil {
			t.Fatalf("test move %s: %v", m, err)
		}
	}
}

// BoardAfter returns the board reached by playing moves from fen.
func BoardAfter(t *testing.T, fen, moves string) *chess.Board {
	t.Helper()
	board := MustParseBoard(t, fen)
	MustPlayMoves(t, board, moves)
	return board
}

// AssertFEN fails if the board's FEN differs from want.
func AssertFEN(t *testing.T, board *chess.Board, want string) {
	t.Helper()
	if got := engine.BoardToFEN(board); got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}
}

// IgnoreHistory compares boards by position only. Boards built from FEN
// and boards reached by play differ in their repetition history.
var IgnoreHistory = cmpopts.IgnoreFields(chess.Board{}, "History")

// AssertSameBoard fails if the boards differ in anything but History.
func AssertSameBoard(t *testing.T, got, want *chess.Board) {
	t.Helper()
	if diff := cmp.Diff(want, got, IgnoreHistory); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

// AssertMoves fails unless got holds exactly the space-separated
// coordinate moves of want, in any order.
func AssertMoves(t *testing.T, got []chess.Move, want string) {
	t.Helper()
	texts := make([]string, len(got))
	for i, m := range got {
		texts[i] = m.UCI()
	}
	wantTexts := strings.Fields(want)
	sort.Strings(texts)
	sort.Strings(wantTexts)
	if diff := cmp.Diff(wantTexts, texts, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}
