package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/config"
	"github.com/lgbarn/chess-cli-go/internal/errors"
	"github.com/lgbarn/chess-cli-go/internal/testutil"
)

// parseTestGame is a helper that parses a PGN string and returns the record.
func parseTestGame(t *testing.T, pgn string) *Record {
	t.Helper()
	p := NewParser(strings.NewReader(pgn), config.NewConfig())
	rec, err := p.ParseGame()
	if err != nil {
		t.Fatalf("ParseGame error: %v", err)
	}
	if rec == nil {
		t.Fatal("Expected game, got nil")
	}
	return rec
}

func TestParseSimpleGame(t *testing.T) {
	pgn := `[Event "Test"]
[Site "?"]
[Date "2024.01.01"]
[Round "1"]
[White "Player1"]
[Black "Player2"]
[Result "1-0"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0
`

	rec := parseTestGame(t, pgn)
	testutil.AssertEqual(t, rec.Tags["Event"], "Test")
	testutil.AssertEqual(t, rec.Tags["White"], "Player1")
	testutil.AssertEqual(t, rec.Moves, []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"})
	testutil.AssertEqual(t, rec.Result, "1-0")
	testutil.AssertEqual(t, rec.Line, uint(1))
}

func TestParseAnnotatedGame(t *testing.T) {
	pgn := `[Event "Annotated"]
[Annotator "Someone \"quoted\""]
; a line comment
{Opening
 comment} 1. e4 $1 {best by test} e5!? 2. Nf3 (2. f4 exf4 (2... d5) 3. Nf3) 2... Nc6
% escaped line 3. d4
3. Bc4 *
`

	rec := parseTestGame(t, pgn)
	testutil.AssertEqual(t, rec.Tags["Annotator"], `Someone "quoted"`)
	testutil.AssertEqual(t, rec.Moves, []string{"e4", "e5!?", "Nf3", "Nc6", "Bc4"})
	testutil.AssertEqual(t, rec.Result, "*")
	testutil.AssertEqual(t, rec.Tags["Result"], "*", "result copied to a missing tag")
}

func TestParseMoveNumbersWithoutSpaces(t *testing.T) {
	rec := parseTestGame(t, "1.e4 e5 2.Nf3 2...Nc6 1/2-1/2")
	testutil.AssertEqual(t, rec.Moves, []string{"e4", "e5", "Nf3", "Nc6"})
	testutil.AssertEqual(t, rec.Result, "1/2-1/2")
}

func TestParseAllGames(t *testing.T) {
	pgn := `[Event "One"]

1. e4 1-0

[Event "Two"]

1. d4 d5 0-1
`
	records, err := NewParser(strings.NewReader(pgn), nil).ParseAllGames()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(records), 2)
	testutil.AssertEqual(t, records[1].Tags["Event"], "Two")
	testutil.AssertEqual(t, records[1].Moves, []string{"d4", "d5"})
	testutil.AssertEqual(t, records[1].Line, uint(5))
}

func TestParseEmptyInput(t *testing.T) {
	rec, err := NewParser(strings.NewReader("\n  \n"), nil).ParseGame()
	testutil.AssertNoError(t, err)
	testutil.AssertNil(t, rec)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		pgn  string
	}{
		{"unclosed variation", "1. e4 (1. d4 d5"},
		{"stray close", "1. e4 ) e5"},
		{"unterminated string", "1. e4 \"oops\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(strings.NewReader(tt.pgn), nil).ParseGame()
			testutil.AssertErrorIs(t, err, errors.ErrParseFailure)
		})
	}
}

func TestParseMissingTagString(t *testing.T) {
	var log strings.Builder
	cfg := config.NewConfig()
	cfg.SetLog(&log)

	rec, err := NewParser(strings.NewReader("[Event]\n1. e4 *\n"), cfg).ParseGame()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, rec.Moves, []string{"e4"})
	testutil.AssertContains(t, log.String(), "Missing tag string for Event.")
}

func TestReplay(t *testing.T) {
	rec := parseTestGame(t, `[White "A"]
[Black "B"]

1. e4 e5 2. Bc4 Nc6 3. Qh5 Nf6 4. Qxf7# 1-0`)

	game, board, err := Replay(rec)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, game.PlyCount(), 7)
	testutil.AssertEqual(t, game.White(), "A")
	testutil.AssertEqual(t, game.Result(), chess.WhiteWins)
	testutil.AssertFEN(t, board, "r1bqkb1r/pppp1Qpp/2n2n2/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4")
}

func TestReplay_FromFEN(t *testing.T) {
	rec := parseTestGame(t, `[SetUp "1"]
[FEN "4k3/P7/8/8/8/8/8/4K3 w - - 0 1"]

1. a8=Q+ Kd7 *`)

	game, board, err := Replay(rec)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, game.Moves[0].SAN, "a8=Q+")
	testutil.AssertFEN(t, board, "Q7/3k4/8/8/8/8/8/4K3 w - - 1 2")
}

func TestReplay_IllegalMove(t *testing.T) {
	rec := parseTestGame(t, "1. e4 e5 2. Ke3 *")
	_, _, err := Replay(rec)
	testutil.AssertErrorIs(t, err, errors.ErrIllegalMove)
}

func TestLoadGame(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.pgn")
	if err := os.WriteFile(path, []byte("[Event \"Saved\"]\n\n1. d4 Nf6 2. c4 *\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	game, board, err := LoadGame(path, config.NewConfig())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, game.GetTag("Event"), "Saved")
	testutil.AssertEqual(t, board.ToMove, chess.Black)
	testutil.AssertEqual(t, game.PlyCount(), 3)

	_, _, err = LoadGame(filepath.Join(dir, "missing.pgn"), config.NewConfig())
	testutil.AssertError(t, err)

	empty := filepath.Join(dir, "empty.pgn")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err = LoadGame(empty, config.NewConfig())
	testutil.AssertErrorIs(t, err, errors.ErrParseFailure)
}
