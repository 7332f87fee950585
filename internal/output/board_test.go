package output

import (
	"bytes"
	"testing"

	"github.com/lgbarn/chess-cli-go/internal/config"
	"github.com/lgbarn/chess-cli-go/internal/engine"
	"github.com/lgbarn/chess-cli-go/internal/testutil"
)

func plainDisplay() *config.DisplayConfig {
	return &config.DisplayConfig{}
}

func TestBoardRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	NewBoardRenderer(&buf, plainDisplay()).Render(testutil.MustParseBoard(t, ""))

	want := "" +
		"8 r n b q k b n r\n" +
		"7 p p p p p p p p\n" +
		"6 . . . . . . . .\n" +
		"5 . . . . . . . .\n" +
		"4 . . . . . . . .\n" +
		"3 . . . . . . . .\n" +
		"2 P P P P P P P P\n" +
		"1 R N B Q K B N R\n" +
		"  a b c d e f g h\n"
	testutil.AssertEqual(t, buf.String(), want)
}

func TestBoardRenderer_Flip(t *testing.T) {
	var buf bytes.Buffer
	display := plainDisplay()
	display.Flip = true
	NewBoardRenderer(&buf, display).Render(testutil.MustParseBoard(t, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1"))

	want := "" +
		"1 . . . K . . . R\n" +
		"2 . . . . . . . .\n" +
		"3 . . . . . . . .\n" +
		"4 . . . . . . . .\n" +
		"5 . . . . . . . .\n" +
		"6 . . . . . . . .\n" +
		"7 . . . . . . . .\n" +
		"8 . . . k . . . .\n" +
		"  h g f e d c b a\n"
	testutil.AssertEqual(t, buf.String(), want)
}

func TestBoardRenderer_Unicode(t *testing.T) {
	var buf bytes.Buffer
	display := plainDisplay()
	display.Unicode = true
	NewBoardRenderer(&buf, display).Render(testutil.MustParseBoard(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1"))

	testutil.AssertContains(t, buf.String(), "8 . . . . ♚ . . .\n")
	testutil.AssertContains(t, buf.String(), "1 . . . . ♔ . . .\n")
}

func TestBoardRenderer_Colour(t *testing.T) {
	var buf bytes.Buffer
	display := plainDisplay()
	display.Colour = true
	NewBoardRenderer(&buf, display).Render(testutil.MustParseBoard(t, ""))

	testutil.AssertContains(t, buf.String(), "\x1b[")
	testutil.AssertNotContains(t, buf.String(), " . ", "coloured squares need no dots")
}

func TestBoardRenderer_RenderStatus(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves string
		eval  *engine.Evaluation
		want  string
	}{
		{"white to move", "", "", nil, "White to move\n"},
		{"black to move", "", "e2e4", nil, "Black to move\n"},
		{"check", "", "e2e4 f7f6 d1h5", nil, "Black to move\nCheck!\n"},
		{"checkmate", "", testutil.ScholarsMate, nil, "Checkmate. White wins.\n"},
		{"stalemate", "k7/2Q5/1K6/8/8/8/8/8 b - - 0 1", "", nil, "Stalemate. The game is drawn.\n"},
		{"fifty moves", "4k3/8/8/8/8/8/8/R3K3 w - - 100 80", "", nil, "Draw by fifty-move rule.\n"},
		{"insufficient material", "4k3/8/8/8/8/8/8/4KB2 w - - 0 1", "", nil, "Draw by insufficient material.\n"},
		{"evaluation", "", "", &engine.Evaluation{Score: 35, Depth: 12}, "White to move\nEval: +0.35 (depth 12)\n"},
		{"mate score", "", "", &engine.Evaluation{IsMate: true, MateIn: -3, Depth: 20}, "White to move\nEval: -M3 (depth 20)\n"},
		{"empty evaluation hidden", "", "", &engine.Evaluation{}, "White to move\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			board := testutil.BoardAfter(t, tt.fen, tt.moves)
			NewBoardRenderer(&buf, plainDisplay()).RenderStatus(board, tt.eval)
			testutil.AssertEqual(t, buf.String(), tt.want)
		})
	}
}
