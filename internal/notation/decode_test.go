package notation

import (
	"errors"
	"testing"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	chesserrors "github.com/lgbarn/chess-cli-go/internal/errors"
	"github.com/lgbarn/chess-cli-go/internal/testutil"
)

func TestDecodeMove(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves string
		text  string
		want  string
	}{
		{"pawn push", "", "", "e4", "e2e4"},
		{"pawn single", "", "", "e3", "e2e3"},
		{"knight", "", "", "Nf3", "g1f3"},
		{"coordinate", "", "", "g1f3", "g1f3"},
		{"coordinate with dash", "", "", "e2-e4", "e2e4"},
		{"check suffix", "", "e2e4 e7e5 d1h5 b8c6", "Qxf7+", "h5f7"},
		{"mate suffix", "", "e2e4 e7e5 f1c4 b8c6 d1h5 g8f6", "Qxf7#", "h5f7"},
		{"annotation glyphs", "", "", "e4!?", "e2e4"},
		{"pawn capture", "", "e2e4 d7d5", "exd5", "e4d5"},
		{"pawn capture short form", "", "e2e4 d7d5", "ed", "e4d5"},
		{"pawn capture colon", "", "e2e4 d7d5", "e:d5", "e4d5"},
		{"en passant", "", "e2e4 a7a6 e4e5 d7d5", "exd6", "e5d6"},
		{"en passant suffix", "", "e2e4 a7a6 e4e5 d7d5", "exd6ep", "e5d6"},
		{"kingside castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "", "O-O", "e1g1"},
		{"queenside castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "", "O-O-O", "e1c1"},
		{"castle with zeros", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "", "0-0-0", "e8c8"},
		{"castle coordinate", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "", "e1g1", "e1g1"},
		{"promotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "", "a8=N", "a7a8n"},
		{"promotion without equals", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "", "a8R", "a7a8r"},
		{"promotion defaults to queen", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "", "a8", "a7a8q"},
		{"coordinate promotion defaults to queen", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "", "a7a8", "a7a8q"},
		{"capture promotion", "1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1", "", "axb8=Q+", "a7b8q"},
		{"file disambiguation", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "", "Nbd2", "b1d2"},
		{"rank disambiguation", "4k3/R7/8/8/8/8/8/R3K3 w - - 0 1", "", "R1a4", "a1a4"},
		{"square disambiguation", "4k3/8/8/8/Q6Q/8/8/Q3K3 w - - 0 1", "", "Qa4d1", "a4d1"},
		{"disambiguated capture", "4k3/8/8/3p4/8/2N1N3/8/4K3 w - - 0 1", "", "Ncxd5", "c3d5"},
		{"rank disambiguated capture", "3rk3/8/8/8/8/8/8/3RK2R w - - 0 1", "", "R1xd8+", "d1d8"},
		{"disambiguation not needed but given", "", "", "Ngf3", "g1f3"},
		{"leading spaces", "", "", "  Nc3 ", "b1c3"},
		{"lowercase knight", "", "", "nf3", "g1f3"},
		{"lowercase queen capture", "", "e2e4 e7e5 d1h5 b8c6", "qxf7+", "h5f7"},
		{"lowercase castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "", "o-o", "e1g1"},
		{"b-pawn before bishop", "", "", "b4", "b2b4"},
		{"lowercase bishop", "", "e2e4 e7e5", "bc4", "f1c4"},
		{"b-file pawn capture before bishop", "4k3/8/8/8/8/2p5/1P6/2B1K3 w - - 0 1", "", "bxc3", "b2c3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.BoardAfter(t, tt.fen, tt.moves)
			got, err := DecodeMove(board, tt.text)
			testutil.AssertNoError(t, err, "DecodeMove(%q)", tt.text)
			testutil.AssertEqual(t, got.UCI(), tt.want, "DecodeMove(%q)", tt.text)
		})
	}
}

func TestDecodeMove_Flags(t *testing.T) {
	board := testutil.BoardAfter(t, "", "e2e4 a7a6 e4e5 d7d5")

	got, err := DecodeMove(board, "e5d6")
	testutil.AssertNoError(t, err)
	want := chess.NewMove(chess.MustParseSquare("e5"), chess.MustParseSquare("d6"), chess.NoPieceKind).
		WithCapture().WithEnPassant()
	testutil.AssertEqual(t, got, want)
}

func TestDecodeMove_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		text    string
		wantErr error
		column  int
	}{
		{"empty", "", "", chesserrors.ErrParseFailure, 0},
		{"blank", "", "   ", chesserrors.ErrParseFailure, 0},
		{"junk", "", "hello", chesserrors.ErrParseFailure, 3},
		{"lowercase piece with no legal move", "", "nd4", chesserrors.ErrParseFailure, 1},
		{"piece without square", "", "N", chesserrors.ErrParseFailure, 2},
		{"bad rank", "", "e9", chesserrors.ErrParseFailure, 2},
		{"trailing junk", "", "e4zz", chesserrors.ErrParseFailure, 3},
		{"pawn capture far file", "", "exg5", chesserrors.ErrParseFailure, 0},
		{"half castle", "", "O-", chesserrors.ErrParseFailure, 3},
		{"bad promotion", "4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a8=K", chesserrors.ErrParseFailure, 4},
		{"illegal pawn push", "", "e5", chesserrors.ErrIllegalMove, 0},
		{"illegal knight", "", "Nd4", chesserrors.ErrIllegalMove, 0},
		{"king step is not castling", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "Kg1", chesserrors.ErrIllegalMove, 0},
		{"castle without right", "r3k2r/8/8/8/8/8/8/R3K2R w kq - 0 1", "O-O", chesserrors.ErrIllegalMove, 0},
		{"promotion on an ordinary push", "", "e4=Q", chesserrors.ErrIllegalMove, 0},
		{"ambiguous knight", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "Nd2", chesserrors.ErrAmbiguousMove, 0},
		{"ambiguous rook", "4k3/R7/8/8/8/8/8/R3K3 w - - 0 1", "Ra4", chesserrors.ErrAmbiguousMove, 0},
		{"opponent move", "", "e7e5", chesserrors.ErrIllegalMove, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustParseBoard(t, tt.fen)
			_, err := DecodeMove(board, tt.text)
			testutil.AssertErrorIs(t, err, tt.wantErr, "DecodeMove(%q)", tt.text)

			if tt.wantErr == chesserrors.ErrParseFailure {
				var pe *chesserrors.ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("DecodeMove(%q) error %T, want *ParseError", tt.text, err)
				}
				if tt.column > 0 && pe.Column != tt.column {
					t.Errorf("DecodeMove(%q) column = %d, want %d", tt.text, pe.Column, tt.column)
				}
				return
			}

			var me *chesserrors.MoveError
			if !errors.As(err, &me) {
				t.Fatalf("DecodeMove(%q) error %T, want *MoveError", tt.text, err)
			}
			testutil.AssertEqual(t, me.MoveText, tt.text)
			testutil.AssertEqual(t, me.PlyNum, 1)
		})
	}
}
