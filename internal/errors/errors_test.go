package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrInvalidSquare", ErrInvalidSquare, ErrInvalidSquare},
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrMalformedMove", ErrMalformedMove, ErrMalformedMove},
		{"ErrAmbiguousMove", ErrAmbiguousMove, ErrAmbiguousMove},
		{"ErrParseFailure", ErrParseFailure, ErrParseFailure},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
		{"ErrEngineStart", ErrEngineStart, ErrEngineStart},
		{"ErrEngineHandshake", ErrEngineHandshake, ErrEngineHandshake},
		{"ErrEngineOutputClosed", ErrEngineOutputClosed, ErrEngineOutputClosed},
		{"ErrMalformedBestMove", ErrMalformedBestMove, ErrMalformedBestMove},
		{"ErrEngineTimeout", ErrEngineTimeout, ErrEngineTimeout},
		{"ErrEngineBusy", ErrEngineBusy, ErrEngineBusy},
		{"ErrEngineNoMove", ErrEngineNoMove, ErrEngineNoMove},
		{"ErrEngineClosed", ErrEngineClosed, ErrEngineClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

// TestSentinelErrors_Distinct verifies engine failure modes are not conflated.
func TestSentinelErrors_Distinct(t *testing.T) {
	engineErrs := []error{
		ErrEngineStart,
		ErrEngineHandshake,
		ErrEngineOutputClosed,
		ErrMalformedBestMove,
		ErrEngineTimeout,
	}
	for i, a := range engineErrs {
		for j, b := range engineErrs {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to parse position: %w", ErrInvalidFEN)

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Errorf("errors.Is(wrapped, ErrInvalidFEN) = false, want true")
	}
}

// TestMoveError_Error verifies the error message format
func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:      ErrIllegalMove,
				PlyNum:   12,
				MoveText: "e1g1",
				FEN:      "4k3/8/8/8/8/8/8/4K2R w - - 0 1",
			},
			contains: []string{"ply 12", "e1g1", "4k3/8", "illegal move"},
		},
		{
			name: "minimal context",
			err: &MoveError{
				Err: ErrIllegalMove,
			},
			contains: []string{"illegal move"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestMoveError_Unwrap verifies that MoveError properly implements Unwrap
func TestMoveError_Unwrap(t *testing.T) {
	moveErr := &MoveError{
		Err:      ErrIllegalMove,
		MoveText: "e2e5",
	}

	unwrapped := errors.Unwrap(moveErr)
	if !errors.Is(unwrapped, ErrIllegalMove) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrIllegalMove)
	}

	if !errors.Is(moveErr, ErrIllegalMove) {
		t.Error("errors.Is(moveErr, ErrIllegalMove) = false, want true")
	}
}

// TestMoveError_As verifies that errors.As works with MoveError
func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{
		Err:      ErrIllegalMove,
		PlyNum:   24,
		MoveText: "O-O-O",
	}

	wrapped := fmt.Errorf("applying engine move: %w", moveErr)

	var extractedErr *MoveError
	if !errors.As(wrapped, &extractedErr) {
		t.Fatal("errors.As() could not extract MoveError")
	}

	if extractedErr.PlyNum != 24 {
		t.Errorf("extractedErr.PlyNum = %d, want 24", extractedErr.PlyNum)
	}
	if extractedErr.MoveText != "O-O-O" {
		t.Errorf("extractedErr.MoveText = %q, want %q", extractedErr.MoveText, "O-O-O")
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Err:      ErrParseFailure,
		Input:    "Nz9",
		Column:   2,
		Expected: "destination square",
		Got:      "z9",
	}

	msg := err.Error()

	for _, want := range []string{"Nz9", "column 2", "expected destination square, got z9", "parse failure"} {
		if !containsIgnoreCase(msg, want) {
			t.Errorf("ParseError.Error() = %q, should contain %q", msg, want)
		}
	}
}

// TestParseError_Unwrap verifies ParseError implements Unwrap
func TestParseError_Unwrap(t *testing.T) {
	parseErr := &ParseError{
		Err:   ErrInvalidSquare,
		Input: "i9",
	}

	if !errors.Is(parseErr, ErrInvalidSquare) {
		t.Error("errors.Is(parseErr, ErrInvalidSquare) = false, want true")
	}
}

func TestParseError_Empty(t *testing.T) {
	if got := (&ParseError{}).Error(); got != "parse error" {
		t.Errorf("ParseError{}.Error() = %q, want %q", got, "parse error")
	}
}

func TestEngineError(t *testing.T) {
	cause := fmt.Errorf("%w: exec: not found", ErrEngineStart)
	err := &EngineError{Op: "start", Path: "/usr/bin/stockfish", Err: cause}

	msg := err.Error()
	if !strings.HasPrefix(msg, "engine /usr/bin/stockfish start: ") {
		t.Errorf("EngineError.Error() = %q, want prefix %q", msg, "engine /usr/bin/stockfish start: ")
	}
	if !errors.Is(err, ErrEngineStart) {
		t.Error("errors.Is(err, ErrEngineStart) = false, want true")
	}

	var engErr *EngineError
	wrapped := Wrap(err, "starting game")
	if !errors.As(wrapped, &engErr) || engErr.Op != "start" {
		t.Errorf("errors.As(wrapped, *EngineError) failed, got %v", engErr)
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	original := ErrInvalidFEN
	wrapped := Wrap(original, "parsing FEN string")

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "parsing FEN string") {
		t.Errorf("Wrap should include context, got %q", msg)
	}

	if Wrap(nil, "nothing") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	original := ErrIllegalMove
	wrapped := Wrapf(original, "move %d by %s", 15, "White")

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "move 15 by White") {
		t.Errorf("Wrapf should include formatted context, got %q", msg)
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
