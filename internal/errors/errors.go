// Package errors provides sentinel errors and error types for chess-cli.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidSquare indicates a coordinate or square name off the board.
	ErrInvalidSquare = errors.New("invalid square")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrMalformedMove indicates move text that is not valid coordinate notation.
	ErrMalformedMove = errors.New("malformed move")

	// ErrAmbiguousMove indicates move text matching more than one legal move.
	ErrAmbiguousMove = errors.New("ambiguous move")

	// ErrParseFailure indicates a general move-text parsing error.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEngineStart indicates the engine process could not be launched.
	ErrEngineStart = errors.New("engine failed to start")

	// ErrEngineHandshake indicates the engine output ended before the
	// expected handshake token arrived.
	ErrEngineHandshake = errors.New("engine handshake failed")

	// ErrEngineOutputClosed indicates the engine output ended before a reply.
	ErrEngineOutputClosed = errors.New("engine output closed")

	// ErrMalformedBestMove indicates a bestmove reply that could not be parsed.
	ErrMalformedBestMove = errors.New("malformed bestmove reply")

	// ErrEngineNoMove indicates the engine answered with no move in a
	// position that still has legal moves.
	ErrEngineNoMove = errors.New("engine found no move")

	// ErrEngineTimeout indicates the engine did not answer before the deadline.
	ErrEngineTimeout = errors.New("engine timed out")

	// ErrEngineBusy indicates a request was made while a search was running.
	ErrEngineBusy = errors.New("engine busy")

	// ErrEngineClosed indicates a request was made after the engine terminated.
	ErrEngineClosed = errors.New("engine closed")
)

// MoveError wraps errors with move context, including ply number, the move
// text and the position the move was tried in. It implements the error
// interface and supports unwrapping via errors.Is() and errors.As().
type MoveError struct {
	Err      error  // The underlying error
	PlyNum   int    // Ply number where error occurred (0 if not applicable)
	MoveText string // The move text that caused the error (if applicable)
	FEN      string // Position the move was applied to (if known)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.PlyNum > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.PlyNum))
	}

	if e.MoveText != "" {
		parts = append(parts, fmt.Sprintf("move %q", e.MoveText))
	}

	if e.FEN != "" {
		parts = append(parts, fmt.Sprintf("position %q", e.FEN))
	}

	context := strings.Join(parts, ", ")

	if e.Err != nil {
		if context == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	if context == "" {
		return "move error"
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a text parsing error with location context.
// It's used for squares, FEN strings and move text.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The text being parsed
	Column   int    // Column number (1-based, 0 if unknown)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Input != "" {
		loc := fmt.Sprintf("%q", e.Input)
		if e.Column > 0 {
			loc += fmt.Sprintf(" at column %d", e.Column)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// EngineError reports a failure talking to the engine process. Op names the
// protocol phase (start, handshake, search, newgame).
type EngineError struct {
	Op   string
	Path string
	Err  error
}

// Error returns a formatted error message.
func (e *EngineError) Error() string {
	msg := "engine"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Op != "" {
		msg += " " + e.Op
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
