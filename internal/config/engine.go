package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chess-cli-go/internal/errors"
)

// Engine defaults.
const (
	DefaultEnginePath       = "stockfish"
	DefaultMoveTime         = time.Second
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultReplyGrace       = 5 * time.Second
)

// EngineConfig holds settings for the external UCI engine.
type EngineConfig struct {
	// Path is the engine executable, looked up on PATH when not absolute
	Path string

	// Args are passed to the engine on the command line
	Args []string

	// MoveTime is the search time requested for every engine move
	MoveTime time.Duration

	// HandshakeTimeout bounds the uci/isready exchange at startup
	HandshakeTimeout time.Duration

	// ReplyGrace is how long past MoveTime to wait for bestmove
	ReplyGrace time.Duration

	// Options are sent as setoption commands after the handshake
	Options map[string]string
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		Path:             DefaultEnginePath,
		MoveTime:         DefaultMoveTime,
		HandshakeTimeout: DefaultHandshakeTimeout,
		ReplyGrace:       DefaultReplyGrace,
		Options:          make(map[string]string),
	}
}

// Validate checks that the engine configuration is usable.
func (e *EngineConfig) Validate() error {
	if e.Path == "" {
		return fmt.Errorf("engine path is empty: %w", errors.ErrInvalidConfig)
	}
	if e.MoveTime <= 0 {
		return fmt.Errorf("move time %v must be positive: %w", e.MoveTime, errors.ErrInvalidConfig)
	}
	if e.HandshakeTimeout <= 0 {
		return fmt.Errorf("handshake timeout %v must be positive: %w", e.HandshakeTimeout, errors.ErrInvalidConfig)
	}
	if e.ReplyGrace < 0 {
		return fmt.Errorf("reply grace %v is negative: %w", e.ReplyGrace, errors.ErrInvalidConfig)
	}
	return nil
}
