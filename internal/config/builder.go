package config

import (
	"io"
	"time"

	"github.com/lgbarn/chess-cli-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithEngine sets the engine executable and its arguments.
func (b *ConfigBuilder) WithEngine(path string, args ...string) *ConfigBuilder {
	b.cfg.Engine.Path = path
	b.cfg.Engine.Args = args
	return b
}

// WithMoveTime sets the engine search time per move.
func (b *ConfigBuilder) WithMoveTime(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.MoveTime = d
	return b
}

// WithTimeouts sets the handshake timeout and the bestmove grace period.
func (b *ConfigBuilder) WithTimeouts(handshake, grace time.Duration) *ConfigBuilder {
	b.cfg.Engine.HandshakeTimeout = handshake
	b.cfg.Engine.ReplyGrace = grace
	return b
}

// WithEngineOption adds a setoption sent after the handshake.
func (b *ConfigBuilder) WithEngineOption(name, value string) *ConfigBuilder {
	if b.cfg.Engine.Options == nil {
		b.cfg.Engine.Options = make(map[string]string)
	}
	b.cfg.Engine.Options[name] = value
	return b
}

// WithPlayer sets the human's side.
func (b *ConfigBuilder) WithPlayer(colour chess.Colour) *ConfigBuilder {
	b.cfg.Game.Player = colour
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.Game.StartFEN = fen
	return b
}

// WithResume continues the game saved in a PGN file.
func (b *ConfigBuilder) WithResume(path string) *ConfigBuilder {
	b.cfg.Game.ResumeFile = path
	return b
}

// WithColour controls ANSI colouring of the board.
func (b *ConfigBuilder) WithColour(enabled bool) *ConfigBuilder {
	b.cfg.Display.Colour = enabled
	return b
}

// WithFlip draws the board from Black's side.
func (b *ConfigBuilder) WithFlip(enabled bool) *ConfigBuilder {
	b.cfg.Display.Flip = enabled
	return b
}

// WithOutputFormat sets the record notation.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithMaxLineLength sets the maximum line length.
func (b *ConfigBuilder) WithMaxLineLength(length uint) *ConfigBuilder {
	b.cfg.Output.MaxLineLength = length
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.Output.JSONFormat = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the diagnostics writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
