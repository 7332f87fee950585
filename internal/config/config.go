// Package config provides configuration for chess-cli.
package config

import (
	"io"
	"os"
)

// OutputFormat represents the notation used for the saved move record.
type OutputFormat int

const (
	SAN  OutputFormat = iota // Standard Algebraic Notation
	LALG                     // Long algebraic (e2e4)
	HALG                     // Hyphenated long algebraic (e2-e4)
	UCI                      // UCI coordinate format
)

// TagOutputForm specifies which tags to output.
type TagOutputForm int

const (
	AllTags        TagOutputForm = 0
	SevenTagRoster TagOutputForm = 1
	NoTags         TagOutputForm = 2
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=errors only, 1=status, 2=protocol trace

	Engine  *EngineConfig
	Display *DisplayConfig
	Game    *GameConfig
	Output  *OutputConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Engine:     NewEngineConfig(),
		Display:    NewDisplayConfig(),
		Game:       NewGameConfig(),
		Output:     NewOutputConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the stream the board and move record are written to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the diagnostics stream.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Validate checks every section of the configuration.
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.Game.Validate(); err != nil {
		return err
	}
	return c.Output.Validate()
}
