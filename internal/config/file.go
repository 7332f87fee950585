package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lgbarn/chess-cli-go/internal/errors"
)

// fileConfig is the YAML layout of a config file. Pointer fields tell an
// explicit false or zero apart from an absent key.
type fileConfig struct {
	Engine           string            `yaml:"engine"`
	EngineArgs       []string          `yaml:"engine_args"`
	EngineOptions    map[string]string `yaml:"engine_options"`
	MoveTime         string            `yaml:"movetime"`
	HandshakeTimeout string            `yaml:"handshake_timeout"`
	ReplyGrace       string            `yaml:"reply_grace"`

	Player     string `yaml:"player"`
	PlayerName string `yaml:"player_name"`
	StartFEN   string `yaml:"start_fen"`
	Resume     string `yaml:"resume"`
	ECO        string `yaml:"eco"`

	Color   *bool `yaml:"color"`
	Unicode *bool `yaml:"unicode"`
	Flip    *bool `yaml:"flip"`

	Verbosity *int `yaml:"verbosity"`

	Notation   string `yaml:"notation"`
	LineLength *uint  `yaml:"line_length"`
	JSON       *bool  `yaml:"json"`
	Record     string `yaml:"record"`
}

// LoadFile reads a YAML config file into cfg. Keys absent from the file
// leave cfg unchanged.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("'%s': %w", path, err)
	}
	if err := Decode(bytes.NewReader(data), cfg); err != nil {
		return fmt.Errorf("'%s': %w", path, err)
	}
	return nil
}

// Decode reads YAML config from r into cfg. Unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	var fc fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("%v: %w", err, errors.ErrInvalidConfig)
	}
	return fc.apply(cfg)
}

func (fc *fileConfig) apply(cfg *Config) error {
	if fc.Engine != "" {
		cfg.Engine.Path = fc.Engine
	}
	if len(fc.EngineArgs) > 0 {
		cfg.Engine.Args = fc.EngineArgs
	}
	for name, value := range fc.EngineOptions {
		if cfg.Engine.Options == nil {
			cfg.Engine.Options = make(map[string]string)
		}
		cfg.Engine.Options[name] = value
	}

	durations := []struct {
		key  string
		text string
		dst  *time.Duration
	}{
		{"movetime", fc.MoveTime, &cfg.Engine.MoveTime},
		{"handshake_timeout", fc.HandshakeTimeout, &cfg.Engine.HandshakeTimeout},
		{"reply_grace", fc.ReplyGrace, &cfg.Engine.ReplyGrace},
	}
	for _, d := range durations {
		if d.text == "" {
			continue
		}
		v, err := time.ParseDuration(d.text)
		if err != nil {
			return fmt.Errorf("%s: %v: %w", d.key, err, errors.ErrInvalidConfig)
		}
		*d.dst = v
	}

	if fc.Player != "" {
		colour, err := ParseColour(fc.Player)
		if err != nil {
			return err
		}
		cfg.Game.Player = colour
	}
	if fc.PlayerName != "" {
		cfg.Game.PlayerName = fc.PlayerName
	}
	if fc.StartFEN != "" {
		cfg.Game.StartFEN = fc.StartFEN
	}
	if fc.Resume != "" {
		cfg.Game.ResumeFile = fc.Resume
	}
	if fc.ECO != "" {
		cfg.Game.ECOFile = fc.ECO
	}

	if fc.Color != nil {
		cfg.Display.Colour = *fc.Color
	}
	if fc.Unicode != nil {
		cfg.Display.Unicode = *fc.Unicode
	}
	if fc.Flip != nil {
		cfg.Display.Flip = *fc.Flip
	}
	if fc.Verbosity != nil {
		cfg.Verbosity = *fc.Verbosity
	}

	if fc.Notation != "" {
		format, err := ParseOutputFormat(fc.Notation)
		if err != nil {
			return err
		}
		cfg.Output.Format = format
	}
	if fc.LineLength != nil {
		cfg.Output.MaxLineLength = *fc.LineLength
	}
	if fc.JSON != nil {
		cfg.Output.JSONFormat = *fc.JSON
	}
	if fc.Record != "" {
		cfg.Output.RecordFile = fc.Record
	}
	return nil
}
