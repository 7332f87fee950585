// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"runtime"
	"strings"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/config"
)

// optionList collects repeated -option Name=Value flags.
type optionList map[string]string

func (o optionList) String() string {
	parts := make([]string, 0, len(o))
	for name, value := range o {
		parts = append(parts, name+"="+value)
	}
	return strings.Join(parts, ",")
}

func (o optionList) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("option %q: want Name=Value", s)
	}
	o[name] = strings.TrimSpace(value)
	return nil
}

var engineOptions = optionList{}

func init() {
	flag.Var(engineOptions, "option", "Engine option as Name=Value (repeatable)")
}

var (
	// Engine options
	enginePath = flag.String("engine", "", "UCI engine executable (default: stockfish)")
	moveTime   = flag.Duration("movetime", 0, "Engine thinking time per move (default: 1s)")

	// Game options
	player   = flag.String("player", "", "Side you play: white or black (default: white)")
	asBlack  = flag.Bool("black", false, "Play Black (same as -player black)")
	startFEN = flag.String("fen", "", "Start from this FEN position")
	resume   = flag.String("resume", "", "Continue the game saved in this PGN file")
	ecoFile  = flag.String("e", "", "ECO classification file (PGN format)")
	name     = flag.String("name", "", "Your name for the game record")

	// Display options
	noColor  = flag.Bool("nocolor", false, "Don't colour the board")
	ascii    = flag.Bool("ascii", false, "Draw pieces as letters instead of chess glyphs")
	flipView = flag.Bool("flip", false, "Draw the board from the other side")
	noEval   = flag.Bool("noeval", false, "Don't show the engine evaluation")

	// Record options
	outputFile   = flag.String("o", "", "Save the game record to this file (default: stdout)")
	lineLength   = flag.Int("w", 0, "Maximum line length of the record (default: 80)")
	outputFormat = flag.String("W", "", "Record notation: san, lalg, halg, uci")
	jsonOutput   = flag.Bool("J", false, "Write the record as JSON")
	sevenTagOnly = flag.Bool("7", false, "Output only the seven tag roster")
	fenComments  = flag.Bool("fencomments", false, "Store the FEN after each move in JSON records")

	// Configuration and logging
	configFile = flag.String("config", "", "YAML configuration file")
	logFile    = flag.String("l", "", "Write diagnostics to log file")
	verbosity  = flag.Int("v", -1, "Verbosity: 0=errors, 1=status, 2=engine protocol trace")
	quiet      = flag.Bool("s", false, "Silent mode (verbosity 0)")

	// Move generator check
	perftDepth = flag.Int("perft", 0, "Count legal move paths to this depth from the start position and exit")
	threads    = flag.Int("threads", runtime.NumCPU(), "Worker goroutines for -perft")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration. Flags left at
// their defaults keep the values from the config file.
func applyFlags(cfg *config.Config) error {
	applyEngineFlags(cfg)
	if err := applyGameFlags(cfg); err != nil {
		return err
	}
	applyDisplayFlags(cfg)
	if err := applyOutputFormatFlags(cfg); err != nil {
		return err
	}
	applyRecordFlags(cfg)

	if *verbosity >= 0 {
		cfg.Verbosity = *verbosity
	}
	if *quiet {
		cfg.Verbosity = 0
	}
	return nil
}

// applyEngineFlags configures the engine process.
func applyEngineFlags(cfg *config.Config) {
	if *enginePath != "" {
		cfg.Engine.Path = *enginePath
	}
	if *moveTime > 0 {
		cfg.Engine.MoveTime = *moveTime
	}
	for n, v := range engineOptions {
		cfg.Engine.Options[n] = v
	}
}

// applyGameFlags configures the side played and the start position.
func applyGameFlags(cfg *config.Config) error {
	if *player != "" {
		colour, err := config.ParseColour(*player)
		if err != nil {
			return err
		}
		cfg.Game.Player = colour
	}
	if *asBlack {
		cfg.Game.Player = chess.Black
	}
	if *startFEN != "" {
		cfg.Game.StartFEN = *startFEN
	}
	if *resume != "" {
		cfg.Game.ResumeFile = *resume
	}
	if *ecoFile != "" {
		cfg.Game.ECOFile = *ecoFile
	}
	if *name != "" {
		cfg.Game.PlayerName = *name
	}
	return nil
}

// applyDisplayFlags configures the board view.
func applyDisplayFlags(cfg *config.Config) {
	if *noColor {
		cfg.Display.Colour = false
	}
	if *ascii {
		cfg.Display.Unicode = false
	}
	if *flipView {
		cfg.Display.Flip = !cfg.Display.Flip
	}
	if *noEval {
		cfg.Display.ShowEvaluation = false
	}
}

// applyOutputFormatFlags configures the record notation.
func applyOutputFormatFlags(cfg *config.Config) error {
	if *outputFormat == "" {
		return nil
	}
	format, err := config.ParseOutputFormat(*outputFormat)
	if err != nil {
		return err
	}
	cfg.Output.Format = format
	return nil
}

// applyRecordFlags configures where and how the record is written.
func applyRecordFlags(cfg *config.Config) {
	if *outputFile != "" {
		cfg.Output.RecordFile = *outputFile
	}
	if *lineLength > 0 {
		cfg.Output.MaxLineLength = uint(*lineLength)
	}
	if *jsonOutput {
		cfg.Output.JSONFormat = true
	}
	if *sevenTagOnly {
		cfg.Output.TagFormat = config.SevenTagRoster
	}
	if *fenComments {
		cfg.Output.AddFENComments = true
	}
}
