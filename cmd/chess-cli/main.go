// chess-cli plays chess in the terminal against an external UCI engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/config"
	"github.com/lgbarn/chess-cli-go/internal/engine"
	"github.com/lgbarn/chess-cli-go/internal/output"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-cli version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if *configFile != "" {
		if err := config.LoadFile(*configFile, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setupLogFile(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	var code int
	if *perftDepth > 0 {
		code = runPerft(ctx, cfg, *perftDepth, *threads)
	} else {
		code = run(ctx, cfg, os.Stdin)
	}
	stop()
	os.Exit(code)
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.Create(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.LogFile = file
}

// run plays one game and saves its record. It returns the exit code.
func run(ctx context.Context, cfg *config.Config, in io.Reader) int {
	eng, err := startEngine(ctx, cfg)
	if err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		return 1
	}
	defer eng.Close()

	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "Engine %s ready\n", eng.Name())
	}

	s, err := newSession(cfg, eng, in)
	if err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		return 1
	}

	code := 0
	if err := s.play(ctx); err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		code = 1
	}
	if err := saveRecord(cfg, s.game); err != nil {
		fmt.Fprintf(cfg.LogFile, "Error saving game: %v\n", err)
		code = 1
	}
	return code
}

// startEngine launches the configured engine and starts a new game on it.
func startEngine(ctx context.Context, cfg *config.Config) (*engine.UCIEngine, error) {
	opts := []engine.EngineOption{
		engine.WithArgs(cfg.Engine.Args...),
		engine.WithHandshakeTimeout(cfg.Engine.HandshakeTimeout),
		engine.WithReplyGrace(cfg.Engine.ReplyGrace),
		engine.WithOptions(cfg.Engine.Options),
	}
	if cfg.Verbosity >= 2 {
		opts = append(opts, engine.WithLogger(log.New(cfg.LogFile, "uci ", log.Ltime|log.Lmicroseconds)))
	}

	eng, err := engine.StartUCIEngine(ctx, cfg.Engine.Path, opts...)
	if err != nil {
		return nil, err
	}
	if err := eng.NewGame(ctx); err != nil {
		eng.Close()
		return nil, err
	}
	return eng, nil
}

// saveRecord writes the finished game to the record file, or to the output
// stream when no file is configured.
func saveRecord(cfg *config.Config, game *chess.Game) error {
	w := cfg.OutputFile
	if cfg.Output.RecordFile != "" {
		file, err := os.Create(cfg.Output.RecordFile)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	writer := output.NewGameWriter(w, cfg)
	if err := writer.WriteGame(game); err != nil {
		return err
	}
	return writer.Close()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-cli [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess in the terminal against a UCI engine.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nRecord notations (-W):\n")
	fmt.Fprintf(os.Stderr, "  san    Standard Algebraic Notation (default)\n")
	fmt.Fprintf(os.Stderr, "  lalg   Long algebraic (e2e4)\n")
	fmt.Fprintf(os.Stderr, "  halg   Hyphenated long algebraic (e2-e4)\n")
	fmt.Fprintf(os.Stderr, "  uci    UCI format\n")
}
