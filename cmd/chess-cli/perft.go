// perft.go - Move generator check: counts legal move paths per root move
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lgbarn/chess-cli-go/internal/config"
	"github.com/lgbarn/chess-cli-go/internal/engine"
	"github.com/lgbarn/chess-cli-go/internal/worker"
)

// runPerft prints the divide of the configured start position in the
// "move: nodes" form engines use, followed by the total.
func runPerft(ctx context.Context, cfg *config.Config, depth, workers int) int {
	board := engine.NewInitialBoard()
	if cfg.Game.StartFEN != "" {
		b, err := engine.NewBoardFromFEN(cfg.Game.StartFEN)
		if err != nil {
			fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
			return 1
		}
		board = b
	}

	start := time.Now()
	results, err := worker.Divide(ctx, board, depth, workers)
	if err != nil {
		fmt.Fprintf(cfg.LogFile, "Error: %v\n", err)
		return 1
	}

	for _, r := range results {
		fmt.Fprintf(cfg.OutputFile, "%s: %d\n", r.Move.UCI(), r.Nodes)
	}
	fmt.Fprintf(cfg.OutputFile, "\nNodes searched: %d\n", worker.Total(results))

	if cfg.Verbosity > 0 {
		fmt.Fprintf(cfg.LogFile, "perft %d with %d workers took %v\n", depth, workers, time.Since(start).Round(time.Millisecond))
	}
	return 0
}
