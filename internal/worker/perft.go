package worker

import (
	"context"
	"sort"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/engine"
)

// Perft counts the leaf nodes of the legal move tree depth plies below
// board. Depth 0 counts the position itself.
func Perft(board *chess.Board, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	moves := engine.LegalMoves(board)
	if depth == 1 {
		return int64(len(moves))
	}
	var nodes int64
	for _, m := range moves {
		child := board.Snapshot()
		if err := engine.ApplyMove(child, m); err != nil {
			continue
		}
		nodes += Perft(child, depth-1)
	}
	return nodes
}

// countTask is the CountFunc used by Divide.
func countTask(task Task) Result {
	return Result{Move: task.Move, Index: task.Index, Nodes: Perft(task.Board, task.Depth)}
}

// Divide counts the leaves below each legal root move, spreading the root
// moves over workers goroutines. Results are in the order of
// engine.LegalMoves. A cancelled ctx stops the remaining subtrees and
// returns ctx.Err().
func Divide(ctx context.Context, board *chess.Board, depth, workers int) ([]Result, error) {
	if depth < 1 {
		depth = 1
	}
	moves := engine.LegalMoves(board)

	pool := NewPool(countTask, WithWorkers(workers), WithBufferSize(len(moves)+1))
	pool.Start()
	for i, m := range moves {
		child := board.Snapshot()
		if err := engine.ApplyMove(child, m); err != nil {
			pool.Stop()
			pool.Close()
			return nil, err
		}
		pool.Submit(Task{Move: m, Board: child, Depth: depth - 1, Index: i})
	}
	go pool.Close()

	done := ctx.Done()
	results := make([]Result, 0, len(moves))
	for {
		select {
		case r, ok := <-pool.Results():
			if !ok {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
				return results, nil
			}
			results = append(results, r)
		case <-done:
			pool.Stop()
			done = nil
		}
	}
}

// Total sums the node counts of a divide.
func Total(results []Result) int64 {
	var n int64
	for _, r := range results {
		n += r.Nodes
	}
	return n
}
