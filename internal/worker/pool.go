// Package worker provides a worker pool for counting move trees in parallel,
// one root move per task.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chess-cli-go/internal/chess"
)

// Task is one subtree to count: the position after a root move.
type Task struct {
	Move  chess.Move
	Board *chess.Board
	Depth int
	Index int // Position of Move in the root move list
}

// Result is the outcome of counting one task.
type Result struct {
	Move  chess.Move
	Index int
	Nodes int64
}

// CountFunc counts the leaves below a task.
type CountFunc func(task Task) Result

// Pool manages a pool of workers counting subtrees.
type Pool struct {
	numWorkers int
	bufferSize int
	taskChan   chan Task
	resultChan chan Result
	countFunc  CountFunc
	wg         sync.WaitGroup
	stopFlag   int32 // Atomic flag for early termination
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool. countFunc is required; by default the pool
// has one worker and a buffer of 64 tasks, enough for any root move list.
func NewPool(countFunc CountFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers: 1,
		bufferSize: 64,
		countFunc:  countFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.taskChan = make(chan Task, p.bufferSize)
	p.resultChan = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for task := range p.taskChan {
		if p.IsStopped() {
			continue // Drain without counting
		}
		p.resultChan <- p.countFunc(task)
	}
}

// Submit queues a task. It blocks while the buffer is full.
func (p *Pool) Submit(task Task) {
	p.taskChan <- task
}

// TrySubmit queues a task without blocking. It returns false if the buffer
// is full or the pool is stopped.
func (p *Pool) TrySubmit(task Task) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.taskChan <- task:
		return true
	default:
		return false
	}
}

// Stop makes workers skip the tasks still queued.
func (p *Pool) Stop() {
	atomic.StoreInt32(&p.stopFlag, 1)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return atomic.LoadInt32(&p.stopFlag) != 0
}

// Close closes the task channel and waits for the workers. The result
// channel is closed once they are done.
func (p *Pool) Close() {
	close(p.taskChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan Result {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
