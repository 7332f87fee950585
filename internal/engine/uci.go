package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/errors"
)

// Default protocol timings.
const (
	DefaultHandshakeTimeout = 10 * time.Second
	DefaultReplyGrace       = 5 * time.Second

	stopGrace = time.Second
	quitGrace = 2 * time.Second
)

// EngineState is the lifecycle state of a UCIEngine.
type EngineState int

const (
	EngineUnstarted EngineState = iota
	EngineReady
	EngineBusy
	EngineTerminated
)

// String returns the string representation of an engine state.
func (s EngineState) String() string {
	switch s {
	case EngineReady:
		return "ready"
	case EngineBusy:
		return "busy"
	case EngineTerminated:
		return "terminated"
	default:
		return "unstarted"
	}
}

// Evaluation holds the engine's latest search report. Scores are from the
// point of view of the side to move.
type Evaluation struct {
	Score    int  // centipawns
	IsMate   bool // Score is a mate distance
	MateIn   int  // moves to mate, negative when being mated
	Depth    int
	BestMove string
	PV       []string
}

// SearchResult is the outcome of one search request.
type SearchResult struct {
	Move      chess.Move
	HasMove   bool // false when the engine reported no move
	Ponder    chess.Move
	HasPonder bool
	Eval      Evaluation
}

// EngineOption configures a UCIEngine before it is started.
type EngineOption func(*UCIEngine)

// WithArgs sets extra command-line arguments for the engine process.
func WithArgs(args ...string) EngineOption {
	return func(e *UCIEngine) { e.args = append(e.args, args...) }
}

// WithEnv adds KEY=value entries to the engine's environment.
func WithEnv(env ...string) EngineOption {
	return func(e *UCIEngine) { e.env = append(e.env, env...) }
}

// WithLogger traces protocol traffic and the engine's stderr to logger.
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *UCIEngine) { e.logger = logger }
}

// WithHandshakeTimeout bounds start-up when ctx carries no deadline.
func WithHandshakeTimeout(d time.Duration) EngineOption {
	return func(e *UCIEngine) { e.handshakeTimeout = d }
}

// WithReplyGrace is added to the move time to bound each search when ctx
// carries no deadline.
func WithReplyGrace(d time.Duration) EngineOption {
	return func(e *UCIEngine) { e.replyGrace = d }
}

// WithOptions sends "setoption" commands after the uciok handshake.
func WithOptions(options map[string]string) EngineOption {
	return func(e *UCIEngine) {
		if e.options == nil {
			e.options = make(map[string]string, len(options))
		}
		for name, value := range options {
			e.options[name] = value
		}
	}
}

// UCIEngine drives an external engine process over the UCI protocol.
// It is not safe for concurrent use; a request made while a search is
// running fails with ErrEngineBusy.
type UCIEngine struct {
	path             string
	args             []string
	env              []string
	logger           *log.Logger
	handshakeTimeout time.Duration
	replyGrace       time.Duration
	options          map[string]string

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	lines   chan string
	readErr error
	done    chan struct{}
	drained chan struct{} // closed when the reader has seen EOF
	name    string

	doneOnce sync.Once
	waitOnce sync.Once
	exited   chan struct{}

	mu     sync.Mutex
	state  EngineState
	closed bool
}

// StartUCIEngine launches the engine at path and completes the uci/isready
// handshake. The process is reaped on any failure.
func StartUCIEngine(ctx context.Context, path string, opts ...EngineOption) (*UCIEngine, error) {
	e := &UCIEngine{
		path:             path,
		handshakeTimeout: DefaultHandshakeTimeout,
		replyGrace:       DefaultReplyGrace,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.start(); err != nil {
		return nil, &errors.EngineError{Op: "start", Path: path, Err: err}
	}

	hctx, cancel := withDefaultDeadline(ctx, e.handshakeTimeout)
	defer cancel()
	if err := e.handshake(hctx); err != nil {
		e.setState(EngineTerminated)
		e.shutdown(0)
		return nil, &errors.EngineError{Op: "handshake", Path: path, Err: err}
	}

	e.setState(EngineReady)
	return e, nil
}

// start spawns the process and the stdout reader goroutine.
func (e *UCIEngine) start() error {
	cmd := exec.Command(e.path, e.args...)
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}
	if e.logger != nil {
		cmd.Stderr = e.logger.Writer()
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrEngineStart, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrEngineStart, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrEngineStart, err)
	}

	e.cmd = cmd
	e.stdin = stdin
	e.lines = make(chan string, 64)
	e.done = make(chan struct{})
	e.drained = make(chan struct{})
	go e.readLoop(stdout)
	return nil
}

// readLoop forwards engine output lines until the stream ends. After
// shutdown starts, lines are discarded so the process never blocks on a
// full pipe while exiting.
func (e *UCIEngine) readLoop(stdout io.Reader) {
	defer close(e.drained)
	defer close(e.lines)
	scanner := bufio.NewScanner(stdout)
	forward := true
	for scanner.Scan() {
		if !forward {
			continue
		}
		select {
		case e.lines <- scanner.Text():
		case <-e.done:
			forward = false
		}
	}
	e.readErr = scanner.Err()
}

func (e *UCIEngine) handshake(ctx context.Context) error {
	if err := e.send("uci"); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrEngineHandshake, err)
	}
	err := e.waitFor(ctx, "uciok", func(line string) {
		if name, ok := strings.CutPrefix(line, "id name "); ok {
			e.name = name
		}
	})
	if err != nil {
		return err
	}

	names := make([]string, 0, len(e.options))
	for name := range e.options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := e.send(fmt.Sprintf("setoption name %s value %s", name, e.options[name])); err != nil {
			return fmt.Errorf("%w: %w", errors.ErrEngineHandshake, err)
		}
	}

	return e.syncReady(ctx)
}

// syncReady sends isready and waits for readyok.
func (e *UCIEngine) syncReady(ctx context.Context) error {
	if err := e.send("isready"); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrEngineHandshake, err)
	}
	return e.waitFor(ctx, "readyok", nil)
}

// waitFor reads lines until one contains token.
func (e *UCIEngine) waitFor(ctx context.Context, token string, onLine func(string)) error {
	for {
		line, err := e.readLine(ctx)
		if err != nil {
			return e.replyError(err, errors.ErrEngineHandshake, token)
		}
		if onLine != nil {
			onLine(line)
		}
		if strings.Contains(line, token) {
			return nil
		}
	}
}

// replyError maps a readLine failure to the engine error taxonomy.
func (e *UCIEngine) replyError(err, streamEnded error, waiting string) error {
	switch err {
	case io.EOF:
		e.setState(EngineTerminated)
		if e.readErr != nil {
			return fmt.Errorf("%w before %s: %w", streamEnded, waiting, e.readErr)
		}
		return fmt.Errorf("%w before %s", streamEnded, waiting)
	case context.DeadlineExceeded:
		return fmt.Errorf("%w waiting for %s: %w", errors.ErrEngineTimeout, waiting, err)
	default:
		return fmt.Errorf("waiting for %s: %w", waiting, err)
	}
}

// readLine returns the next output line, io.EOF when the stream has ended,
// or the context error.
func (e *UCIEngine) readLine(ctx context.Context) (string, error) {
	select {
	case line, ok := <-e.lines:
		if !ok {
			return "", io.EOF
		}
		e.trace("<- %s", line)
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (e *UCIEngine) send(command string) error {
	e.trace("-> %s", command)
	_, err := io.WriteString(e.stdin, command+"\n")
	return err
}

func (e *UCIEngine) trace(format string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}

// Name returns the engine's self-reported name, if any.
func (e *UCIEngine) Name() string {
	return e.name
}

// State returns the current lifecycle state.
func (e *UCIEngine) State() EngineState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *UCIEngine) setState(s EngineState) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// acquire moves the engine from Ready to Busy.
func (e *UCIEngine) acquire() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case EngineReady:
		e.state = EngineBusy
		return nil
	case EngineBusy:
		return errors.ErrEngineBusy
	default:
		return errors.ErrEngineClosed
	}
}

// release returns a Busy engine to Ready unless it has terminated.
func (e *UCIEngine) release() {
	e.mu.Lock()
	if e.state == EngineBusy {
		e.state = EngineReady
	}
	e.mu.Unlock()
}

// Search asks the engine for its best move in the position given as FEN.
// The reply deadline is ctx's deadline if it has one, otherwise moveTime
// plus the reply grace. On expiry the engine is told to stop; if it still
// does not answer it is killed.
func (e *UCIEngine) Search(ctx context.Context, fen string, moveTime time.Duration) (*SearchResult, error) {
	if err := e.acquire(); err != nil {
		return nil, &errors.EngineError{Op: "search", Path: e.path, Err: err}
	}
	defer e.release()

	sctx, cancel := withDefaultDeadline(ctx, moveTime+e.replyGrace)
	defer cancel()

	result, err := e.search(sctx, fen, moveTime)
	if err != nil {
		return nil, &errors.EngineError{Op: "search", Path: e.path, Err: err}
	}
	return result, nil
}

func (e *UCIEngine) search(ctx context.Context, fen string, moveTime time.Duration) (*SearchResult, error) {
	ms := moveTime.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	for _, command := range []string{"position fen " + fen, fmt.Sprintf("go movetime %d", ms)} {
		if err := e.send(command); err != nil {
			e.setState(EngineTerminated)
			return nil, fmt.Errorf("%w: %w", errors.ErrEngineOutputClosed, err)
		}
	}

	result := &SearchResult{}
	for {
		line, err := e.readLine(ctx)
		if err != nil {
			if err == io.EOF {
				return nil, e.replyError(err, errors.ErrEngineOutputClosed, "bestmove")
			}
			e.abortSearch()
			return nil, e.replyError(err, errors.ErrEngineOutputClosed, "bestmove")
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "info":
			e.parseInfo(line, &result.Eval)
		case "bestmove":
			return parseBestMove(fields, result)
		}
	}
}

// abortSearch sends stop and drains output until bestmove. An engine that
// stays silent is killed.
func (e *UCIEngine) abortSearch() {
	ctx, cancel := context.WithTimeout(context.Background(), stopGrace)
	defer cancel()

	if err := e.send("stop"); err == nil {
		for {
			line, err := e.readLine(ctx)
			if err != nil {
				break
			}
			if strings.HasPrefix(line, "bestmove") {
				return
			}
		}
	}

	e.setState(EngineTerminated)
	e.shutdown(0)
}

// parseBestMove fills result from the fields of a bestmove line.
func parseBestMove(fields []string, result *SearchResult) (*SearchResult, error) {
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: missing move", errors.ErrMalformedBestMove)
	}

	token := fields[1]
	if token == "(none)" || token == "0000" {
		return result, nil
	}

	move, err := chess.ParseUCIMove(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMalformedBestMove, err)
	}
	result.Move = move
	result.HasMove = true
	result.Eval.BestMove = token

	if len(fields) >= 4 && fields[2] == "ponder" {
		if ponder, err := chess.ParseUCIMove(fields[3]); err == nil {
			result.Ponder = ponder
			result.HasPonder = true
		}
	}
	return result, nil
}

// parseInfo updates eval from an info line. Fields that are absent or
// malformed leave the previous values alone.
func (e *UCIEngine) parseInfo(line string, eval *Evaluation) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 < len(fields) {
				if n, err := strconv.Atoi(fields[i+1]); err == nil {
					eval.Depth = n
					i++
				}
			}
		case "score":
			if i+2 < len(fields) {
				n, err := strconv.Atoi(fields[i+2])
				if err != nil {
					continue
				}
				switch fields[i+1] {
				case "cp":
					eval.Score = n
					eval.IsMate = false
					eval.MateIn = 0
				case "mate":
					eval.IsMate = true
					eval.MateIn = n
				}
				i += 2
			}
		case "pv":
			eval.PV = append([]string(nil), fields[i+1:]...)
			return
		}
	}
}

// BestMove is Search reduced to the move. The boolean is false when the
// engine reports that it has no move.
func (e *UCIEngine) BestMove(ctx context.Context, fen string, moveTime time.Duration) (chess.Move, bool, error) {
	result, err := e.Search(ctx, fen, moveTime)
	if err != nil {
		return chess.Move{}, false, err
	}
	return result.Move, result.HasMove, nil
}

// NewGame tells the engine a new game is starting and waits until it is ready.
func (e *UCIEngine) NewGame(ctx context.Context) error {
	if err := e.acquire(); err != nil {
		return &errors.EngineError{Op: "newgame", Path: e.path, Err: err}
	}
	defer e.release()

	nctx, cancel := withDefaultDeadline(ctx, e.handshakeTimeout)
	defer cancel()

	err := e.send("ucinewgame")
	if err == nil {
		err = e.syncReady(nctx)
	}
	if err != nil {
		return &errors.EngineError{Op: "newgame", Path: e.path, Err: err}
	}
	return nil
}

// Close sends quit and waits for the process to exit, killing it after a
// grace period. Errors are ignored and repeated calls do nothing.
func (e *UCIEngine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.state = EngineTerminated
	e.mu.Unlock()

	if e.cmd == nil {
		return
	}
	_ = e.send("quit")
	e.shutdown(quitGrace)
}

// shutdown closes stdin, releases the reader and reaps the process, killing
// it if it has not exited within grace. cmd.Wait closes the stdout pipe, so
// it only runs once the reader has drained it.
func (e *UCIEngine) shutdown(grace time.Duration) {
	_ = e.stdin.Close()
	e.doneOnce.Do(func() { close(e.done) })

	deadline := time.NewTimer(grace)
	defer deadline.Stop()

	killed := false
	select {
	case <-e.drained:
	case <-deadline.C:
		killed = true
		_ = e.cmd.Process.Kill()
		<-e.drained
	}

	exited := e.waitExit()
	if !killed {
		select {
		case <-exited:
			return
		case <-deadline.C:
		}
		_ = e.cmd.Process.Kill()
	}
	<-exited
}

// waitExit starts the single cmd.Wait call and returns a channel closed
// when it finishes. Callers must have seen e.drained closed.
func (e *UCIEngine) waitExit() <-chan struct{} {
	e.waitOnce.Do(func() {
		e.exited = make(chan struct{})
		go func() {
			_ = e.cmd.Wait()
			close(e.exited)
		}()
	})
	return e.exited
}

// withDefaultDeadline applies d as a timeout unless ctx already has a
// deadline or d is not positive.
func withDefaultDeadline(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// FormatEvaluation formats an evaluation for display, e.g. "+1.23" or "-M5".
func FormatEvaluation(eval *Evaluation) string {
	if eval.IsMate {
		if eval.MateIn < 0 {
			return fmt.Sprintf("-M%d", -eval.MateIn)
		}
		return fmt.Sprintf("+M%d", eval.MateIn)
	}
	return fmt.Sprintf("%+.2f", float64(eval.Score)/100)
}
