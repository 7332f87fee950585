package engine

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	chesserrors "github.com/lgbarn/chess-cli-go/internal/errors"
)

// TestHelperProcess is not a real test. It is re-executed by the tests below
// as a scripted UCI engine whose behaviour is chosen by SCRIPTED_ENGINE_MODE.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	runScriptedEngine(os.Getenv("SCRIPTED_ENGINE_MODE"))
	os.Exit(0)
}

func runScriptedEngine(mode string) {
	var fen string
	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := in.Text()
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "uci":
			if mode == "nouciok" {
				return
			}
			fmt.Println("id name Scripted Engine")
			fmt.Println("id author test")
			fmt.Println("uciok")
		case "isready":
			if mode == "noready" {
				continue
			}
			fmt.Println("readyok")
		case "position":
			fen = strings.TrimPrefix(line, "position fen ")
		case "go":
			switch mode {
			case "normal":
				fmt.Println("info depth 1 score cp 10")
				fmt.Println("info depth 12 seldepth 14 score cp 34 nodes 1000 pv e2e4 e7e5")
				fmt.Println("bestmove e2e4 ponder e7e5")
			case "nomove":
				fmt.Println("info depth 0 score mate 0")
				fmt.Println("bestmove (none)")
			case "promote":
				fmt.Println("bestmove e7e8q")
			case "malformed":
				fmt.Println("bestmove zz9")
			case "crash":
				fmt.Println("info depth 1 score cp 0")
				return
			case "echo":
				if strings.Fields(fen)[1] == "w" {
					fmt.Println("bestmove e2e4")
				} else {
					fmt.Println("bestmove e7e5")
				}
			}
		case "stop":
			if mode == "stoppable" {
				fmt.Println("bestmove d2d4")
			}
		case "quit":
			if mode == "chatty" {
				// Far more than a pipe buffer holds.
				for i := 0; i < 20000; i++ {
					fmt.Printf("info string farewell line %d\n", i)
				}
			}
			return
		}
	}
}

// syncBuffer is a bytes.Buffer safe for the logger and the stderr copier.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func scriptedEngineOptions(mode string, extra ...EngineOption) []EngineOption {
	opts := []EngineOption{
		WithArgs("-test.run=^TestHelperProcess$", "--"),
		WithEnv("GO_WANT_HELPER_PROCESS=1", "SCRIPTED_ENGINE_MODE="+mode),
		WithHandshakeTimeout(5 * time.Second),
		WithReplyGrace(2 * time.Second),
	}
	return append(opts, extra...)
}

func startScriptedEngine(t *testing.T, mode string, extra ...EngineOption) *UCIEngine {
	t.Helper()
	e, err := StartUCIEngine(context.Background(), os.Args[0], scriptedEngineOptions(mode, extra...)...)
	if err != nil {
		t.Fatalf("StartUCIEngine(%s) error: %v", mode, err)
	}
	t.Cleanup(e.Close)
	return e
}

func mustMove(t *testing.T, text string) chess.Move {
	t.Helper()
	m, err := chess.ParseUCIMove(text)
	if err != nil {
		t.Fatalf("ParseUCIMove(%q): %v", text, err)
	}
	return m
}

func TestUCIEngine_Handshake(t *testing.T) {
	e := startScriptedEngine(t, "normal")

	if e.State() != EngineReady {
		t.Errorf("State() = %v, want ready", e.State())
	}
	if e.Name() != "Scripted Engine" {
		t.Errorf("Name() = %q, want %q", e.Name(), "Scripted Engine")
	}
}

func TestUCIEngine_BestMove(t *testing.T) {
	e := startScriptedEngine(t, "normal")

	move, ok, err := e.BestMove(context.Background(), InitialFEN, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("BestMove() error: %v", err)
	}
	if !ok {
		t.Fatal("BestMove() reported no move")
	}
	if move.From.String() != "e2" || move.To.String() != "e4" || move.IsPromotion() {
		t.Errorf("BestMove() = %v, want e2e4", move)
	}
	if e.State() != EngineReady {
		t.Errorf("State() after search = %v, want ready", e.State())
	}
}

func TestUCIEngine_SearchReportsEvaluation(t *testing.T) {
	e := startScriptedEngine(t, "normal")

	result, err := e.Search(context.Background(), InitialFEN, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if result.Eval.Depth != 12 || result.Eval.Score != 34 {
		t.Errorf("Eval = %+v, want depth 12 score 34", result.Eval)
	}
	if got := strings.Join(result.Eval.PV, " "); got != "e2e4 e7e5" {
		t.Errorf("PV = %q, want %q", got, "e2e4 e7e5")
	}
	if !result.HasPonder || result.Ponder != mustMove(t, "e7e5") {
		t.Errorf("Ponder = %v (%v), want e7e5", result.Ponder, result.HasPonder)
	}
	if got := FormatEvaluation(&result.Eval); got != "+0.34" {
		t.Errorf("FormatEvaluation() = %q, want +0.34", got)
	}
}

func TestUCIEngine_NoMove(t *testing.T) {
	e := startScriptedEngine(t, "nomove")

	fen := "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	_, ok, err := e.BestMove(context.Background(), fen, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("BestMove() error: %v", err)
	}
	if ok {
		t.Error("BestMove() reported a move for (none)")
	}
}

func TestUCIEngine_Promotion(t *testing.T) {
	e := startScriptedEngine(t, "promote")

	move, ok, err := e.BestMove(context.Background(), "4k3/4P3/8/8/8/8/8/4K3 w - - 0 1", 10*time.Millisecond)
	if err != nil || !ok {
		t.Fatalf("BestMove() = %v, %v, %v", move, ok, err)
	}
	if move.Promotion != chess.Queen || move.UCI() != "e7e8q" {
		t.Errorf("BestMove() = %v, want e7e8q", move)
	}
}

func TestUCIEngine_MalformedReply(t *testing.T) {
	e := startScriptedEngine(t, "malformed")

	_, _, err := e.BestMove(context.Background(), InitialFEN, 10*time.Millisecond)
	if !errors.Is(err, chesserrors.ErrMalformedBestMove) {
		t.Fatalf("BestMove() error = %v, want ErrMalformedBestMove", err)
	}
	var engErr *chesserrors.EngineError
	if !errors.As(err, &engErr) || engErr.Op != "search" {
		t.Errorf("BestMove() error = %v, want *EngineError with op search", err)
	}
	if e.State() != EngineReady {
		t.Errorf("State() = %v, want ready after a malformed reply", e.State())
	}
}

func TestUCIEngine_OutputClosed(t *testing.T) {
	e := startScriptedEngine(t, "crash")

	_, _, err := e.BestMove(context.Background(), InitialFEN, 10*time.Millisecond)
	if !errors.Is(err, chesserrors.ErrEngineOutputClosed) {
		t.Fatalf("BestMove() error = %v, want ErrEngineOutputClosed", err)
	}
	if e.State() != EngineTerminated {
		t.Errorf("State() = %v, want terminated", e.State())
	}

	_, _, err = e.BestMove(context.Background(), InitialFEN, 10*time.Millisecond)
	if !errors.Is(err, chesserrors.ErrEngineClosed) {
		t.Errorf("BestMove() after crash error = %v, want ErrEngineClosed", err)
	}
}

func TestUCIEngine_SilentEngineIsKilled(t *testing.T) {
	e := startScriptedEngine(t, "silent")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := e.BestMove(ctx, InitialFEN, time.Hour)
	if !errors.Is(err, chesserrors.ErrEngineTimeout) {
		t.Fatalf("BestMove() error = %v, want ErrEngineTimeout", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("BestMove() error = %v, want it to wrap context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("BestMove() took %v, want it bounded by the deadline", elapsed)
	}
	if e.State() != EngineTerminated {
		t.Errorf("State() = %v, want terminated", e.State())
	}
}

func TestUCIEngine_StopResynchronises(t *testing.T) {
	e := startScriptedEngine(t, "stoppable", WithReplyGrace(50*time.Millisecond))

	_, _, err := e.BestMove(context.Background(), InitialFEN, 50*time.Millisecond)
	if !errors.Is(err, chesserrors.ErrEngineTimeout) {
		t.Fatalf("BestMove() error = %v, want ErrEngineTimeout", err)
	}
	if e.State() != EngineReady {
		t.Errorf("State() = %v, want ready after stop was answered", e.State())
	}
}

func TestUCIEngine_EchoesPosition(t *testing.T) {
	e := startScriptedEngine(t, "echo")
	board := NewInitialBoard()

	for i := 0; i < 2; i++ {
		move, ok, err := e.BestMove(context.Background(), BoardToFEN(board), 10*time.Millisecond)
		if err != nil || !ok {
			t.Fatalf("BestMove() = %v, %v, %v", move, ok, err)
		}
		if err := ApplyMove(board, move); err != nil {
			t.Fatalf("ApplyMove(%v) error: %v", move, err)
		}
	}

	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
	if got := BoardToFEN(board); got != want {
		t.Errorf("BoardToFEN() = %q, want %q", got, want)
	}
}

func TestUCIEngine_NewGame(t *testing.T) {
	e := startScriptedEngine(t, "normal")

	if err := e.NewGame(context.Background()); err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	if e.State() != EngineReady {
		t.Errorf("State() = %v, want ready", e.State())
	}
}

func TestUCIEngine_OptionsAndTrace(t *testing.T) {
	var buf syncBuffer
	logger := log.New(&buf, "", 0)
	startScriptedEngine(t, "normal",
		WithLogger(logger),
		WithOptions(map[string]string{"Threads": "2", "Hash": "16"}))

	trace := buf.String()
	for _, want := range []string{"-> uci", "<- uciok", "-> setoption name Hash value 16", "-> isready", "<- readyok"} {
		if !strings.Contains(trace, want) {
			t.Errorf("trace missing %q:\n%s", want, trace)
		}
	}
	hash := strings.Index(trace, "setoption name Hash")
	threads := strings.Index(trace, "setoption name Threads")
	if hash < 0 || threads < 0 || hash > threads {
		t.Errorf("setoption lines not sent in name order:\n%s", trace)
	}
}

func TestStartUCIEngine_Failures(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		mode    string
		opts    []EngineOption
		wantErr error
		wantOp  string
	}{
		{
			name:    "missing binary",
			path:    "/nonexistent/chess-engine",
			wantErr: chesserrors.ErrEngineStart,
			wantOp:  "start",
		},
		{
			name:    "exits before uciok",
			path:    os.Args[0],
			mode:    "nouciok",
			wantErr: chesserrors.ErrEngineHandshake,
			wantOp:  "handshake",
		},
		{
			name:    "never ready",
			path:    os.Args[0],
			mode:    "noready",
			opts:    []EngineOption{WithHandshakeTimeout(200 * time.Millisecond)},
			wantErr: chesserrors.ErrEngineTimeout,
			wantOp:  "handshake",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := scriptedEngineOptions(tt.mode, tt.opts...)
			e, err := StartUCIEngine(context.Background(), tt.path, opts...)
			if err == nil {
				e.Close()
				t.Fatal("StartUCIEngine() succeeded, want error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("StartUCIEngine() error = %v, want %v", err, tt.wantErr)
			}
			var engErr *chesserrors.EngineError
			if !errors.As(err, &engErr) || engErr.Op != tt.wantOp {
				t.Errorf("StartUCIEngine() error = %v, want op %q", err, tt.wantOp)
			}
		})
	}
}

func TestUCIEngine_Close(t *testing.T) {
	e := startScriptedEngine(t, "normal")

	e.Close()
	e.Close() // idempotent

	if e.State() != EngineTerminated {
		t.Errorf("State() = %v, want terminated", e.State())
	}
	_, err := e.Search(context.Background(), InitialFEN, 10*time.Millisecond)
	if !errors.Is(err, chesserrors.ErrEngineClosed) {
		t.Errorf("Search() after Close error = %v, want ErrEngineClosed", err)
	}
	if err := e.NewGame(context.Background()); !errors.Is(err, chesserrors.ErrEngineClosed) {
		t.Errorf("NewGame() after Close error = %v, want ErrEngineClosed", err)
	}
}

func TestUCIEngine_CloseDrainsOutput(t *testing.T) {
	e := startScriptedEngine(t, "chatty")

	start := time.Now()
	e.Close()

	if elapsed := time.Since(start); elapsed >= quitGrace {
		t.Errorf("Close() took %v, want the engine to exit before the kill grace", elapsed)
	}
	if !e.cmd.ProcessState.Success() {
		t.Errorf("engine exit = %v, want a clean exit after quit", e.cmd.ProcessState)
	}
	select {
	case <-e.drained:
	default:
		t.Error("reader still running after Close()")
	}
}
