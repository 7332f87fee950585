// game.go - Interactive game loop between the player and the engine
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/config"
	"github.com/lgbarn/chess-cli-go/internal/eco"
	"github.com/lgbarn/chess-cli-go/internal/engine"
	chesserrors "github.com/lgbarn/chess-cli-go/internal/errors"
	"github.com/lgbarn/chess-cli-go/internal/notation"
	"github.com/lgbarn/chess-cli-go/internal/output"
	"github.com/lgbarn/chess-cli-go/internal/parser"
)

// moveSearcher is the part of the engine adapter the game loop uses.
type moveSearcher interface {
	Name() string
	Search(ctx context.Context, fen string, moveTime time.Duration) (*engine.SearchResult, error)
}

// session holds one game between the player and the engine.
type session struct {
	cfg      *config.Config
	eng      moveSearcher
	board    *chess.Board
	game     *chess.Game
	renderer *output.BoardRenderer
	in       *bufio.Scanner
	out      io.Writer
	eval     *engine.Evaluation

	eco     *eco.Classifier // nil without an ECO file
	opening *eco.Entry
}

const helpText = `Enter moves in SAN (e4, Nf3, exd5, O-O, e8=Q) or coordinates (e2e4, e7e8q).
Commands:
  board, b  redraw the board
  moves     list the legal moves
  fen       print the position as FEN
  resign    resign the game
  quit, q   stop without a result
  help, h   show this text
`

// newSession sets up the board and record for a new game, or for the
// resumed one when a saved record is configured.
func newSession(cfg *config.Config, eng moveSearcher, in io.Reader) (*session, error) {
	board := engine.NewInitialBoard()
	var game *chess.Game
	switch {
	case cfg.Game.ResumeFile != "":
		g, b, err := parser.LoadGame(cfg.Game.ResumeFile, cfg)
		if err != nil {
			return nil, err
		}
		if r := g.Result(); r != chess.Unfinished {
			return nil, fmt.Errorf("'%s': game already finished (%s)", cfg.Game.ResumeFile, r)
		}
		game, board = g, b
	case cfg.Game.StartFEN != "":
		b, err := engine.NewBoardFromFEN(cfg.Game.StartFEN)
		if err != nil {
			return nil, err
		}
		board = b
	}
	if game == nil {
		game = newRecord(cfg, eng.Name())
	}

	var classifier *eco.Classifier
	if cfg.Game.ECOFile != "" {
		classifier = eco.NewClassifier()
		if err := classifier.LoadFromFile(cfg.Game.ECOFile, cfg); err != nil {
			return nil, err
		}
	}

	display := *cfg.Display
	if cfg.Game.Player == chess.Black {
		display.Flip = !display.Flip
	}

	return &session{
		cfg:      cfg,
		eng:      eng,
		board:    board,
		game:     game,
		renderer: output.NewBoardRenderer(cfg.OutputFile, &display),
		in:       bufio.NewScanner(in),
		out:      cfg.OutputFile,
		eco:      classifier,
	}, nil
}

// newRecord creates the game record with its tags filled in.
func newRecord(cfg *config.Config, engineName string) *chess.Game {
	game := chess.NewGame()
	game.SetTag(chess.EventTag, cfg.Game.Event)
	game.SetTag(chess.SiteTag, "chess-cli")
	game.SetTag(chess.DateTag, time.Now().Format("2006.01.02"))
	game.SetTag(chess.RoundTag, "-")

	if engineName == "" {
		engineName = cfg.Engine.Path
	}
	white, black := cfg.Game.PlayerName, engineName
	if cfg.Game.Player == chess.Black {
		white, black = black, white
	}
	game.SetTag(chess.WhiteTag, white)
	game.SetTag(chess.BlackTag, black)
	game.SetTag(chess.ResultTag, chess.Unfinished)

	if cfg.Game.StartFEN != "" {
		game.SetTag(chess.SetUpTag, "1")
		game.SetTag(chess.FENTag, cfg.Game.StartFEN)
	}
	return game
}

// play runs the game until it ends, the player quits, or input runs out.
func (s *session) play(ctx context.Context) error {
	s.show()

	for {
		if state := engine.GameState(s.board); state != chess.InProgress {
			s.finish(chess.ResultFor(state, s.board.ToMove), terminationFor(state))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.board.ToMove != s.cfg.Game.Player {
			if err := s.engineMove(ctx); err != nil {
				return err
			}
			s.show()
			continue
		}

		fmt.Fprint(s.out, "> ")
		if !s.in.Scan() {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		done, err := s.handleInput(s.in.Text())
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// handleInput runs a command or plays a move. It reports true when the
// player ends the game.
func (s *session) handleInput(line string) (bool, error) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "help", "h", "?":
		fmt.Fprint(s.out, helpText)
		return false, nil
	case "board", "b":
		s.show()
		return false, nil
	case "moves":
		fmt.Fprintln(s.out, strings.Join(s.legalSAN(), " "))
		return false, nil
	case "fen":
		fmt.Fprintln(s.out, engine.BoardToFEN(s.board))
		return false, nil
	case "quit", "q", "exit":
		return true, nil
	case "resign":
		winner := chess.WhiteWins
		if s.cfg.Game.Player == chess.White {
			winner = chess.BlackWins
		}
		s.finish(winner, "resignation")
		return true, nil
	}

	m, err := notation.DecodeMove(s.board, line)
	if err != nil {
		fmt.Fprintf(s.out, "%s\n", describeInputError(line, err))
		return false, nil
	}
	gm, err := notation.Play(s.game, s.board, m)
	if err != nil {
		return false, err
	}
	s.logf(1, "You played %s\n", gm.SAN)
	s.updateOpening()
	s.show()
	return false, nil
}

// engineMove asks the engine for its move and plays it.
func (s *session) engineMove(ctx context.Context) error {
	fen := engine.BoardToFEN(s.board)
	result, err := s.eng.Search(ctx, fen, s.cfg.Engine.MoveTime)
	if err != nil {
		return err
	}
	if !result.HasMove {
		return chesserrors.Wrapf(chesserrors.ErrEngineNoMove, "%s", fen)
	}

	m := result.Move
	if m.Promotion == chess.NoPieceKind && !engine.IsLegal(s.board, m) {
		// Some engines omit the piece letter; promote to a queen.
		if q := chess.NewMove(m.From, m.To, chess.Queen); engine.IsLegal(s.board, q) {
			m = q
		}
	}

	gm, err := notation.Play(s.game, s.board, m)
	if err != nil {
		return chesserrors.Wrap(err, "engine move")
	}
	eval := result.Eval
	s.eval = &eval
	fmt.Fprintf(s.out, "%s plays %s\n", s.engineSide(), gm.SAN)
	s.updateOpening()
	return nil
}

// updateOpening tags the record with the book line reached and announces
// it when it changes.
func (s *session) updateOpening() {
	if s.eco == nil {
		return
	}
	match := s.eco.Classify(s.board.History)
	if match == nil || match == s.opening {
		return
	}
	s.opening = match
	match.SetTags(s.game)
	fmt.Fprintf(s.out, "Opening: %s\n", match)
}

// show draws the board and the status lines.
func (s *session) show() {
	s.renderer.Render(s.board)
	var eval *engine.Evaluation
	if s.cfg.Display.ShowEvaluation {
		eval = s.eval
	}
	s.renderer.RenderStatus(s.board, eval)
}

// finish stores the result in the record and prints it.
func (s *session) finish(result, termination string) {
	s.game.SetTag(chess.ResultTag, result)
	if termination != "" {
		s.game.SetTag(chess.TerminationTag, termination)
	}
	fmt.Fprintf(s.out, "Game over: %s\n", result)
}

// legalSAN returns the legal moves in SAN, sorted.
func (s *session) legalSAN() []string {
	legal := engine.LegalMoves(s.board)
	out := make([]string, 0, len(legal))
	for _, m := range legal {
		out = append(out, notation.EncodeMove(s.board, m))
	}
	sort.Strings(out)
	return out
}

func (s *session) engineSide() string {
	return s.cfg.Game.Player.Opposite().String()
}

// logf writes a diagnostic when verbosity is at least level.
func (s *session) logf(level int, format string, args ...interface{}) {
	if s.cfg.Verbosity >= level {
		fmt.Fprintf(s.cfg.LogFile, format, args...)
	}
}

// terminationFor names how a finished game ended.
func terminationFor(state chess.GameState) string {
	if state == chess.InProgress {
		return ""
	}
	return "normal"
}

// describeInputError turns a move decoding error into a hint for the player.
func describeInputError(text string, err error) string {
	switch {
	case errors.Is(err, chesserrors.ErrAmbiguousMove):
		return fmt.Sprintf("Ambiguous move %q: add the origin file or rank.", text)
	case errors.Is(err, chesserrors.ErrIllegalMove):
		return fmt.Sprintf("Illegal move %q. Type 'moves' to list legal moves.", text)
	}
	return fmt.Sprintf("Unrecognised input %q: %v. Type 'help' for commands.", text, err)
}
