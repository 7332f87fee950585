package parser

import (
	"fmt"
	"os"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/config"
	"github.com/lgbarn/chess-cli-go/internal/engine"
	"github.com/lgbarn/chess-cli-go/internal/errors"
	"github.com/lgbarn/chess-cli-go/internal/notation"
)

// Replay plays a record's moves from its FEN tag, or the initial position,
// into a new game with the record's tags. It returns the game and the
// position after the last move. The first move that does not resolve to a
// legal move stops the replay with its *errors.MoveError.
func Replay(rec *Record) (*chess.Game, *chess.Board, error) {
	board := engine.NewInitialBoard()
	if fen := rec.Tags[chess.FENTag]; fen != "" {
		b, err := engine.NewBoardFromFEN(fen)
		if err != nil {
			return nil, nil, errors.Wrap(err, "FEN tag")
		}
		board = b
	}

	game := chess.NewGame()
	for name, value := range rec.Tags {
		game.SetTag(name, value)
	}

	for _, text := range rec.Moves {
		m, err := notation.DecodeMove(board, text)
		if err != nil {
			return nil, nil, err
		}
		if _, err := notation.Play(game, board, m); err != nil {
			return nil, nil, err
		}
	}
	return game, board, nil
}

// LoadGame reads the first game of a PGN file and replays it.
func LoadGame(path string, cfg *config.Config) (*chess.Game, *chess.Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rec, err := NewParser(f, cfg).ParseGame()
	if err != nil {
		return nil, nil, fmt.Errorf("'%s': %w", path, err)
	}
	if rec == nil {
		return nil, nil, fmt.Errorf("'%s': no game found: %w", path, errors.ErrParseFailure)
	}
	game, board, err := Replay(rec)
	if err != nil {
		return nil, nil, fmt.Errorf("'%s': %w", path, err)
	}
	return game, board, nil
}
