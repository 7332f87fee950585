package notation

import (
	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/engine"
	"github.com/lgbarn/chess-cli-go/internal/errors"
)

// Play applies m to board and appends it to game with its SAN, the moving
// and captured pieces and the resulting FEN. An illegal move leaves both
// untouched.
func Play(game *chess.Game, board *chess.Board, m chess.Move) (chess.GameMove, error) {
	legal, ok := findMove(engine.LegalMoves(board), m)
	if !ok {
		return chess.GameMove{}, moveError(board, m.UCI(), errors.ErrIllegalMove)
	}

	gm := chess.GameMove{
		Move:   legal,
		SAN:    EncodeMove(board, legal),
		Colour: board.ToMove,
		Number: board.MoveNumber,
		Piece:  board.Get(legal.From).Kind,
	}
	if legal.EnPassant {
		gm.Captured = chess.Pawn
	} else {
		gm.Captured = board.Get(legal.To).Kind
	}

	if err := engine.ApplyMove(board, legal); err != nil {
		return chess.GameMove{}, err
	}
	gm.FEN = engine.BoardToFEN(board)
	game.AppendMove(gm)
	return gm, nil
}
