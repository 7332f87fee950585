package engine

import (
	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/errors"
	"github.com/lgbarn/chess-cli-go/internal/hashing"
)

// ApplyMove applies a move to the board and updates the board state.
// The move is matched against the legal moves by from, to and promotion, so
// callers need not set the classification flags. An illegal move returns a
// *errors.MoveError wrapping ErrIllegalMove and leaves the board unchanged.
func ApplyMove(board *chess.Board, move chess.Move) error {
	legal, ok := findLegalMove(board, move)
	if !ok {
		return &errors.MoveError{
			Err:      errors.ErrIllegalMove,
			PlyNum:   board.PlyNumber(),
			MoveText: move.UCI(),
			FEN:      BoardToFEN(board),
		}
	}

	makeMove(board, legal)
	board.Zobrist = hashing.GenerateZobristHash(board)
	board.History = append(board.History, board.Zobrist)
	return nil
}

// ApplyMoves applies a sequence of moves, stopping at the first illegal one.
func ApplyMoves(board *chess.Board, moves []chess.Move) error {
	for _, m := range moves {
		if err := ApplyMove(board, m); err != nil {
			return err
		}
	}
	return nil
}

// makeMove performs a move without any legality checking. The move's flags
// must already be correct; hashes are not updated.
func makeMove(board *chess.Board, move chess.Move) {
	colour := board.ToMove
	piece := board.Squares[move.From]

	switch {
	case move.Castling:
		applyCastle(board, move)
	case piece.Kind == chess.Pawn:
		applyPawnMove(board, move)
	default:
		applyPieceMove(board, move)
	}

	revokeCastlingRights(board, move.From)
	revokeCastlingRights(board, move.To)

	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()
}
