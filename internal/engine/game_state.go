package engine

import (
	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/hashing"
)

// GameState classifies the position for the side to move. Checkmate and
// stalemate take precedence over the draw rules.
func GameState(board *chess.Board) chess.GameState {
	if !HasLegalMoves(board, board.ToMove) {
		if IsInCheck(board, board.ToMove) {
			return chess.Checkmate
		}
		return chess.Stalemate
	}
	if DrawReason(board) != chess.NoDraw {
		return chess.Draw
	}
	return chess.InProgress
}

// DrawReason returns the first draw rule that holds, checking the
// fifty-move rule, then threefold repetition, then insufficient material.
// It does not look for checkmate or stalemate.
func DrawReason(board *chess.Board) chess.DrawReason {
	rules := AnalyzeDrawRules(board)
	switch {
	case rules.HasFiftyMoveRule:
		return chess.FiftyMoveRule
	case rules.HasThreefoldRepetition:
		return chess.ThreefoldRepetition
	case rules.HasInsufficientMaterial:
		return chess.InsufficientMaterial
	}
	return chess.NoDraw
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(board *chess.Board) bool {
	colour := board.ToMove
	return IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(board *chess.Board) bool {
	colour := board.ToMove
	return !IsInCheck(board, colour) && !HasLegalMoves(board, colour)
}

// RepetitionCount returns how many times the current position has occurred
// in the board's history, the current occurrence included.
func RepetitionCount(board *chess.Board) int {
	return hashing.CountOccurrences(board.History, board.Zobrist)
}
