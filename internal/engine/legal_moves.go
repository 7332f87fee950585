package engine

import "github.com/lgbarn/chess-cli-go/internal/chess"

// LegalMoves returns every legal move for the side to move, with the
// capture, castling and en passant flags set.
func LegalMoves(board *chess.Board) []chess.Move {
	return generateMoves(board, false)
}

// HasLegalMoves returns true if the given colour has at least one legal move.
// For the side not to move, the position is examined as if it were that
// side's turn with no en passant capture available.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	if colour != board.ToMove {
		board = board.Snapshot()
		board.ToMove = colour
		board.EnPassant = false
	}
	return len(generateMoves(board, true)) > 0
}

// IsLegal reports whether m, compared by from, to and promotion, is one of
// the legal moves in the position.
func IsLegal(board *chess.Board, m chess.Move) bool {
	_, ok := findLegalMove(board, m)
	return ok
}

// findLegalMove returns the legal move matching m's action, with its flags.
func findLegalMove(board *chess.Board, m chess.Move) (chess.Move, bool) {
	if !m.From.IsValid() || !m.To.IsValid() {
		return chess.Move{}, false
	}
	piece := board.Squares[m.From]
	if piece.IsEmpty() || piece.Colour != board.ToMove {
		return chess.Move{}, false
	}
	for _, legal := range movesFrom(board, m.From, piece) {
		if legal.SameAction(m) {
			return legal, true
		}
	}
	return chess.Move{}, false
}

// generateMoves collects legal moves for the side to move. With firstOnly
// it stops after one is found.
func generateMoves(board *chess.Board, firstOnly bool) []chess.Move {
	var moves []chess.Move
	for from := chess.Square(0); from < chess.NumSquares; from++ {
		piece := board.Squares[from]
		if piece.IsEmpty() || piece.Colour != board.ToMove {
			continue
		}
		moves = append(moves, movesFrom(board, from, piece)...)
		if firstOnly && len(moves) > 0 {
			return moves
		}
	}
	return moves
}

// movesFrom returns the legal moves of the piece standing on from.
func movesFrom(board *chess.Board, from chess.Square, piece chess.Piece) []chess.Move {
	candidates := pseudoLegalMoves(board, piece, from)
	if piece.Kind == chess.King {
		candidates = append(candidates, castlingMoves(board, piece.Colour)...)
	}

	var moves []chess.Move
	for _, m := range candidates {
		if leavesKingSafe(board, m, piece.Colour) {
			moves = append(moves, m)
		}
	}
	return moves
}

// leavesKingSafe makes the move on a scratch copy of the board and checks
// whether the mover's king is attacked afterwards.
func leavesKingSafe(board *chess.Board, m chess.Move, colour chess.Colour) bool {
	scratch := board.Snapshot()
	makeMove(scratch, m)
	return !IsInCheck(scratch, colour)
}
