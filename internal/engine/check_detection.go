package engine

import "github.com/lgbarn/chess-cli-go/internal/chess"

// IsInCheck returns true if the given colour's king is in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	king, ok := board.KingSquare(colour)
	if !ok {
		return false // No king found
	}
	return IsSquareAttacked(board, king, colour.Opposite())
}

// IsSquareAttacked returns true if any piece of byColour attacks sq under the
// current occupancy. Check safety of the attacker is not considered.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	for from := chess.Square(0); from < chess.NumSquares; from++ {
		piece := board.Squares[from]
		if piece.IsEmpty() || piece.Colour != byColour || from == sq {
			continue
		}
		if attacks(board, piece, from, sq) {
			return true
		}
	}
	return false
}

// attacks reports whether piece standing on from attacks target.
func attacks(board *chess.Board, piece chess.Piece, from, target chess.Square) bool {
	fileDiff := target.File() - from.File()
	rankDiff := target.Rank() - from.Rank()

	switch piece.Kind {
	case chess.Pawn:
		return rankDiff == chess.ColourOffset(piece.Colour) && abs(fileDiff) == 1
	case chess.Knight, chess.Bishop, chess.Rook, chess.Queen, chess.King:
		return canPieceMove(board, piece.Kind, from, target)
	}
	return false
}
