package engine

import "github.com/lgbarn/chess-cli-go/internal/chess"

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs  = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs  = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allQueenDirs  = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// pseudoLegalMoves generates the moves matching the piece's movement
// pattern, without regard to check. Castling is generated separately.
func pseudoLegalMoves(board *chess.Board, piece chess.Piece, from chess.Square) []chess.Move {
	switch piece.Kind {
	case chess.Pawn:
		return pawnMoves(board, from, piece.Colour)
	case chess.Knight:
		return stepMoves(board, from, piece.Colour, knightOffsets)
	case chess.Bishop:
		return slidingMoves(board, from, piece.Colour, diagonalDirs)
	case chess.Rook:
		return slidingMoves(board, from, piece.Colour, straightDirs)
	case chess.Queen:
		return slidingMoves(board, from, piece.Colour, allQueenDirs)
	case chess.King:
		return stepMoves(board, from, piece.Colour, kingOffsets)
	}
	return nil
}

// stepMoves generates single-step moves for knights and kings.
func stepMoves(board *chess.Board, from chess.Square, colour chess.Colour, offsets [][2]int) []chess.Move {
	var moves []chess.Move
	for _, offset := range offsets {
		to, ok := from.Offset(offset[0], offset[1])
		if !ok {
			continue
		}
		target := board.Squares[to]
		if target.IsEmpty() {
			moves = append(moves, chess.NewMove(from, to, chess.NoPieceKind))
		} else if target.Colour != colour {
			moves = append(moves, chess.NewMove(from, to, chess.NoPieceKind).WithCapture())
		}
	}
	return moves
}

// slidingMoves generates moves for bishops, rooks and queens along dirs.
func slidingMoves(board *chess.Board, from chess.Square, colour chess.Colour, dirs [][2]int) []chess.Move {
	var moves []chess.Move
	for _, dir := range dirs {
		to, ok := from.Offset(dir[0], dir[1])
		for ok {
			target := board.Squares[to]
			if !target.IsEmpty() {
				if target.Colour != colour {
					moves = append(moves, chess.NewMove(from, to, chess.NoPieceKind).WithCapture())
				}
				break // Blocked
			}
			moves = append(moves, chess.NewMove(from, to, chess.NoPieceKind))
			to, ok = to.Offset(dir[0], dir[1])
		}
	}
	return moves
}

// applyPieceMove applies a piece (non-pawn, non-castling) move.
func applyPieceMove(board *chess.Board, move chess.Move) {
	captured := board.Squares[move.To]

	board.Squares[move.To] = board.Squares[move.From]
	board.Squares[move.From] = chess.Piece{}

	board.EnPassant = false

	// Update halfmove clock
	if !captured.IsEmpty() {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}
}
