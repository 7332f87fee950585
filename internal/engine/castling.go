package engine

import "github.com/lgbarn/chess-cli-go/internal/chess"

// Home squares whose disturbance revokes castling rights.
var (
	whiteKingHome      = chess.MustParseSquare("e1")
	whiteKingsideRook  = chess.MustParseSquare("h1")
	whiteQueensideRook = chess.MustParseSquare("a1")
	blackKingHome      = chess.MustParseSquare("e8")
	blackKingsideRook  = chess.MustParseSquare("h8")
	blackQueensideRook = chess.MustParseSquare("a8")
)

// castlingMoves generates the castling moves available to colour. Rights,
// the king and rook on their home squares, empty squares between them and
// an unattacked king path are all required.
func castlingMoves(board *chess.Board, colour chess.Colour) []chess.Move {
	if !board.Castling.Kingside(colour) && !board.Castling.Queenside(colour) {
		return nil
	}

	rank := chess.HomeRank(colour)
	kingFrom := squareAt(4, rank)
	if board.Squares[kingFrom] != chess.MakePiece(colour, chess.King) {
		return nil
	}
	if IsSquareAttacked(board, kingFrom, colour.Opposite()) {
		return nil
	}

	var moves []chess.Move
	if board.Castling.Kingside(colour) && canCastle(board, colour, rank, 7, []int{5, 6}, []int{5, 6}) {
		moves = append(moves, chess.NewMove(kingFrom, squareAt(6, rank), chess.NoPieceKind).WithCastling())
	}
	if board.Castling.Queenside(colour) && canCastle(board, colour, rank, 0, []int{1, 2, 3}, []int{3, 2}) {
		moves = append(moves, chess.NewMove(kingFrom, squareAt(2, rank), chess.NoPieceKind).WithCastling())
	}
	return moves
}

// canCastle checks the rook, the emptiness of the between files and that
// none of the transit files is attacked.
func canCastle(board *chess.Board, colour chess.Colour, rank, rookFile int, between, transit []int) bool {
	if board.Squares[squareAt(rookFile, rank)] != chess.MakePiece(colour, chess.Rook) {
		return false
	}
	for _, file := range between {
		if !board.Squares[squareAt(file, rank)].IsEmpty() {
			return false
		}
	}
	for _, file := range transit {
		if IsSquareAttacked(board, squareAt(file, rank), colour.Opposite()) {
			return false
		}
	}
	return true
}

// applyCastle applies a castling move: king two files over, rook to the
// square the king crossed.
func applyCastle(board *chess.Board, move chess.Move) {
	rank := move.From.Rank()
	rookFrom, rookTo := squareAt(0, rank), squareAt(3, rank)
	if move.To.File() == 6 {
		rookFrom, rookTo = squareAt(7, rank), squareAt(5, rank)
	}

	board.Squares[move.To] = board.Squares[move.From]
	board.Squares[move.From] = chess.Piece{}
	board.Squares[rookTo] = board.Squares[rookFrom]
	board.Squares[rookFrom] = chess.Piece{}

	board.EnPassant = false
	board.HalfmoveClock++
}

// revokeCastlingRights removes the rights tied to a home square when a
// piece leaves or lands on it. Revocation is permanent.
func revokeCastlingRights(board *chess.Board, sq chess.Square) {
	switch sq {
	case whiteKingHome:
		board.Castling.WhiteKingside = false
		board.Castling.WhiteQueenside = false
	case whiteKingsideRook:
		board.Castling.WhiteKingside = false
	case whiteQueensideRook:
		board.Castling.WhiteQueenside = false
	case blackKingHome:
		board.Castling.BlackKingside = false
		board.Castling.BlackQueenside = false
	case blackKingsideRook:
		board.Castling.BlackKingside = false
	case blackQueensideRook:
		board.Castling.BlackQueenside = false
	}
}
