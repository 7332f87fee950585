package engine

import "github.com/lgbarn/chess-cli-go/internal/chess"

// promotionKinds lists the pieces a pawn may promote to.
var promotionKinds = [...]chess.PieceKind{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// pawnMoves generates pseudo-legal pawn moves from the given square.
func pawnMoves(board *chess.Board, from chess.Square, colour chess.Colour) []chess.Move {
	var moves []chess.Move
	dir := chess.ColourOffset(colour)

	// Forward move
	if one, ok := from.Offset(0, dir); ok && board.Squares[one].IsEmpty() {
		moves = appendPawnMove(moves, chess.NewMove(from, one, chess.NoPieceKind), colour)

		// Double push from starting rank
		if from.Rank() == chess.HomeRank(colour)+dir {
			if two, ok := one.Offset(0, dir); ok && board.Squares[two].IsEmpty() {
				moves = append(moves, chess.NewMove(from, two, chess.NoPieceKind))
			}
		}
	}

	// Captures
	for _, df := range []int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		target := board.Squares[to]
		switch {
		case !target.IsEmpty() && target.Colour != colour:
			moves = appendPawnMove(moves, chess.NewMove(from, to, chess.NoPieceKind).WithCapture(), colour)
		case target.IsEmpty() && board.EnPassant && to == board.EPSquare:
			victim := squareAt(to.File(), from.Rank())
			if board.Squares[victim] == chess.MakePiece(colour.Opposite(), chess.Pawn) {
				moves = append(moves, chess.NewMove(from, to, chess.NoPieceKind).WithCapture().WithEnPassant())
			}
		}
	}

	return moves
}

// appendPawnMove appends m, expanded into the four promotions when it
// reaches the far rank.
func appendPawnMove(moves []chess.Move, m chess.Move, colour chess.Colour) []chess.Move {
	if m.To.Rank() != chess.HomeRank(colour.Opposite()) {
		return append(moves, m)
	}
	for _, kind := range promotionKinds {
		p := m
		p.Promotion = kind
		moves = append(moves, p)
	}
	return moves
}

// applyPawnMove applies a pawn move, including en passant and promotion.
func applyPawnMove(board *chess.Board, move chess.Move) {
	colour := board.ToMove
	pawn := board.Squares[move.From]

	// The captured pawn sits beside the mover, not on the target square.
	if move.EnPassant {
		board.Squares[squareAt(move.To.File(), move.From.Rank())] = chess.Piece{}
	}

	board.Squares[move.From] = chess.Piece{}
	if move.IsPromotion() {
		board.Squares[move.To] = chess.MakePiece(colour, move.Promotion)
	} else {
		board.Squares[move.To] = pawn
	}

	// Set en passant square if double pawn push
	board.EnPassant = false
	if abs(move.To.Rank()-move.From.Rank()) == 2 {
		board.EnPassant = true
		board.EPSquare = squareAt(move.From.File(), (move.From.Rank()+move.To.Rank())/2)
	}

	board.HalfmoveClock = 0 // Pawn move resets clock
}
