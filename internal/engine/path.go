package engine

import "github.com/lgbarn/chess-cli-go/internal/chess"

// canPieceMove checks if a non-pawn piece's movement pattern reaches the
// target square with a clear path. Occupancy of the target is not checked.
func canPieceMove(board *chess.Board, kind chess.PieceKind, from, to chess.Square) bool {
	fileDiff := abs(to.File() - from.File())
	rankDiff := abs(to.Rank() - from.Rank())
	if fileDiff == 0 && rankDiff == 0 {
		return false
	}

	switch kind {
	case chess.Knight:
		return (fileDiff == 1 && rankDiff == 2) || (fileDiff == 2 && rankDiff == 1)

	case chess.Bishop:
		if fileDiff != rankDiff {
			return false
		}
		return isPathClear(board, from, to)

	case chess.Rook:
		if fileDiff != 0 && rankDiff != 0 {
			return false
		}
		return isPathClear(board, from, to)

	case chess.Queen:
		if fileDiff == rankDiff || fileDiff == 0 || rankDiff == 0 {
			return isPathClear(board, from, to)
		}
		return false

	case chess.King:
		return fileDiff <= 1 && rankDiff <= 1
	}

	return false
}

// isPathClear checks that every square strictly between from and to is
// empty. The squares must share a file, rank or diagonal.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	fileDir := sign(to.File() - from.File())
	rankDir := sign(to.Rank() - from.Rank())

	sq, ok := from.Offset(fileDir, rankDir)
	for ok && sq != to {
		if !board.Squares[sq].IsEmpty() {
			return false
		}
		sq, ok = sq.Offset(fileDir, rankDir)
	}

	return true
}
