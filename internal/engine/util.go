package engine

import "github.com/lgbarn/chess-cli-go/internal/chess"

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// squareAt returns the square for an on-board file and rank.
func squareAt(file, rank int) chess.Square {
	return chess.Square(rank*chess.BoardSize + file)
}
