package engine

import (
	"github.com/lgbarn/chess-cli-go/internal/chess"
)

// Draw thresholds.
const (
	// FiftyMoveHalfmoves is the halfmove clock value that ends the game.
	FiftyMoveHalfmoves = 100

	// RepetitionLimit is how often a position must occur to draw.
	RepetitionLimit = 3
)

// DrawRuleResult contains the results of draw rule detection.
type DrawRuleResult struct {
	// HasFiftyMoveRule is true if 50 moves (100 half-moves) have been made
	// without a pawn move or capture.
	HasFiftyMoveRule bool

	// HasThreefoldRepetition is true if the current position has occurred
	// three or more times.
	HasThreefoldRepetition bool

	// HasInsufficientMaterial is true if neither side can mate.
	HasInsufficientMaterial bool
}

// Any reports whether any draw rule holds.
func (r DrawRuleResult) Any() bool {
	return r.HasFiftyMoveRule || r.HasThreefoldRepetition || r.HasInsufficientMaterial
}

// AnalyzeDrawRules evaluates every draw rule for the current position.
func AnalyzeDrawRules(board *chess.Board) DrawRuleResult {
	return DrawRuleResult{
		HasFiftyMoveRule:        board.HalfmoveClock >= FiftyMoveHalfmoves,
		HasThreefoldRepetition:  RepetitionCount(board) >= RepetitionLimit,
		HasInsufficientMaterial: HasInsufficientMaterial(board),
	}
}

// HasInsufficientMaterial returns true if the position has insufficient
// mating material for either side.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+B vs K+B (same color bishops)
func HasInsufficientMaterial(board *chess.Board) bool {
	var whitePieces, blackPieces []chess.PieceKind
	var whiteBishopOnLight, blackBishopOnLight bool

	// Count pieces for each side
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		piece := board.Squares[sq]
		if piece.IsEmpty() {
			continue
		}

		switch piece.Kind {
		case chess.King:
			// Kings don't count for material
			continue
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		}

		if piece.Colour == chess.White {
			whitePieces = append(whitePieces, piece.Kind)
			if piece.Kind == chess.Bishop {
				whiteBishopOnLight = isLightSquare(sq)
			}
		} else {
			blackPieces = append(blackPieces, piece.Kind)
			if piece.Kind == chess.Bishop {
				blackBishopOnLight = isLightSquare(sq)
			}
		}
	}

	// K vs K
	if len(whitePieces) == 0 && len(blackPieces) == 0 {
		return true
	}

	// K+B vs K or K+N vs K
	if len(whitePieces) == 0 && len(blackPieces) == 1 {
		return blackPieces[0] == chess.Bishop || blackPieces[0] == chess.Knight
	}
	if len(blackPieces) == 0 && len(whitePieces) == 1 {
		return whitePieces[0] == chess.Bishop || whitePieces[0] == chess.Knight
	}

	// K+B vs K+B (same color bishops)
	if len(whitePieces) == 1 && len(blackPieces) == 1 {
		if whitePieces[0] == chess.Bishop && blackPieces[0] == chess.Bishop {
			return whiteBishopOnLight == blackBishopOnLight
		}
	}

	return false
}

// isLightSquare returns true if the given square is a light square.
func isLightSquare(sq chess.Square) bool {
	return (sq.File()+sq.Rank())%2 == 1
}
