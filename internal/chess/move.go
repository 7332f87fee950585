package chess

import (
	"github.com/lgbarn/chess-cli-go/internal/errors"
)

// Move represents a single chess move. Moves are values: the With* helpers
// return modified copies and never touch the receiver.
type Move struct {
	// Source and destination squares.
	From Square
	To   Square

	// The piece promoted to (NoPieceKind if not a promotion).
	Promotion PieceKind

	// Move classification flags, filled in by move generation.
	Capture   bool
	Castling  bool
	EnPassant bool
}

// NewMove creates a move with all flags cleared.
func NewMove(from, to Square, promotion PieceKind) Move {
	return Move{From: from, To: to, Promotion: promotion}
}

// WithCapture returns a copy of m marked as a capture.
func (m Move) WithCapture() Move {
	m.Capture = true
	return m
}

// WithCastling returns a copy of m marked as a castling move.
func (m Move) WithCastling() Move {
	m.Castling = true
	return m
}

// WithEnPassant returns a copy of m marked as an en passant capture.
func (m Move) WithEnPassant() Move {
	m.EnPassant = true
	return m
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoPieceKind
}

// SameAction reports whether two moves have the same from, to and promotion,
// ignoring the classification flags.
func (m Move) SameAction(other Move) bool {
	return m.From == other.From && m.To == other.To && m.Promotion == other.Promotion
}

// promotionLetter maps a promotion kind to its uppercase letter. Kinds that
// cannot be promoted to fall back to the queen.
func promotionLetter(kind PieceKind) byte {
	switch kind {
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	default:
		return 'Q'
	}
}

// Algebraic returns the short display form: destination square with an
// optional "=Q" style promotion suffix, or O-O / O-O-O for castling.
func (m Move) Algebraic() string {
	if m.Castling {
		if m.To.File() == 6 {
			return "O-O"
		}
		return "O-O-O"
	}
	text := m.To.String()
	if m.IsPromotion() {
		text += "=" + string(promotionLetter(m.Promotion))
	}
	return text
}

// UCI returns the compact coordinate form used by the engine protocol,
// e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	text := m.From.String() + m.To.String()
	if m.IsPromotion() {
		text += string(promotionLetter(m.Promotion) + 'a' - 'A')
	}
	return text
}

// String returns the coordinate form of the move.
func (m Move) String() string {
	return m.UCI()
}

// ParseUCIMove parses coordinate notation: from square, to square and an
// optional lowercase promotion letter (q, r, b, n).
func ParseUCIMove(text string) (Move, error) {
	if len(text) != 4 && len(text) != 5 {
		return Move{}, &errors.ParseError{
			Err:      errors.ErrMalformedMove,
			Input:    text,
			Expected: "4 or 5 characters",
		}
	}
	from, err := ParseSquare(text[0:2])
	if err != nil {
		return Move{}, &errors.ParseError{Err: errors.ErrMalformedMove, Input: text, Column: 1, Expected: "from square", Got: text[0:2]}
	}
	to, err := ParseSquare(text[2:4])
	if err != nil {
		return Move{}, &errors.ParseError{Err: errors.ErrMalformedMove, Input: text, Column: 3, Expected: "to square", Got: text[2:4]}
	}

	promotion := NoPieceKind
	if len(text) == 5 {
		switch text[4] {
		case 'q':
			promotion = Queen
		case 'r':
			promotion = Rook
		case 'b':
			promotion = Bishop
		case 'n':
			promotion = Knight
		default:
			return Move{}, &errors.ParseError{
				Err:      errors.ErrMalformedMove,
				Input:    text,
				Column:   5,
				Expected: "promotion letter q, r, b or n",
				Got:      text[4:],
			}
		}
	}
	return NewMove(from, to, promotion), nil
}

// MustParseUCIMove is like ParseUCIMove but panics on error.
func MustParseUCIMove(text string) Move {
	m, err := ParseUCIMove(text)
	if err != nil {
		panic(err)
	}
	return m
}
