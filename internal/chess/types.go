// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Letter returns the FEN side-to-move letter.
func (c Colour) Letter() byte {
	if c == White {
		return 'w'
	}
	return 'b'
}

// PieceKind represents a chess piece type without colour.
type PieceKind int

const (
	NoPieceKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceKinds lists the six kinds in ascending order.
var PieceKinds = [...]PieceKind{Pawn, Knight, Bishop, Rook, Queen, King}

// String returns the string representation of a piece kind.
func (k PieceKind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece kind (uppercase).
func (k PieceKind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// PieceKindFromLetter converts a piece letter of either case to a kind.
func PieceKindFromLetter(c byte) PieceKind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoPieceKind
}

// Piece is a coloured piece. The zero Piece marks an empty square.
type Piece struct {
	Kind   PieceKind
	Colour Colour
}

// MakePiece creates a coloured piece value.
func MakePiece(colour Colour, kind PieceKind) Piece {
	return Piece{Kind: kind, Colour: colour}
}

// W creates a white piece.
func W(kind PieceKind) Piece {
	return MakePiece(White, kind)
}

// B creates a black piece.
func B(kind PieceKind) Piece {
	return MakePiece(Black, kind)
}

// IsEmpty reports whether p is the empty-square marker.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoPieceKind
}

// Letter returns the FEN letter: uppercase for White, lowercase for Black.
func (p Piece) Letter() byte {
	if p.IsEmpty() {
		return ' '
	}
	letter := p.Kind.Letter()
	if p.Colour == Black {
		letter += 'a' - 'A'
	}
	return letter
}

var whiteSymbols = [...]rune{' ', '♙', '♘', '♗', '♖', '♕', '♔'}
var blackSymbols = [...]rune{' ', '♟', '♞', '♝', '♜', '♛', '♚'}

// Symbol returns the Unicode glyph used for terminal display.
func (p Piece) Symbol() rune {
	if p.Kind < NoPieceKind || p.Kind > King {
		return '?'
	}
	if p.Colour == White {
		return whiteSymbols[p.Kind]
	}
	return blackSymbols[p.Kind]
}

// String returns a readable name such as "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// ColourOffset returns +1 for White, -1 for Black (for pawn direction).
func ColourOffset(colour Colour) int {
	if colour == White {
		return 1
	}
	return -1
}

// HomeRank returns the back rank index (0-based) of the given colour.
func HomeRank(colour Colour) int {
	if colour == White {
		return 0
	}
	return BoardSize - 1
}

// GameState is the terminal-state classification of a position.
type GameState int

const (
	InProgress GameState = iota
	Checkmate
	Stalemate
	Draw
)

// String returns the string representation of a game state.
func (s GameState) String() string {
	switch s {
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	case Draw:
		return "Draw"
	default:
		return "InProgress"
	}
}

// DrawReason identifies which draw rule applies to a position.
type DrawReason int

const (
	NoDraw DrawReason = iota
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
)

// String returns the string representation of a draw reason.
func (r DrawReason) String() string {
	switch r {
	case FiftyMoveRule:
		return "fifty-move rule"
	case ThreefoldRepetition:
		return "threefold repetition"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "none"
	}
}
