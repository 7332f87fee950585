package chess

import (
	"fmt"

	"github.com/lgbarn/chess-cli-go/internal/errors"
)

// Constants for board dimensions and coordinates.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	FileBase = 'a'
	RankBase = '1'
)

// Square is a board coordinate, indexed rank*8+file with a1 = 0 and h8 = 63.
// Values outside 0..63 are never produced by the constructors.
type Square int8

// NewSquare returns the square at the given 0-based file and rank.
func NewSquare(file, rank int) (Square, error) {
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return 0, fmt.Errorf("file %d rank %d: %w", file, rank, errors.ErrInvalidSquare)
	}
	return Square(rank*BoardSize + file), nil
}

// ParseSquare parses a two-character square name such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return 0, &errors.ParseError{
			Err:      errors.ErrInvalidSquare,
			Input:    s,
			Expected: "two characters",
			Got:      fmt.Sprintf("%d", len(s)),
		}
	}
	file, rank := s[0], s[1]
	if file < FileBase || file > FileBase+BoardSize-1 {
		return 0, &errors.ParseError{
			Err:      errors.ErrInvalidSquare,
			Input:    s,
			Column:   1,
			Expected: "file a-h",
			Got:      string(file),
		}
	}
	if rank < RankBase || rank > RankBase+BoardSize-1 {
		return 0, &errors.ParseError{
			Err:      errors.ErrInvalidSquare,
			Input:    s,
			Column:   2,
			Expected: "rank 1-8",
			Got:      string(rank),
		}
	}
	return Square(int(rank-RankBase)*BoardSize + int(file-FileBase)), nil
}

// MustParseSquare is like ParseSquare but panics on error.
// It simplifies safe initialization of fixed squares.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// File returns the 0-based file (a = 0).
func (s Square) File() int {
	return int(s) % BoardSize
}

// Rank returns the 0-based rank (rank 1 = 0).
func (s Square) Rank() int {
	return int(s) / BoardSize
}

// IsValid reports whether s lies on the board.
func (s Square) IsValid() bool {
	return s >= 0 && s < NumSquares
}

// Offset returns the square df files and dr ranks away, and false when that
// would leave the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	file, rank := s.File()+df, s.Rank()+dr
	if file < 0 || file >= BoardSize || rank < 0 || rank >= BoardSize {
		return 0, false
	}
	return Square(rank*BoardSize + file), true
}

// String returns the algebraic name of the square.
func (s Square) String() string {
	if !s.IsValid() {
		return "-"
	}
	return string([]byte{byte(FileBase + s.File()), byte(RankBase + s.Rank())})
}
