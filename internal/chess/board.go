package chess

// CastlingRights records which castling moves are still permitted.
// A right, once revoked, is never restored.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// AllCastlingRights is the castling state of the initial position.
var AllCastlingRights = CastlingRights{true, true, true, true}

// Kingside reports whether the colour may still castle kingside.
func (c CastlingRights) Kingside(colour Colour) bool {
	if colour == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

// Queenside reports whether the colour may still castle queenside.
func (c CastlingRights) Queenside(colour Colour) bool {
	if colour == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

// Any reports whether any castling right remains.
func (c CastlingRights) Any() bool {
	return c.WhiteKingside || c.WhiteQueenside || c.BlackKingside || c.BlackQueenside
}

// String returns the FEN castling field, e.g. "KQkq" or "-".
func (c CastlingRights) String() string {
	var b []byte
	if c.WhiteKingside {
		b = append(b, 'K')
	}
	if c.WhiteQueenside {
		b = append(b, 'Q')
	}
	if c.BlackKingside {
		b = append(b, 'k')
	}
	if c.BlackQueenside {
		b = append(b, 'q')
	}
	if len(b) == 0 {
		return "-"
	}
	return string(b)
}

// Board represents a chess board with all state needed for the game.
type Board struct {
	// Piece placement indexed by Square; the zero Piece is an empty square.
	Squares [NumSquares]Piece

	// Who has the next move.
	ToMove Colour

	// The current (full) move number.
	MoveNumber uint

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint

	// Remaining castling rights.
	Castling CastlingRights

	// Is EnPassant capture possible? If so then EPSquare is the square
	// the double-stepping pawn skipped over.
	EnPassant bool
	EPSquare  Square

	// Zobrist hash of the current position.
	Zobrist uint64

	// Zobrist hashes of every position reached so far, current one last.
	History []uint64
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{
		ToMove:     White,
		MoveNumber: 1,
	}
}

// SetupInitialPosition sets up the standard chess starting position.
// Hash fields are left for the caller to recompute.
func (b *Board) SetupInitialPosition() {
	b.Squares = [NumSquares]Piece{}

	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		b.Squares[Square(file)] = W(backRank[file])
		b.Squares[Square(BoardSize+file)] = W(Pawn)
		b.Squares[Square(6*BoardSize+file)] = B(Pawn)
		b.Squares[Square(7*BoardSize+file)] = B(backRank[file])
	}

	b.ToMove = White
	b.MoveNumber = 1
	b.HalfmoveClock = 0
	b.Castling = AllCastlingRights
	b.EnPassant = false
	b.EPSquare = 0
	b.History = nil
}

// Get returns the piece at the given square.
func (b *Board) Get(sq Square) Piece {
	if !sq.IsValid() {
		return Piece{}
	}
	return b.Squares[sq]
}

// Set places a piece at the given square.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.IsValid() {
		b.Squares[sq] = piece
	}
}

// PieceAt returns the piece on sq and whether the square is occupied.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	p := b.Get(sq)
	return p, !p.IsEmpty()
}

// SideToMove returns the colour to move.
func (b *Board) SideToMove() Colour {
	return b.ToMove
}

// FullmoveNumber returns the current move number.
func (b *Board) FullmoveNumber() uint {
	return b.MoveNumber
}

// PlyNumber returns the 1-based half-move about to be played.
func (b *Board) PlyNumber() int {
	ply := int(b.MoveNumber-1)*2 + 1
	if b.ToMove == Black {
		ply++
	}
	return ply
}

// KingSquare finds the king of the given colour on the board.
func (b *Board) KingSquare(colour Colour) (Square, bool) {
	king := MakePiece(colour, King)
	for sq := Square(0); sq < NumSquares; sq++ {
		if b.Squares[sq] == king {
			return sq, true
		}
	}
	return 0, false
}

// Copy creates a deep copy of the board, including its history.
func (b *Board) Copy() *Board {
	newBoard := b.Snapshot()
	newBoard.History = append([]uint64(nil), b.History...)
	return newBoard
}

// Snapshot copies the position without its history. It is the scratch copy
// used to try out moves; it cannot answer repetition queries.
func (b *Board) Snapshot() *Board {
	newBoard := &Board{}
	*newBoard = *b
	newBoard.History = nil
	return newBoard
}
