// Package notation converts between human move text and moves.
package notation

import (
	stderrors "errors"
	"strings"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/engine"
	"github.com/lgbarn/chess-cli-go/internal/errors"
)

// castleSide distinguishes castling text from ordinary moves.
type castleSide int

const (
	noCastle castleSide = iota
	kingside
	queenside
)

// movePattern holds what the move text says before the board is consulted.
// Coordinates are -1 when the text leaves them open.
type movePattern struct {
	kind      chess.PieceKind // NoPieceKind: any piece (coordinate input)
	fromFile  int
	fromRank  int
	toFile    int
	toRank    int
	promotion chess.PieceKind
	castle    castleSide
}

// isFile returns true if c is a valid file character.
func isFile(c byte) bool {
	return c >= chess.FileBase && c < chess.FileBase+chess.BoardSize
}

// isRank returns true if c is a valid rank character.
func isRank(c byte) bool {
	return c >= chess.RankBase && c < chess.RankBase+chess.BoardSize
}

// pieceKind returns the piece named by an uppercase SAN letter. Lowercase
// letters are files, so "b" is never a bishop here.
func pieceKind(c byte) chess.PieceKind {
	switch c {
	case 'K', 'Q', 'R', 'B', 'N':
		return chess.PieceKindFromLetter(c)
	}
	return chess.NoPieceKind
}

// promotionKind accepts promotion letters of either case.
func promotionKind(c byte) chess.PieceKind {
	switch kind := chess.PieceKindFromLetter(c); kind {
	case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
		return kind
	}
	return chess.NoPieceKind
}

// isCapture returns true if c is a capture or separator character.
func isCapture(c byte) bool {
	return c == 'x' || c == 'X' || c == ':' || c == '-'
}

// isCastlingChar returns true if c is a castling character.
func isCastlingChar(c byte) bool {
	return c == 'O' || c == '0' || c == 'o'
}

// isSuffix returns true for check marks and annotation glyphs.
func isSuffix(c byte) bool {
	return c == '+' || c == '#' || c == '!' || c == '?'
}

// parsePattern decodes SAN ("e4", "Nbd7", "exd5", "e8=Q", "O-O") or
// coordinate text ("e2e4", "e7e8q") into a movePattern.
func parsePattern(text string) (movePattern, error) {
	p := movePattern{fromFile: -1, fromRank: -1, toFile: -1, toRank: -1}
	pos := 0

	current := func() byte {
		if pos >= len(text) {
			return 0
		}
		return text[pos]
	}

	advance := func() {
		if pos < len(text) {
			pos++
		}
	}

	fail := func(expected string) error {
		got := "end of input"
		if pos < len(text) {
			got = "'" + text[pos:pos+1] + "'"
		}
		return &errors.ParseError{
			Err:      errors.ErrParseFailure,
			Input:    text,
			Column:   pos + 1,
			Expected: expected,
			Got:      got,
		}
	}

	// target reads a full destination square.
	target := func() error {
		if !isFile(current()) {
			return fail("destination file")
		}
		p.toFile = int(current() - chess.FileBase)
		advance()
		if !isRank(current()) {
			return fail("destination rank")
		}
		p.toRank = int(current() - chess.RankBase)
		advance()
		return nil
	}

	switch c := current(); {
	case isFile(c):
		file := int(c - chess.FileBase)
		advance()

		if isRank(current()) {
			// e4, e2e4, e2-e4
			rank := int(current() - chess.RankBase)
			advance()

			if isCapture(current()) {
				advance()
			}

			if isFile(current()) {
				p.fromFile, p.fromRank = file, rank
				if err := target(); err != nil {
					return p, err
				}
			} else {
				p.kind = chess.Pawn
				p.toFile, p.toRank = file, rank
			}
		} else {
			// exd5, exd
			p.kind = chess.Pawn
			if isCapture(current()) {
				advance()
			}
			if !isFile(current()) {
				return p, fail("rank or capture file")
			}
			p.fromFile = file
			p.toFile = int(current() - chess.FileBase)
			advance()
			if isRank(current()) {
				p.toRank = int(current() - chess.RankBase)
				advance()
			}
			if p.toFile != p.fromFile+1 && p.toFile != p.fromFile-1 {
				return p, fail("capture on an adjacent file")
			}
		}

		// Promotion, with or without '='
		if current() == '=' {
			advance()
			if promotionKind(current()) == chess.NoPieceKind {
				return p, fail("promotion piece")
			}
		}
		if kind := promotionKind(current()); kind != chess.NoPieceKind {
			p.promotion = kind
			advance()
		}

	case pieceKind(c) != chess.NoPieceKind:
		p.kind = pieceKind(c)
		advance()

		switch {
		case isRank(current()):
			// Disambiguating rank: R1e1, R1xe3
			p.fromRank = int(current() - chess.RankBase)
			advance()
			if isCapture(current()) {
				advance()
			}
			if err := target(); err != nil {
				return p, err
			}

		case isCapture(current()):
			// Rxe1
			advance()
			if err := target(); err != nil {
				return p, err
			}

		case isFile(current()):
			file := int(current() - chess.FileBase)
			advance()

			switch {
			case isCapture(current()):
				// Nbxd7
				advance()
				p.fromFile = file
				if err := target(); err != nil {
					return p, err
				}
			case isRank(current()):
				rank := int(current() - chess.RankBase)
				advance()
				if isCapture(current()) {
					advance()
				}
				if isFile(current()) {
					// Ng1f3, Ng1xf3
					p.fromFile, p.fromRank = file, rank
					if err := target(); err != nil {
						return p, err
					}
				} else {
					p.toFile, p.toRank = file, rank
				}
			case isFile(current()):
				// Nbd7
				p.fromFile = file
				if err := target(); err != nil {
					return p, err
				}
			default:
				return p, fail("square")
			}

		default:
			return p, fail("square")
		}

	case isCastlingChar(c):
		advance()
		if current() == '-' {
			advance()
		}
		if !isCastlingChar(current()) {
			return p, fail("castling")
		}
		advance()
		p.castle = kingside

		if current() == '-' {
			advance()
			if !isCastlingChar(current()) {
				return p, fail("castling")
			}
		}
		if isCastlingChar(current()) {
			advance()
			p.castle = queenside
		}
		p.kind = chess.King

	default:
		return p, fail("piece, file or castling")
	}

	for isSuffix(current()) {
		advance()
	}

	if rest := text[pos:]; rest != "" {
		if p.kind == chess.Pawn && (rest == "ep" || rest == "e.p.") {
			return p, nil
		}
		return p, fail("end of move")
	}

	return p, nil
}

// matches reports whether the legal move m fits the pattern.
func (p movePattern) matches(board *chess.Board, m chess.Move) bool {
	if p.castle != noCastle {
		if !m.Castling {
			return false
		}
		if p.castle == kingside {
			return m.To.File() == 6
		}
		return m.To.File() == 2
	}

	// SAN castling is only written with O's; "Kg1" is a king step.
	if m.Castling && p.kind != chess.NoPieceKind {
		return false
	}

	if p.kind != chess.NoPieceKind && board.Get(m.From).Kind != p.kind {
		return false
	}
	if p.toFile >= 0 && m.To.File() != p.toFile {
		return false
	}
	if p.toRank >= 0 && m.To.Rank() != p.toRank {
		return false
	}
	if p.fromFile >= 0 && m.From.File() != p.fromFile {
		return false
	}
	if p.fromRank >= 0 && m.From.Rank() != p.fromRank {
		return false
	}

	// A promotion without a piece letter means a queen.
	want := p.promotion
	if want == chess.NoPieceKind && m.IsPromotion() {
		want = chess.Queen
	}
	return m.Promotion == want
}

// DecodeMove resolves move text against the legal moves of the position.
// Both SAN and coordinate notation are accepted; a missing promotion piece
// selects the queen. A lowercase piece letter ("nf3") is read as the piece
// when the text names no legal pawn move. Unparseable text returns a
// *errors.ParseError; text that matches no legal move or several returns a
// *errors.MoveError wrapping ErrIllegalMove or ErrAmbiguousMove.
func DecodeMove(board *chess.Board, text string) (chess.Move, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chess.Move{}, &errors.ParseError{
			Err:      errors.ErrParseFailure,
			Expected: "a move",
		}
	}

	m, err := decodeExact(board, text)
	if err == nil || stderrors.Is(err, errors.ErrAmbiguousMove) {
		return m, err
	}
	if c := text[0]; c != upper(c) && pieceKind(upper(c)) != chess.NoPieceKind {
		if alt, altErr := decodeExact(board, string(upper(text[0]))+text[1:]); altErr == nil {
			return alt, nil
		}
	}
	return chess.Move{}, err
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// decodeExact resolves text with SAN's letter case taken literally.
func decodeExact(board *chess.Board, text string) (chess.Move, error) {
	p, err := parsePattern(text)
	if err != nil {
		return chess.Move{}, err
	}

	var found []chess.Move
	for _, m := range engine.LegalMoves(board) {
		if p.matches(board, m) {
			found = append(found, m)
		}
	}

	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return chess.Move{}, moveError(board, text, errors.ErrIllegalMove)
	default:
		return chess.Move{}, moveError(board, text, errors.ErrAmbiguousMove)
	}
}

func moveError(board *chess.Board, text string, err error) error {
	return &errors.MoveError{
		Err:      err,
		PlyNum:   board.PlyNumber(),
		MoveText: text,
		FEN:      engine.BoardToFEN(board),
	}
}
