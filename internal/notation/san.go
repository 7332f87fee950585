package notation

import (
	"strings"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/engine"
)

// EncodeMove renders a move in standard algebraic notation for the position
// it is about to be played in, with the minimal disambiguation and a check
// or mate suffix. A move that is not legal falls back to its short
// display form.
func EncodeMove(board *chess.Board, m chess.Move) string {
	legal := engine.LegalMoves(board)
	move, ok := findMove(legal, m)
	if !ok {
		return m.Algebraic()
	}

	var sb strings.Builder

	if move.Castling {
		sb.WriteString(move.Algebraic())
	} else {
		piece := board.Get(move.From)
		if piece.Kind == chess.Pawn {
			if move.Capture {
				sb.WriteByte(move.From.String()[0])
				sb.WriteByte('x')
			}
			sb.WriteString(move.Algebraic())
		} else {
			sb.WriteByte(piece.Kind.Letter())
			sb.WriteString(disambiguation(board, legal, move))
			if move.Capture {
				sb.WriteByte('x')
			}
			sb.WriteString(move.To.String())
		}
	}

	sb.WriteString(checkSuffix(board, move))
	return sb.String()
}

// findMove returns the legal move with the same action as m.
func findMove(legal []chess.Move, m chess.Move) (chess.Move, bool) {
	for _, l := range legal {
		if l.SameAction(m) {
			return l, true
		}
	}
	return chess.Move{}, false
}

// disambiguation returns the origin file, rank or square needed to tell move
// apart from other moves of the same piece kind to the same square.
func disambiguation(board *chess.Board, legal []chess.Move, move chess.Move) string {
	kind := board.Get(move.From).Kind
	var rivals []chess.Square
	for _, l := range legal {
		if l.To == move.To && l.From != move.From && board.Get(l.From).Kind == kind {
			rivals = append(rivals, l.From)
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		if sq.File() == move.From.File() {
			sameFile = true
		}
		if sq.Rank() == move.From.Rank() {
			sameRank = true
		}
	}

	from := move.From.String()
	switch {
	case !sameFile:
		return from[:1]
	case !sameRank:
		return from[1:]
	}
	return from
}

// checkSuffix plays the move on a scratch board and reports "+" or "#".
func checkSuffix(board *chess.Board, move chess.Move) string {
	after := board.Snapshot()
	if err := engine.ApplyMove(after, move); err != nil {
		return ""
	}
	if !engine.IsInCheck(after, after.ToMove) {
		return ""
	}
	if engine.HasLegalMoves(after, after.ToMove) {
		return "+"
	}
	return "#"
}

// EncodeMoves renders a sequence of moves from the given position in SAN.
// The board is not modified. Encoding stops at the first illegal move.
func EncodeMoves(board *chess.Board, moves []chess.Move) ([]string, error) {
	work := board.Copy()
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		san := EncodeMove(work, m)
		if err := engine.ApplyMove(work, m); err != nil {
			return out, err
		}
		out = append(out, san)
	}
	return out, nil
}
