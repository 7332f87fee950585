// Package hashing provides Zobrist position keys and repetition counting.
package hashing

import (
	"math/rand"

	"github.com/lgbarn/chess-cli-go/internal/chess"
)

// zobristSeed fixes the key tables so hashes are stable across runs.
const zobristSeed = 0x5eed_c0de_2024

var (
	pieceKeys    [2][7][chess.NumSquares]uint64
	whiteToMove  uint64
	castlingKeys [4]uint64
	epFileKeys   [chess.BoardSize]uint64
)

func init() {
	r := rand.New(rand.NewSource(zobristSeed))
	for colour := range pieceKeys {
		for kind := range pieceKeys[colour] {
			for sq := range pieceKeys[colour][kind] {
				pieceKeys[colour][kind][sq] = r.Uint64()
			}
		}
	}
	whiteToMove = r.Uint64()
	for i := range castlingKeys {
		castlingKeys[i] = r.Uint64()
	}
	for i := range epFileKeys {
		epFileKeys[i] = r.Uint64()
	}
}

// GenerateZobristHash computes the position key for repetition detection.
// It covers placement, side to move, castling rights and the en passant file
// when a capture there is possible for a pawn standing beside the target.
func GenerateZobristHash(board *chess.Board) uint64 {
	var hash uint64

	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		p := board.Squares[sq]
		if p.IsEmpty() {
			continue
		}
		hash ^= pieceKeys[p.Colour][p.Kind][sq]
	}

	if board.ToMove == chess.White {
		hash ^= whiteToMove
	}

	rights := [4]bool{
		board.Castling.WhiteKingside,
		board.Castling.WhiteQueenside,
		board.Castling.BlackKingside,
		board.Castling.BlackQueenside,
	}
	for i, ok := range rights {
		if ok {
			hash ^= castlingKeys[i]
		}
	}

	if board.EnPassant && epCapturable(board) {
		hash ^= epFileKeys[board.EPSquare.File()]
	}

	return hash
}

// epCapturable reports whether a pawn of the side to move stands next to the
// pawn that just double-stepped.
func epCapturable(board *chess.Board) bool {
	pawnSq, ok := board.EPSquare.Offset(0, -chess.ColourOffset(board.ToMove))
	if !ok {
		return false
	}
	ours := chess.MakePiece(board.ToMove, chess.Pawn)
	for _, df := range []int{-1, 1} {
		if sq, ok := pawnSq.Offset(df, 0); ok && board.Get(sq) == ours {
			return true
		}
	}
	return false
}

// CountOccurrences returns how many times key appears in history.
func CountOccurrences(history []uint64, key uint64) int {
	count := 0
	for _, h := range history {
		if h == key {
			count++
		}
	}
	return count
}
