package output

import (
	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/config"
)

// JSONGame represents a game in JSON format.
type JSONGame struct {
	Tags       map[string]string `json:"tags"`
	Moves      []JSONMove        `json:"moves,omitempty"`
	Result     string            `json:"result,omitempty"`
	PlyCount   int               `json:"plyCount,omitempty"`
	FinalFEN   string            `json:"finalFEN,omitempty"`
	InitialFEN string            `json:"initialFEN,omitempty"`
}

// JSONMove represents a move in JSON format.
type JSONMove struct {
	MoveNumber int    `json:"moveNumber,omitempty"`
	Color      string `json:"color"` // "white" or "black"
	SAN        string `json:"san"`
	UCI        string `json:"uci"`
	From       string `json:"from"`
	To         string `json:"to"`
	Piece      string `json:"piece,omitempty"`
	Captured   string `json:"captured,omitempty"`
	Promotion  string `json:"promotion,omitempty"`
	FEN        string `json:"fen,omitempty"`
}

// JSONOutput holds multiple games for array output.
type JSONOutput struct {
	Games []*JSONGame `json:"games"`
}

// GameToJSON converts a game record to JSON form.
func GameToJSON(game *chess.Game, cfg *config.Config) *JSONGame {
	jg := &JSONGame{
		Tags:       copyTags(game.Tags),
		InitialFEN: game.FEN(),
		PlyCount:   game.PlyCount(),
		Result:     game.Result(),
		Moves:      make([]JSONMove, 0, len(game.Moves)),
	}

	for _, gm := range game.Moves {
		jm := convertMove(gm)
		if cfg.Output.AddFENComments {
			jm.FEN = gm.FEN
		}
		jg.Moves = append(jg.Moves, jm)
	}

	if last, ok := game.LastMove(); ok {
		jg.FinalFEN = last.FEN
	}

	return jg
}

// copyTags copies game tags and ensures seven tag roster has values.
func copyTags(tags map[string]string) map[string]string {
	result := make(map[string]string, len(tags)+len(chess.SevenTagRoster))
	for k, v := range tags {
		result[k] = v
	}
	for _, tag := range chess.SevenTagRoster {
		if _, ok := result[tag]; !ok {
			result[tag] = "?"
		}
	}
	return result
}

func convertMove(gm chess.GameMove) JSONMove {
	jm := JSONMove{
		SAN:      gm.SAN,
		UCI:      gm.Move.UCI(),
		Color:    colorName(gm.Colour),
		From:     gm.Move.From.String(),
		To:       gm.Move.To.String(),
		Piece:    pieceTypeName(gm.Piece),
		Captured: pieceTypeName(gm.Captured),
	}
	if gm.Colour == chess.White {
		jm.MoveNumber = int(gm.Number)
	}
	if gm.Move.IsPromotion() {
		jm.Promotion = pieceTypeName(gm.Move.Promotion)
	}
	return jm
}

func colorName(c chess.Colour) string {
	if c == chess.White {
		return "white"
	}
	return "black"
}

// pieceTypeName returns the piece kind as a lowercase word.
func pieceTypeName(k chess.PieceKind) string {
	switch k {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	default:
		return ""
	}
}
