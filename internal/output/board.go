package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/config"
	"github.com/lgbarn/chess-cli-go/internal/engine"
)

// BoardRenderer draws positions as text, one line per rank, with optional
// ANSI colouring of squares and pieces.
type BoardRenderer struct {
	out     io.Writer
	colour  bool
	unicode bool
	flip    bool

	label *color.Color
	alert *color.Color
	info  *color.Color
}

// NewBoardRenderer creates a renderer writing to w with the given display
// settings.
func NewBoardRenderer(w io.Writer, cfg *config.DisplayConfig) *BoardRenderer {
	r := &BoardRenderer{
		out:     w,
		colour:  cfg.Colour,
		unicode: cfg.Unicode,
		flip:    cfg.Flip,
		label:   color.New(color.FgCyan),
		alert:   color.New(color.FgRed, color.Bold),
		info:    color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{r.label, r.alert, r.info} {
		r.setColour(c)
	}
	return r
}

// setColour pins c to the renderer's setting so output does not depend on
// whether the process writes to a terminal.
func (r *BoardRenderer) setColour(c *color.Color) *color.Color {
	if r.colour {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// squareStyle returns the style for a square and the piece on it.
func (r *BoardRenderer) squareStyle(light bool, piece chess.Piece) *color.Color {
	bg := color.BgGreen
	if light {
		bg = color.BgHiBlack
	}
	fg := color.FgHiWhite
	if !piece.IsEmpty() && piece.Colour == chess.Black {
		fg = color.FgBlack
	}
	return r.setColour(color.New(bg, fg, color.Bold))
}

// glyph returns the character drawn for a square's contents.
func (r *BoardRenderer) glyph(piece chess.Piece) string {
	if piece.IsEmpty() {
		if r.colour {
			return " "
		}
		return "."
	}
	if r.unicode {
		return string(piece.Symbol())
	}
	return string(piece.Letter())
}

// Render draws the board with rank and file labels. White is at the
// bottom unless the renderer is flipped.
func (r *BoardRenderer) Render(board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		rank := chess.BoardSize - 1 - row
		if r.flip {
			rank = row
		}

		var sb strings.Builder
		sb.WriteString(r.label.Sprintf("%d", rank+1))
		for col := 0; col < chess.BoardSize; col++ {
			file := col
			if r.flip {
				file = chess.BoardSize - 1 - col
			}
			sq, _ := chess.NewSquare(file, rank)
			piece := board.Get(sq)
			light := (file+rank)%2 == 1
			sb.WriteString(r.squareStyle(light, piece).Sprint(" " + r.glyph(piece)))
		}
		fmt.Fprintln(r.out, sb.String())
	}

	var files strings.Builder
	files.WriteString(" ")
	for col := 0; col < chess.BoardSize; col++ {
		file := col
		if r.flip {
			file = chess.BoardSize - 1 - col
		}
		files.WriteByte(' ')
		files.WriteByte(byte(chess.FileBase + file))
	}
	fmt.Fprintln(r.out, r.label.Sprint(files.String()))
}

// RenderStatus prints whose turn it is, check, the game outcome when the
// game has ended, and the engine's evaluation when one is given.
func (r *BoardRenderer) RenderStatus(board *chess.Board, eval *engine.Evaluation) {
	state := engine.GameState(board)

	switch state {
	case chess.Checkmate:
		fmt.Fprintln(r.out, r.alert.Sprintf("Checkmate. %s wins.", board.ToMove.Opposite()))
	case chess.Stalemate:
		fmt.Fprintln(r.out, r.alert.Sprint("Stalemate. The game is drawn."))
	case chess.Draw:
		fmt.Fprintln(r.out, r.alert.Sprintf("Draw by %s.", engine.DrawReason(board)))
	default:
		fmt.Fprintln(r.out, r.label.Sprintf("%s to move", board.ToMove))
		if engine.IsInCheck(board, board.ToMove) {
			fmt.Fprintln(r.out, r.alert.Sprint("Check!"))
		}
	}

	if eval != nil && (eval.Depth > 0 || eval.IsMate || eval.Score != 0) {
		fmt.Fprintln(r.out, r.info.Sprintf("Eval: %s (depth %d)", engine.FormatEvaluation(eval), eval.Depth))
	}
}
