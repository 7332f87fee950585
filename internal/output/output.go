// Package output renders boards and game records for the terminal and for
// saved files.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/config"
)

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a string, adding a space separator if needed.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
			o.needsSpace = false
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *OutputWriter) NewLine() {
	fmt.Fprintln(o.w)
	o.lineLength = 0
	o.needsSpace = false
}

// OutputGame writes a game record in PGN form: tags, a blank line, the
// movetext and a trailing blank line.
func OutputGame(game *chess.Game, cfg *config.Config, w io.Writer) {
	outputTags(game, cfg, w)
	fmt.Fprintln(w)
	outputMoves(game, cfg, w)
	fmt.Fprintln(w)
}

// outputTags writes the seven tag roster in order, then any other tags
// sorted by name.
func outputTags(game *chess.Game, cfg *config.Config, w io.Writer) {
	if cfg.Output.TagFormat == config.NoTags {
		return
	}

	for _, tag := range chess.SevenTagRoster {
		value := game.GetTag(tag)
		if tag == chess.ResultTag {
			value = game.Result()
		}
		if value == "" {
			value = "?"
		}
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(value))
	}

	if cfg.Output.TagFormat == config.SevenTagRoster {
		return
	}

	extra := make([]string, 0, len(game.Tags))
	for tag := range game.Tags {
		if !chess.IsSevenTagRosterTag(tag) {
			extra = append(extra, tag)
		}
	}
	sort.Strings(extra)
	for _, tag := range extra {
		fmt.Fprintf(w, "[%s \"%s\"]\n", tag, escapeTagValue(game.Tags[tag]))
	}
}

// escapeTagValue escapes special characters in tag values.
func escapeTagValue(s string) string {
	if !strings.ContainsAny(s, "\\\"") {
		return s
	}
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// outputMoves writes numbered movetext. A record whose first move is
// Black's opens with "N...".
func outputMoves(game *chess.Game, cfg *config.Config, w io.Writer) {
	ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))

	for i, gm := range game.Moves {
		if cfg.Output.KeepMoveNumbers {
			if gm.Colour == chess.White {
				ow.Write(fmt.Sprintf("%d.", gm.Number))
			} else if i == 0 {
				ow.Write(fmt.Sprintf("%d...", gm.Number))
			}
		}
		ow.Write(formatMove(gm, cfg.Output.Format))
	}

	if cfg.Output.KeepResults {
		ow.Write(game.Result())
	}

	ow.NewLine()
}

// formatMove renders a recorded move in the configured notation.
func formatMove(gm chess.GameMove, format config.OutputFormat) string {
	switch format {
	case config.LALG:
		return formatLongAlgebraic(gm, false)
	case config.HALG:
		return formatLongAlgebraic(gm, true)
	case config.UCI:
		return gm.Move.UCI()
	default:
		if gm.SAN != "" {
			return gm.SAN
		}
		return gm.Move.Algebraic()
	}
}

// formatLongAlgebraic formats a move as origin and destination squares,
// optionally joined by '-' or 'x'.
func formatLongAlgebraic(gm chess.GameMove, hyphenated bool) string {
	m := gm.Move
	if m.Castling {
		return m.Algebraic()
	}

	var sb strings.Builder
	sb.WriteString(m.From.String())
	if hyphenated {
		if m.Capture {
			sb.WriteByte('x')
		} else {
			sb.WriteByte('-')
		}
	}
	sb.WriteString(m.To.String())

	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteByte(m.Promotion.Letter())
	}

	return sb.String()
}
