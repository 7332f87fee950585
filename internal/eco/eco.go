// Package eco provides ECO (Encyclopaedia of Chess Openings) classification
// of games against a book of opening lines read from PGN.
package eco

import (
	"fmt"
	"io"
	"os"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/config"
	"github.com/lgbarn/chess-cli-go/internal/parser"
)

// HalfMoveLimit is the maximum distance in plies from a book line for a
// transposed position to still match it.
const HalfMoveLimit = 6

// tableSize is the number of hash buckets.
const tableSize = 4096

// Entry is a single classified opening line.
type Entry struct {
	Code         string // e.g., "B33"
	Opening      string // e.g., "Sicilian"
	Variation    string // e.g., "Sveshnikov"
	SubVariation string

	positionHash   uint64 // Key of the final position of the line
	cumulativeHash uint64 // XOR of the keys of every position on the line
	halfMoves      int
	next           *Entry
}

// String returns the code and names, e.g. "B90 Sicilian: Najdorf".
func (e *Entry) String() string {
	s := e.Code
	if e.Opening != "" {
		s += " " + e.Opening
	}
	if e.Variation != "" {
		s += ": " + e.Variation
	}
	if e.SubVariation != "" {
		s += ", " + e.SubVariation
	}
	return s
}

// SetTags writes the entry's ECO, Opening, Variation and SubVariation tags.
func (e *Entry) SetTags(game *chess.Game) {
	game.SetTag(chess.ECOTag, e.Code)
	for tag, value := range map[string]string{
		chess.OpeningTag:      e.Opening,
		chess.VariationTag:    e.Variation,
		chess.SubVariationTag: e.SubVariation,
	} {
		if value != "" {
			game.SetTag(tag, value)
		}
	}
}

// Classifier finds the book line a game has reached.
type Classifier struct {
	table         [tableSize]*Entry
	maxHalfMoves  int
	entriesLoaded int
}

// NewClassifier creates an empty classifier.
func NewClassifier() *Classifier {
	return &Classifier{
		maxHalfMoves: HalfMoveLimit,
	}
}

// LoadFromFile loads book lines from a PGN file.
func (c *Classifier) LoadFromFile(filename string, cfg *config.Config) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("cannot open ECO file: %w", err)
	}
	defer file.Close()

	return c.LoadFromReader(file, cfg)
}

// LoadFromReader loads book lines from PGN. Each game needs an ECO tag;
// games without one, or whose moves do not replay, are skipped.
func (c *Classifier) LoadFromReader(r io.Reader, cfg *config.Config) error {
	records, err := parser.NewParser(r, cfg).ParseAllGames()
	if err != nil {
		return fmt.Errorf("error parsing ECO file: %w", err)
	}

	skipped := 0
	for _, rec := range records {
		if !c.addEntry(rec) {
			skipped++
		}
	}
	if skipped > 0 && cfg != nil && cfg.Verbosity > 1 {
		fmt.Fprintf(cfg.LogFile, "ECO: %d entries loaded, %d skipped\n", c.entriesLoaded, skipped)
	}
	return nil
}

// addEntry replays a book line and adds it to the table.
func (c *Classifier) addEntry(rec *parser.Record) bool {
	code := rec.Tags[chess.ECOTag]
	if code == "" {
		return false
	}

	_, board, err := parser.Replay(rec)
	if err != nil || len(board.History) < 2 {
		return false
	}

	entry := &Entry{
		Code:           code,
		Opening:        rec.Tags[chess.OpeningTag],
		Variation:      rec.Tags[chess.VariationTag],
		SubVariation:   rec.Tags[chess.SubVariationTag],
		positionHash:   board.Zobrist,
		cumulativeHash: cumulativeHash(board.History),
		halfMoves:      len(board.History) - 1,
	}

	ix := entry.positionHash % tableSize
	for existing := c.table[ix]; existing != nil; existing = existing.next {
		if existing.positionHash == entry.positionHash &&
			existing.halfMoves == entry.halfMoves &&
			existing.cumulativeHash == entry.cumulativeHash {
			return false // Duplicate line
		}
	}

	entry.next = c.table[ix]
	c.table[ix] = entry
	c.entriesLoaded++

	if entry.halfMoves+HalfMoveLimit > c.maxHalfMoves {
		c.maxHalfMoves = entry.halfMoves + HalfMoveLimit
	}
	return true
}

// cumulativeHash XORs the keys of the positions after each move;
// history[0] is the starting position.
func cumulativeHash(history []uint64) uint64 {
	var h uint64
	for _, key := range history[1:] {
		h ^= key
	}
	return h
}

// Classify returns the deepest book entry matched by the positions in
// history (a board's History: the start position first), or nil.
func (c *Classifier) Classify(history []uint64) *Entry {
	if c.entriesLoaded == 0 {
		return nil
	}

	var best *Entry
	var cumulative uint64
	for ply := 1; ply < len(history) && ply <= c.maxHalfMoves; ply++ {
		cumulative ^= history[ply]
		if match := c.findMatch(history[ply], cumulative, ply); match != nil {
			best = match
		}
	}
	return best
}

// findMatch looks up a position. An exact match has the same move count
// and path; otherwise a transposition within HalfMoveLimit plies counts.
func (c *Classifier) findMatch(posHash, cumulative uint64, halfMoves int) *Entry {
	var possible *Entry
	for entry := c.table[posHash%tableSize]; entry != nil; entry = entry.next {
		if entry.positionHash != posHash {
			continue
		}
		if entry.halfMoves == halfMoves && entry.cumulativeHash == cumulative {
			return entry
		}
		if abs(halfMoves-entry.halfMoves) <= HalfMoveLimit {
			possible = entry
		}
	}
	return possible
}

// AddTags classifies the game whose positions are history and sets its
// opening tags. It reports whether a line matched.
func (c *Classifier) AddTags(game *chess.Game, history []uint64) bool {
	match := c.Classify(history)
	if match == nil {
		return false
	}
	match.SetTags(game)
	return true
}

// EntriesLoaded returns the number of book lines loaded.
func (c *Classifier) EntriesLoaded() int {
	return c.entriesLoaded
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
