package chess

// Result strings as written in game records.
const (
	WhiteWins  = "1-0"
	BlackWins  = "0-1"
	DrawResult = "1/2-1/2"
	Unfinished = "*"
)

// GameMove is one played half-move together with its rendered forms.
type GameMove struct {
	Move     Move
	SAN      string
	Colour   Colour    // side that made the move
	Number   uint      // fullmove number the move belongs to
	Piece    PieceKind // kind that moved
	Captured PieceKind // NoPieceKind if nothing was taken
	FEN      string    // position after the move
}

// Game is the record of a played game: tags and the moves in order.
type Game struct {
	// Tags for this game (e.g., Event, Site, Date, White, Black, Result).
	Tags map[string]string

	// Moves played from the starting position.
	Moves []GameMove
}

// NewGame creates a new empty game.
func NewGame() *Game {
	return &Game{
		Tags: make(map[string]string),
	}
}

// GetTag returns a tag value, or empty string if not present.
func (g *Game) GetTag(name string) string {
	return g.Tags[name]
}

// SetTag sets a tag value.
func (g *Game) SetTag(name, value string) {
	g.ensureTags()
	g.Tags[name] = value
}

// HasTag returns true if the tag is present.
func (g *Game) HasTag(name string) bool {
	_, ok := g.Tags[name]
	return ok
}

// ensureTags initializes the Tags map if it is nil.
func (g *Game) ensureTags() {
	if g.Tags == nil {
		g.Tags = make(map[string]string)
	}
}

// White returns the White player name.
func (g *Game) White() string {
	return g.GetTag(WhiteTag)
}

// Black returns the Black player name.
func (g *Game) Black() string {
	return g.GetTag(BlackTag)
}

// Result returns the game result, "*" when unset.
func (g *Game) Result() string {
	if r := g.GetTag(ResultTag); r != "" {
		return r
	}
	return Unfinished
}

// FEN returns the starting FEN if the game did not start from the
// standard position.
func (g *Game) FEN() string {
	return g.GetTag(FENTag)
}

// PlyCount returns the number of half-moves in the game.
func (g *Game) PlyCount() int {
	return len(g.Moves)
}

// LastMove returns the last move in the game.
func (g *Game) LastMove() (GameMove, bool) {
	if len(g.Moves) == 0 {
		return GameMove{}, false
	}
	return g.Moves[len(g.Moves)-1], true
}

// AppendMove adds a move to the end of the game.
func (g *Game) AppendMove(m GameMove) {
	g.Moves = append(g.Moves, m)
}

// ResultFor returns the result string for a finished or running game.
// toMove is the side to move in the final position, which is the side
// that was checkmated.
func ResultFor(state GameState, toMove Colour) string {
	switch state {
	case Checkmate:
		if toMove == White {
			return BlackWins
		}
		return WhiteWins
	case Stalemate, Draw:
		return DrawResult
	}
	return Unfinished
}
