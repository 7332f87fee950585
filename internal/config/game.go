package config

import (
	"fmt"

	"github.com/lgbarn/chess-cli-go/internal/chess"
	"github.com/lgbarn/chess-cli-go/internal/engine"
	"github.com/lgbarn/chess-cli-go/internal/errors"
)

// GameConfig holds settings for the game being played.
type GameConfig struct {
	// Player is the side the human plays
	Player chess.Colour

	// StartFEN is the starting position; empty means the standard one
	StartFEN string

	// PlayerName is written to the record for the human's side
	PlayerName string

	// Event is written to the Event tag of the record
	Event string

	// ResumeFile is a saved PGN record to continue from
	ResumeFile string

	// ECOFile is a PGN book of ECO lines used to name the opening
	ECOFile string
}

// NewGameConfig creates a GameConfig with default values.
func NewGameConfig() *GameConfig {
	return &GameConfig{
		Player:     chess.White,
		PlayerName: "Player",
		Event:      "Casual game",
	}
}

// Validate checks that the starting position parses and that at most one
// starting point is given.
func (g *GameConfig) Validate() error {
	if g.StartFEN != "" && g.ResumeFile != "" {
		return fmt.Errorf("start position and resumed game both given: %w", errors.ErrInvalidConfig)
	}
	if g.StartFEN == "" {
		return nil
	}
	if _, err := engine.NewBoardFromFEN(g.StartFEN); err != nil {
		return fmt.Errorf("start position %q: %v: %w", g.StartFEN, err, errors.ErrInvalidConfig)
	}
	return nil
}

// ParseColour reads a side name as given on the command line or in a
// config file.
func ParseColour(s string) (chess.Colour, error) {
	switch s {
	case "white", "White", "w", "W":
		return chess.White, nil
	case "black", "Black", "b", "B":
		return chess.Black, nil
	}
	return chess.White, fmt.Errorf("unknown side %q: %w", s, errors.ErrInvalidConfig)
}
