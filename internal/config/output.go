package config

import (
	"fmt"

	"github.com/lgbarn/chess-cli-go/internal/errors"
)

// OutputConfig holds settings for the saved game record.
type OutputConfig struct {
	// Format specifies the move notation (SAN, LALG, HALG, UCI)
	Format OutputFormat

	// MaxLineLength is the maximum line length for PGN movetext
	MaxLineLength uint

	// JSONFormat writes the record as JSON instead of PGN
	JSONFormat bool

	// KeepMoveNumbers controls whether move numbers are included
	KeepMoveNumbers bool

	// KeepResults controls whether the result ends the movetext
	KeepResults bool

	// TagFormat specifies which tags to output (AllTags, SevenTagRoster, NoTags)
	TagFormat TagOutputForm

	// AddFENComments stores the position after each move in JSON output
	AddFENComments bool

	// RecordFile is where the finished game is saved; empty prints it
	// to the output stream
	RecordFile string
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:          SAN,
		MaxLineLength:   80,
		KeepMoveNumbers: true,
		KeepResults:     true,
		TagFormat:       AllTags,
	}
}

// Validate checks the output settings.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength > 0 && o.MaxLineLength < 20 {
		return fmt.Errorf("line length %d too short: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}

// ParseOutputFormat reads a notation name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "san", "SAN":
		return SAN, nil
	case "lalg", "LALG":
		return LALG, nil
	case "halg", "HALG":
		return HALG, nil
	case "uci", "UCI":
		return UCI, nil
	}
	return SAN, fmt.Errorf("unknown notation %q: %w", s, errors.ErrInvalidConfig)
}
