package config

// DisplayConfig holds settings for the terminal board view.
type DisplayConfig struct {
	Colour         bool // Colour squares and pieces with ANSI escapes
	Unicode        bool // Draw pieces as chess glyphs instead of FEN letters
	Flip           bool // Draw the board from Black's side
	ShowEvaluation bool // Print the engine's last score under the board
}

// NewDisplayConfig creates a DisplayConfig with default values.
func NewDisplayConfig() *DisplayConfig {
	return &DisplayConfig{
		Colour:         true,
		Unicode:        true,
		ShowEvaluation: true,
	}
}
