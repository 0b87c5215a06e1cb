package config

import "fmt"

// OutputFormat selects how boards and events are written.
type OutputFormat int

const (
	TextFormat OutputFormat = iota // human readable board diagram
	JSONFormat                     // one JSON object per line
)

func (f OutputFormat) String() string {
	switch f {
	case TextFormat:
		return "text"
	case JSONFormat:
		return "json"
	default:
		return fmt.Sprintf("OutputFormat(%d)", int(f))
	}
}

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// Format specifies text or JSON output
	Format OutputFormat

	// Colour enables ANSI colours in text output
	Colour bool

	// Coordinates prints rank and file labels around the board
	Coordinates bool

	// Flip draws the board from Black's side
	Flip bool

	// ShowMoves lists the legal moves under the board
	ShowMoves bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:      TextFormat,
		Colour:      true,
		Coordinates: true,
	}
}

// ParseOutputFormat converts "text" or "json".
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "text":
		return TextFormat, nil
	case "json":
		return JSONFormat, nil
	default:
		return TextFormat, fmt.Errorf("unknown output format %q", s)
	}
}
