package output

import (
	"io"

	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/match"
)

// GameWriter is the interface for writing boards and events to output.
// Different implementations handle different output formats (text, JSON).
type GameWriter interface {
	// WriteBoard draws a position.
	WriteBoard(p Position) error

	// WriteEvent reports an accepted move.
	WriteEvent(ev match.Event) error

	// WriteMessage writes a prompt, notice or error line.
	WriteMessage(msg string) error
}

// NewWriter returns the writer selected by cfg.Format.
func NewWriter(w io.Writer, cfg *config.OutputConfig) GameWriter {
	if cfg.Format == config.JSONFormat {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

func fenOf(p Position) string {
	return engine.StateToFEN(&p.State)
}
