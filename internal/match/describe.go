package match

import (
	"fmt"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
)

// Describe returns the status lines shown after a move: what happened on the
// board followed by the state of the game.
func Describe(outcome engine.Outcome) []string {
	var lines []string
	mover := outcome.Mover.Colour

	switch {
	case outcome.Castled:
		lines = append(lines, fmt.Sprintf("%s castled %s", mover, outcome.Side))
	case !outcome.Captured.IsEmpty():
		lines = append(lines, fmt.Sprintf("%s captured by %s!", outcome.Captured, outcome.Mover))
	}
	if outcome.Promoted != chess.Empty {
		lines = append(lines, fmt.Sprintf("Pawn promoted to %s!", outcome.Promoted))
	}

	switch outcome.Status {
	case chess.Check:
		lines = append(lines, fmt.Sprintf("%s is in check", mover.Opposite()))
	case chess.Checkmate:
		lines = append(lines, fmt.Sprintf("Checkmate! %s wins", mover))
	case chess.Stalemate:
		lines = append(lines, "Stalemate! The game is drawn")
	}
	return lines
}
