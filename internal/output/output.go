// Package output renders boards and game events for the terminal, either as
// a text diagram or as newline-delimited JSON.
package output

import (
	"sort"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/match"
)

// Position is everything a writer needs to draw one board.
type Position struct {
	State    chess.GameState
	Status   chess.Status
	LastMove *chess.Move  // nil before the first move
	Moves    []chess.Move // legal moves for the side to move
}

// PositionOf captures the current position of a match.
func PositionOf(m *match.Match) Position {
	p := Position{
		State:  m.State(),
		Status: m.Status(),
		Moves:  m.LegalMoves(),
	}
	if history := m.History(); len(history) > 0 {
		last := history[len(history)-1]
		p.LastMove = &last
	}
	return p
}

// MoveTokens returns the legal moves as sorted coordinate tokens.
func (p Position) MoveTokens() []string {
	tokens := make([]string, 0, len(p.Moves))
	for _, m := range p.Moves {
		tokens = append(tokens, m.String())
	}
	sort.Strings(tokens)
	return tokens
}

// rankString renders one row as FEN letters with '.' for empty squares.
func rankString(board *chess.Board, row int) string {
	var sb strings.Builder
	for col := 0; col < chess.BoardSize; col++ {
		piece := board.Squares[row][col]
		if piece.IsEmpty() {
			sb.WriteByte('.')
		} else {
			sb.WriteByte(piece.Letter())
		}
	}
	return sb.String()
}

// colourName is the lowercase colour name used in JSON output.
func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}

// statusLine summarises whose turn it is and the game state.
func statusLine(p Position) string {
	mover := p.State.ToMove.String()
	switch p.Status {
	case chess.Check:
		return mover + " to move, in check from " + strings.Join(checkerNames(p), ", ")
	case chess.Checkmate:
		return "Checkmate! " + p.State.ToMove.Opposite().String() + " wins"
	case chess.Stalemate:
		return "Stalemate! The game is drawn"
	default:
		return mover + " to move"
	}
}

// checkerNames returns the squares of the pieces giving check, if any.
func checkerNames(p Position) []string {
	if p.Status != chess.Check && p.Status != chess.Checkmate {
		return nil
	}
	var names []string
	for _, sq := range engine.Checkers(&p.State, p.State.ToMove) {
		names = append(names, sq.String())
	}
	return names
}
