package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// Classify labels the position for the side to move.
func Classify(state *chess.GameState) chess.Status {
	colour := state.ToMove
	inCheck := IsInCheck(state, colour)
	hasMove := HasLegalMoves(state, colour)

	switch {
	case inCheck && !hasMove:
		return chess.Checkmate
	case !inCheck && !hasMove:
		return chess.Stalemate
	case inCheck:
		return chess.Check
	default:
		return chess.Ongoing
	}
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(state *chess.GameState) bool {
	colour := state.ToMove
	return IsInCheck(state, colour) && !HasLegalMoves(state, colour)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(state *chess.GameState) bool {
	colour := state.ToMove
	return !IsInCheck(state, colour) && !HasLegalMoves(state, colour)
}
