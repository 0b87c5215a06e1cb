package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Each promotion choice counts as a separate move.
func Perft(state *chess.GameState, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := LegalMoves(state)
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, move := range moves {
		next := *state
		if _, err := ApplyMove(&next, move); err != nil {
			continue
		}
		nodes += Perft(&next, depth-1)
	}
	return nodes
}
