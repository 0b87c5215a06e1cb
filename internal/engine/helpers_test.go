package engine

import (
	"testing"

	"github.com/lgbarn/chessplay-go/internal/chess"
)

// mustState parses fen or fails the test.
func mustState(t testing.TB, fen string) *chess.GameState {
	t.Helper()
	state, err := NewStateFromFEN(fen)
	if err != nil {
		t.Fatalf("NewStateFromFEN(%q) error: %v", fen, err)
	}
	return state
}

// mustToken parses a coordinate move token or fails the test.
func mustToken(t testing.TB, token string) chess.Move {
	t.Helper()
	move, err := ParseMoveToken(token)
	if err != nil {
		t.Fatalf("ParseMoveToken(%q) error: %v", token, err)
	}
	return move
}

// mustApply plays the tokens in order and fails on the first rejection.
func mustApply(t testing.TB, state *chess.GameState, tokens ...string) Outcome {
	t.Helper()
	var outcome Outcome
	for _, token := range tokens {
		var err error
		outcome, err = ApplyMove(state, mustToken(t, token))
		if err != nil {
			t.Fatalf("ApplyMove(%s) error: %v", token, err)
		}
	}
	return outcome
}

// isLegal reports whether to is among the legal destinations of the piece on from.
func isLegal(state *chess.GameState, from, to chess.Square) bool {
	for _, sq := range LegalDestinations(state, from) {
		if sq == to {
			return true
		}
	}
	return false
}
