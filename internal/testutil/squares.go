package testutil

import (
	"testing"

	"github.com/lgbarn/chessplay-go/internal/chess"
)

// MustSquare parses an algebraic square name and calls t.Fatal on failure.
func MustSquare(t testing.TB, name string) chess.Square {
	t.Helper()
	sq, ok := chess.ParseSquare(name)
	if !ok {
		t.Fatalf("invalid square name %q", name)
	}
	return sq
}

// MustSquares parses a list of algebraic square names.
func MustSquares(t testing.TB, names ...string) []chess.Square {
	t.Helper()
	squares := make([]chess.Square, 0, len(names))
	for _, name := range names {
		squares = append(squares, MustSquare(t, name))
	}
	return squares
}

// MustMove builds a move between two named squares.
func MustMove(t testing.TB, from, to string) chess.Move {
	t.Helper()
	return chess.NewMove(MustSquare(t, from), MustSquare(t, to))
}
