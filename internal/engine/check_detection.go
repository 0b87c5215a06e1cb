package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// IsInCheck returns true if the given colour's king is attacked, i.e. some
// enemy piece could pseudo-legally move onto the king's square.
func IsInCheck(state *chess.GameState, colour chess.Colour) bool {
	king := state.KingSquare(colour)
	enemy := colour.Opposite()

	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			piece := state.Board.Squares[row][col]
			if piece.IsEmpty() || piece.Colour != enemy {
				continue
			}
			if IsPseudoLegal(&state.Board, chess.Sq(row, col), king) {
				return true
			}
		}
	}
	return false
}

// Checkers returns the squares of every enemy piece attacking the colour's king.
func Checkers(state *chess.GameState, colour chess.Colour) []chess.Square {
	king := state.KingSquare(colour)

	var checkers []chess.Square
	for _, sq := range state.Board.Occupied(colour.Opposite()) {
		if IsPseudoLegal(&state.Board, sq, king) {
			checkers = append(checkers, sq)
		}
	}
	return checkers
}

// afterMove returns a copy of state with the piece on from relocated to to.
// Only the board and the king cache change; the original is untouched.
func afterMove(state *chess.GameState, from, to chess.Square) chess.GameState {
	next := *state
	piece := next.Board.Get(from)
	next.Board.Set(to, piece)
	next.Board.Set(from, chess.NoPiece)
	if piece.Kind == chess.King {
		next.SetKingSquare(piece.Colour, to)
	}
	return next
}

// leavesKingInCheck reports whether moving the piece on from to to would
// leave that piece's own king attacked.
func leavesKingInCheck(state *chess.GameState, from, to chess.Square) bool {
	colour := state.Board.Get(from).Colour
	next := afterMove(state, from, to)
	return IsInCheck(&next, colour)
}
