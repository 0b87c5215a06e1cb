package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// promotionKinds lists the pieces a pawn may become, strongest first.
var promotionKinds = []chess.Kind{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// LegalDestinations returns every square the piece on sq may legally move to,
// in row-major order, including castling destinations for an eligible king.
// An empty square yields no destinations.
func LegalDestinations(state *chess.GameState, sq chess.Square) []chess.Square {
	piece := state.Board.Get(sq)
	if piece.IsEmpty() {
		return nil
	}

	var targets []chess.Square
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			to := chess.Sq(row, col)
			if !IsPseudoLegal(&state.Board, sq, to) || state.Board.Get(to).Kind == chess.King {
				continue
			}
			if leavesKingInCheck(state, sq, to) {
				continue
			}
			targets = append(targets, to)
		}
	}

	if piece.Kind == chess.King {
		targets = append(targets, castlingDestinations(state, sq)...)
	}
	return targets
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(state *chess.GameState, colour chess.Colour) bool {
	for _, sq := range state.Board.Occupied(colour) {
		if len(LegalDestinations(state, sq)) > 0 {
			return true
		}
	}
	return false
}

// LegalMoves returns every legal move for the side to move. A pawn move onto
// the last rank is listed once per promotion choice.
func LegalMoves(state *chess.GameState) []chess.Move {
	var moves []chess.Move
	for _, from := range state.Board.Occupied(state.ToMove) {
		piece := state.Board.Get(from)
		for _, to := range LegalDestinations(state, from) {
			if piece.Kind == chess.Pawn && to.Row == piece.Colour.PromotionRow() {
				for _, kind := range promotionKinds {
					moves = append(moves, chess.Move{From: from, To: to, Promotion: kind})
				}
				continue
			}
			moves = append(moves, chess.NewMove(from, to))
		}
	}
	return moves
}
