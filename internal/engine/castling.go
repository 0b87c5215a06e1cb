package engine

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// castlingSide validates a two-column king move and returns the side it
// castles to. The king must be on its home square with castling rights intact
// and not in check, the matching rook must stand on its home corner and every
// square between them must be empty. Squares the king passes over or lands on
// are not tested for attacks.
func castlingSide(state *chess.GameState, from, to chess.Square) (chess.Side, error) {
	king := state.Board.Get(from)
	if king.Kind != chess.King {
		return chess.QueenSide, errors.ErrCastlingNotEligible
	}
	colour := king.Colour
	home := colour.HomeRow()

	if from != chess.Sq(home, chess.KingHomeCol) || to.Row != home {
		return chess.QueenSide, errors.ErrCastlingNotEligible
	}

	var side chess.Side
	switch to.Col {
	case chess.KingSide.KingTargetCol():
		side = chess.KingSide
	case chess.QueenSide.KingTargetCol():
		side = chess.QueenSide
	default:
		return chess.QueenSide, errors.ErrCastlingNotEligible
	}

	if !state.Castling.CanCastle(colour, side) {
		return side, errors.ErrCastlingNotEligible
	}

	rookSq := chess.Sq(home, side.RookHomeCol())
	if !state.Board.Get(rookSq).Is(colour, chess.Rook) {
		return side, errors.ErrCastlingNotEligible
	}

	if !isRowClear(&state.Board, home, chess.KingHomeCol, side.RookHomeCol()) {
		return side, errors.ErrCastlingNotEligible
	}

	if IsInCheck(state, colour) {
		return side, errors.ErrCastlingNotEligible
	}

	return side, nil
}

// castlingDestinations returns the king squares reachable by castling from sq.
func castlingDestinations(state *chess.GameState, sq chess.Square) []chess.Square {
	var targets []chess.Square
	for _, side := range []chess.Side{chess.QueenSide, chess.KingSide} {
		to := chess.Sq(sq.Row, side.KingTargetCol())
		if _, err := castlingSide(state, sq, to); err == nil {
			targets = append(targets, to)
		}
	}
	return targets
}

// applyCastle relocates the king and rook of the side to move and revokes
// that colour's castling rights.
func applyCastle(state *chess.GameState, side chess.Side) {
	colour := state.ToMove
	home := colour.HomeRow()

	kingFrom := chess.Sq(home, chess.KingHomeCol)
	kingTo := chess.Sq(home, side.KingTargetCol())
	rookFrom := chess.Sq(home, side.RookHomeCol())
	rookTo := chess.Sq(home, side.RookTargetCol())

	king := state.Board.Get(kingFrom)
	state.Board.Set(kingFrom, chess.NoPiece)
	state.Board.Set(kingTo, king)

	rook := state.Board.Get(rookFrom)
	state.Board.Set(rookFrom, chess.NoPiece)
	state.Board.Set(rookTo, rook)

	state.SetKingSquare(colour, kingTo)
	state.Castling.MarkKingMoved(colour)
	state.Castling.MarkRookMoved(colour, side)
}

// updateCastlingRights revokes rights after the piece on from has moved.
// A rook only counts when it leaves its own home corner.
func updateCastlingRights(state *chess.GameState, piece chess.Piece, from chess.Square) {
	switch piece.Kind {
	case chess.King:
		state.Castling.MarkKingMoved(piece.Colour)
	case chess.Rook:
		if from.Row != piece.Colour.HomeRow() {
			return
		}
		if side, ok := chess.SideOfRookCol(from.Col); ok {
			state.Castling.MarkRookMoved(piece.Colour, side)
		}
	}
}
