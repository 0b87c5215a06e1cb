// Package engine provides chess move validation and board manipulation.
package engine

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// IsPseudoLegal reports whether the piece on from may move to to under the
// shape and occupancy rules, ignoring whether the mover's king ends up in check.
func IsPseudoLegal(board *chess.Board, from, to chess.Square) bool {
	return CheckPseudoLegal(board, from, to) == nil
}

// CheckPseudoLegal is IsPseudoLegal with the reason for a rejection:
// ErrOffBoard, ErrNoPiece, ErrBlockedCapture or ErrIllegalShape.
func CheckPseudoLegal(board *chess.Board, from, to chess.Square) error {
	if !from.Valid() || !to.Valid() {
		return errors.ErrOffBoard
	}

	piece := board.Get(from)
	if piece.IsEmpty() {
		return errors.ErrNoPiece
	}

	target := board.Get(to)
	if !target.IsEmpty() && target.Colour == piece.Colour {
		return errors.ErrBlockedCapture
	}

	if !ShapeMatches(piece, from, to) {
		return errors.ErrIllegalShape
	}

	switch {
	case piece.Kind == chess.Pawn:
		if !pawnMoveAllowed(board, piece.Colour, from, to) {
			return errors.ErrIllegalShape
		}
	case isSlider(piece.Kind):
		if !isPathClear(board, from, to) {
			return errors.ErrIllegalShape
		}
	}

	return nil
}

// pawnMoveAllowed applies the pawn's occupancy rules on top of its shape:
// straight moves need an empty destination (and an empty middle square for the
// double push), diagonal moves need an enemy piece to capture.
func pawnMoveAllowed(board *chess.Board, colour chess.Colour, from, to chess.Square) bool {
	target := board.Get(to)

	if from.Col != to.Col {
		return !target.IsEmpty() && target.Colour != colour
	}

	if !target.IsEmpty() {
		return false
	}
	if abs(to.Row-from.Row) == 2 {
		middle := chess.Sq(from.Row+colour.Forward(), from.Col)
		return board.IsEmpty(middle)
	}
	return true
}
