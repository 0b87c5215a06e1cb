package engine

import (
	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// Outcome describes an accepted move and the position it produced.
type Outcome struct {
	Move     chess.Move
	Mover    chess.Piece
	Captured chess.Piece // NoPiece if nothing was taken
	Castled  bool
	Side     chess.Side // valid when Castled
	Promoted chess.Kind // Empty unless a pawn was promoted
	Status   chess.Status
}

// ApplyMove validates move for the side to move and, if legal, applies it to
// state. On rejection state is left untouched and the error is a
// *errors.MoveError wrapping one of the rejection sentinels.
func ApplyMove(state *chess.GameState, move chess.Move) (Outcome, error) {
	if !move.From.Valid() || !move.To.Valid() {
		return Outcome{}, errors.NewMoveError(errors.ErrOffBoard, move, chess.NoPiece)
	}

	piece := state.Board.Get(move.From)
	if piece.IsEmpty() {
		return Outcome{}, errors.NewMoveError(errors.ErrNoPiece, move, piece)
	}
	if piece.Colour != state.ToMove {
		return Outcome{}, errors.NewMoveError(errors.ErrWrongTurn, move, piece)
	}

	next := *state
	outcome := Outcome{Move: move, Mover: piece}

	if piece.Kind == chess.King && move.IsCastleShape() {
		side, err := castlingSide(state, move.From, move.To)
		if err != nil {
			return Outcome{}, errors.NewMoveError(err, move, piece)
		}
		applyCastle(&next, side)
		outcome.Castled = true
		outcome.Side = side
	} else {
		if err := CheckPseudoLegal(&state.Board, move.From, move.To); err != nil {
			return Outcome{}, errors.NewMoveError(err, move, piece)
		}
		if state.Board.Get(move.To).Kind == chess.King {
			return Outcome{}, errors.NewMoveError(errors.ErrKingCapture, move, piece)
		}
		if leavesKingInCheck(state, move.From, move.To) {
			return Outcome{}, errors.NewMoveError(errors.ErrLeavesKingInCheck, move, piece)
		}
		outcome.Captured = state.Board.Get(move.To)
		next = afterMove(state, move.From, move.To)
		updateCastlingRights(&next, piece, move.From)
		outcome.Promoted = promote(&next, piece, move)
	}

	if piece.Colour == chess.Black {
		next.MoveNumber++
	}
	next.ToMove = piece.Colour.Opposite()

	*state = next
	outcome.Status = Classify(state)
	return outcome, nil
}

// promote replaces a pawn that reached the farthest rank. An unspecified or
// invalid choice becomes a queen. It returns the new kind, or Empty.
func promote(state *chess.GameState, piece chess.Piece, move chess.Move) chess.Kind {
	if piece.Kind != chess.Pawn || move.To.Row != piece.Colour.PromotionRow() {
		return chess.Empty
	}
	kind := move.Promotion
	if !kind.IsPromotionTarget() {
		kind = chess.Queen
	}
	state.Board.Set(move.To, chess.MakePiece(piece.Colour, kind))
	return kind
}
