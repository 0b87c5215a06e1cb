// Package errors provides sentinel errors and error types for the chess engine
// and its adapters. It defines the move rejection taxonomy and structured error
// types that preserve context while allowing error inspection with errors.Is()
// and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
)

// Sentinel errors for move rejections. Every one of them is recoverable:
// the game state is left exactly as it was before the attempt.
var (
	// ErrWrongTurn indicates the moving piece does not belong to the side to move.
	ErrWrongTurn = errors.New("wrong turn")

	// ErrIllegalShape indicates the move fails the piece geometry or path clearance.
	ErrIllegalShape = errors.New("illegal move shape")

	// ErrBlockedCapture indicates the destination holds a piece of the mover's colour.
	ErrBlockedCapture = errors.New("destination occupied by own piece")

	// ErrLeavesKingInCheck indicates the move would expose the mover's king.
	ErrLeavesKingInCheck = errors.New("move leaves king in check")

	// ErrCastlingNotEligible indicates a castling precondition failed.
	ErrCastlingNotEligible = errors.New("castling not allowed")

	// ErrKingCapture indicates a move onto a square holding a king. It only
	// arises after a castle that landed on an attacked square.
	ErrKingCapture = errors.New("king cannot be captured")

	// ErrNoPiece indicates the source square is empty.
	ErrNoPiece = errors.New("no piece on source square")

	// ErrOffBoard indicates a square outside the 8x8 grid.
	ErrOffBoard = errors.New("square off the board")

	// ErrGameOver indicates a move was submitted after checkmate or stalemate.
	ErrGameOver = errors.New("game is over")
)

// Sentinel errors for malformed input from collaborators.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidMoveToken indicates a malformed coordinate move token.
	ErrInvalidMoveToken = errors.New("invalid move token")

	// ErrProtocol indicates unexpected traffic from an engine or peer.
	ErrProtocol = errors.New("protocol error")

	// ErrClosed indicates use of an engine process or connection after Close.
	ErrClosed = errors.New("already closed")
)

// MoveError wraps a move rejection with the move that caused it.
// It implements the error interface and supports unwrapping via errors.Is()
// and errors.As().
type MoveError struct {
	Err   error       // The underlying sentinel
	Move  chess.Move  // The rejected move
	Piece chess.Piece // The piece on the source square (may be empty)
}

// Error returns a formatted error message including the move.
func (e *MoveError) Error() string {
	var parts []string

	if e.Piece.IsEmpty() {
		parts = append(parts, fmt.Sprintf("move %s", e.Move))
	} else {
		parts = append(parts, fmt.Sprintf("move %s (%s)", e.Move, e.Piece))
	}

	context := strings.Join(parts, ", ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", context, e.Err)
	}
	return context
}

// Unwrap returns the underlying error, enabling errors.Is() and errors.As()
// to work through the MoveError wrapper.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// NewMoveError builds a MoveError.
func NewMoveError(err error, move chess.Move, piece chess.Piece) *MoveError {
	return &MoveError{Err: err, Move: move, Piece: piece}
}

// ParseError represents a parsing error with position context.
// It's used for FEN strings, move tokens and collaborator messages.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The text being parsed
	Pos      int    // Byte offset of the problem (0-based, -1 if unknown)
	Expected string // What was expected (for syntax errors)
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Input != "" {
		loc := fmt.Sprintf("%q", e.Input)
		if e.Pos >= 0 {
			loc += fmt.Sprintf(" at %d", e.Pos)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
