package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewStateFromFEN creates a game state from a FEN string. Missing trailing
// fields default to White to move, no castling and move 1. The en passant
// field is accepted but ignored since en passant captures are not played.
func NewStateFromFEN(fen string) (*chess.GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fenError(fen, -1, "empty FEN string")
	}

	state := chess.NewEmptyGameState()

	if err := parsePiecePositions(&state.Board, fen, parts[0]); err != nil {
		return nil, err
	}
	if !state.SyncKings() {
		return nil, fenError(fen, -1, "each side needs exactly one king")
	}

	if err := parseSideToMove(state, fen, parts); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(state, fen, parts); err != nil {
		return nil, err
	}
	if err := parseEnPassant(fen, parts); err != nil {
		return nil, err
	}
	if err := parseMoveNumber(state, fen, parts); err != nil {
		return nil, err
	}
	if IsInCheck(state, state.ToMove.Opposite()) {
		return nil, fenError(fen, -1, "side not to move is in check")
	}

	return state, nil
}

func fenError(fen string, pos int, got string) error {
	return &errors.ParseError{Err: errors.ErrInvalidFEN, Input: fen, Pos: pos, Got: got}
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, fen, positions string) error {
	row, col := 0, 0

	for i := 0; i < len(positions); i++ {
		c := positions[i]
		switch {
		case c == '/':
			if col != chess.BoardSize {
				return fenError(fen, i, fmt.Sprintf("rank %d with %d files", chess.BoardSize-row, col))
			}
			row++
			col = 0
		case c >= '1' && c <= '8':
			col += int(c - '0')
		default:
			kind := chess.KindFromLetter(c)
			if kind == chess.Empty {
				return fenError(fen, i, fmt.Sprintf("piece character %q", c))
			}
			sq := chess.Sq(row, col)
			if !sq.Valid() {
				return fenError(fen, i, "piece off the board")
			}

			colour := chess.White
			if unicode.IsLower(rune(c)) {
				colour = chess.Black
			}
			board.Set(sq, chess.MakePiece(colour, kind))
			col++
		}
		if col > chess.BoardSize || row >= chess.BoardSize {
			return fenError(fen, i, "too many squares")
		}
	}

	if row != chess.BoardSize-1 || col != chess.BoardSize {
		return fenError(fen, -1, "incomplete piece placement")
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(state *chess.GameState, fen string, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		state.ToMove = chess.White
	case "b":
		state.ToMove = chess.Black
	default:
		return fenError(fen, -1, "side to move "+parts[1])
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(state *chess.GameState, fen string, parts []string) error {
	state.Castling = chess.NoCastlingRights()

	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	for _, c := range parts[2] {
		colour := chess.White
		if unicode.IsLower(c) {
			colour = chess.Black
		}
		var side chess.Side
		switch unicode.ToUpper(c) {
		case 'K':
			side = chess.KingSide
		case 'Q':
			side = chess.QueenSide
		default:
			return fenError(fen, -1, "castling flag "+string(c))
		}
		grantCastling(&state.Castling, colour, side)
	}
	return nil
}

// grantCastling clears the king and rook flags for one castling option.
func grantCastling(c *chess.CastlingRights, colour chess.Colour, side chess.Side) {
	switch colour {
	case chess.White:
		c.WhiteKingMoved = false
		if side == chess.KingSide {
			c.WhiteRightRookMoved = false
		} else {
			c.WhiteLeftRookMoved = false
		}
	default:
		c.BlackKingMoved = false
		if side == chess.KingSide {
			c.BlackRightRookMoved = false
		} else {
			c.BlackLeftRookMoved = false
		}
	}
}

// parseEnPassant checks the en passant target square field.
func parseEnPassant(fen string, parts []string) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	if _, ok := chess.ParseSquare(parts[3]); !ok {
		return fenError(fen, -1, "en passant square "+parts[3])
	}
	return nil
}

// parseMoveNumber parses the fullmove number field. The halfmove clock is not
// tracked and is skipped.
func parseMoveNumber(state *chess.GameState, fen string, parts []string) error {
	if len(parts) < 6 {
		return nil
	}
	n, err := strconv.ParseUint(parts[5], 10, 32)
	if err != nil || n == 0 {
		return fenError(fen, -1, "move number "+parts[5])
	}
	state.MoveNumber = uint(n)
	return nil
}

// StateToFEN converts a game state to a FEN string.
func StateToFEN(state *chess.GameState) string {
	var sb strings.Builder

	writePiecePositions(&sb, &state.Board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, state)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, state)
	fmt.Fprintf(&sb, " - 0 %d", state.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.Squares[row][col]
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, state *chess.GameState) {
	if state.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
// An option is only written while the king and rook still stand on their
// home squares, so the output is valid for external engines.
func writeCastlingRights(sb *strings.Builder, state *chess.GameState) {
	options := []struct {
		colour chess.Colour
		side   chess.Side
		letter byte
	}{
		{chess.White, chess.KingSide, 'K'},
		{chess.White, chess.QueenSide, 'Q'},
		{chess.Black, chess.KingSide, 'k'},
		{chess.Black, chess.QueenSide, 'q'},
	}

	hasCastling := false
	for _, opt := range options {
		if !castlingAvailable(state, opt.colour, opt.side) {
			continue
		}
		sb.WriteByte(opt.letter)
		hasCastling = true
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// castlingAvailable reports whether rights and piece placement still permit
// castling on the side at some point in the future.
func castlingAvailable(state *chess.GameState, colour chess.Colour, side chess.Side) bool {
	if !state.Castling.CanCastle(colour, side) {
		return false
	}
	home := colour.HomeRow()
	return state.Board.Get(chess.Sq(home, chess.KingHomeCol)).Is(colour, chess.King) &&
		state.Board.Get(chess.Sq(home, side.RookHomeCol())).Is(colour, chess.Rook)
}

// NewInitialState creates a state with the standard starting position.
func NewInitialState() *chess.GameState {
	return chess.NewGameState()
}
