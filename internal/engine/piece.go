package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// ShapeMatches reports whether moving piece from one square to another fits
// the piece's geometric move pattern, ignoring every other piece on the board.
// Castling is not a king shape; it is validated separately.
func ShapeMatches(piece chess.Piece, from, to chess.Square) bool {
	if from == to {
		return false
	}
	rowDiff := abs(to.Row - from.Row)
	colDiff := abs(to.Col - from.Col)

	switch piece.Kind {
	case chess.Rook:
		return rowDiff == 0 || colDiff == 0

	case chess.Bishop:
		return rowDiff == colDiff

	case chess.Queen:
		return rowDiff == 0 || colDiff == 0 || rowDiff == colDiff

	case chess.Knight:
		return (rowDiff == 2 && colDiff == 1) || (rowDiff == 1 && colDiff == 2)

	case chess.King:
		return rowDiff <= 1 && colDiff <= 1

	case chess.Pawn:
		return pawnShapeMatches(piece.Colour, from, to)
	}

	return false
}

// pawnShapeMatches covers the single push, the double push from the
// starting rank and the one-step diagonal.
func pawnShapeMatches(colour chess.Colour, from, to chess.Square) bool {
	dir := colour.Forward()
	rowStep := to.Row - from.Row
	colDiff := abs(to.Col - from.Col)

	switch {
	case colDiff == 0 && rowStep == dir:
		return true
	case colDiff == 0 && rowStep == 2*dir:
		return from.Row == colour.PawnRow()
	case colDiff == 1 && rowStep == dir:
		return true
	}
	return false
}

// isSlider reports whether the kind moves along lines and can be blocked.
func isSlider(kind chess.Kind) bool {
	return kind == chess.Rook || kind == chess.Bishop || kind == chess.Queen
}
