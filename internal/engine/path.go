package engine

import "github.com/lgbarn/chessplay-go/internal/chess"

// isPathClear checks that every square strictly between from and to is empty.
// The two squares must share a row, a column or a diagonal.
func isPathClear(board *chess.Board, from, to chess.Square) bool {
	rowDir := sign(to.Row - from.Row)
	colDir := sign(to.Col - from.Col)

	sq := chess.Sq(from.Row+rowDir, from.Col+colDir)
	for sq != to {
		if !board.IsEmpty(sq) {
			return false
		}
		sq = chess.Sq(sq.Row+rowDir, sq.Col+colDir)
	}

	return true
}

// isRowClear checks that every square strictly between two columns on a row is empty.
func isRowClear(board *chess.Board, row, fromCol, toCol int) bool {
	return isPathClear(board, chess.Sq(row, fromCol), chess.Sq(row, toCol))
}
