package engine

import (
	"testing"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/testutil"
)

func TestCheckPseudoLegal(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		from    string
		to      string
		wantErr error
	}{
		{"pawn single push", InitialFEN, "e2", "e3", nil},
		{"pawn double push", InitialFEN, "e2", "e4", nil},
		{"pawn triple push", InitialFEN, "e2", "e5", errors.ErrIllegalShape},
		{"pawn diagonal without capture", InitialFEN, "e2", "d3", errors.ErrIllegalShape},
		{"pawn backwards", "4k3/8/8/8/4P3/8/8/4K3 w - - 0 1", "e4", "e3", errors.ErrIllegalShape},
		{"pawn capture", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4", "d5", nil},
		{"pawn double push off start rank", "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1", "e4", "e6", errors.ErrIllegalShape},
		{"pawn push into piece", "4k3/8/8/8/8/4p3/4P3/4K3 w - - 0 1", "e2", "e3", errors.ErrIllegalShape},
		{"pawn double push blocked", "4k3/8/8/8/8/4p3/4P3/4K3 w - - 0 1", "e2", "e4", errors.ErrIllegalShape},
		{"black pawn double push", "4k3/4p3/8/8/8/8/8/4K3 b - - 0 1", "e7", "e5", nil},
		{"black pawn too far", "4k3/4p3/8/8/8/8/8/4K3 b - - 0 1", "e7", "e4", errors.ErrIllegalShape},
		{"knight jump over pawns", InitialFEN, "g1", "f3", nil},
		{"knight onto own pawn", InitialFEN, "g1", "e2", errors.ErrBlockedCapture},
		{"bishop blocked", InitialFEN, "f1", "c4", errors.ErrIllegalShape},
		{"rook blocked", InitialFEN, "a1", "a3", errors.ErrIllegalShape},
		{"queen long diagonal", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", "a1", "h8", nil},
		{"queen along rank", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", "a1", "d1", nil},
		{"queen through own king", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", "a1", "f1", errors.ErrIllegalShape},
		{"queen knight shape", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", "a1", "b3", errors.ErrIllegalShape},
		{"king step", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1", "f2", nil},
		{"king two steps", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1", "e3", errors.ErrIllegalShape},
		{"king castle shape", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "e1", "g1", errors.ErrIllegalShape},
		{"empty source", InitialFEN, "e4", "e5", errors.ErrNoPiece},
		{"same square", InitialFEN, "d1", "d1", errors.ErrBlockedCapture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := mustState(t, tt.fen)
			from := testutil.MustSquare(t, tt.from)
			to := testutil.MustSquare(t, tt.to)

			err := CheckPseudoLegal(&state.Board, from, to)
			if tt.wantErr == nil {
				testutil.AssertNoError(t, err, "CheckPseudoLegal(%s, %s)", tt.from, tt.to)
			} else {
				testutil.AssertErrorIs(t, err, tt.wantErr, "CheckPseudoLegal(%s, %s)", tt.from, tt.to)
			}
			if got := IsPseudoLegal(&state.Board, from, to); got != (tt.wantErr == nil) {
				t.Errorf("IsPseudoLegal(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.wantErr == nil)
			}
		})
	}
}

func TestCheckPseudoLegal_OffBoard(t *testing.T) {
	board := chess.NewBoard()
	board.SetupInitialPosition()

	err := CheckPseudoLegal(board, chess.Sq(6, 4), chess.Sq(8, 4))
	testutil.AssertErrorIs(t, err, errors.ErrOffBoard)

	err = CheckPseudoLegal(board, chess.Sq(-1, 0), chess.Sq(0, 0))
	testutil.AssertErrorIs(t, err, errors.ErrOffBoard)
}

func TestShapeMatches(t *testing.T) {
	center := chess.Sq(4, 4)
	tests := []struct {
		name  string
		piece chess.Piece
		to    chess.Square
		want  bool
	}{
		{"rook file", chess.W(chess.Rook), chess.Sq(0, 4), true},
		{"rook diagonal", chess.W(chess.Rook), chess.Sq(2, 2), false},
		{"bishop diagonal", chess.B(chess.Bishop), chess.Sq(7, 7), true},
		{"bishop rank", chess.B(chess.Bishop), chess.Sq(4, 0), false},
		{"queen diagonal", chess.W(chess.Queen), chess.Sq(1, 1), true},
		{"queen odd", chess.W(chess.Queen), chess.Sq(2, 3), false},
		{"knight", chess.W(chess.Knight), chess.Sq(2, 3), true},
		{"knight straight", chess.W(chess.Knight), chess.Sq(2, 4), false},
		{"king diagonal step", chess.B(chess.King), chess.Sq(5, 5), true},
		{"king two steps", chess.B(chess.King), chess.Sq(4, 6), false},
		{"white pawn forward", chess.W(chess.Pawn), chess.Sq(3, 4), true},
		{"white pawn backward", chess.W(chess.Pawn), chess.Sq(5, 4), false},
		{"black pawn forward", chess.B(chess.Pawn), chess.Sq(5, 4), true},
		{"black pawn diagonal", chess.B(chess.Pawn), chess.Sq(5, 3), true},
		{"white pawn double off start", chess.W(chess.Pawn), chess.Sq(2, 4), false},
		{"empty square", chess.NoPiece, chess.Sq(3, 4), false},
		{"null move", chess.W(chess.Queen), center, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShapeMatches(tt.piece, center, tt.to); got != tt.want {
				t.Errorf("ShapeMatches(%v, %v, %v) = %v, want %v", tt.piece, center, tt.to, got, tt.want)
			}
		})
	}
}
