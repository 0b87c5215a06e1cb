package chess

// Move is a request to move the piece on From to To. Promotion names the
// piece a pawn reaching the last rank becomes; Empty means "use the default".
type Move struct {
	From      Square
	To        Square
	Promotion Kind
}

// NewMove creates a move without a promotion choice.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// String returns the move in coordinate notation, e.g. "e2e4" or "e7e8n".
func (m Move) String() string {
	if !m.From.Valid() || !m.To.Valid() {
		return "0000"
	}
	b := []byte{m.From.File(), m.From.Rank(), m.To.File(), m.To.Rank()}
	if m.Promotion.IsPromotionTarget() {
		b = append(b, MakePiece(Black, m.Promotion).Letter())
	}
	return string(b)
}

// IsCastleShape reports whether the move is a two-column sideways step,
// the shape a castling king takes.
func (m Move) IsCastleShape() bool {
	d := m.To.Col - m.From.Col
	return m.From.Row == m.To.Row && (d == 2 || d == -2)
}
