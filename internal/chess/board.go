package chess

// Board is an 8x8 grid of optional pieces indexed [row][col].
type Board struct {
	Squares [BoardSize][BoardSize]Piece
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// backRank lists the home row pieces from the a-file to the h-file.
var backRank = [BoardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Clear()
	for col := 0; col < BoardSize; col++ {
		b.Squares[White.HomeRow()][col] = W(backRank[col])
		b.Squares[White.PawnRow()][col] = W(Pawn)
		b.Squares[Black.PawnRow()][col] = B(Pawn)
		b.Squares[Black.HomeRow()][col] = B(backRank[col])
	}
}

// Clear removes every piece from the board.
func (b *Board) Clear() {
	b.Squares = [BoardSize][BoardSize]Piece{}
}

// Get returns the piece on sq, or NoPiece if the square is empty or off the board.
func (b *Board) Get(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.Squares[sq.Row][sq.Col]
}

// Set places a piece on sq. Off-board squares are ignored.
func (b *Board) Set(sq Square, piece Piece) {
	if sq.Valid() {
		b.Squares[sq.Row][sq.Col] = piece
	}
}

// IsEmpty reports whether sq holds no piece.
func (b *Board) IsEmpty(sq Square) bool {
	return b.Get(sq).IsEmpty()
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// FindKing searches the board for the king of the given colour.
func (b *Board) FindKing(colour Colour) (Square, bool) {
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Squares[row][col].Is(colour, King) {
				return Sq(row, col), true
			}
		}
	}
	return NoSquare, false
}

// CountKings returns the number of kings of the given colour.
func (b *Board) CountKings(colour Colour) int {
	n := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Squares[row][col].Is(colour, King) {
				n++
			}
		}
	}
	return n
}

// Occupied returns the squares holding pieces of the given colour,
// scanning row by row from row 0.
func (b *Board) Occupied(colour Colour) []Square {
	var squares []Square
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			p := b.Squares[row][col]
			if !p.IsEmpty() && p.Colour == colour {
				squares = append(squares, Sq(row, col))
			}
		}
	}
	return squares
}
