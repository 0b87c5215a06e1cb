// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour int

const (
	Black Colour = iota
	White
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the row delta in which pawns of this colour advance.
// White starts on the high rows and moves toward row 0.
func (c Colour) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// HomeRow returns the back rank of the colour.
func (c Colour) HomeRow() int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}

// PawnRow returns the row the colour's pawns start on.
func (c Colour) PawnRow() int {
	return c.HomeRow() + c.Forward()
}

// PromotionRow returns the farthest rank for the colour's pawns.
func (c Colour) PromotionRow() int {
	return c.Opposite().HomeRow()
}

// Kind represents a chess piece type.
type Kind int

const (
	Empty Kind = iota // No piece
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

// String returns the string representation of a piece kind.
func (k Kind) String() string {
	names := []string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a kind (uppercase).
func (k Kind) Letter() byte {
	letters := []byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// IsPromotionTarget reports whether a pawn may be promoted to this kind.
func (k Kind) IsPromotionTarget() bool {
	switch k {
	case Knight, Bishop, Rook, Queen:
		return true
	default:
		return false
	}
}

// KindFromLetter converts a piece letter (either case) to a kind.
// Unknown letters map to Empty.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	default:
		return Empty
	}
}

// Piece is a coloured piece. The zero value is an empty square.
type Piece struct {
	Kind   Kind
	Colour Colour
}

// NoPiece is the content of an empty square.
var NoPiece = Piece{}

// MakePiece creates a coloured piece value.
func MakePiece(colour Colour, kind Kind) Piece {
	if kind == Empty {
		return NoPiece
	}
	return Piece{Kind: kind, Colour: colour}
}

// W creates a white piece.
func W(kind Kind) Piece {
	return MakePiece(White, kind)
}

// B creates a black piece.
func B(kind Kind) Piece {
	return MakePiece(Black, kind)
}

// IsEmpty reports whether p represents an empty square.
func (p Piece) IsEmpty() bool {
	return p.Kind == Empty
}

// Is reports whether p is a piece of the given colour and kind.
func (p Piece) Is(colour Colour, kind Kind) bool {
	return !p.IsEmpty() && p.Kind == kind && p.Colour == colour
}

// String returns a human readable name such as "White Knight".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Kind.String()
}

// Letter returns the FEN letter for the piece: uppercase for White,
// lowercase for Black, and ' ' for an empty square.
func (p Piece) Letter() byte {
	letter := p.Kind.Letter()
	if p.Colour == Black && letter >= 'A' && letter <= 'Z' {
		letter += 'a' - 'A'
	}
	return letter
}

// Status classifies a position from the point of view of the side to move.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
)

// String returns the string representation of a status.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "Ongoing"
	case Check:
		return "Check"
	case Checkmate:
		return "Checkmate"
	case Stalemate:
		return "Stalemate"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether the game is over.
func (s Status) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

// BoardSize is the number of rows and columns on the board.
const BoardSize = 8

// Square is a (row, column) board coordinate. Row 0 is Black's back rank
// (rank 8) and column 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// NoSquare is an off-board sentinel.
var NoSquare = Square{Row: -1, Col: -1}

// Sq creates a square from row and column indices.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid reports whether the square lies on the board.
func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

// File returns the file letter ('a'-'h') of the square.
func (s Square) File() byte {
	return byte('a' + s.Col)
}

// Rank returns the rank digit ('1'-'8') of the square.
func (s Square) Rank() byte {
	return byte('8' - s.Row)
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{s.File(), s.Rank()})
}

// ParseSquare converts an algebraic square name such as "e4".
func ParseSquare(name string) (Square, bool) {
	if len(name) != 2 {
		return NoSquare, false
	}
	file, rank := name[0], name[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, false
	}
	return Square{Row: int('8' - rank), Col: int(file - 'a')}, true
}
