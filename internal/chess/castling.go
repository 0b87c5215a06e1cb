package chess

// Side names the wing a castling move goes to.
type Side int

const (
	QueenSide Side = iota // toward the a-file rook
	KingSide              // toward the h-file rook
)

// String returns the string representation of a side.
func (s Side) String() string {
	if s == KingSide {
		return "kingside"
	}
	return "queenside"
}

// KingHomeCol is the column both kings start on.
const KingHomeCol = 4

// RookHomeCol returns the column the side's rook starts on.
func (s Side) RookHomeCol() int {
	if s == KingSide {
		return BoardSize - 1
	}
	return 0
}

// KingTargetCol returns the column the king lands on after castling.
func (s Side) KingTargetCol() int {
	if s == KingSide {
		return KingHomeCol + 2
	}
	return KingHomeCol - 2
}

// RookTargetCol returns the column the rook lands on after castling.
func (s Side) RookTargetCol() int {
	if s == KingSide {
		return KingHomeCol + 1
	}
	return KingHomeCol - 1
}

// SideOfRookCol maps a rook's home column to its side.
func SideOfRookCol(col int) (Side, bool) {
	switch col {
	case QueenSide.RookHomeCol():
		return QueenSide, true
	case KingSide.RookHomeCol():
		return KingSide, true
	default:
		return QueenSide, false
	}
}

// CastlingRights records whether each king and home rook has moved.
// Flags only ever go from false to true; Reset is the only way back.
type CastlingRights struct {
	WhiteKingMoved      bool
	WhiteLeftRookMoved  bool
	WhiteRightRookMoved bool
	BlackKingMoved      bool
	BlackLeftRookMoved  bool
	BlackRightRookMoved bool
}

// KingMoved reports whether the colour's king has left its home square.
func (c CastlingRights) KingMoved(colour Colour) bool {
	if colour == White {
		return c.WhiteKingMoved
	}
	return c.BlackKingMoved
}

// RookMoved reports whether the colour's rook on the given side has moved.
func (c CastlingRights) RookMoved(colour Colour, side Side) bool {
	switch {
	case colour == White && side == QueenSide:
		return c.WhiteLeftRookMoved
	case colour == White:
		return c.WhiteRightRookMoved
	case side == QueenSide:
		return c.BlackLeftRookMoved
	default:
		return c.BlackRightRookMoved
	}
}

// CanCastle reports whether neither the king nor the side's rook has moved.
func (c CastlingRights) CanCastle(colour Colour, side Side) bool {
	return !c.KingMoved(colour) && !c.RookMoved(colour, side)
}

// MarkKingMoved revokes both castling options for the colour.
func (c *CastlingRights) MarkKingMoved(colour Colour) {
	if colour == White {
		c.WhiteKingMoved = true
	} else {
		c.BlackKingMoved = true
	}
}

// MarkRookMoved revokes castling on one side for the colour.
func (c *CastlingRights) MarkRookMoved(colour Colour, side Side) {
	switch {
	case colour == White && side == QueenSide:
		c.WhiteLeftRookMoved = true
	case colour == White:
		c.WhiteRightRookMoved = true
	case side == QueenSide:
		c.BlackLeftRookMoved = true
	default:
		c.BlackRightRookMoved = true
	}
}

// Reset restores every castling option.
func (c *CastlingRights) Reset() {
	*c = CastlingRights{}
}

// NoCastlingRights returns rights with every option revoked.
func NoCastlingRights() CastlingRights {
	return CastlingRights{
		WhiteKingMoved: true, WhiteLeftRookMoved: true, WhiteRightRookMoved: true,
		BlackKingMoved: true, BlackLeftRookMoved: true, BlackRightRookMoved: true,
	}
}
