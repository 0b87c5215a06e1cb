package chess

import "fmt"

// GameState holds everything the rules engine needs about a game in progress.
type GameState struct {
	Board Board

	// Who has the next move.
	ToMove Colour

	// Castling eligibility, tracked as "has moved" flags.
	Castling CastlingRights

	// Keep track of where the two kings are for check detection.
	WhiteKing Square
	BlackKing Square

	// The current move number, incremented after Black moves.
	MoveNumber uint
}

// NewGameState creates a game in the standard starting position.
func NewGameState() *GameState {
	g := &GameState{}
	g.Reset()
	return g
}

// NewEmptyGameState creates a game with an empty board and no castling rights.
// Callers must place both kings and call SyncKings before using the state.
func NewEmptyGameState() *GameState {
	return &GameState{
		ToMove:     White,
		Castling:   NoCastlingRights(),
		WhiteKing:  NoSquare,
		BlackKing:  NoSquare,
		MoveNumber: 1,
	}
}

// Reset restores the standard starting position and all castling rights.
func (g *GameState) Reset() {
	g.Board.SetupInitialPosition()
	g.ToMove = White
	g.Castling.Reset()
	g.WhiteKing = Sq(White.HomeRow(), KingHomeCol)
	g.BlackKing = Sq(Black.HomeRow(), KingHomeCol)
	g.MoveNumber = 1
}

// Copy creates a deep copy of the state.
func (g *GameState) Copy() *GameState {
	c := *g
	return &c
}

// Snapshot returns a copy of the board that callers may keep.
func (g *GameState) Snapshot() Board {
	return g.Board
}

// KingSquare returns the cached square of the colour's king.
// A cache that does not point at that king is an invariant violation.
func (g *GameState) KingSquare(colour Colour) Square {
	sq := g.WhiteKing
	if colour == Black {
		sq = g.BlackKing
	}
	if !g.Board.Get(sq).Is(colour, King) {
		panic(fmt.Sprintf("chess: %s king not found on cached square %s", colour, sq))
	}
	return sq
}

// SetKingSquare updates the king cache for the colour.
func (g *GameState) SetKingSquare(colour Colour, sq Square) {
	if colour == White {
		g.WhiteKing = sq
	} else {
		g.BlackKing = sq
	}
}

// SyncKings rebuilds the king cache from the board. It reports false if
// either colour does not have exactly one king.
func (g *GameState) SyncKings() bool {
	for _, colour := range []Colour{White, Black} {
		if g.Board.CountKings(colour) != 1 {
			return false
		}
		sq, _ := g.Board.FindKing(colour)
		g.SetKingSquare(colour, sq)
	}
	return true
}
