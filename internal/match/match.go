// Package match owns a single game in progress. It serialises access to the
// game state so that the terminal loop, the UCI adapter and the network relay
// never observe a half-applied move.
package match

import (
	"sync"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/errors"
)

// Event is delivered to observers after every accepted move.
type Event struct {
	Outcome  engine.Outcome
	Messages []string // human readable status lines, see Describe
	FEN      string   // position after the move
}

// Observer receives events. Observers run on the goroutine that submitted the
// move, after the match lock has been released.
type Observer func(Event)

// Match is a game in progress. The zero value is not usable; use New.
type Match struct {
	mu        sync.Mutex
	state     chess.GameState
	status    chess.Status
	start     chess.GameState
	history   []chess.Move
	observers []Observer
}

// New creates a match in the standard starting position.
func New() *Match {
	m := &Match{}
	m.start = *chess.NewGameState()
	m.state = m.start
	m.status = chess.Ongoing
	return m
}

// NewFromFEN creates a match starting from the given position. Reset returns
// to this position rather than the standard one.
func NewFromFEN(fen string) (*Match, error) {
	state, err := engine.NewStateFromFEN(fen)
	if err != nil {
		return nil, err
	}
	m := &Match{start: *state, state: *state}
	m.status = engine.Classify(&m.state)
	return m, nil
}

// Observe registers fn to be called after every accepted move.
func (m *Match) Observe(fn Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Submit validates and applies a move for the side to move. A rejected move
// leaves the match unchanged. Once the game has ended every move is refused
// with ErrGameOver.
func (m *Match) Submit(move chess.Move) (engine.Outcome, error) {
	m.mu.Lock()
	if m.status.IsTerminal() {
		m.mu.Unlock()
		return engine.Outcome{}, errors.NewMoveError(errors.ErrGameOver, move, m.state.Board.Get(move.From))
	}

	outcome, err := engine.ApplyMove(&m.state, move)
	if err != nil {
		m.mu.Unlock()
		return engine.Outcome{}, err
	}
	m.status = outcome.Status
	m.history = append(m.history, move)

	event := Event{
		Outcome:  outcome,
		Messages: Describe(outcome),
		FEN:      engine.StateToFEN(&m.state),
	}
	observers := append([]Observer(nil), m.observers...)
	m.mu.Unlock()

	for _, fn := range observers {
		fn(event)
	}
	return outcome, nil
}

// SubmitToken parses a coordinate move token and submits it.
func (m *Match) SubmitToken(token string) (engine.Outcome, error) {
	move, err := engine.ParseMoveToken(token)
	if err != nil {
		return engine.Outcome{}, err
	}
	return m.Submit(move)
}

// Snapshot returns a copy of the board.
func (m *Match) Snapshot() chess.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Snapshot()
}

// State returns a copy of the full game state.
func (m *Match) State() chess.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Destinations returns the legal destinations of the piece on sq. Pieces of
// the side not to move and finished games yield none.
func (m *Match) Destinations(sq chess.Square) []chess.Square {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status.IsTerminal() || m.state.Board.Get(sq).Colour != m.state.ToMove {
		return nil
	}
	return engine.LegalDestinations(&m.state, sq)
}

// LegalMoves returns every legal move for the side to move.
func (m *Match) LegalMoves() []chess.Move {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status.IsTerminal() {
		return nil
	}
	return engine.LegalMoves(&m.state)
}

// Status returns the classification of the current position.
func (m *Match) Status() chess.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// ToMove returns the colour whose turn it is.
func (m *Match) ToMove() chess.Colour {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.ToMove
}

// FEN returns the current position in FEN.
func (m *Match) FEN() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return engine.StateToFEN(&m.state)
}

// History returns the accepted moves in order.
func (m *Match) History() []chess.Move {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]chess.Move(nil), m.history...)
}

// Reset starts a new game from the match's starting position, restoring all
// castling rights it had.
func (m *Match) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.start
	m.status = engine.Classify(&m.state)
	m.history = nil
}
