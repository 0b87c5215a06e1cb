package relay

import (
	"context"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/hashing"
	"github.com/lgbarn/chessplay-go/internal/match"
)

// Update is what AwaitOpponent reports.
type Update struct {
	Outcome engine.Outcome // valid unless Reset is set
	Reset   bool           // the opponent started a new game
}

// Game plays one match against a remote opponent. Both sides validate every
// move with their own engine and compare position fingerprints, so a
// tampered or out of sync peer is detected on the next move.
type Game struct {
	peer  *Peer
	match *match.Match
}

// NewGame starts a match from the position agreed during the handshake.
func NewGame(peer *Peer) (*Game, error) {
	m, err := match.NewFromFEN(peer.StartFEN())
	if err != nil {
		return nil, err
	}
	return &Game{peer: peer, match: m}, nil
}

// Match returns the local match, for rendering and observers.
func (g *Game) Match() *match.Match { return g.match }

// Peer returns the underlying connection.
func (g *Game) Peer() *Peer { return g.peer }

// MyTurn reports whether the local side is to move in an ongoing game.
func (g *Game) MyTurn() bool {
	return g.match.ToMove() == g.peer.Colour() && !g.match.Status().IsTerminal()
}

// Play applies a local move and forwards it to the opponent.
func (g *Game) Play(move chess.Move) (engine.Outcome, error) {
	if g.match.ToMove() != g.peer.Colour() {
		board := g.match.Snapshot()
		return engine.Outcome{}, errors.NewMoveError(errors.ErrWrongTurn, move, board.Get(move.From))
	}
	outcome, err := g.match.Submit(move)
	if err != nil {
		return outcome, err
	}

	rec := RecordFromMove(outcome.Move)
	rec.Fingerprint = g.fingerprint()
	if err := g.peer.Send(rec); err != nil {
		return outcome, err
	}
	return outcome, nil
}

// PlayToken parses a coordinate token and plays it.
func (g *Game) PlayToken(token string) (engine.Outcome, error) {
	move, err := engine.ParseMoveToken(token)
	if err != nil {
		return engine.Outcome{}, err
	}
	return g.Play(move)
}

// AwaitOpponent blocks until the opponent moves or resets the game. A move
// the local engine rejects, or one that leaves the positions out of step,
// is a protocol error.
func (g *Game) AwaitOpponent(ctx context.Context) (Update, error) {
	for {
		msg, err := g.peer.Receive(ctx)
		if err != nil {
			return Update{}, err
		}

		switch msg := msg.(type) {
		case MoveRecord:
			return g.applyRemote(msg)
		case Reset:
			g.match.Reset()
			return Update{Reset: true}, nil
		case Bye:
			return Update{}, errors.Wrapf(errors.ErrClosed, "opponent left (%s)", msg.Reason)
		default:
			g.peer.logger.Printf("ignoring %s during play", msg.Type())
		}
	}
}

func (g *Game) applyRemote(rec MoveRecord) (Update, error) {
	move, err := rec.Move()
	if err != nil {
		return Update{}, err
	}
	if g.match.ToMove() == g.peer.Colour() {
		return Update{}, errors.Wrapf(errors.ErrProtocol, "opponent moved %s out of turn", move)
	}
	outcome, err := g.match.Submit(move)
	if err != nil {
		return Update{}, errors.Wrapf(errors.ErrProtocol, "opponent move rejected: %v", err)
	}
	if rec.Fingerprint != "" {
		if local := g.fingerprint(); local != rec.Fingerprint {
			return Update{}, errors.Wrapf(errors.ErrProtocol, "positions diverged after %s: local %s, remote %s",
				move, local, rec.Fingerprint)
		}
	}
	return Update{Outcome: outcome}, nil
}

// Restart resets the local match and tells the opponent to do the same.
func (g *Game) Restart() error {
	g.match.Reset()
	return g.peer.Send(Reset{})
}

// Close leaves the game.
func (g *Game) Close() error {
	return g.peer.Close()
}

func (g *Game) fingerprint() string {
	state := g.match.State()
	return hashing.Fingerprint(&state)
}
