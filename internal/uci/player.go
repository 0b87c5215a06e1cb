package uci

import (
	"context"
	"time"

	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/match"
)

// Player lets a UCI engine play the side to move of a match.
type Player struct {
	session  *Session
	moveTime time.Duration
}

// NewPlayer creates a player that searches moveTime per move.
func NewPlayer(session *Session, moveTime time.Duration) *Player {
	return &Player{session: session, moveTime: moveTime}
}

// Move asks the engine for a move in the match's current position and submits
// it. An engine move the rules reject is returned as an error and the match
// is left unchanged.
func (p *Player) Move(ctx context.Context, m *match.Match) (engine.Outcome, error) {
	fen := m.FEN()
	token, score, err := p.session.BestMove(ctx, fen, p.moveTime)
	if err != nil {
		return engine.Outcome{}, err
	}
	if token == "(none)" || token == "0000" {
		return engine.Outcome{}, errors.Wrapf(errors.ErrProtocol, "engine found no move in %s", fen)
	}
	p.session.logger.Printf("bestmove %s (%s)", token, score)

	outcome, err := m.SubmitToken(token)
	if err != nil {
		return engine.Outcome{}, errors.Wrapf(err, "engine move %s", token)
	}
	return outcome, nil
}
