package main

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/match"
	"github.com/lgbarn/chessplay-go/internal/relay"
	"github.com/lgbarn/chessplay-go/internal/uci"
)

// startEngine launches the configured UCI engine.
var startEngine = func(ctx context.Context, cfg *config.Config, logger *log.Logger) (*uci.Session, error) {
	return uci.StartSession(ctx, cfg.Engine.Path, cfg.Engine.Args, uci.WithLogger(logger))
}

// run plays games in the configured mode until the player quits or input ends.
func run(ctx context.Context, cfg *config.Config) error {
	if cfg.StartFEN != "" {
		if _, err := engine.NewStateFromFEN(cfg.StartFEN); err != nil {
			return err
		}
	}

	if cfg.PerftDepth > 0 {
		return runPerft(ctx, cfg)
	}

	con := newConsole(cfg)
	switch cfg.Mode {
	case config.EngineMode:
		return runEngine(ctx, cfg, con)
	case config.HostMode:
		return runHost(ctx, cfg, con)
	case config.JoinMode:
		return runJoin(ctx, cfg, con)
	default:
		return runLocal(ctx, cfg, con)
	}
}

func newMatch(cfg *config.Config) (*match.Match, error) {
	if cfg.StartFEN == "" {
		return match.New(), nil
	}
	return match.NewFromFEN(cfg.StartFEN)
}

// runLocal lets two players take turns at one keyboard.
func runLocal(ctx context.Context, cfg *config.Config, con *console) error {
	m, err := newMatch(cfg)
	if err != nil {
		return err
	}
	m.Observe(con.report)
	con.showBoard(m)

	for {
		line, err := con.readLine(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch con.dispatch(line, m) {
		case cmdQuit:
			return nil
		case cmdNew:
			m.Reset()
			con.showBoard(m)
		case cmdMove:
			if _, err := m.SubmitToken(line); err != nil {
				con.reject(err)
				continue
			}
			con.showBoard(m)
		}
	}
}

// runEngine plays the human against a UCI engine.
func runEngine(ctx context.Context, cfg *config.Config, con *console) error {
	logger := newLogger(cfg, "uci: ")
	session, err := startEngine(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Handshake(ctx); err != nil {
		return err
	}
	if err := session.NewGame(ctx); err != nil {
		return err
	}

	m, err := newMatch(cfg)
	if err != nil {
		return err
	}
	m.Observe(con.report)
	player := uci.NewPlayer(session, cfg.Engine.MoveTime)

	con.say(fmt.Sprintf("Playing %s against %s", cfg.HumanColour, session.Name()))
	con.showBoard(m)

	for {
		if !m.Status().IsTerminal() && m.ToMove() != cfg.HumanColour {
			if _, err := player.Move(ctx, m); err != nil {
				return err
			}
			con.showBoard(m)
			continue
		}

		line, err := con.readLine(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch con.dispatch(line, m) {
		case cmdQuit:
			return nil
		case cmdNew:
			m.Reset()
			if err := session.NewGame(ctx); err != nil {
				return err
			}
			con.showBoard(m)
		case cmdMove:
			if _, err := m.SubmitToken(line); err != nil {
				con.reject(err)
				continue
			}
			con.showBoard(m)
		}
	}
}

func relayOptions(cfg *config.Config) []relay.Option {
	return []relay.Option{
		relay.WithLogger(newLogger(cfg, "relay: ")),
		relay.WithName(cfg.Network.Name),
		relay.WithStartFEN(cfg.StartFEN),
	}
}

// runHost waits for a remote opponent and plays White.
func runHost(ctx context.Context, cfg *config.Config, con *console) error {
	con.say(fmt.Sprintf("Waiting for an opponent on %s", cfg.Network.Address))
	peer, err := relay.Host(ctx, cfg.Network.Address, relayOptions(cfg)...)
	if err != nil {
		return err
	}
	return playNetwork(ctx, con, peer)
}

// runJoin connects to a host and plays Black.
func runJoin(ctx context.Context, cfg *config.Config, con *console) error {
	peer, err := relay.Join(ctx, cfg.Network.Address, relayOptions(cfg)...)
	if err != nil {
		return err
	}
	return playNetwork(ctx, con, peer)
}

// playNetwork plays games over an established relay session.
func playNetwork(ctx context.Context, con *console, peer *relay.Peer) error {
	defer peer.Close()

	game, err := relay.NewGame(peer)
	if err != nil {
		return err
	}
	m := game.Match()
	m.Observe(con.report)

	con.say(fmt.Sprintf("Playing %s against %s", peer.Colour(), peer.Opponent()))
	con.showBoard(m)

	for {
		switch {
		case m.Status().IsTerminal():
			quit, err := con.afterGame(ctx, game)
			if quit || err != nil {
				return err
			}

		case !game.MyTurn():
			update, err := game.AwaitOpponent(ctx)
			if errors.Is(err, errors.ErrClosed) {
				con.say("Opponent left")
				return nil
			}
			if err != nil {
				return err
			}
			if update.Reset {
				con.say("Opponent started a new game")
			}
			con.showBoard(m)

		default:
			line, err := con.readLine(ctx)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}

			switch con.dispatch(line, m) {
			case cmdQuit:
				return nil
			case cmdNew:
				if err := game.Restart(); err != nil {
					return err
				}
				con.showBoard(m)
			case cmdMove:
				if _, err := game.PlayToken(line); err != nil {
					if errors.Is(err, errors.ErrClosed) {
						return err
					}
					con.reject(err)
					continue
				}
				con.showBoard(m)
			}
		}
	}
}

type awaitResult struct {
	update relay.Update
	err    error
}

// afterGame waits after a finished network game until either side starts a
// new one or the local player quits.
func (c *console) afterGame(ctx context.Context, game *relay.Game) (quit bool, err error) {
	c.say("Game over. Type 'new' to play again or 'quit' to leave.")

	awaitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	results := make(chan awaitResult, 1)
	go func() {
		update, err := game.AwaitOpponent(awaitCtx)
		results <- awaitResult{update, err}
	}()

	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()

		case r := <-results:
			if errors.Is(r.err, errors.ErrClosed) {
				c.say("Opponent left")
				return true, nil
			}
			if r.err != nil {
				return true, r.err
			}
			c.say("Opponent started a new game")
			c.showBoard(game.Match())
			return false, nil

		case line, ok := <-c.lines:
			if !ok {
				return true, nil
			}
			switch c.dispatch(line, game.Match()) {
			case cmdQuit:
				return true, nil
			case cmdNew:
				cancel()
				<-results
				if err := game.Restart(); err != nil {
					return true, err
				}
				c.showBoard(game.Match())
				return false, nil
			case cmdMove:
				c.say("The game is over")
			}
		}
	}
}
