package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/errors"
	"github.com/lgbarn/chessplay-go/internal/match"
	"github.com/lgbarn/chessplay-go/internal/output"
)

const helpText = `Commands:
  e2e4, a7a8q   play a move (promotion letter optional, defaults to queen)
  moves [sq]    list legal moves, or destinations from one square
  board         redraw the board
  fen           print the position as FEN
  new           start a new game
  quit          leave`

// command is what a line of input asks for.
type command int

const (
	cmdMove command = iota // not a command, try it as a move
	cmdDone                // handled by the console
	cmdNew
	cmdQuit
)

// console reads commands and writes boards for one player.
type console struct {
	lines <-chan string
	out   output.GameWriter
}

func newConsole(cfg *config.Config) *console {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cfg.InputFile)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()
	return &console{
		lines: lines,
		out:   output.NewWriter(cfg.OutputFile, cfg.Output),
	}
}

// newLogger returns a logger for diagnostics, discarding them below
// verbosity 2.
func newLogger(cfg *config.Config, prefix string) *log.Logger {
	if cfg.Verbosity < 2 {
		return log.New(io.Discard, prefix, 0)
	}
	return log.New(cfg.LogFile, prefix, log.Ltime|log.Lmicroseconds)
}

// readLine returns the next non-empty line, or io.EOF when input ends.
func (c *console) readLine(ctx context.Context) (string, error) {
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case line, ok := <-c.lines:
			if !ok {
				return "", io.EOF
			}
			if line != "" {
				return line, nil
			}
		}
	}
}

// dispatch handles console commands and reports anything else as a move.
func (c *console) dispatch(line string, m *match.Match) command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return cmdDone
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return cmdQuit
	case "new":
		return cmdNew
	case "help", "?":
		c.say(helpText)
	case "board":
		c.showBoard(m)
	case "fen":
		c.say(m.FEN())
	case "moves":
		c.listMoves(m, fields[1:])
	default:
		return cmdMove
	}
	return cmdDone
}

func (c *console) listMoves(m *match.Match, args []string) {
	if len(args) == 0 {
		tokens := output.PositionOf(m).MoveTokens()
		if len(tokens) == 0 {
			c.say("No legal moves")
			return
		}
		c.say(strings.Join(tokens, " "))
		return
	}

	sq, ok := chess.ParseSquare(strings.ToLower(args[0]))
	if !ok {
		c.say(fmt.Sprintf("Unknown square %q", args[0]))
		return
	}
	dests := m.Destinations(sq)
	if len(dests) == 0 {
		c.say(fmt.Sprintf("No legal moves from %s", sq))
		return
	}
	names := make([]string, 0, len(dests))
	for _, d := range dests {
		names = append(names, d.String())
	}
	c.say(fmt.Sprintf("%s: %s", sq, strings.Join(names, " ")))
}

func (c *console) showBoard(m *match.Match) {
	_ = c.out.WriteBoard(output.PositionOf(m))
}

// report is registered as a match observer.
func (c *console) report(ev match.Event) {
	_ = c.out.WriteEvent(ev)
}

func (c *console) say(msg string) {
	_ = c.out.WriteMessage(msg)
}

// reject explains why input was not accepted.
func (c *console) reject(err error) {
	var pe *errors.ParseError
	if errors.Is(err, errors.ErrInvalidMoveToken) && errors.As(err, &pe) {
		c.say(fmt.Sprintf("Unrecognised input %q, type 'help' for commands", pe.Input))
		return
	}
	c.say("Move rejected: " + err.Error())
}
