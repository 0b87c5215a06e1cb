// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"
	"time"

	"github.com/lgbarn/chessplay-go/internal/config"
)

var (
	// General options
	help      = flag.Bool("h", false, "Show help")
	version   = flag.Bool("version", false, "Show version")
	mode      = flag.String("mode", "local", "Play mode: local, engine, host, join")
	startFEN  = flag.String("fen", "", "Starting position in FEN (default: standard)")
	quiet     = flag.Bool("s", false, "Silent mode (no diagnostics)")
	verbose   = flag.Bool("verbose", false, "Log engine and network traffic")
	logFile   = flag.String("l", "", "Write diagnostics to this file (default: stderr)")
	appendLog = flag.String("L", "", "Append diagnostics to this file")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("J", false, "Output boards and moves as JSON lines")
	noColour   = flag.Bool("nocolour", false, "Disable ANSI colours")
	noCoords   = flag.Bool("nocoords", false, "Hide rank and file labels")
	flipBoard  = flag.Bool("flip", false, "Draw the board from Black's side")
	showMoves  = flag.Bool("showmoves", false, "List legal moves under the board")
	inputFile  = flag.String("i", "", "Read commands from this file (default: stdin)")

	// Engine options
	enginePath  = flag.String("engine", "stockfish", "UCI engine executable")
	engineArgs  = flag.String("engine-args", "", "Space separated arguments for the engine")
	moveTime    = flag.Duration("movetime", config.DefaultMoveTime, "Engine thinking time per move")
	humanColour = flag.String("colour", "white", "Side the human plays against the engine")

	// Perft options
	perftDepth = flag.Int("perft", 0, "Count legal move tree nodes to this depth and exit")
	workers    = flag.Int("workers", 0, "Perft worker goroutines (default: one per CPU)")

	// Network options
	address    = flag.String("addr", config.DefaultAddress, "Listen address (host) or host:port to dial (join)")
	playerName = flag.String("name", "", "Name announced to the opponent (default: random)")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) error {
	if err := applyModeFlags(cfg); err != nil {
		return err
	}
	applyVerbosityFlags(cfg)
	applyOutputFlags(cfg)
	applyEngineFlags(cfg)
	applyNetworkFlags(cfg)
	return nil
}

// applyModeFlags configures the play mode and sides.
func applyModeFlags(cfg *config.Config) error {
	m, err := config.ParseMode(*mode)
	if err != nil {
		return err
	}
	cfg.Mode = m
	cfg.StartFEN = *startFEN
	cfg.PerftDepth = *perftDepth
	cfg.Workers = *workers

	colour, err := config.ParseColour(*humanColour)
	if err != nil {
		return err
	}
	cfg.HumanColour = colour
	return nil
}

// applyVerbosityFlags configures the diagnostic level.
func applyVerbosityFlags(cfg *config.Config) {
	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *verbose:
		cfg.Verbosity = 2
	}
}

// applyOutputFlags configures board rendering.
func applyOutputFlags(cfg *config.Config) {
	if *jsonOutput {
		cfg.Output.Format = config.JSONFormat
	} else {
		cfg.Output.Format = config.TextFormat
	}
	cfg.Output.Colour = !*noColour
	cfg.Output.Coordinates = !*noCoords
	cfg.Output.Flip = *flipBoard
	cfg.Output.ShowMoves = *showMoves
}

// applyEngineFlags configures the UCI engine.
func applyEngineFlags(cfg *config.Config) {
	cfg.Engine.Path = *enginePath
	cfg.Engine.Args = strings.Fields(*engineArgs)
	cfg.Engine.MoveTime = *moveTime
	if cfg.Engine.MoveTime < 10*time.Millisecond && cfg.Engine.MoveTime > 0 {
		cfg.Engine.MoveTime = 10 * time.Millisecond
	}
}

// applyNetworkFlags configures host and join modes.
func applyNetworkFlags(cfg *config.Config) {
	cfg.Network.Address = *address
	cfg.Network.Name = *playerName
}
