// Package config provides configuration for chessplay.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chessplay-go/internal/chess"
)

// Mode selects who plays against whom.
type Mode int

const (
	LocalMode  Mode = iota // two humans at one terminal
	EngineMode             // human against a UCI engine
	HostMode               // human against a remote player, listening
	JoinMode               // human against a remote player, dialling
)

var modeNames = map[Mode]string{
	LocalMode:  "local",
	EngineMode: "engine",
	HostMode:   "host",
	JoinMode:   "join",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name as accepted on the command line.
func ParseMode(s string) (Mode, error) {
	for mode, name := range modeNames {
		if strings.EqualFold(s, name) {
			return mode, nil
		}
	}
	return LocalMode, fmt.Errorf("unknown mode %q (want local, engine, host or join)", s)
}

// ParseColour converts "white" or "black" (or w/b) to a colour.
func ParseColour(s string) (chess.Colour, error) {
	switch strings.ToLower(s) {
	case "w", "white":
		return chess.White, nil
	case "b", "black":
		return chess.Black, nil
	default:
		return chess.White, fmt.Errorf("unknown colour %q", s)
	}
}

// Config holds all program configuration.
type Config struct {
	Mode      Mode
	Verbosity int // 0=nothing, 1=normal, 2=running commentary

	// StartFEN is the starting position; empty means the standard one.
	StartFEN string

	// HumanColour is the side the local player takes in engine mode.
	HumanColour chess.Colour

	// PerftDepth, when positive, counts move tree nodes instead of playing.
	PerftDepth int
	Workers    int // perft worker goroutines, 0 means one per CPU

	Engine  *EngineConfig
	Network *NetworkConfig
	Output  *OutputConfig

	// Streams
	InputFile  io.Reader
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Mode:        LocalMode,
		Verbosity:   1,
		HumanColour: chess.White,
		Engine:      NewEngineConfig(),
		Network:     NewNetworkConfig(),
		Output:      NewOutputConfig(),
		InputFile:   os.Stdin,
		OutputFile:  os.Stdout,
		LogFile:     os.Stderr,
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.Mode {
	case EngineMode:
		if c.Engine.Path == "" {
			return fmt.Errorf("engine mode needs an engine path")
		}
		if c.Engine.MoveTime <= 0 {
			return fmt.Errorf("engine move time must be positive, got %v", c.Engine.MoveTime)
		}
	case HostMode, JoinMode:
		if c.Network.Address == "" {
			return fmt.Errorf("%s mode needs an address", c.Mode)
		}
	}
	if c.PerftDepth < 0 {
		return fmt.Errorf("perft depth must not be negative, got %d", c.PerftDepth)
	}
	if c.Mode == JoinMode && c.StartFEN != "" {
		return fmt.Errorf("the host chooses the starting position")
	}
	return nil
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}
