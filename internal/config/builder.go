package config

import (
	"io"
	"time"

	"github.com/lgbarn/chessplay-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithMode sets the play mode.
func (b *ConfigBuilder) WithMode(mode Mode) *ConfigBuilder {
	b.cfg.Mode = mode
	return b
}

// WithStartFEN sets the starting position.
func (b *ConfigBuilder) WithStartFEN(fen string) *ConfigBuilder {
	b.cfg.StartFEN = fen
	return b
}

// WithHumanColour sets the side the human plays against an engine.
func (b *ConfigBuilder) WithHumanColour(colour chess.Colour) *ConfigBuilder {
	b.cfg.HumanColour = colour
	return b
}

// WithPerft counts nodes to depth with the given number of workers instead
// of playing.
func (b *ConfigBuilder) WithPerft(depth, workers int) *ConfigBuilder {
	b.cfg.PerftDepth = depth
	b.cfg.Workers = workers
	return b
}

// WithEngine sets the engine executable and its arguments.
func (b *ConfigBuilder) WithEngine(path string, args ...string) *ConfigBuilder {
	b.cfg.Engine.Path = path
	b.cfg.Engine.Args = args
	return b
}

// WithMoveTime sets the engine thinking time per move.
func (b *ConfigBuilder) WithMoveTime(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.MoveTime = d
	return b
}

// WithAddress sets the network address.
func (b *ConfigBuilder) WithAddress(address string) *ConfigBuilder {
	b.cfg.Network.Address = address
	return b
}

// WithPlayerName sets the name announced to a remote opponent.
func (b *ConfigBuilder) WithPlayerName(name string) *ConfigBuilder {
	b.cfg.Network.Name = name
	return b
}

// WithOutputFormat sets the output format.
func (b *ConfigBuilder) WithOutputFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Output.Format = format
	return b
}

// WithColour enables or disables ANSI colours.
func (b *ConfigBuilder) WithColour(enabled bool) *ConfigBuilder {
	b.cfg.Output.Colour = enabled
	return b
}

// WithCoordinates enables or disables rank and file labels.
func (b *ConfigBuilder) WithCoordinates(enabled bool) *ConfigBuilder {
	b.cfg.Output.Coordinates = enabled
	return b
}

// WithFlip draws the board from Black's side.
func (b *ConfigBuilder) WithFlip(enabled bool) *ConfigBuilder {
	b.cfg.Output.Flip = enabled
	return b
}

// WithInput sets the input reader.
func (b *ConfigBuilder) WithInput(r io.Reader) *ConfigBuilder {
	b.cfg.InputFile = r
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
