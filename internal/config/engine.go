package config

import "time"

// DefaultMoveTime is how long the engine thinks per move unless told otherwise.
const DefaultMoveTime = time.Second

// EngineConfig holds settings for the UCI engine opponent.
type EngineConfig struct {
	// Path is the engine executable, looked up in PATH if not absolute
	Path string

	// Args are passed to the engine executable
	Args []string

	// MoveTime is the thinking time per move
	MoveTime time.Duration
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		Path:     "stockfish",
		MoveTime: DefaultMoveTime,
	}
}
