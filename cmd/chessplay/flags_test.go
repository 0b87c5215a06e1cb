package main

import (
	"testing"
	"time"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
)

// saveRestoreBool is a helper to save and defer-restore a bool flag pointer.
// Usage: defer saveRestoreBool(jsonOutput, true)()
func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreDuration(ptr *time.Duration, val time.Duration) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

// ---------------------------------------------------------------------------
// applyModeFlags
// ---------------------------------------------------------------------------

func TestApplyModeFlags(t *testing.T) {
	tests := []struct {
		name       string
		mode       string
		colour     string
		wantMode   config.Mode
		wantColour chess.Colour
		wantErr    bool
	}{
		{"defaults", "local", "white", config.LocalMode, chess.White, false},
		{"engine as black", "engine", "black", config.EngineMode, chess.Black, false},
		{"host", "host", "w", config.HostMode, chess.White, false},
		{"join", "join", "white", config.JoinMode, chess.White, false},
		{"bad mode", "arena", "white", config.LocalMode, chess.White, true},
		{"bad colour", "engine", "green", config.EngineMode, chess.White, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreString(mode, tt.mode)()
			defer saveRestoreString(humanColour, tt.colour)()
			defer saveRestoreString(startFEN, "k7/8/8/8/8/8/8/7K w - - 0 1")()

			cfg := config.NewConfig()
			err := applyModeFlags(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyModeFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.Mode != tt.wantMode {
				t.Errorf("Mode = %v; want %v", cfg.Mode, tt.wantMode)
			}
			if cfg.HumanColour != tt.wantColour {
				t.Errorf("HumanColour = %v; want %v", cfg.HumanColour, tt.wantColour)
			}
			if cfg.StartFEN != "k7/8/8/8/8/8/8/7K w - - 0 1" {
				t.Errorf("StartFEN = %q", cfg.StartFEN)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// applyVerbosityFlags
// ---------------------------------------------------------------------------

func TestApplyVerbosityFlags(t *testing.T) {
	tests := []struct {
		name    string
		quiet   bool
		verbose bool
		want    int
	}{
		{"default", false, false, 1},
		{"quiet", true, false, 0},
		{"verbose", false, true, 2},
		{"quiet wins", true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreBool(quiet, tt.quiet)()
			defer saveRestoreBool(verbose, tt.verbose)()
			cfg := config.NewConfig()
			applyVerbosityFlags(cfg)
			if cfg.Verbosity != tt.want {
				t.Errorf("Verbosity = %d; want %d", cfg.Verbosity, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// applyOutputFlags
// ---------------------------------------------------------------------------

func TestApplyOutputFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		defer saveRestoreBool(jsonOutput, false)()
		defer saveRestoreBool(noColour, false)()
		defer saveRestoreBool(noCoords, false)()
		defer saveRestoreBool(flipBoard, false)()
		defer saveRestoreBool(showMoves, false)()
		cfg := config.NewConfig()
		applyOutputFlags(cfg)
		if cfg.Output.Format != config.TextFormat || !cfg.Output.Colour || !cfg.Output.Coordinates {
			t.Errorf("Output = %+v", cfg.Output)
		}
		if cfg.Output.Flip || cfg.Output.ShowMoves {
			t.Errorf("Output = %+v", cfg.Output)
		}
	})

	t.Run("all set", func(t *testing.T) {
		defer saveRestoreBool(jsonOutput, true)()
		defer saveRestoreBool(noColour, true)()
		defer saveRestoreBool(noCoords, true)()
		defer saveRestoreBool(flipBoard, true)()
		defer saveRestoreBool(showMoves, true)()
		cfg := config.NewConfig()
		applyOutputFlags(cfg)
		if cfg.Output.Format != config.JSONFormat || cfg.Output.Colour || cfg.Output.Coordinates {
			t.Errorf("Output = %+v", cfg.Output)
		}
		if !cfg.Output.Flip || !cfg.Output.ShowMoves {
			t.Errorf("Output = %+v", cfg.Output)
		}
	})
}

// ---------------------------------------------------------------------------
// applyEngineFlags / applyNetworkFlags
// ---------------------------------------------------------------------------

func TestApplyEngineFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     string
		moveTime time.Duration
		wantArgs int
		wantTime time.Duration
	}{
		{"no args", "", time.Second, 0, time.Second},
		{"split args", "--uci  -t 2", 500 * time.Millisecond, 3, 500 * time.Millisecond},
		{"tiny move time raised", "", time.Millisecond, 0, 10 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreString(enginePath, "/opt/fish")()
			defer saveRestoreString(engineArgs, tt.args)()
			defer saveRestoreDuration(moveTime, tt.moveTime)()
			cfg := config.NewConfig()
			applyEngineFlags(cfg)
			if cfg.Engine.Path != "/opt/fish" {
				t.Errorf("Path = %q", cfg.Engine.Path)
			}
			if len(cfg.Engine.Args) != tt.wantArgs {
				t.Errorf("Args = %q; want %d entries", cfg.Engine.Args, tt.wantArgs)
			}
			if cfg.Engine.MoveTime != tt.wantTime {
				t.Errorf("MoveTime = %v; want %v", cfg.Engine.MoveTime, tt.wantTime)
			}
		})
	}
}

func TestApplyNetworkFlags(t *testing.T) {
	defer saveRestoreString(address, "10.0.0.2:9000")()
	defer saveRestoreString(playerName, "quiet-bishop")()
	cfg := config.NewConfig()
	applyNetworkFlags(cfg)
	if cfg.Network.Address != "10.0.0.2:9000" || cfg.Network.Name != "quiet-bishop" {
		t.Errorf("Network = %+v", cfg.Network)
	}
}

func TestApplyFlags_Defaults(t *testing.T) {
	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		t.Fatalf("applyFlags() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() after default flags = %v", err)
	}
}
