package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/config"
	"github.com/lgbarn/chessplay-go/internal/engine"
	"github.com/lgbarn/chessplay-go/internal/worker"
)

// runPerft prints the node count below every root move and the total.
func runPerft(ctx context.Context, cfg *config.Config) error {
	state := chess.NewGameState()
	if cfg.StartFEN != "" {
		var err error
		if state, err = engine.NewStateFromFEN(cfg.StartFEN); err != nil {
			return err
		}
	}

	var opts []worker.PoolOption
	if cfg.Workers > 0 {
		opts = append(opts, worker.WithWorkers(cfg.Workers))
	}

	start := time.Now()
	divisions, total, err := worker.Divide(ctx, state, cfg.PerftDepth, opts...)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, d := range divisions {
		fmt.Fprintf(cfg.OutputFile, "%s: %d\n", d.Move, d.Nodes)
	}
	fmt.Fprintf(cfg.OutputFile, "\nNodes searched: %d\n", total)

	if cfg.Verbosity > 1 {
		fmt.Fprintf(cfg.LogFile, "perft %d: %d nodes in %v\n", cfg.PerftDepth, total, elapsed.Round(time.Millisecond))
	}
	return nil
}
