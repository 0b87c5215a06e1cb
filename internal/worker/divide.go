package worker

import (
	"context"
	"fmt"

	"github.com/lgbarn/chessplay-go/internal/chess"
	"github.com/lgbarn/chessplay-go/internal/engine"
)

// Division is the perft node count below one root move.
type Division struct {
	Move  chess.Move
	Nodes uint64
}

// Divide counts perft nodes to depth for every legal root move, searching
// the root moves in parallel. Divisions are returned in LegalMoves order
// together with their total.
func Divide(ctx context.Context, state *chess.GameState, depth int, opts ...PoolOption) ([]Division, uint64, error) {
	if depth < 1 {
		return nil, 0, fmt.Errorf("perft depth must be at least 1, got %d", depth)
	}

	moves := engine.LegalMoves(state)
	pool := NewPool(perftItem, opts...)
	pool.Start()

	go func() {
		for i, move := range moves {
			if ctx.Err() != nil {
				pool.Stop()
				break
			}
			pool.Submit(WorkItem{State: *state, Move: move, Depth: depth - 1, Index: i})
		}
		pool.Close()
	}()

	divisions := make([]Division, len(moves))
	var total uint64
	var firstErr error
	received := 0
	for result := range pool.Results() {
		received++
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			pool.Stop()
			continue
		}
		divisions[result.Index] = Division{Move: result.Move, Nodes: result.Nodes}
		total += result.Nodes
	}

	if firstErr != nil {
		return nil, 0, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if received != len(moves) {
		return nil, 0, fmt.Errorf("perft stopped after %d of %d root moves", received, len(moves))
	}
	return divisions, total, nil
}

// perftItem applies the root move and counts the nodes below it.
func perftItem(item WorkItem) ProcessResult {
	result := ProcessResult{Index: item.Index, Move: item.Move}
	next := item.State
	if _, err := engine.ApplyMove(&next, item.Move); err != nil {
		result.Error = err
		return result
	}
	result.Nodes = engine.Perft(&next, item.Depth)
	return result
}
