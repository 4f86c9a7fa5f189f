package minimax

import (
	"context"

	"github.com/domino14/row4/board"
)

// LeafEvaluator estimates the probability that own wins b. It also returns
// the number of moves it simulated to get there, for instrumentation.
type LeafEvaluator interface {
	Evaluate(ctx context.Context, b *board.Board, own board.Color) (float64, uint64, error)
}
