package montecarlo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/domino14/row4/board"
	"github.com/domino14/row4/movegen"
)

// ChooseMove picks a move by rollouts alone, without a tree: the budget is
// split evenly over the useful moves, each resulting position is evaluated
// for the player to move, and the best one wins. It returns the column, its
// estimated win rate and the number of games played.
func ChooseMove(ctx context.Context, b *board.Board, limits Limits, threads int) (board.Column, float64, int, error) {
	logger := zerolog.Ctx(ctx)
	if b.Terminal() {
		return 0, 0, 0, board.ErrGameOver
	}
	if err := limits.Validate(); err != nil {
		return 0, 0, 0, err
	}
	me := b.ToMove()
	moves := movegen.UsefulMoves(b)
	n := moves.Len()

	per := limits
	per.Games = limits.Games / n
	per.Millis = limits.Millis / n
	if limits.Games > 0 && per.Games == 0 {
		per.Games = 1
	}
	if limits.Millis > 0 && per.Millis == 0 {
		per.Millis = 1
	}

	bestCol := moves.At(0)
	bestRate := -1.0
	total := 0
	for i := 0; i < n; i++ {
		col := moves.At(i)
		sim := *b
		sim.PlayMove(col, true)
		res, err := EvaluateParallel(ctx, sim, me, per, threads)
		if err != nil {
			return 0, 0, 0, err
		}
		total += res.Games
		logger.Debug().Int("column", int(col)).Float64("win-rate", res.WinRate).
			Int("games", res.Games).Msg("flat-candidate")
		if res.WinRate > bestRate {
			bestCol = col
			bestRate = res.WinRate
		}
	}
	return bestCol, bestRate, total, nil
}
