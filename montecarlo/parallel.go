package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/domino14/row4/board"
)

// DefaultThreads is the worker count used when none is configured.
const DefaultThreads = 4

var ErrWorkerFailed = errors.New("rollout worker failed")

// EvaluateParallel splits the rollouts over a pool of workers. Every worker
// gets its own copy of the position, its own share of the games and its own
// random source; nothing is shared while they run. Once all of them are done
// the per-worker results are combined: the win rate is the mean of the
// workers' win rates, the counts are summed.
//
// If any worker fails the whole evaluation fails; partial results are
// discarded.
func EvaluateParallel(ctx context.Context, b board.Board, own board.Color, limits Limits, threads int) (Result, error) {
	logger := zerolog.Ctx(ctx)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if threads < 1 {
		threads = 1
	}
	shares := limits.split(threads)
	tstart := time.Now()

	results := make(chan Result, len(shares))
	g := errgroup.Group{}
	for t, share := range shares {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: worker %d: %v", ErrWorkerFailed, t, r)
				}
			}()
			results <- runWorker(b, own, share)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Err(err).Int("workers", len(shares)).Msg("parallel-evaluation-failed")
		return Result{}, err
	}
	close(results)

	agg := Result{}
	var rateSum float64
	n := 0
	for r := range results {
		rateSum += r.WinRate
		n++
		agg.Plies += r.Plies
		agg.Games += r.Games
		agg.Wins += r.Wins
		agg.Losses += r.Losses
		agg.Draws += r.Draws
		agg.GameLength.Merge(r.GameLength)
		agg.Lengths = append(agg.Lengths, r.Lengths...)
	}
	if n == 0 {
		agg.WinRate = 0.5
	} else {
		agg.WinRate = rateSum / float64(n)
	}
	logger.Debug().Int("workers", n).Int("games", agg.Games).Uint64("plies", agg.Plies).
		Float64("win-rate", agg.WinRate).Dur("elapsed", time.Since(tstart)).
		Msg("parallel-evaluation")
	return agg, nil
}

// runWorker is a variable so tests can make a worker blow up.
var runWorker = func(b board.Board, own board.Color, limits Limits) Result {
	return Evaluate(b, own, limits, frand.New())
}
