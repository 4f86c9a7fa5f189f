package montecarlo

import (
	"context"

	"lukechampine.com/frand"

	"github.com/domino14/row4/board"
)

// Simulator evaluates leaf positions for the tree search. With more than
// one thread it fans the rollouts out; otherwise it runs them inline.
type Simulator struct {
	Games   int
	Millis  int
	Threads int

	rng *frand.RNG
}

// NewSimulator returns a simulator playing games rollouts per evaluation
// (and/or for at most millis milliseconds) on threads workers.
func NewSimulator(games, millis, threads int) *Simulator {
	return &Simulator{Games: games, Millis: millis, Threads: threads, rng: frand.New()}
}

func (s *Simulator) limits() Limits {
	return Limits{Games: s.Games, Millis: s.Millis}
}

// Evaluate returns the estimated win probability of own in b and the number
// of moves simulated to get it.
func (s *Simulator) Evaluate(ctx context.Context, b *board.Board, own board.Color) (float64, uint64, error) {
	if s.Threads > 1 {
		res, err := EvaluateParallel(ctx, *b, own, s.limits(), s.Threads)
		if err != nil {
			return 0, 0, err
		}
		return res.WinRate, res.Plies, nil
	}
	if s.rng == nil {
		s.rng = frand.New()
	}
	res := Evaluate(*b, own, s.limits(), s.rng)
	return res.WinRate, res.Plies, nil
}
