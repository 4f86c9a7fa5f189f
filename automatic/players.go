package automatic

import (
	"context"
	"fmt"

	"lukechampine.com/frand"

	"github.com/domino14/row4/board"
	"github.com/domino14/row4/cache"
	"github.com/domino14/row4/config"
	"github.com/domino14/row4/minimax"
	"github.com/domino14/row4/montecarlo"
	"github.com/domino14/row4/movegen"
)

const (
	MinimaxPlayer = "minimax"
	FlatPlayer    = "flat"
	RandomPlayer  = "random"
)

// Player picks a move for whoever is to move on b. A player is used by
// one game at a time.
type Player interface {
	Name() string
	ChooseMove(ctx context.Context, b board.Board) (board.Column, error)
}

type searchPlayer struct {
	name   string
	solver *minimax.Solver
}

func (p *searchPlayer) Name() string { return p.name }

func (p *searchPlayer) ChooseMove(ctx context.Context, b board.Board) (board.Column, error) {
	sol, err := p.solver.Solve(ctx, b)
	if err != nil {
		return 0, err
	}
	return sol.Move, nil
}

type flatPlayer struct {
	name    string
	limits  montecarlo.Limits
	threads int
}

func (p *flatPlayer) Name() string { return p.name }

func (p *flatPlayer) ChooseMove(ctx context.Context, b board.Board) (board.Column, error) {
	col, _, _, err := montecarlo.ChooseMove(ctx, &b, p.limits, p.threads)
	return col, err
}

// randomPlayer plays a uniformly random useful move. It is the baseline
// the other players should beat.
type randomPlayer struct {
	name string
	rng  *frand.RNG
}

func (p *randomPlayer) Name() string { return p.name }

func (p *randomPlayer) ChooseMove(ctx context.Context, b board.Board) (board.Column, error) {
	if b.Terminal() {
		return 0, board.ErrGameOver
	}
	moves := movegen.UsefulMoves(&b)
	return moves.At(p.rng.Intn(moves.Len())), nil
}

// NewPlayer builds a player of the given kind from the configuration. The
// name is suffixed to tell the two sides of a match apart.
func NewPlayer(cfg *config.Config, kind string, suffix string) (Player, error) {
	name := kind + suffix
	threads := cfg.GetInt(config.ConfigThreads)
	switch kind {
	case MinimaxPlayer:
		c := cache.New()
		c.Reset(cfg.GetFloat64(config.ConfigCacheMemoryFraction))
		sim := montecarlo.NewSimulator(cfg.GetInt(config.ConfigLeafGames),
			cfg.GetInt(config.ConfigLeafMillis), threads)
		s := &minimax.Solver{}
		if err := s.Init(sim, c); err != nil {
			return nil, err
		}
		s.SetMaxDepth(cfg.GetInt(config.ConfigMaxDepth))
		s.SetTimeBudget(cfg.TimeBudget())
		s.SetIterativeDeepening(cfg.GetBool(config.ConfigIterativeDeepening))
		return &searchPlayer{name: name, solver: s}, nil
	case FlatPlayer:
		return &flatPlayer{
			name:    name,
			limits:  montecarlo.Limits{Millis: cfg.GetInt(config.ConfigFlatMillis)},
			threads: threads,
		}, nil
	case RandomPlayer:
		return &randomPlayer{name: name, rng: frand.New()}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, kind)
}
