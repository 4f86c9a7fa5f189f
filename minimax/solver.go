// Package minimax chooses a move with an iterative-deepening alpha-beta
// search whose leaves are scored by a LeafEvaluator (normally Monte Carlo
// rollouts) through a position cache.
package minimax

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/row4/board"
	"github.com/domino14/row4/cache"
	"github.com/domino14/row4/movegen"
)

/*
function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is terminal then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if β ≤ α then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if β ≤ α then
                break (* α cut-off *)
        return value
*/

const (
	DefaultMaxDepth     = board.NumCells
	DefaultTimeBudgetMs = 1000

	// Scores are probabilities; these start every min/max so that the first
	// child always replaces them.
	worstForMax = -1.0
	worstForMin = 2.0
)

var ErrNoEvaluator = errors.New("solver has no leaf evaluator")

// Solution is the outcome of a search.
type Solution struct {
	Move board.Column
	// Variation is the expected line of play, root first. Move is
	// Variation[0].
	Variation []board.Column
	// WinProb is the estimated probability that the player to move at the
	// root wins.
	WinProb float64
	// SimulatedMoves and Positions are summed over every completed depth.
	SimulatedMoves uint64
	Positions      uint64
	Depth          int
	Elapsed        time.Duration
}

func (s Solution) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "move %d (p=%.3f) depth %d;", s.Move+1, s.WinProb, s.Depth)
	for _, c := range s.Variation {
		fmt.Fprintf(&sb, " %d", c+1)
	}
	return sb.String()
}

// depthLog is one document of the log stream.
type depthLog struct {
	Depth          int     `yaml:"depth"`
	Variation      string  `yaml:"variation"`
	Score          float64 `yaml:"score"`
	SimulatedMoves uint64  `yaml:"simulated-moves"`
	Positions      uint64  `yaml:"positions"`
	ElapsedMs      int64   `yaml:"elapsed-ms"`
}

type Solver struct {
	evaluator LeafEvaluator
	cache     *cache.Cache

	maxDepth                int
	timeBudget              time.Duration
	iterativeDeepeningOptim bool

	// searchingPlayer is the player to move at the root; every score is a
	// probability that this player wins.
	searchingPlayer    board.Color
	principalVariation []board.Column

	nodes     atomic.Uint64
	simulated atomic.Uint64

	logStream io.Writer
}

// Init sets up the solver. c may be nil, in which case every leaf is handed
// to the evaluator.
func (s *Solver) Init(evaluator LeafEvaluator, c *cache.Cache) error {
	if evaluator == nil {
		return ErrNoEvaluator
	}
	s.evaluator = evaluator
	s.cache = c
	s.maxDepth = DefaultMaxDepth
	s.timeBudget = DefaultTimeBudgetMs * time.Millisecond
	s.iterativeDeepeningOptim = true
	return nil
}

func (s *Solver) SetMaxDepth(d int) {
	s.maxDepth = max(d, 1)
}

// SetTimeBudget bounds iterative deepening. The budget is only checked
// between depths; a zero budget deepens until the depth limit.
func (s *Solver) SetTimeBudget(d time.Duration) {
	s.timeBudget = d
}

func (s *Solver) SetIterativeDeepening(id bool) {
	s.iterativeDeepeningOptim = id
}

// SetLogStream makes the solver write one YAML document per completed
// depth to w.
func (s *Solver) SetLogStream(w io.Writer) {
	s.logStream = w
}

func (s *Solver) Cache() *cache.Cache {
	return s.cache
}

// Solve searches b for the player to move. It returns board.ErrGameOver if
// the game has already ended.
func (s *Solver) Solve(ctx context.Context, b board.Board) (Solution, error) {
	if b.Terminal() {
		return Solution{}, board.ErrGameOver
	}
	s.searchingPlayer = b.ToMove()
	s.principalVariation = nil
	s.nodes.Store(0)
	s.simulated.Store(0)
	timer := NewTimer(s.timeBudget)
	log.Debug().Int("max-depth", s.maxDepth).Dur("budget", s.timeBudget).
		Bool("iterative-deepening", s.iterativeDeepeningOptim).
		Str("player", s.searchingPlayer.String()).Msg("minimax-solve-config")

	g := &errgroup.Group{}
	done := make(chan struct{})
	var sol Solution

	g.Go(func() error {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nps", nodes-lastNodes).Msg("nodes-per-second")
				lastNodes = nodes
			}
		}
	})

	g.Go(func() error {
		defer close(done)
		var err error
		sol, err = s.iterativelyDeepen(ctx, &b, timer)
		return err
	})

	err := g.Wait()
	if s.cache != nil {
		log.Debug().
			Int("cache-entries", s.cache.Len()).
			Uint64("cache-lookups", s.cache.Lookups()).
			Uint64("cache-hits", s.cache.Hits()).
			Msg("cache-stats")
	}
	log.Info().
		Int("depth", sol.Depth).
		Str("pv", sol.String()).
		Uint64("positions", sol.Positions).
		Uint64("simulated-moves", sol.SimulatedMoves).
		Float64("time-elapsed-sec", sol.Elapsed.Seconds()).
		Msg("solve-returning")
	return sol, err
}

func (s *Solver) iterativelyDeepen(ctx context.Context, b *board.Board, timer *Timer) (Solution, error) {
	ceiling := min(s.maxDepth, b.RemainingMoves())
	start := 1
	if !s.iterativeDeepeningOptim {
		start = ceiling
	}
	var enc *yaml.Encoder
	if s.logStream != nil {
		enc = yaml.NewEncoder(s.logStream)
		defer enc.Close()
	}

	var sol Solution
	for d := start; d <= ceiling; d++ {
		log.Debug().Int("depth", d).Msg("deepening-iteratively")
		variation, score, err := s.alphabeta(ctx, b, d, worstForMax, worstForMin, s.principalVariation)
		if err != nil {
			if sol.Depth > 0 && ctx.Err() != nil {
				// keep the last full depth
				log.Info().Err(err).Int("depth", d).Msg("search-interrupted")
				return sol, nil
			}
			return sol, err
		}
		slices.Reverse(variation)
		s.principalVariation = variation

		sol = Solution{
			Move:           variation[0],
			Variation:      variation,
			WinProb:        score,
			SimulatedMoves: s.simulated.Load(),
			Positions:      s.nodes.Load(),
			Depth:          d,
			Elapsed:        timer.Elapsed(),
		}
		log.Debug().Int("depth", d).Float64("score", score).
			Str("pv", board.MoveString(variation)).Msg("best-val")
		if enc != nil {
			if err := enc.Encode(depthLog{
				Depth:          d,
				Variation:      board.MoveString(variation),
				Score:          score,
				SimulatedMoves: sol.SimulatedMoves,
				Positions:      sol.Positions,
				ElapsedMs:      sol.Elapsed.Milliseconds(),
			}); err != nil {
				return sol, err
			}
		}
		if timer.Expired() || ctx.Err() != nil {
			break
		}
	}
	return sol, nil
}

// alphabeta returns the best line from b (leaf first) and its score for the
// searching player. hint is the previous principal variation from this ply
// down; its head is tried first.
func (s *Solver) alphabeta(ctx context.Context, b *board.Board, depth int, α, β float64, hint []board.Column) ([]board.Column, float64, error) {
	s.nodes.Add(1)

	switch b.Winner() {
	case board.NoColor:
	case s.searchingPlayer:
		return nil, 1.0, nil
	default:
		return nil, 0.0, nil
	}
	if b.Moves().Len() == 0 {
		return nil, 0.5, nil
	}

	if depth == 0 {
		p, err := s.evaluateLeaf(ctx, b)
		return nil, p, err
	}

	moves := movegen.UsefulMoves(b)
	if len(hint) > 0 && moves.Contains(hint[0]) {
		moves = moves.MoveToFront(hint[0])
	}

	maximizing := b.ToMove() == s.searchingPlayer
	best := worstForMax
	if !maximizing {
		best = worstForMin
	}
	var bestLine []board.Column

	for i := 0; i < moves.Len(); i++ {
		col := moves.At(i)
		child := *b
		child.PlayMove(col, true)
		var childHint []board.Column
		if len(hint) > 0 && hint[0] == col {
			childHint = hint[1:]
		}
		line, score, err := s.alphabeta(ctx, &child, depth-1, α, β, childHint)
		if err != nil {
			return nil, 0, err
		}
		if maximizing {
			if score > best {
				best = score
				bestLine = append(line, col)
			}
			α = max(α, best)
		} else {
			if score < best {
				best = score
				bestLine = append(line, col)
			}
			β = min(β, best)
		}
		if β <= α {
			break
		}
	}
	return bestLine, best, nil
}

// evaluateLeaf consults the cache and falls back to the evaluator, storing
// what it computes.
func (s *Solver) evaluateLeaf(ctx context.Context, b *board.Board) (float64, error) {
	if s.cache != nil {
		if p, ok := s.cache.Get(b, s.searchingPlayer); ok {
			return p, nil
		}
	}
	p, plies, err := s.evaluator.Evaluate(ctx, b, s.searchingPlayer)
	if err != nil {
		return 0, err
	}
	s.simulated.Add(plies)
	if s.cache != nil {
		s.cache.Store(b, s.searchingPlayer, p)
	}
	return p, nil
}
