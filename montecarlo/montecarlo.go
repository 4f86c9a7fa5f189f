// Package montecarlo estimates the value of a position by playing random
// games to the end from it ("rollouts").
package montecarlo

import (
	"time"

	"github.com/domino14/row4/board"
	"github.com/domino14/row4/movegen"
	"github.com/domino14/row4/stats"
)

/*
	How a position is evaluated:

	until the game count or the time budget is used up:
		copy the position
		until the game is over:
			take the useful moves (immediate win, forced block, or all)
			pick one uniformly at random and play it
		count a win, loss or draw for the player we are evaluating for

	The win rate is wins / games. A draw counts as "not a win".
*/

// Intner is the only thing the simulator needs from a random source.
// *frand.RNG and *math/rand.Rand both satisfy it.
type Intner interface {
	Intn(n int) int
}

// Result summarizes a batch of rollouts.
type Result struct {
	// WinRate is wins / games for the evaluated player, or 0.5 if no game
	// was completed.
	WinRate float64
	// Plies is the total number of moves played over all rollouts.
	Plies  uint64
	Games  int
	Wins   int
	Losses int
	Draws  int
	// GameLength tracks the number of plies per rollout.
	GameLength stats.Statistic
	// Lengths holds every rollout length, only if Limits.RecordLengths was
	// set.
	Lengths []float64
}

// Interval returns a confidence interval around the win rate (confidence
// in percent, e.g. 95).
func (r Result) Interval(confidence float64) (float64, float64) {
	return stats.WilsonInterval(r.Wins, r.Games, confidence)
}

func (r *Result) finalize() {
	if r.Games == 0 {
		r.WinRate = 0.5
		return
	}
	r.WinRate = float64(r.Wins) / float64(r.Games)
}

// Evaluate plays rollouts from b and returns the win rate for own. It is
// single-threaded and does not modify b.
func Evaluate(b board.Board, own board.Color, limits Limits, rng Intner) Result {
	res := Result{}
	start := time.Now()
	for !limits.done(res.Games, start) {
		sim := b
		plies, winner := PlayRandomGame(&sim, rng)
		switch winner {
		case own:
			res.Wins++
		case board.NoColor:
			res.Draws++
		default:
			res.Losses++
		}
		res.Games++
		res.Plies += uint64(plies)
		res.GameLength.Push(float64(plies))
		if limits.RecordLengths {
			res.Lengths = append(res.Lengths, float64(plies))
		}
	}
	res.finalize()
	return res
}

// PlayRandomGame plays b out to the end, choosing uniformly among the useful
// moves at every ply. It returns the number of moves played and the winner
// (NoColor for a draw).
func PlayRandomGame(b *board.Board, rng Intner) (int, board.Color) {
	plies := 0
	for b.Winner() == board.NoColor {
		moves := movegen.UsefulMoves(b)
		if moves.Len() == 0 {
			return plies, board.NoColor
		}
		b.PlayMove(moves.At(rng.Intn(moves.Len())), true)
		plies++
	}
	return plies, b.Winner()
}
