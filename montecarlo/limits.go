package montecarlo

import (
	"errors"
	"time"
)

var ErrNoLimits = errors.New("either a game count or a time budget is required")

// Limits bounds a batch of rollouts. A zero field is unbounded; the batch
// ends as soon as either bound is hit. The time budget is only checked
// between games, so a game in progress is always finished.
type Limits struct {
	Games  int
	Millis int

	RecordLengths bool
}

// Validate fails if the limits would never stop.
func (l Limits) Validate() error {
	if l.Games <= 0 && l.Millis <= 0 {
		return ErrNoLimits
	}
	return nil
}

func (l Limits) budget() time.Duration {
	return time.Duration(l.Millis) * time.Millisecond
}

func (l Limits) done(games int, start time.Time) bool {
	if l.Games <= 0 && l.Millis <= 0 {
		return true
	}
	if l.Games > 0 && games >= l.Games {
		return true
	}
	if l.Millis > 0 && time.Since(start) >= l.budget() {
		return true
	}
	return false
}

// split divides the game count over n workers. The remainder goes to the
// first workers. Workers whose share is zero are left out, unless the batch
// is time-bound only, in which case every worker gets the full time budget.
func (l Limits) split(n int) []Limits {
	if n < 1 {
		n = 1
	}
	if l.Games <= 0 {
		shares := make([]Limits, n)
		for i := range shares {
			shares[i] = l
		}
		return shares
	}
	per, rem := l.Games/n, l.Games%n
	shares := make([]Limits, 0, n)
	for i := 0; i < n; i++ {
		games := per
		if i < rem {
			games++
		}
		if games == 0 {
			continue
		}
		share := l
		share.Games = games
		shares = append(shares, share)
	}
	return shares
}
