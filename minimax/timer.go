package minimax

import "time"

// Timer measures the wall-clock budget of one search. A zero or negative
// budget never expires.
type Timer struct {
	start  time.Time
	budget time.Duration
}

func NewTimer(budget time.Duration) *Timer {
	return &Timer{start: time.Now(), budget: budget}
}

// Reset restarts the clock.
func (t *Timer) Reset() {
	t.start = time.Now()
}

func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Expired reports whether the budget has been used up.
func (t *Timer) Expired() bool {
	return t.budget > 0 && t.Elapsed() >= t.budget
}

// Remaining is never negative. It is zero for an unlimited timer.
func (t *Timer) Remaining() time.Duration {
	if t.budget <= 0 {
		return 0
	}
	return max(t.budget-t.Elapsed(), 0)
}
