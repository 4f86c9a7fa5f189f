// Package cache remembers leaf evaluations across searches. A position is
// stored together with its colour-swapped and left-right mirrored forms, so
// one evaluation answers up to four lookups.
package cache

import (
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/row4/board"
)

// Approximate cost of one map entry (two uint64 key halves, a float64 and
// bucket overhead).
const entrySize = 48

// Never pre-size for more than this many entries; the map grows on its own
// past it.
const maxPresize = 1 << 22

// Key identifies a position from one player's point of view: their stones
// and their opponent's stones.
type Key struct {
	Own uint64
	Opp uint64
}

// Cache maps a position to the probability that the "own" player wins it.
// It is not safe for concurrent use; only the search goroutine touches it.
type Cache struct {
	entries map[Key]float64

	lookups uint64
	hits    uint64
	stores  uint64
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[Key]float64)}
}

// Reset empties the cache and pre-sizes it for a fraction of total system
// memory.
func (c *Cache) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	n := int(fractionOfMemory * float64(totalMem) / entrySize)
	if n < 0 {
		n = 0
	}
	if n > maxPresize {
		n = maxPresize
	}
	c.entries = make(map[Key]float64, n)
	c.lookups, c.hits, c.stores = 0, 0, 0
	log.Debug().Uint64("total-mem", totalMem).Int("presize", n).Msg("cache-reset")
}

// Mirror reflects a bitboard left to right: column c becomes column 6-c in
// every row. Mirror(Mirror(m)) == m.
func Mirror(mask uint64) uint64 {
	var out uint64
	for col := board.Column(0); col < board.NumColumns; col++ {
		// move each column into its own slot across all rows at once
		colMask := columnMask(col)
		target := board.NumColumns - 1 - col
		bits := mask & colMask
		if target > col {
			bits <<= uint(target - col)
		} else {
			bits >>= uint(col - target)
		}
		out |= bits
	}
	return out
}

func columnMask(col board.Column) uint64 {
	var m uint64
	for row := uint8(0); row < board.NumRows; row++ {
		m |= board.PositionMask(col, row)
	}
	return m
}

// KeyFor returns the key of b seen from c's side.
func KeyFor(b *board.Board, c board.Color) Key {
	return Key{Own: b.Mask(c), Opp: b.Mask(c.Opponent())}
}

// Get returns the stored probability that c wins b. Only exact keys match.
func (c *Cache) Get(b *board.Board, col board.Color) (float64, bool) {
	return c.GetKey(KeyFor(b, col))
}

// GetKey looks a raw key up.
func (c *Cache) GetKey(k Key) (float64, bool) {
	c.lookups++
	p, ok := c.entries[k]
	if ok {
		c.hits++
	}
	return p, ok
}

// Store records that col wins b with probability p. The swapped and
// mirrored positions are stored as well; the swapped ones get 1-p, which
// treats a draw as half a win for either side.
func (c *Cache) Store(b *board.Board, col board.Color, p float64) {
	c.StoreKey(KeyFor(b, col), p)
}

// StoreKey writes k and its three symmetric keys.
func (c *Cache) StoreKey(k Key, p float64) {
	if c.entries == nil {
		c.entries = make(map[Key]float64)
	}
	mOwn, mOpp := Mirror(k.Own), Mirror(k.Opp)
	c.entries[k] = p
	c.entries[Key{Own: k.Opp, Opp: k.Own}] = 1 - p
	c.entries[Key{Own: mOwn, Opp: mOpp}] = p
	c.entries[Key{Own: mOpp, Opp: mOwn}] = 1 - p
	c.stores++
}

// Len is the number of distinct keys held.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Lookups, Hits and Stores are counters since the last Reset.
func (c *Cache) Lookups() uint64 { return c.lookups }
func (c *Cache) Hits() uint64    { return c.hits }
func (c *Cache) Stores() uint64  { return c.stores }
