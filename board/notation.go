package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var ErrBadMoveString = errors.New("move string may only contain the digits 1-7")

// ParseMoveString turns a string of 1-based column digits such as "4453"
// into 0-based columns. Whitespace is ignored.
func ParseMoveString(s string) ([]Column, error) {
	s = strings.Join(strings.Fields(s), "")
	cols := make([]Column, 0, len(s))
	for _, r := range s {
		if r < '1' || r > '0'+NumColumns {
			return nil, fmt.Errorf("%w: %q", ErrBadMoveString, r)
		}
		cols = append(cols, Column(r-'1'))
	}
	return cols, nil
}

// MoveString is the inverse of ParseMoveString.
func MoveString(cols []Column) string {
	return strings.Join(lo.Map(cols, func(c Column, _ int) string {
		return string(rune('1' + c))
	}), "")
}

// FromMoveString plays the moves in s from the empty board, red first. Unlike
// PlayMoves, every move is validated.
func FromMoveString(s string) (Board, error) {
	b := NewBoard()
	cols, err := ParseMoveString(s)
	if err != nil {
		return b, err
	}
	for i, c := range cols {
		if err := b.ValidateMove(c); err != nil {
			return b, fmt.Errorf("move %d (column %d): %w", i+1, c+1, err)
		}
		b.PlayMove(c, true)
	}
	return b, nil
}
