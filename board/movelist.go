package board

import "strconv"

// A MoveList is a fixed-capacity list of columns. It never allocates, so it
// can be copied along with the Board that owns it.
type MoveList struct {
	moves [NumColumns]Column
	len   uint8
}

// FullMoveList returns every column in priority order.
func FullMoveList() MoveList {
	return MoveList{moves: ColumnOrder, len: NumColumns}
}

// NewMoveList builds a list from the given columns, keeping their order.
// Anything past NumColumns is dropped.
func NewMoveList(cols ...Column) MoveList {
	ml := MoveList{}
	for _, c := range cols {
		if ml.len == NumColumns {
			break
		}
		ml.moves[ml.len] = c
		ml.len++
	}
	return ml
}

func (ml MoveList) Len() int {
	return int(ml.len)
}

// At returns the column at index i. i must be less than Len().
func (ml MoveList) At(i int) Column {
	return ml.moves[i]
}

// Slice returns the moves as a freshly allocated slice.
func (ml MoveList) Slice() []Column {
	s := make([]Column, ml.len)
	copy(s, ml.moves[:ml.len])
	return s
}

func (ml MoveList) Contains(c Column) bool {
	for i := uint8(0); i < ml.len; i++ {
		if ml.moves[i] == c {
			return true
		}
	}
	return false
}

// MoveToFront returns a copy of the list with c moved to index 0 and the
// other moves shifted back, keeping their relative order. If c is not in the
// list the copy is unchanged.
func (ml MoveList) MoveToFront(c Column) MoveList {
	idx := -1
	for i := 0; i < int(ml.len); i++ {
		if ml.moves[i] == c {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return ml
	}
	copy(ml.moves[1:idx+1], ml.moves[:idx])
	ml.moves[0] = c
	return ml
}

func (ml MoveList) String() string {
	s := "["
	for i := 0; i < int(ml.len); i++ {
		if i > 0 {
			s += " "
		}
		s += strconv.Itoa(int(ml.moves[i]))
	}
	return s + "]"
}
