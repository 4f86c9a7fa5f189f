// Package board implements the row4 position: two occupancy bitboards, the
// column heights, the cached list of legal moves and the cached winner.
package board

import (
	"errors"
	"math/bits"
)

// Column is a 0-based column index.
type Column uint8

const (
	NumColumns = 7
	NumRows    = 6
	NumCells   = NumColumns * NumRows

	// rowStride is the number of bits reserved per row. The eighth bit of
	// every row is always zero.
	rowStride = 8
)

// ColumnOrder is the order in which moves are generated: center first, then
// outward. Searching central columns first gives better cutoffs.
var ColumnOrder = [NumColumns]Column{3, 2, 4, 1, 5, 0, 6}

var (
	ErrInvalidColumn = errors.New("column is out of range")
	ErrColumnFull    = errors.New("column is full")
	ErrGameOver      = errors.New("the game is already over")
	ErrUnknownColor  = errors.New("unknown color")
)

// Board is a value type; assigning it copies the whole position. It is small
// enough that search code clones it freely instead of undoing moves.
type Board struct {
	red     uint64
	blue    uint64
	heights [NumColumns]uint8
	toMove  Color
	moves   MoveList
	winner  Color
}

// NewBoard returns an empty board with red to move.
func NewBoard() Board {
	return Board{
		toMove: Red,
		moves:  FullMoveList(),
	}
}

// PositionMask returns the bit for the given column and row (row 0 is the
// bottom of the board).
func PositionMask(col Column, row uint8) uint64 {
	return 1 << (uint(row)*rowStride + uint(col))
}

// PlayMove drops a stone of the color to move into col, recomputes the
// winner and passes the turn. If genMoves is false the cached move list is
// left stale; callers that only want to look at the winner of a hypothetical
// move can skip the work.
//
// PlayMove does not check that col is legal. Playing into a full column
// corrupts the board.
func (b *Board) PlayMove(col Column, genMoves bool) {
	height := b.heights[col]
	mask := PositionMask(col, height)
	b.heights[col] = height + 1

	switch b.toMove {
	case Red:
		b.red |= mask
	case Blue:
		b.blue |= mask
	}
	if genMoves {
		b.moves = b.ComputeMoves()
	}
	b.winner = b.computeWinner()
	b.toMove = b.toMove.Opponent()
}

// PlayMoves plays a sequence of columns, alternating colors, regenerating
// the move list after every move.
func (b *Board) PlayMoves(cols []Column) {
	for _, c := range cols {
		b.PlayMove(c, true)
	}
}

// ValidateMove reports whether col can be played right now. The search
// never calls this; it only plays moves from the move list.
func (b *Board) ValidateMove(col Column) error {
	if b.winner != NoColor {
		return ErrGameOver
	}
	if int(col) >= NumColumns {
		return ErrInvalidColumn
	}
	if b.heights[col] >= NumRows {
		return ErrColumnFull
	}
	return nil
}

// ComputeMoves returns all columns with room left, in ColumnOrder.
func (b *Board) ComputeMoves() MoveList {
	ml := MoveList{}
	for _, c := range ColumnOrder {
		if b.heights[c] < NumRows {
			ml.moves[ml.len] = c
			ml.len++
		}
	}
	return ml
}

// Moves returns the cached legal move list.
func (b *Board) Moves() MoveList {
	return b.moves
}

func (b *Board) Height(col Column) uint8 {
	return b.heights[col]
}

// Winner returns the color that completed a line, or NoColor.
func (b *Board) Winner() Color {
	return b.winner
}

// ToMove returns the color whose turn it is.
func (b *Board) ToMove() Color {
	return b.toMove
}

// Mask returns the occupancy bitboard of color c.
func (b *Board) Mask(c Color) uint64 {
	switch c {
	case Red:
		return b.red
	case Blue:
		return b.blue
	}
	return 0
}

func (b *Board) Red() uint64 {
	return b.red
}

func (b *Board) Blue() uint64 {
	return b.blue
}

// Occupied returns the union of both players' stones.
func (b *Board) Occupied() uint64 {
	return b.red | b.blue
}

// NumStones returns the number of stones on the board.
func (b *Board) NumStones() int {
	return bits.OnesCount64(b.red | b.blue)
}

// RemainingMoves is the number of empty cells, an upper bound on the
// remaining length of the game.
func (b *Board) RemainingMoves() int {
	return NumCells - b.NumStones()
}

// Full reports whether every column is filled.
func (b *Board) Full() bool {
	return b.RemainingMoves() == 0
}

// Terminal reports whether the game is over, by a win or a full board.
func (b *Board) Terminal() bool {
	return b.winner != NoColor || b.moves.Len() == 0
}

// At returns the color occupying the given cell, or NoColor.
func (b *Board) At(col Column, row uint8) Color {
	mask := PositionMask(col, row)
	if b.red&mask != 0 {
		return Red
	}
	if b.blue&mask != 0 {
		return Blue
	}
	return NoColor
}

// PassTurn returns a copy of the board with the other color to move. It is
// used to ask "what could the opponent do here".
func (b *Board) PassTurn() Board {
	c := *b
	c.toMove = c.toMove.Opponent()
	return c
}

// Reset empties the board.
func (b *Board) Reset() {
	*b = NewBoard()
}

func (b *Board) computeWinner() Color {
	for _, mask := range WinMasks() {
		if b.red&mask == mask {
			return Red
		}
		if b.blue&mask == mask {
			return Blue
		}
	}
	return NoColor
}
