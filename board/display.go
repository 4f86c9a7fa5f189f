package board

import (
	"strconv"
	"strings"
)

// ToDisplayText renders the board one line per row, top row first, followed
// by a line of 1-based column numbers.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for row := int(NumRows) - 1; row >= 0; row-- {
		for col := Column(0); col < NumColumns; col++ {
			sb.WriteByte(b.At(col, uint8(row)).Marker())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	for col := 1; col <= NumColumns; col++ {
		sb.WriteString(strconv.Itoa(col))
		sb.WriteByte(' ')
	}
	return sb.String()
}

func (b Board) String() string {
	return b.ToDisplayText()
}
