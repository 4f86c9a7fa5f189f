package board

import "sync"

// winMasks is built on first use and never written again.
var winMasks = sync.OnceValue(computeWinMasks)

// WinMasks returns the bitmask of every possible line of four. The slice is
// shared; callers must not modify it.
func WinMasks() []uint64 {
	return winMasks()
}

func computeWinMasks() []uint64 {
	masks := make([]uint64, 0, 69)
	// vertical
	for col := Column(0); col < NumColumns; col++ {
		for row := uint8(0); row <= NumRows-4; row++ {
			var mask uint64
			for i := uint8(0); i < 4; i++ {
				mask |= PositionMask(col, row+i)
			}
			masks = append(masks, mask)
		}
	}
	// horizontal
	for row := uint8(0); row < NumRows; row++ {
		for col := Column(0); col <= NumColumns-4; col++ {
			var mask uint64
			for i := Column(0); i < 4; i++ {
				mask |= PositionMask(col+i, row)
			}
			masks = append(masks, mask)
		}
	}
	// both diagonals
	for row := uint8(0); row <= NumRows-4; row++ {
		for col := Column(0); col <= NumColumns-4; col++ {
			var rising, falling uint64
			for i := uint8(0); i < 4; i++ {
				rising |= PositionMask(col+Column(i), row+i)
				falling |= PositionMask(col+3-Column(i), row+i)
			}
			masks = append(masks, rising, falling)
		}
	}
	return masks
}
