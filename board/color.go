package board

// Color identifies one of the two players. The zero value is NoColor, which
// doubles as "no winner".
type Color uint8

const (
	NoColor Color = iota
	Red
	Blue
)

// Opponent returns the other player. NoColor has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	return NoColor
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return "none"
}

// Marker is the single character used for this color when rendering a board.
func (c Color) Marker() byte {
	switch c {
	case Red:
		return 'x'
	case Blue:
		return 'o'
	}
	return '.'
}

// ColorFromString parses "red"/"x" or "blue"/"o".
func ColorFromString(s string) (Color, error) {
	switch s {
	case "red", "Red", "RED", "x":
		return Red, nil
	case "blue", "Blue", "BLUE", "o":
		return Blue, nil
	}
	return NoColor, ErrUnknownColor
}
