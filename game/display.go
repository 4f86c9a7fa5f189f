package game

import (
	"fmt"
	"strings"

	"github.com/domino14/row4/board"
)

// ToDisplayText renders the board with the players and the game state
// underneath.
func (g *Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString(g.board.ToDisplayText())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%c %s\n", board.Red.Marker(), g.players[0])
	fmt.Fprintf(&sb, "%c %s\n", board.Blue.Marker(), g.players[1])
	switch {
	case g.board.Winner() != board.NoColor:
		fmt.Fprintf(&sb, "%s wins after %d moves\n", g.PlayerName(g.board.Winner()), g.Turn())
	case g.board.Full():
		fmt.Fprintf(&sb, "draw after %d moves\n", g.Turn())
	default:
		fmt.Fprintf(&sb, "turn %d, %s to move\n", g.Turn()+1, g.PlayerName(g.ToMove()))
	}
	if g.Turn() > 0 {
		fmt.Fprintf(&sb, "moves: %s\n", g.MoveString())
	}
	return sb.String()
}
