package game

import (
	"github.com/domino14/row4/board"
)

// History is the record of a finished or unfinished game, in a form that
// serializes to YAML.
type History struct {
	ID     string `yaml:"id,omitempty"`
	Red    string `yaml:"red"`
	Blue   string `yaml:"blue"`
	Moves  string `yaml:"moves"`
	Plies  int    `yaml:"plies"`
	Winner string `yaml:"winner"`
}

// History returns the game record. Winner is "draw" for a full board and
// empty while the game is still going.
func (g *Game) History() History {
	h := History{
		Red:   g.players[0],
		Blue:  g.players[1],
		Moves: g.MoveString(),
		Plies: g.Turn(),
	}
	switch {
	case g.board.Winner() != board.NoColor:
		h.Winner = g.PlayerName(g.board.Winner())
	case g.board.Full():
		h.Winner = "draw"
	}
	return h
}

// FromHistory replays a record.
func FromHistory(h History) (*Game, error) {
	return FromMoveString(h.Red, h.Blue, h.Moves)
}
