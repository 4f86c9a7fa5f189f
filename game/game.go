// Package game wraps a board with the things the outer surfaces need and
// the engine does not: move validation, a move history, undo, and player
// names.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/row4/board"
)

var ErrNothingToUndo = errors.New("there is no move to undo")

// Game keeps the current position plus every position before it, so moves
// can be taken back.
type Game struct {
	board   board.Board
	history []board.Column
	// stateStack holds the board before each move in history.
	stateStack []board.Board

	players [2]string
}

// NewGame starts an empty game. Names default to the colors.
func NewGame(redName, blueName string) *Game {
	if redName == "" {
		redName = board.Red.String()
	}
	if blueName == "" {
		blueName = board.Blue.String()
	}
	return &Game{
		board:   board.NewBoard(),
		players: [2]string{redName, blueName},
	}
}

// FromMoveString replays a move string (see board.ParseMoveString) into a
// fresh game.
func FromMoveString(redName, blueName, moves string) (*Game, error) {
	cols, err := board.ParseMoveString(moves)
	if err != nil {
		return nil, err
	}
	g := NewGame(redName, blueName)
	for i, c := range cols {
		if err := g.PlayMove(c); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return g, nil
}

// PlayMove validates col and plays it for the side to move.
func (g *Game) PlayMove(col board.Column) error {
	if err := g.board.ValidateMove(col); err != nil {
		return err
	}
	g.stateStack = append(g.stateStack, g.board)
	mover := g.board.ToMove()
	g.board.PlayMove(col, true)
	g.history = append(g.history, col)
	log.Debug().Str("player", g.PlayerName(mover)).Int("column", int(col)+1).
		Int("turn", len(g.history)).Msg("played-move")
	if w := g.board.Winner(); w != board.NoColor {
		log.Debug().Str("winner", g.PlayerName(w)).Msg("game-over")
	}
	return nil
}

// Undo takes back the last move.
func (g *Game) Undo() error {
	n := len(g.stateStack)
	if n == 0 {
		return ErrNothingToUndo
	}
	g.board = g.stateStack[n-1]
	g.stateStack = g.stateStack[:n-1]
	g.history = g.history[:n-1]
	return nil
}

// Board returns a copy of the current position.
func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) ToMove() board.Color {
	return g.board.ToMove()
}

// Playing is false once someone has won or the board is full.
func (g *Game) Playing() bool {
	return !g.board.Terminal()
}

// Winner is NoColor while the game is on and after a draw.
func (g *Game) Winner() board.Color {
	return g.board.Winner()
}

// Turn is the number of moves played so far.
func (g *Game) Turn() int {
	return len(g.history)
}

// Moves returns a copy of the columns played so far.
func (g *Game) Moves() []board.Column {
	return append([]board.Column(nil), g.history...)
}

func (g *Game) MoveString() string {
	return board.MoveString(g.history)
}

func (g *Game) PlayerName(c board.Color) string {
	switch c {
	case board.Red:
		return g.players[0]
	case board.Blue:
		return g.players[1]
	}
	return ""
}

// Copy returns an independent game.
func (g *Game) Copy() *Game {
	return &Game{
		board:      g.board,
		history:    append([]board.Column(nil), g.history...),
		stateStack: append([]board.Board(nil), g.stateStack...),
		players:    g.players,
	}
}
