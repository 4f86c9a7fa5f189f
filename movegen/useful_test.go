package movegen

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/row4/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestUsefulMovesWin(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	b.PlayMoves([]board.Column{4, 3, 4, 3, 4, 3})
	is.Equal(UsefulMoves(&b).Slice(), []board.Column{4})
}

func TestUsefulMovesAvoidLosing(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	b.PlayMoves([]board.Column{4, 3, 4, 3, 4})
	is.Equal(b.ToMove(), board.Blue)
	is.Equal(UsefulMoves(&b).Slice(), []board.Column{4})
}

func TestUsefulMovesNormal(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	b.PlayMoves([]board.Column{4, 3, 4, 3, 5, 2})
	is.Equal(UsefulMoves(&b).Slice(), board.ColumnOrder[:])
}

func TestUsefulMovesPrefersWinOverBlock(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	// red threatens column 4, blue threatens column 3, blue to move
	b.PlayMoves([]board.Column{4, 3, 4, 3, 4, 3, 0})
	is.Equal(b.ToMove(), board.Blue)
	is.Equal(UsefulMoves(&b).Slice(), []board.Column{3})
}

func TestUsefulMovesPriorityOrder(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	// red has an open three on the bottom row: both 1 and 5 win
	b.PlayMoves([]board.Column{2, 2, 3, 3, 4, 4})
	is.Equal(WinningMoves(&b), []board.Column{1, 5})
	// column 1 comes before column 5 in the priority order
	is.Equal(UsefulMoves(&b).Slice(), []board.Column{1})
}

func TestUsefulMovesDoesNotMutate(t *testing.T) {
	is := is.New(t)
	b := board.NewBoard()
	b.PlayMoves([]board.Column{4, 3, 4, 3, 4})
	before := b
	UsefulMoves(&b)
	is.Equal(b, before)
}
