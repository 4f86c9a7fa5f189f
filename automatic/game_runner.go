// Package automatic plays engine-vs-engine games, one at a time or as a
// match spread over several goroutines.
package automatic

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/domino14/row4/board"
	"github.com/domino14/row4/game"
)

var (
	ErrUnknownPlayer  = errors.New("unknown player kind")
	ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")
)

// GameRunner plays one game between two players; players[0] is red.
type GameRunner struct {
	game    *game.Game
	players [2]Player
}

func NewGameRunner(red, blue Player) *GameRunner {
	return &GameRunner{players: [2]Player{red, blue}}
}

// StartGame sets up an empty board.
func (r *GameRunner) StartGame() {
	r.game = game.NewGame(r.players[0].Name(), r.players[1].Name())
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

// PlayBestTurn asks the player to move for a column and plays it.
func (r *GameRunner) PlayBestTurn(ctx context.Context) error {
	idx := 0
	if r.game.ToMove() == board.Blue {
		idx = 1
	}
	col, err := r.players[idx].ChooseMove(ctx, r.game.Board())
	if err != nil {
		return fmt.Errorf("%s: %w", r.players[idx].Name(), err)
	}
	return r.game.PlayMove(col)
}

// PlayFullGame plays a new game to the end and returns its record.
func (r *GameRunner) PlayFullGame(ctx context.Context) (game.History, error) {
	r.StartGame()
	for r.game.Playing() {
		if err := ctx.Err(); err != nil {
			return r.game.History(), err
		}
		if err := r.PlayBestTurn(ctx); err != nil {
			return r.game.History(), err
		}
	}
	h := r.game.History()
	log.Debug().Str("moves", h.Moves).Str("winner", h.Winner).Msg("game-over")
	return h, nil
}
