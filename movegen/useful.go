// Package movegen narrows the legal moves of a position down to the ones
// worth looking at.
package movegen

import "github.com/domino14/row4/board"

// UsefulMoves returns the moves the side to move should consider:
//
//   - a single winning column, if the mover can win right now;
//   - otherwise a single blocking column, if the opponent threatens to win
//     on their next move;
//   - otherwise every legal move.
//
// Candidates are tried in the board's column priority order, so when more
// than one column wins (or must be blocked) the most central one is chosen.
func UsefulMoves(b *board.Board) board.MoveList {
	moves := b.Moves()
	if c, ok := winningMove(b, moves); ok {
		return board.NewMoveList(c)
	}
	if c, ok := threat(b, moves); ok {
		return board.NewMoveList(c)
	}
	return moves
}

// WinningMoves returns every column that wins immediately for the mover.
func WinningMoves(b *board.Board) []board.Column {
	var wins []board.Column
	moves := b.Moves()
	for i := 0; i < moves.Len(); i++ {
		sim := *b
		sim.PlayMove(moves.At(i), false)
		if sim.Winner() != board.NoColor {
			wins = append(wins, moves.At(i))
		}
	}
	return wins
}

func winningMove(b *board.Board, moves board.MoveList) (board.Column, bool) {
	for i := 0; i < moves.Len(); i++ {
		sim := *b
		sim.PlayMove(moves.At(i), false)
		if sim.Winner() != board.NoColor {
			return moves.At(i), true
		}
	}
	return 0, false
}

// threat looks for a column the opponent would win with if it were their
// turn.
func threat(b *board.Board, moves board.MoveList) (board.Column, bool) {
	opp := b.PassTurn()
	for i := 0; i < moves.Len(); i++ {
		sim := opp
		sim.PlayMove(moves.At(i), false)
		if sim.Winner() != board.NoColor {
			return moves.At(i), true
		}
	}
	return 0, false
}
