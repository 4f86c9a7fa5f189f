package montecarlo

import (
	"context"
	"errors"
	"math/rand"
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

const drawnGame = "547125662261271266215743771576315353334444"

func boardFrom(t *testing.T, moves string) board.Board {
	t.Helper()
	b, err := board.FromMoveString(moves)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestEvaluateCountsGames(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(7))
	res := Evaluate(board.NewBoard(), board.Red, Limits{Games: 200}, rng)
	is.Equal(res.Games, 200)
	is.Equal(res.Wins+res.Losses+res.Draws, 200)
	is.True(res.Plies >= 200*7)
	is.True(res.WinRate >= 0 && res.WinRate <= 1)
	is.Equal(res.GameLength.Iterations(), 200)
	is.Equal(len(res.Lengths), 0)
}

func TestEvaluateRecordsLengths(t *testing.T) {
	is := is.New(t)
	rng := rand.New(rand.NewSource(7))
	res := Evaluate(board.NewBoard(), board.Blue, Limits{Games: 50, RecordLengths: true}, rng)
	is.Equal(len(res.Lengths), 50)
	var sum float64
	for _, l := range res.Lengths {
		sum += l
	}
	is.Equal(uint64(sum), res.Plies)
}

func TestEvaluateImmediateWin(t *testing.T) {
	is := is.New(t)
	// red to move, red wins in column 5 (index 4)
	b := boardFrom(t, "545454")
	res := Evaluate(b, board.Red, Limits{Games: 30}, rand.New(rand.NewSource(1)))
	is.Equal(res.WinRate, 1.0)
	is.Equal(res.Plies, uint64(30))

	res = Evaluate(b, board.Blue, Limits{Games: 30}, rand.New(rand.NewSource(1)))
	is.Equal(res.WinRate, 0.0)
	is.Equal(res.Losses, 30)
}

func TestEvaluateDoubleThreat(t *testing.T) {
	is := is.New(t)
	// blue has columns 3-5 on the bottom row with both ends open; red can
	// only block one of them.
	b := boardFrom(t, "737415")
	is.Equal(b.ToMove(), board.Red)
	res := Evaluate(b, board.Blue, Limits{Games: 25}, rand.New(rand.NewSource(3)))
	is.Equal(res.WinRate, 1.0)
	is.Equal(res.Plies, uint64(50))
}

func TestEvaluateDrawsAreNotWins(t *testing.T) {
	is := is.New(t)
	b := boardFrom(t, drawnGame)
	res := Evaluate(b, board.Red, Limits{Games: 10}, rand.New(rand.NewSource(1)))
	is.Equal(res.Draws, 10)
	is.Equal(res.WinRate, 0.0)
	is.Equal(res.Plies, uint64(0))
}

func TestEvaluateNoGames(t *testing.T) {
	is := is.New(t)
	res := Evaluate(board.NewBoard(), board.Red, Limits{}, rand.New(rand.NewSource(1)))
	is.Equal(res.Games, 0)
	is.Equal(res.WinRate, 0.5)
	is.True(errors.Is(Limits{}.Validate(), ErrNoLimits))
}

func TestEvaluateTimeBudget(t *testing.T) {
	is := is.New(t)
	res := Evaluate(board.NewBoard(), board.Red, Limits{Millis: 20}, rand.New(rand.NewSource(1)))
	is.True(res.Games > 0)
}

func TestEvaluateLeavesBoardAlone(t *testing.T) {
	is := is.New(t)
	b := boardFrom(t, "4444")
	before := b
	Evaluate(b, board.Red, Limits{Games: 20}, rand.New(rand.NewSource(1)))
	is.Equal(b, before)
}

func TestSplit(t *testing.T) {
	is := is.New(t)
	shares := Limits{Games: 10}.split(4)
	is.Equal(len(shares), 4)
	is.Equal(shares[0].Games, 3)
	is.Equal(shares[1].Games, 3)
	is.Equal(shares[2].Games, 2)
	is.Equal(shares[3].Games, 2)

	shares = Limits{Games: 3, Millis: 50}.split(8)
	is.Equal(len(shares), 3)
	for _, s := range shares {
		is.Equal(s.Games, 1)
		is.Equal(s.Millis, 50)
	}

	shares = Limits{Millis: 30}.split(3)
	is.Equal(len(shares), 3)
	for _, s := range shares {
		is.Equal(s, Limits{Millis: 30})
	}
}

func TestEvaluateParallel(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	res, err := EvaluateParallel(ctx, board.NewBoard(), board.Red, Limits{Games: 103}, 4)
	is.NoErr(err)
	is.Equal(res.Games, 103)
	is.Equal(res.Wins+res.Losses+res.Draws, 103)
	is.Equal(res.GameLength.Iterations(), 103)

	res, err = EvaluateParallel(ctx, boardFrom(t, "545454"), board.Red, Limits{Games: 40}, 3)
	is.NoErr(err)
	is.Equal(res.WinRate, 1.0)
	is.Equal(res.Plies, uint64(40))
}

func TestEvaluateParallelMeanOfWorkers(t *testing.T) {
	is := is.New(t)
	orig := runWorker
	defer func() { runWorker = orig }()
	rates := make(chan float64, 2)
	rates <- 1.0
	rates <- 0.0
	runWorker = func(b board.Board, own board.Color, l Limits) Result {
		// one worker reports 3/3, the other 0/1
		r := <-rates
		if r == 1.0 {
			return Result{WinRate: 1.0, Games: 3, Wins: 3, Plies: 30}
		}
		return Result{WinRate: 0.0, Games: 1, Losses: 1, Plies: 10}
	}
	res, err := EvaluateParallel(context.Background(), board.NewBoard(), board.Red, Limits{Games: 4}, 2)
	is.NoErr(err)
	// arithmetic mean of the worker rates, not wins / games
	is.Equal(res.WinRate, 0.5)
	is.Equal(res.Games, 4)
	is.Equal(res.Plies, uint64(40))
}

func TestEvaluateParallelWorkerFailure(t *testing.T) {
	is := is.New(t)
	orig := runWorker
	defer func() { runWorker = orig }()
	runWorker = func(b board.Board, own board.Color, l Limits) Result {
		panic("boom")
	}
	_, err := EvaluateParallel(context.Background(), board.NewBoard(), board.Red, Limits{Games: 8}, 4)
	is.True(errors.Is(err, ErrWorkerFailed))
}

func TestEvaluateParallelCanceled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := EvaluateParallel(ctx, board.NewBoard(), board.Red, Limits{Games: 8}, 2)
	is.True(errors.Is(err, context.Canceled))
}

func TestInterval(t *testing.T) {
	is := is.New(t)
	res := Evaluate(board.NewBoard(), board.Red, Limits{Games: 100}, rand.New(rand.NewSource(5)))
	lo, hi := res.Interval(95)
	is.True(lo <= res.WinRate && res.WinRate <= hi)
}

func TestSimulator(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	b := boardFrom(t, "545454")
	for _, threads := range []int{1, 4} {
		s := NewSimulator(12, 0, threads)
		p, plies, err := s.Evaluate(ctx, &b, board.Red)
		is.NoErr(err)
		is.Equal(p, 1.0)
		is.Equal(plies, uint64(12))
	}
}

func TestChooseMoveTakesWin(t *testing.T) {
	is := is.New(t)
	b := boardFrom(t, "545454")
	col, rate, games, err := ChooseMove(context.Background(), &b, Limits{Games: 70}, 2)
	is.NoErr(err)
	is.Equal(col, board.Column(4))
	is.Equal(rate, 1.0)
	is.Equal(games, 70)
}

func TestChooseMoveOnFinishedGame(t *testing.T) {
	is := is.New(t)
	b := boardFrom(t, "5454545")
	_, _, _, err := ChooseMove(context.Background(), &b, Limits{Games: 70}, 2)
	is.True(errors.Is(err, board.ErrGameOver))
}
