package automatic

// Computer vs computer matches, for comparing strategies and settings.

import (
	"context"
	"expvar"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/domino14/row4/game"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// PlayerFactory returns a fresh player for one side. Players are not shared
// between concurrent games, so the factory is called once per game and side.
type PlayerFactory func(side int) (Player, error)

// MatchSummary counts the results of a match by player name.
type MatchSummary struct {
	Games  int            `yaml:"games"`
	Wins   map[string]int `yaml:"wins"`
	Draws  int            `yaml:"draws"`
	Errors int            `yaml:"errors"`
}

func (s MatchSummary) String() string {
	return fmt.Sprintf("games: %d, wins: %v, draws: %d, errors: %d",
		s.Games, s.Wins, s.Draws, s.Errors)
}

// Summarize counts wins per player name in a set of finished records.
func Summarize(records []game.History) MatchSummary {
	s := MatchSummary{Games: len(records), Wins: map[string]int{}}
	for _, name := range lo.Uniq(lo.FlatMap(records, func(h game.History, _ int) []string {
		return []string{h.Red, h.Blue}
	})) {
		s.Wins[name] = lo.CountBy(records, func(h game.History) bool {
			return h.Winner == name
		})
	}
	s.Draws = lo.CountBy(records, func(h game.History) bool {
		return h.Winner == "draw"
	})
	return s
}

// PlayMatch plays numGames games on up to threads goroutines. The sides
// swap colors every game. Every finished game is written to out as a YAML
// document (out may be nil). A game that fails is counted as an error and
// left out of the records.
func PlayMatch(ctx context.Context, factory PlayerFactory, numGames, threads int, out io.Writer) (MatchSummary, error) {
	if IsPlaying.Value() > 0 {
		return MatchSummary{}, ErrAlreadyPlaying
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)
	CVCCounter.Set(0)
	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-match")

	jobs := make(chan int, threads)
	results := make(chan result, threads)
	var failures int

	g, gctx := errgroup.WithContext(ctx)
	workers := &errgroup.Group{}
	for t := 0; t < max(threads, 1); t++ {
		workers.Go(func() error {
			for i := range jobs {
				rec, err := playOne(gctx, factory, i)
				if err != nil {
					log.Err(err).Int("game", i).Msg("game-failed")
				}
				results <- result{rec: rec, err: err}
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("got stop signal, exiting soon...")
				return nil
			}
		}
		return nil
	})

	g.Go(func() error {
		err := workers.Wait()
		close(results)
		return err
	})

	var finished []game.History
	var enc *yaml.Encoder
	if out != nil {
		enc = yaml.NewEncoder(out)
	}
	var encErr error
	for res := range results {
		if res.err != nil {
			failures++
			continue
		}
		finished = append(finished, res.rec)
		if enc != nil && encErr == nil {
			encErr = enc.Encode(res.rec)
		}
	}
	if enc != nil && encErr == nil {
		encErr = enc.Close()
	}
	if err := g.Wait(); err != nil {
		return MatchSummary{}, err
	}
	summary := Summarize(finished)
	summary.Errors = failures
	log.Info().Int("games", summary.Games).Int("draws", summary.Draws).
		Int("errors", failures).Msg("match-finished")
	if encErr != nil {
		return summary, encErr
	}
	return summary, ctx.Err()
}

type result struct {
	rec game.History
	err error
}

func playOne(ctx context.Context, factory PlayerFactory, i int) (game.History, error) {
	a, err := factory(0)
	if err != nil {
		return game.History{}, err
	}
	b, err := factory(1)
	if err != nil {
		return game.History{}, err
	}
	red, blue := a, b
	if i%2 == 1 {
		red, blue = b, a
	}
	r := NewGameRunner(red, blue)
	rec, err := r.PlayFullGame(ctx)
	if err != nil {
		return game.History{}, err
	}
	rec.ID = fmt.Sprintf("g%04d", i+1)
	return rec, nil
}
