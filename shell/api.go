package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/domino14/row4/automatic"
	"github.com/domino14/row4/board"
	"github.com/domino14/row4/config"
	"github.com/domino14/row4/game"
	"github.com/domino14/row4/montecarlo"
)

const (
	humanName  = "human"
	engineName = "row4"

	defaultRolloutGames = 10000
	defaultAutoplay     = 10
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) StringDefault(key, defaultS string) string {
	if s := c.String(key); s != "" {
		return s
	}
	return defaultS
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

// parseColumn reads a 1-based column number.
func parseColumn(s string) (board.Column, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", board.ErrInvalidColumn, s)
	}
	if n < 1 || n > board.NumColumns {
		return 0, fmt.Errorf("%w: %d", board.ErrInvalidColumn, n)
	}
	return board.Column(n - 1), nil
}

func (sc *ShellController) names() (string, string) {
	switch sc.aiColor {
	case board.Red:
		return engineName, humanName
	case board.Blue:
		return humanName, engineName
	}
	return humanName, humanName
}

// newGame starts a game. An optional argument picks the engine's color,
// or "none" for two humans.
func (sc *ShellController) newGame(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		if cmd.args[0] == "none" {
			sc.aiColor = board.NoColor
		} else {
			c, err := board.ColorFromString(cmd.args[0])
			if err != nil {
				return nil, err
			}
			sc.aiColor = c
		}
	}
	sc.game = game.NewGame(sc.names())
	sc.lastSolution = nil
	if sc.aiColor == board.Red {
		return sc.aiMove(ctx, cmd)
	}
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.gameDisplay()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load <moves>, e.g. load 4453")
	}
	red, blue := sc.names()
	g, err := game.FromMoveString(red, blue, strings.Join(cmd.args, ""))
	if err != nil {
		return nil, err
	}
	sc.game = g
	sc.lastSolution = nil
	return msg(sc.gameDisplay()), nil
}

// play makes a human move and lets the engine answer if it is its turn.
func (sc *ShellController) play(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <column 1-7>")
	}
	col, err := parseColumn(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(col); err != nil {
		return nil, err
	}
	if sc.game.Playing() && sc.game.ToMove() == sc.aiColor {
		return sc.aiMove(ctx, cmd)
	}
	return msg(sc.gameDisplay()), nil
}

// chooseMove asks the configured strategy for a move and describes it.
func (sc *ShellController) chooseMove(ctx context.Context, b board.Board) (board.Column, string, error) {
	switch sc.config.GetString(config.ConfigStrategy) {
	case config.StrategyFlat:
		limits := montecarlo.Limits{Millis: sc.config.GetInt(config.ConfigFlatMillis)}
		col, rate, games, err := montecarlo.ChooseMove(ctx, &b, limits,
			sc.config.GetInt(config.ConfigThreads))
		if err != nil {
			return 0, "", err
		}
		return col, fmt.Sprintf("flat: column %d, win rate %.3f over %d games", col+1, rate, games), nil
	default:
		sol, err := sc.solver.Solve(ctx, b)
		if err != nil {
			return 0, "", err
		}
		sc.lastSolution = &sol
		return sol.Move, describeSolution(sol), nil
	}
}

func (sc *ShellController) aiMove(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Playing() {
		return nil, errGameIsOver
	}
	col, summary, err := sc.chooseMove(ctx, sc.game.Board())
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(col); err != nil {
		return nil, err
	}
	return msg(summary + "\n\n" + sc.gameDisplay()), nil
}

func (sc *ShellController) analyze(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Playing() {
		return nil, errGameIsOver
	}
	_, summary, err := sc.chooseMove(ctx, sc.game.Board())
	if err != nil {
		return nil, err
	}
	return msg(summary), nil
}

// undo takes back n moves, one by default.
func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	n := 1
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	for i := 0; i < n; i++ {
		if err := sc.game.Undo(); err != nil {
			return nil, err
		}
	}
	return msg(sc.gameDisplay()), nil
}

// set shows or changes a setting. Changing one rebuilds the engine.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		settings := sc.config.AllSettings()
		keys := lo.Keys(settings)
		sort.Strings(keys)
		lines := lo.Map(keys, func(k string, _ int) string {
			return fmt.Sprintf("%-24s %v", k, settings[k])
		})
		lines = append(lines, fmt.Sprintf("%-24s %v", "colors", sc.colors))
		return msg(strings.Join(lines, "\n")), nil
	}
	key := cmd.args[0]
	if len(cmd.args) == 1 {
		if key == "colors" {
			return msg(strconv.FormatBool(sc.colors)), nil
		}
		if !sc.config.IsSet(key) {
			return nil, fmt.Errorf("%w: %q", config.ErrBadSetting, key)
		}
		return msg(fmt.Sprint(sc.config.Get(key))), nil
	}
	value := cmd.args[1]
	if key == "colors" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		sc.colors = b
		return msg("set colors to " + value), nil
	}
	if !sc.config.IsSet(key) {
		return nil, fmt.Errorf("%w: %q", config.ErrBadSetting, key)
	}
	old := sc.config.Get(key)
	sc.config.Set(key, value)
	if err := sc.config.Validate(); err != nil {
		sc.config.Set(key, old)
		return nil, err
	}
	if key == config.ConfigAIColor {
		sc.aiColor = sc.config.AIColor()
	}
	if err := sc.initEngine(); err != nil {
		return nil, err
	}
	return msg("set " + key + " to " + value), nil
}

// rollout plays random games from the current position and reports how
// they went for the side to move.
func (sc *ShellController) rollout(ctx context.Context, cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if !sc.game.Playing() {
		return nil, errGameIsOver
	}
	games, err := cmd.options.IntDefault("games", defaultRolloutGames)
	if err != nil {
		return nil, err
	}
	millis, err := cmd.options.IntDefault("millis", 0)
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	bins, err := cmd.options.IntDefault("bins", 12)
	if err != nil {
		return nil, err
	}
	limits := montecarlo.Limits{Games: games, Millis: millis, RecordLengths: true}
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	b := sc.game.Board()
	own := b.ToMove()
	res, err := montecarlo.EvaluateParallel(ctx, b, own, limits, threads)
	if err != nil {
		return nil, err
	}
	return msg(rolloutReport(own, res, bins)), nil
}

// autoplay plays engine-vs-engine games with the current settings.
func (sc *ShellController) autoplay(ctx context.Context, cmd *shellcmd) (*Response, error) {
	games, err := cmd.options.IntDefault("games", defaultAutoplay)
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", 1)
	if err != nil {
		return nil, err
	}
	kinds := [2]string{
		cmd.options.StringDefault("player1", automatic.MinimaxPlayer),
		cmd.options.StringDefault("player2", automatic.FlatPlayer),
	}
	factory := func(side int) (automatic.Player, error) {
		return automatic.NewPlayer(sc.config, kinds[side], "-"+strconv.Itoa(side+1))
	}
	var out io.Writer
	if path := cmd.options.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		out = f
	}
	summary, err := automatic.PlayMatch(ctx, factory, games, threads, out)
	if err != nil {
		return nil, err
	}
	return msg(summary.String()), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	if len(cmd.args) == 0 {
		usage(&sb, "standard")
	} else {
		usageTopic(&sb, cmd.args[0])
	}
	return msg(sb.String()), nil
}
