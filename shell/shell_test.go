package shell

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/row4/board"
	"github.com/domino14/row4/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func testController(t *testing.T, args ...string) *ShellController {
	t.Helper()
	cfg := &config.Config{}
	base := []string{"--max-depth=2", "--leaf-games=4", "--threads=2",
		"--time-budget-ms=0", "--flat-millis=20", "--cache-memory-fraction=0.0001"}
	if err := cfg.Load(append(base, args...)); err != nil {
		t.Fatal(err)
	}
	sc := newController(cfg, "", "test")
	sc.colors = false
	return sc
}

func run(t *testing.T, sc *ShellController, line string) (string, error) {
	t.Helper()
	sig := make(chan os.Signal, 1)
	resp, err := sc.standardModeSwitch(context.Background(), line, sig)
	if resp == nil {
		return "", err
	}
	return resp.message, err
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	cmd, err := extractFields(`rollout -games 500 -threads 2 extra "two words"`)
	is.NoErr(err)
	is.Equal(cmd.cmd, "rollout")
	is.Equal(cmd.args, []string{"extra", "two words"})
	n, err := cmd.options.Int("games")
	is.NoErr(err)
	is.Equal(n, 500)
	is.Equal(cmd.options.String("threads"), "2")

	cmd, err = extractFields("autoplay -verbose")
	is.NoErr(err)
	is.True(cmd.options.Bool("verbose"))

	_, err = extractFields(`load "44`)
	is.True(err != nil)
}

func TestTwoHumans(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	out, err := run(t, sc, "new none")
	is.NoErr(err)
	is.True(strings.Contains(out, "turn 1, human to move"))

	_, err = run(t, sc, "play 4")
	is.NoErr(err)
	out, err = run(t, sc, "play 4")
	is.NoErr(err)
	is.True(strings.Contains(out, "moves: 44"))

	out, err = run(t, sc, "undo")
	is.NoErr(err)
	is.True(strings.Contains(out, "moves: 4\n"))

	_, err = run(t, sc, "play 8")
	is.True(errors.Is(err, board.ErrInvalidColumn))
	_, err = run(t, sc, "play x")
	is.True(errors.Is(err, board.ErrInvalidColumn))
}

func TestEngineAnswers(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	_, err := run(t, sc, "new blue")
	is.NoErr(err)
	out, err := run(t, sc, "play 4")
	is.NoErr(err)
	is.True(strings.Contains(out, "best:"))
	is.Equal(sc.game.Turn(), 2)
	is.True(sc.lastSolution != nil)

	// engine moves first as red
	_, err = run(t, sc, "new red")
	is.NoErr(err)
	is.Equal(sc.game.Turn(), 1)
}

func TestEngineTakesWin(t *testing.T) {
	is := is.New(t)
	for _, strategy := range []string{config.StrategyMinimax, config.StrategyFlat} {
		sc := testController(t, "--strategy="+strategy)
		_, err := run(t, sc, "load 545454")
		is.NoErr(err)
		_, err = run(t, sc, "go")
		is.NoErr(err)
		is.Equal(sc.game.Winner(), board.Red)

		_, err = run(t, sc, "go")
		is.True(errors.Is(err, errGameIsOver))
	}
}

func TestAnalyzeDoesNotPlay(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	_, err := run(t, sc, "load 4433")
	is.NoErr(err)
	out, err := run(t, sc, "analyze")
	is.NoErr(err)
	is.True(strings.Contains(out, "depth: 2"))
	is.Equal(sc.game.Turn(), 4)
}

func TestNoGame(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	for _, line := range []string{"show", "play 1", "go", "undo", "rollout"} {
		_, err := run(t, sc, line)
		is.True(errors.Is(err, errNoGame))
	}
}

func TestSet(t *testing.T) {
	sc := testController(t)
	out, err := run(t, sc, "set")
	assert.NoError(t, err)
	assert.Contains(t, out, "leaf-games")
	assert.Contains(t, out, "colors")

	out, err = run(t, sc, "set max-depth")
	assert.NoError(t, err)
	assert.Equal(t, "2", out)

	_, err = run(t, sc, "set max-depth 3")
	assert.NoError(t, err)
	assert.Equal(t, 3, sc.config.GetInt(config.ConfigMaxDepth))

	_, err = run(t, sc, "set strategy mcts")
	assert.ErrorIs(t, err, config.ErrBadStrategy)
	assert.Equal(t, config.StrategyMinimax, sc.config.GetString(config.ConfigStrategy))

	_, err = run(t, sc, "set nonsense 1")
	assert.ErrorIs(t, err, config.ErrBadSetting)

	_, err = run(t, sc, "set ai-color red")
	assert.NoError(t, err)
	assert.Equal(t, board.Red, sc.aiColor)
}

func TestSetKeepsChosenSides(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	_, err := run(t, sc, "new none")
	is.NoErr(err)
	_, err = run(t, sc, "set leaf-games 10")
	is.NoErr(err)
	is.Equal(sc.aiColor, board.NoColor)
	out, err := run(t, sc, "play 4")
	is.NoErr(err)
	is.Equal(sc.game.Turn(), 1)
	is.True(!strings.Contains(out, "best:"))

	// changing the engine color itself still applies
	_, err = run(t, sc, "set ai-color blue")
	is.NoErr(err)
	is.Equal(sc.aiColor, board.Blue)
}

func TestRolloutOnFinishedGame(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	_, err := run(t, sc, "load 5454545")
	is.NoErr(err)
	_, err = run(t, sc, "rollout -games 10")
	is.True(errors.Is(err, errGameIsOver))
}

func TestRollout(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	_, err := run(t, sc, "new none")
	is.NoErr(err)
	out, err := run(t, sc, "rollout -games 300 -threads 3 -bins 5")
	is.NoErr(err)
	is.True(strings.Contains(out, "red to move: 300 games"))
	is.True(strings.Contains(out, "95% interval"))
}

func TestAutoplay(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	out, err := run(t, sc, "autoplay -games 2 -player1 random -player2 random")
	is.NoErr(err)
	is.True(strings.Contains(out, "games: 2"))
}

func TestHelpAndExit(t *testing.T) {
	is := is.New(t)
	sc := testController(t)
	out, err := run(t, sc, "help")
	is.NoErr(err)
	is.True(strings.Contains(out, "rollout"))
	out, err = run(t, sc, "help rollout")
	is.NoErr(err)
	is.True(strings.Contains(out, "-games"))
	out, err = run(t, sc, "help frobnicate")
	is.NoErr(err)
	is.True(strings.Contains(out, "There is no help text"))

	sig := make(chan os.Signal, 1)
	_, err = sc.standardModeSwitch(context.Background(), "exit", sig)
	is.True(errors.Is(err, errQuit))
	is.Equal(len(sig), 1)

	_, err = run(t, sc, "dance")
	is.True(err != nil)
}

func TestColorize(t *testing.T) {
	is := is.New(t)
	b, err := board.FromMoveString("44")
	is.NoErr(err)
	txt := b.ToDisplayText()
	is.Equal(colorize(txt, os.Stdout, false), txt)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	c := NewShellCompleter(nil)
	matches, n := c.Do([]rune("rol"), 3)
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("lout")})

	matches, _ = c.Do([]rune("autoplay -player1 "), 18)
	is.Equal(len(matches), 3)

	matches, n = c.Do([]rune("set strat"), 9)
	is.Equal(n, 5)
	is.Equal(matches, [][]rune{[]rune("egy")})
}
