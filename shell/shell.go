// Package shell is the interactive front end: a readline loop that lets a
// human play against the engine and poke at its components.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/row4/board"
	"github.com/domino14/row4/cache"
	"github.com/domino14/row4/config"
	"github.com/domino14/row4/game"
	"github.com/domino14/row4/minimax"
	"github.com/domino14/row4/montecarlo"
)

var (
	errNoGame     = errors.New("no game in progress; use `new` first")
	errGameIsOver = errors.New("the game is over; use `new` or `undo`")
	errQuit       = errors.New("sending quit signal")
)

type ShellController struct {
	l *readline.Instance

	config     *config.Config
	execPath   string
	gitVersion string

	game    *game.Game
	aiColor board.Color

	solver       *minimax.Solver
	cache        *cache.Cache
	lastSolution *minimax.Solution
	searchLog    *os.File

	// colors toggles ANSI colors in board output.
	colors bool
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController sets up readline and the engine from cfg.
func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := newController(cfg, execPath, gitVersion)
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mrow4>\033[0m ",
		HistoryFile:     "/tmp/row4_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

// newController builds everything but the readline instance.
func newController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := &ShellController{
		config:     cfg,
		execPath:   execPath,
		gitVersion: gitVersion,
		colors:     true,
		aiColor:    cfg.AIColor(),
	}
	if err := sc.initEngine(); err != nil {
		log.Err(err).Msg("engine-init-failed")
	}
	return sc
}

// initEngine (re)builds the solver from the current configuration. The
// cache is rebuilt too, so a settings change never serves stale values.
// The engine's color is left alone; `new` and `set ai-color` own it.
func (sc *ShellController) initEngine() error {
	cfg := sc.config
	sc.cache = cache.New()
	sc.cache.Reset(cfg.GetFloat64(config.ConfigCacheMemoryFraction))
	sim := montecarlo.NewSimulator(cfg.GetInt(config.ConfigLeafGames),
		cfg.GetInt(config.ConfigLeafMillis), cfg.GetInt(config.ConfigThreads))
	sc.solver = &minimax.Solver{}
	if err := sc.solver.Init(sim, sc.cache); err != nil {
		return err
	}
	sc.solver.SetMaxDepth(cfg.GetInt(config.ConfigMaxDepth))
	sc.solver.SetTimeBudget(cfg.TimeBudget())
	sc.solver.SetIterativeDeepening(cfg.GetBool(config.ConfigIterativeDeepening))

	if sc.searchLog != nil {
		sc.searchLog.Close()
		sc.searchLog = nil
	}
	if path := cfg.GetString(config.ConfigSearchLog); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		sc.searchLog = f
		sc.solver.SetLogStream(f)
	}
	return nil
}

func (sc *ShellController) stdout() io.Writer {
	if sc.l == nil {
		return os.Stdout
	}
	return sc.l.Stdout()
}

func (sc *ShellController) stderr() io.Writer {
	if sc.l == nil {
		return os.Stderr
	}
	return sc.l.Stderr()
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.stdout())
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.stderr())
}

// extractFields splits a line into a command, its positional arguments and
// its -key value options. An option with nothing after it is "true".
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errors.New("no command")
	}
	cmd := &shellcmd{cmd: strings.ToLower(fields[0]), options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if strings.HasPrefix(f, "-") && len(f) > 1 && (f[1] < '0' || f[1] > '9') {
			key := strings.TrimLeft(f, "-")
			if i+1 < len(fields) && !strings.HasPrefix(fields[i+1], "-") {
				cmd.options[key] = append(cmd.options[key], fields[i+1])
				i++
			} else {
				cmd.options[key] = append(cmd.options[key], "true")
			}
			continue
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

func (sc *ShellController) standardModeSwitch(ctx context.Context, line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(ctx, cmd)
	case "show":
		return sc.show(cmd)
	case "load":
		return sc.load(cmd)
	case "play", "p":
		return sc.play(ctx, cmd)
	case "go", "ai":
		return sc.aiMove(ctx, cmd)
	case "analyze", "solve":
		return sc.analyze(ctx, cmd)
	case "undo":
		return sc.undo(cmd)
	case "set":
		return sc.set(cmd)
	case "rollout":
		return sc.rollout(ctx, cmd)
	case "autoplay":
		return sc.autoplay(ctx, cmd)
	default:
		log.Debug().Msgf("you said: %q", line)
		return nil, fmt.Errorf("unknown command %q; try `help`", cmd.cmd)
	}
}

// Execute runs a single command line, as given on the command line of the
// process.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(context.Background(), line, sig)
	if err != nil {
		if !errors.Is(err, errQuit) {
			sc.showError(err)
		}
		return
	}
	if resp != nil {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	ctx := context.Background()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		resp, err := sc.standardModeSwitch(ctx, line, sig)
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			sc.showError(err)
			continue
		}
		if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup closes whatever the session opened.
func (sc *ShellController) Cleanup() {
	if sc.searchLog != nil {
		sc.searchLog.Close()
	}
	log.Debug().Msg("shell-cleanup")
}
