// Package config holds the engine settings. Every setting has a default,
// can be overridden from the environment (ROW4_MAX_DEPTH etc.) and from
// --key=value arguments, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/row4/board"
)

const (
	ConfigMaxDepth            = "max-depth"
	ConfigTimeBudgetMs        = "time-budget-ms"
	ConfigIterativeDeepening  = "iterative-deepening"
	ConfigLeafGames           = "leaf-games"
	ConfigLeafMillis          = "leaf-millis"
	ConfigThreads             = "threads"
	ConfigCacheMemoryFraction = "cache-memory-fraction"
	ConfigAIColor             = "ai-color"
	ConfigStrategy            = "strategy"
	ConfigFlatMillis          = "flat-millis"
	ConfigDebug               = "debug"
	ConfigSearchLog           = "search-log"
	ConfigCPUProfile          = "cpu-profile"
)

const (
	StrategyMinimax = "minimax"
	StrategyFlat    = "flat"
)

var (
	ErrBadStrategy = errors.New("strategy must be minimax or flat")
	ErrBadSetting  = errors.New("bad setting")
)

type Config struct {
	*viper.Viper
	// Args holds the non-flag arguments left after Load.
	Args []string
}

// Load sets defaults, reads the environment and then parses args.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.SetEnvPrefix("ROW4")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetDefault(ConfigMaxDepth, board.NumCells)
	c.SetDefault(ConfigTimeBudgetMs, 1000)
	c.SetDefault(ConfigIterativeDeepening, true)
	c.SetDefault(ConfigLeafGames, 100)
	c.SetDefault(ConfigLeafMillis, 0)
	c.SetDefault(ConfigThreads, 4)
	c.SetDefault(ConfigCacheMemoryFraction, 0.05)
	c.SetDefault(ConfigAIColor, "blue")
	c.SetDefault(ConfigStrategy, StrategyMinimax)
	c.SetDefault(ConfigFlatMillis, 1000)
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigSearchLog, "")
	c.SetDefault(ConfigCPUProfile, "")

	fs := pflag.NewFlagSet("row4", pflag.ContinueOnError)
	fs.Int(ConfigMaxDepth, board.NumCells, "depth ceiling for the tree search")
	fs.Int(ConfigTimeBudgetMs, 1000, "time budget per move in milliseconds; 0 for none")
	fs.Bool(ConfigIterativeDeepening, true, "deepen one ply at a time until the budget runs out")
	fs.Int(ConfigLeafGames, 100, "rollouts per leaf")
	fs.Int(ConfigLeafMillis, 0, "rollout time per leaf in milliseconds; 0 for none")
	fs.Int(ConfigThreads, 4, "rollout workers per leaf")
	fs.Float64(ConfigCacheMemoryFraction, 0.05, "fraction of system memory to pre-size the position cache for")
	fs.String(ConfigAIColor, "blue", "the color the engine plays in the shell")
	fs.String(ConfigStrategy, StrategyMinimax, "minimax or flat")
	fs.Int(ConfigFlatMillis, 1000, "time budget of the flat Monte Carlo strategy in milliseconds")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.String(ConfigSearchLog, "", "file to write the per-depth search log to")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	// stop at the first non-flag so a command's own -options reach Args
	fs.SetInterspersed(false)
	if err := fs.Parse(args); err != nil {
		return err
	}
	// only flags that were actually given override the environment
	fs.Visit(func(f *pflag.Flag) {
		c.Set(f.Name, f.Value.String())
	})
	c.Args = fs.Args()
	return c.Validate()
}

// Validate checks the settings that have a restricted range.
func (c *Config) Validate() error {
	switch c.GetString(ConfigStrategy) {
	case StrategyMinimax, StrategyFlat:
	default:
		return fmt.Errorf("%w: %q", ErrBadStrategy, c.GetString(ConfigStrategy))
	}
	if _, err := board.ColorFromString(c.GetString(ConfigAIColor)); err != nil {
		return err
	}
	if c.GetInt(ConfigThreads) < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrBadSetting, ConfigThreads)
	}
	if c.GetInt(ConfigMaxDepth) < 1 {
		return fmt.Errorf("%w: %s must be at least 1", ErrBadSetting, ConfigMaxDepth)
	}
	if c.GetInt(ConfigLeafGames) <= 0 && c.GetInt(ConfigLeafMillis) <= 0 {
		return fmt.Errorf("%w: one of %s or %s must be positive", ErrBadSetting,
			ConfigLeafGames, ConfigLeafMillis)
	}
	f := c.GetFloat64(ConfigCacheMemoryFraction)
	if f < 0 || f > 1 {
		return fmt.Errorf("%w: %s must be between 0 and 1", ErrBadSetting, ConfigCacheMemoryFraction)
	}
	return nil
}

func (c *Config) TimeBudget() time.Duration {
	return time.Duration(c.GetInt(ConfigTimeBudgetMs)) * time.Millisecond
}

// AIColor is the engine's color; Validate has already checked it.
func (c *Config) AIColor() board.Color {
	col, _ := board.ColorFromString(c.GetString(ConfigAIColor))
	return col
}

// SanitizedSettings returns every setting, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
