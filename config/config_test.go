package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/row4/board"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Load(nil))
	assert.Equal(t, 42, cfg.GetInt(ConfigMaxDepth))
	assert.Equal(t, time.Second, cfg.TimeBudget())
	assert.True(t, cfg.GetBool(ConfigIterativeDeepening))
	assert.Equal(t, 100, cfg.GetInt(ConfigLeafGames))
	assert.Equal(t, 4, cfg.GetInt(ConfigThreads))
	assert.Equal(t, board.Blue, cfg.AIColor())
	assert.Equal(t, StrategyMinimax, cfg.GetString(ConfigStrategy))
	assert.Empty(t, cfg.Args)
}

func TestFlagsOverride(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Load([]string{"--max-depth=6", "--ai-color=red", "--strategy=flat", "--iterative-deepening=false", "new"}))
	assert.Equal(t, 6, cfg.GetInt(ConfigMaxDepth))
	assert.Equal(t, board.Red, cfg.AIColor())
	assert.Equal(t, StrategyFlat, cfg.GetString(ConfigStrategy))
	assert.False(t, cfg.GetBool(ConfigIterativeDeepening))
	assert.Equal(t, []string{"new"}, cfg.Args)
}

func TestCommandOptionsAreLeftAlone(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Load([]string{"--threads=2", "rollout", "-games", "100"}))
	assert.Equal(t, 2, cfg.GetInt(ConfigThreads))
	assert.Equal(t, []string{"rollout", "-games", "100"}, cfg.Args)

	require.NoError(t, cfg.Load([]string{"rollout", "-games", "100", "--threads=3"}))
	assert.Equal(t, 4, cfg.GetInt(ConfigThreads))
	assert.Equal(t, []string{"rollout", "-games", "100", "--threads=3"}, cfg.Args)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("ROW4_LEAF_GAMES", "250")
	t.Setenv("ROW4_TIME_BUDGET_MS", "50")
	cfg := &Config{}
	require.NoError(t, cfg.Load(nil))
	assert.Equal(t, 250, cfg.GetInt(ConfigLeafGames))
	assert.Equal(t, 50*time.Millisecond, cfg.TimeBudget())

	// flags win over the environment
	require.NoError(t, cfg.Load([]string{"--leaf-games=7"}))
	assert.Equal(t, 7, cfg.GetInt(ConfigLeafGames))
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Load([]string{"--strategy=mcts"})
	assert.True(t, errors.Is(err, ErrBadStrategy))

	err = cfg.Load([]string{"--ai-color=green"})
	assert.True(t, errors.Is(err, board.ErrUnknownColor))

	err = cfg.Load([]string{"--threads=0"})
	assert.True(t, errors.Is(err, ErrBadSetting))

	err = cfg.Load([]string{"--leaf-games=0"})
	assert.True(t, errors.Is(err, ErrBadSetting))

	require.NoError(t, cfg.Load([]string{"--leaf-games=0", "--leaf-millis=5"}))
}

func TestSanitizedSettings(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Load(nil))
	s := cfg.SanitizedSettings()
	assert.Contains(t, s, ConfigMaxDepth)
	assert.Contains(t, s, ConfigCacheMemoryFraction)
}
