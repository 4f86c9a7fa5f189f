package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/row4/automatic"
	"github.com/domino14/row4/config"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandNames = []string{
	"analyze", "autoplay", "exit", "go", "help", "load", "new", "play",
	"rollout", "set", "show", "undo",
}

var commandMetadata = map[string]CommandMetadata{
	"new":      {Args: []string{"red", "blue", "none"}},
	"play":     {Args: []string{"1", "2", "3", "4", "5", "6", "7"}},
	"rollout":  {Options: []string{"-games", "-millis", "-threads", "-bins"}},
	"autoplay": {Options: []string{"-games", "-threads", "-player1", "-player2", "-out"}},
	"help":     {Args: commandNames},
	"set": {Args: []string{
		config.ConfigMaxDepth, config.ConfigTimeBudgetMs, config.ConfigIterativeDeepening,
		config.ConfigLeafGames, config.ConfigLeafMillis, config.ConfigThreads,
		config.ConfigCacheMemoryFraction, config.ConfigAIColor, config.ConfigStrategy,
		config.ConfigFlatMillis, config.ConfigSearchLog, "colors",
	}},
}

var playerKinds = []string{automatic.MinimaxPlayer, automatic.FlatPlayer, automatic.RandomPlayer}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch strings.TrimPrefix(lastCompleteField, "-") {
		case "player1", "player2":
			completions = playerKinds
		case config.ConfigStrategy:
			completions = []string{config.StrategyMinimax, config.StrategyFlat}
		case config.ConfigAIColor:
			completions = []string{"red", "blue"}
		case config.ConfigIterativeDeepening, "colors":
			completions = []string{"true", "false"}
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
