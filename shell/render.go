package shell

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/muesli/termenv"
	"github.com/samber/lo"

	"github.com/domino14/row4/board"
	"github.com/domino14/row4/minimax"
	"github.com/domino14/row4/montecarlo"
)

// colorize paints the stones in the board rows of a display text. Only the
// first NumRows lines are touched; they hold nothing but markers.
func colorize(text string, w io.Writer, enabled bool) string {
	var out *termenv.Output
	if enabled {
		out = termenv.NewOutput(w)
	} else {
		out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	red := out.String(string(board.Red.Marker())).Foreground(out.Color("1")).Bold().String()
	blue := out.String(string(board.Blue.Marker())).Foreground(out.Color("3")).Bold().String()

	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines) && i < board.NumRows; i++ {
		lines[i] = strings.NewReplacer(
			string(board.Red.Marker()), red,
			string(board.Blue.Marker()), blue,
		).Replace(lines[i])
	}
	return strings.Join(lines, "\n")
}

func (sc *ShellController) gameDisplay() string {
	return colorize(sc.game.ToDisplayText(), os.Stdout, sc.colors)
}

func describeSolution(sol minimax.Solution) string {
	line := strings.Join(lo.Map(sol.Variation, func(c board.Column, _ int) string {
		return fmt.Sprint(c + 1)
	}), " ")
	return fmt.Sprintf("best: %d  win: %.1f%%  depth: %d  line: %s\npositions: %d  simulated moves: %d  time: %s",
		sol.Move+1, 100*sol.WinProb, sol.Depth, line, sol.Positions, sol.SimulatedMoves,
		sol.Elapsed.Round(time.Millisecond))
}

// rolloutReport summarizes a rollout and draws a histogram of the game
// lengths.
func rolloutReport(own board.Color, res montecarlo.Result, bins int) string {
	var sb strings.Builder
	lo95, hi95 := res.Interval(95)
	fmt.Fprintf(&sb, "%s to move: %d games, %d wins, %d losses, %d draws\n",
		own, res.Games, res.Wins, res.Losses, res.Draws)
	fmt.Fprintf(&sb, "win rate %.4f (95%% interval %.4f - %.4f)\n", res.WinRate, lo95, hi95)
	fmt.Fprintf(&sb, "game length: mean %.2f, stdev %.2f, min %.0f, max %.0f\n",
		res.GameLength.Mean(), res.GameLength.Stdev(), res.GameLength.Min(), res.GameLength.Max())
	if len(res.Lengths) > 0 && bins > 0 {
		var buf bytes.Buffer
		h := histogram.Hist(bins, res.Lengths)
		if err := histogram.Fprint(&buf, h, histogram.Linear(40)); err == nil {
			sb.WriteString("\n")
			sb.WriteString(buf.String())
		}
	}
	return sb.String()
}
