package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate/internal/analysis"
	"github.com/SeamusWaldron/cubestate/internal/notation"
)

var (
	analyzeTopK      int
	analyzePauseMs   int64
	analyzeMaxNGrams int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <log-file>",
	Short: "Analyze the moves of a recorded play session",
	Long: `Analyze the moves entered during a session recorded with 'cubestate play --log':
face and turn usage, repeated sequences, pauses and turns per second.

Scrambles and solutions played back by the engine are not counted.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&analyzeTopK, "top", 3, "Repeated sequences to show per length")
	analyzeCmd.Flags().IntVar(&analyzeMaxNGrams, "max-len", 8, "Longest repeated sequence to look for")
	analyzeCmd.Flags().Int64Var(&analyzePauseMs, "pause-ms", 1500, "Gap that counts as a pause")
}

// playerTokens flattens the enqueue events of a session into tokens with
// the time each was entered.
func playerTokens(log *SessionLog) ([]string, []int64) {
	var tokens []string
	var times []int64
	for _, ev := range log.Events {
		if ev.EventType != LogEventEnqueue {
			continue
		}
		for _, t := range notation.Tokens(ev.Notation) {
			tokens = append(tokens, t)
			times = append(times, ev.ElapsedMs)
		}
	}
	return tokens, times
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			dir, derr := defaultLogDir()
			if derr != nil {
				return derr
			}
			path = filepath.Join(dir, path)
		}
	}

	log, err := LoadSessionLog(path)
	if err != nil {
		return err
	}

	tokens, times := playerTokens(log)
	if len(tokens) == 0 {
		fmt.Println("No player moves in this session.")
		return nil
	}

	profile := analysis.AnalyzeMovementProfile(tokens)

	fmt.Println(titleStyle.Render("Session Analysis"))
	fmt.Println()
	fmt.Printf("Tokens: %d  Quarter turns: %d\n", profile.Tokens, profile.QuarterTurns)

	duration := times[len(times)-1] - times[0]
	if tps := analysis.CalculateTPS(profile.Tokens, duration); tps > 0 {
		fmt.Printf("TPS: %.2f over %s\n", tps, formatElapsed(msDuration(duration)))
	}
	fmt.Println()

	fmt.Println(phaseStyle.Render("Faces"))
	for _, f := range notation.Faces {
		if n := profile.FaceCounts[string(f)]; n > 0 {
			fmt.Printf("  %c %3d  %s\n", f, n, strings.Repeat("#", n))
		}
	}
	fmt.Printf("  base=%d prime=%d double=%d\n",
		profile.TurnCounts[analysis.TurnBase],
		profile.TurnCounts[analysis.TurnPrime],
		profile.TurnCounts[analysis.TurnDouble],
	)
	fmt.Println()

	report := analysis.MineNGrams(tokens, 2, analyzeMaxNGrams, analyzeTopK)
	if len(report.TopNGrams) > 0 {
		fmt.Println(phaseStyle.Render("Repeated sequences"))
		lengths := make([]int, 0, len(report.TopNGrams))
		for n := range report.TopNGrams {
			lengths = append(lengths, n)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
		for _, n := range lengths {
			for _, g := range report.TopNGrams[n] {
				fmt.Printf("  %dx  %s\n", g.Count, moveStyle.Render(g.String()))
			}
		}
		fmt.Println()
	}

	pauses := analysis.AnalyzePauses(times, analyzePauseMs)
	fmt.Printf("Pauses over %dms: %d\n", analyzePauseMs, len(pauses))
	for _, p := range pauses {
		fmt.Printf("  after move %d at %s: %s\n", p.AfterIndex+1, formatElapsed(msDuration(p.AtMs)), formatElapsed(msDuration(p.DurationMs)))
	}

	return nil
}
