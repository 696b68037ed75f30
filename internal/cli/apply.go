package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/notation"
)

var applyDescribe bool

var applyCmd = &cobra.Command{
	Use:   "apply <moves>...",
	Short: "Apply a move sequence to a solved cube",
	Long: `Apply moves in standard notation to a solved cube and print the result.

Malformed tokens are reported and skipped; the rest are applied.

Examples:
  cubestate apply R U "R'" "U'"
  cubestate apply "R U2 F'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(&applyDescribe, "describe", false, "Describe each move in words")
}

func runApply(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	e := newEngine(0)

	if err := e.EnqueueNotation(text); err != nil {
		if !errors.Is(err, cubestate.ErrInvalidNotation) {
			return err
		}
		fmt.Println(errorStyle.Render(fmt.Sprintf("Skipped: %v", err)))
	}
	moves := e.Drain()

	fmt.Printf("Moves: %s (%d quarter turns)\n", moveStyle.Render(cubestate.FormatMoves(moves)), len(moves))
	if applyDescribe {
		fmt.Println(statusStyle.Render(notation.DescribeSequence(text)))
	}
	fmt.Println()
	fmt.Print(renderNet(e.Facelets(), colorOutput()))
	fmt.Println()

	if e.IsSolved() {
		fmt.Println(phaseStyle.Render("Cube is solved"))
	} else {
		fmt.Println(statusStyle.Render("Cube is not solved"))
	}
	return nil
}
