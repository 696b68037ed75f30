package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var (
	scrambleLength int
	scrambleSeed   uint64
	scrambleShow   bool
	scrambleNoSave bool
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Generate a random scramble",
	Long: `Generate a random scramble in standard notation and store it so that
'cubestate solve' can rebuild its solution later.

Examples:
  cubestate scramble
  cubestate scramble --length 30 --show
  cubestate scramble --seed 42 --no-save`,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVarP(&scrambleLength, "length", "n", 0, "Number of moves (default from config)")
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Seed for a reproducible scramble")
	scrambleCmd.Flags().BoolVar(&scrambleShow, "show", false, "Print the scrambled cube")
	scrambleCmd.Flags().BoolVar(&scrambleNoSave, "no-save", false, "Do not store the scramble")
}

func runScramble(cmd *cobra.Command, args []string) error {
	e := newEngine(scrambleSeed)

	s, err := e.Scramble(scrambleLength)
	if err != nil {
		return err
	}

	fmt.Println(moveStyle.Render(s))

	if !scrambleNoSave {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		seed := scrambleSeed
		if seed == 0 {
			seed = settings.Seed
		}
		id, err := storage.NewScrambleRepository(db).Create(s, len(strings.Fields(s)), seed)
		if err != nil {
			return err
		}
		logger.Debug("scramble stored", "id", id)
		fmt.Println(statusStyle.Render(fmt.Sprintf("Saved as %s", id[:8])))
	}

	if scrambleShow {
		e.Drain()
		fmt.Println()
		fmt.Print(renderNet(e.Facelets(), colorOutput()))
	}

	return nil
}
