package cli

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/notation"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var (
	solveScramble string
	solveID       string
	solveDescribe bool
	solveNoSave   bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Rebuild a step-by-step solution for a scramble",
	Long: `Rebuild the solution for a scramble, split into the seven
layer-by-layer steps, and check it against the cube.

Without --scramble or --id the most recent stored scramble is used. With no
stored scramble a demonstration solution is shown instead; it does not
solve anything.

Examples:
  cubestate solve
  cubestate solve --scramble "R U R' U'"
  cubestate solve --id 3f2a --describe`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&solveScramble, "scramble", "", "Scramble to solve")
	solveCmd.Flags().StringVar(&solveID, "id", "", "Stored scramble ID (or prefix)")
	solveCmd.Flags().BoolVar(&solveDescribe, "describe", false, "Describe each move in words")
	solveCmd.Flags().BoolVar(&solveNoSave, "no-save", false, "Do not store the solution")
}

func runSolve(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	scrambles := storage.NewScrambleRepository(db)

	text, scrambleID, err := resolveScramble(scrambles)
	if err != nil {
		return err
	}

	e := newEngine(0)
	if text != "" {
		if err := e.RecordScramble(text); err != nil {
			return fmt.Errorf("invalid scramble: %w", err)
		}
		if err := e.EnqueueNotation(text); err != nil {
			return err
		}
		e.Drain()
		fmt.Printf("Scramble: %s\n\n", moveStyle.Render(text))
	}

	sol := e.ReconstructSolution()
	printSolution(sol)

	if err := e.EnqueueSolution(sol); err != nil {
		return err
	}
	e.Drain()

	fmt.Println()
	switch {
	case sol.BestEffort:
		fmt.Println(errorStyle.Render("No scramble recorded: this is a demonstration and does not solve the cube."))
	case e.IsSolved():
		fmt.Println(phaseStyle.Render(fmt.Sprintf("Verified: solved in %d moves", sol.Len())))
	default:
		return fmt.Errorf("solution did not restore the cube")
	}

	if solveNoSave {
		return nil
	}
	return saveSolution(db, text, scrambleID, sol)
}

// saveSolution stores sol, and the scramble it solves when that is not
// stored yet, in one transaction.
func saveSolution(db *storage.DB, text, scrambleID string, sol cubestate.Solution) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if text != "" && scrambleID == "" {
			id, err := storage.NewScrambleRepository(db).WithTx(tx).Create(text, len(notation.Tokens(text)), 0)
			if err != nil {
				return err
			}
			scrambleID = id
		}
		_, err := storage.NewSolutionRepository(db).WithTx(tx).Create(scrambleID, sol.Moves(), sol.Len(), sol.BestEffort)
		return err
	})
}

// resolveScramble picks the scramble from the flags or the database. The
// returned ID is empty when the scramble did not come from storage.
func resolveScramble(repo *storage.ScrambleRepository) (string, string, error) {
	if solveScramble != "" {
		return solveScramble, "", nil
	}

	if solveID != "" {
		s, err := findScramble(repo, solveID)
		if err != nil {
			return "", "", err
		}
		return s.ScrambleText, s.ScrambleID, nil
	}

	s, err := repo.Latest()
	if err != nil {
		return "", "", err
	}
	if s == nil {
		return "", "", nil
	}
	return s.ScrambleText, s.ScrambleID, nil
}

// findScramble resolves a full ID or a unique prefix among recent scrambles.
func findScramble(repo *storage.ScrambleRepository, id string) (*storage.Scramble, error) {
	s, err := repo.Get(id)
	if err != nil {
		return nil, err
	}
	if s != nil {
		return s, nil
	}

	recent, err := repo.List(1000)
	if err != nil {
		return nil, err
	}
	var match *storage.Scramble
	for i := range recent {
		if strings.HasPrefix(recent[i].ScrambleID, id) {
			if match != nil {
				return nil, fmt.Errorf("scramble id %q is ambiguous", id)
			}
			match = &recent[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("scramble %q not found", id)
	}
	return match, nil
}

func printSolution(sol cubestate.Solution) {
	for _, st := range sol.Steps {
		fmt.Println(phaseStyle.Render(st.Phase.DisplayName()))
		fmt.Println(statusStyle.Render("  " + st.Phase.Description()))
		if st.Moves == "" {
			fmt.Println("  (nothing to do)")
			continue
		}
		fmt.Printf("  %s\n", moveStyle.Render(st.Moves))
		if solveDescribe {
			for _, tok := range notation.Tokens(st.Moves) {
				fmt.Printf("    %-3s %s\n", tok, notation.Describe(tok))
			}
		}
	}
}
