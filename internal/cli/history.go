package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored scrambles",
	Long:  `List recently generated scrambles, newest first, with the number of solutions stored for each.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of scrambles to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := storage.NewScrambleRepository(db).List(historyLimit)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No scrambles found. Generate one with: cubestate scramble")
		return nil
	}

	solutions := storage.NewSolutionRepository(db)

	fmt.Printf("%-10s %-20s %4s %4s  %s\n", "ID", "Created", "Len", "Sol", "Scramble")
	fmt.Println("---------------------------------------------------------------------------")
	for _, s := range list {
		sols, err := solutions.ListForScramble(s.ScrambleID)
		if err != nil {
			return err
		}
		fmt.Printf("%-10s %-20s %4d %4d  %s\n",
			s.ScrambleID[:8],
			s.CreatedAt.Local().Format(time.DateTime),
			s.Length,
			len(sols),
			s.ScrambleText,
		)
	}

	return nil
}
