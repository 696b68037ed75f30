package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show settings and stored history",
	Long:  `Display the active settings, the database location and schema version, and a summary of stored scrambles and solutions.`,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("cubestate Status")
	fmt.Println("================")
	fmt.Println()

	fmt.Printf("Scramble length: %d\n", settings.ScrambleLength)
	fmt.Printf("Move duration:   %s\n", settings.MoveDuration)
	if settings.Seed != 0 {
		fmt.Printf("Seed:            %d\n", settings.Seed)
	} else {
		fmt.Println("Seed:            random")
	}
	fmt.Printf("Log level:       %s\n", settings.LogLevel)
	if settings.MetricsAddr != "" {
		fmt.Printf("Metrics:         http://%s/metrics (play only)\n", settings.MetricsAddr)
	}
	fmt.Println()

	db, err := openDB()
	if err != nil {
		fmt.Printf("Database: unavailable (%v)\n", err)
		return nil
	}
	defer db.Close()

	fmt.Printf("Database: %s\n", db.Path())
	if v, err := db.CurrentVersion(); err == nil {
		fmt.Printf("Schema version: %d\n", v)
	}

	scrambles := storage.NewScrambleRepository(db)
	all, err := scrambles.List(100000)
	if err != nil {
		return err
	}
	fmt.Printf("Stored scrambles: %d\n", len(all))

	n, err := storage.NewSolutionRepository(db).Count()
	if err != nil {
		return err
	}
	fmt.Printf("Stored solutions: %d\n", n)

	if len(all) > 0 {
		last := all[0]
		fmt.Println()
		fmt.Printf("Last scramble: %s (%s)\n", last.ScrambleText, last.CreatedAt.Local().Format(time.RFC3339))
		fmt.Println("  (Use 'cubestate solve' to rebuild its solution)")
	}

	return nil
}
