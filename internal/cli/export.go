package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var (
	exportScrambleID string
	exportFormat     string
	exportOutput     string
	exportLast       bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored scramble and its solutions",
	Long: `Export a scramble and the solutions stored for it in text or JSON format.

Examples:
  cubestate export --last
  cubestate export --id <scramble_id> --format json
  cubestate export --id <scramble_id> -o scramble.txt`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportScrambleID, "id", "", "Scramble ID (or prefix) to export")
	exportCmd.Flags().BoolVar(&exportLast, "last", false, "Export the most recent scramble")
	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

type solutionJSON struct {
	SolutionID string    `json:"solution_id"`
	CreatedAt  time.Time `json:"created_at"`
	Moves      string    `json:"moves"`
	MoveCount  int       `json:"move_count"`
	BestEffort bool      `json:"best_effort"`
}

type scrambleJSON struct {
	ScrambleID string         `json:"scramble_id"`
	CreatedAt  time.Time      `json:"created_at"`
	Scramble   string         `json:"scramble"`
	Length     int            `json:"length"`
	Seed       *uint64        `json:"seed,omitempty"`
	Solutions  []solutionJSON `json:"solutions"`
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportScrambleID == "" && !exportLast {
		return fmt.Errorf("specify --id or --last")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewScrambleRepository(db)

	var s *storage.Scramble
	if exportLast {
		s, err = repo.Latest()
		if err != nil {
			return fmt.Errorf("failed to get last scramble: %w", err)
		}
		if s == nil {
			return fmt.Errorf("no scrambles found")
		}
	} else {
		s, err = findScramble(repo, exportScrambleID)
		if err != nil {
			return err
		}
	}

	sols, err := storage.NewSolutionRepository(db).ListForScramble(s.ScrambleID)
	if err != nil {
		return err
	}

	output, err := formatExport(s, sols, exportFormat)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		fmt.Println(output)
		return nil
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, []byte(output+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Exported scramble %s to %s\n", s.ScrambleID[:8], exportOutput)

	return nil
}

func formatExport(s *storage.Scramble, sols []storage.Solution, format string) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		lines := []string{s.ScrambleText}
		for _, sol := range sols {
			lines = append(lines, sol.Moves)
		}
		return strings.Join(lines, "\n"), nil

	case "json":
		out := scrambleJSON{
			ScrambleID: s.ScrambleID,
			CreatedAt:  s.CreatedAt,
			Scramble:   s.ScrambleText,
			Length:     s.Length,
			Seed:       s.Seed,
			Solutions:  make([]solutionJSON, 0, len(sols)),
		}
		for _, sol := range sols {
			out.Solutions = append(out.Solutions, solutionJSON{
				SolutionID: sol.SolutionID,
				CreatedAt:  sol.CreatedAt,
				Moves:      sol.Moves,
				MoveCount:  sol.MoveCount,
				BestEffort: sol.BestEffort,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("unknown format: %s (use txt or json)", format)
	}
}
