// Package cli implements the command-line interface for cubestate.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/config"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath     string
	configPath string
	verbose    bool

	// settings is loaded before any command runs.
	settings = config.Default()
	logger   = slog.New(slog.DiscardHandler)
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubestate",
	Short: "3x3 cube state engine",
	Long: `cubestate - A CLI for a 3x3 Rubik's cube state engine.

Generate scrambles, apply move sequences, rebuild step-by-step solutions
for recorded scrambles, and play with an animated cube in the terminal.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubestate/cubestate.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cubestate/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// loadSettings reads the config file and applies global flag overrides.
func loadSettings(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	settings = cfg
	logger = config.NewLogger(os.Stderr, cfg.LogLevel)
	logger.Debug("settings loaded", "config", path, "db", cfg.DBPath)
	return nil
}

// newEngine builds an engine from the loaded settings. A non-zero seed
// overrides the configured one.
func newEngine(seed uint64, opts ...cubestate.Option) *cubestate.Engine {
	base := []cubestate.Option{
		cubestate.WithLogger(logger),
		cubestate.WithMoveDuration(settings.MoveDuration),
		cubestate.WithScrambleLength(settings.ScrambleLength),
	}
	if seed == 0 {
		seed = settings.Seed
	}
	if seed != 0 {
		base = append(base, cubestate.WithSeed(seed))
	}
	return cubestate.New(append(base, opts...)...)
}

// openDB opens the database at the configured or default path.
func openDB() (*storage.DB, error) {
	var (
		db  *storage.DB
		err error
	)
	if settings.DBPath == "" {
		db, err = storage.OpenDefault()
	} else {
		db, err = storage.Open(settings.DBPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
