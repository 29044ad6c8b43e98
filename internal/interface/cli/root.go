package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blakemt/pufflog/internal/core/config"
	"github.com/blakemt/pufflog/internal/core/db"
	"github.com/blakemt/pufflog/internal/core/storage"
)

var (
	dbPath      string
	versionInfo string

	cfg *config.Config
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pufflog",
	Short: "Personal consumption session tracker",
	Long: `pufflog - log, browse, and analyze your consumption sessions

Import historical spreadsheet exports, record new sessions, and view
streaks, vessel breakdowns, and location history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to TUI if no subcommand specified
		return tuiCmd.RunE(cmd, args)
	},
}

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		cfg = &config.Config{Backend: "sqlite"}
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DatabasePath, "Database path")
}

// openStore builds the configured backend. The memory backend is only
// useful for throwaway runs but keeps the same capability set.
func openStore() (storage.Store, error) {
	if cfg.Backend == "memory" {
		return storage.NewMemoryStore(), nil
	}
	database, err := db.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}
