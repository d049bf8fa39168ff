package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-draftstats/internal/config"
	"github.com/pable/go-lol-draftstats/internal/logging"
	"github.com/pable/go-lol-draftstats/internal/model"
	"github.com/pable/go-lol-draftstats/internal/storage"
)

var (
	cfg      = loadConfig()
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "draftstats",
	Short: "Esports champion draft statistics",
	Long: `Aggregate per-game match spreadsheets (player and team rows) into
per-champion statistics: win and pick rates, KDA, damage and gold share,
main position, ally pairings and blind/counter pick rates.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetLevel(logLevel)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", cfg.DBPath, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(championCmd)
	rootCmd.AddCommand(matchupsCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(shellCmd)
}

// loadConfig reads .env and the environment. A broken .env is reported and
// skipped so flags still get defaults.
func loadConfig() *config.Config {
	c, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		c, _ = config.LoadFrom("")
	}
	return c
}

// openDB opens the database, creating its directory first.
func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// snapshotByPrefix loads a snapshot or returns an error naming the prefix.
func snapshotByPrefix(db *storage.DB, prefix string) (*model.Snapshot, error) {
	snap, err := db.GetSnapshotByPrefix(prefix)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("no snapshot found with id prefix %q", prefix)
	}
	return snap, nil
}
