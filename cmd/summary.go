package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-draftstats/internal/aggregator"
	"github.com/pable/go-lol-draftstats/internal/report"
)

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all snapshots stored in the database:
snapshot and dataset counts, date range, games, distinct champions, and the
most picked champions of the newest snapshot.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ov, err := db.Overview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Snapshots == 0 {
		fmt.Fprintln(os.Stdout, "No snapshots stored yet. Run 'draftstats load <file>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Snapshots      : %d (%d distinct datasets)\n", ov.Snapshots, ov.Datasets)
	fmt.Fprintf(os.Stdout, "  Created        : %s -> %s\n", ov.Oldest, ov.Newest)
	fmt.Fprintf(os.Stdout, "  Games          : %d (%d eligible)\n", ov.TotalGames, ov.EligibleGames)
	fmt.Fprintf(os.Stdout, "  Champions seen : %d\n", ov.Champions)
	fmt.Fprintf(os.Stdout, "  Lane matchups  : %d\n", ov.Matchups)
	fmt.Fprintf(os.Stdout, "  Duos           : %d\n", ov.Duos)

	snaps, err := db.ListSnapshots()
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	latest, err := db.GetSnapshot(snaps[0].ID)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if latest == nil {
		return nil
	}

	top := aggregator.FilterChampions(latest.Result.Champions, "", 1)
	if err := aggregator.SortChampions(top, "picks"); err != nil {
		return err
	}
	if len(top) > 10 {
		top = top[:10]
	}
	if len(top) == 0 {
		return nil
	}
	fmt.Fprintf(os.Stdout, "\n--- Most Picked (snapshot %s) ---\n\n", report.ShortID(latest.ID))
	report.PrintChampionTable(os.Stdout, top, "")
	return nil
}
