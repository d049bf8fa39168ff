package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-draftstats/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored snapshots",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	snaps, err := db.ListSnapshots()
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	if len(snaps) == 0 {
		fmt.Fprintln(os.Stdout, "No snapshots stored yet. Run 'draftstats load <file>' to add one.")
		return nil
	}
	report.PrintSnapshotList(os.Stdout, snaps)
	return nil
}
