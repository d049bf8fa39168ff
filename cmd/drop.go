package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dropForce    bool
	dropSnapshot string
)

// dropCmd deletes the stats database file, or a single snapshot.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the stats database or one snapshot",
	Long: `Permanently delete the SQLite stats database. All stored snapshots will be lost.
Re-load your match files afterwards to rebuild.

With --snapshot, only the snapshot with that id prefix is removed.`,
	Args: cobra.NoArgs,
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
	dropCmd.Flags().StringVar(&dropSnapshot, "snapshot", "", "only delete the snapshot with this id prefix")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if dropSnapshot != "" {
		return dropOneSnapshot(dropSnapshot)
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropOneSnapshot(prefix string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := snapshotByPrefix(db, prefix)
	if err != nil {
		return err
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete snapshot %s (%s).\n", snap.ID, snap.Source)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if _, err := db.DeleteSnapshot(snap.ID); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted snapshot: %s\n", snap.ID)
	return nil
}
