package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-draftstats/internal/aggregator"
	"github.com/pable/go-lol-draftstats/internal/ingest"
	"github.com/pable/go-lol-draftstats/internal/logging"
	"github.com/pable/go-lol-draftstats/internal/model"
	"github.com/pable/go-lol-draftstats/internal/report"
	"github.com/pable/go-lol-draftstats/internal/storage"
)

var (
	loadLeague  string
	loadPatch   string
	loadSort    string
	loadTop     int
	loadNoStore bool
	loadForce   bool
)

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Aggregate a match spreadsheet and store the snapshot",
	Long: `Read a CSV or JSON match file (optionally .gz or .zst compressed), aggregate
per-champion statistics and store them as a snapshot.

A file already loaded with the same filters is served from the database
unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadLeague, "league", "", "only use rows of this league")
	loadCmd.Flags().StringVar(&loadPatch, "patch", "", "only use rows of this patch")
	loadCmd.Flags().StringVar(&loadSort, "sort", "picks", "sort key (picks, pickrate, winrate, kda, blind, counter, name)")
	loadCmd.Flags().IntVar(&loadTop, "top", 0, "only print the first N champions")
	loadCmd.Flags().BoolVar(&loadNoStore, "no-store", false, "print results without writing to the database")
	loadCmd.Flags().BoolVar(&loadForce, "force", false, "re-aggregate even if this dataset is already stored")
}

func runLoad(cmd *cobra.Command, args []string) error {
	path := args[0]
	log := logging.Logger()

	fmt.Fprintf(os.Stdout, "Loading %s...\n", path)
	ds, err := ingest.Load(path)
	if err != nil {
		return err
	}
	filter := ingest.Filter{League: loadLeague, Patch: loadPatch}
	key := filter.CacheKey(ds.Hash)

	var db *storage.DB
	if !loadNoStore {
		db, err = openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if !loadForce {
			cached, err := db.FindSnapshotByHash(key)
			if err != nil {
				return fmt.Errorf("check snapshot: %w", err)
			}
			if cached != nil {
				fmt.Fprintf(os.Stdout, "Dataset %s already stored as snapshot %s, showing cached results.\n",
					report.ShortID(key), report.ShortID(cached.ID))
				snap, err := db.GetSnapshot(cached.ID)
				if err != nil {
					return fmt.Errorf("load snapshot: %w", err)
				}
				if snap == nil {
					return fmt.Errorf("snapshot %s vanished while loading", cached.ID)
				}
				return renderResult(snap.Source, snap.ID, &snap.Result, loadSort, loadTop, "")
			}
		}
	}

	rows := filter.Apply(ds.Rows)
	log.Debugf("%d of %d rows kept by filter %+v", len(rows), len(ds.Rows), filter)

	res, err := aggregator.Aggregate(rows)
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	snap := model.Snapshot{
		DatasetHash: key,
		Source:      path,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Result:      *res,
	}
	if db != nil {
		snap.ID = uuid.NewString()
		if err := db.InsertSnapshot(snap); err != nil {
			return fmt.Errorf("store snapshot: %w", err)
		}
		log.Infof("stored snapshot %s (%d champions)", snap.ID, len(res.Champions))
	}

	return renderResult(snap.Source, snap.ID, res, loadSort, loadTop, "")
}
