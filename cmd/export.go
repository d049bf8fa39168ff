package cmd

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/pable/go-lol-draftstats/internal/aggregator"
	"github.com/pable/go-lol-draftstats/internal/model"
)

var (
	exportOut      string
	exportMinPicks int
)

// snapshotExport is the JSON document consumed by draft recommendation tools.
// Champions carry both the raw counters and the finalized rates.
type snapshotExport struct {
	SnapshotID    string               `json:"snapshot_id"`
	DatasetHash   string               `json:"dataset_hash"`
	Source        string               `json:"source"`
	CreatedAt     string               `json:"created_at"`
	GeneratedAt   string               `json:"generated_at"`
	GamesGrouped  int                  `json:"games_grouped"`
	EligibleGames int                  `json:"eligible_games"`
	Stats         model.DatasetStats   `json:"stats"`
	UniqueValues  model.UniqueValues   `json:"unique_values"`
	Champions     []model.ChampionStat `json:"champions"`
	Matchups      []model.LaneMatchup  `json:"matchups"`
	Duos          []model.Duo          `json:"duos"`
}

var exportCmd = &cobra.Command{
	Use:   "export <id-prefix>",
	Short: "Export a snapshot as JSON",
	Long: `Write a stored snapshot as a JSON document: dataset counts, unique labels,
every champion's counters and rates, lane matchups and duos.

An --out path ending in .gz or .zst is compressed accordingly.

Example:
  draftstats export 3f2a --out lck-14.10.json.zst`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
	exportCmd.Flags().IntVar(&exportMinPicks, "min-picks", 0, "drop champions picked fewer times")
}

func runExport(_ *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := snapshotByPrefix(db, args[0])
	if err != nil {
		return err
	}

	res := snap.Result
	champions := res.Champions
	if exportMinPicks > 0 {
		champions = aggregator.FilterChampions(champions, "", exportMinPicks)
	}
	out := snapshotExport{
		SnapshotID:    snap.ID,
		DatasetHash:   snap.DatasetHash,
		Source:        snap.Source,
		CreatedAt:     snap.CreatedAt,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		GamesGrouped:  res.GamesGrouped,
		EligibleGames: res.EligibleGames,
		Stats:         res.Stats,
		UniqueValues:  res.UniqueValues,
		Champions:     champions,
		Matchups:      res.Matchups,
		Duos:          res.Duos,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	if exportOut == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := writeExport(exportOut, append(data, '\n')); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s (%d champions)\n", exportOut, len(champions))
	return nil
}

// writeExport writes data to path, compressing by extension.
func writeExport(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.WriteCloser
	switch lower := strings.ToLower(path); {
	case strings.HasSuffix(lower, ".zst"):
		w, err = zstd.NewWriter(f)
		if err != nil {
			return err
		}
	case strings.HasSuffix(lower, ".gz"):
		w = gzip.NewWriter(f)
	default:
		if _, err := f.Write(data); err != nil {
			return err
		}
		return f.Close()
	}

	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}
