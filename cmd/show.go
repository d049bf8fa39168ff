package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-draftstats/internal/aggregator"
	"github.com/pable/go-lol-draftstats/internal/model"
	"github.com/pable/go-lol-draftstats/internal/report"
)

var (
	showSort     string
	showTop      int
	showPosition string
)

var showCmd = &cobra.Command{
	Use:   "show <id-prefix>",
	Short: "Show a stored snapshot's champion table",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showSort, "sort", "picks", "sort key (picks, pickrate, winrate, kda, blind, counter, name)")
	showCmd.Flags().IntVar(&showTop, "top", 0, "only print the first N champions")
	showCmd.Flags().StringVar(&showPosition, "position", "", "only champions whose main position is this (top, jng, mid, bot, sup)")
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := snapshotByPrefix(db, args[0])
	if err != nil {
		return err
	}
	return renderResult(snap.Source, snap.ID, &snap.Result, showSort, showTop, showPosition)
}

// renderResult prints the dataset header and the sorted, filtered champion table.
// Champions never picked are left out.
func renderResult(source, id string, res *model.Result, sortKey string, top int, position string) error {
	stats := aggregator.FilterChampions(res.Champions, model.NormalizePositionFilter(position), 1)
	if err := aggregator.SortChampions(stats, sortKey); err != nil {
		return err
	}
	if top > 0 && len(stats) > top {
		stats = stats[:top]
	}

	report.PrintDatasetSummary(os.Stdout, source, id, res)
	if len(stats) == 0 {
		fmt.Fprintln(os.Stdout, "No picked champions match.")
		return nil
	}
	report.PrintChampionTable(os.Stdout, stats, "")
	return nil
}
