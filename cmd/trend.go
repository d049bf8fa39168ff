package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-draftstats/internal/aggregator"
	"github.com/pable/go-lol-draftstats/internal/ingest"
	"github.com/pable/go-lol-draftstats/internal/logging"
	"github.com/pable/go-lol-draftstats/internal/report"
)

var trendLeague string

var trendCmd = &cobra.Command{
	Use:   "trend <file> <champion>",
	Short: "Patch-by-patch trend for one champion",
	Long: `Split a match file by patch, aggregate each patch separately and print
one champion's pick rate, win rate, KDA and blind pick rate per patch.`,
	Args: cobra.ExactArgs(2),
	RunE: runTrend,
}

func init() {
	trendCmd.Flags().StringVar(&trendLeague, "league", "", "only use rows of this league")
}

func runTrend(cmd *cobra.Command, args []string) error {
	path, champion := args[0], args[1]
	log := logging.Logger()

	ds, err := ingest.Load(path)
	if err != nil {
		return err
	}
	rows := ingest.Filter{League: trendLeague}.Apply(ds.Rows)

	groups := ingest.GroupByPatch(rows)
	ingest.SortPatchGroups(groups)

	var points []report.TrendPoint
	seen := false
	for _, g := range groups {
		label := g.Patch
		if label == "" {
			label = "(none)"
		}
		res, err := aggregator.Aggregate(g.Rows)
		if errors.Is(err, aggregator.ErrNoRecognizedRows) {
			log.Warnf("patch %s: no player or team rows, skipped", label)
			continue
		}
		if err != nil {
			return fmt.Errorf("patch %s: %w", label, err)
		}
		p := report.TrendPoint{Patch: label, EligibleGames: res.EligibleGames}
		if c := findChampion(res, champion); c != nil && c.Picks > 0 {
			p.Stat = c
			champion = c.Name
			seen = true
		}
		points = append(points, p)
	}

	if !seen {
		return fmt.Errorf("champion %q was never picked in %s", champion, path)
	}
	report.PrintTrendTable(os.Stdout, champion, points)
	return nil
}
