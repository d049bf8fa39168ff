package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-lol-draftstats/internal/aggregator"
	"github.com/pable/go-lol-draftstats/internal/model"
	"github.com/pable/go-lol-draftstats/internal/report"
)

var championPairings int

// championCmd prints everything known about one champion in a snapshot.
var championCmd = &cobra.Command{
	Use:   "champion <id-prefix> <name>",
	Short: "Detailed stats, positions, allies and lane matchups for one champion",
	Args:  cobra.ExactArgs(2),
	RunE:  runChampion,
}

func init() {
	championCmd.Flags().IntVar(&championPairings, "pairings", 10, "number of allies to list (0 = all)")
}

func runChampion(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := snapshotByPrefix(db, args[0])
	if err != nil {
		return err
	}
	c := findChampion(&snap.Result, args[1])
	if c == nil {
		return fmt.Errorf("champion %q not found in snapshot %s", args[1], report.ShortID(snap.ID))
	}
	printChampion(&snap.Result, *c, championPairings)
	return nil
}

// findChampion looks name up exactly, then ignoring case.
func findChampion(res *model.Result, name string) *model.ChampionStat {
	if c := res.Champion(name); c != nil {
		return c
	}
	for i := range res.Champions {
		if strings.EqualFold(res.Champions[i].Name, name) {
			return &res.Champions[i]
		}
	}
	return nil
}

func printChampion(res *model.Result, c model.ChampionStat, pairings int) {
	report.PrintChampionDetail(os.Stdout, c)
	if len(c.Positions) > 0 {
		fmt.Fprintln(os.Stdout, "\nPositions")
		report.PrintPositions(os.Stdout, c)
	}
	if len(c.Pairings) > 0 {
		fmt.Fprintln(os.Stdout, "\nMost frequent allies")
		report.PrintPairings(os.Stdout, c, pairings)
	}
	ms := aggregator.FilterMatchups(res.Matchups, c.Name, "", 1)
	if len(ms) > 0 {
		fmt.Fprintln(os.Stdout, "\nLane matchups")
		report.PrintMatchupTable(os.Stdout, ms)
	}
}
