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
	matchupsChampion string
	matchupsPosition string
	matchupsMinGames int
	matchupsTop      int
)

var matchupsCmd = &cobra.Command{
	Use:   "matchups <id-prefix>",
	Short: "Lane head-to-heads and bot/support duos of a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runMatchups,
}

func init() {
	matchupsCmd.Flags().StringVar(&matchupsChampion, "champion", "", "only matchups of this champion")
	matchupsCmd.Flags().StringVar(&matchupsPosition, "position", "", "only matchups in this lane (top, jng, mid, bot, sup)")
	matchupsCmd.Flags().IntVar(&matchupsMinGames, "min-games", 1, "minimum games for a row to be shown")
	matchupsCmd.Flags().IntVar(&matchupsTop, "top", 25, "maximum rows per table (0 = all)")
}

func runMatchups(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := snapshotByPrefix(db, args[0])
	if err != nil {
		return err
	}

	champion := matchupsChampion
	if champion != "" {
		c := findChampion(&snap.Result, champion)
		if c == nil {
			return fmt.Errorf("champion %q not found in snapshot %s", champion, report.ShortID(snap.ID))
		}
		champion = c.Name
	}

	ms := aggregator.FilterMatchups(snap.Result.Matchups, champion,
		model.NormalizePositionFilter(matchupsPosition), matchupsMinGames)
	if matchupsTop > 0 && len(ms) > matchupsTop {
		ms = ms[:matchupsTop]
	}
	if len(ms) == 0 {
		fmt.Fprintln(os.Stdout, "No lane matchups match.")
	} else {
		fmt.Fprintln(os.Stdout, "\nLane matchups")
		report.PrintMatchupTable(os.Stdout, ms)
	}

	var duos []model.Duo
	for _, d := range snap.Result.Duos {
		if d.Games < matchupsMinGames {
			continue
		}
		if champion != "" && d.Bot != champion && d.Support != champion {
			continue
		}
		duos = append(duos, d)
	}
	if matchupsTop > 0 && len(duos) > matchupsTop {
		duos = duos[:matchupsTop]
	}
	if len(duos) > 0 {
		fmt.Fprintln(os.Stdout, "\nBot / support duos")
		report.PrintDuoTable(os.Stdout, duos)
	}
	return nil
}
