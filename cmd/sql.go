package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the stats database",
	Long: `Run an arbitrary SQL query against the stats database and print results as a table.

Schema overview:
  snapshots(id, dataset_hash, source, created_at, games_grouped, eligible_games,
    total_games, total_champions, total_players, total_teams)
  champion_totals(snapshot_id, ord, champion, picks, wins, losses, kills, deaths,
    assists, games_played, damage_share, gold_share, lane_matchups,
    blind_matchups, counter_matchups)
  champion_positions(snapshot_id, champion, ord, position, games)
  champion_pairings(snapshot_id, champion, ord, ally, games)
  lane_matchups(snapshot_id, champion, opponent, position, games, wins)
  duos(snapshot_id, bot, support, games, wins)
  unique_values(snapshot_id, kind, value)

Only counters are stored; rates are derived. damage_share and gold_share are
sums of per-game fractions. Example:
  draftstats sql "SELECT champion, picks, 100.0*wins/games_played AS wr
    FROM champion_totals WHERE snapshot_id LIKE '3f2a%' ORDER BY picks DESC LIMIT 10"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}

