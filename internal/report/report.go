package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-lol-draftstats/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintDatasetSummary prints a one-line summary header for an aggregation result.
func PrintDatasetSummary(w io.Writer, source, id string, res *model.Result) {
	fmt.Fprintf(w, "\nSource: %s  |  Games: %d (%d eligible)  |  Champions: %d  |  Players: %d  |  Teams: %d",
		source, res.GamesGrouped, res.EligibleGames,
		res.Stats.TotalChampions, res.Stats.TotalPlayers, res.Stats.TotalTeams)
	if id != "" {
		fmt.Fprintf(w, "  |  Snapshot: %s", ShortID(id))
	}
	fmt.Fprintln(w)
	if len(res.UniqueValues.Leagues) > 0 || len(res.UniqueValues.Patches) > 0 {
		fmt.Fprintf(w, "Leagues: %s  |  Patches: %s\n",
			joinOrDash(res.UniqueValues.Leagues), joinOrDash(res.UniqueValues.Patches))
	}
	fmt.Fprintln(w)
}

// ShortID returns the first eight characters of a snapshot id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func joinOrDash(vs []string) string {
	if len(vs) == 0 {
		return "-"
	}
	return strings.Join(vs, ", ")
}

// PrintChampionTable prints one row per champion.
// If focus is non-empty, that champion's row is marked with ">".
func PrintChampionTable(w io.Writer, stats []model.ChampionStat, focus string) {
	table := newTable(w)
	table.Header(
		" ", "CHAMPION", "POS", "PICKS", "W", "L", "WIN%", "PICK%", "KDA",
		"K", "D", "A", "DMG%", "GOLD%", "BLIND%", "COUNTER%",
	)

	for _, s := range stats {
		marker := " "
		if focus != "" && s.Name == focus {
			marker = ">"
		}
		table.Append(
			marker,
			s.Name,
			s.MainPosition,
			strconv.Itoa(s.Picks),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			s.WinRateFormatted,
			s.PickRateFormatted,
			s.KDAFormatted,
			s.AvgKillsFormatted,
			s.AvgDeathsFormatted,
			s.AvgAssistsFormatted,
			s.AvgDamageShareFormatted,
			s.AvgGoldShareFormatted,
			laneRate(s.BlindPickRateFormatted, s.TotalLaneMatchups),
			laneRate(s.CounterPickRateFormatted, s.TotalLaneMatchups),
		)
	}
	table.Render()
}

// laneRate hides blind/counter rates for champions with no lane matchups.
func laneRate(formatted string, matchups int) string {
	if matchups == 0 {
		return "-"
	}
	return formatted
}

// PrintChampionDetail prints every counter and rate of one champion.
func PrintChampionDetail(w io.Writer, s model.ChampionStat) {
	fmt.Fprintf(w, "\n%s  (main position: %s)\n\n", s.Name, s.MainPosition)

	table := newTable(w)
	table.Header("STAT", "VALUE")
	rows := [][2]string{
		{"Picks", strconv.Itoa(s.Picks)},
		{"Games played", strconv.Itoa(s.TotalGamesPlayed)},
		{"Wins / Losses", fmt.Sprintf("%d / %d", s.Wins, s.Losses)},
		{"Win rate", s.WinRateFormatted + "%"},
		{"Pick rate", s.PickRateFormatted + "%"},
		{"KDA", s.KDAFormatted},
		{"Avg K / D / A", fmt.Sprintf("%s / %s / %s", s.AvgKillsFormatted, s.AvgDeathsFormatted, s.AvgAssistsFormatted)},
		{"Avg damage share", s.AvgDamageShareFormatted + "%"},
		{"Avg gold share", s.AvgGoldShareFormatted + "%"},
		{"Lane matchups", strconv.Itoa(s.TotalLaneMatchups)},
		{"Blind pick rate", laneRate(s.BlindPickRateFormatted, s.TotalLaneMatchups) + pctSuffix(s.TotalLaneMatchups)},
		{"Counter pick rate", laneRate(s.CounterPickRateFormatted, s.TotalLaneMatchups) + pctSuffix(s.TotalLaneMatchups)},
	}
	for _, r := range rows {
		table.Append(r[0], r[1])
	}
	table.Render()
}

func pctSuffix(n int) string {
	if n == 0 {
		return ""
	}
	return "%"
}

// PrintPositions prints the position histogram of one champion.
func PrintPositions(w io.Writer, s model.ChampionStat) {
	if len(s.Positions) == 0 {
		return
	}
	table := newTable(w)
	table.Header("POSITION", "GAMES", "SHARE%")
	for _, p := range s.Positions {
		share := 0.0
		if s.TotalGamesPlayed > 0 {
			share = float64(p.Count) / float64(s.TotalGamesPlayed) * 100
		}
		name := p.Position
		if name == s.MainPosition {
			name += " *"
		}
		table.Append(name, strconv.Itoa(p.Count), fmt.Sprintf("%.1f", share))
	}
	table.Render()
}

// PrintPairings prints the most frequent allies. limit <= 0 prints all.
func PrintPairings(w io.Writer, s model.ChampionStat, limit int) {
	if len(s.Pairings) == 0 {
		return
	}
	table := newTable(w)
	table.Header("ALLY", "GAMES", "SHARE%")
	for i, p := range s.Pairings {
		if limit > 0 && i >= limit {
			break
		}
		share := 0.0
		if s.TotalGamesPlayed > 0 {
			share = float64(p.Count) / float64(s.TotalGamesPlayed) * 100
		}
		table.Append(p.Name, strconv.Itoa(p.Count), fmt.Sprintf("%.1f", share))
	}
	table.Render()
}

// PrintMatchupTable prints lane head-to-heads with a 95% confidence interval
// on the win rate and a sample-size flag.
func PrintMatchupTable(w io.Writer, ms []model.LaneMatchup) {
	table := newTable(w)
	table.Header("CHAMPION", "VS", "POS", "GAMES", "W", "WIN%", "95% CI", "SAMPLE")
	for _, m := range ms {
		lo, hi := wilsonCI(m.Wins, m.Games)
		table.Append(
			m.Champion,
			m.Opponent,
			m.Position,
			strconv.Itoa(m.Games),
			strconv.Itoa(m.Wins),
			fmt.Sprintf("%.1f", m.WinRate()),
			fmt.Sprintf("%.0f-%.0f", lo*100, hi*100),
			sampleFlag(m.Games),
		)
	}
	table.Render()
}

// PrintDuoTable prints bot/support pairs.
func PrintDuoTable(w io.Writer, ds []model.Duo) {
	table := newTable(w)
	table.Header("BOT", "SUPPORT", "GAMES", "W", "WIN%", "SAMPLE")
	for _, d := range ds {
		table.Append(
			d.Bot,
			d.Support,
			strconv.Itoa(d.Games),
			strconv.Itoa(d.Wins),
			fmt.Sprintf("%.1f", d.WinRate()),
			sampleFlag(d.Games),
		)
	}
	table.Render()
}

// PrintSnapshotList prints stored snapshot headers.
func PrintSnapshotList(w io.Writer, snaps []model.Snapshot) {
	table := newTable(w)
	table.Header("ID", "CREATED", "SOURCE", "GAMES", "ELIGIBLE", "CHAMPS", "HASH")
	for _, s := range snaps {
		table.Append(
			ShortID(s.ID),
			s.CreatedAt,
			s.Source,
			strconv.Itoa(s.Result.GamesGrouped),
			strconv.Itoa(s.Result.EligibleGames),
			strconv.Itoa(s.Result.Stats.TotalChampions),
			ShortID(s.DatasetHash),
		)
	}
	table.Render()
}

// TrendPoint is one patch's stats for a single champion. Stat is nil when
// the champion was not seen on that patch.
type TrendPoint struct {
	Patch         string
	EligibleGames int
	Stat          *model.ChampionStat
}

// PrintTrendTable prints a champion's stats patch by patch.
func PrintTrendTable(w io.Writer, champion string, points []TrendPoint) {
	fmt.Fprintf(w, "\n%s by patch\n\n", champion)
	table := newTable(w)
	table.Header("PATCH", "GAMES", "PICKS", "PICK%", "WIN%", "KDA", "BLIND%", "POS")
	for _, p := range points {
		if p.Stat == nil {
			table.Append(p.Patch, strconv.Itoa(p.EligibleGames), "0", "-", "-", "-", "-", "-")
			continue
		}
		s := p.Stat
		table.Append(
			p.Patch,
			strconv.Itoa(p.EligibleGames),
			strconv.Itoa(s.Picks),
			s.PickRateFormatted,
			s.WinRateFormatted,
			s.KDAFormatted,
			laneRate(s.BlindPickRateFormatted, s.TotalLaneMatchups),
			s.MainPosition,
		)
	}
	table.Render()
}

func sampleFlag(n int) string {
	switch {
	case n >= 10:
		return "OK"
	case n >= 5:
		return "LOW"
	default:
		return "VERY_LOW"
	}
}

// wilsonCI computes the 95% Wilson score confidence interval for a proportion.
// Returns (lo, hi) as fractions in [0, 1].
func wilsonCI(hits, n int) (lo, hi float64) {
	if n == 0 {
		return 0, 1
	}
	z := 1.96
	p := float64(hits) / float64(n)
	nf := float64(n)
	denom := 1 + z*z/nf
	center := (p + z*z/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}
