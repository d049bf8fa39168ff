package aggregator

import (
	"sort"

	"github.com/pable/go-lol-draftstats/internal/model"
)

// Finalize turns running totals into rates, averages and display strings.
// eligibleGames is the dataset-wide count of pick-order eligible games and
// is the pick rate denominator for every champion.
func Finalize(t *model.ChampionTotals, eligibleGames int) model.ChampionStat {
	s := model.ChampionStat{
		Name:                t.Name,
		Picks:               t.Picks,
		Wins:                t.Wins,
		Losses:              t.Losses,
		Kills:               t.Kills,
		Deaths:              t.Deaths,
		Assists:             t.Assists,
		TotalGamesPlayed:    t.TotalGamesPlayed,
		DamageShare:         t.DamageShare,
		GoldShare:           t.GoldShare,
		TotalLaneMatchups:   t.TotalLaneMatchups,
		BlindPickMatchups:   t.BlindPickMatchups,
		CounterPickMatchups: t.CounterPickMatchups,
	}

	games := float64(t.TotalGamesPlayed)
	if t.TotalGamesPlayed > 0 {
		s.WinRate = float64(t.Wins) / games * 100
		s.AvgKills = t.Kills / games
		s.AvgDeaths = t.Deaths / games
		s.AvgAssists = t.Assists / games
		s.AvgDamageShare = t.DamageShare / games * 100
		s.AvgGoldShare = t.GoldShare / games * 100
	}
	s.KDA = computeKDA(t.Kills, t.Deaths, t.Assists)
	if eligibleGames > 0 {
		s.PickRate = float64(t.Picks) / float64(eligibleGames) * 100
	}
	if t.TotalLaneMatchups > 0 {
		s.BlindPickRate = float64(t.BlindPickMatchups) / float64(t.TotalLaneMatchups) * 100
		s.CounterPickRate = float64(t.CounterPickMatchups) / float64(t.TotalLaneMatchups) * 100
	}
	s.MainPosition = mainPosition(t)
	s.Positions = positionCounts(t.Positions)
	s.Pairings = sortedPairings(t.Pairings)

	s.WinRateFormatted = fixed1(s.WinRate)
	s.KDAFormatted = s.KDA.String()
	s.AvgKillsFormatted = fixed1(s.AvgKills)
	s.AvgDeathsFormatted = fixed1(s.AvgDeaths)
	s.AvgAssistsFormatted = fixed1(s.AvgAssists)
	s.AvgDamageShareFormatted = fixed1(s.AvgDamageShare)
	s.AvgGoldShareFormatted = fixed1(s.AvgGoldShare)
	s.PickRateFormatted = fixed1(s.PickRate)
	s.BlindPickRateFormatted = fixed1(s.BlindPickRate)
	s.CounterPickRateFormatted = fixed1(s.CounterPickRate)
	return s
}

// FinalizeAll finalizes every champion of acc in initialization order.
func FinalizeAll(acc *Accumulator) []model.ChampionStat {
	totals := acc.Totals()
	out := make([]model.ChampionStat, 0, len(totals))
	for _, t := range totals {
		out = append(out, Finalize(t, acc.EligibleGames()))
	}
	return out
}

func computeKDA(kills, deaths, assists float64) model.KDA {
	if deaths == 0 {
		if kills > 0 || assists > 0 {
			return model.Perfect()
		}
		return model.Finite(kills + assists)
	}
	return model.Finite((kills + assists) / deaths)
}

// mainPosition picks the standard lane with the strictly highest count; the
// first lane seen wins ties. Non-standard labels never qualify.
func mainPosition(t *model.ChampionTotals) string {
	best, bestCount := model.PositionNone, 0
	if t.TotalGamesPlayed == 0 {
		return best
	}
	t.Positions.Each(func(pos string, count int) {
		if model.IsStandardPosition(pos) && count > bestCount {
			best, bestCount = pos, count
		}
	})
	return best
}

func positionCounts(t *model.Tally) []model.PositionCount {
	out := make([]model.PositionCount, 0, t.Len())
	t.Each(func(pos string, count int) {
		out = append(out, model.PositionCount{Position: pos, Count: count})
	})
	return out
}

// sortedPairings lists allies by count desc; equal counts keep first-seen order.
func sortedPairings(t *model.Tally) []model.Pairing {
	out := make([]model.Pairing, 0, t.Len())
	t.Each(func(name string, count int) {
		out = append(out, model.Pairing{Name: name, Count: count})
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

func fixed1(v float64) string {
	return model.FormatFixed(v, 1)
}
