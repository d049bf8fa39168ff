package aggregator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pable/go-lol-draftstats/internal/model"
)

// SortKeys lists the accepted values of SortChampions' key argument.
var SortKeys = []string{"picks", "pickrate", "winrate", "kda", "blind", "counter", "name"}

// SortChampions orders stats in place, descending for numeric keys and
// ascending for "name". Ties fall back to name. KDA ranks Perfect above any
// finite ratio.
func SortChampions(stats []model.ChampionStat, key string) error {
	var order func(a, b model.ChampionStat) int
	switch strings.ToLower(key) {
	case "", "picks":
		order = func(a, b model.ChampionStat) int { return cmpInt(b.Picks, a.Picks) }
	case "pickrate":
		order = func(a, b model.ChampionStat) int { return cmpFloat(b.PickRate, a.PickRate) }
	case "winrate":
		order = func(a, b model.ChampionStat) int { return cmpFloat(b.WinRate, a.WinRate) }
	case "kda":
		order = func(a, b model.ChampionStat) int { return b.KDA.Compare(a.KDA) }
	case "blind":
		order = func(a, b model.ChampionStat) int { return cmpFloat(b.BlindPickRate, a.BlindPickRate) }
	case "counter":
		order = func(a, b model.ChampionStat) int { return cmpFloat(b.CounterPickRate, a.CounterPickRate) }
	case "name":
		order = func(a, b model.ChampionStat) int { return 0 }
	default:
		return fmt.Errorf("unknown sort key %q (want one of %s)", key, strings.Join(SortKeys, ", "))
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if c := order(stats[i], stats[j]); c != 0 {
			return c < 0
		}
		return stats[i].Name < stats[j].Name
	})
	return nil
}

// FilterChampions keeps champions that were picked at least minPicks times
// and, when position is set, whose main position matches it.
func FilterChampions(stats []model.ChampionStat, position string, minPicks int) []model.ChampionStat {
	var out []model.ChampionStat
	for _, s := range stats {
		if s.Picks < minPicks {
			continue
		}
		if position != "" && s.MainPosition != position {
			continue
		}
		out = append(out, s)
	}
	return out
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
