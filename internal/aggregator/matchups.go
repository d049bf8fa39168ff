package aggregator

import (
	"sort"

	"github.com/pable/go-lol-draftstats/internal/model"
)

type matchupKey struct {
	champion, opponent, position string
}

type duoKey struct {
	bot, support string
}

// addLaneRecords records lane head-to-heads and bot/sup duos for g. Unlike
// blind/counter accounting this runs for every game, complete or not.
func (a *Accumulator) addLaneRecords(g *model.Game) {
	for _, pos := range model.StandardPositions {
		blue := playerAt(g, model.SideBlue, pos)
		red := playerAt(g, model.SideRed, pos)
		if blue == nil || red == nil {
			continue
		}
		bc, rc := blue.Champion(), red.Champion()
		if a.totals[bc] == nil || a.totals[rc] == nil {
			continue
		}
		a.recordMatchup(matchupKey{bc, rc, pos}, blue.Won())
		a.recordMatchup(matchupKey{rc, bc, pos}, red.Won())
	}

	for _, side := range []model.Side{model.SideBlue, model.SideRed} {
		bot := playerAt(g, side, model.PositionBot)
		sup := playerAt(g, side, model.PositionSupport)
		if bot == nil || sup == nil {
			continue
		}
		k := duoKey{bot.Champion(), sup.Champion()}
		if a.totals[k.bot] == nil || a.totals[k.support] == nil {
			continue
		}
		d, ok := a.duos[k]
		if !ok {
			d = &model.Duo{Bot: k.bot, Support: k.support}
			a.duos[k] = d
			a.duoOrder = append(a.duoOrder, k)
		}
		d.Games++
		if bot.Won() {
			d.Wins++
		}
	}
}

func (a *Accumulator) recordMatchup(k matchupKey, won bool) {
	m, ok := a.matchups[k]
	if !ok {
		m = &model.LaneMatchup{Champion: k.champion, Opponent: k.opponent, Position: k.position}
		a.matchups[k] = m
		a.matchupOrder = append(a.matchupOrder, k)
	}
	m.Games++
	if won {
		m.Wins++
	}
}

// Matchups returns every lane head-to-head, most played first.
func (a *Accumulator) Matchups() []model.LaneMatchup {
	out := make([]model.LaneMatchup, 0, len(a.matchupOrder))
	for _, k := range a.matchupOrder {
		out = append(out, *a.matchups[k])
	}
	SortMatchups(out)
	return out
}

// Duos returns every bot/sup pairing, most played first.
func (a *Accumulator) Duos() []model.Duo {
	out := make([]model.Duo, 0, len(a.duoOrder))
	for _, k := range a.duoOrder {
		out = append(out, *a.duos[k])
	}
	SortDuos(out)
	return out
}

// SortMatchups orders by games desc, then champion, opponent and position.
func SortMatchups(ms []model.LaneMatchup) {
	sort.SliceStable(ms, func(i, j int) bool {
		if ms[i].Games != ms[j].Games {
			return ms[i].Games > ms[j].Games
		}
		if ms[i].Champion != ms[j].Champion {
			return ms[i].Champion < ms[j].Champion
		}
		if ms[i].Opponent != ms[j].Opponent {
			return ms[i].Opponent < ms[j].Opponent
		}
		return ms[i].Position < ms[j].Position
	})
}

// SortDuos orders by games desc, then bot and support name.
func SortDuos(ds []model.Duo) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Games != ds[j].Games {
			return ds[i].Games > ds[j].Games
		}
		if ds[i].Bot != ds[j].Bot {
			return ds[i].Bot < ds[j].Bot
		}
		return ds[i].Support < ds[j].Support
	})
}

// FilterMatchups keeps matchups for champion (if set) in position (if set)
// with at least minGames games.
func FilterMatchups(ms []model.LaneMatchup, champion, position string, minGames int) []model.LaneMatchup {
	var out []model.LaneMatchup
	for _, m := range ms {
		if champion != "" && m.Champion != champion {
			continue
		}
		if position != "" && m.Position != position {
			continue
		}
		if m.Games < minGames {
			continue
		}
		out = append(out, m)
	}
	return out
}
