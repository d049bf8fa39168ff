package aggregator

import (
	"fmt"

	"github.com/pable/go-lol-draftstats/internal/logging"
	"github.com/pable/go-lol-draftstats/internal/model"
)

// Accumulator holds running per-champion totals. It only knows the champions
// it was created with; rows for any other champion are skipped.
type Accumulator struct {
	totals map[string]*model.ChampionTotals
	order  []string

	matchups     map[matchupKey]*model.LaneMatchup
	matchupOrder []matchupKey
	duos         map[duoKey]*model.Duo
	duoOrder     []duoKey

	games         int
	eligibleGames int
	skipped       int

	log logging.Interface
}

// NewAccumulator returns an accumulator with zeroed totals for every champion.
func NewAccumulator(champions []string) *Accumulator {
	a := &Accumulator{
		totals:   make(map[string]*model.ChampionTotals, len(champions)),
		matchups: make(map[matchupKey]*model.LaneMatchup),
		duos:     make(map[duoKey]*model.Duo),
		log:      logging.Logger(),
	}
	for _, c := range champions {
		if c == "" {
			continue
		}
		if _, ok := a.totals[c]; ok {
			continue
		}
		a.totals[c] = model.NewChampionTotals(c)
		a.order = append(a.order, c)
	}
	return a
}

// Fold adds every game to acc and returns it.
func Fold(acc *Accumulator, games []*model.Game) (*Accumulator, error) {
	for _, g := range games {
		if err := acc.Add(g); err != nil {
			return acc, err
		}
	}
	return acc, nil
}

// Add folds one game into the totals.
func (a *Accumulator) Add(g *model.Game) error {
	a.games++

	// ---- Pass 1: basic stats, every game. ----
	for _, p := range g.Players {
		t := a.lookup(g, p.Champion())
		if t == nil {
			continue
		}
		t.Picks++
		t.TotalGamesPlayed++
		if p.Won() {
			t.Wins++
		} else {
			t.Losses++
		}
		t.Kills += p.Num("kills")
		t.Deaths += p.Num("deaths")
		t.Assists += p.Num("assists")
		t.Positions.Add(p.Position(), 1)
		t.DamageShare += p.Num("damageshare")
		t.GoldShare += p.Num("earnedgoldshare")
	}

	// ---- Pass 2: ally pairings, every game, per side. ----
	for _, side := range []model.Side{model.SideBlue, model.SideRed} {
		team := playersOnSide(g, side)
		for i := 0; i < len(team); i++ {
			for j := i + 1; j < len(team); j++ {
				ca, cb := team[i].Champion(), team[j].Champion()
				if ca == cb {
					continue
				}
				ta, tb := a.totals[ca], a.totals[cb]
				if ta == nil || tb == nil {
					continue
				}
				ta.Pairings.Add(cb, 1)
				tb.Pairings.Add(ca, 1)
			}
		}
	}

	a.addLaneRecords(g)

	// ---- Pass 3: blind/counter picks, complete games only. ----
	if !g.Eligible() {
		return nil
	}
	a.eligibleGames++

	for _, pos := range model.StandardPositions {
		blue := playerAt(g, model.SideBlue, pos)
		red := playerAt(g, model.SideRed, pos)
		if blue == nil || red == nil {
			continue
		}
		bt, rt := a.totals[blue.Champion()], a.totals[red.Champion()]
		if bt == nil || rt == nil {
			continue
		}
		blueOrder, ok := PlayerPickOrder(g, blue)
		if !ok {
			continue
		}
		redOrder, ok := PlayerPickOrder(g, red)
		if !ok {
			continue
		}
		if blueOrder == redOrder {
			return fmt.Errorf("game %s, %s lane, slot %d: %w", g.ID, pos, blueOrder, ErrPickOrderTie)
		}

		bt.TotalLaneMatchups++
		rt.TotalLaneMatchups++
		if blueOrder < redOrder {
			bt.BlindPickMatchups++
			rt.CounterPickMatchups++
		} else {
			rt.BlindPickMatchups++
			bt.CounterPickMatchups++
		}
	}
	return nil
}

// lookup returns the totals for champion, logging a warning when unknown.
func (a *Accumulator) lookup(g *model.Game, champion string) *model.ChampionTotals {
	t, ok := a.totals[champion]
	if !ok {
		a.skipped++
		a.log.Warnf("game %s: champion %q not in stat map, row skipped", g.ID, champion)
		return nil
	}
	return t
}

// Totals returns the running totals in initialization order.
func (a *Accumulator) Totals() []*model.ChampionTotals {
	out := make([]*model.ChampionTotals, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, a.totals[name])
	}
	return out
}

// Champion returns the totals for name, or nil.
func (a *Accumulator) Champion(name string) *model.ChampionTotals {
	return a.totals[name]
}

// Games returns how many games were folded in.
func (a *Accumulator) Games() int { return a.games }

// EligibleGames returns how many folded games were pick-order eligible.
// It is the denominator of every pick rate.
func (a *Accumulator) EligibleGames() int { return a.eligibleGames }

// Skipped returns how many player rows referenced an unknown champion.
func (a *Accumulator) Skipped() int { return a.skipped }

func playersOnSide(g *model.Game, side model.Side) []model.Row {
	var out []model.Row
	for _, p := range g.Players {
		if p.Side() == side {
			out = append(out, p)
		}
	}
	return out
}

// playerAt returns the first player of side in position pos.
func playerAt(g *model.Game, side model.Side, pos string) model.Row {
	for _, p := range g.Players {
		if p.Side() == side && p.Position() == pos {
			return p
		}
	}
	return nil
}
