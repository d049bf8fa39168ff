package aggregator

import "github.com/pable/go-lol-draftstats/internal/model"

// draftOrder maps a team's own pick index (1..5) to its slot in the global
// draft: Blue 1, Red 2-3, Blue 4-5, Red 6-7, Blue 8-9, Red 10.
var draftOrder = map[model.Side][model.MaxTeamPicks]int{
	model.SideBlue: {1, 4, 5, 8, 9},
	model.SideRed:  {2, 3, 6, 7, 10},
}

// GlobalPickOrder converts a side and a team-relative pick index into the
// 1..10 draft slot. It returns false for an unknown side or an index outside
// 1..5.
func GlobalPickOrder(side model.Side, teamPickIndex int) (int, bool) {
	order, ok := draftOrder[side]
	if !ok || teamPickIndex < 1 || teamPickIndex > model.MaxTeamPicks {
		return 0, false
	}
	return order[teamPickIndex-1], true
}

// TeamPickIndex returns the lowest pickN column of team equal to champion.
func TeamPickIndex(team model.Row, champion string) (int, bool) {
	if team == nil || champion == "" {
		return 0, false
	}
	for i := 1; i <= model.MaxTeamPicks; i++ {
		if team.Pick(i) == champion {
			return i, true
		}
	}
	return 0, false
}

// PlayerPickOrder returns the global draft slot of a player in game g, or
// false when the player's side, team row or pick column cannot be resolved.
func PlayerPickOrder(g *model.Game, player model.Row) (int, bool) {
	side := player.Side()
	idx, ok := TeamPickIndex(g.TeamRow(side), player.Champion())
	if !ok {
		return 0, false
	}
	return GlobalPickOrder(side, idx)
}
