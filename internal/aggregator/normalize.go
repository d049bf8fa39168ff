package aggregator

import (
	"sort"

	"github.com/pable/go-lol-draftstats/internal/model"
)

// Validate rejects datasets that cannot produce meaningful statistics.
func Validate(rows []model.Row) error {
	if len(rows) == 0 {
		return ErrEmptyDataset
	}
	for _, col := range []string{"gameid", "participantid"} {
		found := false
		for _, r := range rows {
			if r.Has(col) {
				found = true
				break
			}
		}
		if !found {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}

// Normalize collects the distinct labels of a dataset. Champions come from
// player rows' champion cell and team rows' pickN and banN cells, so
// ban-only champions are listed and unclassified rows contribute none.
func Normalize(rows []model.Row) (model.UniqueValues, model.DatasetStats) {
	champions := make(map[string]struct{})
	players := make(map[string]struct{})
	teams := make(map[string]struct{})
	leagues := make(map[string]struct{})
	patches := make(map[string]struct{})
	games := make(map[string]struct{})

	add := func(set map[string]struct{}, v string) {
		if v != "" {
			set[v] = struct{}{}
		}
	}

	for _, r := range rows {
		add(games, r.GameID())
		switch Classify(r) {
		case model.RowPlayer:
			add(champions, r.Champion())
		case model.RowTeam:
			for i := 1; i <= model.MaxTeamPicks; i++ {
				add(champions, r.Pick(i))
				add(champions, r.Ban(i))
			}
		}
		add(players, r.Str("playername"))
		add(teams, r.Str("teamname"))
		add(leagues, r.Str("league"))
		add(patches, r.Str("patch"))
	}

	uv := model.UniqueValues{
		Champions: sortedKeys(champions),
		Players:   sortedKeys(players),
		Teams:     sortedKeys(teams),
		Leagues:   sortedKeys(leagues),
		Patches:   sortedKeys(patches),
	}
	return uv, model.DatasetStats{
		TotalGames:     len(games),
		TotalChampions: len(uv.Champions),
		TotalPlayers:   len(uv.Players),
		TotalTeams:     len(uv.Teams),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
