package aggregator

import "github.com/pable/go-lol-draftstats/internal/model"

// Classify decides whether r is a player participation row, a team row, or
// neither. Rows without a gameid cannot be grouped and are unclassified.
func Classify(r model.Row) model.RowKind {
	if !r.Has("gameid") {
		return model.RowUnclassified
	}
	id := r.ParticipantID()
	switch {
	case id >= 1 && id <= 10 && r.Has("playername") && r.Has("champion"):
		return model.RowPlayer
	case (id == model.BlueTeamID || id == model.RedTeamID) && r.Has("teamname"):
		return model.RowTeam
	}
	return model.RowUnclassified
}
