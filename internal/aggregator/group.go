package aggregator

import (
	"github.com/pable/go-lol-draftstats/internal/logging"
	"github.com/pable/go-lol-draftstats/internal/model"
)

// Grouping is the output of GroupGames.
type Grouping struct {
	Games   []*model.Game // in first-seen gameid order
	Players int           // rows classified as players
	Teams   int           // rows classified as teams
	Dropped int           // unclassified rows
}

// GroupGames classifies rows and bundles them per gameid. A team row is
// attached as Blue only for side "Blue" with id 100 and as Red only for side
// "Red" with id 200; any other combination is ignored for that game. No cap
// is placed on player rows here, eligibility is checked later.
func GroupGames(rows []model.Row) Grouping {
	log := logging.Logger()
	var g Grouping
	byID := make(map[string]*model.Game)

	gameFor := func(id string) *model.Game {
		game, ok := byID[id]
		if !ok {
			game = &model.Game{ID: id}
			byID[id] = game
			g.Games = append(g.Games, game)
		}
		return game
	}

	for _, r := range rows {
		switch Classify(r) {
		case model.RowPlayer:
			g.Players++
			game := gameFor(r.GameID())
			game.Players = append(game.Players, r)
		case model.RowTeam:
			g.Teams++
			game := gameFor(r.GameID())
			id := r.ParticipantID()
			switch side := r.Side(); {
			case side == model.SideBlue && id == model.BlueTeamID:
				if game.BlueTeam != nil {
					log.Debugf("game %s: duplicate blue team row ignored", game.ID)
					continue
				}
				game.BlueTeam = r
			case side == model.SideRed && id == model.RedTeamID:
				if game.RedTeam != nil {
					log.Debugf("game %s: duplicate red team row ignored", game.ID)
					continue
				}
				game.RedTeam = r
			default:
				log.Debugf("game %s: team row with side %q and participantid %v ignored",
					game.ID, r.Str("side"), id)
			}
		default:
			g.Dropped++
		}
	}
	return g
}
