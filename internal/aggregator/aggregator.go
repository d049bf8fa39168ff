// Package aggregator derives per-champion draft statistics from player and
// team rows.
package aggregator

import (
	"fmt"

	"github.com/pable/go-lol-draftstats/internal/logging"
	"github.com/pable/go-lol-draftstats/internal/model"
)

// Aggregate runs the full pipeline over rows: validation, champion
// discovery, grouping, accumulation and finalization. It fails only for
// dataset-level problems; bad rows and incomplete games degrade silently.
func Aggregate(rows []model.Row) (*model.Result, error) {
	if err := Validate(rows); err != nil {
		return nil, err
	}

	uv, stats := Normalize(rows)

	grouping := GroupGames(rows)
	if grouping.Players+grouping.Teams == 0 {
		return nil, ErrNoRecognizedRows
	}

	acc, err := Fold(NewAccumulator(uv.Champions), grouping.Games)
	if err != nil {
		return nil, fmt.Errorf("accumulate: %w", err)
	}

	logging.Logger().Infof("aggregated %d games (%d eligible) from %d player and %d team rows, %d rows dropped, %d skipped",
		acc.Games(), acc.EligibleGames(), grouping.Players, grouping.Teams, grouping.Dropped, acc.Skipped())

	return &model.Result{
		Champions:     FinalizeAll(acc),
		Matchups:      acc.Matchups(),
		Duos:          acc.Duos(),
		UniqueValues:  uv,
		Stats:         stats,
		GamesGrouped:  acc.Games(),
		EligibleGames: acc.EligibleGames(),
	}, nil
}
