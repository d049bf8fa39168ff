package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-lol-draftstats/internal/aggregator"
	"github.com/pable/go-lol-draftstats/internal/model"
)

// Kinds stored in unique_values.kind.
const (
	kindChampion = "champion"
	kindPlayer   = "player"
	kindTeam     = "team"
	kindLeague   = "league"
	kindPatch    = "patch"
)

// SnapshotExists returns true if a snapshot of the dataset with the given hash is stored.
func (db *DB) SnapshotExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM snapshots WHERE dataset_hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindSnapshotByHash returns the newest snapshot header for a dataset hash, or nil.
func (db *DB) FindSnapshotByHash(hash string) (*model.Snapshot, error) {
	row := db.conn.QueryRow(`
		SELECT `+snapshotColumns+`
		FROM snapshots WHERE dataset_hash = ?
		ORDER BY created_at DESC LIMIT 1`, hash)
	s, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// InsertSnapshot stores a snapshot and all of its counters in one transaction.
// Uses INSERT OR REPLACE so re-inserting the same id is idempotent.
func (db *DB) InsertSnapshot(snap model.Snapshot) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res := snap.Result
	// Replacing a snapshot must not leave stale child rows behind.
	for _, table := range childTables {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE snapshot_id = ?", snap.ID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO snapshots(id, dataset_hash, source, created_at,
			games_grouped, eligible_games,
			total_games, total_champions, total_players, total_teams)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.DatasetHash, snap.Source, snap.CreatedAt,
		res.GamesGrouped, res.EligibleGames,
		res.Stats.TotalGames, res.Stats.TotalChampions, res.Stats.TotalPlayers, res.Stats.TotalTeams,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	if err := insertChampions(tx, snap.ID, res.Champions); err != nil {
		return err
	}
	if err := insertMatchups(tx, snap.ID, res.Matchups); err != nil {
		return err
	}
	if err := insertDuos(tx, snap.ID, res.Duos); err != nil {
		return err
	}
	if err := insertUniqueValues(tx, snap.ID, res.UniqueValues); err != nil {
		return err
	}
	return tx.Commit()
}

var childTables = []string{
	"champion_totals", "champion_positions", "champion_pairings",
	"lane_matchups", "duos", "unique_values",
}

func insertChampions(tx *sql.Tx, id string, champions []model.ChampionStat) error {
	totals, err := tx.Prepare(`
		INSERT OR REPLACE INTO champion_totals(
			snapshot_id, ord, champion, picks, wins, losses,
			kills, deaths, assists, games_played, damage_share, gold_share,
			lane_matchups, blind_matchups, counter_matchups
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer totals.Close()

	positions, err := tx.Prepare(`
		INSERT OR REPLACE INTO champion_positions(snapshot_id, champion, ord, position, games)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer positions.Close()

	pairings, err := tx.Prepare(`
		INSERT OR REPLACE INTO champion_pairings(snapshot_id, champion, ord, ally, games)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer pairings.Close()

	for i, c := range champions {
		_, err = totals.Exec(
			id, i, c.Name, c.Picks, c.Wins, c.Losses,
			c.Kills, c.Deaths, c.Assists, c.TotalGamesPlayed, c.DamageShare, c.GoldShare,
			c.TotalLaneMatchups, c.BlindPickMatchups, c.CounterPickMatchups,
		)
		if err != nil {
			return fmt.Errorf("insert champion_totals for %s: %w", c.Name, err)
		}
		for j, p := range c.Positions {
			if _, err := positions.Exec(id, c.Name, j, p.Position, p.Count); err != nil {
				return fmt.Errorf("insert champion_positions for %s: %w", c.Name, err)
			}
		}
		for j, p := range c.Pairings {
			if _, err := pairings.Exec(id, c.Name, j, p.Name, p.Count); err != nil {
				return fmt.Errorf("insert champion_pairings for %s: %w", c.Name, err)
			}
		}
	}
	return nil
}

func insertMatchups(tx *sql.Tx, id string, ms []model.LaneMatchup) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO lane_matchups(snapshot_id, champion, opponent, position, games, wins)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range ms {
		if _, err := stmt.Exec(id, m.Champion, m.Opponent, m.Position, m.Games, m.Wins); err != nil {
			return fmt.Errorf("insert lane_matchups: %w", err)
		}
	}
	return nil
}

func insertDuos(tx *sql.Tx, id string, ds []model.Duo) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO duos(snapshot_id, bot, support, games, wins)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, d := range ds {
		if _, err := stmt.Exec(id, d.Bot, d.Support, d.Games, d.Wins); err != nil {
			return fmt.Errorf("insert duos: %w", err)
		}
	}
	return nil
}

func insertUniqueValues(tx *sql.Tx, id string, uv model.UniqueValues) error {
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO unique_values(snapshot_id, kind, value) VALUES (?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	groups := []struct {
		kind   string
		values []string
	}{
		{kindChampion, uv.Champions},
		{kindPlayer, uv.Players},
		{kindTeam, uv.Teams},
		{kindLeague, uv.Leagues},
		{kindPatch, uv.Patches},
	}
	for _, g := range groups {
		for _, v := range g.values {
			if _, err := stmt.Exec(id, g.kind, v); err != nil {
				return fmt.Errorf("insert unique_values: %w", err)
			}
		}
	}
	return nil
}

const snapshotColumns = `id, dataset_hash, source, created_at, games_grouped, eligible_games,
		total_games, total_champions, total_players, total_teams`

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*model.Snapshot, error) {
	var s model.Snapshot
	r := &s.Result
	err := row.Scan(&s.ID, &s.DatasetHash, &s.Source, &s.CreatedAt,
		&r.GamesGrouped, &r.EligibleGames,
		&r.Stats.TotalGames, &r.Stats.TotalChampions, &r.Stats.TotalPlayers, &r.Stats.TotalTeams)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSnapshots returns snapshot headers, newest first. Champion data is not loaded.
func (db *DB) ListSnapshots() ([]model.Snapshot, error) {
	rows, err := db.conn.Query(`SELECT ` + snapshotColumns + ` FROM snapshots ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// GetSnapshotByPrefix finds the newest snapshot whose id starts with prefix
// and loads it fully. Returns nil, nil when nothing matches.
func (db *DB) GetSnapshotByPrefix(prefix string) (*model.Snapshot, error) {
	var id string
	err := db.conn.QueryRow(`
		SELECT id FROM snapshots WHERE id LIKE ?
		ORDER BY created_at DESC LIMIT 1`, prefix+"%").Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return db.GetSnapshot(id)
}

// GetSnapshot loads a snapshot by exact id. Rates are recomputed from the
// stored counters. Returns nil, nil when the id is unknown.
func (db *DB) GetSnapshot(id string) (*model.Snapshot, error) {
	s, err := scanSnapshot(db.conn.QueryRow(`SELECT `+snapshotColumns+` FROM snapshots WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	totals, err := db.getChampionTotals(id)
	if err != nil {
		return nil, err
	}
	s.Result.Champions = make([]model.ChampionStat, 0, len(totals))
	for _, t := range totals {
		s.Result.Champions = append(s.Result.Champions, aggregator.Finalize(t, s.Result.EligibleGames))
	}

	if s.Result.Matchups, err = db.getMatchups(id); err != nil {
		return nil, err
	}
	if s.Result.Duos, err = db.getDuos(id); err != nil {
		return nil, err
	}
	if s.Result.UniqueValues, err = db.getUniqueValues(id); err != nil {
		return nil, err
	}
	return s, nil
}

func (db *DB) getChampionTotals(id string) ([]*model.ChampionTotals, error) {
	rows, err := db.conn.Query(`
		SELECT champion, picks, wins, losses, kills, deaths, assists, games_played,
		       damage_share, gold_share, lane_matchups, blind_matchups, counter_matchups
		FROM champion_totals WHERE snapshot_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ChampionTotals
	byName := make(map[string]*model.ChampionTotals)
	for rows.Next() {
		t := model.NewChampionTotals("")
		if err := rows.Scan(&t.Name, &t.Picks, &t.Wins, &t.Losses,
			&t.Kills, &t.Deaths, &t.Assists, &t.TotalGamesPlayed,
			&t.DamageShare, &t.GoldShare,
			&t.TotalLaneMatchups, &t.BlindPickMatchups, &t.CounterPickMatchups); err != nil {
			return nil, err
		}
		out = append(out, t)
		byName[t.Name] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := db.fillTally(id, "champion_positions", "position", byName, func(t *model.ChampionTotals) *model.Tally { return t.Positions }); err != nil {
		return nil, err
	}
	if err := db.fillTally(id, "champion_pairings", "ally", byName, func(t *model.ChampionTotals) *model.Tally { return t.Pairings }); err != nil {
		return nil, err
	}
	return out, nil
}

// fillTally replays stored histogram rows into each champion's tally in
// stored order.
func (db *DB) fillTally(id, table, keyCol string, byName map[string]*model.ChampionTotals, pick func(*model.ChampionTotals) *model.Tally) error {
	rows, err := db.conn.Query(`
		SELECT champion, `+keyCol+`, games FROM `+table+`
		WHERE snapshot_id = ? ORDER BY champion, ord`, id)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var champion, key string
		var games int
		if err := rows.Scan(&champion, &key, &games); err != nil {
			return err
		}
		t, ok := byName[champion]
		if !ok {
			continue
		}
		pick(t).Add(key, games)
	}
	return rows.Err()
}

func (db *DB) getMatchups(id string) ([]model.LaneMatchup, error) {
	rows, err := db.conn.Query(`
		SELECT champion, opponent, position, games, wins
		FROM lane_matchups WHERE snapshot_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LaneMatchup
	for rows.Next() {
		var m model.LaneMatchup
		if err := rows.Scan(&m.Champion, &m.Opponent, &m.Position, &m.Games, &m.Wins); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	aggregator.SortMatchups(out)
	return out, nil
}

func (db *DB) getDuos(id string) ([]model.Duo, error) {
	rows, err := db.conn.Query(`
		SELECT bot, support, games, wins FROM duos WHERE snapshot_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Duo
	for rows.Next() {
		var d model.Duo
		if err := rows.Scan(&d.Bot, &d.Support, &d.Games, &d.Wins); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	aggregator.SortDuos(out)
	return out, nil
}

func (db *DB) getUniqueValues(id string) (model.UniqueValues, error) {
	var uv model.UniqueValues
	rows, err := db.conn.Query(`
		SELECT kind, value FROM unique_values WHERE snapshot_id = ? ORDER BY kind, value`, id)
	if err != nil {
		return uv, err
	}
	defer rows.Close()

	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return uv, err
		}
		switch kind {
		case kindChampion:
			uv.Champions = append(uv.Champions, value)
		case kindPlayer:
			uv.Players = append(uv.Players, value)
		case kindTeam:
			uv.Teams = append(uv.Teams, value)
		case kindLeague:
			uv.Leagues = append(uv.Leagues, value)
		case kindPatch:
			uv.Patches = append(uv.Patches, value)
		}
	}
	return uv, rows.Err()
}

// DeleteSnapshot removes a snapshot and its child rows. Reports whether a
// snapshot was deleted.
func (db *DB) DeleteSnapshot(id string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	for _, table := range childTables {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE snapshot_id = ?", id); err != nil {
			return false, fmt.Errorf("delete %s: %w", table, err)
		}
	}
	res, err := tx.Exec("DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

// QueryRaw runs an arbitrary query and returns every value formatted as text.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			rec[i] = formatValue(v)
		}
		out = append(out, rec)
	}
	return cols, out, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return fmt.Sprintf("%.4g", x)
	default:
		return fmt.Sprint(x)
	}
}

// Overview summarizes the whole database.
type Overview struct {
	Snapshots      int
	Datasets       int // distinct dataset hashes
	TotalGames     int
	EligibleGames  int
	Champions      int // distinct champion names across snapshots
	Matchups       int
	Duos           int
	Newest, Oldest string
}

// Overview returns database-wide counts.
func (db *DB) Overview() (Overview, error) {
	var o Overview
	var newest, oldest sql.NullString
	err := db.conn.QueryRow(`
		SELECT COUNT(1), COUNT(DISTINCT dataset_hash),
		       COALESCE(SUM(total_games), 0), COALESCE(SUM(eligible_games), 0),
		       MAX(created_at), MIN(created_at)
		FROM snapshots`).
		Scan(&o.Snapshots, &o.Datasets, &o.TotalGames, &o.EligibleGames, &newest, &oldest)
	if err != nil {
		return o, err
	}
	o.Newest, o.Oldest = newest.String, oldest.String

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(DISTINCT champion) FROM champion_totals", &o.Champions},
		{"SELECT COUNT(1) FROM lane_matchups", &o.Matchups},
		{"SELECT COUNT(1) FROM duos", &o.Duos},
	}
	for _, c := range counts {
		if err := db.conn.QueryRow(c.query).Scan(c.dest); err != nil {
			return o, err
		}
	}
	return o, nil
}
