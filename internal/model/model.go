package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Side identifies which half of the draft a team or player belongs to.
type Side int

const (
	SideUnknown Side = 0
	SideBlue    Side = 1
	SideRed     Side = 2
)

func (s Side) String() string {
	switch s {
	case SideBlue:
		return "Blue"
	case SideRed:
		return "Red"
	default:
		return "?"
	}
}

// ParseSide matches the exact, case-sensitive labels "Blue" and "Red".
func ParseSide(s string) Side {
	switch s {
	case "Blue":
		return SideBlue
	case "Red":
		return SideRed
	default:
		return SideUnknown
	}
}

// Participant ids for the two team aggregate rows.
const (
	BlueTeamID = 100
	RedTeamID  = 200
)

// Standard position labels, in lane order.
const (
	PositionTop     = "top"
	PositionJungle  = "jng"
	PositionMid     = "mid"
	PositionBot     = "bot"
	PositionSupport = "sup"

	PositionUnknown = "unknown"
	PositionNone    = "N/A"
)

// StandardPositions lists the five lanes in the order they are evaluated.
var StandardPositions = []string{PositionTop, PositionJungle, PositionMid, PositionBot, PositionSupport}

// IsStandardPosition reports whether p is one of the five lane labels.
func IsStandardPosition(p string) bool {
	switch p {
	case PositionTop, PositionJungle, PositionMid, PositionBot, PositionSupport:
		return true
	}
	return false
}

// NormalizePosition lower-cases a raw position cell; empty becomes "unknown".
func NormalizePosition(raw string) string {
	p := strings.ToLower(strings.TrimSpace(raw))
	if p == "" {
		return PositionUnknown
	}
	return p
}

// NormalizePositionFilter is NormalizePosition for user-supplied filters,
// where empty means "any" and stays empty.
func NormalizePositionFilter(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return NormalizePosition(raw)
}

// MaxTeamPicks is the number of pickN/banN columns on a team row.
const MaxTeamPicks = 5

// RowKind is the classification of a raw row.
type RowKind int

const (
	RowUnclassified RowKind = iota
	RowPlayer
	RowTeam
)

func (k RowKind) String() string {
	switch k {
	case RowPlayer:
		return "player"
	case RowTeam:
		return "team"
	default:
		return "unclassified"
	}
}

// ---- Raw rows ----

// Row is one input record with lower-cased keys. Values are strings or
// numbers; accessors coerce defensively.
type Row map[string]any

// Str returns the value at key as a string, or "" when absent.
func (r Row) Str(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// Num returns the value at key as a float64. Missing, unparsable, NaN and
// infinite values all coerce to 0.
func (r Row) Num(key string) float64 {
	v, ok := r[key]
	if !ok || v == nil {
		return 0
	}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case bool:
		if x {
			f = 1
		}
	case json.Number:
		parsed, err := strconv.ParseFloat(x.String(), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Has reports whether key is present with a non-empty value.
func (r Row) Has(key string) bool {
	return r.Str(key) != ""
}

// GameID returns the row's game identifier.
func (r Row) GameID() string { return r.Str("gameid") }

// ParticipantID returns the row's participant id, 0 when unparsable.
func (r Row) ParticipantID() float64 { return r.Num("participantid") }

// Side returns the parsed side label.
func (r Row) Side() Side { return ParseSide(r.Str("side")) }

// Won reports whether result == 1.
func (r Row) Won() bool { return r.Num("result") == 1 }

// Champion returns the champion cell of a player row.
func (r Row) Champion() string { return r.Str("champion") }

// Position returns the normalized position of a player row.
func (r Row) Position() string { return NormalizePosition(r.Str("position")) }

// Pick returns the nth (1-based) pick column of a team row.
func (r Row) Pick(n int) string { return r.Str("pick" + strconv.Itoa(n)) }

// Ban returns the nth (1-based) ban column of a team row.
func (r Row) Ban(n int) string { return r.Str("ban" + strconv.Itoa(n)) }

// ---- Games ----

// Game bundles the rows sharing one gameid.
type Game struct {
	ID       string
	Players  []Row
	BlueTeam Row // nil when absent
	RedTeam  Row // nil when absent
}

// Eligible reports whether the game can be used for pick-order accounting:
// both team rows present and exactly ten players.
func (g *Game) Eligible() bool {
	return g.BlueTeam != nil && g.RedTeam != nil && len(g.Players) == 10
}

// TeamRow returns the team row for side s.
func (g *Game) TeamRow(s Side) Row {
	switch s {
	case SideBlue:
		return g.BlueTeam
	case SideRed:
		return g.RedTeam
	}
	return nil
}

// ---- Aggregated statistics ----

// ChampionTotals holds the running counters for one champion.
type ChampionTotals struct {
	Name string

	Picks            int
	Wins             int
	Losses           int
	Kills            float64
	Deaths           float64
	Assists          float64
	TotalGamesPlayed int
	DamageShare      float64 // sum of per-game fractions
	GoldShare        float64 // sum of per-game fractions

	Positions *Tally
	Pairings  *Tally

	TotalLaneMatchups   int
	BlindPickMatchups   int
	CounterPickMatchups int
}

// NewChampionTotals returns zeroed totals for name.
func NewChampionTotals(name string) *ChampionTotals {
	return &ChampionTotals{
		Name:      name,
		Positions: NewTally(),
		Pairings:  NewTally(),
	}
}

// Pairing is one ally and how many games it shared a team with the champion.
type Pairing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PositionCount is one entry of a champion's position histogram.
type PositionCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// ChampionStat is the finalized, read-only view of a champion.
type ChampionStat struct {
	Name string `json:"name"`

	Picks               int     `json:"picks"`
	Wins                int     `json:"wins"`
	Losses              int     `json:"losses"`
	Kills               float64 `json:"kills"`
	Deaths              float64 `json:"deaths"`
	Assists             float64 `json:"assists"`
	TotalGamesPlayed    int     `json:"totalGamesPlayed"`
	DamageShare         float64 `json:"damageShare"`
	GoldShare           float64 `json:"goldShare"`
	TotalLaneMatchups   int     `json:"totalLaneMatchups"`
	BlindPickMatchups   int     `json:"blindPickMatchups"`
	CounterPickMatchups int     `json:"counterPickMatchups"`

	Positions []PositionCount `json:"positions"`
	Pairings  []Pairing       `json:"pairings"`

	WinRate         float64 `json:"winRate"`
	KDA             KDA     `json:"kda"`
	AvgKills        float64 `json:"avgKills"`
	AvgDeaths       float64 `json:"avgDeaths"`
	AvgAssists      float64 `json:"avgAssists"`
	AvgDamageShare  float64 `json:"avgDamageShare"`
	AvgGoldShare    float64 `json:"avgGoldShare"`
	PickRate        float64 `json:"pickRate"`
	BlindPickRate   float64 `json:"blindPickRate"`
	CounterPickRate float64 `json:"counterPickRate"`
	MainPosition    string  `json:"mainPosition"`

	WinRateFormatted         string `json:"winRateFormatted"`
	KDAFormatted             string `json:"kdaFormatted"`
	AvgKillsFormatted        string `json:"avgKillsFormatted"`
	AvgDeathsFormatted       string `json:"avgDeathsFormatted"`
	AvgAssistsFormatted      string `json:"avgAssistsFormatted"`
	AvgDamageShareFormatted  string `json:"avgDamageShareFormatted"`
	AvgGoldShareFormatted    string `json:"avgGoldShareFormatted"`
	PickRateFormatted        string `json:"pickRateFormatted"`
	BlindPickRateFormatted   string `json:"blindPickRateFormatted"`
	CounterPickRateFormatted string `json:"counterPickRateFormatted"`
}

// PairingCount returns how many games ally shared a team with the champion.
func (c ChampionStat) PairingCount(ally string) int {
	for _, p := range c.Pairings {
		if p.Name == ally {
			return p.Count
		}
	}
	return 0
}

// PositionGames returns the number of games played in position p.
func (c ChampionStat) PositionGames(p string) int {
	for _, pc := range c.Positions {
		if pc.Position == p {
			return pc.Count
		}
	}
	return 0
}

// LaneMatchup is a head-to-head record of one champion against one opponent
// in the same lane, seen from Champion's side.
type LaneMatchup struct {
	Champion string `json:"champion"`
	Opponent string `json:"opponent"`
	Position string `json:"position"`
	Games    int    `json:"games"`
	Wins     int    `json:"wins"`
}

// WinRate returns wins/games as a percentage.
func (m LaneMatchup) WinRate() float64 {
	if m.Games == 0 {
		return 0
	}
	return float64(m.Wins) / float64(m.Games) * 100
}

// Duo is a bot/sup pairing on the same team.
type Duo struct {
	Bot     string `json:"bot"`
	Support string `json:"support"`
	Games   int    `json:"games"`
	Wins    int    `json:"wins"`
}

// WinRate returns wins/games as a percentage.
func (d Duo) WinRate() float64 {
	if d.Games == 0 {
		return 0
	}
	return float64(d.Wins) / float64(d.Games) * 100
}

// UniqueValues lists the sorted, de-duplicated labels seen in a dataset.
type UniqueValues struct {
	Champions []string `json:"champions"`
	Players   []string `json:"players"`
	Teams     []string `json:"teams"`
	Leagues   []string `json:"leagues"`
	Patches   []string `json:"patches"`
}

// DatasetStats holds distinct counts over a dataset.
type DatasetStats struct {
	TotalGames     int `json:"totalGames"`
	TotalChampions int `json:"totalChampions"`
	TotalPlayers   int `json:"totalPlayers"`
	TotalTeams     int `json:"totalTeams"`
}

// Result is the full output of one aggregation pass.
type Result struct {
	Champions     []ChampionStat `json:"champions"`
	Matchups      []LaneMatchup  `json:"matchups"`
	Duos          []Duo          `json:"duos"`
	UniqueValues  UniqueValues   `json:"uniqueValues"`
	Stats         DatasetStats   `json:"stats"`
	GamesGrouped  int            `json:"gamesGrouped"`
	EligibleGames int            `json:"eligibleGames"`
}

// Champion returns the stat for name, or nil.
func (r *Result) Champion(name string) *ChampionStat {
	for i := range r.Champions {
		if r.Champions[i].Name == name {
			return &r.Champions[i]
		}
	}
	return nil
}

// Snapshot is a stored Result plus its provenance.
type Snapshot struct {
	ID          string
	DatasetHash string
	Source      string
	CreatedAt   string // RFC 3339
	Result      Result
}
