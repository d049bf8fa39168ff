package aggregator

import (
	"testing"

	"github.com/pable/go-lol-draftstats/internal/model"
)

func totals(name string, games, wins int, k, d, a float64) *model.ChampionTotals {
	t := model.NewChampionTotals(name)
	t.Picks = games
	t.TotalGamesPlayed = games
	t.Wins = wins
	t.Losses = games - wins
	t.Kills, t.Deaths, t.Assists = k, d, a
	return t
}

func TestFinalize_KDA(t *testing.T) {
	cases := []struct {
		name    string
		k, d, a float64
		want    string
		perfect bool
	}{
		{"perfect", 5, 0, 2, "Perfect", true},
		{"assists only perfect", 0, 0, 4, "Perfect", true},
		{"nothing", 0, 0, 0, "0.00", false},
		{"ratio", 6, 4, 4, "2.50", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Finalize(totals("X", 2, 1, tc.k, tc.d, tc.a), 2)
			if s.KDA.IsPerfect() != tc.perfect {
				t.Errorf("IsPerfect: want %v", tc.perfect)
			}
			if s.KDAFormatted != tc.want {
				t.Errorf("KDAFormatted: want %q, got %q", tc.want, s.KDAFormatted)
			}
		})
	}
}

func TestFinalize_Rates(t *testing.T) {
	tt := totals("X", 4, 3, 8, 4, 12)
	tt.DamageShare = 1.0
	tt.GoldShare = 0.8
	tt.TotalLaneMatchups = 4
	tt.BlindPickMatchups = 1
	tt.CounterPickMatchups = 3

	s := Finalize(tt, 8)
	if s.WinRate != 75 || s.WinRateFormatted != "75.0" {
		t.Errorf("WinRate: got %f %q", s.WinRate, s.WinRateFormatted)
	}
	if s.AvgKills != 2 || s.AvgDeaths != 1 || s.AvgAssists != 3 {
		t.Errorf("averages: %f %f %f", s.AvgKills, s.AvgDeaths, s.AvgAssists)
	}
	if s.AvgDamageShareFormatted != "25.0" || s.AvgGoldShareFormatted != "20.0" {
		t.Errorf("shares: %q %q", s.AvgDamageShareFormatted, s.AvgGoldShareFormatted)
	}
	if s.PickRate != 50 {
		t.Errorf("PickRate: want 50, got %f", s.PickRate)
	}
	if s.BlindPickRate != 25 || s.CounterPickRate != 75 {
		t.Errorf("blind/counter: %f %f", s.BlindPickRate, s.CounterPickRate)
	}
}

func TestFinalize_ZeroDenominators(t *testing.T) {
	s := Finalize(model.NewChampionTotals("X"), 0)
	if s.WinRate != 0 || s.PickRate != 0 || s.BlindPickRate != 0 || s.CounterPickRate != 0 || s.AvgKills != 0 {
		t.Errorf("expected zero rates, got %+v", s)
	}
	if s.MainPosition != model.PositionNone {
		t.Errorf("MainPosition: want N/A, got %s", s.MainPosition)
	}
	if s.Pairings == nil || len(s.Pairings) != 0 {
		t.Errorf("Pairings: want empty non-nil slice, got %v", s.Pairings)
	}
}

func TestFinalize_MainPosition(t *testing.T) {
	cases := []struct {
		name      string
		positions []string
		want      string
	}{
		{"plurality", []string{"mid", "top", "mid"}, "mid"},
		{"tie keeps first seen", []string{"jng", "sup", "sup", "jng"}, "jng"},
		{"non-standard ignored", []string{"support", "support", "bot"}, "bot"},
		{"only non-standard", []string{"support", "unknown"}, model.PositionNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tt := totals("X", len(tc.positions), 0, 0, 0, 0)
			for _, p := range tc.positions {
				tt.Positions.Add(p, 1)
			}
			if got := Finalize(tt, 1).MainPosition; got != tc.want {
				t.Errorf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSortChampions_PerfectFirst(t *testing.T) {
	stats := []model.ChampionStat{
		{Name: "A", KDA: model.Finite(9.5)},
		{Name: "B", KDA: model.Perfect()},
		{Name: "C", KDA: model.Finite(12)},
	}
	if err := SortChampions(stats, "kda"); err != nil {
		t.Fatalf("SortChampions: %v", err)
	}
	got := []string{stats[0].Name, stats[1].Name, stats[2].Name}
	if got[0] != "B" || got[1] != "C" || got[2] != "A" {
		t.Errorf("want [B C A], got %v", got)
	}
	if err := SortChampions(stats, "bogus"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestFinalize_HalvesRoundUp(t *testing.T) {
	cases := []struct {
		name    string
		games   int
		wins    int
		k, d, a float64
		winRate string
		kda     string
	}{
		{"one win in sixteen", 16, 1, 5, 8, 4, "6.3", "1.13"},
		{"three in eight", 8, 3, 1, 8, 0, "37.5", "0.13"},
		{"no halves", 4, 3, 8, 4, 12, "75.0", "5.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Finalize(totals("X", tc.games, tc.wins, tc.k, tc.d, tc.a), tc.games)
			if s.WinRateFormatted != tc.winRate {
				t.Errorf("WinRateFormatted: want %q, got %q (%v)", tc.winRate, s.WinRateFormatted, s.WinRate)
			}
			if s.KDAFormatted != tc.kda {
				t.Errorf("KDAFormatted: want %q, got %q", tc.kda, s.KDAFormatted)
			}
		})
	}
}
