package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pable/go-lol-draftstats/internal/model"
)

func TestWilsonCI(t *testing.T) {
	lo, hi := wilsonCI(0, 0)
	if lo != 0 || hi != 1 {
		t.Errorf("empty sample: got (%v, %v), want (0, 1)", lo, hi)
	}

	lo, hi = wilsonCI(5, 10)
	if lo >= 0.5 || hi <= 0.5 {
		t.Errorf("interval (%v, %v) should contain 0.5", lo, hi)
	}
	if lo < 0 || hi > 1 {
		t.Errorf("interval (%v, %v) out of [0, 1]", lo, hi)
	}

	lo, hi = wilsonCI(10, 10)
	if hi < 0.999 || lo <= 0.5 {
		t.Errorf("all wins: got (%v, %v)", lo, hi)
	}
}

func TestSampleFlag(t *testing.T) {
	cases := map[int]string{0: "VERY_LOW", 4: "VERY_LOW", 5: "LOW", 9: "LOW", 10: "OK", 200: "OK"}
	for n, want := range cases {
		if got := sampleFlag(n); got != want {
			t.Errorf("sampleFlag(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID long = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID short = %q", got)
	}
}

func TestPrintChampionTable(t *testing.T) {
	stats := []model.ChampionStat{
		{Name: "Ahri", MainPosition: "mid", Picks: 3, Wins: 2, Losses: 1, KDAFormatted: "Perfect",
			WinRateFormatted: "66.7", TotalLaneMatchups: 0, BlindPickRateFormatted: "0.0"},
		{Name: "Orianna", MainPosition: "mid", Picks: 1, TotalLaneMatchups: 1, BlindPickRateFormatted: "100.0"},
	}
	var buf bytes.Buffer
	PrintChampionTable(&buf, stats, "Ahri")
	out := buf.String()

	for _, want := range []string{"CHAMPION", "Ahri", "Orianna", "Perfect", "66.7", "100.0", ">"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestPrintTrendTable_MissingPatch(t *testing.T) {
	var buf bytes.Buffer
	PrintTrendTable(&buf, "Ahri", []TrendPoint{
		{Patch: "14.1", EligibleGames: 4, Stat: &model.ChampionStat{Name: "Ahri", Picks: 2, PickRateFormatted: "50.0"}},
		{Patch: "14.2", EligibleGames: 3},
	})
	out := buf.String()
	if !strings.Contains(out, "Ahri by patch") || !strings.Contains(out, "14.2") || !strings.Contains(out, "50.0") {
		t.Errorf("unexpected trend output:\n%s", out)
	}
}

func TestPrintMatchupTable(t *testing.T) {
	var buf bytes.Buffer
	PrintMatchupTable(&buf, []model.LaneMatchup{
		{Champion: "Ahri", Opponent: "Syndra", Position: "mid", Games: 4, Wins: 3},
	})
	out := buf.String()
	for _, want := range []string{"Syndra", "75.0", "VERY_LOW"} {
		if !strings.Contains(out, want) {
			t.Errorf("matchup table missing %q:\n%s", want, out)
		}
	}
}
