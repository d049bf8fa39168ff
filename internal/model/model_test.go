package model

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"
)

func TestRowNum(t *testing.T) {
	r := Row{
		"f":     3.5,
		"i":     7,
		"s":     " 12 ",
		"bad":   "twelve",
		"nan":   math.NaN(),
		"snan":  "NaN",
		"inf":   "Inf",
		"empty": "",
		"num":   json.Number("42"),
		"t":     true,
	}
	cases := map[string]float64{
		"f": 3.5, "i": 7, "s": 12, "bad": 0, "nan": 0, "snan": 0,
		"inf": 0, "empty": 0, "num": 42, "t": 1, "missing": 0,
	}
	for k, want := range cases {
		if got := r.Num(k); got != want {
			t.Errorf("Num(%q): want %v, got %v", k, want, got)
		}
	}
}

func TestRowStr(t *testing.T) {
	r := Row{"id": 100.0, "big": json.Number("1234567890123456789"), "name": "Ahri"}
	if r.Str("id") != "100" {
		t.Errorf("id: got %q", r.Str("id"))
	}
	if r.Str("big") != "1234567890123456789" {
		t.Errorf("big: got %q", r.Str("big"))
	}
	if r.Str("name") != "Ahri" || r.Str("missing") != "" {
		t.Error("string lookups wrong")
	}
}

func TestRowAccessors(t *testing.T) {
	r := Row{"side": "blue", "position": " MID ", "result": "1", "pick2": "Ahri"}
	if r.Side() != SideUnknown {
		t.Error("side matching is case-sensitive")
	}
	if r.Position() != "mid" {
		t.Errorf("Position: got %q", r.Position())
	}
	if !r.Won() {
		t.Error("result \"1\" should be a win")
	}
	if r.Pick(2) != "Ahri" {
		t.Errorf("Pick(2): got %q", r.Pick(2))
	}
	if (Row{}).Position() != PositionUnknown {
		t.Error("missing position should be unknown")
	}
}

func TestKDACompare(t *testing.T) {
	if Perfect().Compare(Finite(1e9)) != 1 {
		t.Error("Perfect should rank above any finite KDA")
	}
	if Finite(2).Compare(Perfect()) != -1 {
		t.Error("finite should rank below Perfect")
	}
	if Perfect().Compare(Perfect()) != 0 || Finite(3).Compare(Finite(3)) != 0 {
		t.Error("equal KDAs should compare 0")
	}
	if Finite(1).Compare(Finite(2)) != -1 {
		t.Error("1 < 2")
	}
}

func TestKDAJSON(t *testing.T) {
	type wrap struct {
		KDA KDA `json:"kda"`
	}
	b, err := json.Marshal([]wrap{{Perfect()}, {Finite(2.5)}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `[{"kda":"Perfect"},{"kda":2.5}]` {
		t.Errorf("unexpected JSON %s", b)
	}

	var back []wrap
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back[0].KDA.IsPerfect() {
		t.Error("first KDA should decode as Perfect")
	}
	if v, ok := back[1].KDA.Value(); !ok || v != 2.5 {
		t.Errorf("second KDA: got %v %v", v, ok)
	}
	if err := json.Unmarshal([]byte(`{"kda":"great"}`), &wrap{}); err == nil {
		t.Error("expected error for unknown KDA label")
	}
}

func TestTallyOrder(t *testing.T) {
	tl := NewTally()
	tl.Add("sup", 1)
	tl.Add("top", 2)
	tl.Add("sup", 1)

	if !reflect.DeepEqual(tl.Keys(), []string{"sup", "top"}) {
		t.Errorf("keys: %v", tl.Keys())
	}
	if tl.Get("sup") != 2 || tl.Get("top") != 2 || tl.Get("mid") != 0 {
		t.Error("counts wrong")
	}
	if tl.Len() != 2 {
		t.Errorf("Len: want 2, got %d", tl.Len())
	}
}

func TestGameEligible(t *testing.T) {
	g := &Game{BlueTeam: Row{}, RedTeam: Row{}}
	for i := 0; i < 9; i++ {
		g.Players = append(g.Players, Row{})
	}
	if g.Eligible() {
		t.Error("nine players is not eligible")
	}
	g.Players = append(g.Players, Row{})
	if !g.Eligible() {
		t.Error("ten players with both teams is eligible")
	}
	g.RedTeam = nil
	if g.Eligible() {
		t.Error("missing red team is not eligible")
	}
}

func TestNormalizePositionFilter(t *testing.T) {
	cases := map[string]string{"": "", "  ": "", "MID": "mid", " Sup ": "sup"}
	for in, want := range cases {
		if got := NormalizePositionFilter(in); got != want {
			t.Errorf("NormalizePositionFilter(%q) = %q, want %q", in, got, want)
		}
	}
	if NormalizePosition("") != PositionUnknown {
		t.Error("empty row position should be unknown")
	}
}

func TestFormatFixed(t *testing.T) {
	cases := []struct {
		v      float64
		places int
		want   string
	}{
		{6.25, 1, "6.3"},
		{1.125, 2, "1.13"},
		{0.05, 1, "0.1"},
		{2.5, 0, "3"},
		{-6.25, 1, "-6.3"},
		{-0.01, 1, "0.0"},
		{12.34, 1, "12.3"},
		{0, 2, "0.00"},
	}
	for _, tc := range cases {
		if got := FormatFixed(tc.v, tc.places); got != tc.want {
			t.Errorf("FormatFixed(%v, %d): want %q, got %q", tc.v, tc.places, tc.want, got)
		}
	}
	if got := Finite(1.125).String(); got != "1.13" {
		t.Errorf("Finite(1.125).String(): want 1.13, got %q", got)
	}
}
