package aggregator

import (
	"testing"

	"github.com/pable/go-lol-draftstats/internal/model"
)

func TestGlobalPickOrder_Table(t *testing.T) {
	want := map[model.Side][]int{
		model.SideBlue: {1, 4, 5, 8, 9},
		model.SideRed:  {2, 3, 6, 7, 10},
	}
	for side, orders := range want {
		for i, w := range orders {
			got, ok := GlobalPickOrder(side, i+1)
			if !ok || got != w {
				t.Errorf("%s pick %d: want %d, got %d (ok=%v)", side, i+1, w, got, ok)
			}
		}
	}
}

func TestGlobalPickOrder_Bijection(t *testing.T) {
	seen := make(map[int]bool)
	for _, side := range []model.Side{model.SideBlue, model.SideRed} {
		for i := 1; i <= 5; i++ {
			g, ok := GlobalPickOrder(side, i)
			if !ok {
				t.Fatalf("%s %d: no order", side, i)
			}
			if g < 1 || g > 10 {
				t.Errorf("%s %d: order %d out of range", side, i, g)
			}
			if seen[g] {
				t.Errorf("order %d assigned twice", g)
			}
			seen[g] = true
		}
	}
	if len(seen) != 10 {
		t.Errorf("want 10 distinct orders, got %d", len(seen))
	}
}

func TestGlobalPickOrder_Invalid(t *testing.T) {
	cases := []struct {
		side model.Side
		idx  int
	}{
		{model.SideBlue, 0},
		{model.SideBlue, 6},
		{model.SideRed, -1},
		{model.SideUnknown, 1},
	}
	for _, tc := range cases {
		if _, ok := GlobalPickOrder(tc.side, tc.idx); ok {
			t.Errorf("%s %d: expected no order", tc.side, tc.idx)
		}
	}
}

func TestTeamPickIndex(t *testing.T) {
	team := model.Row{"pick1": "Ahri", "pick2": "Lee Sin", "pick3": "Ahri", "pick5": "Nami"}

	if idx, ok := TeamPickIndex(team, "Ahri"); !ok || idx != 1 {
		t.Errorf("Ahri: want first matching slot 1, got %d (ok=%v)", idx, ok)
	}
	if idx, ok := TeamPickIndex(team, "Nami"); !ok || idx != 5 {
		t.Errorf("Nami: want 5, got %d", idx)
	}
	if _, ok := TeamPickIndex(team, "Jinx"); ok {
		t.Error("Jinx is not picked, want no index")
	}
	if _, ok := TeamPickIndex(nil, "Ahri"); ok {
		t.Error("nil team row should yield no index")
	}
	if _, ok := TeamPickIndex(team, ""); ok {
		t.Error("empty champion should yield no index")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		row  model.Row
		want model.RowKind
	}{
		{"player", model.Row{"gameid": "g", "participantid": 3.0, "playername": "Faker", "champion": "Ahri"}, model.RowPlayer},
		{"player string id", model.Row{"gameid": "g", "participantid": "10", "playername": "x", "champion": "Ahri"}, model.RowPlayer},
		{"player no champion", model.Row{"gameid": "g", "participantid": 3.0, "playername": "Faker"}, model.RowUnclassified},
		{"player id 11", model.Row{"gameid": "g", "participantid": 11.0, "playername": "x", "champion": "Ahri"}, model.RowUnclassified},
		{"blue team", model.Row{"gameid": "g", "participantid": 100.0, "teamname": "T1"}, model.RowTeam},
		{"red team", model.Row{"gameid": "g", "participantid": "200", "teamname": "GEN"}, model.RowTeam},
		{"team no name", model.Row{"gameid": "g", "participantid": 100.0}, model.RowUnclassified},
		{"no gameid", model.Row{"participantid": 1.0, "playername": "x", "champion": "Ahri"}, model.RowUnclassified},
		{"garbage id", model.Row{"gameid": "g", "participantid": "abc", "playername": "x", "champion": "Ahri"}, model.RowUnclassified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.row); got != tc.want {
				t.Errorf("want %s, got %s", tc.want, got)
			}
		})
	}
}
