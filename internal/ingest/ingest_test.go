package ingest

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-lol-draftstats/internal/model"
)

const sampleCSV = `GameID,ParticipantID,Side,PlayerName,TeamName,Champion,Position,Result,Kills,Pick1
g1,1,Blue,Zeus,,Jax,TOP,1,3,
g1,100,Blue,,T1,,,1,,Jax
g2,6,Red,Canyon,,"Lee Sin",jng,0,,
`

func writeFile(t *testing.T, name string, body []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want 3 rows, got %d", len(rows))
	}
	if rows[0].Str("playername") != "Zeus" || rows[0].Num("kills") != 3 {
		t.Errorf("row 0: %v", rows[0])
	}
	if _, ok := rows[0]["teamname"]; ok {
		t.Error("empty cells should be omitted")
	}
	if rows[1].Pick(1) != "Jax" || rows[1].ParticipantID() != 100 {
		t.Errorf("row 1: %v", rows[1])
	}
	if rows[2].Champion() != "Lee Sin" {
		t.Errorf("quoted champion: got %q", rows[2].Champion())
	}
}

func TestParseJSON(t *testing.T) {
	body := `[{"GameID": 9007199254740993, "ParticipantID": 1, "Champion": "Ahri"}]`
	rows, err := ParseJSON(strings.NewReader(body))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("want 1 row, got %d", len(rows))
	}
	if rows[0].GameID() != "9007199254740993" {
		t.Errorf("gameid should keep all digits, got %q", rows[0].GameID())
	}
	if rows[0].ParticipantID() != 1 || rows[0].Champion() != "Ahri" {
		t.Errorf("row: %v", rows[0])
	}
}

func TestLoadCompressed(t *testing.T) {
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write([]byte(sampleCSV))
	w.Close()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd writer: %v", err)
	}
	zst := enc.EncodeAll([]byte(sampleCSV), nil)
	enc.Close()

	for name, body := range map[string][]byte{
		"games.csv":     []byte(sampleCSV),
		"games.csv.gz":  gz.Bytes(),
		"games.csv.zst": zst,
	} {
		t.Run(name, func(t *testing.T) {
			ds, err := Load(writeFile(t, name, body))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(ds.Rows) != 3 {
				t.Errorf("want 3 rows, got %d", len(ds.Rows))
			}
			if len(ds.Hash) != 64 {
				t.Errorf("unexpected hash %q", ds.Hash)
			}
		})
	}
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load(writeFile(t, "games.xlsx", []byte("PK")))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("want ErrUnsupportedFormat, got %v", err)
	}
}

func TestFilter(t *testing.T) {
	rows := []model.Row{
		{"league": "LCK", "patch": "14.1"},
		{"league": "lck", "patch": "14.2"},
		{"league": "LEC", "patch": "14.1"},
	}
	if got := (Filter{League: "LCK"}).Apply(rows); len(got) != 2 {
		t.Errorf("league filter: want 2, got %d", len(got))
	}
	if got := (Filter{League: "LCK", Patch: "14.1"}).Apply(rows); len(got) != 1 {
		t.Errorf("league+patch filter: want 1, got %d", len(got))
	}
	if got := (Filter{}).Apply(rows); len(got) != 3 {
		t.Errorf("empty filter: want 3, got %d", len(got))
	}

	if k := (Filter{}).CacheKey("abc"); k != "abc" {
		t.Errorf("empty filter key = %q, want abc", k)
	}
	if a, b := (Filter{League: "LCK"}).CacheKey("abc"), (Filter{League: "lck"}).CacheKey("abc"); a != b || a == "abc" {
		t.Errorf("league keys = %q, %q; want equal and distinct from the bare hash", a, b)
	}
}

func TestGroupByPatch(t *testing.T) {
	rows := []model.Row{
		{"patch": "14.2"}, {"patch": "14.1"}, {"patch": "14.2"}, {},
	}
	groups := GroupByPatch(rows)
	if len(groups) != 3 {
		t.Fatalf("want 3 groups, got %d", len(groups))
	}
	if groups[0].Patch != "14.2" || len(groups[0].Rows) != 2 {
		t.Errorf("first group: %s (%d rows)", groups[0].Patch, len(groups[0].Rows))
	}
	if groups[2].Patch != "" {
		t.Errorf("rows without patch should group under empty label, got %q", groups[2].Patch)
	}
}

func TestSortPatchGroups(t *testing.T) {
	groups := []PatchGroup{{Patch: "14.10"}, {Patch: ""}, {Patch: "14.2"}, {Patch: "13.24"}, {Patch: "14.2.1"}}
	SortPatchGroups(groups)

	var got []string
	for _, g := range groups {
		got = append(got, g.Patch)
	}
	want := []string{"13.24", "14.2", "14.2.1", "14.10", ""}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
