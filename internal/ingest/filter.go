package ingest

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pable/go-lol-draftstats/internal/model"
)

// Filter restricts a dataset to one league and/or patch. Empty fields match
// everything; comparisons ignore case.
type Filter struct {
	League string
	Patch  string
}

// Empty reports whether f matches every row.
func (f Filter) Empty() bool {
	return f.League == "" && f.Patch == ""
}

// Apply returns the rows matching f.
func (f Filter) Apply(rows []model.Row) []model.Row {
	if f.Empty() {
		return rows
	}
	var out []model.Row
	for _, r := range rows {
		if f.League != "" && !strings.EqualFold(r.Str("league"), f.League) {
			continue
		}
		if f.Patch != "" && !strings.EqualFold(r.Str("patch"), f.Patch) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// PatchGroup is the rows of one patch.
type PatchGroup struct {
	Patch string
	Rows  []model.Row
}

// GroupByPatch partitions rows by patch in first-seen order. Rows without a
// patch are grouped under "".
func GroupByPatch(rows []model.Row) []PatchGroup {
	idx := make(map[string]int)
	var out []PatchGroup
	for _, r := range rows {
		p := r.Str("patch")
		i, ok := idx[p]
		if !ok {
			i = len(out)
			idx[p] = i
			out = append(out, PatchGroup{Patch: p})
		}
		out[i].Rows = append(out[i].Rows, r)
	}
	return out
}

// CacheKey derives the stored dataset key for a file hash under f, so the
// same file loaded with different filters caches separately.
func (f Filter) CacheKey(hash string) string {
	if f.Empty() {
		return hash
	}
	return hash + ":" + strings.ToLower(f.League) + ":" + strings.ToLower(f.Patch)
}

// SortPatchGroups orders groups by patch version, comparing dot-separated
// parts numerically ("14.2" before "14.10"). Unlabeled rows sort last.
func SortPatchGroups(groups []PatchGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Patch, groups[j].Patch
		if a == "" || b == "" {
			return b == "" && a != ""
		}
		return comparePatch(a, b) < 0
	})
}

func comparePatch(a, b string) int {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		na, errA := strconv.Atoi(pa[i])
		nb, errB := strconv.Atoi(pb[i])
		if errA != nil || errB != nil {
			if c := strings.Compare(pa[i], pb[i]); c != 0 {
				return c
			}
			continue
		}
		if na != nb {
			if na < nb {
				return -1
			}
			return 1
		}
	}
	return len(pa) - len(pb)
}
