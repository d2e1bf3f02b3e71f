package hostapi

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/appengine-ltd/mapgen/internal/mapgen"
)

// SuggestWorldType returns the canonical world type name closest to a name
// that did not match exactly, or "" when nothing is close enough. Case
// differences cost nothing.
func SuggestWorldType(name string) string {
	in := strings.ToLower(strings.TrimSpace(name))
	if in == "" {
		return ""
	}
	type scored struct {
		name string
		dist int
	}
	var hits []scored
	for _, wt := range mapgen.WorldTypes() {
		cand := wt.String()
		lower := strings.ToLower(cand)
		if in == lower {
			return cand
		}
		dist := levenshtein.ComputeDistance(in, lower)
		if dist > levenshteinLimit(len(lower)) {
			continue
		}
		hits = append(hits, scored{name: cand, dist: dist})
	}
	if len(hits) == 0 {
		return ""
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist == hits[j].dist {
			return hits[i].name < hits[j].name
		}
		return hits[i].dist < hits[j].dist
	})
	return hits[0].name
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
