package mapgen

import (
	"slices"
	"testing"
)

// chainProvinces lays provinces out as a 1-cell-high strip so each one
// borders only its predecessor and successor.
func chainProvinces(classes []bool) ([]Province, ProvinceGraph) {
	provinces := make([]Province, len(classes))
	pixelToID := make([]uint32, len(classes))
	for i, land := range classes {
		provinces[i] = Province{ID: i, IsLand: land, Area: 1}
		pixelToID[i] = uint32(i)
	}
	return provinces, BuildProvinceGraph(provinces, pixelToID, len(classes), 1)
}

func allLand(n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = true
	}
	return out
}

func TestGroupProvincesIntoRegionsChain(t *testing.T) {
	provinces, graph := chainProvinces(allLand(20))
	regions, err := GroupProvincesIntoRegions(provinces, graph, 8)
	if err != nil {
		t.Fatalf("group regions: %v", err)
	}
	want := [][]int{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{8, 9, 10, 11, 12, 13, 14, 15},
		{16, 17, 18, 19},
	}
	if len(regions) != len(want) {
		t.Fatalf("expected %d regions, got %d", len(want), len(regions))
	}
	for i, r := range regions {
		if r.ID != i || !slices.Equal(r.ProvinceIDs, want[i]) {
			t.Fatalf("region %d: expected %v, got id %d %v", i, want[i], r.ID, r.ProvinceIDs)
		}
	}
}

func TestGroupProvincesIntoRegionsMergesLeftovers(t *testing.T) {
	provinces, graph := chainProvinces(allLand(18))
	regions, err := GroupProvincesIntoRegions(provinces, graph, 8)
	if err != nil {
		t.Fatalf("group regions: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected the 2-province tail to merge, got %d regions", len(regions))
	}
	if got := regions[1].ProvinceIDs; len(got) != 10 || got[len(got)-1] != 17 {
		t.Fatalf("expected second region to absorb the tail, got %v", got)
	}
}

func TestGroupProvincesIntoRegionsKeepsClassesApart(t *testing.T) {
	classes := append(allLand(6), make([]bool, 6)...)
	provinces, graph := chainProvinces(classes)
	regions, err := GroupProvincesIntoRegions(provinces, graph, 8)
	if err != nil {
		t.Fatalf("group regions: %v", err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected one land and one sea region, got %d", len(regions))
	}
	for _, r := range regions {
		class := provinces[r.ProvinceIDs[0]].IsLand
		for _, p := range r.ProvinceIDs {
			if provinces[p].IsLand != class {
				t.Fatalf("region %d mixes land and sea", r.ID)
			}
		}
	}
}

func TestGroupProvincesIntoRegionsIsolatedSingleton(t *testing.T) {
	provinces := []Province{{ID: 0, IsLand: true, Area: 1}}
	regions, err := GroupProvincesIntoRegions(provinces, BuildProvinceGraph(provinces, []uint32{0}, 1, 1), 8)
	if err != nil {
		t.Fatalf("group regions: %v", err)
	}
	if len(regions) != 1 || !slices.Equal(regions[0].ProvinceIDs, []int{0}) {
		t.Fatalf("expected a single one-province region, got %+v", regions)
	}
}

func TestRegionNamesAreUnique(t *testing.T) {
	seen := make(map[string]int)
	for id := 0; id < 5000; id++ {
		name := RegionName(id, id%3 == 0)
		if prev, dup := seen[name]; dup {
			t.Fatalf("regions %d and %d share name %q", prev, id, name)
		}
		seen[name] = id
	}
	if RegionName(7, true) != RegionName(7, true) {
		t.Fatalf("expected names to be stable")
	}
}

// gridGraph builds a w x h grid of one-cell provinces, id = y*w + x.
func gridGraph(w, h int) ProvinceGraph {
	provinces := make([]Province, w*h)
	pixelToID := make([]uint32, w*h)
	for i := range provinces {
		provinces[i] = Province{ID: i, IsLand: true, Area: 1}
		pixelToID[i] = uint32(i)
	}
	return BuildProvinceGraph(provinces, pixelToID, w, h)
}

func TestSplitRegionHalvesChain(t *testing.T) {
	_, graph := chainProvinces(allLand(14))
	members := make([]int, 14)
	for i := range members {
		members[i] = i
	}
	parts := splitRegion(graph, members, 2)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	for _, part := range parts {
		slices.Sort(part)
	}
	slices.SortFunc(parts, func(a, b []int) int { return a[0] - b[0] })
	if !slices.Equal(parts[0], members[:7]) || !slices.Equal(parts[1], members[7:]) {
		t.Fatalf("expected halves 0-6 and 7-13, got %v", parts)
	}
}

func TestSplitRegionGridPartsAreConnectedAndBalanced(t *testing.T) {
	graph := gridGraph(5, 4)
	members := make([]int, 20)
	for i := range members {
		members[i] = i
	}
	parts := splitRegion(graph, members, 2)
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	seen := make(map[int]bool)
	for _, part := range parts {
		if len(part) < 8 || len(part) > 12 {
			t.Fatalf("expected parts of 8-12 provinces, got %d: %v", len(part), parts)
		}
		if !regionConnected(graph, part) {
			t.Fatalf("expected connected part, got %v", part)
		}
		for _, p := range part {
			if seen[p] {
				t.Fatalf("province %d assigned twice", p)
			}
			seen[p] = true
		}
	}
	if len(seen) != 20 {
		t.Fatalf("expected every province assigned, got %d", len(seen))
	}
}

func TestSplitLargeRegionsKeepsSmallGroups(t *testing.T) {
	_, graph := chainProvinces(allLand(26))
	small := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	large := []int{12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25}
	out := splitLargeRegions(graph, [][]int{small, nil, large}, 8, 12)
	if len(out) != 4 {
		t.Fatalf("expected the 14-province group to split in two, got %d groups", len(out))
	}
	if !slices.Equal(out[0], small) || out[1] != nil {
		t.Fatalf("expected groups at or below the cap untouched, got %v", out[:2])
	}
	if len(out[2])+len(out[3]) != len(large) {
		t.Fatalf("expected split parts to cover the group, got %v", out[2:])
	}
}
