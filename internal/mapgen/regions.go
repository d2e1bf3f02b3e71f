package mapgen

import (
	"math"
	"slices"
	"strings"
)

// Region is a connected group of provinces.
type Region struct {
	ID          int
	Name        string
	ProvinceIDs []int
}

// GroupProvincesIntoRegions partitions the province graph into connected
// clusters of about targetSize provinces. Land and sea provinces only share
// a region when a small leftover has no same-class neighbour to join.
// Regions that grow past 1.5x targetSize through merging are split again.
func GroupProvincesIntoRegions(provinces []Province, graph ProvinceGraph, targetSize int) ([]Region, error) {
	targetSize = max(1, targetSize)
	regionOf := make([]int, len(provinces))
	for i := range regionOf {
		regionOf[i] = -1
	}

	var groups [][]int
	for start := range provinces {
		if regionOf[start] >= 0 {
			continue
		}
		r := len(groups)
		members := expandRegion(provinces, graph, regionOf, start, r, targetSize)
		groups = append(groups, members)
	}

	mergeSmallRegions(provinces, graph, groups, regionOf, max(1, targetSize/2))
	groups = splitLargeRegions(graph, groups, targetSize, targetSize+targetSize/2)

	alive := make([][]int, 0, len(groups))
	for _, members := range groups {
		if len(members) == 0 {
			continue
		}
		slices.Sort(members)
		alive = append(alive, members)
	}
	slices.SortFunc(alive, func(a, b []int) int { return a[0] - b[0] })

	regions := make([]Region, len(alive))
	names := make(map[string]int, len(alive))
	assigned := make([]bool, len(provinces))
	for id, members := range alive {
		name := RegionName(id, provinces[members[0]].IsLand)
		if prev, dup := names[name]; dup {
			return nil, internalf("regions %d and %d are both named %q", prev, id, name)
		}
		names[name] = id
		for _, p := range members {
			if assigned[p] {
				return nil, internalf("province %d belongs to more than one region", p)
			}
			assigned[p] = true
		}
		regions[id] = Region{ID: id, Name: name, ProvinceIDs: members}
	}
	for p, ok := range assigned {
		if !ok {
			return nil, internalf("province %d was not grouped into a region", p)
		}
	}
	return regions, nil
}

// expandRegion grows a region from start through unassigned same-class
// neighbours, always taking the candidate with the most links into the
// region (lowest id on ties), until it holds targetSize provinces.
func expandRegion(provinces []Province, graph ProvinceGraph, regionOf []int, start, r, targetSize int) []int {
	class := provinces[start].IsLand
	members := []int{start}
	regionOf[start] = r
	links := make(map[int]int)
	addLinks := func(p int) {
		for _, nb := range graph.Neighbors(p) {
			if regionOf[nb] < 0 && provinces[nb].IsLand == class {
				links[nb]++
			}
		}
	}
	addLinks(start)

	for len(members) < targetSize && len(links) > 0 {
		pick, pickLinks := -1, 0
		for cand, n := range links {
			if n > pickLinks || (n == pickLinks && cand < pick) {
				pick, pickLinks = cand, n
			}
		}
		delete(links, pick)
		regionOf[pick] = r
		members = append(members, pick)
		addLinks(pick)
	}
	return members
}

// mergeSmallRegions folds every region below minSize into its smallest
// adjacent region, preferring one of the same class. Merging only along
// graph edges keeps every region connected.
func mergeSmallRegions(provinces []Province, graph ProvinceGraph, groups [][]int, regionOf []int, minSize int) {
	for r := range groups {
		if len(groups[r]) == 0 || len(groups[r]) >= minSize {
			continue
		}
		class := provinces[groups[r][0]].IsLand
		target := -1
		targetSame := false
		for _, p := range groups[r] {
			for _, nb := range graph.Neighbors(p) {
				o := regionOf[nb]
				if o == r {
					continue
				}
				same := provinces[groups[o][0]].IsLand == class
				switch {
				case target < 0,
					same && !targetSame,
					same == targetSame && len(groups[o]) < len(groups[target]),
					same == targetSame && len(groups[o]) == len(groups[target]) && o < target:
					target, targetSame = o, same
				}
			}
		}
		if target < 0 {
			continue
		}
		for _, p := range groups[r] {
			regionOf[p] = target
		}
		groups[target] = append(groups[target], groups[r]...)
		groups[r] = nil
	}
}

// splitLargeRegions replaces every region above maxSize with
// round(size/targetSize) connected parts of similar size. Merging can leave
// such regions when several scraps fold into the same neighbour.
func splitLargeRegions(graph ProvinceGraph, groups [][]int, targetSize, maxSize int) [][]int {
	out := make([][]int, 0, len(groups))
	for _, members := range groups {
		if len(members) <= maxSize {
			out = append(out, members)
			continue
		}
		k := max(2, int(math.Round(float64(len(members))/float64(targetSize))))
		out = append(out, splitRegion(graph, members, k)...)
	}
	return out
}

// splitRegion cuts a connected set of provinces into k connected parts.
// Parts start from mutually distant members and take turns claiming their
// best-linked free neighbour, so sizes stay within a few provinces of each
// other unless one part gets boxed in.
func splitRegion(graph ProvinceGraph, members []int, k int) [][]int {
	part := make(map[int]int, len(members))
	for _, p := range members {
		part[p] = -1
	}
	seeds := spreadSeeds(graph, part, members, k)
	parts := make([][]int, len(seeds))
	links := make([]map[int]int, len(seeds))
	for i, s := range seeds {
		part[s] = i
		parts[i] = []int{s}
		links[i] = make(map[int]int)
	}
	addLinks := func(i, p int) {
		for _, nb := range graph.Neighbors(p) {
			if owner, ok := part[nb]; ok && owner < 0 {
				links[i][nb]++
			}
		}
	}
	for i, s := range seeds {
		addLinks(i, s)
	}

	assigned := len(seeds)
	for grew := true; grew; {
		grew = false
		for i := range parts {
			pick, pickLinks := -1, 0
			for cand, n := range links[i] {
				if part[cand] >= 0 {
					delete(links[i], cand)
					continue
				}
				if n > pickLinks || (n == pickLinks && cand < pick) {
					pick, pickLinks = cand, n
				}
			}
			if pick < 0 {
				continue
			}
			delete(links[i], pick)
			part[pick] = i
			parts[i] = append(parts[i], pick)
			addLinks(i, pick)
			assigned++
			grew = true
		}
	}
	if assigned != len(members) {
		return [][]int{members}
	}
	return parts
}

// spreadSeeds picks up to k members by farthest-point sampling over hop
// distance inside the region, starting from the member farthest from its
// lowest id.
func spreadSeeds(graph ProvinceGraph, inside map[int]int, members []int, k int) []int {
	first := farthestMember(graph, inside, []int{slices.Min(members)})
	if first < 0 {
		return []int{members[0]}
	}
	seeds := []int{first}
	for len(seeds) < k {
		next := farthestMember(graph, inside, seeds)
		if next < 0 {
			break
		}
		seeds = append(seeds, next)
	}
	return seeds
}

// farthestMember returns the member with the greatest hop distance from
// srcs, lowest id on ties, or -1 when no other member is reachable.
func farthestMember(graph ProvinceGraph, inside map[int]int, srcs []int) int {
	dist := make(map[int]int, len(inside))
	queue := make([]int, 0, len(inside))
	for _, s := range srcs {
		dist[s] = 0
		queue = append(queue, s)
	}
	best, bestDist := -1, 0
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		d := dist[p]
		if d > bestDist || (d == bestDist && d > 0 && p < best) {
			best, bestDist = p, d
		}
		for _, nb := range graph.Neighbors(p) {
			if _, ok := inside[nb]; !ok {
				continue
			}
			if _, seen := dist[nb]; seen {
				continue
			}
			dist[nb] = d + 1
			queue = append(queue, nb)
		}
	}
	return best
}

var regionSyllables = [...]string{
	"ald", "bar", "cor", "dun", "eth", "fal", "gar", "hel",
	"ist", "kor", "lun", "mar", "nor", "osk", "ril", "tam",
}

var (
	landSuffixes = [...]string{"March", "Reach", "Vale", "Highlands", "Downs"}
	seaSuffixes  = [...]string{"Sea", "Gulf", "Sound", "Bight", "Deep"}
)

// RegionName derives a name from a region id. The stem is the bijective
// base-16 spelling of the id in fixed-width syllables, so distinct ids
// always get distinct names.
func RegionName(id int, isLand bool) string {
	k := len(regionSyllables)
	n := max(0, id) + 1 + k // skip single-syllable stems
	var parts []string
	for n > 0 {
		n--
		parts = append(parts, regionSyllables[n%k])
		n /= k
	}
	slices.Reverse(parts)
	stem := strings.Join(parts, "")
	stem = strings.ToUpper(stem[:1]) + stem[1:]
	if isLand {
		return stem + " " + landSuffixes[id%len(landSuffixes)]
	}
	return stem + " " + seaSuffixes[id%len(seaSuffixes)]
}
