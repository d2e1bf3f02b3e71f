package mapgen

import (
	"slices"
)

// ProvinceGraph is the undirected adjacency between provinces that share at
// least one 4-connected cell border.
type ProvinceGraph struct {
	adj [][]int
}

// BuildProvinceGraph scans every horizontal and vertical cell boundary of
// pixelToID once.
func BuildProvinceGraph(provinces []Province, pixelToID []uint32, width, height int) ProvinceGraph {
	seen := make([]map[int]struct{}, len(provinces))
	link := func(a, b int) {
		if a == b || a >= len(provinces) || b >= len(provinces) {
			return
		}
		if seen[a] == nil {
			seen[a] = make(map[int]struct{}, 6)
		}
		if seen[b] == nil {
			seen[b] = make(map[int]struct{}, 6)
		}
		seen[a][b] = struct{}{}
		seen[b][a] = struct{}{}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			id := int(pixelToID[idx])
			if x+1 < width {
				link(id, int(pixelToID[idx+1]))
			}
			if y+1 < height {
				link(id, int(pixelToID[idx+width]))
			}
		}
	}

	g := ProvinceGraph{adj: make([][]int, len(provinces))}
	for id, set := range seen {
		nbrs := make([]int, 0, len(set))
		for nb := range set {
			nbrs = append(nbrs, nb)
		}
		slices.Sort(nbrs)
		g.adj[id] = nbrs
	}
	return g
}

// Len returns the number of nodes.
func (g ProvinceGraph) Len() int { return len(g.adj) }

// Neighbors returns the sorted neighbours of id. The slice must not be
// modified.
func (g ProvinceGraph) Neighbors(id int) []int {
	if id < 0 || id >= len(g.adj) {
		return nil
	}
	return g.adj[id]
}

func (g ProvinceGraph) HasEdge(a, b int) bool {
	_, ok := slices.BinarySearch(g.Neighbors(a), b)
	return ok
}

func (g ProvinceGraph) EdgeCount() int {
	total := 0
	for _, nbrs := range g.adj {
		total += len(nbrs)
	}
	return total / 2
}

// Edges lists every edge once as (a, b) with a < b, sorted.
func (g ProvinceGraph) Edges() [][2]int {
	edges := make([][2]int, 0, g.EdgeCount())
	for a, nbrs := range g.adj {
		for _, b := range nbrs {
			if a < b {
				edges = append(edges, [2]int{a, b})
			}
		}
	}
	return edges
}

// Components returns the connected components, each sorted, ordered by
// their lowest id.
func (g ProvinceGraph) Components() [][]int {
	seen := make([]bool, len(g.adj))
	var comps [][]int
	for start := range g.adj {
		if seen[start] {
			continue
		}
		seen[start] = true
		comp := []int{start}
		for head := 0; head < len(comp); head++ {
			for _, nb := range g.adj[comp[head]] {
				if !seen[nb] {
					seen[nb] = true
					comp = append(comp, nb)
				}
			}
		}
		slices.Sort(comp)
		comps = append(comps, comp)
	}
	return comps
}
