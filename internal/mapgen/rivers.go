package mapgen

import (
	"sort"
)

const riverSourceElevation = 0.7

// RiverOutlet says how a river ends.
type RiverOutlet uint8

const (
	// OutletWater: the river reaches a sea or lake cell.
	OutletWater RiverOutlet = iota
	// OutletConfluence: the river joins one traced earlier.
	OutletConfluence
	// OutletBasin: no downhill neighbour is left; the river pools into a lake.
	OutletBasin
)

func (o RiverOutlet) String() string {
	switch o {
	case OutletWater:
		return "water"
	case OutletConfluence:
		return "confluence"
	case OutletBasin:
		return "basin"
	default:
		return "unknown"
	}
}

// River is one traced flow path. Path starts at Source; Mouth is the cell
// the river drains into (-1 for a basin).
type River struct {
	Source int
	Path   []int
	Mouth  int
	Outlet RiverOutlet
}

// RiverMap is the flow network over the grid.
type RiverMap struct {
	Width        int
	Height       int
	FlowTo       []int32  // steepest-descent target per cell, -1 when none
	Accumulation []uint32 // number of cells draining through each cell
	Rivers       []River
	Mask         []bool // true on every cell some river passes through
}

// GenerateRivers extracts the flow network. The error is only ever an
// ErrInternal invariant failure.
func GenerateRivers(hm Heightmap, biomes BiomeMap) (RiverMap, error) {
	width, height := hm.Width, hm.Height
	n := len(hm.Data)
	out := RiverMap{
		Width:        width,
		Height:       height,
		FlowTo:       make([]int32, n),
		Accumulation: make([]uint32, n),
		Mask:         make([]bool, n),
	}
	isWater := func(idx int) bool { return biomes.Data[idx].IsWater() }

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			out.FlowTo[idx] = -1
			out.Accumulation[idx] = 1
			if isWater(idx) {
				continue
			}
			bestIdx := -1
			bestElev := hm.Data[idx]
			for _, off := range neigh8 {
				nx, ny := x+off[0], y+off[1]
				if !inBounds(nx, ny, width, height) {
					continue
				}
				nIdx := ny*width + nx
				if hm.Data[nIdx] < bestElev {
					bestElev = hm.Data[nIdx]
					bestIdx = nIdx
				}
			}
			out.FlowTo[idx] = int32(bestIdx)
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return hm.Data[order[i]] > hm.Data[order[j]]
	})
	for _, idx := range order {
		if next := out.FlowTo[idx]; next >= 0 {
			out.Accumulation[next] += out.Accumulation[idx]
		}
	}

	sources := riverSources(hm, biomes)
	sort.SliceStable(sources, func(i, j int) bool {
		return hm.Data[sources[i]] > hm.Data[sources[j]]
	})
	for _, src := range sources {
		if out.Mask[src] {
			continue
		}
		river, err := traceRiver(out.FlowTo, out.Mask, src, isWater)
		if err != nil {
			return RiverMap{}, err
		}
		for _, idx := range river.Path {
			out.Mask[idx] = true
		}
		out.Rivers = append(out.Rivers, river)
	}
	return out, nil
}

func riverSources(hm Heightmap, biomes BiomeMap) []int {
	var sources []int
	for y := 0; y < hm.Height; y++ {
		for x := 0; x < hm.Width; x++ {
			idx := y*hm.Width + x
			b := biomes.Data[idx]
			if b.IsWater() || !b.canSourceRiver() {
				continue
			}
			h := hm.Data[idx]
			if float64(h) >= riverSourceElevation && b.isWet() {
				sources = append(sources, idx)
				continue
			}
			peak, neighbours := true, 0
			for _, off := range neigh8 {
				nx, ny := x+off[0], y+off[1]
				if !inBounds(nx, ny, hm.Width, hm.Height) {
					continue
				}
				neighbours++
				if hm.At(nx, ny) >= h {
					peak = false
					break
				}
			}
			if peak && neighbours > 0 {
				sources = append(sources, idx)
			}
		}
	}
	return sources
}

func traceRiver(flowTo []int32, mask []bool, src int, isWater func(int) bool) (River, error) {
	river := River{Source: src, Path: []int{src}, Mouth: -1, Outlet: OutletBasin}
	cur := src
	for steps := 0; ; steps++ {
		if steps > len(flowTo) {
			return River{}, internalf("river from cell %d exceeded %d steps", src, len(flowTo))
		}
		next := int(flowTo[cur])
		switch {
		case next < 0:
			return river, nil
		case isWater(next):
			river.Mouth, river.Outlet = next, OutletWater
			return river, nil
		case mask[next]:
			river.Mouth, river.Outlet = next, OutletConfluence
			return river, nil
		}
		river.Path = append(river.Path, next)
		cur = next
	}
}

func (b Biome) canSourceRiver() bool {
	switch b {
	case BiomeHotDesert, BiomeColdDesert, BiomeSnow, BiomeSeaIce:
		return false
	}
	return true
}

func (b Biome) isWet() bool {
	switch b {
	case BiomeTaiga, BiomeTemperateForest, BiomeTemperateRainforest,
		BiomeTropicalSeasonalForest, BiomeTropicalRainforest, BiomeWetland, BiomeAlpine:
		return true
	}
	return false
}
