package mapgen

import (
	"math"
	"slices"
)

const mountainKnee = 0.75

// GenerateHeightmap synthesizes the elevation layer. The output depends only
// on its arguments; identical inputs give bit-identical heightmaps.
func GenerateHeightmap(seed uint64, width, height int, worldType WorldType, islandDensity float64, terrain TerrainSettings) Heightmap {
	return generateHeightmap(seed, width, height, worldType, islandDensity, terrain, 0)
}

func generateHeightmap(seed uint64, width, height int, worldType WorldType, islandDensity float64, terrain TerrainSettings, workers int) Heightmap {
	width = max(1, width)
	height = max(1, height)
	profile := worldType.terrainProfile()
	raw := baseElevation(seed, width, height, profile, workers)
	addIslandBumps(raw, seed, width, height, clampFloat(islandDensity, 0, 1)*profile.islandBias)

	normalizeUnit(raw)
	power := terrain.ElevationPower
	if !(power > 0) || math.IsInf(power, 0) {
		power = 1
	}
	if power != 1 {
		for i, v := range raw {
			raw[i] = math.Pow(v, power)
		}
	}
	remapToSeaLevel(raw, 1-profile.landShare)

	if terrain.SmoothRadius > 0 {
		raw = boxBlur(raw, width, height, terrain.SmoothRadius, workers)
	}

	compression := clampFloat(terrain.MountainCompression, 0, 1)
	data := make([]float32, len(raw))
	for i, v := range raw {
		if v > mountainKnee {
			v = mountainKnee + (v-mountainKnee)*(1-compression)
		}
		data[i] = float32(clampFloat(v, 0, 1))
	}
	return Heightmap{Width: width, Height: height, Data: data}
}

func baseElevation(seed uint64, width, height int, profile terrainProfile, workers int) []float64 {
	detail := newFractalNoise(noiseSeed(seed, "elevation"), profile.octaves, profile.persistence)
	continents := newFractalNoise(noiseSeed(seed, "continents"), 2, 0.5)
	scale := float64(max(width, height))
	raw := make([]float64, width*height)

	parallelRows(height, workers, func(start, end int) {
		for y := start; y < end; y++ {
			v := (float64(y) + 0.5) / float64(height)
			ny := (float64(y) + 0.5) / scale
			for x := 0; x < width; x++ {
				u := (float64(x) + 0.5) / float64(width)
				nx := (float64(x) + 0.5) / scale
				n := detail.Eval2(nx*profile.frequency, ny*profile.frequency)
				m := continentMask(profile.mask, u, v, continents.Eval2(nx*1.1, ny*1.1))
				raw[y*width+x] = (1-profile.maskWeight)*n + profile.maskWeight*m
			}
		}
	})
	return raw
}

// continentMask returns the large-scale land preference in [0,1] at the
// map-relative position (u, v).
func continentMask(shape maskShape, u, v, lowFreq float64) float64 {
	dx := (u - 0.5) * 2
	dy := (v - 0.5) * 2
	d := math.Sqrt(dx*dx + dy*dy)
	edge := smoothstep(math.Min(math.Min(u, 1-u), math.Min(v, 1-v)) / 0.12)
	switch shape {
	case maskRadial:
		return clampFloat(1-d*d, 0, 1) * (0.7 + 0.3*lowFreq)
	case maskInlandSea:
		ring := clampFloat(1-math.Abs(d-0.7)/0.45, 0, 1)
		return ring * (0.6 + 0.4*lowFreq) * (0.5 + 0.5*edge)
	case maskNone:
		return 0.5
	default:
		return lowFreq * (0.35 + 0.65*edge)
	}
}

// addIslandBumps scatters Gaussian hills so island density controls how many
// separate land masses appear.
func addIslandBumps(raw []float64, seed uint64, width, height int, density float64) {
	cells := width * height
	if density <= 0 || cells == 0 {
		return
	}
	count := int(math.Round(density * float64(cells) / 600))
	if count == 0 && cells >= 64 {
		count = 1
	}
	rng := seededRNG(seed, "islands")
	scale := float64(max(width, height))
	for i := 0; i < count; i++ {
		cx := rng.Float64() * float64(width)
		cy := rng.Float64() * float64(height)
		radius := 1.5 + rng.Float64()*math.Max(2, scale*0.03)
		amp := 0.25 + rng.Float64()*0.25
		reach := int(math.Ceil(radius * 3))
		x0, x1 := clampInt(int(cx)-reach, 0, width-1), clampInt(int(cx)+reach, 0, width-1)
		y0, y1 := clampInt(int(cy)-reach, 0, height-1), clampInt(int(cy)+reach, 0, height-1)
		twoR2 := 2 * radius * radius
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dx := float64(x) + 0.5 - cx
				dy := float64(y) + 0.5 - cy
				raw[y*width+x] += amp * math.Exp(-(dx*dx+dy*dy)/twoR2)
			}
		}
	}
}

func normalizeUnit(vals []float64) {
	if len(vals) == 0 {
		return
	}
	lo, hi := slices.Min(vals), slices.Max(vals)
	span := hi - lo
	for i, v := range vals {
		if span < 1e-12 {
			vals[i] = 0.5
			continue
		}
		vals[i] = (v - lo) / span
	}
}

// remapToSeaLevel bends vals (in [0,1]) piecewise-linearly so the q-quantile
// lands exactly on SeaLevel; cells above the quantile become land.
func remapToSeaLevel(vals []float64, q float64) {
	if len(vals) == 0 {
		return
	}
	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	qv := PercentileSorted(sorted, clampFloat(q, 0, 1))
	for i, v := range vals {
		switch {
		case v <= qv:
			if qv-lo < 1e-12 {
				vals[i] = SeaLevel
			} else {
				vals[i] = SeaLevel * (v - lo) / (qv - lo)
			}
		default:
			vals[i] = SeaLevel + (1-SeaLevel)*(v-qv)/(hi-qv)
		}
	}
}

// PercentileSorted linearly interpolates the q-quantile of an ascending
// slice. q is clamped to [0,1]; an empty slice yields 0.
func PercentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// boxBlur is a separable mean filter; out-of-range taps are skipped rather
// than clamped so borders are not biased.
func boxBlur(src []float64, width, height, radius, workers int) []float64 {
	tmp := make([]float64, len(src))
	parallelRows(height, workers, func(start, end int) {
		for y := start; y < end; y++ {
			row := y * width
			for x := 0; x < width; x++ {
				sum, n := 0.0, 0
				for k := max(0, x-radius); k <= min(width-1, x+radius); k++ {
					sum += src[row+k]
					n++
				}
				tmp[row+x] = sum / float64(n)
			}
		}
	})
	out := make([]float64, len(src))
	parallelRows(height, workers, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				sum, n := 0.0, 0
				for k := max(0, y-radius); k <= min(height-1, y+radius); k++ {
					sum += tmp[k*width+x]
					n++
				}
				out[y*width+x] = sum / float64(n)
			}
		}
	})
	return out
}

// PruneIslands lowers every 8-connected land mass smaller than
// minIslandSize cells to just below sea level. The input is not modified.
func PruneIslands(hm Heightmap, seaLevel float64, minIslandSize int) Heightmap {
	data := slices.Clone(hm.Data)
	out := Heightmap{Width: hm.Width, Height: hm.Height, Data: data}
	if minIslandSize <= 1 || len(data) == 0 {
		return out
	}
	sunk := float32(clampFloat(seaLevel-0.01, 0, 1))
	seen := make([]bool, len(data))
	component := make([]int, 0, 64)
	queue := make([]int, 0, 64)
	for start := range data {
		if seen[start] || float64(data[start]) <= seaLevel {
			continue
		}
		component = component[:0]
		queue = append(queue[:0], start)
		seen[start] = true
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			component = append(component, idx)
			x, y := idx%hm.Width, idx/hm.Width
			for _, off := range neigh8 {
				nx, ny := x+off[0], y+off[1]
				if !inBounds(nx, ny, hm.Width, hm.Height) {
					continue
				}
				nIdx := ny*hm.Width + nx
				if seen[nIdx] || float64(data[nIdx]) <= seaLevel {
					continue
				}
				seen[nIdx] = true
				queue = append(queue, nIdx)
			}
		}
		if len(component) >= minIslandSize {
			continue
		}
		for _, idx := range component {
			data[idx] = sunk
		}
	}
	return out
}
