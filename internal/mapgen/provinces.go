package mapgen

import (
	"container/heap"
	"math"
	"math/rand/v2"
)

// ProvinceSeed is the origin cell of one province.
type ProvinceSeed struct {
	X      int
	Y      int
	IsLand bool
}

// Province is the smallest political unit. ID equals the index of its seed.
type Province struct {
	ID      int
	IsLand  bool
	Coastal bool
	Area    int
	Center  [2]float64
}

const seedAttemptsPerSeed = 30

// GenerateProvinceSeeds places numLand seeds on land cells and numSea seeds on
// water cells. A class never receives more seeds than it has cells; any
// shortfall moves to the other class when it has room. Land seeds come first.
func GenerateProvinceSeeds(hm Heightmap, biomes BiomeMap, water WaterMap, numLand, numSea int, seed uint64) []ProvinceSeed {
	var landCells, seaCells []int
	for idx, t := range water.Data {
		if t == WaterLand {
			landCells = append(landCells, idx)
		} else {
			seaCells = append(seaCells, idx)
		}
	}
	numLand, numSea = fitSeedCounts(max(0, numLand), max(0, numSea), len(landCells), len(seaCells))

	seeds := make([]ProvinceSeed, 0, numLand+numSea)
	for _, idx := range scatterSeeds(landCells, numLand, water.Width, water.Height, seededRNG(seed, "provinces:land")) {
		seeds = append(seeds, ProvinceSeed{X: idx % water.Width, Y: idx / water.Width, IsLand: true})
	}
	for _, idx := range scatterSeeds(seaCells, numSea, water.Width, water.Height, seededRNG(seed, "provinces:sea")) {
		seeds = append(seeds, ProvinceSeed{X: idx % water.Width, Y: idx / water.Width, IsLand: false})
	}
	return seeds
}

func fitSeedCounts(numLand, numSea, landCap, seaCap int) (int, int) {
	if numLand > landCap {
		numSea += numLand - landCap
		numLand = landCap
	}
	if numSea > seaCap {
		extra := numSea - seaCap
		numSea = seaCap
		numLand = min(landCap, numLand+extra)
	}
	return numLand, numSea
}

// scatterSeeds picks count distinct cells from cells, keeping picks at least
// a minimum spacing apart. The spacing halves whenever a round of attempts
// fails; once it drops below one cell the rest are drawn from a shuffle.
func scatterSeeds(cells []int, count, width, height int, rng *rand.Rand) []int {
	if count <= 0 || len(cells) == 0 {
		return nil
	}
	picked := make([]int, 0, count)
	taken := make(map[int]bool, count)
	spacing := 0.75 * math.Sqrt(float64(len(cells))/float64(count))

	for spacing >= 1 && len(picked) < count {
		r := int(math.Ceil(spacing))
		r2 := spacing * spacing
		for attempt := 0; attempt < count*seedAttemptsPerSeed && len(picked) < count; attempt++ {
			idx := cells[rng.IntN(len(cells))]
			if taken[idx] || tooClose(idx, taken, r, r2, width, height) {
				continue
			}
			taken[idx] = true
			picked = append(picked, idx)
		}
		spacing /= 2
	}

	if len(picked) < count {
		rest := make([]int, 0, len(cells)-len(picked))
		for _, idx := range cells {
			if !taken[idx] {
				rest = append(rest, idx)
			}
		}
		rng.Shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })
		picked = append(picked, rest[:count-len(picked)]...)
	}
	return picked
}

func tooClose(idx int, taken map[int]bool, r int, r2 float64, width, height int) bool {
	x, y := idx%width, idx/width
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) >= r2 {
				continue
			}
			nx, ny := x+dx, y+dy
			if inBounds(nx, ny, width, height) && taken[ny*width+nx] {
				return true
			}
		}
	}
	return false
}

// GenerateProvincesFromSeeds grows every seed at once over the grid and
// returns the provinces plus the owner of each cell. Seeds first grow
// through cells of their own class; cells no seed of their class can reach
// (a seedless island, an enclosed lake) go to the nearest province.
func GenerateProvincesFromSeeds(hm Heightmap, biomes BiomeMap, water WaterMap, seeds []ProvinceSeed) ([]Province, []uint32, error) {
	width, height := water.Width, water.Height
	n := width * height
	if len(seeds) == 0 {
		return nil, nil, internalf("no province seeds for a %dx%d map", width, height)
	}

	owner := make([]int32, n)
	best := make([]float64, n)
	bestSeed := make([]int32, n)
	for i := range owner {
		owner[i] = -1
		best[i] = math.Inf(1)
		bestSeed[i] = math.MaxInt32
	}

	pq := &growthQueue{}
	for i, s := range seeds {
		if !inBounds(s.X, s.Y, width, height) {
			return nil, nil, internalf("province seed %d at (%d,%d) is outside the map", i, s.X, s.Y)
		}
		idx := s.Y*width + s.X
		if best[idx] == 0 {
			return nil, nil, internalf("province seeds %d and %d share cell %d", bestSeed[idx], i, idx)
		}
		best[idx], bestSeed[idx] = 0, int32(i)
		heap.Push(pq, growthItem{cost: 0, seed: int32(i), cell: int32(idx)})
	}

	sameClass := func(seedIdx int32, cell int) bool {
		return seeds[seedIdx].IsLand == water.IsLand(cell)
	}
	stepCost := func(from, to int) float64 {
		if !water.IsLand(to) {
			return 1
		}
		return 1 + 6*math.Abs(float64(hm.Data[to]-hm.Data[from])) + biomes.Data[to].movementCost()
	}
	grow(pq, owner, best, bestSeed, width, height, sameClass, stepCost)

	// Second phase: continue from every owned cell that borders an unowned one.
	for i := range best {
		if owner[i] < 0 {
			best[i], bestSeed[i] = math.Inf(1), math.MaxInt32
		}
	}
	for idx, o := range owner {
		if o < 0 || !bordersUnowned(owner, idx, width, height) {
			continue
		}
		heap.Push(pq, growthItem{cost: 0, seed: o, cell: int32(idx)})
	}
	grow(pq, owner, best, bestSeed, width, height,
		func(int32, int) bool { return true },
		func(int, int) float64 { return 1 })

	provinces := make([]Province, len(seeds))
	sumX := make([]float64, len(seeds))
	sumY := make([]float64, len(seeds))
	pixelToID := make([]uint32, n)
	for idx, o := range owner {
		if o < 0 {
			return nil, nil, internalf("cell %d was not assigned to any province", idx)
		}
		pixelToID[idx] = uint32(o)
		p := &provinces[o]
		p.Area++
		x, y := idx%width, idx/width
		sumX[o] += float64(x) + 0.5
		sumY[o] += float64(y) + 0.5
		if p.Coastal {
			continue
		}
		for _, off := range neigh8 {
			nx, ny := x+off[0], y+off[1]
			if inBounds(nx, ny, width, height) && water.IsLand(ny*width+nx) != seeds[o].IsLand {
				p.Coastal = true
				break
			}
		}
	}
	for i := range provinces {
		p := &provinces[i]
		if p.Area == 0 {
			return nil, nil, internalf("province %d owns no cells", i)
		}
		p.ID = i
		p.IsLand = seeds[i].IsLand
		p.Center = [2]float64{sumX[i] / float64(p.Area), sumY[i] / float64(p.Area)}
	}
	return provinces, pixelToID, nil
}

func bordersUnowned(owner []int32, idx, width, height int) bool {
	x, y := idx%width, idx/width
	for _, off := range neigh4 {
		nx, ny := x+off[0], y+off[1]
		if inBounds(nx, ny, width, height) && owner[ny*width+nx] < 0 {
			return true
		}
	}
	return false
}

// grow runs a multi-source Dijkstra. The first pop of a cell carries its
// lowest cost and, among equal costs, its lowest seed index.
func grow(pq *growthQueue, owner []int32, best []float64, bestSeed []int32, width, height int,
	allowed func(seed int32, cell int) bool, stepCost func(from, to int) float64) {
	for pq.Len() > 0 {
		item := heap.Pop(pq).(growthItem)
		cell := int(item.cell)
		if owner[cell] >= 0 && owner[cell] != item.seed {
			continue
		}
		if owner[cell] < 0 {
			owner[cell] = item.seed
		}
		x, y := cell%width, cell/width
		for _, off := range neigh4 {
			nx, ny := x+off[0], y+off[1]
			if !inBounds(nx, ny, width, height) {
				continue
			}
			nIdx := ny*width + nx
			if owner[nIdx] >= 0 || !allowed(item.seed, nIdx) {
				continue
			}
			c := item.cost + stepCost(cell, nIdx)
			if c < best[nIdx] || (c == best[nIdx] && item.seed < bestSeed[nIdx]) {
				best[nIdx], bestSeed[nIdx] = c, item.seed
				heap.Push(pq, growthItem{cost: c, seed: item.seed, cell: int32(nIdx)})
			}
		}
	}
}

type growthItem struct {
	cost float64
	seed int32
	cell int32
}

type growthQueue []growthItem

func (q growthQueue) Len() int { return len(q) }

func (q growthQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	if q[i].seed != q[j].seed {
		return q[i].seed < q[j].seed
	}
	return q[i].cell < q[j].cell
}

func (q growthQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *growthQueue) Push(x any) { *q = append(*q, x.(growthItem)) }

func (q *growthQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}
