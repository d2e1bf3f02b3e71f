package mapgen

// WaterType separates land from open sea and enclosed lakes.
type WaterType uint8

const (
	WaterLand WaterType = iota
	WaterSea
	WaterLake
)

func (w WaterType) String() string {
	switch w {
	case WaterLand:
		return "land"
	case WaterSea:
		return "sea"
	case WaterLake:
		return "lake"
	default:
		return "unknown"
	}
}

// WaterMap is a row-major grid of water classifications.
type WaterMap struct {
	Width  int
	Height int
	Data   []WaterType
}

// IsLand reports whether cell idx is land.
func (w WaterMap) IsLand(idx int) bool { return w.Data[idx] == WaterLand }

// ClassifyWater labels every cell. Water connected to the map border through
// 4-adjacent water cells is sea; other water is lake.
func ClassifyWater(hm Heightmap, seaLevel float64) WaterMap {
	width, height := hm.Width, hm.Height
	out := WaterMap{Width: width, Height: height, Data: make([]WaterType, len(hm.Data))}
	queue := make([]int, 0, 2*(width+height))

	for idx, h := range hm.Data {
		if float64(h) > seaLevel {
			out.Data[idx] = WaterLand
			continue
		}
		out.Data[idx] = WaterLake
		x, y := idx%width, idx/width
		if x == 0 || y == 0 || x == width-1 || y == height-1 {
			out.Data[idx] = WaterSea
			queue = append(queue, idx)
		}
	}

	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		x, y := idx%width, idx/width
		for _, off := range neigh4 {
			nx, ny := x+off[0], y+off[1]
			if !inBounds(nx, ny, width, height) {
				continue
			}
			nIdx := ny*width + nx
			if out.Data[nIdx] != WaterLake {
				continue
			}
			out.Data[nIdx] = WaterSea
			queue = append(queue, nIdx)
		}
	}
	return out
}

// LandRatio is the fraction of cells classified as land.
func LandRatio(w WaterMap) float64 {
	if len(w.Data) == 0 {
		return 0
	}
	land := 0
	for _, t := range w.Data {
		if t == WaterLand {
			land++
		}
	}
	return float64(land) / float64(len(w.Data))
}
