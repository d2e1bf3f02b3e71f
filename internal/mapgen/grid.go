package mapgen

import (
	"math"
	"runtime"
	"sync"
)

// Heightmap is a row-major grid of elevations in [0,1].
type Heightmap struct {
	Width  int
	Height int
	Data   []float32
}

// ScalarField is a row-major grid of one scalar per cell.
type ScalarField struct {
	Width  int
	Height int
	Data   []float32
}

// Vec2 is a wind vector: +X points east, +Y points south (down the rows).
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Len returns the vector magnitude.
func (v Vec2) Len() float64 {
	return math.Hypot(float64(v.X), float64(v.Y))
}

// WindField is a row-major grid of wind vectors.
type WindField struct {
	Width  int
	Height int
	Data   []Vec2
}

// At returns the elevation at (x, y). Callers keep coordinates in range.
func (h Heightmap) At(x, y int) float32 { return h.Data[y*h.Width+x] }

// At returns the field value at (x, y).
func (f ScalarField) At(x, y int) float32 { return f.Data[y*f.Width+x] }

var (
	neigh4 = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	neigh8 = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func inBounds(x, y, width, height int) bool {
	return x >= 0 && y >= 0 && x < width && y < height
}

// parallelRows splits [0, rows) into contiguous chunks and runs fn on each
// chunk from its own goroutine. fn must only write to indices derived from
// its own rows.
func parallelRows(rows, workers int, fn func(start, end int)) {
	if rows <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		fn(0, rows)
		return
	}

	var wg sync.WaitGroup
	chunkSize := (rows + workers - 1) / workers
	for start := 0; start < rows; start += chunkSize {
		end := min(start+chunkSize, rows)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}

func clampFloat(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func smoothstep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
