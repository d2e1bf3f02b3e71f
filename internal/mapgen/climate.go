package mapgen

import (
	"math"
)

const (
	equatorTempC      = 28.0
	poleCoolingSpanC  = 50.0
	lapseRateSpanC    = 30.0
	polarBandStart    = 0.6
	temperatureJitter = 1.5

	moistureDecayCells = 8.0
	moistureCarry      = 0.9
	rainShadowLoss     = 3.0
	maxAdvectionPasses = 32
)

// latitude maps a row to [-1,1]: -1 is the northern edge, +1 the southern.
func latitude(y, height int) float64 {
	if height <= 1 {
		return 0
	}
	return (float64(y)+0.5)/float64(height)*2 - 1
}

// GenerateClimateMaps computes surface temperature (°C) and prevailing wind.
func GenerateClimateMaps(seed uint64, width, height int, hm Heightmap, tempOffset, polarAmplification, latitudeExponent, seaLevel float64) (ScalarField, WindField) {
	return generateClimateMaps(seed, width, height, hm, tempOffset, polarAmplification, latitudeExponent, seaLevel, 0)
}

func generateClimateMaps(seed uint64, width, height int, hm Heightmap, tempOffset, polarAmplification, latitudeExponent, seaLevel float64, workers int) (ScalarField, WindField) {
	temp := ScalarField{Width: width, Height: height, Data: make([]float32, width*height)}
	wind := WindField{Width: width, Height: height, Data: make([]Vec2, width*height)}
	if latitudeExponent <= 0 {
		latitudeExponent = 1
	}
	jitter := newJitterNoise(noiseSeed(seed, "temperature"), 6)
	landSpan := math.Max(1-seaLevel, 1e-6)

	parallelRows(height, workers, func(start, end int) {
		for y := start; y < end; y++ {
			lat := latitude(y, height)
			absLat := math.Abs(lat)
			coldness := math.Pow(absLat, latitudeExponent)
			polar := smoothstep((absLat - polarBandStart) / (1 - polarBandStart))
			cooling := poleCoolingSpanC * coldness * lerp(1, polarAmplification, polar)
			belt := beltWind(-lat * 90)
			v := (float64(y) + 0.5) / float64(height)

			for x := 0; x < width; x++ {
				idx := y*width + x
				h := float64(hm.Data[idx])
				t := equatorTempC - cooling
				if h > seaLevel {
					t -= lapseRateSpanC * (h - seaLevel) / landSpan
				}
				u := (float64(x) + 0.5) / float64(width)
				t += temperatureJitter*jitter.Eval2(u, v) + tempOffset
				temp.Data[idx] = float32(t)

				w := belt
				if h > seaLevel {
					gx, gy := elevationGradient(hm, x, y)
					w[0] -= 4 * gx
					w[1] -= 4 * gy
					damp := 1 - 0.5*(h-seaLevel)/landSpan
					w[0] *= damp
					w[1] *= damp
				}
				wind.Data[idx] = Vec2{X: float32(w[0]), Y: float32(w[1])}
			}
		}
	})
	return temp, wind
}

// beltWind returns the prevailing wind for a latitude in degrees (positive
// north) from a three-cell circulation model, in grid orientation.
func beltWind(latDeg float64) [2]float64 {
	latAbs := math.Abs(latDeg)
	var degree float64
	switch {
	case latAbs <= 30:
		change := 90 * latAbs / 30
		if latDeg > 0 {
			degree = 180 + change
		} else {
			degree = 180 - change
		}
	case latAbs <= 60:
		change := 90 * (latAbs - 30) / 30
		if latDeg > 0 {
			degree = 90 - change
		} else {
			degree = 270 + change
		}
	default:
		change := 90 * (latAbs - 60) / 30
		if latDeg > 0 {
			degree = 180 + change
		} else {
			degree = 180 - change
		}
	}
	rad := degree * math.Pi / 180
	// Screen Y grows southward.
	return [2]float64{math.Cos(rad), -math.Sin(rad)}
}

func elevationGradient(hm Heightmap, x, y int) (float64, float64) {
	x0, x1 := max(0, x-1), min(hm.Width-1, x+1)
	y0, y1 := max(0, y-1), min(hm.Height-1, y+1)
	var gx, gy float64
	if x1 > x0 {
		gx = float64(hm.At(x1, y)-hm.At(x0, y)) / float64(x1-x0)
	}
	if y1 > y0 {
		gy = float64(hm.At(x, y1)-hm.At(x, y0)) / float64(y1-y0)
	}
	return gx, gy
}

// CalculateHumidity derives humidity in [0,1] from distance to water and
// moisture carried along the wind, with drying over rising terrain.
func CalculateHumidity(width, height int, hm Heightmap, wind WindField, seaLevel, humidityOffset float64) ScalarField {
	return calculateHumidity(width, height, hm, wind, seaLevel, humidityOffset, 0)
}

func calculateHumidity(width, height int, hm Heightmap, wind WindField, seaLevel, humidityOffset float64, workers int) ScalarField {
	n := width * height
	isWater := make([]bool, n)
	for i, h := range hm.Data {
		isWater[i] = float64(h) <= seaLevel
	}
	dist := waterDistance(isWater, width, height)

	base := make([]float64, n)
	for i := range base {
		switch {
		case isWater[i]:
			base[i] = 1
		case dist[i] >= 0:
			base[i] = 0.7 * math.Exp(-float64(dist[i])/moistureDecayCells)
		}
	}

	upwind := make([]int, n)
	for i := range upwind {
		upwind[i] = upwindIndex(wind.Data[i], i%width, i/width, width, height)
	}

	cur := append([]float64(nil), base...)
	next := make([]float64, n)
	passes := min(maxAdvectionPasses, max(width, height))
	for pass := 0; pass < passes; pass++ {
		parallelRows(height, workers, func(start, end int) {
			for idx := start * width; idx < end*width; idx++ {
				m := base[idx]
				if up := upwind[idx]; up >= 0 && !isWater[idx] {
					rise := math.Max(0, float64(hm.Data[idx]-hm.Data[up]))
					m = math.Max(m, cur[up]*moistureCarry-rise*rainShadowLoss)
				}
				next[idx] = m
			}
		})
		cur, next = next, cur
	}

	out := ScalarField{Width: width, Height: height, Data: make([]float32, n)}
	for i, m := range cur {
		if h := float64(hm.Data[i]); h > seaLevel {
			m -= 0.4 * (h - seaLevel)
		}
		out.Data[i] = float32(clampFloat(m+humidityOffset, 0, 1))
	}
	return out
}

// waterDistance returns the 4-connected step distance from each cell to the
// nearest water cell, or -1 when the map has no water.
func waterDistance(isWater []bool, width, height int) []int {
	dist := make([]int, len(isWater))
	queue := make([]int, 0, len(isWater))
	for i, w := range isWater {
		if w {
			queue = append(queue, i)
		} else {
			dist[i] = -1
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
			if dist[nIdx] >= 0 {
				continue
			}
			dist[nIdx] = dist[idx] + 1
			queue = append(queue, nIdx)
		}
	}
	return dist
}

func upwindIndex(w Vec2, x, y, width, height int) int {
	l := w.Len()
	if l < 1e-6 {
		return -1
	}
	ux := x - int(math.Round(float64(w.X)/l))
	uy := y - int(math.Round(float64(w.Y)/l))
	if (ux == x && uy == y) || !inBounds(ux, uy, width, height) {
		return -1
	}
	return uy*width + ux
}
