package worldstats

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"github.com/appengine-ltd/mapgen/internal/mapgen"
)

// Slopes are reported in degrees for a world whose cells are cellMeters
// wide and whose elevation range [0,1] spans reliefMeters.
const (
	cellMeters   = 1000.0
	reliefMeters = 8000.0
)

// Summary is a compact description of a generated world.
type Summary struct {
	Seed      uint64 `json:"seed"`
	WorldType string `json:"world_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`

	ElevP10    float64 `json:"elev_p10"`
	ElevP50    float64 `json:"elev_p50"`
	ElevP90    float64 `json:"elev_p90"`
	SlopeP50   float64 `json:"slope_p50"`
	SlopeP90   float64 `json:"slope_p90"`
	Ruggedness float64 `json:"ruggedness"`

	LandRatio     float64 `json:"land_ratio"`
	LakeCoverage  float64 `json:"lake_coverage"`
	RiverCoverage float64 `json:"river_coverage"`
	Rivers        int     `json:"rivers"`

	MeanLandTempC    float64 `json:"mean_land_temp_c"`
	MeanLandHumidity float64 `json:"mean_land_humidity"`

	Biomes []BiomeShare `json:"biomes"`

	Provinces        int     `json:"provinces"`
	LandProvinces    int     `json:"land_provinces"`
	CoastalProvinces int     `json:"coastal_provinces"`
	MeanProvinceArea float64 `json:"mean_province_area"`
	Regions          int     `json:"regions"`
	LargestRegion    int     `json:"largest_region"`
	ProvinceEdges    int     `json:"province_edges"`
}

// BiomeShare is one row of the biome histogram.
type BiomeShare struct {
	Biome string  `json:"biome"`
	Cells int     `json:"cells"`
	Share float64 `json:"share"`
}

// Summarize derives a Summary from w. Biomes with no cells are omitted and
// the rest are ordered by descending cell count.
func Summarize(w *mapgen.World) Summary {
	s := Summary{
		Seed:      w.Params.Seed,
		WorldType: w.Params.WorldType.String(),
		Width:     w.Params.Width,
		Height:    w.Params.Height,
		LandRatio: round(w.LandRatio, 4),
		Rivers:    len(w.Rivers.Rivers),
	}
	n := len(w.Heightmap.Data)
	if n == 0 {
		return s
	}

	elev := make([]float64, n)
	for i, v := range w.Heightmap.Data {
		elev[i] = float64(v)
	}
	sorted := slices.Sorted(slices.Values(elev))
	s.ElevP10 = round(mapgen.PercentileSorted(sorted, 0.10), 3)
	s.ElevP50 = round(mapgen.PercentileSorted(sorted, 0.50), 3)
	s.ElevP90 = round(mapgen.PercentileSorted(sorted, 0.90), 3)

	slopes := computeSlopeDegrees(elev, w.Params.Width, w.Params.Height)
	slices.Sort(slopes)
	s.SlopeP50 = round(mapgen.PercentileSorted(slopes, 0.50), 3)
	s.SlopeP90 = round(mapgen.PercentileSorted(slopes, 0.90), 3)
	s.Ruggedness = round(computeRuggedness(elev), 4)

	lakes, riverCells, land := 0, 0, 0
	tempSum, humSum := 0.0, 0.0
	for i, t := range w.Water.Data {
		switch t {
		case mapgen.WaterLake:
			lakes++
		case mapgen.WaterLand:
			land++
			tempSum += float64(w.Temperature.Data[i])
			humSum += float64(w.Humidity.Data[i])
		}
	}
	for _, on := range w.Rivers.Mask {
		if on {
			riverCells++
		}
	}
	s.LakeCoverage = round(float64(lakes)/float64(n), 4)
	s.RiverCoverage = round(float64(riverCells)/float64(n), 4)
	if land > 0 {
		s.MeanLandTempC = round(tempSum/float64(land), 2)
		s.MeanLandHumidity = round(humSum/float64(land), 3)
	}

	s.Biomes = biomeHistogram(w.Biomes.Data)

	s.Provinces = len(w.Provinces)
	area := 0
	for _, p := range w.Provinces {
		if p.IsLand {
			s.LandProvinces++
		}
		if p.Coastal {
			s.CoastalProvinces++
		}
		area += p.Area
	}
	if s.Provinces > 0 {
		s.MeanProvinceArea = round(float64(area)/float64(s.Provinces), 2)
	}
	s.Regions = len(w.Regions)
	for _, r := range w.Regions {
		s.LargestRegion = max(s.LargestRegion, len(r.ProvinceIDs))
	}
	s.ProvinceEdges = w.Graph.EdgeCount()
	return s
}

func biomeHistogram(cells []mapgen.Biome) []BiomeShare {
	var counts [mapgen.BiomeCount]int
	for _, b := range cells {
		if b < mapgen.BiomeCount {
			counts[b]++
		}
	}
	out := make([]BiomeShare, 0, len(counts))
	for b, c := range counts {
		if c == 0 {
			continue
		}
		out = append(out, BiomeShare{
			Biome: mapgen.Biome(b).String(),
			Cells: c,
			Share: round(float64(c)/float64(len(cells)), 4),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Cells == out[j].Cells {
			return out[i].Biome < out[j].Biome
		}
		return out[i].Cells > out[j].Cells
	})
	return out
}

// WriteSummary stores s as indented JSON, creating parent directories.
func WriteSummary(path string, s Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	blob, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	blob = append(blob, '\n')
	return os.WriteFile(path, blob, 0o644)
}

func computeSlopeDegrees(elev []float64, width, height int) []float64 {
	if width < 3 || height < 3 {
		return []float64{0}
	}
	slopes := make([]float64, 0, (width-2)*(height-2))
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			idx := y*width + x
			dzdx := (elev[idx+1] - elev[idx-1]) * reliefMeters / (2 * cellMeters)
			dzdy := (elev[idx+width] - elev[idx-width]) * reliefMeters / (2 * cellMeters)
			g := math.Sqrt(dzdx*dzdx + dzdy*dzdy)
			slopes = append(slopes, math.Atan(g)*180/math.Pi)
		}
	}
	return slopes
}

// computeRuggedness is the standard deviation of elevation.
func computeRuggedness(elev []float64) float64 {
	if len(elev) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range elev {
		sum += v
	}
	mean := sum / float64(len(elev))
	ss := 0.0
	for _, v := range elev {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(elev)))
}

// round keeps digits decimal places.
func round(v float64, digits int) float64 {
	scale := math.Pow10(digits)
	return math.Round(v*scale) / scale
}
