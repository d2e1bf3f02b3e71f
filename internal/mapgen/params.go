package mapgen

import (
	"fmt"
	"math"
)

const (
	// SeaLevel separates land (elevation > SeaLevel) from water.
	SeaLevel = 0.5
	// RegionTargetSize is the number of provinces the pipeline aims for per region.
	RegionTargetSize = 8
	// LandProvinceShare is the fraction of provinces seeded on land.
	LandProvinceShare = 0.7
)

type TerrainSettings struct {
	ElevationPower      float64
	SmoothRadius        int
	MountainCompression float64
	TotalProvinces      int
}

type IslandSettings struct {
	IslandDensity float64
	MinIslandSize int
}

type ClimateSettings struct {
	GlobalTemperatureOffset float64
	GlobalHumidityOffset    float64
	PolarAmplification      float64
	ClimateLatitudeExponent float64
}

// WorldGenerationParams is the full input of one pipeline run.
type WorldGenerationParams struct {
	Seed      uint64
	Width     int
	Height    int
	WorldType WorldType
	Terrain   TerrainSettings
	Islands   IslandSettings
	Climate   ClimateSettings
}

func DefaultTerrainSettings() TerrainSettings {
	return TerrainSettings{
		ElevationPower:      1.2,
		SmoothRadius:        1,
		MountainCompression: 0.3,
		TotalProvinces:      120,
	}
}

func DefaultIslandSettings() IslandSettings {
	return IslandSettings{
		IslandDensity: 0.3,
		MinIslandSize: 4,
	}
}

func DefaultClimateSettings() ClimateSettings {
	return ClimateSettings{
		PolarAmplification:      1.5,
		ClimateLatitudeExponent: 1.3,
	}
}

// DefaultParams returns the documented defaults used for any field the host
// leaves unset.
func DefaultParams() WorldGenerationParams {
	return WorldGenerationParams{
		Seed:      42,
		Width:     512,
		Height:    256,
		WorldType: WorldEarthLike,
		Terrain:   DefaultTerrainSettings(),
		Islands:   DefaultIslandSettings(),
		Climate:   DefaultClimateSettings(),
	}
}

// Validate rejects parameters no stage can work with. Every error wraps
// ErrInvalidConfig.
func (p WorldGenerationParams) Validate() error {
	if p.Width < 1 {
		return invalidf("width must be >= 1, got %d", p.Width)
	}
	if p.Height < 1 {
		return invalidf("height must be >= 1, got %d", p.Height)
	}
	if p.Width > math.MaxInt32/p.Height {
		return invalidf("map of %dx%d cells is too large", p.Width, p.Height)
	}
	if int(p.WorldType) >= len(worldTypeNames) {
		return invalidf("unknown world type %d", p.WorldType)
	}

	t := p.Terrain
	if t.TotalProvinces < 1 {
		return invalidf("total provinces must be >= 1, got %d", t.TotalProvinces)
	}
	if !finite(t.ElevationPower) || t.ElevationPower <= 0 {
		return invalidf("elevation power must be a positive number, got %v", t.ElevationPower)
	}
	if t.SmoothRadius < 0 {
		return invalidf("smooth radius must be >= 0, got %d", t.SmoothRadius)
	}
	if !inUnit(t.MountainCompression) {
		return invalidf("mountain compression must be within [0,1], got %v", t.MountainCompression)
	}

	if !inUnit(p.Islands.IslandDensity) {
		return invalidf("island density must be within [0,1], got %v", p.Islands.IslandDensity)
	}
	if p.Islands.MinIslandSize < 0 {
		return invalidf("min island size must be >= 0, got %d", p.Islands.MinIslandSize)
	}

	c := p.Climate
	if !finite(c.GlobalTemperatureOffset) {
		return invalidf("global temperature offset must be finite, got %v", c.GlobalTemperatureOffset)
	}
	if !finite(c.GlobalHumidityOffset) {
		return invalidf("global humidity offset must be finite, got %v", c.GlobalHumidityOffset)
	}
	if !finite(c.PolarAmplification) || c.PolarAmplification < 0 {
		return invalidf("polar amplification must be >= 0, got %v", c.PolarAmplification)
	}
	if !finite(c.ClimateLatitudeExponent) || c.ClimateLatitudeExponent <= 0 {
		return invalidf("climate latitude exponent must be a positive number, got %v", c.ClimateLatitudeExponent)
	}
	return nil
}

// SplitProvinceCount divides total into land and sea province counts. The
// two always sum to total.
func SplitProvinceCount(total int) (numLand, numSea int) {
	if total <= 0 {
		return 0, 0
	}
	numLand = int(math.Round(float64(total) * LandProvinceShare))
	return numLand, total - numLand
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func inUnit(v float64) bool {
	return finite(v) && v >= 0 && v <= 1
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}
