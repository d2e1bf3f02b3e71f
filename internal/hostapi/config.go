package hostapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/appengine-ltd/mapgen/internal/mapgen"
)

// Config is the JSON document a host passes in. Every field is optional;
// omitted fields keep the value from DefaultConfig.
type Config struct {
	Seed                    uint64  `json:"seed"`
	WorldType               string  `json:"worldType"`
	Width                   int     `json:"width"`
	Height                  int     `json:"height"`
	GlobalTemperatureOffset float64 `json:"globalTemperatureOffset"`
	GlobalHumidityOffset    float64 `json:"globalHumidityOffset"`
	TotalProvinces          int     `json:"totalProvinces"`
	ElevationPower          float64 `json:"elevationPower"`
	SmoothRadius            int     `json:"smoothRadius"`
	IslandDensity           float64 `json:"islandDensity"`
	MinIslandSize           int     `json:"minIslandSize"`
	MountainCompression     float64 `json:"mountainCompression"`
	PolarAmplification      float64 `json:"polarAmplification"`
	ClimateLatitudeExponent float64 `json:"climateLatitudeExponent"`
	IncludeRivers           bool    `json:"includeRivers"`
}

// DefaultConfig mirrors mapgen.DefaultParams.
func DefaultConfig() Config {
	p := mapgen.DefaultParams()
	return Config{
		Seed:                    p.Seed,
		WorldType:               p.WorldType.String(),
		Width:                   p.Width,
		Height:                  p.Height,
		GlobalTemperatureOffset: p.Climate.GlobalTemperatureOffset,
		GlobalHumidityOffset:    p.Climate.GlobalHumidityOffset,
		TotalProvinces:          p.Terrain.TotalProvinces,
		ElevationPower:          p.Terrain.ElevationPower,
		SmoothRadius:            p.Terrain.SmoothRadius,
		IslandDensity:           p.Islands.IslandDensity,
		MinIslandSize:           p.Islands.MinIslandSize,
		MountainCompression:     p.Terrain.MountainCompression,
		PolarAmplification:      p.Climate.PolarAmplification,
		ClimateLatitudeExponent: p.Climate.ClimateLatitudeExponent,
	}
}

// DecodeConfig parses a JSON object over DefaultConfig. Unknown keys are
// ignored. Errors wrap mapgen.ErrInvalidConfig.
func DecodeConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Config{}, fmt.Errorf("%w: config must be a JSON object", mapgen.ErrInvalidConfig)
	}
	if err := json.Unmarshal(trimmed, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: decode config: %v", mapgen.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// LoadConfig reads and decodes a config file.
func LoadConfig(path string) (Config, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return DecodeConfig(blob)
}

// Params converts the config into validated generation parameters.
func (c Config) Params() (mapgen.WorldGenerationParams, error) {
	p := mapgen.WorldGenerationParams{
		Seed:      c.Seed,
		Width:     c.Width,
		Height:    c.Height,
		WorldType: mapgen.ParseWorldType(c.WorldType),
		Terrain: mapgen.TerrainSettings{
			ElevationPower:      c.ElevationPower,
			SmoothRadius:        c.SmoothRadius,
			MountainCompression: c.MountainCompression,
			TotalProvinces:      c.TotalProvinces,
		},
		Islands: mapgen.IslandSettings{
			IslandDensity: c.IslandDensity,
			MinIslandSize: c.MinIslandSize,
		},
		Climate: mapgen.ClimateSettings{
			GlobalTemperatureOffset: c.GlobalTemperatureOffset,
			GlobalHumidityOffset:    c.GlobalHumidityOffset,
			PolarAmplification:      c.PolarAmplification,
			ClimateLatitudeExponent: c.ClimateLatitudeExponent,
		},
	}
	if err := p.Validate(); err != nil {
		return mapgen.WorldGenerationParams{}, err
	}
	return p, nil
}
