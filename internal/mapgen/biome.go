package mapgen

// Biome is a per-cell land-cover code.
type Biome uint8

const (
	BiomeDeepOcean Biome = iota
	BiomeOcean
	BiomeSeaIce
	BiomeSnow
	BiomeTundra
	BiomeTaiga
	BiomeColdDesert
	BiomeGrassland
	BiomeShrubland
	BiomeTemperateForest
	BiomeTemperateRainforest
	BiomeHotDesert
	BiomeSavanna
	BiomeTropicalSeasonalForest
	BiomeTropicalRainforest
	BiomeWetland
	BiomeAlpine
	BiomeMountain

	// BiomeCount is the number of biome codes; valid codes are below it.
	BiomeCount
)

const (
	alpineElevation   = 0.78
	mountainElevation = 0.88
	seaIceBelowC      = -8.0
	deepWaterFraction = 0.6
	wetlandMaxRise    = 0.05
)

var biomeNames = [BiomeCount]string{
	BiomeDeepOcean:              "deep_ocean",
	BiomeOcean:                  "ocean",
	BiomeSeaIce:                 "sea_ice",
	BiomeSnow:                   "snow",
	BiomeTundra:                 "tundra",
	BiomeTaiga:                  "taiga",
	BiomeColdDesert:             "cold_desert",
	BiomeGrassland:              "grassland",
	BiomeShrubland:              "shrubland",
	BiomeTemperateForest:        "temperate_forest",
	BiomeTemperateRainforest:    "temperate_rainforest",
	BiomeHotDesert:              "hot_desert",
	BiomeSavanna:                "savanna",
	BiomeTropicalSeasonalForest: "tropical_seasonal_forest",
	BiomeTropicalRainforest:     "tropical_rainforest",
	BiomeWetland:                "wetland",
	BiomeAlpine:                 "alpine",
	BiomeMountain:               "mountain",
}

func (b Biome) String() string {
	if b < BiomeCount {
		return biomeNames[b]
	}
	return "unknown"
}

// IsWater reports whether b is one of the below-sea-level codes.
func (b Biome) IsWater() bool {
	return b == BiomeDeepOcean || b == BiomeOcean || b == BiomeSeaIce
}

// BiomeMap is a row-major grid of biome codes.
type BiomeMap struct {
	Width  int
	Height int
	Data   []Biome
}

// ClassifyBiome picks exactly one biome for any input, NaN included.
func ClassifyBiome(elevation, temperatureC, humidity, seaLevel float64) Biome {
	if elevation <= seaLevel {
		switch {
		case temperatureC < seaIceBelowC:
			return BiomeSeaIce
		case elevation < seaLevel*deepWaterFraction:
			return BiomeDeepOcean
		default:
			return BiomeOcean
		}
	}

	switch {
	case elevation >= mountainElevation:
		return BiomeMountain
	case elevation >= alpineElevation:
		return BiomeAlpine
	}

	lowland := elevation-seaLevel < wetlandMaxRise
	switch {
	case temperatureC < -8:
		return BiomeSnow
	case temperatureC < 0:
		if humidity < 0.2 {
			return BiomeColdDesert
		}
		return BiomeTundra
	case temperatureC < 7:
		switch {
		case humidity < 0.25:
			return BiomeColdDesert
		case humidity > 0.88 && lowland:
			return BiomeWetland
		default:
			return BiomeTaiga
		}
	case temperatureC < 20:
		switch {
		case humidity < 0.15:
			return BiomeColdDesert
		case humidity < 0.35:
			return BiomeGrassland
		case humidity < 0.5:
			return BiomeShrubland
		case humidity > 0.9 && lowland:
			return BiomeWetland
		case humidity < 0.75:
			return BiomeTemperateForest
		default:
			return BiomeTemperateRainforest
		}
	case temperatureC >= 20:
		switch {
		case humidity < 0.2:
			return BiomeHotDesert
		case humidity < 0.4:
			return BiomeSavanna
		case humidity > 0.92 && lowland:
			return BiomeWetland
		case humidity < 0.65:
			return BiomeTropicalSeasonalForest
		default:
			return BiomeTropicalRainforest
		}
	}
	return BiomeGrassland
}

// AssignBiomes classifies every cell.
func AssignBiomes(hm Heightmap, temperature, humidity ScalarField, seaLevel float64) BiomeMap {
	return assignBiomes(hm, temperature, humidity, seaLevel, 0)
}

func assignBiomes(hm Heightmap, temperature, humidity ScalarField, seaLevel float64, workers int) BiomeMap {
	out := BiomeMap{Width: hm.Width, Height: hm.Height, Data: make([]Biome, len(hm.Data))}
	parallelRows(hm.Height, workers, func(start, end int) {
		for idx := start * hm.Width; idx < end*hm.Width; idx++ {
			out.Data[idx] = ClassifyBiome(float64(hm.Data[idx]), float64(temperature.Data[idx]), float64(humidity.Data[idx]), seaLevel)
		}
	})
	return out
}

// movementCost is the relative difficulty of crossing a biome; province
// growth uses it so borders settle along rough terrain.
func (b Biome) movementCost() float64 {
	switch b {
	case BiomeMountain:
		return 3
	case BiomeAlpine, BiomeSnow:
		return 2
	case BiomeWetland, BiomeTropicalRainforest, BiomeTaiga:
		return 1
	case BiomeHotDesert, BiomeColdDesert, BiomeTemperateRainforest:
		return 0.6
	default:
		return 0
	}
}
