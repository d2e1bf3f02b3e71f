package mapgen

// WorldType selects the large-scale shape of the generated world.
type WorldType uint8

const (
	WorldEarthLike WorldType = iota
	WorldSupercontinent
	WorldArchipelago
	WorldMediterranean
	WorldIceAgeEarth
	WorldDesertMediterranean
)

var worldTypeNames = [...]string{
	WorldEarthLike:           "EarthLike",
	WorldSupercontinent:      "Supercontinent",
	WorldArchipelago:         "Archipelago",
	WorldMediterranean:       "Mediterranean",
	WorldIceAgeEarth:         "IceAgeEarth",
	WorldDesertMediterranean: "DesertMediterranean",
}

// WorldTypes lists every world type in declaration order.
func WorldTypes() []WorldType {
	out := make([]WorldType, len(worldTypeNames))
	for i := range worldTypeNames {
		out[i] = WorldType(i)
	}
	return out
}

func (t WorldType) String() string {
	if int(t) < len(worldTypeNames) {
		return worldTypeNames[t]
	}
	return worldTypeNames[WorldEarthLike]
}

// ParseWorldType maps a name to a WorldType. The match is exact and
// case-sensitive; anything unrecognised, including the empty string, is
// EarthLike.
func ParseWorldType(s string) WorldType {
	t, _ := LookupWorldType(s)
	return t
}

// LookupWorldType is ParseWorldType that also reports whether s was a
// known name.
func LookupWorldType(s string) (WorldType, bool) {
	for i, name := range worldTypeNames {
		if name == s {
			return WorldType(i), true
		}
	}
	return WorldEarthLike, false
}

// terrainProfile holds the per-world-type knobs of the elevation synthesizer.
type terrainProfile struct {
	frequency   float64 // base noise frequency in cycles per map width
	octaves     int
	persistence float64
	landShare   float64 // target fraction of land cells before pruning
	maskWeight  float64 // how strongly the continental mask shapes the noise
	mask        maskShape
	islandBias  float64 // multiplier on island density
}

type maskShape uint8

const (
	maskContinents maskShape = iota
	maskRadial
	maskNone
	maskInlandSea
)

func (t WorldType) terrainProfile() terrainProfile {
	switch t {
	case WorldSupercontinent:
		return terrainProfile{frequency: 2.2, octaves: 6, persistence: 0.5, landShare: 0.45, maskWeight: 0.75, mask: maskRadial, islandBias: 0.4}
	case WorldArchipelago:
		return terrainProfile{frequency: 5.5, octaves: 5, persistence: 0.55, landShare: 0.26, maskWeight: 0.2, mask: maskNone, islandBias: 2.5}
	case WorldMediterranean, WorldDesertMediterranean:
		return terrainProfile{frequency: 3, octaves: 6, persistence: 0.5, landShare: 0.55, maskWeight: 0.7, mask: maskInlandSea, islandBias: 0.8}
	case WorldIceAgeEarth:
		return terrainProfile{frequency: 2.6, octaves: 6, persistence: 0.5, landShare: 0.46, maskWeight: 0.55, mask: maskContinents, islandBias: 0.8}
	default:
		return terrainProfile{frequency: 2.6, octaves: 6, persistence: 0.5, landShare: 0.38, maskWeight: 0.55, mask: maskContinents, islandBias: 1}
	}
}

// climateBias returns the temperature (°C) and humidity shifts a world type
// adds on top of the configured global offsets.
func (t WorldType) climateBias() (tempC, humidity float64) {
	switch t {
	case WorldIceAgeEarth:
		return -6, -0.05
	case WorldDesertMediterranean:
		return 3, -0.2
	default:
		return 0, 0
	}
}
