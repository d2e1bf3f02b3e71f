package mapgen

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// World is the assembled output of one pipeline run.
type World struct {
	Params WorldGenerationParams

	Heightmap   Heightmap
	Temperature ScalarField
	Wind        WindField
	Humidity    ScalarField
	Biomes      BiomeMap
	Water       WaterMap
	Rivers      RiverMap

	Seeds           []ProvinceSeed
	Provinces       []Province
	PixelToProvince []uint32
	Graph           ProvinceGraph

	Regions        []Region
	ProvinceRegion []uint32 // region id per province id
	PixelToRegion  []uint32

	LandRatio float64
}

type options struct {
	logger  *slog.Logger
	workers int
}

// Option tunes a Generate call.
type Option func(*options)

// WithLogger sends per-stage diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithParallelism caps the goroutines used by cell-grid stages; n <= 0 uses
// GOMAXPROCS. Output does not depend on n.
func WithParallelism(n int) Option {
	return func(o *options) { o.workers = n }
}

// Generate runs every stage in order and assembles the World. Errors wrap
// ErrInvalidConfig or ErrInternal; no partial World is ever returned.
func Generate(params WorldGenerationParams, opts ...Option) (*World, error) {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	log := o.logger.With("seed", params.Seed, "world_type", params.WorldType.String())
	done := func(name string, t0 time.Time) {
		log.LogAttrs(context.Background(), slog.LevelDebug, "stage complete",
			slog.String("stage", name), slog.Duration("elapsed", time.Since(t0)))
	}
	// run times a stage that cannot fail; stage times one that can.
	run := func(name string, fn func()) {
		t0 := time.Now()
		fn()
		done(name, t0)
	}
	stage := func(name string, fn func() error) error {
		t0 := time.Now()
		err := fn()
		done(name, t0)
		return err
	}

	w := &World{Params: params}
	width, height := params.Width, params.Height

	run("elevation", func() {
		hm := generateHeightmap(params.Seed, width, height, params.WorldType, params.Islands.IslandDensity, params.Terrain, o.workers)
		w.Heightmap = PruneIslands(hm, SeaLevel, params.Islands.MinIslandSize)
	})

	run("climate", func() {
		tempBias, humBias := params.WorldType.climateBias()
		c := params.Climate
		w.Temperature, w.Wind = generateClimateMaps(params.Seed, width, height, w.Heightmap,
			c.GlobalTemperatureOffset+tempBias, c.PolarAmplification, c.ClimateLatitudeExponent, SeaLevel, o.workers)
		w.Humidity = calculateHumidity(width, height, w.Heightmap, w.Wind, SeaLevel, c.GlobalHumidityOffset+humBias, o.workers)
	})

	run("biomes", func() {
		w.Biomes = assignBiomes(w.Heightmap, w.Temperature, w.Humidity, SeaLevel, o.workers)
	})

	run("water", func() {
		w.Water = ClassifyWater(w.Heightmap, SeaLevel)
		w.LandRatio = LandRatio(w.Water)
	})

	if err := stage("rivers", func() error {
		var err error
		w.Rivers, err = GenerateRivers(w.Heightmap, w.Biomes)
		return err
	}); err != nil {
		return nil, err
	}

	if err := stage("provinces", func() error {
		numLand, numSea := SplitProvinceCount(params.Terrain.TotalProvinces)
		w.Seeds = GenerateProvinceSeeds(w.Heightmap, w.Biomes, w.Water, numLand, numSea, params.Seed)
		var err error
		w.Provinces, w.PixelToProvince, err = GenerateProvincesFromSeeds(w.Heightmap, w.Biomes, w.Water, w.Seeds)
		return err
	}); err != nil {
		return nil, err
	}

	run("graph", func() {
		w.Graph = BuildProvinceGraph(w.Provinces, w.PixelToProvince, width, height)
	})

	if err := stage("regions", func() error {
		var err error
		w.Regions, err = GroupProvincesIntoRegions(w.Provinces, w.Graph, RegionTargetSize)
		return err
	}); err != nil {
		return nil, err
	}

	w.ProvinceRegion = provinceRegionIndex(len(w.Provinces), w.Regions)
	w.PixelToRegion = make([]uint32, len(w.PixelToProvince))
	for i, p := range w.PixelToProvince {
		w.PixelToRegion[i] = w.ProvinceRegion[p]
	}

	if err := checkWorld(w); err != nil {
		return nil, err
	}

	log.Info("world generated",
		"width", width,
		"height", height,
		"land_ratio", w.LandRatio,
		"rivers", len(w.Rivers.Rivers),
		"provinces", len(w.Provinces),
		"regions", len(w.Regions),
		"elapsed", time.Since(started),
	)
	return w, nil
}

// provinceRegionIndex maps province id to region id in one pass over the
// regions.
func provinceRegionIndex(numProvinces int, regions []Region) []uint32 {
	idx := make([]uint32, numProvinces)
	for _, r := range regions {
		for _, p := range r.ProvinceIDs {
			idx[p] = uint32(r.ID)
		}
	}
	return idx
}

// GenerateHeightmapOnly runs just the elevation stage with default EarthLike
// settings.
func GenerateHeightmapOnly(seed uint64, width, height int) (Heightmap, error) {
	params := DefaultParams()
	params.Seed, params.Width, params.Height = seed, width, height
	if err := params.Validate(); err != nil {
		return Heightmap{}, err
	}
	hm := GenerateHeightmap(seed, width, height, WorldEarthLike, params.Islands.IslandDensity, params.Terrain)
	return PruneIslands(hm, SeaLevel, params.Islands.MinIslandSize), nil
}

// checkWorld verifies the cross-stage invariants of an assembled World.
func checkWorld(w *World) error {
	n := w.Params.Width * w.Params.Height
	if len(w.Heightmap.Data) != n || len(w.Biomes.Data) != n || len(w.Water.Data) != n ||
		len(w.PixelToProvince) != n || len(w.PixelToRegion) != n {
		return internalf("layer sizes do not match %d cells", n)
	}
	for i, h := range w.Heightmap.Data {
		if !(h >= 0 && h <= 1) {
			return internalf("elevation %v at cell %d is outside [0,1]", h, i)
		}
		if (w.Water.Data[i] == WaterLand) != (float64(h) > SeaLevel) {
			return internalf("cell %d water class %s disagrees with elevation %v", i, w.Water.Data[i], h)
		}
	}
	for i, b := range w.Biomes.Data {
		if b >= BiomeCount {
			return internalf("cell %d has biome code %d", i, b)
		}
	}
	area := 0
	for _, p := range w.Provinces {
		area += p.Area
	}
	if area != n {
		return internalf("province areas sum to %d, want %d", area, n)
	}
	for _, r := range w.Regions {
		if len(r.ProvinceIDs) == 0 {
			return internalf("region %d is empty", r.ID)
		}
	}
	return nil
}
