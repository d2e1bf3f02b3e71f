package hostapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/appengine-ltd/mapgen/internal/mapgen"
)

func TestDecodeConfigAppliesDefaults(t *testing.T) {
	cfg, err := DecodeConfig([]byte(`{"seed": 7, "width": 32, "unknownKey": true}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	def := DefaultConfig()
	if cfg.Seed != 7 || cfg.Width != 32 {
		t.Fatalf("expected seed 7 width 32, got %d %d", cfg.Seed, cfg.Width)
	}
	if cfg.Height != def.Height || cfg.TotalProvinces != def.TotalProvinces || cfg.ElevationPower != def.ElevationPower {
		t.Fatalf("expected omitted fields to keep defaults, got %+v", cfg)
	}
	if cfg.WorldType != "EarthLike" {
		t.Fatalf("expected default world type EarthLike, got %q", cfg.WorldType)
	}
}

func TestDecodeConfigRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "null", "[1,2]", "not json", `{"width": "wide"}`, `{"seed": -1}`, `{"width": 4`} {
		_, err := DecodeConfig([]byte(raw))
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}
		if !errors.Is(err, mapgen.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig for %q, got %v", raw, err)
		}
	}
}

func TestConfigParamsMapsEveryField(t *testing.T) {
	cfg := Config{
		Seed: 9, WorldType: "Archipelago", Width: 10, Height: 12,
		GlobalTemperatureOffset: -2, GlobalHumidityOffset: 0.1, TotalProvinces: 30,
		ElevationPower: 1.5, SmoothRadius: 2, IslandDensity: 0.6, MinIslandSize: 3,
		MountainCompression: 0.4, PolarAmplification: 2, ClimateLatitudeExponent: 1.1,
	}
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.Seed != 9 || p.Width != 10 || p.Height != 12 || p.WorldType != mapgen.WorldArchipelago {
		t.Fatalf("unexpected top-level params %+v", p)
	}
	if p.Terrain.TotalProvinces != 30 || p.Terrain.SmoothRadius != 2 || p.Terrain.ElevationPower != 1.5 || p.Terrain.MountainCompression != 0.4 {
		t.Fatalf("unexpected terrain %+v", p.Terrain)
	}
	if p.Islands.IslandDensity != 0.6 || p.Islands.MinIslandSize != 3 {
		t.Fatalf("unexpected islands %+v", p.Islands)
	}
	if p.Climate.GlobalTemperatureOffset != -2 || p.Climate.GlobalHumidityOffset != 0.1 ||
		p.Climate.PolarAmplification != 2 || p.Climate.ClimateLatitudeExponent != 1.1 {
		t.Fatalf("unexpected climate %+v", p.Climate)
	}
}

func TestConfigParamsUnknownWorldTypeIsEarthLike(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorldType = "Foo"
	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.WorldType != mapgen.WorldEarthLike {
		t.Fatalf("expected EarthLike, got %s", p.WorldType)
	}
}

func TestSuggestWorldType(t *testing.T) {
	cases := map[string]string{
		"archipelgo":     "Archipelago",
		"earthlike":      "EarthLike",
		"SuperContinent": "Supercontinent",
		"iceageearht":    "IceAgeEarth",
		"Foo":            "",
		"":               "",
	}
	for in, want := range cases {
		if got := SuggestWorldType(in); got != want {
			t.Fatalf("SuggestWorldType(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestHostGenerateSmallWorld(t *testing.T) {
	h := NewHost(HostOptions{})
	out, err := h.Generate([]byte(`{"seed": 42, "worldType": "EarthLike", "width": 64, "height": 64, "totalProvinces": 20}`))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var res Result
	if err := json.Unmarshal(out, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.SchemaVersion != SchemaVersion || res.Width != 64 || res.Height != 64 {
		t.Fatalf("unexpected header %d %dx%d", res.SchemaVersion, res.Width, res.Height)
	}
	if len(res.Heightmap) != 4096 || len(res.Biomes) != 4096 || len(res.ProvinceMap) != 4096 || len(res.RegionMap) != 4096 {
		t.Fatalf("expected 4096-cell layers")
	}
	if len(res.Provinces) != 20 {
		t.Fatalf("expected 20 provinces, got %d", len(res.Provinces))
	}
	land := 0
	for _, p := range res.Provinces {
		if p.IsLand {
			land++
		}
	}
	if land != 14 {
		t.Fatalf("expected 14 land provinces, got %d", land)
	}
	for idx, id := range res.ProvinceMap {
		if res.RegionMap[idx] != uint32(res.Provinces[id].Region) {
			t.Fatalf("cell %d region does not match its province", idx)
		}
	}
	if res.Rivers != nil {
		t.Fatalf("expected rivers to be omitted by default")
	}
	if bytes.Contains(out, []byte(`"rivers"`)) {
		t.Fatalf("expected no rivers key in output")
	}
}

func TestHostGenerateIncludesRivers(t *testing.T) {
	h := NewHost(HostOptions{})
	cfg := []byte(`{"seed": 5, "width": 48, "height": 32, "totalProvinces": 8, "includeRivers": true}`)
	out, err := h.Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	var res Result
	if err := json.Unmarshal(out, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	decoded, _ := DecodeConfig(cfg)
	w, err := h.GenerateWorld(decoded)
	if err != nil {
		t.Fatalf("generate world: %v", err)
	}
	if len(res.Rivers) != len(w.Rivers.Rivers) {
		t.Fatalf("expected %d rivers, got %d", len(w.Rivers.Rivers), len(res.Rivers))
	}
	for _, r := range res.Rivers {
		if len(r.Path) == 0 || r.Path[0] != r.Source {
			t.Fatalf("expected river path to start at its source, got %+v", r)
		}
	}
}

func TestHostGenerateIsDeterministic(t *testing.T) {
	h := NewHost(HostOptions{Parallelism: 3})
	cfg := []byte(`{"seed": 11, "width": 40, "height": 24, "totalProvinces": 12, "worldType": "Mediterranean"}`)
	a, err := h.Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := NewHost(HostOptions{Parallelism: 1}).Generate(cfg)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("expected byte-identical output for the same config")
	}
}

func TestHostGenerateErrorsAreAtomic(t *testing.T) {
	h := NewHost(HostOptions{})
	for _, raw := range []string{`{"width": 0}`, `{"totalProvinces": 0}`, `{"islandDensity": 3}`, `[]`} {
		out, err := h.Generate([]byte(raw))
		if err == nil {
			t.Fatalf("expected error for %s", raw)
		}
		if out != nil {
			t.Fatalf("expected no output on error for %s", raw)
		}
		if !errors.Is(err, mapgen.ErrInvalidConfig) {
			t.Fatalf("expected ErrInvalidConfig for %s, got %v", raw, err)
		}
	}
}

func TestHostWarnsOnUnknownWorldType(t *testing.T) {
	var buf bytes.Buffer
	h := NewHost(HostOptions{Logger: slog.New(slog.NewTextHandler(&buf, nil))})
	if _, err := h.Generate([]byte(`{"worldType": "Archipelgo", "width": 16, "height": 16, "totalProvinces": 4}`)); err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "unknown world type") || !strings.Contains(out, "did_you_mean=Archipelago") {
		t.Fatalf("expected a did-you-mean warning, got:\n%s", out)
	}
}

func TestHostGenerateHeightmap(t *testing.T) {
	out, err := NewHost(HostOptions{}).GenerateHeightmap(42, 24, 12)
	if err != nil {
		t.Fatalf("generate heightmap: %v", err)
	}
	var res HeightmapResult
	if err := json.Unmarshal(out, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Width != 24 || res.Height != 12 || len(res.Data) != 288 {
		t.Fatalf("unexpected heightmap %dx%d (%d)", res.Width, res.Height, len(res.Data))
	}
	if _, err := NewHost(HostOptions{}).GenerateHeightmap(1, 0, 0); !errors.Is(err, mapgen.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.json")
	if err := os.WriteFile(path, []byte(`{"seed": 3, "worldType": "IceAgeEarth"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Seed != 3 || cfg.WorldType != "IceAgeEarth" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}
