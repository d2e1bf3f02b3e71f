package mapgen

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func smallParams() WorldGenerationParams {
	p := DefaultParams()
	p.Seed = 42
	p.Width, p.Height = 64, 64
	p.Terrain.TotalProvinces = 20
	return p
}

func TestGenerateSmallEarthLike(t *testing.T) {
	w, err := Generate(smallParams())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(w.Heightmap.Data) != 64*64 || len(w.PixelToProvince) != 64*64 {
		t.Fatalf("expected 4096 cells, got %d and %d", len(w.Heightmap.Data), len(w.PixelToProvince))
	}
	if len(w.Provinces) != 20 {
		t.Fatalf("expected 20 provinces, got %d", len(w.Provinces))
	}
	land := 0
	for i, p := range w.Provinces {
		if p.ID != i {
			t.Fatalf("expected province id %d, got %d", i, p.ID)
		}
		if p.IsLand {
			land++
		}
	}
	if land != 14 {
		t.Fatalf("expected 14 land provinces, got %d", land)
	}
	for idx, id := range w.PixelToProvince {
		if id >= 20 {
			t.Fatalf("cell %d has province id %d", idx, id)
		}
		if w.PixelToRegion[idx] != w.ProvinceRegion[id] {
			t.Fatalf("cell %d region disagrees with its province", idx)
		}
	}
	if w.LandRatio <= 0 || w.LandRatio >= 1 {
		t.Fatalf("expected a mix of land and water, got land ratio %v", w.LandRatio)
	}
}

func TestGenerateRegionSizesStayNearTarget(t *testing.T) {
	w, err := Generate(smallParams())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	limit := RegionTargetSize + RegionTargetSize/2
	for _, r := range w.Regions {
		if len(r.ProvinceIDs) > limit {
			t.Fatalf("expected at most %d provinces per region, region %d has %d", limit, r.ID, len(r.ProvinceIDs))
		}
	}
}

func TestGenerateRegionsPartitionProvinces(t *testing.T) {
	w, err := Generate(smallParams())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	owner := make([]int, len(w.Provinces))
	for i := range owner {
		owner[i] = -1
	}
	names := make(map[string]bool)
	for _, r := range w.Regions {
		if names[r.Name] {
			t.Fatalf("duplicate region name %q", r.Name)
		}
		names[r.Name] = true
		for _, p := range r.ProvinceIDs {
			if owner[p] >= 0 {
				t.Fatalf("province %d in regions %d and %d", p, owner[p], r.ID)
			}
			owner[p] = r.ID
		}
		if !regionConnected(w.Graph, r.ProvinceIDs) {
			t.Fatalf("region %d is not connected: %v", r.ID, r.ProvinceIDs)
		}
	}
	for p, r := range owner {
		if r < 0 {
			t.Fatalf("province %d has no region", p)
		}
	}
}

func regionConnected(g ProvinceGraph, members []int) bool {
	in := make(map[int]bool, len(members))
	for _, p := range members {
		in[p] = true
	}
	seen := map[int]bool{members[0]: true}
	queue := []int{members[0]}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, nb := range g.Neighbors(p) {
			if in[nb] && !seen[nb] {
				seen[nb] = true
				queue = append(queue, nb)
			}
		}
	}
	return len(seen) == len(members)
}

func TestGenerateCoastalFlagsMatchCells(t *testing.T) {
	w, err := Generate(smallParams())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	width, height := w.Params.Width, w.Params.Height
	coastal := make([]bool, len(w.Provinces))
	for idx, id := range w.PixelToProvince {
		x, y := idx%width, idx/width
		for _, off := range neigh8 {
			nx, ny := x+off[0], y+off[1]
			if inBounds(nx, ny, width, height) && w.Water.IsLand(ny*width+nx) != w.Provinces[id].IsLand {
				coastal[id] = true
			}
		}
	}
	for i, p := range w.Provinces {
		if p.Coastal != coastal[i] {
			t.Fatalf("province %d coastal=%v, cells say %v", i, p.Coastal, coastal[i])
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := smallParams()
	a, err := Generate(p, WithParallelism(1))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := Generate(p, WithParallelism(8))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !slices.Equal(a.Heightmap.Data, b.Heightmap.Data) {
		t.Fatalf("heightmaps differ")
	}
	if !slices.Equal(a.Humidity.Data, b.Humidity.Data) || !slices.Equal(a.Temperature.Data, b.Temperature.Data) {
		t.Fatalf("climate differs")
	}
	if !slices.Equal(a.Biomes.Data, b.Biomes.Data) {
		t.Fatalf("biomes differ")
	}
	if !slices.Equal(a.PixelToProvince, b.PixelToProvince) || !slices.Equal(a.PixelToRegion, b.PixelToRegion) {
		t.Fatalf("province or region maps differ")
	}
	if !slices.Equal(a.Provinces, b.Provinces) {
		t.Fatalf("province lists differ")
	}
}

func TestGenerateSingleCell(t *testing.T) {
	p := DefaultParams()
	p.Width, p.Height = 1, 1
	w, err := Generate(p)
	if err != nil {
		t.Fatalf("generate 1x1: %v", err)
	}
	if len(w.Provinces) != 1 || w.Provinces[0].Area != 1 {
		t.Fatalf("expected one province owning the only cell, got %+v", w.Provinces)
	}
	if len(w.Regions) != 1 || w.PixelToProvince[0] != 0 {
		t.Fatalf("expected one region, got %d", len(w.Regions))
	}
}

func TestGenerateEveryWorldType(t *testing.T) {
	for _, wt := range WorldTypes() {
		p := smallParams()
		p.Width, p.Height = 48, 32
		p.WorldType = wt
		if _, err := Generate(p); err != nil {
			t.Fatalf("%s: %v", wt, err)
		}
	}
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	p := smallParams()
	p.Width = 0
	w, err := Generate(p)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if w != nil {
		t.Fatalf("expected no world on error")
	}
}

func TestGenerateLogsStages(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := smallParams()
	p.Width, p.Height = 16, 16
	p.Terrain.TotalProvinces = 4
	if _, err := Generate(p, WithLogger(logger)); err != nil {
		t.Fatalf("generate: %v", err)
	}
	out := buf.String()
	for _, stage := range []string{"elevation", "climate", "biomes", "water", "rivers", "provinces", "graph", "regions"} {
		if !strings.Contains(out, "stage="+stage) {
			t.Fatalf("expected a log line for stage %s in:\n%s", stage, out)
		}
	}
	if !strings.Contains(out, "world generated") {
		t.Fatalf("expected summary line in:\n%s", out)
	}
}

func TestGenerateHeightmapOnly(t *testing.T) {
	hm, err := GenerateHeightmapOnly(42, 32, 16)
	if err != nil {
		t.Fatalf("generate heightmap: %v", err)
	}
	if hm.Width != 32 || hm.Height != 16 || len(hm.Data) != 512 {
		t.Fatalf("unexpected heightmap shape %dx%d (%d)", hm.Width, hm.Height, len(hm.Data))
	}
	if _, err := GenerateHeightmapOnly(42, 0, 16); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
