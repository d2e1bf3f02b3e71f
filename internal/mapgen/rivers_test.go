package mapgen

import "testing"

func biomesFor(hm Heightmap, land Biome) BiomeMap {
	out := BiomeMap{Width: hm.Width, Height: hm.Height, Data: make([]Biome, len(hm.Data))}
	for i, v := range hm.Data {
		if float64(v) <= SeaLevel {
			out.Data[i] = BiomeOcean
		} else {
			out.Data[i] = land
		}
	}
	return out
}

func TestGenerateRiversFollowSlopeToSea(t *testing.T) {
	w, h := 8, 4
	hm := Heightmap{Width: w, Height: h, Data: make([]float32, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 0 {
				hm.Data[y*w+x] = 0.4
				continue
			}
			hm.Data[y*w+x] = float32(0.45 + 0.06*float64(x))
		}
	}
	rm, err := GenerateRivers(hm, biomesFor(hm, BiomeTemperateForest))
	if err != nil {
		t.Fatalf("generate rivers: %v", err)
	}
	if len(rm.Rivers) != h {
		t.Fatalf("expected one river per row, got %d", len(rm.Rivers))
	}
	for _, r := range rm.Rivers {
		if r.Outlet != OutletWater {
			t.Fatalf("expected river from %d to reach water, got %s", r.Source, r.Outlet)
		}
		if r.Mouth%w != 0 {
			t.Fatalf("expected mouth in the sea column, got cell %d", r.Mouth)
		}
		for i := 1; i < len(r.Path); i++ {
			if hm.Data[r.Path[i]] >= hm.Data[r.Path[i-1]] {
				t.Fatalf("expected river to descend, path %v", r.Path)
			}
		}
		for _, idx := range r.Path {
			if !rm.Mask[idx] {
				t.Fatalf("expected river cell %d in mask", idx)
			}
		}
	}
	for y := 0; y < h; y++ {
		if got := rm.Accumulation[y*w+1]; got != uint32(w-1) {
			t.Fatalf("expected accumulation %d next to the sea, got %d", w-1, got)
		}
		if rm.FlowTo[y*w] != -1 {
			t.Fatalf("expected water cells to have no flow target")
		}
	}
}

func TestGenerateRiversBasinAndConfluence(t *testing.T) {
	hm := flatHeightmap(3, 3, 0.8)
	hm.Data[4] = 0.6
	rm, err := GenerateRivers(hm, biomesFor(hm, BiomeTemperateForest))
	if err != nil {
		t.Fatalf("generate rivers: %v", err)
	}
	if len(rm.Rivers) == 0 {
		t.Fatalf("expected rivers around the pit")
	}
	first := rm.Rivers[0]
	if first.Outlet != OutletBasin || first.Mouth != -1 {
		t.Fatalf("expected first river to end in a basin, got %s mouth %d", first.Outlet, first.Mouth)
	}
	for _, r := range rm.Rivers[1:] {
		if r.Outlet != OutletConfluence || r.Mouth != 4 {
			t.Fatalf("expected later rivers to join at the pit, got %s mouth %d", r.Outlet, r.Mouth)
		}
	}
}

func TestGenerateRiversSkipsDeserts(t *testing.T) {
	hm := flatHeightmap(5, 5, 0.8)
	hm.Data[12] = 0.9
	rm, err := GenerateRivers(hm, biomesFor(hm, BiomeHotDesert))
	if err != nil {
		t.Fatalf("generate rivers: %v", err)
	}
	if len(rm.Rivers) != 0 {
		t.Fatalf("expected no desert sources, got %d rivers", len(rm.Rivers))
	}
}
