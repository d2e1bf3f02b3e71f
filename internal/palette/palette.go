package palette

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/appengine-ltd/mapgen/internal/mapgen"
)

// Layer selects which World field is coloured.
type Layer int

const (
	LayerBiomes Layer = iota
	LayerElevation
	LayerWater
	LayerRivers
	LayerProvinces
	LayerRegions
	LayerTemperature
	LayerHumidity
)

var layerNames = [...]string{
	LayerBiomes:      "biomes",
	LayerElevation:   "elevation",
	LayerWater:       "water",
	LayerRivers:      "rivers",
	LayerProvinces:   "provinces",
	LayerRegions:     "regions",
	LayerTemperature: "temperature",
	LayerHumidity:    "humidity",
}

func Layers() []Layer {
	out := make([]Layer, len(layerNames))
	for i := range layerNames {
		out[i] = Layer(i)
	}
	return out
}

func (l Layer) String() string {
	if l >= 0 && int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "unknown"
}

// ParseLayer accepts a layer name in any case.
func ParseLayer(s string) (Layer, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for i, name := range layerNames {
		if name == in {
			return Layer(i), nil
		}
	}
	return 0, fmt.Errorf("unknown layer %q (want one of %s)", s, strings.Join(layerNames[:], ", "))
}

var (
	seaColor   = color.RGBA{76, 116, 156, 255}
	deepColor  = color.RGBA{46, 78, 118, 255}
	lakeColor  = color.RGBA{88, 133, 176, 255}
	riverColor = color.RGBA{95, 141, 185, 255}
	iceColor   = color.RGBA{214, 226, 234, 255}
	landColor  = color.RGBA{116, 136, 87, 255}
	borderDark = color.RGBA{24, 28, 32, 255}
)

// BiomeColor is the base colour of a biome before elevation shading.
func BiomeColor(b mapgen.Biome) color.RGBA {
	switch b {
	case mapgen.BiomeDeepOcean:
		return deepColor
	case mapgen.BiomeOcean:
		return seaColor
	case mapgen.BiomeSeaIce:
		return iceColor
	case mapgen.BiomeSnow:
		return color.RGBA{236, 240, 242, 255}
	case mapgen.BiomeTundra:
		return color.RGBA{151, 163, 174, 255}
	case mapgen.BiomeTaiga:
		return color.RGBA{74, 110, 97, 255}
	case mapgen.BiomeColdDesert:
		return color.RGBA{170, 162, 136, 255}
	case mapgen.BiomeGrassland:
		return landColor
	case mapgen.BiomeShrubland:
		return color.RGBA{138, 140, 96, 255}
	case mapgen.BiomeTemperateForest:
		return color.RGBA{71, 106, 88, 255}
	case mapgen.BiomeTemperateRainforest:
		return color.RGBA{52, 92, 74, 255}
	case mapgen.BiomeHotDesert:
		return color.RGBA{154, 136, 92, 255}
	case mapgen.BiomeSavanna:
		return color.RGBA{166, 152, 88, 255}
	case mapgen.BiomeTropicalSeasonalForest:
		return color.RGBA{82, 118, 70, 255}
	case mapgen.BiomeTropicalRainforest:
		return color.RGBA{56, 98, 80, 255}
	case mapgen.BiomeWetland:
		return color.RGBA{76, 104, 102, 255}
	case mapgen.BiomeAlpine:
		return color.RGBA{150, 150, 156, 255}
	case mapgen.BiomeMountain:
		return color.RGBA{130, 133, 145, 255}
	default:
		return color.RGBA{96, 105, 110, 255}
	}
}

// ShadeByElevation brightens high land and darkens low land. h is in [0,1];
// sea level is neutral.
func ShadeByElevation(c color.RGBA, h float32) color.RGBA {
	f := 1.0 + (float64(h)-mapgen.SeaLevel)*0.9
	if f < 0.55 {
		f = 0.55
	}
	if f > 1.3 {
		f = 1.3
	}
	return color.RGBA{scale(c.R, f), scale(c.G, f), scale(c.B, f), c.A}
}

func scale(v uint8, f float64) uint8 {
	return uint8(clampInt(int(float64(v)*f), 0, 255))
}

// ElevationColor is a hypsometric ramp: blues below sea level, then green,
// tan, brown and white.
func ElevationColor(h float32) color.RGBA {
	v := float64(h)
	if v <= mapgen.SeaLevel {
		return lerpColor(deepColor, lakeColor, v/mapgen.SeaLevel)
	}
	t := (v - mapgen.SeaLevel) / (1 - mapgen.SeaLevel)
	stops := []color.RGBA{
		{88, 140, 84, 255},
		{170, 160, 104, 255},
		{132, 104, 78, 255},
		{240, 240, 240, 255},
	}
	return ramp(stops, t)
}

// TemperatureColor maps -30°C..+35°C from blue to red.
func TemperatureColor(tempC float32) color.RGBA {
	t := (float64(tempC) + 30) / 65
	return ramp([]color.RGBA{
		{48, 72, 168, 255},
		{120, 190, 220, 255},
		{236, 226, 150, 255},
		{200, 60, 40, 255},
	}, t)
}

// HumidityColor maps [0,1] from dry tan to saturated blue.
func HumidityColor(hum float32) color.RGBA {
	return ramp([]color.RGBA{
		{196, 170, 120, 255},
		{120, 170, 110, 255},
		{44, 96, 160, 255},
	}, float64(hum))
}

// IDColor gives each id a stable, well-spread colour; land ids are drawn
// lighter than water ids.
func IDColor(id uint32, isLand bool) color.RGBA {
	hue := math.Mod(float64(id)*0.618033988749895, 1) * 360
	if isLand {
		return hsv(hue, 0.45, 0.82)
	}
	return hsv(hue, 0.35, 0.52)
}

// CellColor colours cell idx of w for layer.
func CellColor(w *mapgen.World, layer Layer, idx int) color.RGBA {
	h := w.Heightmap.Data[idx]
	switch layer {
	case LayerElevation:
		return ElevationColor(h)
	case LayerWater:
		switch w.Water.Data[idx] {
		case mapgen.WaterSea:
			return seaColor
		case mapgen.WaterLake:
			return lakeColor
		default:
			return landColor
		}
	case LayerRivers:
		if w.Rivers.Mask[idx] {
			return riverColor
		}
		if !w.Water.IsLand(idx) {
			return deepColor
		}
		return ShadeByElevation(color.RGBA{150, 150, 140, 255}, h)
	case LayerProvinces:
		id := w.PixelToProvince[idx]
		if onBorder(w.PixelToProvince, w.Params.Width, w.Params.Height, idx) {
			return borderDark
		}
		return IDColor(id, w.Provinces[id].IsLand)
	case LayerRegions:
		id := w.PixelToRegion[idx]
		if onBorder(w.PixelToRegion, w.Params.Width, w.Params.Height, idx) {
			return borderDark
		}
		return IDColor(id, w.Provinces[w.PixelToProvince[idx]].IsLand)
	case LayerTemperature:
		return TemperatureColor(w.Temperature.Data[idx])
	case LayerHumidity:
		return HumidityColor(w.Humidity.Data[idx])
	default:
		c := ShadeByElevation(BiomeColor(w.Biomes.Data[idx]), h)
		if w.Rivers.Mask[idx] {
			c = riverColor
		}
		return c
	}
}

// Render draws one layer at one pixel per cell.
func Render(w *mapgen.World, layer Layer) *image.RGBA {
	width, height := w.Params.Width, w.Params.Height
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, CellColor(w, layer, y*width+x))
		}
	}
	return img
}

// onBorder reports whether the right or lower neighbour of idx has a
// different id, so borders are one cell thick.
func onBorder(ids []uint32, width, height, idx int) bool {
	x, y := idx%width, idx/width
	if x+1 < width && ids[idx+1] != ids[idx] {
		return true
	}
	return y+1 < height && ids[idx+width] != ids[idx]
}

func ramp(stops []color.RGBA, t float64) color.RGBA {
	if math.IsNaN(t) || t <= 0 {
		return stops[0]
	}
	if t >= 1 {
		return stops[len(stops)-1]
	}
	pos := t * float64(len(stops)-1)
	i := int(pos)
	return lerpColor(stops[i], stops[i+1], pos-float64(i))
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(x, y uint8) uint8 {
		return uint8(clampInt(int(math.Round(float64(x)+(float64(y)-float64(x))*t)), 0, 255))
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}

func hsv(h, s, v float64) color.RGBA {
	c := v * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g = c, x
	case hp < 2:
		r, g = x, c
	case hp < 3:
		g, b = c, x
	case hp < 4:
		g, b = x, c
	case hp < 5:
		r, b = x, c
	default:
		r, b = c, x
	}
	m := v - c
	to := func(f float64) uint8 { return uint8(clampInt(int(math.Round((f+m)*255)), 0, 255)) }
	return color.RGBA{to(r), to(g), to(b), 255}
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
