package gui

import (
	"math"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// viewerFont is the face used for every label. A zero Texture.ID means the
// raylib default font.
type viewerFont struct {
	face  rl.Font
	owned bool
}

var labelFont viewerFont

var fontSearchPaths = []string{
	filepath.Join("assets", "fonts", "Inter-Regular.ttf"),
	filepath.Join("assets", "fonts", "NotoSans-Regular.ttf"),
}

func loadLabelFont() {
	for _, path := range fontSearchPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		face := rl.LoadFontEx(path, 32, nil, 0)
		if face.Texture.ID == 0 {
			continue
		}
		rl.SetTextureFilter(face.Texture, rl.FilterBilinear)
		labelFont = viewerFont{face: face, owned: true}
		return
	}
	labelFont = viewerFont{}
}

func unloadLabelFont() {
	if labelFont.owned && labelFont.face.Texture.ID != 0 {
		rl.UnloadFont(labelFont.face)
	}
	labelFont = viewerFont{}
}

func drawLabel(text string, x, y, size int32, clr rl.Color) {
	if labelFont.face.Texture.ID == 0 {
		rl.DrawText(text, x, y, size, clr)
		return
	}
	rl.DrawTextEx(labelFont.face, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, clr)
}

func labelWidth(text string, size int32) int32 {
	if labelFont.face.Texture.ID == 0 {
		return rl.MeasureText(text, size)
	}
	return int32(math.Round(float64(rl.MeasureTextEx(labelFont.face, text, float32(size), 1).X)))
}

// lineStep is the vertical advance for a line of the given size.
func lineStep(size int32) int32 {
	if size < 1 {
		size = 1
	}
	return int32(math.Round(float64(size) * 1.3))
}
