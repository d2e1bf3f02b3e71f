package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/mapgen/internal/mapgen"
)

const (
	layoutPadding = 16
	layoutGap     = 10
	sidePanelW    = 300
)

type viewerLayout struct {
	MapRect   rl.Rectangle
	SideRect  rl.Rectangle
	StatusBar rl.Rectangle
}

func viewerScreenLayout(width, height int32) viewerLayout {
	outer := rl.NewRectangle(layoutPadding, layoutPadding, float32(width-layoutPadding*2), float32(height-layoutPadding*2))
	statusH := float32(34)
	side := float32(sidePanelW)
	if outer.Width < 900 {
		side = 240
	}
	gap := float32(layoutGap)
	mapW := outer.Width - side - gap
	bodyH := outer.Height - statusH - gap
	return viewerLayout{
		MapRect:   rl.NewRectangle(outer.X, outer.Y, mapW, bodyH),
		SideRect:  rl.NewRectangle(outer.X+mapW+gap, outer.Y, side, bodyH),
		StatusBar: rl.NewRectangle(outer.X, outer.Y+bodyH+gap, outer.Width, statusH),
	}
}

type squareGridGeometry struct {
	OriginX  float32
	OriginY  float32
	CellSize float32
	Cols     int
	Rows     int
	DrawRect rl.Rectangle
}

// computeSquareGridGeometry fits cols x rows square cells into area,
// centred. Cells shrink below one pixel when the map is larger than area.
func computeSquareGridGeometry(area rl.Rectangle, cols, rows int) (squareGridGeometry, bool) {
	if cols <= 0 || rows <= 0 || area.Width <= 1 || area.Height <= 1 {
		return squareGridGeometry{}, false
	}
	cellSize := float32(math.Min(float64(area.Width/float32(cols)), float64(area.Height/float32(rows))))
	drawWidth := cellSize * float32(cols)
	drawHeight := cellSize * float32(rows)
	originX := area.X + (area.Width-drawWidth)/2
	originY := area.Y + (area.Height-drawHeight)/2
	return squareGridGeometry{
		OriginX:  originX,
		OriginY:  originY,
		CellSize: cellSize,
		Cols:     cols,
		Rows:     rows,
		DrawRect: rl.NewRectangle(originX, originY, drawWidth, drawHeight),
	}, true
}

// cellAt maps a screen point to the grid cell under it.
func (g squareGridGeometry) cellAt(px, py float32) (x, y int, ok bool) {
	if g.CellSize <= 0 {
		return 0, 0, false
	}
	fx := (px - g.OriginX) / g.CellSize
	fy := (py - g.OriginY) / g.CellSize
	if fx < 0 || fy < 0 {
		return 0, 0, false
	}
	x, y = int(fx), int(fy)
	if x >= g.Cols || y >= g.Rows {
		return 0, 0, false
	}
	return x, y, true
}

// describeCell is the status-bar text for one cell.
func describeCell(w *mapgen.World, x, y int) string {
	idx := y*w.Params.Width + x
	prov := w.PixelToProvince[idx]
	reg := w.PixelToRegion[idx]
	name := ""
	if int(reg) < len(w.Regions) {
		name = w.Regions[reg].Name
	}
	river := ""
	if w.Rivers.Mask[idx] {
		river = " | river"
	}
	return fmt.Sprintf("(%d,%d) %s | elev %.3f | %.1f°C | hum %.2f | %s | province %d | %s%s",
		x, y,
		w.Biomes.Data[idx],
		w.Heightmap.Data[idx],
		w.Temperature.Data[idx],
		w.Humidity.Data[idx],
		w.Water.Data[idx],
		prov,
		name,
		river,
	)
}
