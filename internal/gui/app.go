package gui

import (
	"fmt"
	"io"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/mapgen/internal/mapgen"
	"github.com/appengine-ltd/mapgen/internal/palette"
)

// AppConfig configures the map viewer window.
type AppConfig struct {
	World *mapgen.World
	// Regenerate builds a world for another seed. Nil disables N/P.
	Regenerate func(seed uint64) (*mapgen.World, error)
	Layer      palette.Layer
	Logger     *slog.Logger
	Width      int32
	Height     int32
}

type App struct {
	cfg AppConfig
	log *slog.Logger

	world  *mapgen.World
	layer  palette.Layer
	width  int32
	height int32

	tex      rl.Texture2D
	texLayer palette.Layer
	texValid bool

	showLegend bool
	hover      string
	status     string
	quit       bool
}

func NewApp(cfg AppConfig) *App {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.Width <= 0 {
		cfg.Width = 1366
	}
	if cfg.Height <= 0 {
		cfg.Height = 768
	}
	return &App{
		cfg:        cfg,
		log:        log,
		world:      cfg.World,
		layer:      cfg.Layer,
		width:      cfg.Width,
		height:     cfg.Height,
		showLegend: true,
	}
}

func (a *App) Run() error {
	if a.world == nil {
		return fmt.Errorf("no world to display")
	}
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(a.width, a.height, "mapview")
	rl.SetExitKey(0)
	rl.SetTargetFPS(60)
	loadLabelFont()

	for !a.quit && !rl.WindowShouldClose() {
		a.width = int32(rl.GetScreenWidth())
		a.height = int32(rl.GetScreenHeight())

		a.update()
		a.refreshTexture()

		rl.BeginDrawing()
		rl.ClearBackground(colorBG)
		a.draw()
		rl.EndDrawing()
	}

	a.unloadTexture()
	unloadLabelFont()
	rl.CloseWindow()
	return nil
}

func (a *App) update() {
	for _, key := range layerKeys {
		if rl.IsKeyPressed(key) {
			if l, ok := layerForKey(key); ok {
				a.layer = l
			}
		}
	}
	switch {
	case rl.IsKeyPressed(rl.KeyTab) && shiftDown():
		a.layer = cycleLayer(a.layer, -1)
	case rl.IsKeyPressed(rl.KeyTab):
		a.layer = cycleLayer(a.layer, 1)
	case rl.IsKeyPressed(rl.KeyL):
		a.showLegend = !a.showLegend
	case rl.IsKeyPressed(rl.KeyN):
		a.reseed(a.world.Params.Seed + 1)
	case rl.IsKeyPressed(rl.KeyP):
		a.reseed(a.world.Params.Seed - 1)
	case rl.IsKeyPressed(rl.KeyEscape), rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	}

	a.hover = ""
	layout := viewerScreenLayout(a.width, a.height)
	geo, ok := computeSquareGridGeometry(layout.MapRect, a.world.Params.Width, a.world.Params.Height)
	if !ok {
		return
	}
	mouse := rl.GetMousePosition()
	if x, y, ok := geo.cellAt(mouse.X, mouse.Y); ok {
		a.hover = describeCell(a.world, x, y)
	}
}

func (a *App) reseed(seed uint64) {
	if a.cfg.Regenerate == nil {
		a.status = "regeneration is not available"
		return
	}
	w, err := a.cfg.Regenerate(seed)
	if err != nil {
		a.log.Error("regenerate world", "seed", seed, "err", err)
		a.status = err.Error()
		return
	}
	a.world = w
	a.texValid = false
	a.status = fmt.Sprintf("seed %d", seed)
	a.log.Info("world regenerated", "seed", seed, "provinces", len(w.Provinces), "regions", len(w.Regions))
}

func (a *App) refreshTexture() {
	if a.texValid && a.texLayer == a.layer {
		return
	}
	a.unloadTexture()
	img := rl.NewImageFromImage(palette.Render(a.world, a.layer))
	a.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(a.tex, rl.FilterPoint)
	a.texLayer = a.layer
	a.texValid = true
}

func (a *App) unloadTexture() {
	if a.tex.ID != 0 {
		rl.UnloadTexture(a.tex)
		a.tex = rl.Texture2D{}
	}
	a.texValid = false
}

func (a *App) draw() {
	layout := viewerScreenLayout(a.width, a.height)
	w := a.world
	if geo, ok := computeSquareGridGeometry(layout.MapRect, w.Params.Width, w.Params.Height); ok {
		src := rl.NewRectangle(0, 0, float32(w.Params.Width), float32(w.Params.Height))
		rl.DrawTexturePro(a.tex, src, geo.DrawRect, rl.Vector2{}, 0, rl.White)
		rl.DrawRectangleLinesEx(geo.DrawRect, 1.0, rl.Fade(colorBorder, 0.8))
	}

	a.drawSidePanel(layout.SideRect)

	line := a.hover
	clr := colorText
	if line == "" {
		line, clr = a.status, colorWarn
	}
	if line == "" {
		line, clr = "Hover a cell for details", colorDim
	}
	rl.DrawRectangleRec(layout.StatusBar, colorPanel)
	drawLabel(line, int32(layout.StatusBar.X+spaceS), int32(layout.StatusBar.Y)+9, fontSmall, clr)
}

func (a *App) drawSidePanel(rect rl.Rectangle) {
	w := a.world
	drawPanel(rect, "World")
	x := int32(rect.X + spaceM)
	y := int32(rect.Y) + 56
	lines := []string{
		fmt.Sprintf("Seed %d", w.Params.Seed),
		fmt.Sprintf("%s %dx%d", w.Params.WorldType, w.Params.Width, w.Params.Height),
		fmt.Sprintf("Land %.1f%%", w.LandRatio*100),
		fmt.Sprintf("Provinces %d  Regions %d", len(w.Provinces), len(w.Regions)),
		fmt.Sprintf("Rivers %d", len(w.Rivers.Rivers)),
	}
	for _, l := range lines {
		drawLabel(l, x, y, fontBody, colorText)
		y += lineStep(fontBody)
	}

	y += 10
	drawLabel("Layers", x, y, fontBody, colorAccent)
	y += fontBody + 6
	for i, l := range palette.Layers() {
		clr := colorDim
		if l == a.layer {
			clr = colorText
		}
		drawLabel(fmt.Sprintf("%d  %s", i+1, l), x, y, fontSmall, clr)
		y += lineStep(fontSmall)
	}

	if a.showLegend && a.layer == palette.LayerBiomes {
		y += 10
		drawLabel("Biomes", x, y, fontBody, colorAccent)
		y += fontBody + 6
		for b := mapgen.Biome(0); b < mapgen.BiomeCount; b++ {
			if y > int32(rect.Y+rect.Height)-60 {
				break
			}
			rl.DrawRectangle(x, y+1, 12, 12, toRL(palette.BiomeColor(b)))
			rl.DrawRectangleLines(x, y+1, 12, 12, rl.Fade(colorBorder, 0.8))
			drawLabel(b.String(), x+20, y, fontSmall-2, colorText)
			y += fontSmall
		}
	}

	help := "Tab layer  L legend  N/P seed  Esc quit"
	if labelWidth(help, fontSmall-2) > int32(rect.Width-2*spaceM) {
		help = "Tab  L  N/P  Esc"
	}
	drawLabel(help, x, int32(rect.Y+rect.Height)-28, fontSmall-2, colorDim)
}
