package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	spaceS = float32(12)
	spaceM = float32(18)

	cornerRadius   = float32(0.04)
	cornerSegments = int32(8)
	borderWidth    = float32(1.2)

	fontTitle = int32(22)
	fontBody  = int32(18)
	fontSmall = int32(15)
)

var (
	colorBG      = rl.NewColor(0x14, 0x1A, 0x1F, 255)
	colorPanel   = rl.NewColor(0x1C, 0x23, 0x29, 255)
	colorBorder  = rl.NewColor(0x2E, 0x3A, 0x40, 255)
	colorDivider = rl.NewColor(0x26, 0x30, 0x38, 255)
	colorText    = rl.NewColor(0xE8, 0xE2, 0xD8, 255)
	colorDim     = rl.NewColor(0xA6, 0xAD, 0xB1, 255)
	colorAccent  = rl.NewColor(0xD4, 0x6A, 0x1E, 255)
	colorWarn    = rl.NewColor(0xC1, 0x8B, 0x2F, 255)
)

func toRL(c color.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

func drawPanel(rect rl.Rectangle, title string) {
	rl.DrawRectangleRounded(rect, cornerRadius, cornerSegments, colorPanel)
	rl.DrawRectangleRoundedLinesEx(rect, cornerRadius, cornerSegments, borderWidth, colorBorder)
	if title == "" {
		return
	}
	drawLabel(title, int32(rect.X+spaceM), int32(rect.Y+spaceS), fontTitle, colorAccent)
	y := rect.Y + spaceS + float32(fontTitle) + 6
	rl.DrawLineEx(rl.NewVector2(rect.X+spaceS, y), rl.NewVector2(rect.X+rect.Width-spaceS, y), 1, colorDivider)
}
