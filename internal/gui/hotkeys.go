package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/appengine-ltd/mapgen/internal/palette"
)

// layerKeys binds the number row to layers in palette order.
var layerKeys = [...]int32{
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour,
	rl.KeyFive, rl.KeySix, rl.KeySeven, rl.KeyEight,
}

// layerForKey returns the layer bound to key.
func layerForKey(key int32) (palette.Layer, bool) {
	layers := palette.Layers()
	for i, k := range layerKeys {
		if k == key && i < len(layers) {
			return layers[i], true
		}
	}
	return 0, false
}

// cycleLayer steps through layers, wrapping at both ends.
func cycleLayer(l palette.Layer, step int) palette.Layer {
	n := len(palette.Layers())
	return palette.Layer(((int(l)+step)%n + n) % n)
}

func shiftDown() bool {
	return rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
}
