package display

import (
	nature "github.com/oidoid/nature-elsewhere-sub000"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyBindings maps each logical button to the keys that hold it.
var keyBindings = map[nature.Buttons][]ebiten.Key{
	nature.ButtonUp:     {ebiten.KeyArrowUp, ebiten.KeyW},
	nature.ButtonDown:   {ebiten.KeyArrowDown, ebiten.KeyS},
	nature.ButtonLeft:   {ebiten.KeyArrowLeft, ebiten.KeyA},
	nature.ButtonRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
	nature.ButtonAction: {ebiten.KeySpace, ebiten.KeyEnter},
	nature.ButtonMenu:   {ebiten.KeyEscape},
	nature.ButtonDebug:  {ebiten.KeyF3},
}

// sampleInput reads the keyboard and mouse into a snapshot. The cursor is
// converted from logical screen to world coordinates through cam and is only
// reported while it is over the screen.
func sampleInput(cam *nature.Camera, screen nature.WH) nature.InputSnapshot {
	var in nature.InputSnapshot
	for button, keys := range keyBindings {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				in.Held |= button
			}
			if inpututil.IsKeyJustPressed(k) {
				in.Pressed |= button
			}
		}
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		in.Held |= nature.ButtonAction
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.Pressed |= nature.ButtonAction
	}

	mx, my := ebiten.CursorPosition()
	if mx >= 0 && my >= 0 && mx < screen.W && my < screen.H {
		in.Cursor = cam.ScreenToWorld(nature.XY{X: mx, Y: my})
		in.HasCursor = true
	}
	return in
}
