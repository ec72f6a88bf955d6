package display

import (
	"fmt"
	"image/color"

	nature "github.com/oidoid/nature-elsewhere-sub000"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// drawOverlay outlines the bounds of every entity in the viewport and its
// collision bodies. Obstacles and harmful entities get their own colors.
func drawOverlay(target *ebiten.Image, root *nature.Entity, viewport nature.Rect) {
	for _, e := range root.Children() {
		drawEntityOverlay(target, e, viewport)
	}
}

func drawEntityOverlay(target *ebiten.Image, e *nature.Entity, viewport nature.Rect) {
	if !e.Bounds().Overlaps(viewport) {
		return
	}
	off := nature.XY{X: -viewport.X, Y: -viewport.Y}
	strokeRect(target, e.Bounds().Translate(off), boundsColor(e.CollisionType()))
	for _, body := range e.Bodies() {
		strokeRect(target, body.Translate(off), colornames.Yellow)
	}
	for _, c := range e.Children() {
		drawEntityOverlay(target, c, viewport)
	}
}

func boundsColor(t nature.CollisionType) color.Color {
	switch {
	case t.Harmful():
		return colornames.Red
	case t.Obstacle():
		return colornames.Orange
	case t.Has(nature.CollisionPlayer):
		return colornames.Lime
	}
	return colornames.Cyan
}

func strokeRect(target *ebiten.Image, r nature.Rect, c color.Color) {
	vector.StrokeRect(target, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, c, false)
}

// drawFPS prints the frame and tick rates in the top-left corner.
func drawFPS(target *ebiten.Image) {
	ebitenutil.DebugPrint(target, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}
