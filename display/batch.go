package display

import (
	"image"
	"image/color"

	nature "github.com/oidoid/nature-elsewhere-sub000"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"
)

// submitCommands draws the sorted commands onto target. Destinations are
// world coordinates and are shifted by the viewport corner.
func (g *Game) submitCommands(target *ebiten.Image, cmds []nature.RenderCommand, viewport nature.Rect) {
	var op ebiten.DrawImageOptions
	for i := range cmds {
		cmd := &cmds[i]
		dest := cmd.Dest.Translate(nature.XY{X: -viewport.X, Y: -viewport.Y})
		if cmd.Source.Empty() || g.page == nil {
			if g.debug {
				fillRect(target, dest, colornames.Magenta)
			}
			continue
		}
		src := g.page.SubImage(image.Rect(
			cmd.Source.X, cmd.Source.Y, cmd.Source.MaxX(), cmd.Source.MaxY(),
		)).(*ebiten.Image)

		op.GeoM.Reset()
		op.ColorScale.Reset()
		if c, ok := g.palette[cmd.ImageID]; ok {
			op.ColorScale.ScaleWithColor(c)
		}

		if cmd.Wrap.IsZero() {
			op.GeoM.Scale(float64(dest.W)/float64(cmd.Source.W), float64(dest.H)/float64(cmd.Source.H))
			op.GeoM.Translate(float64(dest.X), float64(dest.Y))
			target.DrawImage(src, &op)
			continue
		}
		g.submitWrapped(target, src, cmd, dest, &op)
	}
}

// submitWrapped draws a marquee image: the source is tiled 2x2, shifted by
// the wrap offset and clipped to the destination.
func (g *Game) submitWrapped(target, src *ebiten.Image, cmd *nature.RenderCommand, dest nature.Rect, op *ebiten.DrawImageOptions) {
	clip := target.SubImage(image.Rect(dest.X, dest.Y, dest.MaxX(), dest.MaxY())).(*ebiten.Image)
	sx := float64(dest.W) / float64(cmd.Source.W)
	sy := float64(dest.H) / float64(cmd.Source.H)
	wx := wrapOffset(cmd.Wrap.X, cmd.Source.W)
	wy := wrapOffset(cmd.Wrap.Y, cmd.Source.H)
	colors := op.ColorScale
	for ty := range 2 {
		for tx := range 2 {
			op.GeoM.Reset()
			op.GeoM.Scale(sx, sy)
			op.GeoM.Translate(
				float64(dest.X)+float64(tx*cmd.Source.W-wx)*sx,
				float64(dest.Y)+float64(ty*cmd.Source.H-wy)*sy,
			)
			op.ColorScale = colors
			clip.DrawImage(src, op)
		}
	}
}

// wrapOffset normalizes a wrap offset into [0, size).
func wrapOffset(wrap, size int) int {
	if size <= 0 {
		return 0
	}
	return ((wrap % size) + size) % size
}

func fillRect(target *ebiten.Image, r nature.Rect, c color.Color) {
	if r.Empty() {
		return
	}
	target.SubImage(image.Rect(r.X, r.Y, r.MaxX(), r.MaxY())).(*ebiten.Image).Fill(c)
}
