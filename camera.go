package nature

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the viewport corner.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera owns the viewport: the integer world rectangle that is visible and
// that UpdateInViewport entities are tested against.
type Camera struct {
	// Viewport is the visible world-space rectangle.
	Viewport Rect

	// BoundsEnabled clamps the viewport so it stays within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the viewport is clamped to when
	// BoundsEnabled is true, normally the level size.
	Bounds Rect

	follow       *Entity
	followOffset XY

	scroll *scrollAnim
}

// NewCamera returns a camera with a viewport of size at the world origin.
func NewCamera(size WH) *Camera {
	return &Camera{Viewport: Rect{W: size.W, H: size.H}}
}

// Follow centers the viewport on e's bounds plus offset every tick.
func (c *Camera) Follow(e *Entity, offset XY) {
	c.follow = e
	c.followOffset = offset
}

// Unfollow stops tracking the followed entity.
func (c *Camera) Unfollow() { c.follow = nil }

// Following returns the followed entity, or nil.
func (c *Camera) Following() *Entity { return c.follow }

// ScrollTo animates the viewport corner to p over durationMs milliseconds.
// Following takes precedence while a target is set.
func (c *Camera) ScrollTo(p XY, durationMs int, fn ease.TweenFunc) {
	d := float32(durationMs)
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.Viewport.X), float32(p.X), d, fn),
		tweenY: gween.New(float32(c.Viewport.Y), float32(p.Y), d, fn),
	}
}

// Scrolling reports whether a ScrollTo animation is running.
func (c *Camera) Scrolling() bool { return c.scroll != nil }

// SetBounds enables clamping to bounds.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables clamping.
func (c *Camera) ClearBounds() { c.BoundsEnabled = false }

// ScreenToWorld converts a point relative to the viewport corner to world
// coordinates.
func (c *Camera) ScreenToWorld(p XY) XY { return p.Add(c.Viewport.Position()) }

// update advances following, scrolling and clamping by ms.
func (c *Camera) update(ms int) UpdateStatus {
	prev := c.Viewport

	if c.follow != nil {
		b := c.follow.Bounds()
		center := XY{b.X + b.W/2, b.Y + b.H/2}.Add(c.followOffset)
		c.Viewport.X = center.X - c.Viewport.W/2
		c.Viewport.Y = center.Y - c.Viewport.H/2
	} else if c.scroll != nil {
		if !c.scroll.doneX {
			v, done := c.scroll.tweenX.Update(float32(ms))
			c.Viewport.X = int(math.Round(float64(v)))
			c.scroll.doneX = done
		}
		if !c.scroll.doneY {
			v, done := c.scroll.tweenY.Update(float32(ms))
			c.Viewport.Y = int(math.Round(float64(v)))
			c.scroll.doneY = done
		}
		if c.scroll.doneX && c.scroll.doneY {
			c.scroll = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
	if c.Viewport != prev {
		return StatusUpdated
	}
	return StatusUnchanged
}

// clampToBounds keeps the viewport inside Bounds, centering it on an axis
// where Bounds is smaller than the viewport.
func (c *Camera) clampToBounds() {
	c.Viewport.X = clampAxis(c.Viewport.X, c.Viewport.W, c.Bounds.X, c.Bounds.W)
	c.Viewport.Y = clampAxis(c.Viewport.Y, c.Viewport.H, c.Bounds.Y, c.Bounds.H)
}

func clampAxis(pos, size, lo, span int) int {
	if span < size {
		return lo + (span-size)/2
	}
	return min(max(pos, lo), lo+span-size)
}
