package nature

import (
	"errors"
	"fmt"
)

// ErrInvalidScale is returned for a zero or negative scale component.
var ErrInvalidScale = errors.New("invalid scale")

// checkScale rejects zero and inverted scales.
func checkScale(s XY) error {
	if s.X <= 0 || s.Y <= 0 {
		return fmt.Errorf("nature: scale (%d, %d): %w", s.X, s.Y, ErrInvalidScale)
	}
	return nil
}

// Image is one billboard: a reference to an atlas animation drawn into a
// destination rectangle. Offset, Size and Scale are local to the owning
// ImageRect; the world-space destination is derived from them whenever the
// rect moves or rescales.
type Image struct {
	// Animation names the atlas animation whose current cel is drawn.
	Animation string
	// ImageID is a recolor or mask identifier shared across all states.
	ImageID string
	Layer   Layer

	// Offset is the unscaled distance from the rect origin.
	Offset XY
	// Size is the unscaled destination size, normally the animation size.
	Size WH
	// Scale multiplies the owning rect's scale for this image only.
	Scale XY

	// Wrap is the texture scroll offset for marquee effects; it advances by
	// WrapVelocity pixels per second.
	Wrap         XY
	WrapVelocity XY
	wrapFraction XY

	Animator Animator

	bounds Rect
}

// NewImage returns an image of the given animation and unscaled size at the
// rect origin.
func NewImage(animation string, size WH) Image {
	return Image{Animation: animation, Size: size, Scale: XY{1, 1}}
}

// Bounds returns the world-space destination rectangle.
func (img *Image) Bounds() Rect {
	return img.bounds
}

// place recomputes the destination for a rect at origin with scale.
func (img *Image) place(origin, scale XY) {
	s := img.Scale.Mul(scale)
	img.bounds = Rect{
		X: origin.X + img.Offset.X*scale.X,
		Y: origin.Y + img.Offset.Y*scale.Y,
		W: img.Size.W * s.X,
		H: img.Size.H * s.Y,
	}
}

// animate advances the animation clock and the wrap offset by ms.
func (img *Image) animate(ms int, atlas *Atlas) {
	if anim, ok := atlas.Animation(img.Animation); ok {
		img.Animator.Animate(ms, anim)
	}
	if img.WrapVelocity.IsZero() {
		return
	}
	// Wrap velocity is in pixels per second; keep the millisecond remainder.
	img.wrapFraction = img.wrapFraction.Add(XY{img.WrapVelocity.X * ms, img.WrapVelocity.Y * ms})
	step := XY{img.wrapFraction.X / 1000, img.wrapFraction.Y / 1000}
	img.wrapFraction = img.wrapFraction.Sub(XY{step.X * 1000, step.Y * 1000})
	img.Wrap = img.Wrap.Add(step)
	if img.Size.W > 0 {
		img.Wrap.X %= img.Size.W
	}
	if img.Size.H > 0 {
		img.Wrap.Y %= img.Size.H
	}
}
