package nature

// ImageRect is a positioned, scaled group of images sharing one origin. Its
// bounds are always the union of its images' bounds, or a zero-sized
// rectangle at the origin when it holds no images.
type ImageRect struct {
	origin XY
	scale  XY
	images []Image
	bounds Rect
}

// NewImageRect returns a rect at the origin with unit scale holding images.
// Panics if an image has a zero or negative scale.
func NewImageRect(images ...Image) *ImageRect {
	r := &ImageRect{scale: XY{1, 1}, images: make([]Image, 0, len(images))}
	for _, img := range images {
		r.Add(img)
	}
	return r
}

// Add appends img and recomputes the bounds.
func (r *ImageRect) Add(img Image) {
	if img.Scale == (XY{}) {
		img.Scale = XY{1, 1}
	}
	if err := checkScale(img.Scale); err != nil {
		panic(err.Error())
	}
	img.place(r.origin, r.scale)
	r.images = append(r.images, img)
	r.invalidate()
}

// Origin returns the shared local origin in world coordinates.
func (r *ImageRect) Origin() XY { return r.origin }

// Scale returns the rect scale.
func (r *ImageRect) Scale() XY { return r.scale }

// Bounds returns the union of the image bounds.
func (r *ImageRect) Bounds() Rect { return r.bounds }

// Images returns the images. The returned slice MUST NOT be appended to.
func (r *ImageRect) Images() []Image { return r.images }

// Len returns the number of images.
func (r *ImageRect) Len() int { return len(r.images) }

// MoveTo moves the origin to p, carrying every image with it.
func (r *ImageRect) MoveTo(p XY) UpdateStatus {
	return r.MoveBy(p.Sub(r.origin))
}

// MoveBy translates the origin and every image by d.
func (r *ImageRect) MoveBy(d XY) UpdateStatus {
	if d.IsZero() {
		return StatusUnchanged
	}
	r.origin = r.origin.Add(d)
	for i := range r.images {
		r.images[i].bounds = r.images[i].bounds.Translate(d)
	}
	r.bounds = r.bounds.Translate(d)
	return StatusUpdated
}

// ScaleTo rescales every image about the origin.
// Panics if s has a zero or negative component.
func (r *ImageRect) ScaleTo(s XY) UpdateStatus {
	if err := checkScale(s); err != nil {
		panic(err.Error())
	}
	if s == r.scale {
		return StatusUnchanged
	}
	r.scale = s
	r.invalidate()
	return StatusUpdated
}

// SetImageID sets the recolor identifier of every image.
func (r *ImageRect) SetImageID(id string) UpdateStatus {
	status := StatusUnchanged
	for i := range r.images {
		if r.images[i].ImageID != id {
			r.images[i].ImageID = id
			status = StatusUpdated
		}
	}
	return status
}

// Elevate shifts every image's layer by offset.
func (r *ImageRect) Elevate(offset Layer) UpdateStatus {
	if offset == 0 || len(r.images) == 0 {
		return StatusUnchanged
	}
	for i := range r.images {
		r.images[i].Layer += offset
	}
	return StatusUpdated
}

// ResetAnimation rewinds every image's animation clock.
func (r *ImageRect) ResetAnimation() {
	for i := range r.images {
		r.images[i].Animator.Reset()
	}
}

// Animate advances every image's animation clock by ms.
func (r *ImageRect) Animate(ms int, atlas *Atlas) {
	for i := range r.images {
		r.images[i].animate(ms, atlas)
	}
}

// OverlapsImage reports whether any image overlaps rect.
func (r *ImageRect) OverlapsImage(rect Rect) bool {
	if !r.bounds.Overlaps(rect) {
		return false
	}
	for i := range r.images {
		if r.images[i].bounds.Overlaps(rect) {
			return true
		}
	}
	return false
}

// invalidate re-places every image and recomputes the union.
func (r *ImageRect) invalidate() {
	r.bounds = Rect{X: r.origin.X, Y: r.origin.Y}
	for i := range r.images {
		r.images[i].place(r.origin, r.scale)
		if i == 0 {
			r.bounds = r.images[i].bounds
			continue
		}
		r.bounds = r.bounds.Union(r.images[i].bounds)
	}
}
