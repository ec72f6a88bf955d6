package nature

// RenderCommand is one image to draw, in world coordinates.
type RenderCommand struct {
	Entity    Handle
	Animation string
	// Source is the atlas sub-rectangle of the current cel; zero when the
	// atlas has no such animation.
	Source  Rect
	Dest    Rect
	Layer   Layer
	Wrap    XY
	ImageID string

	treeOrder int // assigned during traversal for stable sort
}

// RenderBuffer is the flat, layer-sorted command list built once per frame.
// It is reused across frames; the zero value is ready to use.
type RenderBuffer struct {
	Commands []RenderCommand
	sortBuf  []RenderCommand
}

// Reset empties the buffer, keeping its capacity.
func (b *RenderBuffer) Reset() {
	b.Commands = b.Commands[:0]
}

// Len returns the number of commands.
func (b *RenderBuffer) Len() int { return len(b.Commands) }

// collect appends a command for every current image of e's subtree that
// overlaps viewport, in tree order.
func (b *RenderBuffer) collect(e *Entity, viewport Rect, atlas *Atlas) {
	if !e.bounds.Overlaps(viewport) {
		return
	}
	rect := e.images.Current()
	for i := range rect.images {
		img := &rect.images[i]
		if !img.bounds.Overlaps(viewport) {
			continue
		}
		cmd := RenderCommand{
			Entity:    e.handle,
			Animation: img.Animation,
			Dest:      img.bounds,
			Layer:     img.Layer,
			Wrap:      img.Wrap,
			ImageID:   img.ImageID,
			treeOrder: len(b.Commands),
		}
		if anim, ok := atlas.Animation(img.Animation); ok {
			if cel, ok := img.Animator.Cel(anim); ok {
				cmd.Source = cel.Bounds
			}
		}
		b.Commands = append(b.Commands, cmd)
	}
	for _, c := range e.children {
		b.collect(c, viewport, atlas)
	}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should sort before or at the same position as b.
// Using <= for treeOrder ensures stability.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	return a.treeOrder <= b.treeOrder
}

// sort orders the commands by layer, keeping tree order within a layer.
// Bottom-up merge sort: zero allocations after the sort buffer reaches its high-water mark.
func (b *RenderBuffer) sort() {
	n := len(b.Commands)
	if n <= 1 {
		return
	}
	if cap(b.sortBuf) < n {
		b.sortBuf = make([]RenderCommand, n)
	}
	b.sortBuf = b.sortBuf[:n]

	src := b.Commands
	dst := b.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(src, dst, lo, mid, hi)
		}
		src, dst = dst, src
		swapped = !swapped
	}

	if swapped {
		copy(b.Commands, b.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}
