package nature

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// XY is an integer 2D point or offset in pixels.
type XY struct {
	X, Y int
}

// Add returns p + q.
func (p XY) Add(q XY) XY { return XY{p.X + q.X, p.Y + q.Y} }

// Sub returns p - q.
func (p XY) Sub(q XY) XY { return XY{p.X - q.X, p.Y - q.Y} }

// Mul returns the component-wise product of p and q.
func (p XY) Mul(q XY) XY { return XY{p.X * q.X, p.Y * q.Y} }

// IsZero reports whether both components are zero.
func (p XY) IsZero() bool { return p.X == 0 && p.Y == 0 }

// WH is an integer size in pixels.
type WH struct {
	W, H int
}

// Rect is an axis-aligned rectangle in integer pixel coordinates. The origin
// is the top-left corner with Y increasing downward. Width and height are
// never negative; NewRect panics otherwise.
type Rect struct {
	X, Y, W, H int
}

// NewRect returns the rectangle at (x, y) sized w by h.
// Panics if w or h is negative.
func NewRect(x, y, w, h int) Rect {
	if w < 0 || h < 0 {
		panic("nature: rectangle with inverted size")
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// Position returns the top-left corner.
func (r Rect) Position() XY { return XY{r.X, r.Y} }

// Size returns the width and height.
func (r Rect) Size() WH { return WH{r.W, r.H} }

// MaxX returns the exclusive right edge.
func (r Rect) MaxX() int { return r.X + r.W }

// MaxY returns the exclusive bottom edge.
func (r Rect) MaxY() int { return r.Y + r.H }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W == 0 || r.H == 0 }

// Translate returns r moved by d.
func (r Rect) Translate(d XY) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// MoveTo returns r with its top-left corner at p.
func (r Rect) MoveTo(p XY) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Contains reports whether the point p lies inside r. The right and bottom
// edges are exclusive.
func (r Rect) Contains(p XY) bool {
	return p.X >= r.X && p.X < r.MaxX() && p.Y >= r.Y && p.Y < r.MaxY()
}

// Overlaps reports whether r and other share interior area. Rectangles that
// only touch along an edge do not overlap, so an entity resting flush against
// a wall is not colliding with it.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.MaxX() && other.X < r.MaxX() &&
		r.Y < other.MaxY() && other.Y < r.MaxY()
}

// Union returns the smallest rectangle containing both r and other. The
// positions of empty rectangles still count, so a zero-sized image at an
// entity's origin anchors the union there.
func (r Rect) Union(other Rect) Rect {
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: max(r.MaxX(), other.MaxX()) - x,
		H: max(r.MaxY(), other.MaxY()) - y,
	}
}

// Intersection returns the overlapping area of r and other, or a zero-sized
// rectangle at r's position when they do not overlap.
func (r Rect) Intersection(other Rect) Rect {
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	w := min(r.MaxX(), other.MaxX()) - x
	h := min(r.MaxY(), other.MaxY()) - y
	if w <= 0 || h <= 0 {
		return Rect{X: r.X, Y: r.Y}
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

// unionAll folds rects into one. ok is false when rects is empty.
func unionAll(rects []Rect) (u Rect, ok bool) {
	for i, r := range rects {
		if i == 0 {
			u = r
			continue
		}
		u = u.Union(r)
	}
	return u, len(rects) > 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// --- YAML ---

// UnmarshalYAML decodes {x, y}. Non-integer values are rejected rather than
// truncated.
func (p *XY) UnmarshalYAML(value *yaml.Node) error {
	var v XY
	if err := decodeIntFields(value, "point", map[string]*int{"x": &v.X, "y": &v.Y}); err != nil {
		return err
	}
	*p = v
	return nil
}

// UnmarshalYAML decodes {w, h}. Non-integer values are rejected rather than
// truncated.
func (s *WH) UnmarshalYAML(value *yaml.Node) error {
	var v WH
	if err := decodeIntFields(value, "size", map[string]*int{"w": &v.W, "h": &v.H}); err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalYAML decodes {x, y, w, h}. Non-integer values are rejected rather
// than truncated.
func (r *Rect) UnmarshalYAML(value *yaml.Node) error {
	var v Rect
	fields := map[string]*int{"x": &v.X, "y": &v.Y, "w": &v.W, "h": &v.H}
	if err := decodeIntFields(value, "rect", fields); err != nil {
		return err
	}
	*r = v
	return nil
}

// decodeIntFields decodes a mapping whose values must all be integer scalars
// named in fields.
func decodeIntFields(value *yaml.Node, what string, fields map[string]*int) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("nature: line %d: %s must be a mapping", value.Line, what)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, v := value.Content[i], value.Content[i+1]
		if v.Kind == yaml.AliasNode && v.Alias != nil {
			v = v.Alias
		}
		dst, ok := fields[key.Value]
		if !ok {
			return fmt.Errorf("nature: line %d: %s: unknown field %q", key.Line, what, key.Value)
		}
		if v.Kind != yaml.ScalarNode || v.ShortTag() != "!!int" {
			return fmt.Errorf("nature: line %d: %s.%s = %q: %w", v.Line, what, key.Value, v.Value, ErrNotInteger)
		}
		if err := v.Decode(dst); err != nil {
			return fmt.Errorf("nature: line %d: %s.%s: %w", v.Line, what, key.Value, err)
		}
	}
	return nil
}
