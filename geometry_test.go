package nature

import (
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 4, H: 4}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"same", a, true},
		{"inside", Rect{X: 1, Y: 1, W: 1, H: 1}, true},
		{"partial", Rect{X: 3, Y: 3, W: 4, H: 4}, true},
		{"touching right edge", Rect{X: 4, Y: 0, W: 4, H: 4}, false},
		{"touching bottom edge", Rect{X: 0, Y: 4, W: 4, H: 4}, false},
		{"apart", Rect{X: 10, Y: 10, W: 1, H: 1}, false},
		{"empty inside", Rect{X: 1, Y: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("reverse Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 2, H: 2}
	b := Rect{X: 5, Y: 1, W: 2, H: 4}
	if got, want := a.Union(b), (Rect{X: 0, Y: 0, W: 7, H: 5}); got != want {
		t.Errorf("Union = %v, want %v", got, want)
	}
	// An empty rectangle still anchors the union at its position.
	if got, want := (Rect{X: -3, Y: -3}).Union(a), (Rect{X: -3, Y: -3, W: 5, H: 5}); got != want {
		t.Errorf("Union with empty = %v, want %v", got, want)
	}
}

func TestRectIntersection(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 4, H: 4}
	if got, want := a.Intersection(Rect{X: 2, Y: 1, W: 4, H: 2}), (Rect{X: 2, Y: 1, W: 2, H: 2}); got != want {
		t.Errorf("Intersection = %v, want %v", got, want)
	}
	if got := a.Intersection(Rect{X: 4, Y: 0, W: 1, H: 1}); !got.Empty() {
		t.Errorf("Intersection of touching rects = %v, want empty", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 1, Y: 1, W: 2, H: 2}
	if !r.Contains(XY{1, 1}) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(XY{3, 1}) || r.Contains(XY{1, 3}) {
		t.Error("right and bottom edges are exclusive")
	}
}

func TestNewRectPanicsOnInvertedSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewRect(0, 0, -1, 1)
}

func TestGeometryYAML(t *testing.T) {
	var v struct {
		P XY   `yaml:"p"`
		S WH   `yaml:"s"`
		R Rect `yaml:"r"`
	}
	src := "p: {x: -3, y: 7}\ns: {w: 16, h: 8}\nr: {x: 1, y: 2, w: 3, h: 4}\n"
	if err := yaml.Unmarshal([]byte(src), &v); err != nil {
		t.Fatal(err)
	}
	if v.P != (XY{-3, 7}) {
		t.Errorf("p = %v, want {-3 7}", v.P)
	}
	if v.S != (WH{16, 8}) {
		t.Errorf("s = %v, want {16 8}", v.S)
	}
	if v.R != (Rect{X: 1, Y: 2, W: 3, H: 4}) {
		t.Errorf("r = %v, want {1 2 3 4}", v.R)
	}
}

func TestGeometryYAML_RejectsFractions(t *testing.T) {
	tests := []struct {
		name string
		src  string
		out  any
	}{
		{"point", "{x: 1.5, y: 7}", new(XY)},
		{"size", "{w: 2, h: 0.25}", new(WH)},
		{"rect", "{x: 0, y: 0, w: 3.9, h: 1}", new(Rect)},
		{"string", "{x: one, y: 2}", new(XY)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := yaml.Unmarshal([]byte(tt.src), tt.out)
			if !errors.Is(err, ErrNotInteger) {
				t.Errorf("err = %v, want ErrNotInteger", err)
			}
		})
	}
}

func TestGeometryYAML_RejectsUnknownFields(t *testing.T) {
	var p XY
	if err := yaml.Unmarshal([]byte("{x: 1, z: 2}"), &p); err == nil {
		t.Error("unknown field z accepted")
	}
	var r Rect
	if err := yaml.Unmarshal([]byte("[1, 2, 3, 4]"), &r); err == nil {
		t.Error("sequence accepted as rect")
	}
}

func TestGeometryYAML_KeepsValueOnError(t *testing.T) {
	p := XY{5, 5}
	if err := yaml.Unmarshal([]byte("{x: 1, y: 2.5}"), &p); err == nil {
		t.Fatal("fraction accepted")
	}
	if p != (XY{5, 5}) {
		t.Errorf("p = %v after failed decode, want {5 5}", p)
	}
}
