package nature

import "testing"

func layeredBox(kind Kind, p XY, layer Layer) *Entity {
	e := newBox(kind, p, WH{4, 4}, CollideNever)
	e.Elevate(layer)
	return e
}

func TestRender_CullsOutsideViewport(t *testing.T) {
	w := NewWorld(NewRegistry(nil), WH{20, 20})
	visible := layeredBox("visible", XY{5, 5}, 0)
	edge := layeredBox("edge", XY{20, 0}, 0)
	far := layeredBox("far", XY{100, 100}, 0)
	w.Add(visible)
	w.Add(edge)
	w.Add(far)

	var buf RenderBuffer
	w.Render(&buf)
	if buf.Len() != 1 || buf.Commands[0].Entity != visible.Handle() {
		t.Fatalf("commands = %+v, want only visible", buf.Commands)
	}
	if buf.Commands[0].Dest != (Rect{5, 5, 4, 4}) {
		t.Errorf("dest = %+v", buf.Commands[0].Dest)
	}
}

func TestRender_SortsByLayerStable(t *testing.T) {
	w := NewWorld(NewRegistry(nil), WH{100, 100})
	a := layeredBox("a", XY{0, 0}, 2)
	b := layeredBox("b", XY{10, 0}, 1)
	c := layeredBox("c", XY{20, 0}, 2)
	d := layeredBox("d", XY{30, 0}, 1)
	child := layeredBox("child", XY{40, 0}, 0)
	a.AddChild(child)
	w.Add(a)
	w.Add(b)
	w.Add(c)
	w.Add(d)

	var buf RenderBuffer
	w.Render(&buf)

	want := []Handle{child.Handle(), b.Handle(), d.Handle(), a.Handle(), c.Handle()}
	if buf.Len() != len(want) {
		t.Fatalf("commands = %d, want %d", buf.Len(), len(want))
	}
	for i, h := range want {
		if buf.Commands[i].Entity != h {
			t.Errorf("command %d = entity %d, want %d", i, buf.Commands[i].Entity, h)
		}
	}
}

func TestRender_SourceFromAtlas(t *testing.T) {
	atlas := NewAtlas(Animation{ID: "box", Size: WH{4, 4}, Cels: []Cel{
		{Bounds: Rect{0, 0, 4, 4}, Duration: 10},
		{Bounds: Rect{4, 0, 4, 4}, Duration: 10},
	}})
	w := NewWorld(NewRegistry(atlas), WH{50, 50})
	e := newBox("box", XY{}, WH{4, 4}, CollideNever)
	w.Add(e)

	w.Update(10, InputSnapshot{})
	var buf RenderBuffer
	w.Render(&buf)
	if buf.Len() != 1 || buf.Commands[0].Source != (Rect{4, 0, 4, 4}) {
		t.Errorf("commands = %+v, want second cel", buf.Commands)
	}
}

func TestRenderBuffer_ReuseResets(t *testing.T) {
	w := NewWorld(NewRegistry(nil), WH{50, 50})
	w.Add(layeredBox("a", XY{}, 0))
	var buf RenderBuffer
	w.Render(&buf)
	w.Render(&buf)
	if buf.Len() != 1 {
		t.Errorf("Len = %d after second render, want 1", buf.Len())
	}
}

func TestRenderBuffer_SortLarge(t *testing.T) {
	var buf RenderBuffer
	for i := range 37 {
		buf.Commands = append(buf.Commands, RenderCommand{Layer: Layer(i % 5), treeOrder: i})
	}
	buf.sort()
	for i := 1; i < buf.Len(); i++ {
		prev, cur := buf.Commands[i-1], buf.Commands[i]
		if prev.Layer > cur.Layer || (prev.Layer == cur.Layer && prev.treeOrder > cur.treeOrder) {
			t.Fatalf("out of order at %d: %+v then %+v", i, prev, cur)
		}
	}
}
