package nature

import "testing"

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestNewEntity_Defaults(t *testing.T) {
	e := NewEntity("rock", nil)
	if e.CollisionPredicate() != CollideNever {
		t.Errorf("predicate = %v, want never", e.CollisionPredicate())
	}
	if e.UpdatePredicate() != UpdateAlways {
		t.Errorf("update predicate = %v, want always", e.UpdatePredicate())
	}
	if e.Bounds() != (Rect{}) {
		t.Errorf("bounds = %+v, want zero", e.Bounds())
	}
}

func TestNewEntity_UniqueHandles(t *testing.T) {
	a := NewEntity("a", nil)
	b := NewEntity("a", nil)
	if a.Handle() == b.Handle() {
		t.Error("handles should differ")
	}
}

func TestAddChild_Panics(t *testing.T) {
	parent := NewEntity("parent", nil)
	child := NewEntity("child", nil)
	parent.AddChild(child)

	expectPanic(t, "nil", func() { parent.AddChild(nil) })
	expectPanic(t, "owned", func() { NewEntity("other", nil).AddChild(child) })
	expectPanic(t, "cycle", func() {
		grandchild := NewEntity("grandchild", nil)
		child.AddChild(grandchild)
		grandchild.AddChild(parent)
	})
	expectPanic(t, "self", func() {
		e := NewEntity("e", nil)
		e.AddChild(e)
	})
}

func TestAddChild_BoundsInvariant(t *testing.T) {
	parent := newBox("parent", XY{}, WH{2, 2}, CollideBounds)
	child := newBox("child", XY{10, 10}, WH{4, 4}, CollideBounds)
	parent.AddChild(child)

	if want := (Rect{0, 0, 14, 14}); parent.Bounds() != want {
		t.Errorf("bounds = %+v, want %+v", parent.Bounds(), want)
	}
	debugCheckBounds(parent)
}

func TestMoveBy_PropagatesToAncestors(t *testing.T) {
	root := NewEntity("root", nil)
	parent := newBox("parent", XY{}, WH{2, 2}, CollideBounds)
	child := newBox("child", XY{4, 0}, WH{2, 2}, CollideBounds)
	root.AddChild(parent)
	parent.AddChild(child)

	if status := child.MoveBy(XY{4, 4}); !status.Changed() {
		t.Errorf("status = %v, want updated", status)
	}
	if want := (Rect{8, 4, 2, 2}); child.Bounds() != want {
		t.Errorf("child bounds = %+v, want %+v", child.Bounds(), want)
	}
	if want := (Rect{0, 0, 10, 6}); parent.Bounds() != want {
		t.Errorf("parent bounds = %+v, want %+v", parent.Bounds(), want)
	}
	if root.Bounds() != parent.Bounds() {
		t.Errorf("root bounds = %+v, want %+v", root.Bounds(), parent.Bounds())
	}
	debugCheckBounds(root)
}

func TestMoveBy_ZeroIsUnchanged(t *testing.T) {
	e := newBox("e", XY{3, 3}, WH{2, 2}, CollideBounds)
	if status := e.MoveBy(XY{}); status != StatusUnchanged {
		t.Errorf("status = %v, want unchanged", status)
	}
}

func TestMoveTo_CarriesSubtreeAndBodies(t *testing.T) {
	parent := newBox("parent", XY{}, WH{2, 2}, CollideBodies)
	parent.SetBodies(NewRect(0, 1, 2, 1))
	child := newBox("child", XY{2, 2}, WH{2, 2}, CollideBounds)
	parent.AddChild(child)

	parent.MoveTo(XY{10, 20})
	if got := parent.Position(); got != (XY{10, 20}) {
		t.Errorf("position = %v, want {10 20}", got)
	}
	if got := child.Position(); got != (XY{12, 22}) {
		t.Errorf("child position = %v, want {12 22}", got)
	}
	if got := parent.Bodies()[0]; got != NewRect(10, 21, 2, 1) {
		t.Errorf("body = %+v", got)
	}
	if status := parent.MoveTo(XY{10, 20}); status != StatusUnchanged {
		t.Errorf("second MoveTo status = %v, want unchanged", status)
	}
	debugCheckBounds(parent)
}

func TestRemoveChild(t *testing.T) {
	parent := newBox("parent", XY{}, WH{2, 2}, CollideBounds)
	a := newBox("a", XY{10, 0}, WH{2, 2}, CollideBounds)
	b := newBox("b", XY{4, 0}, WH{2, 2}, CollideBounds)
	parent.AddChildren(a, b)

	parent.RemoveChild(a)
	if parent.NumChildren() != 1 || parent.ChildAt(0) != b {
		t.Fatalf("children = %v", handles(parent.Children()))
	}
	if a.Parent() != nil {
		t.Error("removed child still has a parent")
	}
	if want := (Rect{0, 0, 6, 2}); parent.Bounds() != want {
		t.Errorf("bounds = %+v, want %+v", parent.Bounds(), want)
	}
	expectPanic(t, "not owned", func() { parent.RemoveChild(a) })

	parent.RemoveChildren()
	if parent.NumChildren() != 0 || b.Parent() != nil {
		t.Error("RemoveChildren left children attached")
	}
}

func TestFind(t *testing.T) {
	root := NewEntity("root", nil)
	a := NewEntity("a", nil)
	b := NewEntity("b", nil)
	b.ID = "target"
	a.AddChild(b)
	root.AddChild(a)

	if got := root.Find("target"); got != b {
		t.Errorf("Find = %v, want b", got)
	}
	if got := root.Find("missing"); got != nil {
		t.Errorf("Find missing = %v, want nil", got)
	}
}

func TestElevate_Subtree(t *testing.T) {
	parent := newBox("parent", XY{}, WH{2, 2}, CollideBounds)
	child := newBox("child", XY{}, WH{2, 2}, CollideBounds)
	parent.AddChild(child)

	if status := parent.Elevate(3); !status.Changed() {
		t.Errorf("status = %v, want updated", status)
	}
	if got := child.Images().Current().Images()[0].Layer; got != 3 {
		t.Errorf("child layer = %d, want 3", got)
	}
	if status := parent.Elevate(0); status != StatusUnchanged {
		t.Errorf("zero elevate status = %v, want unchanged", status)
	}
}

func TestScaleTo_UpdatesBounds(t *testing.T) {
	e := newBox("e", XY{2, 2}, WH{3, 4}, CollideBounds)
	e.ScaleTo(XY{2, 3})
	if want := (Rect{2, 2, 6, 12}); e.Bounds() != want {
		t.Errorf("bounds = %+v, want %+v", e.Bounds(), want)
	}
	expectPanic(t, "zero scale", func() { e.ScaleTo(XY{0, 1}) })
	expectPanic(t, "negative scale", func() { e.ScaleTo(XY{1, -1}) })
}
