package nature

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func newStatefulBox(kind Kind, p XY, states ...State) *Entity {
	rects := make(map[State]*ImageRect, len(states))
	for _, s := range states {
		rects[s] = NewImageRect(NewImage(string(kind)+"--"+string(s), WH{4, 4}))
	}
	e := NewEntity(kind, NewImageStateMachine(states[0], rects))
	e.SetCollisionPredicate(CollideBounds)
	e.MoveTo(p)
	return e
}

func TestCursorHook(t *testing.T) {
	e := newBox("cursor", XY{}, WH{1, 1}, CollideBounds)
	if status := cursorHook(e, &TickState{}); status != StatusUnchanged {
		t.Errorf("no cursor status = %v", status)
	}
	cursorHook(e, &TickState{Input: InputSnapshot{Cursor: XY{9, 3}, HasCursor: true}})
	if e.Position() != (XY{9, 3}) {
		t.Errorf("position = %v, want {9 3}", e.Position())
	}
}

func TestFaceVelocityHook(t *testing.T) {
	e := newStatefulBox("walker", XY{}, StateIdle, StateWalkLeft, StateWalkDown)
	sink := &recordingSink{}
	state := &TickState{sink: sink}

	e.SetVelocity(XY{-5, 2})
	if status := faceVelocityHook(e, state); !status.Changed() || e.State() != StateWalkLeft {
		t.Errorf("left: status %v state %q", status, e.State())
	}
	e.SetVelocity(XY{1, 5})
	faceVelocityHook(e, state)
	if e.State() != StateWalkDown {
		t.Errorf("down: state %q", e.State())
	}
	// No walk-right state: stays put.
	e.SetVelocity(XY{5, 0})
	if status := faceVelocityHook(e, state); status != StatusUnchanged || e.State() != StateWalkDown {
		t.Errorf("right: status %v state %q", status, e.State())
	}
	e.SetVelocity(XY{})
	faceVelocityHook(e, state)
	if e.State() != StateIdle {
		t.Errorf("rest: state %q", e.State())
	}
	if len(sink.events) != 3 || sink.events[0].Type != EventTransition || sink.events[0].State != StateWalkLeft {
		t.Errorf("events = %+v", sink.events)
	}
}

func TestObstacleStopHook(t *testing.T) {
	e := newStatefulBox("walker", XY{}, StateWalkRight, StateIdle)
	wall := newBox("wall", XY{4, 0}, WH{4, 4}, CollideBounds)
	wall.SetCollisionType(CollisionObstacle)
	e.SetVelocity(XY{X: 100})
	state := &TickState{Collidables: []*Entity{e, wall}}

	if status := obstacleStopHook(e, state); !status.Changed() {
		t.Errorf("status = %v, want updated", status)
	}
	if !e.Velocity().IsZero() || e.State() != StateIdle {
		t.Errorf("velocity %v state %q, want stopped idle", e.Velocity(), e.State())
	}

	// Scenery never stops a walker.
	wall.SetCollisionType(CollisionScenery)
	e.SetVelocity(XY{X: 100})
	if status := obstacleStopHook(e, state); status != StatusUnchanged {
		t.Errorf("scenery status = %v", status)
	}
}

func TestBounceHook(t *testing.T) {
	e := newBox("ball", XY{}, WH{4, 4}, CollideBounds)
	floor := newBox("floor", XY{-10, 4}, WH{30, 4}, CollideBounds)
	floor.SetCollisionType(CollisionObstacle)
	e.SetVelocity(XY{300, 200})
	state := &TickState{Collidables: []*Entity{floor}}

	if status := bounceHook(e, state); !status.Changed() {
		t.Errorf("status = %v, want updated", status)
	}
	if e.Velocity() != (XY{300, -200}) {
		t.Errorf("velocity = %v, want {300 -200}", e.Velocity())
	}
}

func TestHarmfulHook(t *testing.T) {
	e := newStatefulBox("player", XY{}, StateIdle, StateHurt)
	hook, err := newHarmfulHook(e)
	if err != nil {
		t.Fatal(err)
	}
	bramble := newBox("bramble", XY{2, 2}, WH{4, 4}, CollideBounds)
	bramble.SetCollisionType(CollisionHarmful)
	state := &TickState{Collidables: []*Entity{bramble}}

	hook(e, state)
	if e.State() != StateHurt {
		t.Errorf("state = %q, want hurt", e.State())
	}
	e.MoveTo(XY{20, 20})
	hook(e, state)
	if e.State() != StateIdle {
		t.Errorf("state = %q, want idle after leaving", e.State())
	}

	if _, err := newHarmfulHook(newBox("rock", XY{}, WH{1, 1}, CollideBounds)); err == nil {
		t.Error("expected error for entity without hurt state")
	}
}

func TestWalkHook(t *testing.T) {
	e := newBox("walker", XY{}, WH{1, 1}, CollideBounds)
	state := &TickState{Input: InputSnapshot{Held: ButtonUp | ButtonRight}}
	if status := walkHook(e, state); !status.Changed() {
		t.Errorf("status = %v", status)
	}
	if e.Velocity() != (XY{WalkSpeed, -WalkSpeed}) {
		t.Errorf("velocity = %v", e.Velocity())
	}
	if status := walkHook(e, state); status != StatusUnchanged {
		t.Errorf("repeat status = %v", status)
	}
}

func TestTween(t *testing.T) {
	e := newBox("cloud", XY{}, WH{2, 2}, CollideNever)
	tw := TweenTo(e, XY{100, -50}, 1000, ease.Linear)
	e.AddHook(tw.Hook())

	e.Update(&TickState{Time: 250})
	if e.Position() != (XY{25, -13}) && e.Position() != (XY{25, -12}) {
		t.Errorf("quarter position = %v", e.Position())
	}
	for !tw.Done() {
		e.Update(&TickState{Time: 250})
	}
	if e.Position() != (XY{100, -50}) {
		t.Errorf("final position = %v", e.Position())
	}
	if status := e.Update(&TickState{Time: 250}); status != StatusUnchanged {
		t.Errorf("after done status = %v", status)
	}
}
