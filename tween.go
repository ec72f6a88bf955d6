package nature

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Tween moves an entity to a target position over a fixed time with an
// easing function. It is driven as a hook, so it advances by the tick time
// and obeys the entity's update predicate.
//
// There is no tween manager; add Tween.Hook to the entity and check Done.
type Tween struct {
	x, y *gween.Tween
	done bool
}

// TweenTo returns a tween moving e from its current position to to over
// durationMs milliseconds.
func TweenTo(e *Entity, to XY, durationMs int, fn ease.TweenFunc) *Tween {
	from := e.Position()
	d := float32(durationMs)
	return &Tween{
		x: gween.New(float32(from.X), float32(to.X), d, fn),
		y: gween.New(float32(from.Y), float32(to.Y), d, fn),
	}
}

// Done reports whether the tween reached its target.
func (t *Tween) Done() bool { return t.done }

// Hook returns the hook that advances the tween.
func (t *Tween) Hook() Hook {
	return func(e *Entity, state *TickState) UpdateStatus {
		if t.done {
			return StatusUnchanged
		}
		x, doneX := t.x.Update(float32(state.Time))
		y, doneY := t.y.Update(float32(state.Time))
		t.done = doneX && doneY
		return e.MoveTo(XY{int(math.Round(float64(x))), int(math.Round(float64(y)))})
	}
}
