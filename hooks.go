package nature

import "fmt"

// Built-in hook names.
const (
	HookCursor       = "cursor"
	HookFaceVelocity = "face-velocity"
	HookObstacleStop = "obstacle-stop"
	HookBounce       = "bounce"
	HookHarmful      = "harmful"
	HookWalk         = "walk"
)

// Conventional state names used by the built-in hooks.
const (
	StateIdle      State = "idle"
	StateHurt      State = "hurt"
	StateWalkUp    State = "walk-up"
	StateWalkDown  State = "walk-down"
	StateWalkLeft  State = "walk-left"
	StateWalkRight State = "walk-right"
)

// WalkSpeed is the walk hook's speed in decamillipixels per millisecond.
const WalkSpeed = 400

func registerBuiltinHooks(r *Registry) {
	r.RegisterHook(HookCursor, func(*Entity) (Hook, error) { return cursorHook, nil })
	r.RegisterHook(HookFaceVelocity, func(*Entity) (Hook, error) { return faceVelocityHook, nil })
	r.RegisterHook(HookObstacleStop, func(*Entity) (Hook, error) { return obstacleStopHook, nil })
	r.RegisterHook(HookBounce, func(*Entity) (Hook, error) { return bounceHook, nil })
	r.RegisterHook(HookHarmful, newHarmfulHook)
	r.RegisterHook(HookWalk, func(*Entity) (Hook, error) { return walkHook, nil })
}

// cursorHook pins the entity to the input cursor.
func cursorHook(e *Entity, state *TickState) UpdateStatus {
	if !state.Input.HasCursor {
		return StatusUnchanged
	}
	return e.MoveTo(state.Input.Cursor)
}

// walkHook sets the velocity from the held direction buttons.
func walkHook(e *Entity, state *TickState) UpdateStatus {
	v := state.Input.Direction()
	v = XY{v.X * WalkSpeed, v.Y * WalkSpeed}
	if v == e.velocity {
		return StatusUnchanged
	}
	e.velocity = v
	return StatusUpdated
}

// faceVelocityHook picks a walk state from the dominant velocity axis, or
// idle when at rest. States the entity lacks are skipped.
func faceVelocityHook(e *Entity, state *TickState) UpdateStatus {
	next := StateIdle
	v := e.velocity
	switch {
	case v.IsZero():
	case abs(v.X) >= abs(v.Y) && v.X > 0:
		next = StateWalkRight
	case abs(v.X) >= abs(v.Y):
		next = StateWalkLeft
	case v.Y > 0:
		next = StateWalkDown
	default:
		next = StateWalkUp
	}
	return transitionIfAble(e, next, state)
}

// obstacleStopHook halts the entity and idles it when its next pixel of
// travel would enter an obstacle.
func obstacleStopHook(e *Entity, state *TickState) UpdateStatus {
	if e.velocity.IsZero() {
		return StatusUnchanged
	}
	d := XY{sign(e.velocity.X), sign(e.velocity.Y)}
	if !obstacleAt(e, e.bounds.Translate(d), state) {
		return StatusUnchanged
	}
	e.velocity = XY{}
	e.fraction = XY{}
	return StatusUpdated | transitionIfAble(e, StateIdle, state)
}

// bounceHook reflects each velocity axis whose next pixel of travel would
// enter an obstacle.
func bounceHook(e *Entity, state *TickState) UpdateStatus {
	status := StatusUnchanged
	if e.velocity.X != 0 && obstacleAt(e, e.bounds.Translate(XY{sign(e.velocity.X), 0}), state) {
		e.velocity.X = -e.velocity.X
		e.fraction.X = 0
		status = StatusUpdated
	}
	if e.velocity.Y != 0 && obstacleAt(e, e.bounds.Translate(XY{0, sign(e.velocity.Y)}), state) {
		e.velocity.Y = -e.velocity.Y
		e.fraction.Y = 0
		status = StatusUpdated
	}
	return status
}

// newHarmfulHook builds a hook that shows the hurt state while the entity
// collides with a harmful entity and returns to its spawn state afterwards.
func newHarmfulHook(e *Entity) (Hook, error) {
	if !e.images.Has(StateHurt) {
		return nil, fmt.Errorf("state %q: %w", StateHurt, ErrUnknownState)
	}
	rest := e.State()
	return func(e *Entity, state *TickState) UpdateStatus {
		hurt := false
		for _, c := range state.Collidables {
			if c.collisionType.Harmful() && len(CollidesEntity(e, c)) > 0 {
				hurt = true
				break
			}
		}
		if hurt {
			return transitionIfAble(e, StateHurt, state)
		}
		if e.State() == StateHurt {
			return transitionIfAble(e, rest, state)
		}
		return StatusUnchanged
	}, nil
}

// obstacleAt reports whether ahead overlaps an obstacle candidate other
// than e's own tree.
func obstacleAt(e *Entity, ahead Rect, state *TickState) bool {
	for _, c := range state.Collidables {
		if !c.collisionType.Obstacle() || isAncestor(c, e) {
			continue
		}
		if len(CollidesRect(c, ahead)) > 0 {
			return true
		}
	}
	return false
}

// transitionIfAble transitions e to next when e has that state and emits an
// EventTransition on change.
func transitionIfAble(e *Entity, next State, state *TickState) UpdateStatus {
	if !e.images.Has(next) {
		return StatusUnchanged
	}
	status := e.Transition(next)
	if status.Changed() {
		state.Emit(Event{Type: EventTransition, Entity: e.handle, Kind: e.kind, State: next, Position: e.Position()})
	}
	return status
}
