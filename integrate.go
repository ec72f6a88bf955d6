package nature

// Decamillipixels is the number of velocity units in one pixel.
const Decamillipixels = 10000

// integrate moves e by its velocity over state.Time and resolves collisions
// against state.Collidables.
//
// Each axis accumulates velocity*ms in a sub-pixel fraction and only whole
// pixels are consumed, so velocities far below a pixel per tick still move.
// When both axes move, the fractions are synchronized to the larger
// magnitude so a diagonal mover steps both axes on the same tick instead of
// drifting into a staircase.
//
// Any nonempty collision blocks the move, whatever the collision type of the
// entity hit. A blocked diagonal move first retries X only, then Y only,
// which slides along axis-aligned walls; otherwise the move is reverted.
func (e *Entity) integrate(state *TickState) UpdateStatus {
	if e.velocity.IsZero() {
		return StatusUnchanged
	}

	e.accumulate(state.Time)

	step := XY{e.fraction.X / Decamillipixels, e.fraction.Y / Decamillipixels}
	e.fraction = e.fraction.Sub(XY{step.X * Decamillipixels, step.Y * Decamillipixels})
	if step.IsZero() {
		return StatusUnchanged
	}

	from := e.Position()
	e.MoveBy(step)
	hits := CollidesEntities(e, state.Collidables)
	if len(hits) == 0 {
		return StatusUpdated
	}

	if step.X != 0 && step.Y != 0 {
		e.MoveTo(XY{from.X + step.X, from.Y})
		if len(CollidesEntities(e, state.Collidables)) == 0 {
			state.Emit(blockedEvent(EventSlid, e, hits))
			return StatusUpdated
		}
		e.MoveTo(XY{from.X, from.Y + step.Y})
		if len(CollidesEntities(e, state.Collidables)) == 0 {
			state.Emit(blockedEvent(EventSlid, e, hits))
			return StatusUpdated
		}
	}

	e.MoveTo(from)
	state.Emit(blockedEvent(EventBlocked, e, hits))
	return StatusUnchanged
}

// accumulate adds velocity*ms to the fractions and synchronizes diagonal
// movers: both fractions take the larger magnitude, each keeping the sign of
// its own axis velocity.
func (e *Entity) accumulate(ms int) {
	e.fraction = e.fraction.Add(XY{e.velocity.X * ms, e.velocity.Y * ms})
	if e.velocity.X != 0 && e.velocity.Y != 0 {
		m := max(abs(e.fraction.X), abs(e.fraction.Y))
		e.fraction = XY{sign(e.velocity.X) * m, sign(e.velocity.Y) * m}
	}
}

func blockedEvent(t EventType, e *Entity, hits []*Entity) Event {
	ev := Event{Type: t, Entity: e.handle, Kind: e.kind, Position: e.Position()}
	for _, h := range hits {
		ev.Hits = append(ev.Hits, h.handle)
	}
	return ev
}
