package nature

// Hook is a behavior hook run on every update of its entity, in the order
// hooks were added. A hook must be a pure function of (entity, state) and
// return StatusUnchanged when it did nothing.
type Hook func(e *Entity, state *TickState) UpdateStatus

// TickState is everything the update pass reads for one tick. The atlas and
// the candidate set are shared by every entity and are not mutated while the
// pass runs.
type TickState struct {
	// Time is the elapsed simulation time of this tick in milliseconds.
	Time int
	// Viewport is the visible world rectangle.
	Viewport Rect
	// Collidables is the candidate set tested during position integration.
	Collidables []*Entity
	// Atlas is the shared animation metadata.
	Atlas *Atlas
	// Input is this tick's input snapshot, read only by leaf hooks.
	Input InputSnapshot

	sink EventSink
}

// Emit forwards ev to the world's event sink, if any.
func (s *TickState) Emit(ev Event) {
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}

// Active reports whether e is eligible for update against viewport.
func (e *Entity) Active(viewport Rect) bool {
	return e.updatePredicate == UpdateAlways || e.bounds.Overlaps(viewport)
}

// Update runs one tick over e and its subtree:
//
//  1. an UpdateInViewport entity outside the viewport is skipped with its subtree;
//  2. hooks run in order and their statuses are OR-ed;
//  3. the current images animate;
//  4. position integration moves e by its velocity;
//  5. children update in order.
//
// As soon as the accumulated status has Terminate set, Update returns without
// running anything that follows, including later siblings' updates when
// called from a parent.
func (e *Entity) Update(state *TickState) UpdateStatus {
	if !e.Active(state.Viewport) {
		return StatusUnchanged
	}

	status := StatusUnchanged
	for _, hook := range e.hooks {
		status |= hook(e, state)
		if status.Terminated() {
			state.Emit(Event{Type: EventTerminate, Entity: e.handle, Kind: e.kind})
			return status
		}
	}

	e.images.Animate(state.Time, state.Atlas)

	status |= e.integrate(state)

	for _, child := range e.children {
		status |= child.Update(state)
		if status.Terminated() {
			return status
		}
	}
	return status
}
