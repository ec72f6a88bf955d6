package nature

import (
	"fmt"
	"sort"
)

// ImageStateMachine maps a closed set of states to image rects. Only the
// current state's rect is positioned, scaled and animated; a transition
// carries the previous rect's placement over to the next one.
type ImageStateMachine struct {
	state   State
	rects   map[State]*ImageRect
	imageID string
}

// NewImageStateMachine returns a machine in state initial. A machine with no
// rects gets a single empty rect under initial.
// Panics if initial is not one of the states.
func NewImageStateMachine(initial State, rects map[State]*ImageRect) *ImageStateMachine {
	if len(rects) == 0 {
		rects = map[State]*ImageRect{initial: NewImageRect()}
	}
	if _, ok := rects[initial]; !ok {
		panic(fmt.Sprintf("nature: unknown image state %q", initial))
	}
	return &ImageStateMachine{state: initial, rects: rects}
}

// State returns the current state.
func (m *ImageStateMachine) State() State { return m.state }

// Current returns the current state's rect.
func (m *ImageStateMachine) Current() *ImageRect { return m.rects[m.state] }

// Rect returns the rect registered for state.
func (m *ImageStateMachine) Rect(state State) (*ImageRect, bool) {
	r, ok := m.rects[state]
	return r, ok
}

// Has reports whether state is registered.
func (m *ImageStateMachine) Has(state State) bool {
	_, ok := m.rects[state]
	return ok
}

// States returns the registered states in lexical order.
func (m *ImageStateMachine) States() []State {
	states := make([]State, 0, len(m.rects))
	for s := range m.rects {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	return states
}

// Bounds returns the current rect's bounds.
func (m *ImageStateMachine) Bounds() Rect { return m.Current().Bounds() }

// Transition switches to state. The new rect takes over the previous rect's
// origin and scale and its animations restart from the first cel. A
// transition to the current state is a no-op that leaves every clock alone.
// Panics if state is not registered.
func (m *ImageStateMachine) Transition(state State) UpdateStatus {
	if state == m.state {
		return StatusUnchanged
	}
	next, ok := m.rects[state]
	if !ok {
		panic(fmt.Sprintf("nature: unknown image state %q", state))
	}
	prev := m.Current()
	m.state = state
	next.MoveTo(prev.Origin())
	next.ScaleTo(prev.Scale())
	next.ResetAnimation()
	return StatusUpdated
}

// MoveBy translates the current rect.
func (m *ImageStateMachine) MoveBy(d XY) UpdateStatus { return m.Current().MoveBy(d) }

// MoveTo moves the current rect's origin to p.
func (m *ImageStateMachine) MoveTo(p XY) UpdateStatus { return m.Current().MoveTo(p) }

// ScaleTo rescales the current rect.
func (m *ImageStateMachine) ScaleTo(s XY) UpdateStatus { return m.Current().ScaleTo(s) }

// Scale returns the current rect's scale.
func (m *ImageStateMachine) Scale() XY { return m.Current().Scale() }

// SetImageID propagates a recolor identifier to every image of every state.
func (m *ImageStateMachine) SetImageID(id string) UpdateStatus {
	status := StatusUnchanged
	if m.imageID != id {
		m.imageID = id
		status = StatusUpdated
	}
	for _, r := range m.rects {
		status |= r.SetImageID(id)
	}
	return status
}

// ImageID returns the recolor identifier last set with SetImageID.
func (m *ImageStateMachine) ImageID() string { return m.imageID }

// Elevate shifts the layer of every image of every state by offset.
func (m *ImageStateMachine) Elevate(offset Layer) UpdateStatus {
	status := StatusUnchanged
	for _, r := range m.rects {
		status |= r.Elevate(offset)
	}
	return status
}

// ResetAnimation rewinds the current rect's clocks.
func (m *ImageStateMachine) ResetAnimation() { m.Current().ResetAnimation() }

// Animate advances the current rect's clocks by ms.
func (m *ImageStateMachine) Animate(ms int, atlas *Atlas) { m.Current().Animate(ms, atlas) }
