package nature

import "fmt"

// inputStep is a single action in an input script.
type inputStep struct {
	Action  string  `yaml:"action"`
	Buttons Buttons `yaml:"buttons,omitempty"`
	X       int     `yaml:"x,omitempty"`
	Y       int     `yaml:"y,omitempty"`
	ToX     int     `yaml:"toX,omitempty"`
	ToY     int     `yaml:"toY,omitempty"`
	Ticks   int     `yaml:"ticks,omitempty"`
}

type inputScript struct {
	Steps []inputStep `yaml:"steps"`
}

// syntheticInput is one tick of injected input.
type syntheticInput struct {
	press, release Buttons
	point          bool
	at             XY
}

// InputScript replays scripted input one tick at a time, for automated
// play-throughs and tests. Pointer coordinates are world coordinates.
type InputScript struct {
	steps     []inputStep
	next      int
	waitCount int
	queue     []syntheticInput

	held      Buttons
	cursor    XY
	hasCursor bool
}

// LoadInputScript parses a YAML input script:
//
//	steps:
//	  - {action: press, buttons: right}
//	  - {action: wait, ticks: 30}
//	  - {action: release, buttons: right}
//	  - {action: tap, buttons: action}
//	  - {action: point, x: 40, y: 12}
//	  - {action: drag, x: 0, y: 0, toX: 30, toY: 10, ticks: 4}
func LoadInputScript(yamlData []byte) (*InputScript, error) {
	var script inputScript
	if err := decodeStrict(yamlData, &script); err != nil {
		return nil, fmt.Errorf("nature: parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("nature: parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "release", "tap", "point", "drag", "wait":
		default:
			return nil, fmt.Errorf("nature: parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &InputScript{steps: script.Steps}, nil
}

// Done reports whether every step has been replayed.
func (r *InputScript) Done() bool {
	return r.next >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0
}

// Next returns the input snapshot for the next tick.
func (r *InputScript) Next() InputSnapshot {
	prev := r.held
	if len(r.queue) == 0 {
		r.advance()
	}
	if len(r.queue) > 0 {
		ev := r.queue[0]
		copy(r.queue, r.queue[1:])
		r.queue = r.queue[:len(r.queue)-1]
		r.held = (r.held | ev.press) &^ ev.release
		if ev.point {
			r.cursor = ev.at
			r.hasCursor = true
		}
	}
	return InputSnapshot{
		Held:      r.held,
		Pressed:   r.held &^ prev,
		Cursor:    r.cursor,
		HasCursor: r.hasCursor,
	}
}

func (r *InputScript) advance() {
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.next >= len(r.steps) {
		return
	}
	st := r.steps[r.next]
	r.next++

	switch st.Action {
	case "press":
		r.queue = append(r.queue, syntheticInput{press: st.Buttons})
	case "release":
		r.queue = append(r.queue, syntheticInput{release: st.Buttons})
	case "tap":
		r.queue = append(r.queue,
			syntheticInput{press: st.Buttons},
			syntheticInput{release: st.Buttons})
	case "point":
		r.queue = append(r.queue, syntheticInput{point: true, at: XY{st.X, st.Y}})
	case "drag":
		r.drag(XY{st.X, st.Y}, XY{st.ToX, st.ToY}, st.Ticks)
	case "wait":
		if st.Ticks > 0 {
			r.waitCount = st.Ticks - 1 // this tick counts as one
		}
	}
}

// drag queues an action-button press at from, linearly interpolated moves,
// and a release at to. The sequence takes ticks ticks, at least two.
func (r *InputScript) drag(from, to XY, ticks int) {
	if ticks < 2 {
		ticks = 2
	}
	r.queue = append(r.queue, syntheticInput{press: ButtonAction, point: true, at: from})
	steps := ticks - 2
	for i := 1; i <= steps; i++ {
		at := XY{
			from.X + (to.X-from.X)*i/(steps+1),
			from.Y + (to.Y-from.Y)*i/(steps+1),
		}
		r.queue = append(r.queue, syntheticInput{point: true, at: at})
	}
	r.queue = append(r.queue, syntheticInput{release: ButtonAction, point: true, at: to})
}
