package nature

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
)

// InfiniteDuration marks a cel that is shown until the animator is reset.
const InfiniteDuration = 0xFFFF

// Direction is the playback order of an animation's cels.
type Direction uint8

const (
	DirectionForward  Direction = iota // 0, 1, 2, 0, 1, 2, ...
	DirectionReverse                   // 2, 1, 0, 2, 1, 0, ...
	DirectionPingPong                  // 0, 1, 2, 1, 0, 1, ...
)

// Cel is one frame of an animation: a sub-rectangle of the atlas page and
// how long it is exposed, in milliseconds.
type Cel struct {
	Bounds   Rect
	Duration int
}

// Animation is the per-state timing and source geometry for one image.
type Animation struct {
	ID        string
	Size      WH
	Cels      []Cel
	Direction Direction
}

// period returns the number of steps in one full playback cycle.
func (a *Animation) period() int {
	n := len(a.Cels)
	if a.Direction == DirectionPingPong && n > 2 {
		return 2*n - 2
	}
	return n
}

// Atlas is the shared, read-only table of animations. It is built once by
// LoadAtlas and never mutated during a tick.
type Atlas struct {
	animations map[string]*Animation
}

// NewAtlas returns an atlas holding the given animations.
func NewAtlas(animations ...Animation) *Atlas {
	a := &Atlas{animations: make(map[string]*Animation, len(animations))}
	for i := range animations {
		anim := animations[i]
		a.animations[anim.ID] = &anim
	}
	return a
}

// Animation returns the animation registered under id.
func (a *Atlas) Animation(id string) (*Animation, bool) {
	if a == nil {
		return nil, false
	}
	anim, ok := a.animations[id]
	if !ok && globalDebug {
		log.Printf("nature: atlas animation %q not found", id)
	}
	return anim, ok
}

// Len returns the number of animations.
func (a *Atlas) Len() int {
	if a == nil {
		return 0
	}
	return len(a.animations)
}

// LoadAtlas parses an Aseprite sprite-sheet export. Each frame tag becomes an
// animation named by the tag; its cels are the tagged frame range. Both the
// array ("frames": [...]) and hash ("frames": {...}) layouts are accepted;
// hash order is preserved.
func LoadAtlas(jsonData []byte) (*Atlas, error) {
	var sheet struct {
		Frames json.RawMessage `json:"frames"`
		Meta   struct {
			FrameTags []jsonFrameTag `json:"frameTags"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(jsonData, &sheet); err != nil {
		return nil, fmt.Errorf("nature: failed to parse atlas JSON: %w", err)
	}
	if sheet.Frames == nil {
		return nil, fmt.Errorf("nature: atlas JSON has no \"frames\" key")
	}

	frames, err := parseFrames(sheet.Frames)
	if err != nil {
		return nil, err
	}

	atlas := &Atlas{animations: make(map[string]*Animation, len(sheet.Meta.FrameTags))}
	for _, tag := range sheet.Meta.FrameTags {
		if tag.From < 0 || tag.To >= len(frames) || tag.From > tag.To {
			return nil, fmt.Errorf("nature: atlas tag %q range [%d, %d] outside %d frames",
				tag.Name, tag.From, tag.To, len(frames))
		}
		dir, err := parseDirection(tag.Direction)
		if err != nil {
			return nil, fmt.Errorf("nature: atlas tag %q: %w", tag.Name, err)
		}
		anim := &Animation{ID: tag.Name, Direction: dir}
		for _, f := range frames[tag.From : tag.To+1] {
			anim.Cels = append(anim.Cels, Cel{
				Bounds:   Rect{X: f.Frame.X, Y: f.Frame.Y, W: f.Frame.W, H: f.Frame.H},
				Duration: f.Duration,
			})
		}
		first := frames[tag.From]
		anim.Size = WH{first.SourceSize.W, first.SourceSize.H}
		if anim.Size == (WH{}) {
			anim.Size = WH{first.Frame.W, first.Frame.H}
		}
		atlas.animations[tag.Name] = anim
	}
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame      jsonRect `json:"frame"`
	SourceSize jsonSize `json:"sourceSize"`
	Duration   int      `json:"duration"`
}

type jsonFrameTag struct {
	Name      string `json:"name"`
	From      int    `json:"from"`
	To        int    `json:"to"`
	Direction string `json:"direction"`
}

// parseFrames decodes either layout into frame order.
func parseFrames(raw json.RawMessage) ([]jsonFrame, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var frames []jsonFrame
		if err := json.Unmarshal(raw, &frames); err != nil {
			return nil, fmt.Errorf("nature: failed to parse atlas frames: %w", err)
		}
		return frames, nil
	}

	// Hash layout: walk tokens so frame order follows the document.
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("nature: failed to parse atlas frames: %w", err)
	}
	var frames []jsonFrame
	for dec.More() {
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("nature: failed to parse atlas frame name: %w", err)
		}
		var f jsonFrame
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("nature: failed to parse atlas frame: %w", err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func parseDirection(s string) (Direction, error) {
	switch s {
	case "", "forward":
		return DirectionForward, nil
	case "reverse":
		return DirectionReverse, nil
	case "pingpong":
		return DirectionPingPong, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Animator is an image's animation clock: the step within the playback cycle
// and the time the current cel has been exposed, in milliseconds.
type Animator struct {
	Step     int
	Exposure int
}

// Reset rewinds the clock to the first cel.
func (a *Animator) Reset() {
	a.Step = 0
	a.Exposure = 0
}

// Index returns the cel index for the current step under anim's direction.
func (a Animator) Index(anim *Animation) int {
	n := len(anim.Cels)
	if n == 0 {
		return 0
	}
	step := a.Step % anim.period()
	switch anim.Direction {
	case DirectionReverse:
		return n - 1 - step
	case DirectionPingPong:
		if step >= n {
			return 2*n - 2 - step
		}
	}
	return step
}

// Animate advances the clock by ms, stepping past every cel whose duration
// has elapsed. A cel with InfiniteDuration (or no duration) holds forever.
func (a *Animator) Animate(ms int, anim *Animation) {
	if anim == nil || len(anim.Cels) == 0 {
		return
	}
	a.Exposure += ms
	period := anim.period()
	for {
		d := anim.Cels[a.Index(anim)].Duration
		if d <= 0 || d >= InfiniteDuration || a.Exposure < d {
			return
		}
		a.Exposure -= d
		a.Step = (a.Step + 1) % period
	}
}

// Cel returns the cel currently exposed.
func (a Animator) Cel(anim *Animation) (Cel, bool) {
	if anim == nil || len(anim.Cels) == 0 {
		return Cel{}, false
	}
	return anim.Cels[a.Index(anim)], true
}
