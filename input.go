package nature

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Buttons is a set of logical input buttons.
type Buttons uint16

const (
	ButtonUp     Buttons = 1 << iota // move up
	ButtonDown                       // move down
	ButtonLeft                       // move left
	ButtonRight                      // move right
	ButtonAction                     // primary action; also the left mouse button
	ButtonMenu                       // open or close the menu
	ButtonDebug                      // toggle the debug overlay
)

var buttonNames = [...]string{"up", "down", "left", "right", "action", "menu", "debug"}

// Has reports whether every button of b2 is in b.
func (b Buttons) Has(b2 Buttons) bool { return b&b2 == b2 }

func (b Buttons) String() string {
	if b == 0 {
		return "none"
	}
	var names []string
	for i, name := range buttonNames {
		if b&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// ParseButtons parses a "|" separated list of button names.
func ParseButtons(s string) (Buttons, error) {
	var b Buttons
	if s == "" || s == "none" {
		return 0, nil
	}
	for _, part := range strings.Split(s, "|") {
		found := false
		for i, name := range buttonNames {
			if name == strings.TrimSpace(part) {
				b |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("nature: unknown button %q", part)
		}
	}
	return b, nil
}

// UnmarshalYAML decodes a "|" separated list of button names.
func (b *Buttons) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseButtons(value.Value)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// MarshalYAML encodes the button names.
func (b Buttons) MarshalYAML() (any, error) { return b.String(), nil }

// InputSnapshot is the input state for one tick. It is only read by leaf
// hooks; the core never interprets it.
type InputSnapshot struct {
	// Held is every button currently down.
	Held Buttons
	// Pressed is every button that went down this tick.
	Pressed Buttons
	// Cursor is the pointer position in world coordinates; valid only when
	// HasCursor is set.
	Cursor    XY
	HasCursor bool
}

// Direction returns a unit vector from the held direction buttons.
// Opposing buttons cancel.
func (in InputSnapshot) Direction() XY {
	var d XY
	if in.Held.Has(ButtonLeft) {
		d.X--
	}
	if in.Held.Has(ButtonRight) {
		d.X++
	}
	if in.Held.Has(ButtonUp) {
		d.Y--
	}
	if in.Held.Has(ButtonDown) {
		d.Y++
	}
	return d
}
