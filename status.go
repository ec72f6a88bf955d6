package nature

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UpdateStatus is the bitmask returned by every update-pass operation.
// Values combine with bitwise OR.
type UpdateStatus uint8

const (
	StatusUnchanged UpdateStatus = 0      // nothing observable changed
	StatusUpdated   UpdateStatus = 1 << 0 // state changed; a redraw is needed
	StatusTerminate UpdateStatus = 1 << 1 // abort the remainder of this update pass
)

// Changed reports whether the Updated bit is set.
func (s UpdateStatus) Changed() bool { return s&StatusUpdated != 0 }

// Terminated reports whether the Terminate bit is set.
func (s UpdateStatus) Terminated() bool { return s&StatusTerminate != 0 }

func (s UpdateStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusUpdated:
		return "updated"
	case StatusTerminate:
		return "terminate"
	case StatusUpdated | StatusTerminate:
		return "updated|terminate"
	}
	return fmt.Sprintf("UpdateStatus(%d)", uint8(s))
}

// UpdatePredicate decides whether an entity is updated on a given tick.
type UpdatePredicate uint8

const (
	UpdateAlways     UpdatePredicate = iota // updated every tick
	UpdateInViewport                        // updated only while its bounds overlap the viewport
)

var updatePredicateNames = [...]string{
	UpdateAlways:     "always",
	UpdateInViewport: "in-viewport",
}

func (p UpdatePredicate) String() string {
	if int(p) < len(updatePredicateNames) {
		return updatePredicateNames[p]
	}
	return fmt.Sprintf("UpdatePredicate(%d)", uint8(p))
}

// ParseUpdatePredicate returns the predicate named s.
func ParseUpdatePredicate(s string) (UpdatePredicate, error) {
	for i, name := range updatePredicateNames {
		if name == s {
			return UpdatePredicate(i), nil
		}
	}
	return 0, fmt.Errorf("nature: unknown update predicate %q", s)
}

// MarshalYAML encodes the predicate by name.
func (p UpdatePredicate) MarshalYAML() (any, error) { return p.String(), nil }

// UnmarshalYAML decodes a predicate name.
func (p *UpdatePredicate) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseUpdatePredicate(value.Value)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// State names one visual state of an entity, such as "idle" or "walk-left".
type State string

// Layer orders images when drawing; higher layers draw above lower ones.
type Layer int
