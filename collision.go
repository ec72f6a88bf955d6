package nature

import (
	"fmt"
	"math/bits"
	"strings"

	"gopkg.in/yaml.v3"
)

// CollisionPredicate selects which facet of an initiating entity takes part
// in a collision test. It is a single-valued discriminant; never OR values.
type CollisionPredicate uint8

const (
	CollideNever    CollisionPredicate = iota // never collides
	CollideBounds                             // the entity's bounds
	CollideImages                             // each image of the current state
	CollideBodies                             // each explicit collision body
	CollideChildren                           // recurse into children
)

var collisionPredicateNames = [...]string{
	CollideNever:    "never",
	CollideBounds:   "bounds",
	CollideImages:   "images",
	CollideBodies:   "bodies",
	CollideChildren: "children",
}

func (p CollisionPredicate) String() string {
	if int(p) < len(collisionPredicateNames) {
		return collisionPredicateNames[p]
	}
	return fmt.Sprintf("CollisionPredicate(%d)", uint8(p))
}

// ParseCollisionPredicate returns the predicate named s.
func ParseCollisionPredicate(s string) (CollisionPredicate, error) {
	for i, name := range collisionPredicateNames {
		if name == s {
			return CollisionPredicate(i), nil
		}
	}
	return 0, fmt.Errorf("nature: unknown collision predicate %q", s)
}

// MarshalYAML encodes the predicate by name.
func (p CollisionPredicate) MarshalYAML() (any, error) { return p.String(), nil }

// UnmarshalYAML decodes a predicate name.
func (p *CollisionPredicate) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseCollisionPredicate(value.Value)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// CollisionType is a set of semantic tags. The collider never reads it;
// behavior hooks do, to decide how to react to a hit.
// Values combine with bitwise OR (e.g. CollisionObstacle | CollisionHarmful).
type CollisionType uint16

const (
	CollisionInert        CollisionType = 0
	CollisionBody         CollisionType = 1 << (iota - 1) // a creature or object with a body
	CollisionObstacle                                     // blocks movement semantically
	CollisionDeceleration                                 // slows whatever crosses it
	CollisionHarmful                                      // hurts on contact
	CollisionScenery                                      // decorative
	CollisionPlayer                                       // the player character
	CollisionCursor                                       // the pointer
	CollisionUI                                           // interface element
	CollisionPickup                                       // collectable
)

var collisionTypeNames = [...]string{
	"body", "obstacle", "deceleration", "harmful", "scenery",
	"player", "cursor", "ui", "pickup",
}

// Has reports whether every flag in f is set.
func (t CollisionType) Has(f CollisionType) bool { return t&f == f && f != 0 }

// Any reports whether at least one flag in f is set.
func (t CollisionType) Any(f CollisionType) bool { return t&f != 0 }

// With returns t with f set.
func (t CollisionType) With(f CollisionType) CollisionType { return t | f }

// Without returns t with f cleared.
func (t CollisionType) Without(f CollisionType) CollisionType { return t &^ f }

// Obstacle reports whether the obstacle flag is set.
func (t CollisionType) Obstacle() bool { return t.Has(CollisionObstacle) }

// Harmful reports whether the harmful flag is set.
func (t CollisionType) Harmful() bool { return t.Has(CollisionHarmful) }

// Scenery reports whether the scenery flag is set.
func (t CollisionType) Scenery() bool { return t.Has(CollisionScenery) }

// UI reports whether the UI flag is set.
func (t CollisionType) UI() bool { return t.Has(CollisionUI) }

// Names returns the names of the set flags in bit order.
func (t CollisionType) Names() []string {
	var names []string
	for v := uint16(t); v != 0; v &= v - 1 {
		i := bits.TrailingZeros16(v)
		if i < len(collisionTypeNames) {
			names = append(names, collisionTypeNames[i])
		}
	}
	return names
}

func (t CollisionType) String() string {
	if t == CollisionInert {
		return "inert"
	}
	return strings.Join(t.Names(), "|")
}

// ParseCollisionType parses a single flag name. "inert" is the empty set.
func ParseCollisionType(name string) (CollisionType, error) {
	if name == "inert" {
		return CollisionInert, nil
	}
	for i, n := range collisionTypeNames {
		if n == name {
			return CollisionType(1 << i), nil
		}
	}
	return 0, fmt.Errorf("nature: unknown collision type %q", name)
}

// MarshalYAML encodes the set as a list of flag names.
func (t CollisionType) MarshalYAML() (any, error) {
	names := t.Names()
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// UnmarshalYAML accepts a list of flag names or a single name.
func (t *CollisionType) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	switch value.Kind {
	case yaml.ScalarNode:
		names = []string{value.Value}
	case yaml.SequenceNode:
		if err := value.Decode(&names); err != nil {
			return err
		}
	default:
		return fmt.Errorf("nature: collision type must be a name or a list of names")
	}
	var set CollisionType
	for _, name := range names {
		f, err := ParseCollisionType(name)
		if err != nil {
			return err
		}
		set |= f
	}
	*t = set
	return nil
}
