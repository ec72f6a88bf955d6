package nature

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Construction errors. Spawn, LoadDefinitions and World.Load wrap these with
// the offending name.
var (
	ErrUnknownKind      = errors.New("unknown kind")
	ErrUnknownState     = errors.New("unknown image state")
	ErrUnknownHook      = errors.New("unknown hook")
	ErrUnknownAnimation = errors.New("unknown animation")
	ErrDuplicateKind    = errors.New("duplicate kind")
	ErrNotInteger       = errors.New("not an integer")
	ErrInvalidRect      = errors.New("negative rectangle size")
)

// decodeStrict decodes YAML into out, rejecting keys out does not declare.
// An empty document leaves out unchanged.
func decodeStrict(yamlData []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(yamlData))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// checkSize rejects negative widths and heights.
func checkSize(s WH) error {
	if s.W < 0 || s.H < 0 {
		return fmt.Errorf("nature: size %dx%d: %w", s.W, s.H, ErrInvalidRect)
	}
	return nil
}

// Config is the persisted form of an entity: its kind plus only the fields
// that differ from the kind defaults. A nil field means "use the default".
type Config struct {
	Type Kind `yaml:"type" msgpack:"type"`

	ID      string  `yaml:"id,omitempty" msgpack:"id,omitempty"`
	Variant *string `yaml:"variant,omitempty" msgpack:"variant,omitempty"`

	Position *XY `yaml:"position,omitempty" msgpack:"position,omitempty"`
	// Velocity is in decamillipixels per millisecond.
	Velocity *XY     `yaml:"velocity,omitempty" msgpack:"velocity,omitempty"`
	ImageID  *string `yaml:"imageID,omitempty" msgpack:"imageID,omitempty"`
	Scale    *XY     `yaml:"scale,omitempty" msgpack:"scale,omitempty"`
	State    *State  `yaml:"state,omitempty" msgpack:"state,omitempty"`

	UpdatePredicate    *UpdatePredicate    `yaml:"updatePredicate,omitempty" msgpack:"updatePredicate,omitempty"`
	CollisionType      *CollisionType      `yaml:"collisionType,omitempty" msgpack:"collisionType,omitempty"`
	CollisionPredicate *CollisionPredicate `yaml:"collisionPredicate,omitempty" msgpack:"collisionPredicate,omitempty"`
}

// Defaults are the per-kind values a Config is diffed against.
type Defaults struct {
	Variant  string `yaml:"variant,omitempty"`
	ImageID  string `yaml:"imageID,omitempty"`
	Position XY     `yaml:"position,omitempty"`
	Velocity XY     `yaml:"velocity,omitempty"`
	// Scale of zero means unit scale.
	Scale XY    `yaml:"scale,omitempty"`
	State State `yaml:"state,omitempty"`

	UpdatePredicate    UpdatePredicate    `yaml:"updatePredicate,omitempty"`
	CollisionType      CollisionType      `yaml:"collisionType,omitempty"`
	CollisionPredicate CollisionPredicate `yaml:"collisionPredicate,omitempty"`
}

func (d Defaults) scale() XY {
	if d.Scale.IsZero() {
		return XY{1, 1}
	}
	return d.Scale
}

// resolved is a Config merged over Defaults.
type resolved struct {
	id, variant, imageID string
	position, velocity   XY
	scale                XY
	state                State
	updatePredicate      UpdatePredicate
	collisionType        CollisionType
	collisionPredicate   CollisionPredicate
}

func (d Defaults) merge(cfg Config) resolved {
	r := resolved{
		id:                 cfg.ID,
		variant:            d.Variant,
		imageID:            d.ImageID,
		position:           d.Position,
		velocity:           d.Velocity,
		scale:              d.scale(),
		state:              d.State,
		updatePredicate:    d.UpdatePredicate,
		collisionType:      d.CollisionType,
		collisionPredicate: d.CollisionPredicate,
	}
	if cfg.Variant != nil {
		r.variant = *cfg.Variant
	}
	if cfg.ImageID != nil {
		r.imageID = *cfg.ImageID
	}
	if cfg.Position != nil {
		r.position = *cfg.Position
	}
	if cfg.Velocity != nil {
		r.velocity = *cfg.Velocity
	}
	if cfg.Scale != nil {
		r.scale = *cfg.Scale
	}
	if cfg.State != nil {
		r.state = *cfg.State
	}
	if cfg.UpdatePredicate != nil {
		r.updatePredicate = *cfg.UpdatePredicate
	}
	if cfg.CollisionType != nil {
		r.collisionType = *cfg.CollisionType
	}
	if cfg.CollisionPredicate != nil {
		r.collisionPredicate = *cfg.CollisionPredicate
	}
	return r
}

// diffField returns a pointer to v when it differs from def, or nil.
func diffField[T comparable](v, def T) *T {
	if v == def {
		return nil
	}
	return &v
}
