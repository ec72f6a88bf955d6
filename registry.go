package nature

import (
	"fmt"
	"sort"
)

// maxSpawnDepth bounds nested definition children so a kind listing itself
// as a child fails instead of recursing forever.
const maxSpawnDepth = 32

// HookFactory builds a hook for a freshly spawned entity.
type HookFactory func(e *Entity) (Hook, error)

// ImageSpec describes one image of a state.
type ImageSpec struct {
	Animation string `yaml:"animation"`
	Layer     Layer  `yaml:"layer,omitempty"`
	// Offset is the unscaled distance from the entity origin.
	Offset XY `yaml:"offset,omitempty"`
	// Size overrides the animation size. Required when the registry has no
	// atlas.
	Size WH `yaml:"size,omitempty"`
	// Scale of zero means unit scale.
	Scale        XY `yaml:"scale,omitempty"`
	WrapVelocity XY `yaml:"wrapVelocity,omitempty"`
}

// Definition is everything that makes a kind: its defaults, its visual
// states, its collision bodies, its hooks and its default children.
type Definition struct {
	Kind     Kind                  `yaml:"kind"`
	Defaults Defaults              `yaml:"defaults,omitempty"`
	States   map[State][]ImageSpec `yaml:"states,omitempty"`
	// Bodies are relative to the entity origin.
	Bodies   []Rect   `yaml:"bodies,omitempty"`
	Hooks    []string `yaml:"hooks,omitempty"`
	Children []Config `yaml:"children,omitempty"`

	// Factory runs last during Spawn for kinds that need Go-side setup.
	Factory func(e *Entity) error `yaml:"-"`
}

// Registry maps kinds to definitions and hook names to factories. It is
// configured at startup and read-only during ticks.
type Registry struct {
	atlas *Atlas
	defs  map[Kind]*Definition
	hooks map[string]HookFactory
}

// NewRegistry returns a registry resolving animations against atlas, with
// the built-in hooks registered.
func NewRegistry(atlas *Atlas) *Registry {
	r := &Registry{
		atlas: atlas,
		defs:  make(map[Kind]*Definition),
		hooks: make(map[string]HookFactory),
	}
	registerBuiltinHooks(r)
	return r
}

// Atlas returns the atlas animations are resolved against.
func (r *Registry) Atlas() *Atlas { return r.atlas }

// Register adds def. A kind may only be registered once.
func (r *Registry) Register(def Definition) error {
	if _, ok := r.defs[def.Kind]; ok && def.Kind != "" {
		return fmt.Errorf("nature: register %q: %w", def.Kind, ErrDuplicateKind)
	}
	if err := validateDefinition(&def); err != nil {
		return err
	}
	r.defs[def.Kind] = &def
	return nil
}

// Replace registers def, overwriting any definition of the same kind. Used
// to hot-reload definition files. An invalid def leaves the registered one
// in place.
func (r *Registry) Replace(def Definition) error {
	if err := validateDefinition(&def); err != nil {
		return err
	}
	r.defs[def.Kind] = &def
	return nil
}

// validateDefinition checks everything about def that does not depend on
// the atlas or the registered hooks.
func validateDefinition(def *Definition) error {
	if def.Kind == "" {
		return fmt.Errorf("nature: register: empty kind: %w", ErrUnknownKind)
	}
	if err := checkScale(def.Defaults.scale()); err != nil {
		return fmt.Errorf("nature: register %q: %w", def.Kind, err)
	}
	for i, b := range def.Bodies {
		if err := checkSize(b.Size()); err != nil {
			return fmt.Errorf("nature: register %q: body %d: %w", def.Kind, i, err)
		}
	}
	for state, specs := range def.States {
		for i, spec := range specs {
			if err := checkSize(spec.Size); err != nil {
				return fmt.Errorf("nature: register %q: state %q image %d: %w", def.Kind, state, i, err)
			}
			if !spec.Scale.IsZero() {
				if err := checkScale(spec.Scale); err != nil {
					return fmt.Errorf("nature: register %q: state %q image %d: %w", def.Kind, state, i, err)
				}
			}
		}
	}
	return nil
}

// Definition returns the definition of kind.
func (r *Registry) Definition(kind Kind) (*Definition, bool) {
	def, ok := r.defs[kind]
	return def, ok
}

// Kinds returns the registered kinds in lexical order.
func (r *Registry) Kinds() []Kind {
	kinds := make([]Kind, 0, len(r.defs))
	for k := range r.defs {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// RegisterHook makes a hook available to definitions under name, replacing
// any factory already registered under it.
func (r *Registry) RegisterHook(name string, factory HookFactory) {
	if factory == nil {
		panic("nature: cannot register nil hook factory")
	}
	r.hooks[name] = factory
}

// LoadDefinitions decodes a YAML list of definitions and registers them. On
// error nothing is registered.
func (r *Registry) LoadDefinitions(yamlData []byte) error {
	defs, err := decodeDefinitions(yamlData)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if _, ok := r.defs[def.Kind]; ok {
			return fmt.Errorf("nature: load definitions %q: %w", def.Kind, ErrDuplicateKind)
		}
	}
	for i := range defs {
		r.defs[defs[i].Kind] = &defs[i]
	}
	return nil
}

// ReloadDefinitions decodes a YAML list of definitions and replaces the
// registered ones of the same kinds. On error nothing is replaced.
func (r *Registry) ReloadDefinitions(yamlData []byte) error {
	defs, err := decodeDefinitions(yamlData)
	if err != nil {
		return err
	}
	for i := range defs {
		r.defs[defs[i].Kind] = &defs[i]
	}
	return nil
}

// decodeDefinitions decodes and validates a definition list. Unknown keys,
// non-integer coordinates and kinds repeated within the list are errors.
func decodeDefinitions(yamlData []byte) ([]Definition, error) {
	var defs []Definition
	if err := decodeStrict(yamlData, &defs); err != nil {
		return nil, fmt.Errorf("nature: parse definitions: %w", err)
	}
	seen := make(map[Kind]bool, len(defs))
	for i := range defs {
		if seen[defs[i].Kind] {
			return nil, fmt.Errorf("nature: parse definitions %q: %w", defs[i].Kind, ErrDuplicateKind)
		}
		seen[defs[i].Kind] = true
		if err := validateDefinition(&defs[i]); err != nil {
			return nil, err
		}
	}
	return defs, nil
}

// Spawn builds an entity from cfg merged over its kind defaults. Unknown
// kinds, states, hooks and animations and invalid scales are errors, and no
// partially built entity is returned.
func (r *Registry) Spawn(cfg Config) (*Entity, error) {
	return r.spawn(cfg, 0)
}

func (r *Registry) spawn(cfg Config, depth int) (*Entity, error) {
	if depth > maxSpawnDepth {
		return nil, fmt.Errorf("nature: spawn %q: children nested deeper than %d", cfg.Type, maxSpawnDepth)
	}
	def, ok := r.defs[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("nature: spawn %q: %w", cfg.Type, ErrUnknownKind)
	}
	v := def.Defaults.merge(cfg)
	if err := checkScale(v.scale); err != nil {
		return nil, fmt.Errorf("nature: spawn %q: %w", cfg.Type, err)
	}

	images, err := r.buildImages(def, v.state)
	if err != nil {
		return nil, fmt.Errorf("nature: spawn %q: %w", cfg.Type, err)
	}

	e := NewEntity(def.Kind, images)
	e.ID = v.id
	e.Variant = v.variant
	e.velocity = v.velocity
	e.predicate = v.collisionPredicate
	e.collisionType = v.collisionType
	e.updatePredicate = v.updatePredicate
	e.images.SetImageID(v.imageID)
	e.images.ScaleTo(v.scale)
	e.bodies = append(e.bodies[:0:0], def.Bodies...)
	e.computeBounds()

	for _, name := range def.Hooks {
		factory, ok := r.hooks[name]
		if !ok {
			return nil, fmt.Errorf("nature: spawn %q: hook %q: %w", cfg.Type, name, ErrUnknownHook)
		}
		hook, err := factory(e)
		if err != nil {
			return nil, fmt.Errorf("nature: spawn %q: hook %q: %w", cfg.Type, name, err)
		}
		e.AddHook(hook)
	}

	for _, childCfg := range def.Children {
		child, err := r.spawn(childCfg, depth+1)
		if err != nil {
			return nil, fmt.Errorf("nature: spawn %q: %w", cfg.Type, err)
		}
		e.AddChild(child)
	}

	if def.Factory != nil {
		if err := def.Factory(e); err != nil {
			return nil, fmt.Errorf("nature: spawn %q: %w", cfg.Type, err)
		}
	}

	e.MoveTo(v.position)
	return e, nil
}

// buildImages builds the state machine of def starting in initial.
func (r *Registry) buildImages(def *Definition, initial State) (*ImageStateMachine, error) {
	if len(def.States) == 0 {
		if initial != "" {
			return nil, fmt.Errorf("state %q: %w", initial, ErrUnknownState)
		}
		return NewImageStateMachine(initial, nil), nil
	}
	if _, ok := def.States[initial]; !ok {
		return nil, fmt.Errorf("state %q: %w", initial, ErrUnknownState)
	}
	rects := make(map[State]*ImageRect, len(def.States))
	for state, specs := range def.States {
		rect := NewImageRect()
		for _, spec := range specs {
			img, err := r.buildImage(spec)
			if err != nil {
				return nil, fmt.Errorf("state %q: %w", state, err)
			}
			rect.Add(img)
		}
		rects[state] = rect
	}
	return NewImageStateMachine(initial, rects), nil
}

func (r *Registry) buildImage(spec ImageSpec) (Image, error) {
	size := spec.Size
	if r.atlas != nil {
		anim, ok := r.atlas.Animation(spec.Animation)
		if !ok {
			return Image{}, fmt.Errorf("animation %q: %w", spec.Animation, ErrUnknownAnimation)
		}
		if size == (WH{}) {
			size = anim.Size
		}
	}
	img := NewImage(spec.Animation, size)
	img.Layer = spec.Layer
	img.Offset = spec.Offset
	img.WrapVelocity = spec.WrapVelocity
	if !spec.Scale.IsZero() {
		if err := checkScale(spec.Scale); err != nil {
			return Image{}, err
		}
		img.Scale = spec.Scale
	}
	return img, nil
}

// Diff returns the Config of e holding only the fields that differ from its
// kind defaults. An entity at its defaults diffs to Config{Type: kind}.
// Children are not diffed; they come from the kind definition.
func (r *Registry) Diff(e *Entity) Config {
	var d Defaults
	if def, ok := r.defs[e.kind]; ok {
		d = def.Defaults
	}
	return Config{
		Type:               e.kind,
		ID:                 e.ID,
		Variant:            diffField(e.Variant, d.Variant),
		Position:           diffField(e.Position(), d.Position),
		Velocity:           diffField(e.velocity, d.Velocity),
		ImageID:            diffField(e.ImageID(), d.ImageID),
		Scale:              diffField(e.Scale(), d.scale()),
		State:              diffField(e.State(), d.State),
		UpdatePredicate:    diffField(e.updatePredicate, d.UpdatePredicate),
		CollisionType:      diffField(e.collisionType, d.CollisionType),
		CollisionPredicate: diffField(e.predicate, d.CollisionPredicate),
	}
}
