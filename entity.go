package nature

// --- Spawn identity ---

// Handle is an entity's spawn identity: unique for the life of the process
// and never reused. Handles are compared for reference equality and are
// never persisted.
type Handle uint32

// handleCounter is a plain counter; entities are only created on the simulation goroutine.
var handleCounter uint32

func nextHandle() Handle {
	handleCounter++
	return Handle(handleCounter)
}

// Kind names a registered entity kind, such as "player" or "tree".
type Kind string

// --- Entity ---

// Entity is the tree node of the simulation. One concrete type serves every
// kind; kind-specific defaults, visuals and behavior come from the Registry.
//
// Bounds is always the union of the current image rect, every collision body
// and every child's bounds. Every mutator below maintains that invariant and
// propagates the change to ancestors.
type Entity struct {
	handle Handle
	kind   Kind

	// ID is an optional level-unique identifier; Variant selects a
	// kind-specific flavor. Both are persisted when they differ from the
	// kind defaults.
	ID      string
	Variant string

	parent   *Entity
	children []*Entity

	bounds Rect

	// velocity is in decamillipixels (1/10,000 px) per millisecond and
	// fraction is the running sub-pixel remainder on each axis.
	velocity XY
	fraction XY

	images *ImageStateMachine

	predicate       CollisionPredicate
	collisionType   CollisionType
	bodies          []Rect
	updatePredicate UpdatePredicate

	hooks []Hook
}

// NewEntity creates an entity of kind at the origin. A nil images gets an
// empty single-state machine. The entity never collides and is always
// updated until configured otherwise.
func NewEntity(kind Kind, images *ImageStateMachine) *Entity {
	if images == nil {
		images = NewImageStateMachine("", nil)
	}
	e := &Entity{
		handle: nextHandle(),
		kind:   kind,
		images: images,
	}
	e.computeBounds()
	return e
}

// Handle returns the spawn identity.
func (e *Entity) Handle() Handle { return e.handle }

// Kind returns the registered kind.
func (e *Entity) Kind() Kind { return e.kind }

// Bounds returns the world-space union of the entity's geometry.
func (e *Entity) Bounds() Rect { return e.bounds }

// Position returns the top-left corner of the bounds.
func (e *Entity) Position() XY { return e.bounds.Position() }

// Images returns the image state machine.
func (e *Entity) Images() *ImageStateMachine { return e.images }

// State returns the current visual state.
func (e *Entity) State() State { return e.images.State() }

// Velocity returns the velocity in decamillipixels per millisecond.
func (e *Entity) Velocity() XY { return e.velocity }

// SetVelocity sets the velocity in decamillipixels per millisecond.
func (e *Entity) SetVelocity(v XY) { e.velocity = v }

// Fraction returns the sub-pixel accumulator in decamillipixels.
func (e *Entity) Fraction() XY { return e.fraction }

// CollisionPredicate returns which facet of e is tested when e initiates a
// collision test.
func (e *Entity) CollisionPredicate() CollisionPredicate { return e.predicate }

// SetCollisionPredicate sets the collision predicate.
func (e *Entity) SetCollisionPredicate(p CollisionPredicate) { e.predicate = p }

// CollisionType returns the semantic collision flags.
func (e *Entity) CollisionType() CollisionType { return e.collisionType }

// SetCollisionType sets the semantic collision flags.
func (e *Entity) SetCollisionType(t CollisionType) { e.collisionType = t }

// UpdatePredicate returns when e is updated.
func (e *Entity) UpdatePredicate() UpdatePredicate { return e.updatePredicate }

// SetUpdatePredicate sets when e is updated. Entities positioned relative to
// the viewport must use UpdateAlways.
func (e *Entity) SetUpdatePredicate(p UpdatePredicate) { e.updatePredicate = p }

// Bodies returns the collision bodies in world coordinates. The returned
// slice MUST NOT be mutated by the caller.
func (e *Entity) Bodies() []Rect { return e.bodies }

// SetBodies replaces the collision bodies with a copy of rects.
func (e *Entity) SetBodies(rects ...Rect) {
	e.bodies = append(e.bodies[:0:0], rects...)
	e.InvalidateBounds()
}

// AddHook appends a behavior hook; hooks run in the order added.
func (e *Entity) AddHook(h Hook) {
	if h == nil {
		panic("nature: cannot add nil hook")
	}
	e.hooks = append(e.hooks, h)
}

// --- Tree manipulation ---

// Parent returns the owning entity, or nil for a root.
func (e *Entity) Parent() *Entity { return e.parent }

// AddChild appends child to e's children.
// Panics if child is nil, already owned by a parent, or an ancestor of e.
func (e *Entity) AddChild(child *Entity) {
	if child == nil {
		panic("nature: cannot add nil child")
	}
	if child.parent != nil {
		panic("nature: child is already owned by another entity")
	}
	if isAncestor(child, e) {
		panic("nature: adding child would create a cycle")
	}
	child.parent = e
	e.children = append(e.children, child)
	e.InvalidateBounds()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
}

// AddChildren appends each child in order.
func (e *Entity) AddChildren(children ...*Entity) {
	for _, c := range children {
		e.AddChild(c)
	}
}

// RemoveChild detaches child from e. Removal is the only way an entity is
// destroyed; it holds no external resources.
// Panics if child is not owned by e.
func (e *Entity) RemoveChild(child *Entity) {
	if child == nil || child.parent != e {
		panic("nature: child's parent is not this entity")
	}
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			break
		}
	}
	child.parent = nil
	e.InvalidateBounds()
}

// RemoveChildren detaches all children.
func (e *Entity) RemoveChildren() {
	for i, child := range e.children {
		child.parent = nil
		e.children[i] = nil
	}
	e.children = e.children[:0]
	e.InvalidateBounds()
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Entity) Children() []*Entity { return e.children }

// NumChildren returns the number of children.
func (e *Entity) NumChildren() int { return len(e.children) }

// ChildAt returns the child at index.
func (e *Entity) ChildAt(index int) *Entity { return e.children[index] }

// Find returns the first entity in e's subtree (e included, depth first)
// whose ID is id.
func (e *Entity) Find(id string) *Entity {
	if e.ID == id {
		return e
	}
	for _, c := range e.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

// --- Movement ---

// MoveTo moves e so that its bounds start at p.
func (e *Entity) MoveTo(p XY) UpdateStatus {
	return e.MoveBy(p.Sub(e.bounds.Position()))
}

// MoveBy translates e, its images, bodies and whole subtree by d.
// A zero delta is a no-op.
func (e *Entity) MoveBy(d XY) UpdateStatus {
	if d.IsZero() {
		return StatusUnchanged
	}
	e.translate(d)
	e.invalidateAncestors()
	return StatusUpdated
}

// translate shifts every owned rectangle. The union moves by exactly d, so
// bounds are translated rather than recomputed.
func (e *Entity) translate(d XY) {
	e.images.MoveBy(d)
	for i := range e.bodies {
		e.bodies[i] = e.bodies[i].Translate(d)
	}
	for _, c := range e.children {
		c.translate(d)
	}
	e.bounds = e.bounds.Translate(d)
}

// Scale returns the current image scale.
func (e *Entity) Scale() XY { return e.images.Scale() }

// ScaleTo rescales the current images about their origin.
// Panics if s has a zero or negative component.
func (e *Entity) ScaleTo(s XY) UpdateStatus {
	status := e.images.ScaleTo(s)
	if status.Changed() {
		e.InvalidateBounds()
	}
	return status
}

// Transition switches the visual state. Panics if state is not registered.
func (e *Entity) Transition(state State) UpdateStatus {
	status := e.images.Transition(state)
	if status.Changed() {
		e.InvalidateBounds()
	}
	return status
}

// SetImageID propagates a recolor identifier to every state's images.
func (e *Entity) SetImageID(id string) UpdateStatus {
	return e.images.SetImageID(id)
}

// ImageID returns the current recolor identifier.
func (e *Entity) ImageID() string { return e.images.ImageID() }

// Elevate shifts the layer of every image in e's subtree by offset.
func (e *Entity) Elevate(offset Layer) UpdateStatus {
	status := e.images.Elevate(offset)
	for _, c := range e.children {
		status |= c.Elevate(offset)
	}
	return status
}

// --- Bounds ---

// InvalidateBounds recomputes e's bounds from its owned geometry and then
// every ancestor's.
func (e *Entity) InvalidateBounds() {
	e.computeBounds()
	e.invalidateAncestors()
}

func (e *Entity) invalidateAncestors() {
	for p := e.parent; p != nil; p = p.parent {
		prev := p.bounds
		p.computeBounds()
		if p.bounds == prev {
			return
		}
	}
}

// computeBounds sets bounds to the union of the current image rect, the
// bodies and the children's bounds.
func (e *Entity) computeBounds() {
	b := e.images.Bounds()
	for _, r := range e.bodies {
		b = b.Union(r)
	}
	for _, c := range e.children {
		b = b.Union(c.bounds)
	}
	e.bounds = b
}

// isAncestor reports whether candidate is e or an ancestor of e.
func isAncestor(candidate, e *Entity) bool {
	for p := e; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}
