package nature

import (
	"fmt"
	"time"
)

// worldKind is the kind of the root entity.
const worldKind Kind = "world"

// World is the top-level object that owns the entity tree, the camera, the
// kind registry and the event sink, and drives the update pass.
type World struct {
	root     *Entity
	Camera   *Camera
	Registry *Registry

	name string
	sink EventSink

	candidates []*Entity
	ticks      int
}

// NewWorld creates an empty world whose camera shows a viewport of size.
func NewWorld(registry *Registry, viewport WH) *World {
	return &World{
		root:     NewEntity(worldKind, nil),
		Camera:   NewCamera(viewport),
		Registry: registry,
	}
}

// Root returns the root entity. Level entities are its children.
func (w *World) Root() *Entity { return w.root }

// Atlas returns the registry's atlas.
func (w *World) Atlas() *Atlas { return w.Registry.Atlas() }

// Name returns the loaded level name.
func (w *World) Name() string { return w.name }

// Ticks returns the number of completed update passes.
func (w *World) Ticks() int { return w.ticks }

// SetEventSink sets the optional event sink, such as an ECS bridge.
func (w *World) SetEventSink(sink EventSink) { w.sink = sink }

// Add appends a top-level entity.
func (w *World) Add(e *Entity) { w.root.AddChild(e) }

// Remove detaches a top-level entity, destroying it.
func (w *World) Remove(e *Entity) {
	if w.Camera.follow == e {
		w.Camera.Unfollow()
	}
	w.root.RemoveChild(e)
}

// Spawn builds an entity from cfg and adds it at the top level.
func (w *World) Spawn(cfg Config) (*Entity, error) {
	e, err := w.Registry.Spawn(cfg)
	if err != nil {
		return nil, err
	}
	w.Add(e)
	return e, nil
}

// Find returns the first entity whose ID is id.
func (w *World) Find(id string) *Entity {
	if id == "" {
		return nil
	}
	return w.root.Find(id)
}

// Update runs one tick of ms milliseconds: the update pass over the tree
// followed by the camera. The candidate set is computed once per tick from
// the active top-level entities.
func (w *World) Update(ms int, input InputSnapshot) UpdateStatus {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	viewport := w.Camera.Viewport
	w.candidates = w.candidates[:0]
	for _, c := range w.root.children {
		if c.predicate != CollideNever && c.Active(viewport) {
			w.candidates = append(w.candidates, c)
		}
	}

	state := TickState{
		Time:        ms,
		Viewport:    viewport,
		Collidables: w.candidates,
		Atlas:       w.Registry.Atlas(),
		Input:       input,
		sink:        w.sink,
	}
	status := w.root.Update(&state)
	status |= w.Camera.update(ms)
	w.ticks++

	if globalDebug {
		debugCheckBounds(w.root)
		debugLogTick(tickStats{
			tick:       w.ticks,
			updateTime: time.Since(t0),
			entities:   countEntities(w.root),
			candidates: len(w.candidates),
			status:     status,
		})
	}
	return status
}

// Render fills buf with the commands of every image overlapping the
// viewport, sorted by layer and then tree order.
func (w *World) Render(buf *RenderBuffer) {
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}
	buf.Reset()
	buf.collect(w.root, w.Camera.Viewport, w.Registry.Atlas())
	buf.sort()
	if globalDebug {
		debugLogRender(buf.Len(), time.Since(t0))
	}
}

// Load replaces the world contents with level. Every entity is spawned
// before anything is replaced, so a failing level leaves the world as it
// was.
func (w *World) Load(level LevelConfig) error {
	entities := make([]*Entity, 0, len(level.Entities))
	for i, cfg := range level.Entities {
		e, err := w.Registry.Spawn(cfg)
		if err != nil {
			return fmt.Errorf("nature: load level %q: entity %d: %w", level.Name, i, err)
		}
		entities = append(entities, e)
	}

	var target *Entity
	if level.Follow != "" {
		for _, e := range entities {
			if target = e.Find(level.Follow); target != nil {
				break
			}
		}
		if target == nil {
			return fmt.Errorf("nature: load level %q: follow %q: no such entity", level.Name, level.Follow)
		}
	}

	w.Camera.Unfollow()
	w.root.RemoveChildren()
	w.root.AddChildren(entities...)
	w.name = level.Name

	if level.Size != (WH{}) {
		w.Camera.SetBounds(Rect{W: level.Size.W, H: level.Size.H})
	} else {
		w.Camera.ClearBounds()
	}
	if target != nil {
		w.Camera.Follow(target, XY{})
		w.Camera.update(0)
	}
	return nil
}

// Snapshot returns the level holding the diff of every top-level entity.
//
// Only top-level entities are persisted. Children are respawned from their
// kind's Definition.Children on load, so children added at runtime, removed,
// or moved relative to their parent are lost across a Snapshot and Load.
func (w *World) Snapshot() LevelConfig {
	level := LevelConfig{
		Name:     w.name,
		Entities: make([]Config, 0, len(w.root.children)),
	}
	if w.Camera.BoundsEnabled {
		level.Size = w.Camera.Bounds.Size()
	}
	if f := w.Camera.follow; f != nil {
		level.Follow = f.ID
	}
	for _, c := range w.root.children {
		level.Entities = append(level.Entities, w.Registry.Diff(c))
	}
	return level
}
