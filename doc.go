// Package nature is the simulation core of a small 2D pixel-art game: a tree
// of entities updated once per tick, moved in integer pixels with sub-pixel
// velocity, and drawn as layered billboards cut from an Aseprite atlas.
//
// # Quick start
//
// Load the atlas and the kind definitions into a [Registry], create a
// [World] and load a level into it:
//
//	atlas, _ := nature.LoadAtlas(atlasJSON)
//	reg := nature.NewRegistry(atlas)
//	_ = reg.LoadDefinitions(definitionsYAML)
//	world := nature.NewWorld(reg, nature.WH{W: 320, H: 180})
//	level, _ := nature.LoadLevel(levelYAML)
//	_ = world.Load(level)
//
// Then drive it with a fixed tick and render it:
//
//	world.Update(16, input)
//	world.Render(&buf)
//
// The display package runs this loop in an Ebitengine window.
//
// # Entities
//
// Every simulated object is an [Entity]. One concrete type serves every
// kind; what makes a tree a tree is its [Definition]: defaults, visual
// states, collision bodies, hook names and default children. An entity's
// bounds are always the union of its current images, its bodies and its
// children, and every mutator keeps them that way.
//
// # Update pass
//
// [Entity.Update] runs the entity's hooks, animates its current images,
// integrates its velocity and then updates its children. Statuses combine
// with OR; a [StatusTerminate] from any hook stops the rest of the pass.
//
// Velocities are in decamillipixels (1/10,000 px) per millisecond. Moves are
// resolved against the tick's candidate set: a blocked diagonal move tries X
// alone, then Y alone, and otherwise reverts.
//
// # Persistence
//
// [Registry.Diff] reduces an entity to a [Config] holding only what differs
// from its kind defaults; [Registry.Spawn] reverses it. [World.Snapshot]
// and [World.Load] do the same for whole levels, and the save package stores
// them per slot.
package nature
