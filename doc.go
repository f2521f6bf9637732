/*
Package silo provides a sparse-set Entity-Component-System runtime for
simulation-style applications: games, agent simulations, real-time scenes.

Entities are opaque identifiers. Components are user-defined data records
attached to entities and stored in per-type columns. Systems are user
functions, organized into staged, labeled sections, that read and mutate
entity state through declarative queries and a deferred-mutation Commands
handle.

Core Concepts:

  - Entity: a stable id representing a live object.
  - Component: a typed data record, stored in a ComponentColumn.
  - Query: a declarative required/optional/with/without component spec.
  - Commands: the imperative handle systems use to mutate the world; all
    structural changes are buffered in a ChangeQueue and flushed between
    systems so in-flight query pointers are never invalidated mid-system.
  - Stage / Label / Section: the ordering units of the scheduler.

Basic Usage:

	builder := silo.NewWorldBuilder(silo.Config{MaxEntities: 1024})
	position := silo.RegisterComponent[Position](builder, "position")
	velocity := silo.RegisterComponent[Velocity](builder, "velocity")

	builder.AddSystem(silo.StageUpdate, func(w *silo.World) error {
		spec := silo.NewQuery().Required(position, velocity)
		cursor := w.Query(spec)
		for cursor.Next() {
			pos := position.Get(cursor)
			vel := velocity.Get(cursor)
			pos.X += vel.X
			pos.Y += vel.Y
		}
		return nil
	})

	world, err := builder.Build()
	if err != nil {
		panic(err)
	}
	cmds := world.Commands()
	cmds.SpawnWith(silo.With(position, Position{}), silo.With(velocity, Velocity{X: 1}))
	world.Flush() // make the initial spawn visible before the first RunStage

	if err := world.RunStage(silo.StageUpdate); err != nil {
		panic(err)
	}
	world.CleanForNextFrame()

silo is a sparse-set design: each component type owns its own contiguous
column rather than entities being grouped into archetypes. This trades some
iteration locality for O(1) add/remove of individual components without
archetype migration, and for a simpler, more predictable pointer-stability
story across Commands operations.
*/
package silo
