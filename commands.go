package silo

import "github.com/sirupsen/logrus"

// Commands is the handle systems use to spawn/despawn entities and
// add/remove components. New components, component removals and despawns
// are queued and applied at flush. Entity allocation happens immediately (so
// the caller gets an id back), as does overwriting a component the entity
// already carries and, under an overwrite overflow policy, Spawn's stripping
// of the reclaimed entity's components.
type Commands struct {
	world *World
}

// componentValue pairs a ComponentType[T] token with a value of T, type
// erased so SpawnWith can accept a mixed list of them. Built with With.
type componentValue struct {
	id    ComponentID
	value any
	apply func(cmd *Commands, e EntityID, v any) error
}

// With packages a component value for SpawnWith.
func With[T any](ct ComponentType[T], v T) componentValue {
	return componentValue{
		id:    ct.componentID(),
		value: v,
		apply: func(cmd *Commands, e EntityID, v any) error {
			return giveErased(cmd, e, ct, v.(T))
		},
	}
}

// Spawn allocates a fresh entity with no components. Allocation is
// immediate: the returned id is valid to use (e.g. to give components to)
// before this frame's flush.
func (cmd *Commands) Spawn() (EntityID, error) {
	w := cmd.world
	id, reused, err := w.entities.allocate()
	if err != nil {
		if overflow, ok := err.(EntityOverflowError); ok && w.cfg.OnEntityOverflow == OverflowCrash {
			w.crash(CrashReason{Err: overflow, Context: "spawn"})
		}
		return 0, err
	}
	if reused {
		if err := w.stripReclaimedSlot(id); err != nil {
			return 0, err
		}
	}
	w.changes.logAddedEntity(id)
	return id, nil
}

// stripReclaimedSlot fires on_removed and reclaims storage for every
// component a slot reused under an overwrite overflow policy still carries,
// before the slot is handed back out as a fresh entity.
func (w *World) stripReclaimedSlot(e EntityID) error {
	cmd := w.Commands()
	for _, col := range w.columns {
		if col == nil || !col.has(e) {
			continue
		}
		if err := col.removeErased(e, w, cmd); err != nil {
			return err
		}
		w.entities.maskClear(e, uint32(col.id()))
	}
	return nil
}

// SpawnWith allocates a fresh entity and gives it every listed component,
// equivalent to Spawn followed by one Give per value but sharing a single
// allocation failure path.
func (cmd *Commands) SpawnWith(values ...componentValue) (EntityID, error) {
	e, err := cmd.Spawn()
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		if err := v.apply(cmd, e, v.value); err != nil {
			return e, err
		}
	}
	return e, nil
}

// Despawn queues e's removal. Its descendants are despawned recursively at
// flush before e itself is freed.
func (cmd *Commands) Despawn(e EntityID) error {
	w := cmd.world
	if !w.entities.isLive(e) {
		return EntityMissingError{Entity: e}
	}
	w.changeQueue.push(removeEntityOp{entity: e, generation: w.entities.generationOf(e)})
	return nil
}

// Give queues e's new value for component type T: on_added (if any) runs
// synchronously against the supplied value, then the write is committed. If
// e already carries this component, the value is overwritten in place right
// away, since the column's shape doesn't change. Otherwise the write is
// deferred to flush, both to avoid invalidating pointers a system still
// holds this frame if appending would resize the column, and so the new
// component stays invisible to this system's own queries until flush.
func Give[T any](cmd *Commands, e EntityID, ct ComponentType[T], v T) error {
	return giveErased(cmd, e, ct, v)
}

func giveErased[T any](cmd *Commands, e EntityID, ct ComponentType[T], v T) error {
	w := cmd.world
	if !w.entities.isLive(e) {
		return EntityMissingError{Entity: e}
	}
	col := columnOf[T](w, ct.componentID())

	if col.hooks.OnAdded != nil {
		if err := col.hooks.OnAdded(&v, e, cmd); err != nil {
			return err
		}
	}

	generation := w.entities.generationOf(e)
	if col.has(e) {
		col.assign(e, v)
		w.changeQueue.push(addComponentOp{
			entity:      e,
			generation:  generation,
			componentID: ct.componentID(),
			deferred:    false,
		})
		return nil
	}

	w.changeQueue.push(addComponentOp{
		entity:      e,
		generation:  generation,
		componentID: ct.componentID(),
		value:       v,
		deferred:    true,
	})
	return nil
}

// RemoveComponent queues removal of a single component from e. A no-op,
// logged at Warn, if e doesn't currently carry it.
func (cmd *Commands) RemoveComponent(e EntityID, c Component) error {
	w := cmd.world
	if !w.entities.isLive(e) {
		return EntityMissingError{Entity: e}
	}
	w.changeQueue.push(removeComponentOp{
		entity:      e,
		generation:  w.entities.generationOf(e),
		componentID: c.componentID(),
	})
	return nil
}

// HasComponent reports whether e currently carries c, reflecting the state
// as of the last flush (not any Give/RemoveComponent queued this frame but
// not yet applied).
func (cmd *Commands) HasComponent(e EntityID, c Component) bool {
	return cmd.world.entities.maskHas(e, uint32(c.componentID()))
}

// SetParent links child beneath parent immediately; hierarchy links are not
// deferred since they carry no pointer-stability hazard.
func (cmd *Commands) SetParent(child, parent EntityID) error {
	return cmd.world.entities.setParent(child, parent)
}

// ClearParent removes child's parent link, if any.
func (cmd *Commands) ClearParent(child EntityID) {
	cmd.world.entities.clearParent(child)
}

// Parent returns child's parent, if it has one.
func (cmd *Commands) Parent(child EntityID) (EntityID, bool) {
	return cmd.world.entities.parent(child)
}

// Children returns every live entity currently parented to id.
func (cmd *Commands) Children(id EntityID) []EntityID {
	return cmd.world.entities.children(id)
}

// OnDestroy registers a callback fired immediately before e's components are
// torn down during despawn.
func (cmd *Commands) OnDestroy(e EntityID, cb EntityDestroyCallback) error {
	w := cmd.world
	if !w.entities.isLive(e) {
		return EntityMissingError{Entity: e}
	}
	w.entities.destroyCB[e] = cb
	return nil
}

// logWarn logs msg at Warn with fields through the world's configured
// logger, without reaching into World directly.
func (cmd *Commands) logWarn(fields logrus.Fields, msg string) {
	cmd.world.logger.WithFields(fields).Warn(msg)
}
