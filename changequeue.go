package silo

import "github.com/sirupsen/logrus"

// ChangeOp is a single buffered structural mutation.
type ChangeOp interface {
	apply(w *World) error
}

// ChangeQueue is the per-frame FIFO of pending structural mutations:
// AddComponent, RemoveComponent, RemoveEntity. Commands appends to it; the
// scheduler drains it after every system body returns.
type ChangeQueue struct {
	ops []ChangeOp
}

func newChangeQueue() *ChangeQueue {
	return &ChangeQueue{}
}

func (q *ChangeQueue) push(op ChangeOp) {
	q.ops = append(q.ops, op)
}

// flush drains the queue in FIFO order. Errors are logged via w.logger, not
// propagated: Commands failures are reported at flush time through logging,
// except for immediate allocation failures.
func (q *ChangeQueue) flush(w *World) {
	ops := q.ops
	q.ops = nil
	for _, op := range ops {
		if err := op.apply(w); err != nil {
			w.logger.WithFields(logrus.Fields{"error": err}).Warn("change queue operation failed during flush")
		}
	}
}

// addComponentOp enqueues either a deferred write (the entity did not yet
// carry the component, so the value is stashed here until flush appends it)
// or a mask-only commit (the entity already carried the component and Give
// overwrote it in place synchronously).
type addComponentOp struct {
	entity      EntityID
	generation  uint32
	componentID ComponentID
	value       any
	deferred    bool
}

func (op addComponentOp) apply(w *World) error {
	if w.entities.generationOf(op.entity) != op.generation {
		return nil
	}
	col := w.columnByID(op.componentID)
	if op.deferred {
		if err := col.assignErased(op.entity, op.value); err != nil {
			return err
		}
	}
	w.entities.maskSet(op.entity, uint32(op.componentID))
	w.changes.logAddedComponent(op.entity, op.componentID)
	return nil
}

// removeComponentOp removes a single component from an entity at flush,
// invoking on_removed first.
type removeComponentOp struct {
	entity      EntityID
	generation  uint32
	componentID ComponentID
}

func (op removeComponentOp) apply(w *World) error {
	if w.entities.generationOf(op.entity) != op.generation {
		return nil
	}
	if !w.entities.maskHas(op.entity, uint32(op.componentID)) {
		w.logger.WithFields(logrus.Fields{
			"entity":    op.entity,
			"component": op.componentID,
		}).Warn("remove_component: entity does not have this component")
		return nil
	}
	col := w.columnByID(op.componentID)
	cmd := w.Commands()
	if err := col.removeErased(op.entity, w, cmd); err != nil {
		return err
	}
	w.entities.maskClear(op.entity, uint32(op.componentID))
	w.changes.logRemovedComponent(op.entity, op.componentID)
	return nil
}

// removeEntityOp despawns an entity at flush: its descendants are destroyed
// recursively first, then every component it still owns is torn down
// (on_removed fired for each), then the slot itself is freed.
type removeEntityOp struct {
	entity     EntityID
	generation uint32
}

func (op removeEntityOp) apply(w *World) error {
	if w.entities.generationOf(op.entity) != op.generation {
		return nil
	}
	return w.despawnNow(op.entity)
}

// despawnNow performs the recursive despawn synchronously. Overflow
// reclamation (overwrite_last/overwrite_first) does not use it; Spawn strips
// a reused slot's components through stripReclaimedSlot instead.
func (w *World) despawnNow(e EntityID) error {
	if !w.entities.isLive(e) {
		return nil
	}
	for _, child := range w.entities.children(e) {
		if err := w.despawnNow(child); err != nil {
			return err
		}
	}
	if cb := w.entities.destroyCB[e]; cb != nil {
		cb(e)
	}
	cmd := w.Commands()
	for _, col := range w.columns {
		if col == nil || !col.has(e) {
			continue
		}
		if err := col.removeErased(e, w, cmd); err != nil {
			return err
		}
		w.entities.maskClear(e, uint32(col.id()))
		w.changes.logRemovedComponent(e, col.id())
	}
	w.entities.free(e)
	w.changes.logRemovedEntity(e)
	return nil
}

// ChangesList is the per-frame, append-only observability log of added and
// removed entities and components. It is cleared by CleanForNextFrame,
// never by a stage boundary.
type ChangesList struct {
	AddedEntities     []EntityID
	RemovedEntities   []EntityID
	AddedComponents   []ComponentChange
	RemovedComponents []ComponentChange
}

// ComponentChange records one added/removed (entity, component) pair.
type ComponentChange struct {
	Entity      EntityID
	ComponentID ComponentID
}

func newChangesList() *ChangesList {
	return &ChangesList{}
}

func (c *ChangesList) logAddedEntity(e EntityID) {
	c.AddedEntities = append(c.AddedEntities, e)
}

func (c *ChangesList) logRemovedEntity(e EntityID) {
	c.RemovedEntities = append(c.RemovedEntities, e)
}

func (c *ChangesList) logAddedComponent(e EntityID, id ComponentID) {
	c.AddedComponents = append(c.AddedComponents, ComponentChange{Entity: e, ComponentID: id})
}

func (c *ChangesList) logRemovedComponent(e EntityID, id ComponentID) {
	c.RemovedComponents = append(c.RemovedComponents, ComponentChange{Entity: e, ComponentID: id})
}

func (c *ChangesList) clear() {
	c.AddedEntities = nil
	c.RemovedEntities = nil
	c.AddedComponents = nil
	c.RemovedComponents = nil
}

