package silo

import (
	"iter"

	"github.com/kamstrup/intmap"
)

// columnStorage is the type-erased interface every ComponentColumn[T]
// satisfies so a World can hold a homogeneous []columnStorage indexed by
// ComponentID.
type columnStorage interface {
	id() ComponentID
	name() string
	has(e EntityID) bool
	len() int
	willResize() bool
	removeErased(e EntityID, w *World, cmd *Commands) error
	assignErased(e EntityID, v any) error
	entities() []EntityID
}

// ComponentColumn is the per-type contiguous store: a packed data slice, a
// dense entityOfSlot list, and a sparse slotOfEntity index. The sparse
// index is backed by github.com/kamstrup/intmap rather than a plain Go map,
// since entity ids are small dense integers and intmap.Map specializes
// exactly that case.
type ComponentColumn[T any] struct {
	compID       ComponentID
	compName     string
	data         []T
	entityOfSlot []EntityID
	slotOfEntity *intmap.Map[EntityID, uint32]
	hooks        ComponentHooks[T]
}

func newComponentColumn[T any](id ComponentID, name string) *ComponentColumn[T] {
	return &ComponentColumn[T]{
		compID:       id,
		compName:     name,
		slotOfEntity: intmap.New[EntityID, uint32](64),
	}
}

func (c *ComponentColumn[T]) id() ComponentID { return c.compID }
func (c *ComponentColumn[T]) name() string    { return c.compName }

// willResize reports whether the next assign to a not-yet-present entity
// would force the backing slice to reallocate.
func (c *ComponentColumn[T]) willResize() bool {
	return len(c.data) == cap(c.data)
}

// assign appends, or, if the entity already owns this component, overwrites
// in place.
func (c *ComponentColumn[T]) assign(e EntityID, v T) {
	if slot, ok := c.slotOfEntity.Get(e); ok {
		c.data[slot] = v
		return
	}
	slot := uint32(len(c.data))
	c.data = append(c.data, v)
	c.entityOfSlot = append(c.entityOfSlot, e)
	c.slotOfEntity.Put(e, slot)
}

func (c *ComponentColumn[T]) assignErased(e EntityID, v any) error {
	c.assign(e, v.(T))
	return nil
}

// remove swap-removes e's slot: the tail slot's bytes are copied into the
// vacated position, both entities' slotOfEntity entries are updated, and the
// tail is popped.
func (c *ComponentColumn[T]) remove(e EntityID) bool {
	slot, ok := c.slotOfEntity.Get(e)
	if !ok {
		return false
	}
	lastSlot := uint32(len(c.data) - 1)
	if slot != lastSlot {
		movedEntity := c.entityOfSlot[lastSlot]
		c.data[slot] = c.data[lastSlot]
		c.entityOfSlot[slot] = movedEntity
		c.slotOfEntity.Put(movedEntity, slot)
	}
	c.data = c.data[:lastSlot]
	c.entityOfSlot = c.entityOfSlot[:lastSlot]
	c.slotOfEntity.Del(e)
	return true
}

// removeErased runs the on_removed hook, if any, before reclaiming e's slot.
func (c *ComponentColumn[T]) removeErased(e EntityID, w *World, cmd *Commands) error {
	if c.hooks.OnRemoved != nil {
		if ptr, ok := c.get(e); ok {
			if err := c.hooks.OnRemoved(ptr, e, cmd); err != nil {
				return err
			}
		}
	}
	c.remove(e)
	return nil
}

// get returns a pointer valid until the next resizing append on this
// column. For zero-size T the returned pointer is non-nil but must not be
// dereferenced for content.
func (c *ComponentColumn[T]) get(e EntityID) (*T, bool) {
	slot, ok := c.slotOfEntity.Get(e)
	if !ok {
		return nil, false
	}
	return &c.data[slot], true
}

func (c *ComponentColumn[T]) has(e EntityID) bool {
	_, ok := c.slotOfEntity.Get(e)
	return ok
}

func (c *ComponentColumn[T]) len() int { return len(c.data) }

func (c *ComponentColumn[T]) entities() []EntityID { return c.entityOfSlot }

// iterate is a lazy, finite, non-restartable sequence of (entity, pointer)
// pairs in slot order.
func (c *ComponentColumn[T]) iterate() iter.Seq2[EntityID, *T] {
	return func(yield func(EntityID, *T) bool) {
		for slot := range c.data {
			if !yield(c.entityOfSlot[slot], &c.data[slot]) {
				return
			}
		}
	}
}

// columnOf type-asserts the world's type-erased column back to its concrete
// *ComponentColumn[T]. Panics (UnregisteredComponentError, wrapped with
// bark.AddTrace) if id is out of range; this is always a programmer error.
func columnOf[T any](w *World, id ComponentID) *ComponentColumn[T] {
	storage := w.columnByID(id)
	col, ok := storage.(*ComponentColumn[T])
	if !ok {
		panicTrace(UnregisteredComponentError{ComponentID: id})
	}
	return col
}
