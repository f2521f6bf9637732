package silo

// ComponentID is the dense, registration-order identifier assigned to each
// registered component type, in [0, N) where N is the number of registered
// types.
type ComponentID uint32

// Component is the type-erased handle every ComponentType[T] satisfies. It
// is what query builders (Required/Optional/With/Without) and
// Commands.RemoveComponent/HasComponent accept.
type Component interface {
	componentID() ComponentID
	componentName() string
}

// ComponentType[T] is the handle returned by RegisterComponent[T]. It is
// used both as a Component token in query specs and, via its Get/GetOptional/
// Has methods, to read typed pointers out of a Cursor.
type ComponentType[T any] struct {
	id   ComponentID
	name string
}

func (c ComponentType[T]) componentID() ComponentID { return c.id }
func (c ComponentType[T]) componentName() string     { return c.name }

// ComponentHooks holds the optional on_added/on_removed lifecycle hooks for
// a component type: fn(component_ref, entity, commands) -> error.
type ComponentHooks[T any] struct {
	OnAdded   func(c *T, e EntityID, cmd *Commands) error
	OnRemoved func(c *T, e EntityID, cmd *Commands) error
}

// RegisterComponent declares component type T on the builder and returns its
// typed handle. A registration made after Build has no effect on a World
// that Build already returned; only later Build calls include it.
func RegisterComponent[T any](b *WorldBuilder, name string) ComponentType[T] {
	id := b.nextComponentID()
	ct := ComponentType[T]{id: id, name: name}
	b.componentFactories = append(b.componentFactories, func() columnStorage {
		return newComponentColumn[T](id, name)
	})
	return ct
}

// RegisterComponentWithHooks is RegisterComponent plus on_added/on_removed
// lifecycle hooks.
func RegisterComponentWithHooks[T any](b *WorldBuilder, name string, hooks ComponentHooks[T]) ComponentType[T] {
	id := b.nextComponentID()
	ct := ComponentType[T]{id: id, name: name}
	b.componentFactories = append(b.componentFactories, func() columnStorage {
		col := newComponentColumn[T](id, name)
		col.hooks = hooks
		return col
	})
	return ct
}

// Get returns a pointer to T for the entity at the cursor's current
// position. It is a hard failure (panic, wrapped with bark.AddTrace) to call
// Get for a component the originating query spec did not declare required
// or optional: accessing a type the query did not declare is a program
// error.
func (c ComponentType[T]) Get(cursor *Cursor) *T {
	cursor.mustDeclare(c.id)
	col := columnOf[T](cursor.world, c.id)
	ptr, ok := col.get(cursor.current)
	if !ok {
		return nil
	}
	return ptr
}

// GetOptional is Get's safe counterpart for components declared Optional.
func (c ComponentType[T]) GetOptional(cursor *Cursor) (*T, bool) {
	cursor.mustDeclare(c.id)
	col := columnOf[T](cursor.world, c.id)
	return col.get(cursor.current)
}

// Has reports whether the entity at the cursor's current position carries
// this component, without requiring the column type assertion Get performs.
func (c ComponentType[T]) Has(cursor *Cursor) bool {
	return cursor.world.entities.maskHas(cursor.current, uint32(c.id))
}
