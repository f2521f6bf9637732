package silo

// ResourceID is the dense, registration-order identifier for a resource
// type, analogous to ComponentID.
type ResourceID uint32

// ResourceType[T] is the handle returned by RegisterResource[T], used with
// the package-level Resource/ResourceMut accessors. Methods cannot
// introduce new type parameters in Go, so resource access is exposed as
// package-level generic functions taking the handle and a *World instead of
// instance methods.
type ResourceType[T any] struct {
	id ResourceID
}

// RegisterResource declares a singleton resource of type T with its initial
// value. Resources live for the World's lifetime and are mutable in place.
func RegisterResource[T any](b *WorldBuilder, initial T) ResourceType[T] {
	id := b.nextResourceID()
	rt := ResourceType[T]{id: id}
	v := initial
	b.resourceFactories = append(b.resourceFactories, func() any {
		return &v
	})
	return rt
}

// Resource returns a copy of the current resource value.
func Resource[T any](w *World, rt ResourceType[T]) T {
	ptr := resourcePtr[T](w, rt.id)
	return *ptr
}

// ResourceMut returns a mutable pointer to the stored resource.
func ResourceMut[T any](w *World, rt ResourceType[T]) *T {
	return resourcePtr[T](w, rt.id)
}

func resourcePtr[T any](w *World, id ResourceID) *T {
	if int(id) >= len(w.resources) {
		panicTrace(UnregisteredResourceError{ResourceID: id})
	}
	ptr, ok := w.resources[id].(*T)
	if !ok {
		panicTrace(UnregisteredResourceError{ResourceID: id})
	}
	return ptr
}
