package silo

import "fmt"

// EntityMissingError reports an operation targeting a non-live entity.
type EntityMissingError struct {
	Entity EntityID
}

func (e EntityMissingError) Error() string {
	return fmt.Sprintf("entity %d is not live", e.Entity)
}

// ParentMissingError reports that a requested parent entity is not live.
type ParentMissingError struct {
	Parent EntityID
}

func (e ParentMissingError) Error() string {
	return fmt.Sprintf("parent entity %d is not live", e.Parent)
}

// UnregisteredComponentError reports a component id outside the registry.
// Programmer error: panics in normal operation, see bark.AddTrace call sites.
type UnregisteredComponentError struct {
	ComponentID ComponentID
}

func (e UnregisteredComponentError) Error() string {
	return fmt.Sprintf("component id %d is not registered", e.ComponentID)
}

// UnregisteredResourceError reports a resource type never declared on the builder.
type UnregisteredResourceError struct {
	ResourceID ResourceID
}

func (e UnregisteredResourceError) Error() string {
	return fmt.Sprintf("resource id %d is not registered", e.ResourceID)
}

// UnregisteredEventError reports an event type never declared on the builder.
type UnregisteredEventError struct {
	EventID EventID
}

func (e UnregisteredEventError) Error() string {
	return fmt.Sprintf("event id %d is not registered", e.EventID)
}

// EntityOverflowError reports that the live population exceeded MaxEntities
// with no slot reclaimable under the configured overflow policy.
type EntityOverflowError struct {
	MaxEntities uint32
}

func (e EntityOverflowError) Error() string {
	return fmt.Sprintf("entity overflow: max_entities (%d) exceeded", e.MaxEntities)
}

// DuplicateQueryTypeError reports a query spec referencing the same
// component type twice in incompatible roles (e.g. both required and
// optional, or the same role twice).
type DuplicateQueryTypeError struct {
	ComponentID ComponentID
}

func (e DuplicateQueryTypeError) Error() string {
	return fmt.Sprintf("component id %d appears more than once, or in incompatible roles, in query spec", e.ComponentID)
}

// InvalidConfigError reports a Config field that fails validation at Build.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config field %s: %s", e.Field, e.Reason)
}

// EmptyQueryError reports a query with no required components and no
// Entity-only request.
type EmptyQueryError struct{}

func (e EmptyQueryError) Error() string {
	return "query spec has no required components and does not request Entity; nothing to iterate"
}

// UndeclaredQueryAccessError reports a system reading a component the
// query spec it came from never declared as required or optional.
type UndeclaredQueryAccessError struct {
	ComponentID ComponentID
}

func (e UndeclaredQueryAccessError) Error() string {
	return fmt.Sprintf("component id %d was not declared required or optional by this query", e.ComponentID)
}

// CrashReason describes why the world invoked its OnCrash callback.
type CrashReason struct {
	Err     error
	Context string
}

func (c CrashReason) Error() string {
	return fmt.Sprintf("%s: %v", c.Context, c.Err)
}
