package silo

import "github.com/TheBitDrifter/bark"

// panicTrace panics with err wrapped in a stack trace. Used for the
// UnregisteredComponent, UnregisteredResource, UnregisteredEvent, and
// DuplicateQueryType categories, which are always programmer errors.
func panicTrace(err error) {
	panic(bark.AddTrace(err))
}
