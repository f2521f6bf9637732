package silo

// OverflowPolicy controls what happens when Spawn is attempted at MaxEntities
// with no reclaimable slot.
type OverflowPolicy int

const (
	// OverflowCrash dispatches OnCrash with an EntityOverflowError and
	// terminates (via panic, wrapped with bark.AddTrace) unless OnCrash
	// recovers.
	OverflowCrash OverflowPolicy = iota
	// OverflowOverwriteLast returns the most-recently allocated entity id,
	// stripped of all its components, rather than failing.
	OverflowOverwriteLast
	// OverflowOverwriteFirst returns the entity at the front of the live
	// list (the first one allocated, unless despawns have since reordered the
	// list by swap-remove), stripped of all its components, rather than
	// failing.
	OverflowOverwriteFirst
)

// Config holds the build-time configuration for a World.
type Config struct {
	// MaxEntities bounds the live entity population. Must be > 0.
	MaxEntities uint32
	// OnEntityOverflow selects the behavior when Spawn cannot allocate.
	OnEntityOverflow OverflowPolicy
	// OnCrash is invoked before a fatal condition aborts the process.
	// If nil, a default handler that panics with the CrashReason is used.
	OnCrash func(CrashReason)
}
