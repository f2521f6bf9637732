package silo

import "github.com/TheBitDrifter/mask"

// Cursor is the handle a system pulls component pointers through while
// iterating a query result. It walks a single driver column's dense slot
// order (or, for an entities-only query, the live entity list), filtering
// each candidate against the query's masks.
type Cursor struct {
	world      *World
	spec       *QuerySpec
	positive   mask.Mask
	negative   mask.Mask
	candidates []EntityID
	idx        int
	current    EntityID
}

// Query plans spec against the world's current columns and returns a fresh
// Cursor positioned before the first match. Planning errors (empty query,
// duplicate query types) panic, wrapped with bark.AddTrace: they are always
// programmer errors, detectable at the call site.
func (w *World) Query(spec *QuerySpec) *Cursor {
	positive, negative, driver, hasDriver, err := spec.plan()
	if err != nil {
		panicTrace(err)
	}
	var candidates []EntityID
	if hasDriver {
		candidates = w.driverEntities(spec, driver)
	} else {
		candidates = w.entities.live
	}
	return &Cursor{
		world:      w,
		spec:       spec,
		positive:   positive,
		negative:   negative,
		candidates: candidates,
		idx:        -1,
	}
}

// driverEntities picks the smallest column among the query's required∪with
// component ids and returns its dense entity list as the candidate pool to
// walk, so filtering starts from the fewest possible candidates.
func (w *World) driverEntities(q *QuerySpec, hint ComponentID) []EntityID {
	best := w.columnByID(hint)
	for _, id := range q.driverCandidates() {
		col := w.columnByID(id)
		if col.len() < best.len() {
			best = col
		}
	}
	return best.entities()
}

// Next advances the cursor to the next matching entity, returning false once
// exhausted. Candidates are filtered against the spec's positive (required +
// with) and negative (without) masks, and against current liveness. A
// candidate can go stale mid-iteration only via structural mutation inside
// the system body, and those mutations are queued rather than applied until
// flush, so no additional guard is needed beyond the liveness check itself.
func (c *Cursor) Next() bool {
	for {
		c.idx++
		if c.idx >= len(c.candidates) {
			return false
		}
		e := c.candidates[c.idx]
		if !c.world.entities.isLive(e) {
			continue
		}
		m := c.world.entities.maskOf[e]
		if !m.ContainsAll(c.positive) {
			continue
		}
		if !m.ContainsNone(c.negative) {
			continue
		}
		c.current = e
		return true
	}
}

// Entity returns the entity id at the cursor's current position. Valid only
// after a Next call that returned true.
func (c *Cursor) Entity() EntityID {
	return c.current
}

// mustDeclare panics (UndeclaredQueryAccessError, wrapped with
// bark.AddTrace) if id was not named Required or Optional by the spec this
// cursor was built from.
func (c *Cursor) mustDeclare(id ComponentID) {
	if !c.spec.declares(id) {
		panicTrace(UndeclaredQueryAccessError{ComponentID: id})
	}
}
