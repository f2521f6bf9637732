package silo

// EventID is the dense, registration-order identifier for an event type.
type EventID uint32

// EventType[T] is the handle returned by RegisterEvent[T], used to build
// EventWriter[T]/EventReader[T] handles for that event type.
type EventType[T any] struct {
	id EventID
}

// RegisterEvent declares event type T on the builder.
func RegisterEvent[T any](b *WorldBuilder) EventType[T] {
	id := b.nextEventID()
	b.eventFactories = append(b.eventFactories, func() eventPool {
		return newEventPool[T]()
	})
	return EventType[T]{id: id}
}

// eventEntry pairs a value with the monotonic sequence number it was sent
// with, so independent readers can each track their own "already seen"
// watermark without the pool needing per-reader state.
type eventEntry[T any] struct {
	seq   uint64
	value T
}

// eventPool is the type-erased interface every EventPool[T] satisfies so a
// World can hold a homogeneous []eventPool indexed by EventID.
type eventPool interface {
	clear()
}

// EventPool is an append-only FIFO of values for one event type, read by
// any number of independent EventReader[T] cursors. Cleared once per frame
// by CleanForNextFrame, never by a stage boundary.
type EventPool[T any] struct {
	items   []eventEntry[T]
	nextSeq uint64
}

func newEventPool[T any]() *EventPool[T] {
	return &EventPool[T]{}
}

func (p *EventPool[T]) send(v T) {
	p.items = append(p.items, eventEntry[T]{seq: p.nextSeq, value: v})
	p.nextSeq++
}

func (p *EventPool[T]) clear() {
	p.items = p.items[:0]
}

// EventWriter sends values of type T into the world's event pool.
type EventWriter[T any] struct {
	id EventID
}

// NewEventWriter builds a writer handle for event type T.
func NewEventWriter[T any](et EventType[T]) EventWriter[T] {
	return EventWriter[T]{id: et.id}
}

// Send appends v to the pool, visible to any reader whose Read call happens
// after this Send, including readers in later systems within the same
// frame.
func (s EventWriter[T]) Send(w *World, v T) {
	pool := eventPoolOf[T](w, s.id)
	pool.send(v)
}

// EventReader holds a persistent read cursor over one event pool. Systems
// that consume an event type create their EventReader once (typically
// captured in the closure passed to WorldBuilder.AddSystem) so the cursor
// position survives across RunStage calls.
type EventReader[T any] struct {
	id      EventID
	lastSeq uint64
	seen    bool
}

// NewEventReader builds a reader handle for event type T, starting with no
// events consumed.
func NewEventReader[T any](et EventType[T]) *EventReader[T] {
	return &EventReader[T]{id: et.id}
}

// Read returns every value sent since this reader's last Read call and
// advances its cursor.
func (r *EventReader[T]) Read(w *World) []T {
	pool := eventPoolOf[T](w, r.id)
	out := make([]T, 0, len(pool.items))
	for _, entry := range pool.items {
		if r.seen && entry.seq <= r.lastSeq {
			continue
		}
		out = append(out, entry.value)
	}
	if len(pool.items) > 0 {
		r.lastSeq = pool.items[len(pool.items)-1].seq
		r.seen = true
	}
	return out
}

func eventPoolOf[T any](w *World, id EventID) *EventPool[T] {
	if int(id) >= len(w.events) {
		panicTrace(UnregisteredEventError{EventID: id})
	}
	pool, ok := w.events[id].(*EventPool[T])
	if !ok {
		panicTrace(UnregisteredEventError{EventID: id})
	}
	return pool
}
