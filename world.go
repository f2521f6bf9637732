package silo

import (
	"github.com/TheBitDrifter/bark"
	"github.com/sirupsen/logrus"
)

// World is a built runtime instance: its entity table, component columns,
// resources, event pools, and pending change queue, plus the scheduler
// registered against it.
type World struct {
	cfg Config

	entities  *EntityTable
	columns   []columnStorage
	resources []any
	events    []eventPool

	changeQueue *ChangeQueue
	changes     *ChangesList

	stages map[StageName]*stage

	logger  *logrus.Logger
	onCrash func(CrashReason)
}

// WorldBuilder accumulates component/resource/event/system registrations
// before Build assembles the World.
type WorldBuilder struct {
	cfg Config

	componentFactories []func() columnStorage
	resourceFactories  []func() any
	eventFactories     []func() eventPool

	stageOrder []StageName
	stages     map[StageName]*stageBuilder

	logger *logrus.Logger
}

// NewWorldBuilder starts a builder for a World configured by cfg. The
// default stage order is registered up front so AddSystem can target any of
// them immediately.
func NewWorldBuilder(cfg Config) *WorldBuilder {
	b := &WorldBuilder{
		cfg:    cfg,
		stages: map[StageName]*stageBuilder{},
		logger: logrus.New(),
	}
	for _, name := range defaultStages {
		b.declareStage(name)
	}
	return b
}

// WithLogger overrides the default logrus.Logger.
func (b *WorldBuilder) WithLogger(l *logrus.Logger) *WorldBuilder {
	b.logger = l
	return b
}

func (b *WorldBuilder) nextComponentID() ComponentID {
	return ComponentID(len(b.componentFactories))
}

func (b *WorldBuilder) nextResourceID() ResourceID {
	return ResourceID(len(b.resourceFactories))
}

func (b *WorldBuilder) nextEventID() EventID {
	return EventID(len(b.eventFactories))
}

// Build assembles the World: allocates the entity table, instantiates every
// registered component column, resource, and event pool, and finalizes the
// scheduler's stage/label/section layout.
func (b *WorldBuilder) Build() (*World, error) {
	if b.cfg.MaxEntities == 0 {
		return nil, InvalidConfigError{Field: "MaxEntities", Reason: "must be greater than zero"}
	}
	w := &World{
		cfg:         b.cfg,
		entities:    newEntityTable(b.cfg),
		columns:     make([]columnStorage, len(b.componentFactories)),
		resources:   make([]any, len(b.resourceFactories)),
		events:      make([]eventPool, len(b.eventFactories)),
		changeQueue: newChangeQueue(),
		changes:     newChangesList(),
		logger:      b.logger,
		onCrash:     b.cfg.OnCrash,
	}
	for i, f := range b.componentFactories {
		w.columns[i] = f()
	}
	for i, f := range b.resourceFactories {
		w.resources[i] = f()
	}
	for i, f := range b.eventFactories {
		w.events[i] = f()
	}
	w.stages = make(map[StageName]*stage, len(b.stageOrder))
	for _, name := range b.stageOrder {
		w.stages[name] = b.stages[name].build()
	}
	if w.onCrash == nil {
		w.onCrash = func(r CrashReason) { panic(bark.AddTrace(r)) }
	}
	return w, nil
}

// columnByID returns the type-erased column for id, panicking
// (UnregisteredComponentError, wrapped with bark.AddTrace) if id is out of
// range. Always a programmer error.
func (w *World) columnByID(id ComponentID) columnStorage {
	if int(id) >= len(w.columns) {
		panicTrace(UnregisteredComponentError{ComponentID: id})
	}
	return w.columns[id]
}

// Commands returns a handle for queuing structural mutations against w.
func (w *World) Commands() *Commands {
	return &Commands{world: w}
}

// Changes exposes the current frame's observability log, cleared only by
// CleanForNextFrame.
func (w *World) Changes() *ChangesList {
	return w.changes
}

// Flush drains the change queue immediately, applying every buffered
// AddComponent/RemoveComponent/RemoveEntity op the same way the scheduler
// does between systems. RunStage already flushes after each system body
// returns; Flush exists for host code that calls Commands outside of a
// system, most commonly to populate a World before the first RunStage of a
// frame, so that population is visible to the first stage's queries without
// a throwaway system.
func (w *World) Flush() {
	w.changeQueue.flush(w)
}

// CleanForNextFrame clears the per-frame ChangesList and every event pool.
// This is the single reset point; stage boundaries never clear either.
func (w *World) CleanForNextFrame() {
	w.changes.clear()
	for _, p := range w.events {
		p.clear()
	}
}

// Shutdown runs the deinit stage, logging rather than aborting on a system
// error, then leaves the world otherwise intact for inspection.
func (w *World) Shutdown() {
	w.RunStageCatch(StageDeinit, func(err error) {
		w.logger.WithFields(logrus.Fields{"error": err}).Warn("deinit system failed")
	})
}

// crash invokes the configured OnCrash handler with reason, used for fatal
// conditions such as entity overflow under OverflowCrash with no reclaimable
// slot.
func (w *World) crash(reason CrashReason) {
	w.onCrash(reason)
}
