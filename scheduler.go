package silo

// StageName identifies one of the world's named execution phases.
type StageName string

// Default stage order.
const (
	StageInit       StageName = "init"
	StageLoad       StageName = "load"
	StagePreUpdate  StageName = "pre_update"
	StageUpdate     StageName = "update"
	StagePostUpdate StageName = "post_update"
	StageDraw       StageName = "draw"
	StageDeinit     StageName = "deinit"
)

var defaultStages = []StageName{
	StageInit, StageLoad, StagePreUpdate, StageUpdate, StagePostUpdate, StageDraw, StageDeinit,
}

// LabelName is an ordering anchor within a stage. Every stage starts with a
// single label, DefaultLabel, so AddSystem needs no label argument in the
// common case; AddLabel inserts further anchors before/after existing ones
// for systems that must run at a specific point relative to others.
type LabelName string

// DefaultLabel is the label every system is registered under unless InLabel
// names another one.
const DefaultLabel LabelName = "body"

// Section selects where, relative to a label, a system runs: before every
// during-section system at that label, during (the default), or after.
type Section int

const (
	SectionBefore Section = iota
	SectionDuring
	SectionAfter
)

// System is the function signature every registered system implements. A
// non-nil return aborts the rest of its stage on RunStage (but not on
// RunStageCatch); the change queue is flushed after the system returns
// either way.
type System func(*World) error

type systemReg struct {
	label   LabelName
	section Section
}

// SystemOption customizes AddSystem's placement within a stage.
type SystemOption func(*systemReg)

// InLabel registers the system under a specific label instead of
// DefaultLabel.
func InLabel(name LabelName) SystemOption {
	return func(r *systemReg) { r.label = name }
}

// InSection registers the system in the given section (before/during/after)
// of its label.
func InSection(s Section) SystemOption {
	return func(r *systemReg) { r.section = s }
}

type labelBuilder struct {
	before []System
	during []System
	after  []System
}

type stageBuilder struct {
	name       StageName
	labelOrder []LabelName
	labels     map[LabelName]*labelBuilder
}

func newStageBuilder(name StageName) *stageBuilder {
	sb := &stageBuilder{name: name, labels: map[LabelName]*labelBuilder{}}
	sb.labelBuilderFor(DefaultLabel)
	return sb
}

func (sb *stageBuilder) labelBuilderFor(name LabelName) *labelBuilder {
	lb, ok := sb.labels[name]
	if !ok {
		lb = &labelBuilder{}
		sb.labels[name] = lb
		sb.labelOrder = append(sb.labelOrder, name)
	}
	return lb
}

// moveLabel repositions name to just before (offset 0) or just after
// (offset 1) anchor in labelOrder. A missing anchor leaves name at the end.
func (sb *stageBuilder) moveLabel(name, anchor LabelName, offset int) {
	idx := -1
	for i, n := range sb.labelOrder {
		if n == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	sb.labelOrder = append(sb.labelOrder[:idx], sb.labelOrder[idx+1:]...)

	anchorIdx := -1
	for i, n := range sb.labelOrder {
		if n == anchor {
			anchorIdx = i
			break
		}
	}
	if anchorIdx == -1 {
		sb.labelOrder = append(sb.labelOrder, name)
		return
	}
	insertAt := anchorIdx + offset
	rest := append([]LabelName{name}, sb.labelOrder[insertAt:]...)
	sb.labelOrder = append(sb.labelOrder[:insertAt], rest...)
}

// build flattens the stage's labels, in labelOrder, each contributing its
// before/during/after systems in that order, into the single run-order slice
// the scheduler executes.
func (sb *stageBuilder) build() *stage {
	st := &stage{name: sb.name}
	for _, name := range sb.labelOrder {
		lb := sb.labels[name]
		st.systems = append(st.systems, lb.before...)
		st.systems = append(st.systems, lb.during...)
		st.systems = append(st.systems, lb.after...)
	}
	return st
}

type stage struct {
	name    StageName
	systems []System
}

func (b *WorldBuilder) stageBuilderFor(name StageName) *stageBuilder {
	sb, ok := b.stages[name]
	if !ok {
		sb = newStageBuilder(name)
		b.stages[name] = sb
		b.stageOrder = append(b.stageOrder, name)
	}
	return sb
}

func (b *WorldBuilder) declareStage(name StageName) {
	b.stageBuilderFor(name)
}

// LabelOption positions a label relative to an existing one when declared
// with AddLabel.
type LabelOption func(sb *stageBuilder, name LabelName)

// Before positions the new label immediately ahead of anchor.
func Before(anchor LabelName) LabelOption {
	return func(sb *stageBuilder, name LabelName) { sb.moveLabel(name, anchor, 0) }
}

// After positions the new label immediately behind anchor.
func After(anchor LabelName) LabelOption {
	return func(sb *stageBuilder, name LabelName) { sb.moveLabel(name, anchor, 1) }
}

// AddLabel declares a new ordering anchor in stageName, optionally
// positioned with Before/After an existing label. With no option the label
// is appended to the end of the stage's current order.
func (b *WorldBuilder) AddLabel(stageName StageName, name LabelName, opts ...LabelOption) *WorldBuilder {
	sb := b.stageBuilderFor(stageName)
	sb.labelBuilderFor(name)
	for _, opt := range opts {
		opt(sb, name)
	}
	return b
}

// AddSystem registers sys to run in stageName, under DefaultLabel's during
// section unless overridden by InLabel/InSection. Systems run in
// registration order within a section.
func (b *WorldBuilder) AddSystem(stageName StageName, sys System, opts ...SystemOption) *WorldBuilder {
	reg := systemReg{label: DefaultLabel, section: SectionDuring}
	for _, opt := range opts {
		opt(&reg)
	}
	sb := b.stageBuilderFor(stageName)
	lb := sb.labelBuilderFor(reg.label)
	switch reg.section {
	case SectionBefore:
		lb.before = append(lb.before, sys)
	case SectionAfter:
		lb.after = append(lb.after, sys)
	default:
		lb.during = append(lb.during, sys)
	}
	return b
}

// RunStage executes every system registered against name in order, flushing
// the change queue after each one. A system error stops the remaining
// systems in this stage and is returned to the caller; systems already run
// keep their effects.
func (w *World) RunStage(name StageName) error {
	st, ok := w.stages[name]
	if !ok {
		return nil
	}
	for _, sys := range st.systems {
		err := sys(w)
		w.changeQueue.flush(w)
		if err != nil {
			return err
		}
	}
	return nil
}

// RunStageCatch is RunStage but never aborts early: every system in the
// stage runs regardless of earlier failures, with onError (if non-nil)
// invoked once per failing system. Used by Shutdown so a failing deinit
// system doesn't prevent others from tearing down.
func (w *World) RunStageCatch(name StageName, onError func(error)) {
	st, ok := w.stages[name]
	if !ok {
		return
	}
	for _, sys := range st.systems {
		err := sys(w)
		w.changeQueue.flush(w)
		if err != nil && onError != nil {
			onError(err)
		}
	}
}
