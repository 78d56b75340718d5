// Package lifecycle drives short-lived, frame-stepped behaviors attached to
// scene targets: highlights, spins, dissolves.
//
// Every instance moves through three stages. Init runs once on the first tick
// after the instance is attached. Process runs on every following tick until
// it asks to stop. Detach runs on the tick after that request and the instance
// is dropped. A forced Remove skips the wait and runs Detach at once (or not
// at all if Init never ran).
package lifecycle

// Stage is the lifecycle stage of an attached instance.
type Stage uint8

const (
	StageInit Stage = iota
	StageProcess
	StageDetach
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageInit:
		return "init"
	case StageProcess:
		return "process"
	case StageDetach:
		return "detach"
	default:
		return "done"
	}
}

// Category distinguishes instances that share a target. At most one instance
// per (target, category) exists at a time.
type Category uint8

// Behavior is the per-instance logic. dt is the frame time in seconds.
type Behavior interface {
	Init(dt float64)
	// Process returns true to request detachment on the next tick.
	Process(dt float64) bool
	Detach()
}

type key[K comparable] struct {
	target   K
	category Category
}

type instance[K comparable] struct {
	key      key[K]
	behavior Behavior
	stage    Stage
}

// Host owns the attached instances and steps them in attach order.
// It is not safe for concurrent use.
type Host[K comparable] struct {
	order   []*instance[K]
	byKey   map[key[K]]*instance[K]
	ticking bool
}

// NewHost returns an empty host.
func NewHost[K comparable]() *Host[K] {
	return &Host[K]{
		byKey: make(map[key[K]]*instance[K]),
	}
}

// Attach registers b on (target, c). An instance already attached there is
// force-removed first. The new instance starts on the next tick, even when
// Attach is called from inside a behavior during Tick.
func (h *Host[K]) Attach(target K, c Category, b Behavior) {
	k := key[K]{target, c}
	if old, ok := h.byKey[k]; ok {
		h.finish(old)
	}
	inst := &instance[K]{key: k, behavior: b, stage: StageInit}
	h.byKey[k] = inst
	h.order = append(h.order, inst)
}

// Remove force-detaches the instance on (target, c) and reports whether one
// was attached. Detach runs immediately if Init already ran; an instance that
// never initialised is discarded without callbacks.
func (h *Host[K]) Remove(target K, c Category) bool {
	inst, ok := h.byKey[key[K]{target, c}]
	if !ok {
		return false
	}
	h.finish(inst)
	if !h.ticking {
		h.compact()
	}
	return true
}

// Has reports whether an instance is attached on (target, c).
func (h *Host[K]) Has(target K, c Category) bool {
	_, ok := h.byKey[key[K]{target, c}]
	return ok
}

// Get returns the behavior attached on (target, c).
func (h *Host[K]) Get(target K, c Category) (Behavior, bool) {
	inst, ok := h.byKey[key[K]{target, c}]
	if !ok {
		return nil, false
	}
	return inst.behavior, true
}

// StageOf returns the stage of the instance on (target, c), or StageDone.
func (h *Host[K]) StageOf(target K, c Category) Stage {
	inst, ok := h.byKey[key[K]{target, c}]
	if !ok {
		return StageDone
	}
	return inst.stage
}

// Len returns the number of live instances.
func (h *Host[K]) Len() int {
	return len(h.byKey)
}

// Clear force-removes every instance in attach order. Instances attached by
// a Detach callback during Clear survive it.
func (h *Host[K]) Clear() {
	pending := append([]*instance[K](nil), h.order...)
	for _, inst := range pending {
		h.finish(inst)
	}
	if !h.ticking {
		h.compact()
	}
}

// Tick steps every instance that was attached before this call, in attach
// order. Nested calls from inside a behavior are ignored.
func (h *Host[K]) Tick(dt float64) {
	if h.ticking {
		return
	}
	h.ticking = true
	defer func() {
		h.ticking = false
		h.compact()
	}()

	n := len(h.order)
	snapshot := h.order[:n:n]
	for _, inst := range snapshot {
		switch inst.stage {
		case StageInit:
			// Advance first so a Remove issued from Init still sees that
			// Init ran and pairs it with Detach.
			inst.stage = StageProcess
			inst.behavior.Init(dt)
		case StageProcess:
			if inst.behavior.Process(dt) && inst.stage == StageProcess {
				inst.stage = StageDetach
			}
		case StageDetach:
			h.finish(inst)
		}
	}
}

// finish drops inst and runs its Detach if Init ran. Safe to call twice.
func (h *Host[K]) finish(inst *instance[K]) {
	if inst.stage == StageDone {
		return
	}
	initialised := inst.stage != StageInit
	inst.stage = StageDone
	if h.byKey[inst.key] == inst {
		delete(h.byKey, inst.key)
	}
	if initialised {
		inst.behavior.Detach()
	}
}

func (h *Host[K]) compact() {
	live := h.order[:0]
	for _, inst := range h.order {
		if inst.stage != StageDone {
			live = append(live, inst)
		}
	}
	for i := len(live); i < len(h.order); i++ {
		h.order[i] = nil
	}
	h.order = live
}
