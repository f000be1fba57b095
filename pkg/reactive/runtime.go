package reactive

import (
	"log/slog"
	"sync/atomic"

	"github.com/vango-dev/rdom/pkg/scheduler"
)

// globalIDCounter is the source of unique IDs for runtimes and effects.
var globalIDCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// Hooks observes runtime activity. Implemented by the metrics package.
type Hooks interface {
	// EffectRun is called each time an effect body executes.
	EffectRun()

	// Triggered is called after a mutation selected n effects to notify.
	Triggered(op OpType, n int)
}

type noopHooks struct{}

func (noopHooks) EffectRun()            {}
func (noopHooks) Triggered(OpType, int) {}

// Runtime holds the tracking state for one logical thread of reactive work:
// the dependency store, the active effect and its call stack, and whether
// tracking is currently enabled.
type Runtime struct {
	id uint64

	store *store

	// activeEffect is the effect whose reads are being tracked.
	activeEffect *Effect

	// effectStack holds nested running effects; its top is activeEffect.
	effectStack []*Effect

	// shouldTrack is false while array mutators run and inside Untracked.
	shouldTrack bool

	micro  *scheduler.Microtasks
	logger *slog.Logger
	hooks  Hooks
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used for readonly-write warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithMicrotasks sets the microtask queue used by FlushPost watchers.
func WithMicrotasks(m *scheduler.Microtasks) Option {
	return func(rt *Runtime) {
		if m != nil {
			rt.micro = m
		}
	}
}

// WithHooks installs runtime observers.
func WithHooks(h Hooks) Option {
	return func(rt *Runtime) {
		if h != nil {
			rt.hooks = h
		}
	}
}

// New creates an independent runtime.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		id:          nextID(),
		store:       newStore(),
		shouldTrack: true,
		logger:      slog.Default().With("component", "reactive"),
		hooks:       noopHooks{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.micro == nil {
		rt.micro = scheduler.NewMicrotasks()
	}
	return rt
}

// ID returns the runtime's unique identifier.
func (rt *Runtime) ID() uint64 {
	return rt.id
}

// Microtasks returns the runtime's microtask queue.
func (rt *Runtime) Microtasks() *scheduler.Microtasks {
	return rt.micro
}

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// ActiveEffect returns the effect currently tracking reads, or nil.
func (rt *Runtime) ActiveEffect() *Effect {
	return rt.activeEffect
}

// Untracked runs fn with dependency tracking disabled.
func (rt *Runtime) Untracked(fn func()) {
	prev := rt.shouldTrack
	rt.shouldTrack = false
	defer func() { rt.shouldTrack = prev }()
	fn()
}

// Forget drops every dependency edge recorded for target. Edges are also
// dropped automatically once the target is garbage collected.
func (rt *Runtime) Forget(target any) {
	if t, ok := asTarget(target); ok {
		rt.store.forget(t.weakRef())
	}
}

// Tracked reports how many targets currently have dependency edges.
func (rt *Runtime) Tracked() int {
	return rt.store.size()
}

func (rt *Runtime) track(t target, key any) {
	if rt.activeEffect == nil || !rt.shouldTrack {
		return
	}
	rt.store.add(t, key, rt.activeEffect)
}

func (rt *Runtime) trigger(t target, key any, op OpType, newValue any) {
	effects := rt.store.collect(t, key, op, newValue, rt.activeEffect)
	rt.hooks.Triggered(op, len(effects))

	for _, e := range effects {
		if e.stopped {
			continue
		}
		if e.scheduler != nil {
			e.scheduler(e)
		} else {
			e.Run()
		}
	}
}
