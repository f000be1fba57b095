package reactive

import "github.com/vango-dev/rdom/pkg/scheduler"

// Effect is a re-runnable computation whose proxy reads are tracked. When a
// tracked key changes the effect re-runs, or its scheduler is invoked instead.
type Effect struct {
	id uint64
	rt *Runtime

	fn func() any

	// deps are the dependency sets this effect currently belongs to.
	deps []*dep

	lazy      bool
	scheduler func(*Effect)
	onStop    func()

	stopped bool
}

// EffectOption configures an Effect.
type EffectOption func(*Effect)

// Lazy prevents the effect from running at construction.
func Lazy() EffectOption {
	return func(e *Effect) {
		e.lazy = true
	}
}

// WithScheduler replaces direct re-execution: when a dependency changes,
// fn is called with the effect instead of running it.
func WithScheduler(fn func(*Effect)) EffectOption {
	return func(e *Effect) {
		e.scheduler = fn
	}
}

// OnStop registers a callback invoked once when the effect is stopped.
func OnStop(fn func()) EffectOption {
	return func(e *Effect) {
		e.onStop = fn
	}
}

// Queued schedules re-runs on q: a dependency change adds the effect's job
// to the queue instead of running it synchronously.
func Queued(q *scheduler.JobQueue) EffectOption {
	return WithScheduler(func(e *Effect) {
		q.Add(e.Job())
	})
}

// Effect creates an effect over fn and, unless Lazy, runs it once.
//
// Example:
//
//	rt.Effect(func() any {
//	    fmt.Println("name:", user.Get("name"))
//	    return nil
//	})
func (rt *Runtime) Effect(fn func() any, opts ...EffectOption) *Effect {
	e := &Effect{
		id: nextID(),
		rt: rt,
		fn: fn,
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.lazy {
		e.Run()
	}
	return e
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// Run executes the effect body with tracking and returns its result.
// Previous dependency memberships are dropped first so the new run rebuilds
// them from scratch. A stopped effect runs its body untracked.
func (e *Effect) Run() any {
	if e.stopped {
		return e.fn()
	}

	rt := e.rt
	rt.store.remove(e)

	rt.effectStack = append(rt.effectStack, e)
	rt.activeEffect = e
	defer func() {
		rt.effectStack[len(rt.effectStack)-1] = nil
		rt.effectStack = rt.effectStack[:len(rt.effectStack)-1]
		if n := len(rt.effectStack); n > 0 {
			rt.activeEffect = rt.effectStack[n-1]
		} else {
			rt.activeEffect = nil
		}
	}()

	rt.hooks.EffectRun()
	return e.fn()
}

// Stop detaches the effect from all dependencies. It will not be scheduled
// again.
func (e *Effect) Stop() {
	if e.stopped {
		return
	}
	e.rt.store.remove(e)
	e.stopped = true
	if e.onStop != nil {
		e.onStop()
	}
}

// Stopped reports whether Stop was called.
func (e *Effect) Stopped() bool {
	return e.stopped
}

// DepCount returns how many dependency sets the effect belongs to.
func (e *Effect) DepCount() int {
	return len(e.deps)
}

// Job adapts the effect to scheduler.Job. Jobs for the same effect are equal,
// so a queue deduplicates them.
func (e *Effect) Job() scheduler.Job {
	return effectJob{e: e}
}

type effectJob struct {
	e *Effect
}

func (j effectJob) Run() {
	if j.e.stopped {
		return
	}
	j.e.Run()
}
