package reactive

import (
	"testing"

	"github.com/vango-dev/rdom/pkg/scheduler"
)

func TestEffectRunsOnCreate(t *testing.T) {
	rt := New()
	ran := 0
	rt.Effect(func() any {
		ran++
		return nil
	})
	if ran != 1 {
		t.Errorf("expected 1 run, got %d", ran)
	}
}

func TestEffectLazy(t *testing.T) {
	rt := New()
	ran := 0
	e := rt.Effect(func() any {
		ran++
		return 42
	}, Lazy())
	if ran != 0 {
		t.Fatalf("lazy effect ran %d times on create", ran)
	}
	if got := e.Run(); got != 42 {
		t.Errorf("Run() = %v, want 42", got)
	}
	if ran != 1 {
		t.Errorf("expected 1 run, got %d", ran)
	}
}

func TestTrackingSanity(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("a", 1).Put("b", 1))

	aRuns, bRuns := 0, 0
	rt.Effect(func() any {
		_ = state.Get("a")
		aRuns++
		return nil
	})
	rt.Effect(func() any {
		_ = state.Get("b")
		bRuns++
		return nil
	})

	state.Set("a", 2)

	if aRuns != 2 {
		t.Errorf("reader of a: expected 2 runs, got %d", aRuns)
	}
	if bRuns != 1 {
		t.Errorf("reader of b: expected 1 run, got %d", bRuns)
	}
}

func TestNoTrackingOutsideEffect(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("a", 1))
	_ = state.Get("a")
	if n := rt.Tracked(); n != 0 {
		t.Errorf("expected no tracked targets, got %d", n)
	}
}

func TestSelfTriggerImmunity(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("count", 0))

	runs := 0
	rt.Effect(func() any {
		runs++
		state.Set("count", state.Get("count").(int)+1)
		return nil
	})

	if runs != 1 {
		t.Errorf("expected 1 run, got %d", runs)
	}
	if got := state.Get("count"); got != 1 {
		t.Errorf("count = %v, want 1", got)
	}
}

func TestNestedEffectsRestoreOuter(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("outer", 0).Put("inner", 0))

	outerRuns, innerRuns := 0, 0
	rt.Effect(func() any {
		outerRuns++
		rt.Effect(func() any {
			innerRuns++
			_ = state.Get("inner")
			return nil
		})
		_ = state.Get("outer")
		return nil
	})

	if rt.ActiveEffect() != nil {
		t.Fatal("active effect not restored after run")
	}
	if innerRuns != 1 {
		t.Fatalf("inner: expected 1 run, got %d", innerRuns)
	}

	state.Set("outer", 1)
	if outerRuns != 2 {
		t.Errorf("outer: expected 2 runs, got %d", outerRuns)
	}

	// The outer effect must not have been subscribed to inner's read.
	before := outerRuns
	state.Set("inner", 1)
	if outerRuns != before {
		t.Errorf("outer re-ran on inner write")
	}
}

func TestDependenciesRebuiltOnRerun(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("ok", true).Put("text", "hello"))

	runs := 0
	rt.Effect(func() any {
		runs++
		if state.Get("ok").(bool) {
			_ = state.Get("text")
		}
		return nil
	})

	state.Set("ok", false)
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}

	state.Set("text", "world")
	if runs != 2 {
		t.Errorf("stale branch dependency triggered a run: %d runs", runs)
	}
}

func TestEffectScheduler(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("n", 0))

	var scheduled []*Effect
	runs := 0
	e := rt.Effect(func() any {
		runs++
		_ = state.Get("n")
		return nil
	}, WithScheduler(func(e *Effect) {
		scheduled = append(scheduled, e)
	}))

	state.Set("n", 1)
	if runs != 1 {
		t.Errorf("scheduler should replace direct execution, got %d runs", runs)
	}
	if len(scheduled) != 1 || scheduled[0] != e {
		t.Fatalf("scheduler not called with the effect: %v", scheduled)
	}
}

func TestEffectStop(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("n", 0))

	stopped := false
	runs := 0
	e := rt.Effect(func() any {
		runs++
		_ = state.Get("n")
		return nil
	}, OnStop(func() { stopped = true }))

	e.Stop()
	state.Set("n", 1)

	if runs != 1 {
		t.Errorf("stopped effect re-ran: %d runs", runs)
	}
	if !stopped {
		t.Error("OnStop callback not invoked")
	}
	if e.DepCount() != 0 {
		t.Errorf("stopped effect still holds %d deps", e.DepCount())
	}
}

func TestEffectPanicRestoresStack(t *testing.T) {
	rt := New()
	func() {
		defer func() { _ = recover() }()
		rt.Effect(func() any {
			panic("boom")
		})
	}()
	if rt.ActiveEffect() != nil {
		t.Error("active effect leaked after panic")
	}
}

func TestUntracked(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("n", 0))

	runs := 0
	rt.Effect(func() any {
		runs++
		rt.Untracked(func() {
			_ = state.Get("n")
		})
		return nil
	})

	state.Set("n", 1)
	if runs != 1 {
		t.Errorf("untracked read subscribed the effect: %d runs", runs)
	}
}

func TestMultipleRuntimesAreIndependent(t *testing.T) {
	a, b := New(), New()
	obj := NewObject().Put("n", 0)

	aRuns := 0
	a.Effect(func() any {
		aRuns++
		_ = a.Reactive(obj).Get("n")
		return nil
	})

	b.Reactive(obj).Set("n", 1)
	if aRuns != 1 {
		t.Errorf("write through another runtime triggered: %d runs", aRuns)
	}

	a.Reactive(obj).Set("n", 2)
	if aRuns != 2 {
		t.Errorf("expected 2 runs, got %d", aRuns)
	}
}

func TestForget(t *testing.T) {
	rt := New()
	obj := NewObject().Put("n", 0)
	state := rt.Reactive(obj)

	runs := 0
	rt.Effect(func() any {
		runs++
		_ = state.Get("n")
		return nil
	})
	if rt.Tracked() != 1 {
		t.Fatalf("expected 1 tracked target, got %d", rt.Tracked())
	}

	rt.Forget(state)
	if rt.Tracked() != 0 {
		t.Errorf("expected 0 tracked targets after Forget, got %d", rt.Tracked())
	}
	state.Set("n", 1)
	if runs != 1 {
		t.Errorf("forgotten target still triggered: %d runs", runs)
	}
}

type countingHooks struct {
	runs     int
	triggers map[OpType]int
}

func (h *countingHooks) EffectRun() { h.runs++ }
func (h *countingHooks) Triggered(op OpType, n int) {
	if h.triggers == nil {
		h.triggers = make(map[OpType]int)
	}
	h.triggers[op] += n
}

func TestRuntimeHooks(t *testing.T) {
	h := &countingHooks{}
	rt := New(WithHooks(h))
	state := rt.Reactive(NewObject())

	rt.Effect(func() any {
		_ = state.Keys()
		return nil
	})
	state.Set("a", 1)

	if h.runs != 2 {
		t.Errorf("EffectRun called %d times, want 2", h.runs)
	}
	if h.triggers[OpAdd] != 1 {
		t.Errorf("Triggered(ADD) selected %d effects, want 1", h.triggers[OpAdd])
	}
}

func TestQueuedEffectBatchesWrites(t *testing.T) {
	rt := New()
	q := scheduler.NewJobQueue(rt.Microtasks())
	state := rt.Reactive(NewObject().Put("n", 0))

	var seen []any
	rt.Effect(func() any {
		seen = append(seen, state.Get("n"))
		return nil
	}, Queued(q))

	rt.Microtasks().Turn(func() {
		state.Set("n", 1)
		state.Set("n", 2)
		state.Set("n", 3)
	})

	if len(seen) != 2 || seen[1] != 3 {
		t.Errorf("seen = %v, want [0 3]", seen)
	}
}
