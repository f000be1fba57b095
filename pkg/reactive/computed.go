package reactive

import (
	"runtime"
	"weak"
)

// computedValueKey is the key a Computed tracks and triggers on itself.
const computedValueKey = "value"

// Computed is a lazily evaluated, memoized derivation.
//
// The getter runs on the first Value call and again only after one of its
// dependencies changed and Value is called again. A change does not recompute
// eagerly: it marks the value dirty and notifies effects that read Value.
type Computed[T any] struct {
	rt     *Runtime
	effect *Effect
	value  T
	dirty  bool
}

// NewComputed creates a derived value over getter.
//
// Example:
//
//	full := reactive.NewComputed(rt, func() string {
//	    return user.Get("first").(string) + " " + user.Get("last").(string)
//	})
func NewComputed[T any](rt *Runtime, getter func() T) *Computed[T] {
	c := &Computed[T]{rt: rt, dirty: true}
	c.effect = rt.Effect(
		func() any {
			c.value = getter()
			return nil
		},
		Lazy(),
		WithScheduler(func(*Effect) {
			if c.dirty {
				return
			}
			c.dirty = true
			rt.trigger(c, computedValueKey, OpSet, nil)
		}),
	)
	return c
}

// Value returns the current value, recomputing it if dirty. Reading Value
// inside an effect makes that effect depend on the computed.
func (c *Computed[T]) Value() T {
	if c.dirty {
		c.effect.Run()
		c.dirty = false
	}
	c.rt.track(c, computedValueKey)
	return c.value
}

// Dirty reports whether the next Value call will recompute.
func (c *Computed[T]) Dirty() bool {
	return c.dirty
}

// Stop detaches the computed from its dependencies. Value keeps returning the
// last computed value.
func (c *Computed[T]) Stop() {
	c.effect.Stop()
	c.dirty = false
}

func (c *Computed[T]) weakRef() any { return weak.Make(c) }

func (c *Computed[T]) onCollect(fn func(any), ref any) { runtime.AddCleanup(c, fn, ref) }
