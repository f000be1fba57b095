// Package reactive provides the dependency-tracking runtime for rdom.
//
// Go has no transparent property interception, so reactive data is modeled as
// explicit targets (*Object, *Array) read and written through typed proxies
// (*ObjectProxy, *ArrayProxy). Reading through a proxy while an effect runs
// records a dependency edge from (target, key) to that effect; writing through
// a proxy re-runs exactly the effects that read the affected keys.
//
// # Runtime
//
// All tracking state lives in a *Runtime, never in package globals. Several
// runtimes may coexist in one process; each one is single-threaded.
//
//	rt := reactive.New()
//	state := rt.Reactive(reactive.NewObject().Put("count", 0))
//
//	rt.Effect(func() any {
//	    fmt.Println("count is", state.Get("count"))
//	    return nil
//	})
//
//	state.Set("count", 1) // prints "count is 1"
//
// # Variants
//
// Reactive, ShallowReactive, Readonly and ShallowReadonly (and their Array
// counterparts) return proxies built by one implementation parametrized by
// {shallow, readonly}. Every variant is memoized per target and runtime, so
// wrapping the same target twice yields the same proxy.
//
// # Derived Values
//
// Computed values are lazy and memoized:
//
//	double := reactive.NewComputed(rt, func() int {
//	    return state.Get("count").(int) * 2
//	})
//	double.Value()
//
// Watch observes a getter or a whole reactive structure and invokes a callback
// with the old and new values, optionally deferring it to the runtime's
// microtask queue with FlushPost.
//
// # Memory
//
// The dependency store refers to targets through weak pointers and drops a
// target's edges when the target is garbage collected. Proxies are cached on
// the target itself, so a proxy lives exactly as long as its target.
package reactive
