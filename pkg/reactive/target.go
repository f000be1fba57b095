package reactive

import (
	"fmt"
	"runtime"
	"sort"
	"weak"
)

// target is anything the dependency store can key edges by.
type target interface {
	// weakRef returns a comparable weak identity for the target.
	weakRef() any

	// onCollect arranges for fn(ref) to run after the target is collected.
	onCollect(fn func(any), ref any)
}

// variant selects one of the four proxy flavors.
type variant struct {
	shallow  bool
	readonly bool
}

// proxyKey identifies a cached proxy: one per runtime and variant.
type proxyKey struct {
	rt *Runtime
	v  variant
}

// proxyCache stores the canonical proxies of a target. Keeping the cache on
// the target ties each proxy's lifetime to its target's.
type proxyCache map[proxyKey]any

// Object is a plain, insertion-ordered string-keyed record. Its methods read
// and write without tracking; use a proxy for reactive access.
type Object struct {
	keys    []string
	values  map[string]any
	proxies proxyCache
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Put sets key without tracking and returns o for chaining.
func (o *Object) Put(key string, value any) *Object {
	o.set(key, value)
	return o
}

// Lookup returns the raw value stored under key.
func (o *Object) Lookup(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

func (o *Object) set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *Object) remove(key string) bool {
	if _, ok := o.values[key]; !ok {
		return false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

func (o *Object) weakRef() any { return weak.Make(o) }

func (o *Object) onCollect(fn func(any), ref any) { runtime.AddCleanup(o, fn, ref) }

func (o *Object) cache() proxyCache {
	if o.proxies == nil {
		o.proxies = make(proxyCache)
	}
	return o.proxies
}

// String implements fmt.Stringer.
func (o *Object) String() string {
	return fmt.Sprintf("Object(%d keys)", len(o.keys))
}

// Array is a plain sequence. Its methods read and write without tracking;
// use a proxy for reactive access.
type Array struct {
	items   []any
	proxies proxyCache
}

// NewArray creates an array holding items.
func NewArray(items ...any) *Array {
	a := &Array{items: make([]any, len(items))}
	copy(a.items, items)
	return a
}

// At returns the raw element at i, or nil when out of range.
func (a *Array) At(i int) any {
	if i < 0 || i >= len(a.items) {
		return nil
	}
	return a.items[i]
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.items)
}

// Items returns a copy of the elements.
func (a *Array) Items() []any {
	out := make([]any, len(a.items))
	copy(out, a.items)
	return out
}

// setAt writes index i, growing the array with nils when i >= Len.
func (a *Array) setAt(i int, value any) {
	if i >= len(a.items) {
		a.resize(i + 1)
	}
	a.items[i] = value
}

func (a *Array) resize(n int) {
	switch {
	case n < len(a.items):
		clear(a.items[n:])
		a.items = a.items[:n]
	case n > len(a.items):
		a.items = append(a.items, make([]any, n-len(a.items))...)
	}
}

func (a *Array) weakRef() any { return weak.Make(a) }

func (a *Array) onCollect(fn func(any), ref any) { runtime.AddCleanup(a, fn, ref) }

func (a *Array) cache() proxyCache {
	if a.proxies == nil {
		a.proxies = make(proxyCache)
	}
	return a.proxies
}

// String implements fmt.Stringer.
func (a *Array) String() string {
	return fmt.Sprintf("Array(%d)", len(a.items))
}

// FromValue converts decoded data (map[string]any, []any, nested) into
// targets. Map keys are sorted to give a deterministic insertion order.
// Other values are returned unchanged.
func FromValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject()
		for _, k := range keys {
			o.set(k, FromValue(val[k]))
		}
		return o
	case []any:
		a := &Array{items: make([]any, len(val))}
		for i, item := range val {
			a.items[i] = FromValue(item)
		}
		return a
	default:
		return v
	}
}

// FromMap converts m into an *Object using FromValue.
func FromMap(m map[string]any) *Object {
	if m == nil {
		return NewObject()
	}
	return FromValue(m).(*Object)
}

// ToValue converts targets (and proxies) back into plain maps and slices.
func ToValue(v any) any {
	switch val := ToRaw(v).(type) {
	case *Object:
		out := make(map[string]any, len(val.keys))
		for _, k := range val.keys {
			out[k] = ToValue(val.values[k])
		}
		return out
	case *Array:
		out := make([]any, len(val.items))
		for i, item := range val.items {
			out[i] = ToValue(item)
		}
		return out
	default:
		return val
	}
}

func asTarget(v any) (target, bool) {
	switch t := ToRaw(v).(type) {
	case *Object:
		return t, true
	case *Array:
		return t, true
	}
	if t, ok := v.(target); ok {
		return t, true
	}
	return nil, false
}
