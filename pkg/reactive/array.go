package reactive

import "github.com/vango-dev/rdom/internal/errors"

// ArrayProxy is the tracked accessor layer over an *Array.
//
// Reads track the index key; Len and Range track the length pseudo key.
// The mutators Push, Pop, Shift, Unshift and Splice run with tracking paused:
// they read the length internally, and that read must not subscribe the
// effect that calls them.
type ArrayProxy struct {
	core
	target *Array
}

// Raw returns the underlying array.
func (p *ArrayProxy) Raw() *Array {
	return p.target
}

func (p *ArrayProxy) rawTarget() any { return p.target }

// At reads index i, tracking it.
func (p *ArrayProxy) At(i int) any {
	if !p.v.readonly {
		p.rt.track(p.target, i)
	}
	return p.wrapResult(p.target.At(i))
}

// Len tracks the length pseudo key and returns the length.
func (p *ArrayProxy) Len() int {
	if !p.v.readonly {
		p.rt.track(p.target, lengthKey)
	}
	return len(p.target.items)
}

// Range calls fn for each index and element, tracking the length and every
// index read. It stops when fn returns false.
func (p *ArrayProxy) Range(fn func(i int, value any) bool) {
	n := p.Len()
	for i := 0; i < n && i < len(p.target.items); i++ {
		if !fn(i, p.At(i)) {
			return
		}
	}
}

// Items returns all elements read through the proxy.
func (p *ArrayProxy) Items() []any {
	var out []any
	p.Range(func(_ int, v any) bool {
		out = append(out, v)
		return true
	})
	return out
}

// SetAt writes index i. An index within bounds is a SET; an index at or past
// the length is an ADD that grows the array, padding with nil.
func (p *ArrayProxy) SetAt(i int, value any) bool {
	if p.v.readonly {
		p.warnReadonly(errors.CodeReadonlySet, i)
		return true
	}
	if i < 0 {
		return false
	}

	value = ToRaw(value)
	op := OpSet
	if i >= len(p.target.items) {
		op = OpAdd
	}
	old := p.target.At(i)
	p.target.setAt(i, value)

	if op == OpAdd || hasChanged(old, value) {
		p.rt.trigger(p.target, i, op, value)
	}
	return true
}

// SetLen changes the length. Shrinking notifies readers of the removed
// indices as well as length readers.
func (p *ArrayProxy) SetLen(n int) bool {
	if p.v.readonly {
		p.warnReadonly(errors.CodeReadonlySet, "length")
		return true
	}
	if n < 0 {
		return false
	}
	if n == len(p.target.items) {
		return true
	}
	p.target.resize(n)
	p.rt.trigger(p.target, lengthKey, OpSet, n)
	return true
}

// Push appends values and returns the new length.
func (p *ArrayProxy) Push(values ...any) int {
	if p.v.readonly {
		p.warnReadonly(errors.CodeReadonlySet, "push")
		return len(p.target.items)
	}
	var n int
	p.rt.Untracked(func() {
		n = len(p.target.items)
		for i, v := range values {
			p.SetAt(n+i, v)
		}
		n += len(values)
		p.SetLen(n)
	})
	return n
}

// Pop removes and returns the last element, or nil when empty.
func (p *ArrayProxy) Pop() any {
	if p.v.readonly {
		p.warnReadonly(errors.CodeReadonlyDelete, "pop")
		return nil
	}
	var last any
	p.rt.Untracked(func() {
		n := len(p.target.items)
		if n == 0 {
			return
		}
		last = p.target.items[n-1]
		p.SetLen(n - 1)
	})
	return p.wrapResult(last)
}

// Shift removes and returns the first element, or nil when empty.
func (p *ArrayProxy) Shift() any {
	if p.v.readonly {
		p.warnReadonly(errors.CodeReadonlyDelete, "shift")
		return nil
	}
	var first any
	p.rt.Untracked(func() {
		n := len(p.target.items)
		if n == 0 {
			return
		}
		first = p.target.items[0]
		for k := 1; k < n; k++ {
			p.SetAt(k-1, p.target.items[k])
		}
		p.SetLen(n - 1)
	})
	return p.wrapResult(first)
}

// Unshift prepends values and returns the new length.
func (p *ArrayProxy) Unshift(values ...any) int {
	if p.v.readonly {
		p.warnReadonly(errors.CodeReadonlySet, "unshift")
		return len(p.target.items)
	}
	var total int
	p.rt.Untracked(func() {
		n, m := len(p.target.items), len(values)
		for k := n - 1; k >= 0; k-- {
			p.SetAt(k+m, p.target.items[k])
		}
		for j, v := range values {
			p.SetAt(j, v)
		}
		total = n + m
		p.SetLen(total)
	})
	return total
}

// Splice removes deleteCount elements at start, inserts items in their place
// and returns the removed elements. A negative start counts from the end.
func (p *ArrayProxy) Splice(start, deleteCount int, items ...any) []any {
	if p.v.readonly {
		p.warnReadonly(errors.CodeReadonlySet, "splice")
		return nil
	}
	var removed []any
	p.rt.Untracked(func() {
		n := len(p.target.items)
		if start < 0 {
			start = max(n+start, 0)
		}
		start = min(start, n)
		deleteCount = min(max(deleteCount, 0), n-start)

		removed = make([]any, deleteCount)
		copy(removed, p.target.items[start:start+deleteCount])

		next := make([]any, 0, n-deleteCount+len(items))
		next = append(next, p.target.items[:start]...)
		for _, it := range items {
			next = append(next, ToRaw(it))
		}
		next = append(next, p.target.items[start+deleteCount:]...)

		for i := start; i < len(next); i++ {
			p.SetAt(i, next[i])
		}
		p.SetLen(len(next))
	})
	for i, v := range removed {
		removed[i] = p.wrapResult(v)
	}
	return removed
}

// Includes reports whether value is an element. NaN matches NaN. The search
// compares against the wrapped elements first and, on a miss, against the
// raw elements, so both a proxy and its raw target are found.
func (p *ArrayProxy) Includes(value any) bool {
	n := p.Len()
	for i := 0; i < n; i++ {
		if sameValueZero(p.At(i), value) {
			return true
		}
	}
	for _, item := range p.target.items {
		if sameValueZero(item, value) {
			return true
		}
	}
	return false
}

// IndexOf returns the first index holding value, or -1. Like Includes it
// retries against the raw elements on a miss.
func (p *ArrayProxy) IndexOf(value any) int {
	n := p.Len()
	for i := 0; i < n; i++ {
		if strictEqual(p.At(i), value) {
			return i
		}
	}
	for i, item := range p.target.items {
		if strictEqual(item, value) {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the last index holding value, or -1.
func (p *ArrayProxy) LastIndexOf(value any) int {
	n := p.Len()
	for i := n - 1; i >= 0; i-- {
		if strictEqual(p.At(i), value) {
			return i
		}
	}
	for i := len(p.target.items) - 1; i >= 0; i-- {
		if strictEqual(p.target.items[i], value) {
			return i
		}
	}
	return -1
}

// Object returns the element at i as an object proxy, or nil.
func (p *ArrayProxy) Object(i int) *ObjectProxy {
	v, _ := p.At(i).(*ObjectProxy)
	return v
}
