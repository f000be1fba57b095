package reactive

import "github.com/vango-dev/rdom/internal/errors"

// Proxy is implemented by *ObjectProxy and *ArrayProxy.
type Proxy interface {
	// Runtime returns the runtime the proxy tracks into.
	Runtime() *Runtime

	// IsReadonly reports whether writes through the proxy are rejected.
	IsReadonly() bool

	// IsShallow reports whether nested values are returned unwrapped.
	IsShallow() bool

	rawTarget() any
}

// ToRaw returns the target behind a proxy, or v itself.
func ToRaw(v any) any {
	if p, ok := v.(Proxy); ok {
		return p.rawTarget()
	}
	return v
}

// IsProxy reports whether v is a proxy of any variant.
func IsProxy(v any) bool {
	_, ok := v.(Proxy)
	return ok
}

// IsReactive reports whether v is a mutable proxy.
func IsReactive(v any) bool {
	p, ok := v.(Proxy)
	return ok && !p.IsReadonly()
}

// IsReadonly reports whether v is a readonly proxy.
func IsReadonly(v any) bool {
	p, ok := v.(Proxy)
	return ok && p.IsReadonly()
}

// core is the state shared by both proxy kinds.
type core struct {
	rt *Runtime
	v  variant
}

func (c core) Runtime() *Runtime { return c.rt }
func (c core) IsReadonly() bool  { return c.v.readonly }
func (c core) IsShallow() bool   { return c.v.shallow }

// wrapResult applies deep wrapping to a value read through the proxy.
func (c core) wrapResult(v any) any {
	if c.v.shallow {
		return v
	}
	return c.rt.wrap(v, variant{readonly: c.v.readonly})
}

func (c core) warnReadonly(code string, key any) {
	msg := "reactive: set on readonly target ignored"
	if code == errors.CodeReadonlyDelete {
		msg = "reactive: delete on readonly target ignored"
	}
	c.rt.logger.Warn(msg, "code", code, "key", key)
}

// wrap returns the canonical proxy of v for the variant, or v unchanged when
// it is not a target.
func (rt *Runtime) wrap(v any, vr variant) any {
	switch t := ToRaw(v).(type) {
	case *Object:
		return rt.objectProxy(t, vr)
	case *Array:
		return rt.arrayProxy(t, vr)
	default:
		return v
	}
}

func (rt *Runtime) objectProxy(o *Object, vr variant) *ObjectProxy {
	cache := o.cache()
	key := proxyKey{rt: rt, v: vr}
	if p, ok := cache[key]; ok {
		return p.(*ObjectProxy)
	}
	p := &ObjectProxy{core: core{rt: rt, v: vr}, target: o}
	cache[key] = p
	return p
}

func (rt *Runtime) arrayProxy(a *Array, vr variant) *ArrayProxy {
	cache := a.cache()
	key := proxyKey{rt: rt, v: vr}
	if p, ok := cache[key]; ok {
		return p.(*ArrayProxy)
	}
	p := &ArrayProxy{core: core{rt: rt, v: vr}, target: a}
	cache[key] = p
	return p
}

// Reactive returns the deep mutable proxy of o.
func (rt *Runtime) Reactive(o *Object) *ObjectProxy {
	return rt.objectProxy(o, variant{})
}

// ShallowReactive returns the shallow mutable proxy of o.
func (rt *Runtime) ShallowReactive(o *Object) *ObjectProxy {
	return rt.objectProxy(o, variant{shallow: true})
}

// Readonly returns the deep readonly proxy of o.
func (rt *Runtime) Readonly(o *Object) *ObjectProxy {
	return rt.objectProxy(o, variant{readonly: true})
}

// ShallowReadonly returns the shallow readonly proxy of o.
func (rt *Runtime) ShallowReadonly(o *Object) *ObjectProxy {
	return rt.objectProxy(o, variant{shallow: true, readonly: true})
}

// ReactiveArray returns the deep mutable proxy of a.
func (rt *Runtime) ReactiveArray(a *Array) *ArrayProxy {
	return rt.arrayProxy(a, variant{})
}

// ShallowReactiveArray returns the shallow mutable proxy of a.
func (rt *Runtime) ShallowReactiveArray(a *Array) *ArrayProxy {
	return rt.arrayProxy(a, variant{shallow: true})
}

// ReadonlyArray returns the deep readonly proxy of a.
func (rt *Runtime) ReadonlyArray(a *Array) *ArrayProxy {
	return rt.arrayProxy(a, variant{readonly: true})
}

// ShallowReadonlyArray returns the shallow readonly proxy of a.
func (rt *Runtime) ShallowReadonlyArray(a *Array) *ArrayProxy {
	return rt.arrayProxy(a, variant{shallow: true, readonly: true})
}

// Wrap returns the deep mutable proxy of an *Object or *Array (or of the
// target behind another proxy). Other values are returned unchanged.
func (rt *Runtime) Wrap(v any) any {
	return rt.wrap(v, variant{})
}

// ObjectProxy is the tracked accessor layer over an *Object.
type ObjectProxy struct {
	core
	target *Object
}

// Raw returns the underlying object.
func (p *ObjectProxy) Raw() *Object {
	return p.target
}

func (p *ObjectProxy) rawTarget() any { return p.target }

// Get reads key, tracking it. Composite values are returned wrapped unless
// the proxy is shallow.
func (p *ObjectProxy) Get(key string) any {
	if !p.v.readonly {
		p.rt.track(p.target, key)
	}
	return p.wrapResult(p.target.values[key])
}

// Lookup is Get that also reports presence.
func (p *ObjectProxy) Lookup(key string) (any, bool) {
	if !p.v.readonly {
		p.rt.track(p.target, key)
	}
	v, ok := p.target.values[key]
	return p.wrapResult(v), ok
}

// Set writes key. New keys trigger ADD; existing keys trigger SET when the
// value changed (two NaNs are unchanged). Proxies are stored as their raw
// target. Readonly proxies log a warning and ignore the write; Set still
// reports true.
func (p *ObjectProxy) Set(key string, value any) bool {
	if p.v.readonly {
		p.warnReadonly(errors.CodeReadonlySet, key)
		return true
	}

	value = ToRaw(value)
	old, had := p.target.values[key]
	op := OpSet
	if !had {
		op = OpAdd
	}
	p.target.set(key, value)

	if op == OpAdd || hasChanged(old, value) {
		p.rt.trigger(p.target, key, op, value)
	}
	return true
}

// Delete removes key and triggers DELETE if it existed.
func (p *ObjectProxy) Delete(key string) bool {
	if p.v.readonly {
		p.warnReadonly(errors.CodeReadonlyDelete, key)
		return true
	}
	if p.target.remove(key) {
		p.rt.trigger(p.target, key, OpDelete, nil)
	}
	return true
}

// Has tracks key and reports whether it is present.
func (p *ObjectProxy) Has(key string) bool {
	if !p.v.readonly {
		p.rt.track(p.target, key)
	}
	return p.target.Has(key)
}

// Keys tracks the iteration pseudo key and returns the keys in order.
func (p *ObjectProxy) Keys() []string {
	if !p.v.readonly {
		p.rt.track(p.target, iterateKey)
	}
	return p.target.Keys()
}

// Len tracks the iteration pseudo key and returns the key count.
func (p *ObjectProxy) Len() int {
	if !p.v.readonly {
		p.rt.track(p.target, iterateKey)
	}
	return p.target.Len()
}

// Range calls fn for each key and value, reading each through Get. It stops
// when fn returns false.
func (p *ObjectProxy) Range(fn func(key string, value any) bool) {
	for _, k := range p.Keys() {
		if !fn(k, p.Get(k)) {
			return
		}
	}
}

// Object returns the value at key as an object proxy, or nil.
func (p *ObjectProxy) Object(key string) *ObjectProxy {
	v, _ := p.Get(key).(*ObjectProxy)
	return v
}

// Array returns the value at key as an array proxy, or nil.
func (p *ObjectProxy) Array(key string) *ArrayProxy {
	v, _ := p.Get(key).(*ArrayProxy)
	return v
}
