package vdom

import (
	"sort"

	"github.com/vango-dev/rdom/pkg/reactive"
)

// RenderFunc produces a component's subtree.
type RenderFunc func(inst *Instance) *VNode

// ComponentDef describes a component. Nodes referring to the same
// *ComponentDef are patched into each other; different definitions replace.
type ComponentDef struct {
	// Name identifies the component in logs.
	Name string

	// Props lists the declared prop names. Other node props, except event
	// handlers, become attrs.
	Props []string

	// Data returns the initial state, exposed as a deep reactive object.
	Data func() map[string]any

	// Setup runs once per instance with the shallow reactive props. A
	// non-nil result replaces Render.
	Setup func(props *reactive.ObjectProxy, ctx *SetupContext) RenderFunc

	// Render produces the subtree. It runs inside the instance's render
	// effect, so every reactive read re-renders on change.
	Render RenderFunc

	BeforeCreate func()
	Created      func(inst *Instance)
	BeforeMount  func(inst *Instance)
	Mounted      func(inst *Instance)
	BeforeUpdate func(inst *Instance)
	Updated      func(inst *Instance)
	Unmounted    func(inst *Instance)
}

// Instance is a mounted component.
type Instance struct {
	def      *ComponentDef
	renderer *Renderer

	state      *reactive.ObjectProxy
	props      *reactive.ObjectProxy
	attrs      map[string]any
	slots      []*VNode
	setupState map[string]any

	render  RenderFunc
	effect  *reactive.Effect
	subTree *VNode

	container Handle
	anchor    Handle

	isMounted    bool
	mountedHooks []func()
}

// Name returns the component's name.
func (i *Instance) Name() string { return i.def.Name }

// State returns the reactive state built from Data, or nil.
func (i *Instance) State() *reactive.ObjectProxy { return i.state }

// Props returns the shallow reactive props.
func (i *Instance) Props() *reactive.ObjectProxy { return i.props }

// Attrs returns the node props that are neither declared props nor handlers.
func (i *Instance) Attrs() map[string]any { return i.attrs }

// Slots returns the component node's children.
func (i *Instance) Slots() []*VNode { return i.slots }

// SubTree returns the last rendered subtree.
func (i *Instance) SubTree() *VNode { return i.subTree }

// IsMounted reports whether the first render has been mounted.
func (i *Instance) IsMounted() bool { return i.isMounted }

// Get resolves key against state, then props, then setup state.
func (i *Instance) Get(key string) any {
	if i.state != nil && i.state.Has(key) {
		return i.state.Get(key)
	}
	if i.props.Has(key) {
		return i.props.Get(key)
	}
	if v, ok := i.setupState[key]; ok {
		return v
	}
	i.renderer.logger.Warn("vdom: unknown component key", "component", i.def.Name, "key", key)
	return nil
}

// Set writes key to the first of state, props or setup state that holds it.
// It reports false when none does.
func (i *Instance) Set(key string, value any) bool {
	switch {
	case i.state != nil && i.state.Raw().Has(key):
		return i.state.Set(key, value)
	case i.props.Raw().Has(key):
		return i.props.Set(key, value)
	}
	if _, ok := i.setupState[key]; ok {
		i.setupState[key] = value
		return true
	}
	i.renderer.logger.Warn("vdom: unknown component key", "component", i.def.Name, "key", key)
	return false
}

// Emit calls the on<Event> handler passed in the component's props.
// Handlers may be func(), func(any) or func(...any).
func (i *Instance) Emit(event string, payload ...any) {
	name := HandlerKey(event)
	handler, ok := i.props.Raw().Lookup(name)
	if !ok || handler == nil {
		i.renderer.logger.Warn("vdom: emitted event has no handler", "component", i.def.Name, "event", name)
		return
	}
	switch fn := handler.(type) {
	case func():
		fn()
	case func(any):
		var arg any
		if len(payload) > 0 {
			arg = payload[0]
		}
		fn(arg)
	case func(...any):
		fn(payload...)
	default:
		i.renderer.logger.Warn("vdom: emitted event handler has unsupported type", "component", i.def.Name, "event", name)
	}
}

// SetupContext is the second argument to ComponentDef.Setup.
type SetupContext struct {
	inst *Instance
}

// Attrs returns the non-prop attributes passed to the component.
func (c *SetupContext) Attrs() map[string]any { return c.inst.attrs }

// Slots returns the component node's children.
func (c *SetupContext) Slots() []*VNode { return c.inst.slots }

// Runtime returns the reactive runtime the component lives in.
func (c *SetupContext) Runtime() *reactive.Runtime { return c.inst.renderer.rt }

// Emit calls the matching on<Event> prop handler.
func (c *SetupContext) Emit(event string, payload ...any) { c.inst.Emit(event, payload...) }

// OnMounted registers fn to run after the first render is mounted.
func (c *SetupContext) OnMounted(fn func()) {
	if fn != nil {
		c.inst.mountedHooks = append(c.inst.mountedHooks, fn)
	}
}

// Expose makes state readable through Instance.Get.
func (c *SetupContext) Expose(state map[string]any) {
	if c.inst.setupState == nil {
		c.inst.setupState = make(map[string]any, len(state))
	}
	for k, v := range state {
		c.inst.setupState[k] = v
	}
}

// resolveProps splits node props into declared props (plus handlers) and
// attrs.
func resolveProps(declared []string, data Props) (props, attrs map[string]any) {
	props = make(map[string]any)
	attrs = make(map[string]any)
	for k, v := range data {
		if k == "key" {
			continue
		}
		if IsEventHandler(k) || contains(declared, k) {
			props[k] = v
		} else {
			attrs[k] = v
		}
	}
	return props, attrs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func objectFrom(m map[string]any) *reactive.Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	o := reactive.NewObject()
	for _, k := range keys {
		o.Put(k, m[k])
	}
	return o
}

func (r *Renderer) mountComponent(v *VNode, container, anchor Handle) {
	def := v.Comp
	if def.BeforeCreate != nil {
		def.BeforeCreate()
	}

	inst := &Instance{
		def:       def,
		renderer:  r,
		slots:     v.Children,
		container: container,
		anchor:    anchor,
	}
	if def.Data != nil {
		inst.state = r.rt.Reactive(reactive.FromMap(def.Data()))
	}
	props, attrs := resolveProps(def.Props, v.Props)
	inst.props = r.rt.ShallowReactive(objectFrom(props))
	inst.attrs = attrs

	render := def.Render
	if def.Setup != nil {
		ctx := &SetupContext{inst: inst}
		var fn RenderFunc
		r.rt.Untracked(func() {
			fn = def.Setup(inst.props, ctx)
		})
		if fn != nil {
			if render != nil {
				r.logger.Warn("vdom: setup returned a render function, Render ignored", "component", def.Name)
			}
			render = fn
		}
	}
	if render == nil {
		render = func(*Instance) *VNode { return Comment(def.Name) }
	}
	inst.render = render
	v.component = inst

	if def.Created != nil {
		def.Created(inst)
	}

	inst.effect = r.rt.Effect(func() any {
		r.renderComponent(inst)
		return nil
	}, reactive.Queued(r.queue))
}

// renderComponent is the body of an instance's render effect.
func (r *Renderer) renderComponent(inst *Instance) {
	r.begin()
	defer r.end()

	def := inst.def
	sub := inst.render(inst)
	if sub == nil {
		// An empty render still occupies a node so the component keeps a
		// position among its siblings.
		sub = Comment("")
	}

	if !inst.isMounted {
		if def.BeforeMount != nil {
			def.BeforeMount(inst)
		}
		r.patch(nil, sub, inst.container, inst.anchor)
		inst.subTree = sub
		inst.isMounted = true
		if def.Mounted != nil {
			def.Mounted(inst)
		}
		for _, hook := range inst.mountedHooks {
			hook()
		}
		return
	}

	if def.BeforeUpdate != nil {
		def.BeforeUpdate(inst)
	}
	r.patch(inst.subTree, sub, inst.container, nil)
	inst.subTree = sub
	if def.Updated != nil {
		def.Updated(inst)
	}
}

func (r *Renderer) patchComponent(n1, n2 *VNode) {
	inst := n1.component
	n2.component = inst
	if inst == nil {
		return
	}
	inst.slots = n2.Children

	if !propsChanged(n1.Props, n2.Props) {
		return
	}
	next, attrs := resolveProps(inst.def.Props, n2.Props)
	keys := make([]string, 0, len(next))
	for k := range next {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		inst.props.Set(k, next[k])
	}
	for _, k := range inst.props.Raw().Keys() {
		if _, ok := next[k]; !ok {
			inst.props.Delete(k)
		}
	}
	inst.attrs = attrs
}

func (r *Renderer) unmountComponent(v *VNode) {
	if inst := v.component; inst != nil {
		inst.stop(true)
	}
}

// stop ends the instance's render effect and tears down its subtree. With
// detach false the host nodes are left to an ancestor's removal.
func (i *Instance) stop(detach bool) {
	if i.effect != nil {
		i.effect.Stop()
	}
	if i.subTree != nil {
		if detach {
			i.renderer.unmount(i.subTree)
		} else {
			i.renderer.release(i.subTree)
		}
	}
	if i.def.Unmounted != nil {
		i.def.Unmounted(i)
	}
}
