package reactive

import "reflect"

// OnInvalidate registers a callback that runs before the watch callback's
// next invocation. Use it to discard results of work started by a run that
// has since gone stale.
type OnInvalidate func(fn func())

// WatchCallback receives the previous and current source values.
type WatchCallback func(oldValue, newValue any, onInvalidate OnInvalidate)

type flushMode uint8

const (
	flushSync flushMode = iota
	flushPost
)

type watchOptions struct {
	immediate bool
	flush     flushMode
}

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

// Immediate runs the callback once during Watch. On that first call oldValue
// and newValue are both the initial value.
func Immediate() WatchOption {
	return func(o *watchOptions) {
		o.immediate = true
	}
}

// FlushPost defers each callback invocation to the runtime's microtask queue.
func FlushPost() WatchOption {
	return func(o *watchOptions) {
		o.flush = flushPost
	}
}

// FlushSync invokes the callback synchronously from the triggering write.
// This is the default.
func FlushSync() WatchOption {
	return func(o *watchOptions) {
		o.flush = flushSync
	}
}

// Watch observes source and calls cb when it changes. source is either a
// getter (any func taking no arguments and returning one value) or a target
// or proxy, which is read deeply so that any nested mutation is observed. The
// returned function stops watching.
func (rt *Runtime) Watch(source any, cb WatchCallback, opts ...WatchOption) (stop func()) {
	var o watchOptions
	for _, opt := range opts {
		opt(&o)
	}

	var getter func() any
	switch src := source.(type) {
	case func() any:
		getter = src
	default:
		if fv := reflect.ValueOf(src); fv.Kind() == reflect.Func {
			getter = funcGetter(fv)
			if getter == nil {
				rt.logger.Warn("reactive: watch source func must take no arguments and return one value",
					"type", fv.Type().String())
				return func() {}
			}
			break
		}
		wrapped := rt.wrap(src, variant{})
		getter = func() any {
			traverse(wrapped, make(map[any]struct{}))
			return wrapped
		}
	}

	var cleanup func()
	onInvalidate := func(fn func()) {
		cleanup = fn
	}

	var (
		oldValue any
		effect   *Effect
	)
	job := func() {
		if effect.Stopped() {
			return
		}
		newValue := effect.Run()
		if cleanup != nil {
			fn := cleanup
			cleanup = nil
			fn()
		}
		cb(oldValue, newValue, onInvalidate)
		oldValue = newValue
	}

	effect = rt.Effect(
		getter,
		Lazy(),
		WithScheduler(func(*Effect) {
			if o.flush == flushPost {
				rt.micro.Queue(job)
				return
			}
			job()
		}),
	)

	oldValue = effect.Run()
	if o.immediate {
		cb(oldValue, oldValue, onInvalidate)
	}

	return effect.Stop
}

// funcGetter adapts a typed getter such as func() int. It returns nil when
// fv is not a niladic single-result func.
func funcGetter(fv reflect.Value) func() any {
	ft := fv.Type()
	if fv.IsNil() || ft.NumIn() != 0 || ft.NumOut() != 1 {
		return nil
	}
	return func() any {
		return fv.Call(nil)[0].Interface()
	}
}

// traverse reads every key reachable from v so the running effect depends on
// all of them.
func traverse(v any, seen map[any]struct{}) {
	switch p := v.(type) {
	case *ObjectProxy:
		if _, ok := seen[p.target]; ok {
			return
		}
		seen[p.target] = struct{}{}
		p.Range(func(_ string, value any) bool {
			traverse(value, seen)
			return true
		})
	case *ArrayProxy:
		if _, ok := seen[p.target]; ok {
			return
		}
		seen[p.target] = struct{}{}
		p.Range(func(_ int, value any) bool {
			traverse(value, seen)
			return true
		})
	}
}
