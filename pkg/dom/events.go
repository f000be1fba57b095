package dom

import "fmt"

// Event is passed to listeners by Dispatch.
type Event struct {
	Type    string
	Target  *Node
	Current *Node
	Payload any

	at      uint64
	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// invoker is the stable listener bound to a node. Rebinding a handler swaps
// value instead of replacing the listener.
type invoker struct {
	value    any
	attached uint64
}

func (d *Document) tick() uint64 {
	d.clock++
	return d.clock
}

func (d *Document) patchListener(n *Node, event string, handler any) {
	inv := n.listeners[event]
	switch {
	case handler == nil:
		delete(n.listeners, event)
	case inv != nil:
		inv.value = handler
	default:
		if n.listeners == nil {
			n.listeners = make(map[string]*invoker)
		}
		n.listeners[event] = &invoker{value: handler, attached: d.tick()}
	}
}

// HasListener reports whether n has a listener for event.
func (n *Node) HasListener(event string) bool {
	_, ok := n.listeners[event]
	return ok
}

// Dispatch fires event at n and bubbles it through n's ancestors. Listeners
// bound after the event started are skipped, so a handler attached while the
// event bubbles does not see that same event. It returns the number of
// handlers invoked.
func (n *Node) Dispatch(event string, payload any) int {
	e := &Event{Type: event, Target: n, Payload: payload}
	if n.doc != nil {
		e.at = n.doc.tick()
	}

	called := 0
	for cur := n; cur != nil && !e.stopped; cur = cur.parent {
		inv := cur.listeners[event]
		if inv == nil || inv.attached > e.at {
			continue
		}
		e.Current = cur
		called += invoke(inv.value, e)
	}
	return called
}

func invoke(handler any, e *Event) int {
	switch fn := handler.(type) {
	case func():
		fn()
	case func(any):
		fn(e)
	case func(*Event):
		fn(e)
	case []any:
		n := 0
		for _, h := range fn {
			n += invoke(h, e)
		}
		return n
	default:
		return 0
	}
	return 1
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
