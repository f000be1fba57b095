// Package vtest provides testing helpers for rdom trees and components.
//
// The vtest package reduces boilerplate when testing reconciliation by
// wiring an in-memory document, an operation recorder and a renderer
// together, and by providing render assertions.
//
// # Quick Start
//
//	func TestTodoList(t *testing.T) {
//	    h := vtest.New()
//	    h.Render(vdom.Ul(vdom.Li(vdom.Key(1), "a")))
//	    h.Reset()
//
//	    h.Render(vdom.Ul(vdom.Li(vdom.Key(1), "a"), vdom.Li(vdom.Key(2), "b")))
//	    vtest.ExpectOps(t, h, dom.OpInsert, 1)
//	    vtest.ExpectHTML(t, h, "<ul><li>a</li><li>b</li></ul>")
//	}
//
// # Components
//
// Component updates are queued. Flush drains the harness's microtask queue
// so queued re-renders are applied before asserting:
//
//	state.Set("count", 2)
//	h.Flush()
//
// # Render Assertions
//
// Assert on rendered HTML output of a standalone tree:
//
//	vtest.ExpectContains(t, node, "Welcome")
//	vtest.ExpectNotContains(t, node, "Login")
package vtest
