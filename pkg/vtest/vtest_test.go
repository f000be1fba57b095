package vtest

import (
	"testing"

	"github.com/vango-dev/rdom/pkg/dom"
	"github.com/vango-dev/rdom/pkg/vdom"
)

func TestRenderToString(t *testing.T) {
	html := RenderToString(vdom.Div(vdom.Class("card"), vdom.P("hi")))
	if html != `<div class="card"><p>hi</p></div>` {
		t.Errorf("RenderToString() = %q", html)
	}
}

func TestExpectHelpers(t *testing.T) {
	node := vdom.Div(vdom.ID("main"), vdom.Button("Go"))
	ExpectContains(t, node, "Go")
	ExpectNotContains(t, node, "Stop")
	ExpectElement(t, node, "button")
	ExpectAttribute(t, node, "id", "main")
}

func TestHarnessRecordsOps(t *testing.T) {
	h := New()
	h.Render(Keyed("ul", 1, 2))
	ExpectHTML(t, h, "<ul><li>1</li><li>2</li></ul>")
	ExpectOps(t, h, dom.OpCreateElement, 3)

	h.Reset()
	h.Render(Keyed("ul", 1, 2))
	ExpectNoOps(t, h)
}
