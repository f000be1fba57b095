package vdom_test

import (
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/rdom/pkg/dom"
	. "github.com/vango-dev/rdom/pkg/vdom"
	"github.com/vango-dev/rdom/pkg/vtest"
)

func keyed(keys ...int) *VNode {
	return vtest.Keyed("ul", keys...)
}

func TestKeyedReorderMovesOutsideLIS(t *testing.T) {
	h := vtest.New()
	h.Render(keyed(1, 2, 3, 4))
	h.Reset()

	h.Render(keyed(2, 4, 1, 3))

	vtest.ExpectHTML(t, h, "<ul><li>2</li><li>4</li><li>1</li><li>3</li></ul>")
	vtest.ExpectOps(t, h, dom.OpMove, 2)
	vtest.ExpectOps(t, h, dom.OpCreateElement, 0)
	vtest.ExpectOps(t, h, dom.OpRemove, 0)
	vtest.ExpectOps(t, h, dom.OpInsert, 0)
}

func TestKeyedAppend(t *testing.T) {
	h := vtest.New()
	h.Render(keyed(1, 2, 3))
	h.Reset()

	h.Render(keyed(1, 2, 3, 4))

	vtest.ExpectHTML(t, h, "<ul><li>1</li><li>2</li><li>3</li><li>4</li></ul>")
	vtest.ExpectOps(t, h, dom.OpCreateElement, 1)
	vtest.ExpectOps(t, h, dom.OpInsert, 1)
	vtest.ExpectOps(t, h, dom.OpMove, 0)
}

func TestKeyedPrependUsesAnchor(t *testing.T) {
	h := vtest.New()
	h.Render(keyed(2, 3))
	h.Reset()

	h.Render(keyed(0, 1, 2, 3))

	vtest.ExpectHTML(t, h, "<ul><li>0</li><li>1</li><li>2</li><li>3</li></ul>")
	vtest.ExpectOps(t, h, dom.OpInsert, 2)
	for _, op := range h.Recorder.Ops() {
		if op.Kind == dom.OpInsert && op.Anchor == 0 {
			t.Errorf("prepended node inserted without anchor: %s", op)
		}
	}
}

func TestKeyedRemoveMiddle(t *testing.T) {
	h := vtest.New()
	h.Render(keyed(1, 2, 3, 4))
	h.Reset()

	h.Render(keyed(1, 3))

	vtest.ExpectHTML(t, h, "<ul><li>1</li><li>3</li></ul>")
	vtest.ExpectOps(t, h, dom.OpRemove, 2)
	vtest.ExpectOps(t, h, dom.OpMove, 0)
	vtest.ExpectOps(t, h, dom.OpCreateElement, 0)
}

func TestKeyedMixedMountMoveUnmount(t *testing.T) {
	h := vtest.New()
	h.Render(keyed(1, 2, 3, 4, 5))
	h.Reset()

	h.Render(keyed(1, 4, 6, 2, 5))

	vtest.ExpectHTML(t, h, "<ul><li>1</li><li>4</li><li>6</li><li>2</li><li>5</li></ul>")
	vtest.ExpectOps(t, h, dom.OpCreateElement, 1)
	vtest.ExpectOps(t, h, dom.OpRemove, 1)
	vtest.ExpectOps(t, h, dom.OpMove, 1)
}

func TestKeyedReverse(t *testing.T) {
	h := vtest.New()
	h.Render(keyed(1, 2, 3, 4, 5))
	h.Reset()

	h.Render(keyed(5, 4, 3, 2, 1))

	vtest.ExpectHTML(t, h, "<ul><li>5</li><li>4</li><li>3</li><li>2</li><li>1</li></ul>")
	vtest.ExpectOps(t, h, dom.OpMove, 4)
}

func TestKeyedPatchReusesNodes(t *testing.T) {
	h := vtest.New()
	h.Render(Ul(Li(Key("a"), Class("x"), "one")))
	h.Reset()

	h.Render(Ul(Li(Key("a"), Class("y"), "one")))

	vtest.ExpectHTML(t, h, `<ul><li class="y">one</li></ul>`)
	got := strings.Join(h.Recorder.Strings(), "\n")
	if !strings.Contains(got, `class="y"`) || h.Recorder.Count(dom.OpPatchProp) != 1 {
		t.Errorf("expected a single class patch, got:\n%s", got)
	}
	vtest.ExpectOps(t, h, dom.OpCreateElement, 0)
}

func TestUnkeyedPatchedByPosition(t *testing.T) {
	h := vtest.New()
	h.Render(Ul(Li("a"), Li("b")))
	h.Reset()

	h.Render(Ul(Li("a"), Li("c"), Li("d")))

	vtest.ExpectHTML(t, h, "<ul><li>a</li><li>c</li><li>d</li></ul>")
	vtest.ExpectOps(t, h, dom.OpSetText, 1)
	vtest.ExpectOps(t, h, dom.OpCreateElement, 1)
	vtest.ExpectOps(t, h, dom.OpRemove, 0)
}

func TestChildShapeTransitions(t *testing.T) {
	h := vtest.New()
	h.Render(Div(Content("text")))
	vtest.ExpectHTML(t, h, "<div>text</div>")

	h.Render(Div(Span("a"), Span("b")))
	vtest.ExpectHTML(t, h, "<div><span>a</span><span>b</span></div>")

	h.Render(Div(Content("back")))
	vtest.ExpectHTML(t, h, "<div>back</div>")

	h.Render(Div())
	vtest.ExpectHTML(t, h, "<div></div>")

	h.Render(Div(Span("again")))
	vtest.ExpectHTML(t, h, "<div><span>again</span></div>")

	h.Render(Div())
	vtest.ExpectHTML(t, h, "<div></div>")
}

func TestTypeChangeReplacesInPlace(t *testing.T) {
	h := vtest.New()
	h.Render(Div(P(Key(1), "x"), Span(Key(2), "tail")))
	h.Reset()

	h.Render(Div(Section(Key(1), "y"), Span(Key(2), "tail")))

	vtest.ExpectHTML(t, h, "<div><section>y</section><span>tail</span></div>")
	vtest.ExpectOps(t, h, dom.OpRemove, 1)
	vtest.ExpectOps(t, h, dom.OpCreateElement, 1)
}

func TestFragmentChildrenStayBetweenAnchors(t *testing.T) {
	h := vtest.New()
	h.Render(Div(Fragment(Span("a")), P("end")))

	h.Render(Div(Fragment(Span("a"), Span("b")), P("end")))
	vtest.ExpectHTML(t, h, "<div><span>a</span><span>b</span><p>end</p></div>")

	h.Render(Div(Fragment(), P("end")))
	vtest.ExpectHTML(t, h, "<div><p>end</p></div>")
}

func TestKeyedFragmentsMove(t *testing.T) {
	frag := func(k string) *VNode {
		return Fragment(Key(k), Span(k+"1"), Span(k+"2"))
	}
	h := vtest.New()
	h.Render(Div(frag("a"), frag("b"), frag("c")))
	h.Render(Div(frag("c"), frag("a"), frag("b")))

	vtest.ExpectHTML(t, h, "<div><span>c1</span><span>c2</span><span>a1</span><span>a2</span><span>b1</span><span>b2</span></div>")
}

func TestRenderNilUnmounts(t *testing.T) {
	h := vtest.New()
	h.Render(keyed(1, 2))
	h.Reset()

	h.Renderer.Render(nil, h.Doc.Root())

	vtest.ExpectHTML(t, h, "")
	vtest.ExpectOps(t, h, dom.OpRemove, 1)
	if h.Renderer.Root(h.Doc.Root()) != nil {
		t.Error("root still recorded after unmount")
	}
}

func TestEventHandlerPropsUpdate(t *testing.T) {
	h := vtest.New()
	var got []string
	h.Render(Button(OnClick(func(any) { got = append(got, "first") }), "go"))
	h.Render(Button(OnClick(func(any) { got = append(got, "second") }), "go"))

	btn := h.Doc.Root().Find(func(n *dom.Node) bool { return n.Tag == "button" })
	if btn == nil {
		t.Fatal("button not rendered")
	}
	btn.Dispatch("click", nil)
	if len(got) != 1 || got[0] != "second" {
		t.Errorf("handler calls = %v, want [second]", got)
	}
}

type statsRecorder struct {
	stats []Stats
}

func (s *statsRecorder) Rendered(st Stats, _ time.Duration) {
	s.stats = append(s.stats, st)
}

func TestRendererHooksReportStats(t *testing.T) {
	hooks := &statsRecorder{}
	h := vtest.New(WithHooks(hooks))
	h.Render(keyed(1, 2, 3))
	h.Render(keyed(3, 2, 1, 4))

	if len(hooks.stats) != 2 {
		t.Fatalf("Rendered called %d times, want 2", len(hooks.stats))
	}
	first, second := hooks.stats[0], hooks.stats[1]
	if first.Mounted != 4 {
		t.Errorf("first render mounted %d, want 4", first.Mounted)
	}
	if second.Mounted != 1 || second.Moved != 2 || second.Unmounted != 0 {
		t.Errorf("second render stats = %+v", second)
	}
}

func TestPatchDirect(t *testing.T) {
	h := vtest.New()
	root := h.Doc.Root()
	old := keyed(1, 2)
	h.Renderer.Patch(nil, old, root, nil)
	next := keyed(2, 1)
	h.Renderer.Patch(old, next, root, nil)
	vtest.ExpectHTML(t, h, "<ul><li>2</li><li>1</li></ul>")

	h.Renderer.Patch(next, nil, root, nil)
	vtest.ExpectHTML(t, h, "")
}
