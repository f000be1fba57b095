package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/rdom/pkg/dom"
	"github.com/vango-dev/rdom/pkg/reactive"
	"github.com/vango-dev/rdom/pkg/vdom"
)

// Harness mounts trees into an in-memory document through a recorder.
type Harness struct {
	Doc      *dom.Document
	Recorder *dom.Recorder
	Renderer *vdom.Renderer
}

// New creates a harness. Options are passed to the renderer.
func New(opts ...vdom.RendererOption) *Harness {
	doc := dom.New()
	rec := dom.NewRecorder(doc)
	return &Harness{
		Doc:      doc,
		Recorder: rec,
		Renderer: vdom.NewRenderer(rec, opts...),
	}
}

// Runtime returns the reactive runtime components are created in.
func (h *Harness) Runtime() *reactive.Runtime {
	return h.Renderer.Runtime()
}

// Render renders node into the document root and drains queued work.
func (h *Harness) Render(node *vdom.VNode) {
	h.Renderer.Render(node, h.Doc.Root())
	h.Flush()
}

// Flush drains the microtask queue, running queued component updates and
// post-flush watchers. It returns the number of tasks run.
func (h *Harness) Flush() int {
	return h.Renderer.Runtime().Microtasks().Drain()
}

// Reset clears the recorded operations.
func (h *Harness) Reset() {
	h.Recorder.Reset()
}

// HTML returns the document's current HTML.
func (h *Harness) HTML() string {
	return h.Doc.HTML()
}

// RenderToString mounts node into a fresh document and returns its HTML.
//
// Example:
//
//	html := vtest.RenderToString(vdom.P("hello"))
//	if !strings.Contains(html, "hello") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	h := New()
	h.Render(node)
	return h.HTML()
}

// ExpectHTML asserts that the harness document serializes to want.
func ExpectHTML(t *testing.T, h *Harness, want string) {
	t.Helper()
	if got := h.HTML(); got != want {
		t.Errorf("HTML mismatch\n got: %s\nwant: %s", got, want)
	}
}

// ExpectOps asserts that exactly n operations of kind were recorded.
func ExpectOps(t *testing.T, h *Harness, kind dom.OpKind, n int) {
	t.Helper()
	if got := h.Recorder.Count(kind); got != n {
		t.Errorf("expected %d %s ops, got %d:\n%s", n, kind, got, strings.Join(h.Recorder.Strings(), "\n"))
	}
}

// ExpectNoOps asserts that nothing was recorded.
func ExpectNoOps(t *testing.T, h *Harness) {
	t.Helper()
	if ops := h.Recorder.Strings(); len(ops) != 0 {
		t.Errorf("expected no ops, got:\n%s", strings.Join(ops, "\n"))
	}
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, view(), "Welcome Admin")
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// Keyed builds a keyed list: one li per key with the key as its text.
func Keyed(tag string, keys ...int) *vdom.VNode {
	children := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		children[i] = vdom.Li(vdom.Key(k), vdom.Content(vdom.PropToString(k)))
	}
	return vdom.H(tag, children)
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
