package dom

import (
	"log/slog"
	"strings"

	"github.com/vango-dev/rdom/pkg/vdom"
)

// Document is an in-memory node tree implementing vdom.Host.
type Document struct {
	root   *Node
	nextID int

	// clock orders listener binding against event dispatch.
	clock uint64

	logger *slog.Logger
}

var _ vdom.Host = (*Document)(nil)

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for host misuse warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Document) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates an empty document.
func New(opts ...Option) *Document {
	d := &Document{logger: slog.Default().With("component", "dom")}
	for _, opt := range opts {
		opt(d)
	}
	d.root = d.newNode(DocumentNode)
	return d
}

// Root returns the document node, the usual render container.
func (d *Document) Root() *Node {
	return d.root
}

// HTML serializes the document's children.
func (d *Document) HTML() string {
	return d.root.InnerHTML()
}

func (d *Document) newNode(t NodeType) *Node {
	d.nextID++
	return &Node{Type: t, id: d.nextID, doc: d}
}

func (d *Document) node(h vdom.Handle) *Node {
	if h == nil {
		return nil
	}
	n, ok := h.(*Node)
	if !ok {
		d.logger.Warn("dom: foreign handle", "type", typeName(h))
		return nil
	}
	return n
}

// CreateElement implements vdom.Host.
func (d *Document) CreateElement(tag string) vdom.Handle {
	n := d.newNode(ElementNode)
	n.Tag = strings.ToLower(tag)
	return n
}

// CreateText implements vdom.Host.
func (d *Document) CreateText(text string) vdom.Handle {
	n := d.newNode(TextNode)
	n.Value = text
	return n
}

// CreateComment implements vdom.Host.
func (d *Document) CreateComment(text string) vdom.Handle {
	n := d.newNode(CommentNode)
	n.Value = text
	return n
}

// SetElementText implements vdom.Host.
func (d *Document) SetElementText(el vdom.Handle, text string) {
	n := d.node(el)
	if n == nil {
		return
	}
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
	if text != "" {
		t := d.newNode(TextNode)
		t.Value = text
		t.parent = n
		n.children = []*Node{t}
	}
}

// SetText implements vdom.Host.
func (d *Document) SetText(node vdom.Handle, text string) {
	if n := d.node(node); n != nil {
		n.Value = text
	}
}

// Insert implements vdom.Host.
func (d *Document) Insert(node, parent, anchor vdom.Handle) {
	n, p := d.node(node), d.node(parent)
	if n == nil || p == nil {
		return
	}
	a := d.node(anchor)
	if a == n {
		return
	}
	n.detach()

	i := len(p.children)
	if a != nil {
		if at := p.indexOf(a); at >= 0 {
			i = at
		} else {
			d.logger.Warn("dom: anchor is not a child of parent, appending", "anchor", a.id, "parent", p.id)
		}
	}
	p.children = append(p.children, nil)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = n
	n.parent = p
}

// Remove implements vdom.Host.
func (d *Document) Remove(node vdom.Handle) {
	if n := d.node(node); n != nil {
		n.detach()
	}
}

// PatchProp implements vdom.Host. Event handler keys bind listeners; class
// and className share one attribute; a nil next removes the attribute.
func (d *Document) PatchProp(el vdom.Handle, key string, prev, next any) {
	n := d.node(el)
	if n == nil || n.Type != ElementNode {
		return
	}

	if vdom.IsEventHandler(key) {
		d.patchListener(n, vdom.EventName(key), next)
		return
	}

	if key == "className" {
		key = "class"
	}
	if next == nil {
		delete(n.attrs, key)
		return
	}
	if n.attrs == nil {
		n.attrs = make(map[string]any)
	}
	n.attrs[key] = next
}
