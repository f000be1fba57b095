package dom

import "strings"

// NodeType identifies the kind of a Node.
type NodeType uint8

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case DocumentNode:
		return "document"
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	default:
		return "unknown"
	}
}

// Node is one node of a Document.
type Node struct {
	Type  NodeType
	Tag   string // elements
	Value string // text and comment payload

	id        int
	doc       *Document
	parent    *Node
	children  []*Node
	attrs     map[string]any
	listeners map[string]*invoker
}

// ID returns the node's creation sequence number within its document.
func (n *Node) ID() int { return n.id }

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Attr returns the attribute value stored under key.
func (n *Node) Attr(key string) (any, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	switch n.Type {
	case TextNode:
		return n.Value
	case CommentNode:
		return ""
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(c.TextContent())
	}
	return b.String()
}

// Find returns the first node in document order under n (n included) for
// which match returns true.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// ByAttr returns the first element under n whose attribute key equals value.
func (n *Node) ByAttr(key, value string) *Node {
	return n.Find(func(c *Node) bool {
		if c.Type != ElementNode {
			return false
		}
		v, ok := c.attrs[key]
		return ok && attrToString(v) == value
	})
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}
