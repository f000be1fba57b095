package dom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/rdom/pkg/vdom"
)

// booleanAttrs are attributes that don't need a value.
// When true, they're rendered as just the attribute name.
var booleanAttrs = map[string]bool{
	"autofocus": true,
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"multiple":  true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;",
	)
	// Attribute values also encode whitespace control characters.
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;",
		"\n", "&#10;", "\r", "&#13;", "\t", "&#9;",
	)
)

// OuterHTML serializes n and its descendants.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

// InnerHTML serializes n's descendants.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for _, c := range n.children {
		c.writeHTML(&b)
	}
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	switch n.Type {
	case DocumentNode:
		for _, c := range n.children {
			c.writeHTML(b)
		}
	case TextNode:
		textEscaper.WriteString(b, n.Value)
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Value)
		b.WriteString("-->")
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		n.writeAttrs(b)
		b.WriteByte('>')
		if vdom.IsVoidElement(n.Tag) {
			return
		}
		for _, c := range n.children {
			c.writeHTML(b)
		}
		fmt.Fprintf(b, "</%s>", n.Tag)
	}
}

// writeAttrs renders attributes in sorted order for deterministic output.
func (n *Node) writeAttrs(b *strings.Builder) {
	keys := make([]string, 0, len(n.attrs))
	for key := range n.attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := n.attrs[key]

		// Skip internal props
		if strings.HasPrefix(key, "_") {
			continue
		}

		if booleanAttrs[key] {
			if on, ok := value.(bool); ok {
				if on {
					fmt.Fprintf(b, " %s", key)
				}
				continue
			}
		}

		if s := attrToString(value); s != "" {
			fmt.Fprintf(b, ` %s="%s"`, key, attrEscaper.Replace(s))
		}
	}

	// Event marker attributes
	events := make([]string, 0, len(n.listeners))
	for event := range n.listeners {
		events = append(events, event)
	}
	sort.Strings(events)
	for _, event := range events {
		fmt.Fprintf(b, ` data-on-%s="true"`, event)
	}
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	if value == nil {
		return ""
	}
	return vdom.PropToString(value)
}
