package vdom

import (
	"fmt"
	"strings"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Comment creates a comment node.
func Comment(content string) *VNode {
	return &VNode{
		Kind: KindComment,
		Text: content,
	}
}

// Fragment groups children without a wrapper element. A leading Key
// attribute keys the fragment itself.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case Attr:
			if v.Key == "key" {
				node.Key, _ = v.Value.(string)
			}
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// Comp creates a component node. Arguments are the same as for elements:
// attributes become the props passed to the component and child nodes become
// its slots.
func Comp(def *ComponentDef, args ...any) *VNode {
	node := createElement("", args)
	node.Kind = KindComponent
	node.Comp = def
	return node
}

// If returns the node if condition is true, otherwise nil.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns ifTrue if condition is true, otherwise ifFalse.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When calls fn only if condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps items to nodes, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Repeat creates n nodes using fn.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	result := make([]*VNode, 0, n)
	for i := 0; i < n; i++ {
		if node := fn(i); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Key creates a key attribute for reconciliation.
// The key is converted to a string using fmt.Sprintf.
func Key(key any) Attr {
	return Attr{Key: "key", Value: fmt.Sprintf("%v", key)}
}

// Prop creates an arbitrary attribute.
func Prop(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Class sets the class attribute.
func Class(name string) Attr {
	return Attr{Key: "class", Value: name}
}

// ID sets the id attribute.
func ID(id string) Attr {
	return Attr{Key: "id", Value: id}
}

// On binds handler to event ("click" binds onClick).
func On(event string, handler func(any)) EventHandler {
	return EventHandler{Event: HandlerKey(event), Handler: handler}
}

// OnClick binds a click handler.
func OnClick(handler func(any)) EventHandler {
	return On("click", handler)
}

// HandlerKey returns the prop key for event: "click" -> "onClick".
func HandlerKey(event string) string {
	if event == "" {
		return ""
	}
	return "on" + strings.ToUpper(event[:1]) + event[1:]
}
