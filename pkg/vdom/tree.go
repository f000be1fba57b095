package vdom

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/rdom/internal/errors"
)

// treeNode is the document form of a VNode. JSON documents decode through the
// same path since JSON is valid YAML.
//
//	tag: ul
//	props: {class: todos}
//	children:
//	  - {tag: li, key: 1, text: write}
//	  - {type: comment, text: done}
//	  - plain text child
type treeNode struct {
	Type     string         `yaml:"type,omitempty"`
	Tag      string         `yaml:"tag,omitempty"`
	Key      any            `yaml:"key,omitempty"`
	Props    map[string]any `yaml:"props,omitempty"`
	Text     string         `yaml:"text,omitempty"`
	Children []treeNode     `yaml:"children,omitempty"`
}

// UnmarshalYAML accepts a bare scalar as a text node.
func (t *treeNode) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*t = treeNode{Type: "text", Text: n.Value}
		return nil
	}
	type plain treeNode
	return n.Decode((*plain)(t))
}

// DecodeTree parses a YAML or JSON tree document.
func DecodeTree(data []byte) (*VNode, error) {
	var doc treeNode
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.New(errors.CodeTreeDecode).Wrap(err)
	}
	if doc.Type == "" && doc.Tag == "" && len(doc.Children) == 0 && doc.Text == "" {
		return nil, errors.New(errors.CodeTreeDecode).WithDetail("empty document")
	}
	return doc.toVNode("")
}

// DecodeTreeFile reads and parses a tree document from path.
func DecodeTreeFile(path string) (*VNode, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeTreeDecode).WithDetail(path).Wrap(err)
	}
	v, err := DecodeTree(data)
	if err != nil {
		if e := errors.FromError(err, errors.CodeTreeDecode); e != nil && e.Detail == "" {
			e.Detail = path
		}
		return nil, err
	}
	return v, nil
}

func (t treeNode) toVNode(path string) (*VNode, error) {
	kind, err := t.kind(path)
	if err != nil {
		return nil, err
	}

	v := &VNode{
		Kind: kind,
		Tag:  t.Tag,
		Text: t.Text,
	}
	if t.Key != nil {
		v.Key = fmt.Sprint(t.Key)
	}
	if len(t.Props) > 0 {
		v.Props = make(Props, len(t.Props))
		for k, p := range t.Props {
			v.Props[k] = p
		}
	}

	seen := make(map[string]bool, len(t.Children))
	for i, c := range t.Children {
		childPath := fmt.Sprintf("%s/%d", path, i)
		child, err := c.toVNode(childPath)
		if err != nil {
			return nil, err
		}
		if child.Key != "" {
			if seen[child.Key] {
				return nil, errors.New(errors.CodeTreeDuplicate).
					WithDetailf("key %q at %s", child.Key, childPath)
			}
			seen[child.Key] = true
		}
		v.Children = append(v.Children, child)
	}
	return v, nil
}

func (t treeNode) kind(path string) (VKind, error) {
	if path == "" {
		path = "/"
	}
	switch t.Type {
	case "", "element":
		if t.Tag == "" {
			return 0, errors.New(errors.CodeTreeInvalidType).WithDetailf("element without tag at %s", path)
		}
		return KindElement, nil
	case "text":
		return KindText, nil
	case "comment":
		return KindComment, nil
	case "fragment":
		return KindFragment, nil
	default:
		return 0, errors.New(errors.CodeTreeInvalidType).WithDetailf("type %q at %s", t.Type, path)
	}
}

// EncodeTree renders v back into its YAML document form. Component nodes are
// encoded by name only.
func EncodeTree(v *VNode) ([]byte, error) {
	return yaml.Marshal(fromVNode(v))
}

func fromVNode(v *VNode) treeNode {
	t := treeNode{Tag: v.Tag, Text: v.Text}
	if v.Key != "" {
		t.Key = v.Key
	}
	switch v.Kind {
	case KindText:
		t.Type = "text"
	case KindComment:
		t.Type = "comment"
	case KindFragment:
		t.Type = "fragment"
	case KindComponent:
		t.Type = "component"
		if v.Comp != nil {
			t.Tag = v.Comp.Name
		}
	}
	for _, k := range sortedKeys(v.Props) {
		if IsEventHandler(k) {
			continue
		}
		if t.Props == nil {
			t.Props = make(map[string]any)
		}
		t.Props[k] = v.Props[k]
	}
	for _, c := range v.Children {
		t.Children = append(t.Children, fromVNode(c))
	}
	return t
}
