package server

import (
	"fmt"

	"github.com/vango-dev/rdom/pkg/reactive"
	"github.com/vango-dev/rdom/pkg/vdom"
)

// todoList renders the session's todo array as keyed li nodes. Clicking an
// item toggles it. The header count is a computed over the done flags.
func todoList(rt *reactive.Runtime, todos *reactive.ArrayProxy, toggle func(id string)) *vdom.ComponentDef {
	var remaining *reactive.Computed[int]

	return &vdom.ComponentDef{
		Name: "TodoList",
		Setup: func(_ *reactive.ObjectProxy, ctx *vdom.SetupContext) vdom.RenderFunc {
			remaining = reactive.NewComputed(rt, func() int {
				n := 0
				todos.Range(func(_ int, v any) bool {
					if item, ok := v.(*reactive.ObjectProxy); ok && item.Get("done") != true {
						n++
					}
					return true
				})
				return n
			})
			ctx.Expose(map[string]any{"remaining": remaining})
			return renderTodos(todos, remaining, toggle)
		},
		Unmounted: func(*vdom.Instance) {
			if remaining != nil {
				remaining.Stop()
			}
		},
	}
}

func renderTodos(todos *reactive.ArrayProxy, remaining *reactive.Computed[int], toggle func(id string)) vdom.RenderFunc {
	return func(*vdom.Instance) *vdom.VNode {
		items := make([]*vdom.VNode, 0, todos.Len())
		todos.Range(func(_ int, v any) bool {
			item, ok := v.(*reactive.ObjectProxy)
			if !ok {
				return true
			}
			id := vdom.PropToString(item.Get("id"))
			class := "todo"
			if item.Get("done") == true {
				class = "todo done"
			}
			items = append(items, vdom.Li(
				vdom.Key(id),
				vdom.Class(class),
				vdom.Prop("data-id", id),
				vdom.OnClick(func(any) { toggle(id) }),
				vdom.Content(vdom.PropToString(item.Get("text"))),
			))
			return true
		})

		return vdom.Section(
			vdom.Class("todoapp"),
			vdom.H1(fmt.Sprintf("%d left", remaining.Value())),
			vdom.Ul(vdom.Class("todos"), items),
		)
	}
}
