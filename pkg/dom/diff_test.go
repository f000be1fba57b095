package dom

import (
	"strings"
	"testing"

	"github.com/vango-dev/rdom/pkg/vdom"
)

func list(keys ...string) *vdom.VNode {
	items := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		items[i] = vdom.Li(vdom.Key(k), vdom.Content(k))
	}
	return vdom.Ul(items)
}

func TestDiffTrace(t *testing.T) {
	tr := Diff(list("1", "2", "3", "4"), list("2", "4", "1", "3"))

	if tr.Before != "<ul><li>1</li><li>2</li><li>3</li><li>4</li></ul>" {
		t.Errorf("Before = %s", tr.Before)
	}
	if tr.After != "<ul><li>2</li><li>4</li><li>1</li><li>3</li></ul>" {
		t.Errorf("After = %s", tr.After)
	}
	if tr.Stats.Moved != 2 || tr.Stats.Mounted != 0 || tr.Stats.Unmounted != 0 {
		t.Errorf("Stats = %+v", tr.Stats)
	}
	for _, op := range tr.Ops {
		if op.Kind != OpMove {
			t.Errorf("unexpected op %s", op)
		}
	}
}

func TestDiffFromNothing(t *testing.T) {
	tr := Diff(nil, vdom.P("hi"))
	if tr.Before != "" || tr.After != "<p>hi</p>" {
		t.Errorf("trace = %+v", tr)
	}
	if !strings.HasPrefix(tr.Ops[0].String(), "create-element") {
		t.Errorf("first op = %s", tr.Ops[0])
	}
}
