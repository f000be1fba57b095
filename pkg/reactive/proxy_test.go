package reactive

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestWrapperMemoized(t *testing.T) {
	rt := New()
	obj := NewObject()

	if rt.Reactive(obj) != rt.Reactive(obj) {
		t.Error("Reactive not memoized")
	}
	if rt.ShallowReactive(obj) != rt.ShallowReactive(obj) {
		t.Error("ShallowReactive not memoized")
	}
	if rt.Readonly(obj) != rt.Readonly(obj) {
		t.Error("Readonly not memoized")
	}
	if rt.ShallowReadonly(obj) != rt.ShallowReadonly(obj) {
		t.Error("ShallowReadonly not memoized")
	}
	if any(rt.Reactive(obj)) == any(rt.Readonly(obj)) {
		t.Error("variants share a wrapper")
	}
	if rt.Wrap(rt.Reactive(obj)) != any(rt.Reactive(obj)) {
		t.Error("wrapping a proxy should return the canonical proxy")
	}
}

func TestToRaw(t *testing.T) {
	rt := New()
	obj := NewObject()
	p := rt.Reactive(obj)

	if ToRaw(p) != any(obj) {
		t.Error("ToRaw(proxy) should return the target")
	}
	if ToRaw(obj) != any(obj) {
		t.Error("ToRaw(target) should return the target")
	}
	if p.Raw() != obj {
		t.Error("Raw() should return the target")
	}
	if !IsReactive(p) || IsReadonly(p) {
		t.Error("Reactive proxy flags wrong")
	}
	if IsReactive(rt.Readonly(obj)) || !IsReadonly(rt.Readonly(obj)) {
		t.Error("Readonly proxy flags wrong")
	}
	if IsProxy(obj) {
		t.Error("raw target reported as proxy")
	}
}

func TestDeepWrapping(t *testing.T) {
	rt := New()
	inner := NewObject().Put("n", 1)
	obj := NewObject().Put("inner", inner)

	deep := rt.Reactive(obj).Get("inner")
	if deep != any(rt.Reactive(inner)) {
		t.Errorf("deep read returned %T, want canonical reactive proxy", deep)
	}

	shallow := rt.ShallowReactive(obj).Get("inner")
	if shallow != any(inner) {
		t.Errorf("shallow read returned %T, want raw target", shallow)
	}

	ro := rt.Readonly(obj).Get("inner")
	if !IsReadonly(ro) {
		t.Errorf("readonly read returned %T, want readonly proxy", ro)
	}
}

func TestNestedTracking(t *testing.T) {
	rt := New()
	state := rt.Reactive(FromMap(map[string]any{
		"user": map[string]any{"name": "ada"},
	}))

	var seen []any
	rt.Effect(func() any {
		seen = append(seen, state.Object("user").Get("name"))
		return nil
	})

	state.Object("user").Set("name", "grace")
	if len(seen) != 2 || seen[1] != "grace" {
		t.Errorf("seen = %v, want [ada grace]", seen)
	}
}

func TestSetStoresRawTarget(t *testing.T) {
	rt := New()
	child := NewObject()
	obj := NewObject()
	rt.Reactive(obj).Set("child", rt.Reactive(child))

	raw, _ := obj.Lookup("child")
	if raw != any(child) {
		t.Errorf("stored %T, want raw *Object", raw)
	}
}

func TestNaNStability(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("x", math.NaN()))

	runs := 0
	rt.Effect(func() any {
		runs++
		_ = state.Get("x")
		return nil
	})

	state.Set("x", math.NaN())
	if runs != 1 {
		t.Errorf("NaN -> NaN triggered: %d runs", runs)
	}
}

func TestSameValueDoesNotTrigger(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("x", 1))

	runs := 0
	rt.Effect(func() any {
		runs++
		_ = state.Get("x")
		return nil
	})

	state.Set("x", 1)
	state.Set("x", 1.0)
	if runs != 1 {
		t.Errorf("unchanged value triggered: %d runs", runs)
	}
}

type boxed struct{ V any }

func TestUncomparableFieldCountsAsChanged(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("k", boxed{V: []int{1}}))

	runs := 0
	rt.Effect(func() any {
		runs++
		_ = state.Get("k")
		return nil
	})

	state.Set("k", boxed{V: []int{2}})
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
	state.Set("k", boxed{V: map[string]int{"a": 1}})
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
	state.Set("k", boxed{V: 5})
	state.Set("k", boxed{V: 5})
	if runs != 4 {
		t.Errorf("equal comparable value triggered: %d runs, want 4", runs)
	}
}

func TestWriteThroughRewrappedProxyTriggers(t *testing.T) {
	rt := New()
	obj := NewObject().Put("x", 1)

	runs := 0
	rt.Effect(func() any {
		runs++
		_ = rt.Reactive(obj).Get("x")
		return nil
	})

	rt.Wrap(rt.Reactive(obj)).(*ObjectProxy).Set("x", 2)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestAddAndDeleteTriggerIteration(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("a", 1))

	keyRuns := 0
	rt.Effect(func() any {
		keyRuns++
		_ = state.Keys()
		return nil
	})

	state.Set("a", 2) // SET does not change membership
	if keyRuns != 1 {
		t.Errorf("SET triggered enumeration: %d runs", keyRuns)
	}

	state.Set("b", 1)
	if keyRuns != 2 {
		t.Errorf("ADD: expected 2 runs, got %d", keyRuns)
	}

	state.Delete("b")
	if keyRuns != 3 {
		t.Errorf("DELETE: expected 3 runs, got %d", keyRuns)
	}

	state.Delete("missing")
	if keyRuns != 3 {
		t.Errorf("deleting a missing key triggered: %d runs", keyRuns)
	}
}

func TestHasTracksKey(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject())

	var results []bool
	rt.Effect(func() any {
		results = append(results, state.Has("flag"))
		return nil
	})

	state.Set("flag", true)
	if len(results) != 2 || !results[1] {
		t.Errorf("results = %v, want [false true]", results)
	}
}

func TestRangeVisitsInInsertionOrder(t *testing.T) {
	rt := New()
	state := rt.Reactive(NewObject().Put("b", 2).Put("a", 1).Put("c", 3))

	var keys []string
	state.Range(func(k string, _ any) bool {
		keys = append(keys, k)
		return k != "a"
	})
	if strings.Join(keys, ",") != "b,a" {
		t.Errorf("keys = %v, want [b a]", keys)
	}
}

func TestReadonlyRejectsWrites(t *testing.T) {
	var buf bytes.Buffer
	rt := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	obj := NewObject().Put("a", 1)
	ro := rt.Readonly(obj)

	if !ro.Set("a", 2) {
		t.Error("readonly Set should report success")
	}
	if !ro.Delete("a") {
		t.Error("readonly Delete should report success")
	}
	if v, _ := obj.Lookup("a"); v != 1 {
		t.Errorf("readonly write applied: a = %v", v)
	}

	out := buf.String()
	if !strings.Contains(out, "R001") || !strings.Contains(out, "R002") {
		t.Errorf("expected R001 and R002 warnings, got:\n%s", out)
	}
}

func TestReadonlyDoesNotTrack(t *testing.T) {
	rt := New()
	obj := NewObject().Put("a", 1)
	ro := rt.Readonly(obj)

	runs := 0
	rt.Effect(func() any {
		runs++
		_ = ro.Get("a")
		return nil
	})

	rt.Reactive(obj).Set("a", 2)
	if runs != 1 {
		t.Errorf("readonly read was tracked: %d runs", runs)
	}
}

func TestFromValueToValue(t *testing.T) {
	in := map[string]any{
		"list": []any{1, map[string]any{"k": "v"}},
		"n":    2,
	}
	obj := FromMap(in)
	if got := strings.Join(obj.Keys(), ","); got != "list,n" {
		t.Errorf("keys = %s, want list,n", got)
	}

	out := ToValue(New().Reactive(obj)).(map[string]any)
	list := out["list"].([]any)
	if len(list) != 2 || list[1].(map[string]any)["k"] != "v" {
		t.Errorf("round trip lost nested data: %v", out)
	}
}
