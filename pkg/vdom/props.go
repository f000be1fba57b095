package vdom

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// propsEqual compares two prop values for equality.
func propsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return av == bv
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}
	// Functions are never equal, so handlers are always re-bound.
	return reflect.DeepEqual(a, b)
}

// PropToString converts a prop value to its attribute text.
func PropToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// sortedKeys returns the prop keys in a stable order so hosts see a
// deterministic operation sequence.
func sortedKeys(p Props) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		if k == "key" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// propsChanged reports whether two prop maps differ in keys or values.
func propsChanged(prev, next Props) bool {
	if len(prev) != len(next) {
		return true
	}
	for k, nv := range next {
		pv, ok := prev[k]
		if !ok || !propsEqual(pv, nv) {
			return true
		}
	}
	return false
}
