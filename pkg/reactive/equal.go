package reactive

import (
	"math"
	"reflect"
)

// toNumber reports the float64 value of any Go numeric type.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func isNaN(v any) bool {
	f, ok := toNumber(v)
	return ok && math.IsNaN(f)
}

// strictEqual compares by identity for reference values and by value for
// scalars. Numbers of different Go types compare numerically; NaN is never
// equal to anything. Uncomparable values (slices, maps, funcs) compare by
// their underlying pointer. Comparable types whose interface fields hold
// uncomparable values are never equal.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if fa, ok := toNumber(a); ok {
		fb, ok := toNumber(b)
		return ok && fa == fb
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return comparableEqual(a, b)
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch ta.Kind() {
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map:
		return va.Pointer() == vb.Pointer()
	default:
		return false
	}
}

// comparableEqual is a == b without the runtime panic raised when a struct or
// array field of interface type holds a slice, map or func.
func comparableEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// sameValueZero is strictEqual except that NaN equals NaN.
func sameValueZero(a, b any) bool {
	if isNaN(a) && isNaN(b) {
		return true
	}
	return strictEqual(a, b)
}

// hasChanged is the write-path inequality: two NaNs are unchanged.
func hasChanged(old, next any) bool {
	return !sameValueZero(old, next)
}
