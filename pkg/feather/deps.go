package feather

import "reflect"

// depsEqual compares two dependency lists elementwise. A length change
// counts as a change.
func depsEqual(prev, next []any) bool {
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !depEqual(prev[i], next[i]) {
			return false
		}
	}
	return true
}

// depEqual compares comparable values with == and reference kinds by
// identity. NaN equals NaN. Functions never compare equal: a closure's identity is not
// observable, so a function dependency always counts as changed.
func depEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func:
		return false
	case reflect.Float32, reflect.Float64:
		x, y := va.Float(), vb.Float()
		return x == y || (x != x && y != y)
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.UnsafePointer() == vb.UnsafePointer() && va.Len() == vb.Len()
	}
	if va.Comparable() {
		return va.Equal(vb)
	}
	return false
}
