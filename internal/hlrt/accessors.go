package hlrt

/*
#include <hl.h>
*/
import "C"

// GetI32 reads a boxed int32/bool via the integer-kind accessor. ok is
// false if v is null or not an integer-kind value.
func GetI32(v Value) (val int32, ok bool) {
	if v.IsNull() {
		return 0, false
	}
	c := v.c()
	switch kindFromC(C.int(c.t.kind)) {
	case KindI32, KindBool, KindUI8, KindUI16:
		return int32(C.hl_dyn_geti(c, 0, c.t)), true
	default:
		return 0, false
	}
}

// GetI64 reads a boxed int64.
func GetI64(v Value) (val int64, ok bool) {
	if v.IsNull() {
		return 0, false
	}
	c := v.c()
	if kindFromC(C.int(c.t.kind)) != KindI64 {
		return 0, false
	}
	return int64(C.hl_dyn_geti(c, 0, c.t)), true
}

// GetF64 reads a boxed double via the float-kind accessor.
func GetF64(v Value) (val float64, ok bool) {
	if v.IsNull() {
		return 0, false
	}
	c := v.c()
	switch kindFromC(C.int(c.t.kind)) {
	case KindF32, KindF64:
		return float64(C.hl_dyn_getd(c, 0, c.t)), true
	default:
		return 0, false
	}
}

// GetBool reads a boxed boolean.
func GetBool(v Value) (val bool, ok bool) {
	i, ok := GetI32(v)
	return i != 0, ok
}

// IsDynObj reports whether v is a "boxed dynamic" one level deep (spec
// §4.2's VM→Host dynamic unwrap rule).
func IsDynObj(v Value) bool {
	if v.IsNull() {
		return false
	}
	return kindFromC(C.int(v.c().t.kind)) == KindDynObj
}

// ToString invokes the VM's to-string mechanism on any value and
// returns the resulting VM string value.
func ToString(v Value) Value {
	if v.IsNull() {
		return Value{}
	}
	return valueFromC(C.hl_to_string(v.c(), v.c().t))
}

// Unwrap dereferences one level of "boxed dynamic" indirection, as
// produced when a VM value of static type Dynamic wraps a concrete
// value. v must satisfy IsDynObj; callers check that first.
func Unwrap(v Value) Value {
	if v.IsNull() {
		return v
	}
	return valueFromC(v.c().v.ptr)
}

// IsStringKind reports whether v has the Bytes kind that the VM's
// native string values carry. Raw byte buffers share that kind, so a
// byte buffer awaiting the §4.2 bytes->string promotion also reports
// true; IsStringType tells the canonical string type apart by identity.
func IsStringKind(v Value) bool {
	if v.IsNull() {
		return false
	}
	return kindFromC(C.int(v.c().t.kind)) == KindBytes
}
