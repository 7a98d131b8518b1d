package hlrt

/*
#include <hl.h>

static vdynamic *hlrt_box_i32(hl_type *t, int x) {
	vdynamic *d = hl_alloc_dynamic(t);
	d->v.i = x;
	return d;
}

static vdynamic *hlrt_box_i64(hl_type *t, int64 x) {
	vdynamic *d = hl_alloc_dynamic(t);
	d->v.i64 = x;
	return d;
}

static vdynamic *hlrt_box_f64(hl_type *t, double x) {
	vdynamic *d = hl_alloc_dynamic(t);
	d->v.d = x;
	return d;
}

static vdynamic *hlrt_box_bool(hl_type *t, bool x) {
	vdynamic *d = hl_alloc_dynamic(t);
	d->v.b = x;
	return d;
}
*/
import "C"
import "unsafe"

// AllocDynamic boxes a zero value of the given primitive/dynamic type.
func AllocDynamic(t Type) Value {
	return valueFromC(C.hl_alloc_dynamic(t.c()))
}

// NewInt32 boxes a host int32 as a VM dynamic value.
func NewInt32(x int32) Value {
	return valueFromC(C.hlrt_box_i32(PrimType(KindI32).c(), C.int(x)))
}

// NewInt64 boxes a host int64 as a VM dynamic value.
func NewInt64(x int64) Value {
	return valueFromC(C.hlrt_box_i64(PrimType(KindI64).c(), C.int64_t(x)))
}

// NewFloat64 boxes a host float64 as a VM dynamic value.
func NewFloat64(x float64) Value {
	return valueFromC(C.hlrt_box_f64(PrimType(KindF64).c(), C.double(x)))
}

// NewBool boxes a host bool as a VM dynamic value.
func NewBool(x bool) Value {
	return valueFromC(C.hlrt_box_bool(PrimType(KindBool).c(), C.bool(x)))
}

// AllocObj allocates a fresh object of the given runtime-layout type
// (spec.md §4.3 — the caller must pass the sigil-prefixed descriptor,
// not the reflection one).
func AllocObj(t Type) Value {
	return valueFromC(C.hl_alloc_obj(t.c()))
}

// AllocEnum allocates an enum instance for the given constructor index.
func AllocEnum(t Type, constructorIndex int) Value {
	return valueFromC(C.hl_alloc_enum(t.c(), C.int(constructorIndex)))
}

// AllocArray allocates a raw array of length n holding elements of the
// given element type. The returned Value is the raw array storage, not
// yet wrapped in an ArrayBytes_*/ArrayObj object — see
// internal/collections for the wrapping step.
func AllocArray(elem Type, n int) Value {
	return valueFromC(C.hl_alloc_array(elem.c(), C.int(n)))
}

// AllocBytes allocates a byte buffer of the given size.
func AllocBytes(size int) Value {
	p := C.hl_alloc_bytes(C.int(size))
	return Value{ptr: unsafe.Pointer(p)}
}

// CopyIntoBytes copies buf into a previously-allocated byte value.
func CopyIntoBytes(v Value, buf []byte) {
	if len(buf) == 0 {
		return
	}
	C.memcpy(v.ptr, unsafe.Pointer(&buf[0]), C.size_t(len(buf)))
}

// AllocClosure wraps a raw function pointer (and optional bound
// receiver) as an invocable VM closure.
func AllocClosure(t Type, fn unsafe.Pointer, receiver Value) Function {
	var c *C.vclosure
	if receiver.IsNull() {
		c = C.hl_alloc_closure_ptr(t.c(), fn, nil)
	} else {
		c = C.hl_alloc_closure_ptr(t.c(), fn, receiver.ptr)
	}
	return functionFromC(c)
}
