// Package hlrt is the cgo boundary onto libhl, HashLink's C embedding
// API. It is the only package in hlbridge that imports "C"; every other
// package talks to the VM through the Go types and functions declared
// here. hlrt exposes exactly the runtime primitives spec.md §6.1 lists
// as "consumed" — nothing more.
package hlrt

/*
#cgo CFLAGS: -I${SRCDIR}/../../vendor/hashlink/src
#cgo LDFLAGS: -L${SRCDIR}/../../vendor/hashlink -lhl

#include <stdlib.h>
#include <string.h>
#include <hl.h>

// hlrt_safe_call is a thin wrapper so cgo sees a fixed, simple
// signature instead of the variadic hl_dyn_call_safe macro. Besides
// the native longjmp-caught exception hl_dyn_call_safe itself reports
// via has_exc, this also honors an exception a callback trampoline set
// directly on the thread without unwinding (SetThreadException) —
// hl_dyn_call returns normally in that case, so has_exc alone would
// miss it.
static vdynamic *hlrt_safe_call(vclosure *c, vdynamic **args, int nargs, vdynamic **exc) {
	bool has_exc = false;
	vdynamic *ret = hl_dyn_call_safe(c, args, nargs, &has_exc);
	vdynamic *pending = hl_get_thread()->exc_value;
	*exc = (has_exc || pending != NULL) ? pending : NULL;
	return ret;
}
*/
import "C"
import (
	"unsafe"
)

// Value is an opaque VM-heap value (spec.md's VmValue). The zero Value
// is the VM null.
type Value struct {
	ptr unsafe.Pointer
}

func (v Value) IsNull() bool   { return v.ptr == nil }
func (v Value) Ptr() unsafe.Pointer { return v.ptr }

func valueFromC(p *C.vdynamic) Value {
	return Value{ptr: unsafe.Pointer(p)}
}

func (v Value) c() *C.vdynamic {
	return (*C.vdynamic)(v.ptr)
}

// Type is an opaque VM type descriptor (spec.md's VmType).
type Type struct {
	ptr unsafe.Pointer
}

func (t Type) c() *C.hl_type { return (*C.hl_type)(t.ptr) }

func typeFromC(p *C.hl_type) Type { return Type{ptr: unsafe.Pointer(p)} }

// Function is an opaque invocable (spec.md's VmFunction); a closure
// pointer plus (for bound calls) an implicit receiver baked in by the
// VM at allocation time.
type Function struct {
	ptr unsafe.Pointer
}

func (f Function) c() *C.vclosure { return (*C.vclosure)(f.ptr) }

func functionFromC(p *C.vclosure) Function { return Function{ptr: unsafe.Pointer(p)} }

// Kind mirrors hl_type_kind's relevant cases.
type Kind int

const (
	KindVoid Kind = iota
	KindUI8
	KindUI16
	KindI32
	KindI64
	KindF32
	KindF64
	KindBool
	KindBytes
	KindDyn
	KindFun
	KindObj
	KindArray
	KindType
	KindRef
	KindVirtual
	KindDynObj
	KindAbstract
	KindEnum
	KindNull
	KindMethod
	KindUnknown
)

var kindNames = map[Kind]string{
	KindVoid:     "void",
	KindUI8:      "ui8",
	KindUI16:     "ui16",
	KindI32:      "i32",
	KindI64:      "i64",
	KindF32:      "f32",
	KindF64:      "f64",
	KindBool:     "bool",
	KindBytes:    "bytes",
	KindDyn:      "dyn",
	KindFun:      "fun",
	KindObj:      "obj",
	KindArray:    "array",
	KindType:     "type",
	KindRef:      "ref",
	KindVirtual:  "virtual",
	KindDynObj:   "dynobj",
	KindAbstract: "abstract",
	KindEnum:     "enum",
	KindNull:     "null",
	KindMethod:   "method",
}

// String renders k the way the inspector and log messages expect;
// unrecognized values (including KindUnknown) render as "unknown".
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

func kindFromC(k C.int) Kind {
	switch k {
	case C.HUI8:
		return KindUI8
	case C.HUI16:
		return KindUI16
	case C.HI32:
		return KindI32
	case C.HI64:
		return KindI64
	case C.HF32:
		return KindF32
	case C.HF64:
		return KindF64
	case C.HBOOL:
		return KindBool
	case C.HBYTES:
		return KindBytes
	case C.HDYN:
		return KindDyn
	case C.HFUN:
		return KindFun
	case C.HOBJ:
		return KindObj
	case C.HARRAY:
		return KindArray
	case C.HTYPE:
		return KindType
	case C.HREF:
		return KindRef
	case C.HVIRTUAL:
		return KindVirtual
	case C.HDYNOBJ:
		return KindDynObj
	case C.HABSTRACT:
		return KindAbstract
	case C.HENUM:
		return KindEnum
	case C.HNULL:
		return KindNull
	case C.HMETHOD:
		return KindMethod
	case C.HVOID:
		return KindVoid
	default:
		return KindUnknown
	}
}

func (t Type) Kind() Kind {
	return kindFromC(C.int(t.c().kind))
}

// TypeOf returns v's runtime type descriptor.
func TypeOf(v Value) Type {
	if v.IsNull() {
		return Type{}
	}
	return typeFromC(v.c().t)
}
