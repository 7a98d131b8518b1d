package hlrt

/*
#include <hl.h>
*/
import "C"
import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// TrampolineFunc is the Go-side body a trampoline closure invokes,
// already unpacked into Values.
type TrampolineFunc func(args []Value) Value

// NewTrampoline allocates a VM closure of the given arity whose native
// entry point is a purego callback — the same mechanism probe.go uses
// in reverse to call *into* optionally-linked C symbols, used here to
// hand the VM a C-callable function pointer backed by a Go closure.
// When VM dispatch invokes it, body runs on the calling thread (spec.md
// §4.6 — the host function runs on whichever thread the VM call came
// in on, already GC-registered, so re-entering the VM from inside body
// is safe).
func NewTrampoline(arity int, body TrampolineFunc) Function {
	cb := purego.NewCallback(func(args *unsafe.Pointer, nargs C.int) unsafe.Pointer {
		n := int(nargs)
		var goArgs []Value
		if n > 0 {
			raw := unsafe.Slice(args, n)
			goArgs = make([]Value, n)
			for i, a := range raw {
				goArgs[i] = Value{ptr: a}
			}
		}
		ret := body(goArgs)
		return ret.ptr
	})
	c := C.hl_alloc_closure_ptr(dynFunType(arity).c(), unsafe.Pointer(cb), nil)
	return functionFromC(c)
}

// dynFunType returns a shared function-type descriptor accepting arity
// Dynamic arguments and returning Dynamic, used for every trampoline
// regardless of the Haxe-side declared signature (the VM's own
// argument coercion handles the rest).
func dynFunType(arity int) Type {
	switch arity {
	case 0:
		return typeFromC(&C.hlt_dynfun0)
	case 1:
		return typeFromC(&C.hlt_dynfun1)
	case 2:
		return typeFromC(&C.hlt_dynfun2)
	case 3:
		return typeFromC(&C.hlt_dynfun3)
	default:
		return typeFromC(&C.hlt_dynfun4)
	}
}

// FunctionAsValue reinterprets a closure as a dynamic value, for cases
// — like returning a callback trampoline as a handle — where the VM
// treats closures and boxed dynamics interchangeably through the same
// pointer representation.
func FunctionAsValue(f Function) Value {
	return Value{ptr: f.ptr}
}
