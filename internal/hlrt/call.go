package hlrt

/*
#include <hl.h>
*/
import "C"
import (
	"unicode/utf16"
	"unsafe"
)

func utf16FromString(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// SafeCall invokes fn through the VM's dynamic safe-call primitive,
// which catches thrown exceptions instead of propagating a native
// signal/longjmp across the cgo boundary. exc is non-null when a Haxe
// exception was thrown; in that case the return value is meaningless.
func SafeCall(fn Function, args []Value) (ret Value, exc Value) {
	var cargs []*C.vdynamic
	if len(args) > 0 {
		cargs = make([]*C.vdynamic, len(args))
		for i, a := range args {
			cargs[i] = a.c()
		}
	}
	var argp **C.vdynamic
	if len(cargs) > 0 {
		argp = &cargs[0]
	}

	var cexc *C.vdynamic
	r := C.hlrt_safe_call(fn.c(), argp, C.int(len(args)), &cexc)
	if cexc != nil {
		return Value{}, valueFromC(cexc)
	}
	return valueFromC(r), Value{}
}

// DirectCall0 invokes a zero-argument function through its direct
// function-table entry, bypassing the dynamic safe-call primitive.
// spec.md §4.4 requires this for no-arg constructors, since the VM
// rejects a zero-arg signature through the dynamic dispatcher.
func DirectCall0(fn Function) Value {
	r := C.hl_dyn_call(fn.c(), nil, 0)
	return valueFromC(r)
}

// HashName computes the VM's stable name hash, used for field/method
// resolution by name (spec.md §6.1).
func HashName(name string) uint32 {
	units := utf16FromString(name)
	if len(units) == 0 {
		return uint32(C.hl_hash_utf16(nil))
	}
	p := (*C.ushort)(unsafe.Pointer(&units[0]))
	return uint32(C.hl_hash_utf16(p))
}
