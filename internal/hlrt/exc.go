package hlrt

/*
#include <hl.h>
*/
import "C"
import "unsafe"

// ThreadExceptionPending reports whether the calling thread currently
// has a Haxe exception recorded.
func ThreadExceptionPending() bool {
	return C.hl_get_thread().exc_value != nil
}

// ThreadException returns the calling thread's pending exception
// value.
func ThreadException() Value {
	return valueFromC(C.hl_get_thread().exc_value)
}

// ClearThreadException resets the calling thread's exception flag.
func ClearThreadException() {
	C.hl_get_thread().exc_value = nil
}

// SetThreadException marks the calling thread as having a pending
// exception carrying v. Used at the callback trampoline boundary
// (spec.md §4.6/§4.7) to turn a host-side error into a VM-visible
// thrown exception without unwinding the native call stack —
// hlrt_safe_call checks this flag after the trampoline returns, the
// same way it already checks the one a natively-thrown Haxe exception
// sets via hl_dyn_call_safe's own trap.
func SetThreadException(v Value) {
	C.hl_get_thread().exc_value = v.c()
}

// ThreadExceptionTraceValues returns the VM string values making up the
// stack trace captured when the currently pending exception was
// thrown, most recent frame first. Empty if the runtime captured none
// — e.g. an exception set directly via SetThreadException has no
// native call frames behind it.
func ThreadExceptionTraceValues() []Value {
	arr := C.hl_exception_stack()
	if arr == nil {
		return nil
	}
	v := Value{ptr: unsafe.Pointer(arr)}
	n := ArrayLength(v)
	if n == 0 {
		return nil
	}
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = ArrayGetObj(v, i)
	}
	return out
}
