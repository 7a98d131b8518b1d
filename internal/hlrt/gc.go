package hlrt

/*
#include <hl.h>
*/
import "C"
import "unsafe"

// GlobalInit sets up the GC and runtime. Must be called exactly once per
// process (see spec.md §9 — non-idempotent).
func GlobalInit() {
	C.hl_global_init()
}

// GlobalFree tears the runtime down. Never safe to call GlobalInit again
// afterwards in the same process.
func GlobalFree() {
	C.hl_global_free()
}

// RegisterThread registers the calling OS thread with the VM's GC so it
// may safely touch VM memory and be scanned during a collection.
// stackTop should be a pointer near the top of the calling goroutine's
// stack frame; the VM's conservative scanner walks from there.
func RegisterThread(stackTop unsafe.Pointer) {
	C.hl_register_thread(stackTop)
}

// UnregisterThread removes the calling thread's registration.
func UnregisterThread() {
	C.hl_unregister_thread()
}

// RootAdd registers ptr as a GC root: the value it points to is treated
// as reachable regardless of the conservative stack scan.
func RootAdd(ptr *Value) {
	C.hl_add_root((*unsafe.Pointer)(unsafe.Pointer(ptr)))
}

// RootRemove un-registers a previously added root. Idempotent is the
// caller's responsibility — the VM disallows removing a root twice.
func RootRemove(ptr *Value) {
	C.hl_remove_root((*unsafe.Pointer)(unsafe.Pointer(ptr)))
}

// RootFunction roots a closure value, keeping it reachable independent
// of the call site that resolved it. Used by cached calls, which hold
// a resolved Function across many invocations (spec.md §4.4).
func RootFunction(f *Function) {
	C.hl_add_root((*unsafe.Pointer)(unsafe.Pointer(f)))
}

// UnrootFunction un-registers a previously rooted Function.
func UnrootFunction(f *Function) {
	C.hl_remove_root((*unsafe.Pointer)(unsafe.Pointer(f)))
}

// BlockingBegin marks the calling thread as safe to skip during a
// stop-the-world collection, for use around long blocking operations.
func BlockingBegin() {
	C.hl_blocking(true)
}

// BlockingEnd ends a BlockingBegin region.
func BlockingEnd() {
	C.hl_blocking(false)
}

// UpdateStackMarker refreshes the recorded top of the native call stack
// for the calling thread so conservative scans see the current frame.
// Nothing in hlbridge calls it: the core's allocating functions do not
// refresh the stack marker on entry.
func UpdateStackMarker(stackTop unsafe.Pointer) {
	C.hl_register_thread(stackTop)
}
