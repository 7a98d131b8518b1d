package hlrt

/*
#include <hl.h>
#include <stdlib.h>
*/
import "C"
import (
	"unsafe"
)

// Module wraps a loaded bytecode unit (spec.md's VmModule).
type Module struct {
	code *C.hl_code
	m    *C.hl_module
}

// LoadFile parses bytecode from disk and allocates a module.
func LoadFile(path string) (Module, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	var errMsg *C.char
	code := C.hl_code_read_file(cpath, &errMsg)
	if code == nil {
		return Module{}, errFromC(errMsg)
	}
	return finishLoad(code)
}

// LoadMemory parses bytecode from an in-memory buffer.
func LoadMemory(buf []byte) (Module, error) {
	if len(buf) == 0 {
		return Module{}, errInvalidBytecode
	}
	var errMsg *C.char
	code := C.hl_code_read((*C.uchar)(unsafe.Pointer(&buf[0])), C.int(len(buf)), &errMsg)
	if code == nil {
		return Module{}, errFromC(errMsg)
	}
	return finishLoad(code)
}

func finishLoad(code *C.hl_code) (Module, error) {
	m := C.hl_module_alloc(code)
	if m == nil {
		return Module{}, errModuleAlloc
	}
	if C.hl_module_init(m, false) == 0 {
		return Module{}, errModuleInit
	}
	return Module{code: code, m: m}, nil
}

// CallEntry invokes the module's designated entry function. Required
// before any static-field access (spec.md §4.4/§9).
func (mod Module) CallEntry() (exc Value, ok bool) {
	var hasExc C.bool
	C.hl_module_call_entry(mod.m, &hasExc)
	if bool(hasExc) {
		return valueFromC(C.hl_get_thread().exc_value), false
	}
	return Value{}, true
}

// EntryPointIndex returns the module's entry function index. Nothing in
// hlbridge calls it; Reload does not re-run the entry point.
func (mod Module) EntryPointIndex() int {
	return int(mod.code.entrypoint)
}

// errFromC converts a C error message (owned by the runtime, not freed
// here) into a Go error-ish string; callers wrap it with errs.Kind.
func errFromC(msg *C.char) error {
	if msg == nil {
		return errUnknown
	}
	return &cError{msg: C.GoString(msg)}
}

type cError struct{ msg string }

func (e *cError) Error() string { return e.msg }

var (
	errUnknown          = &cError{"unknown hlrt failure"}
	errInvalidBytecode  = &cError{"empty bytecode buffer"}
	errModuleAlloc      = &cError{"hl_module_alloc failed"}
	errModuleInit       = &cError{"hl_module_init failed"}
)
