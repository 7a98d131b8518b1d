package hlrt

/*
#include <hl.h>
#include <stdlib.h>
*/
import "C"
import "unsafe"

// StringType returns the runtime "string" type descriptor.
func StringType() Type {
	return typeFromC(C.hl_type_bytes)
}

// NewString allocates a VM string value from a buffer of 16-bit code
// units (the VM's native string encoding). The buffer must outlive the
// call only — the VM copies it.
func NewString(units []uint16) Value {
	if len(units) == 0 {
		return valueFromC(C.hl_alloc_strbytes((*C.uchar)(nil), 0))
	}
	p := (*C.uchar)(unsafe.Pointer(&units[0]))
	return valueFromC(C.hl_alloc_strbytes(p, C.int(len(units))))
}

// StringUnits reads a VM string's raw 16-bit code units. The returned
// slice aliases VM memory and must not be retained past the value's
// rooted lifetime — callers copy it immediately.
func StringUnits(v Value) []uint16 {
	if v.IsNull() {
		return nil
	}
	var length C.int
	p := C.hl_to_utf16_len(v.ptr, &length)
	if p == nil || length == 0 {
		return nil
	}
	n := int(length)
	out := make([]uint16, n)
	src := unsafe.Slice((*uint16)(unsafe.Pointer(p)), n)
	copy(out, src)
	return out
}

// PromoteBytesToString rewrites a byte value's type tag to the string
// type in place. Zero-cost because the memory layout of bytes and
// string values (length + 16-bit code units) is identical — spec.md
// §4.2/§9. Only safe on freshly host-constructed byte values that are
// not shared elsewhere.
func PromoteBytesToString(v Value) Value {
	if v.IsNull() {
		return v
	}
	C.hl_retag_as_string(v.ptr)
	return v
}
