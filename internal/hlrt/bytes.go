package hlrt

/*
#include <hl.h>
*/
import "C"
import "unsafe"

// BytesRead copies n bytes out of a VM byte value starting at offset,
// aliasing nothing — the returned slice is host-owned.
func BytesRead(v Value, offset, n int) []byte {
	if v.IsNull() || n <= 0 {
		return nil
	}
	out := make([]byte, n)
	src := unsafe.Slice((*byte)(unsafe.Add(v.ptr, offset)), n)
	copy(out, src)
	return out
}

// BytesWrite writes buf into a VM byte value starting at offset.
func BytesWrite(v Value, offset int, buf []byte) {
	if v.IsNull() || len(buf) == 0 {
		return
	}
	dst := unsafe.Slice((*byte)(unsafe.Add(v.ptr, offset)), len(buf))
	copy(dst, buf)
}
