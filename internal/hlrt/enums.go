package hlrt

/*
#include <hl.h>
*/
import "C"
import "unsafe"

// EnumConstructCount returns the number of constructors declared on an
// enum type.
func EnumConstructCount(t Type) int {
	c := t.c()
	if c._enum == nil {
		return 0
	}
	return int(c._enum.nconstructs)
}

// EnumConstructName returns the name of the ith constructor.
func EnumConstructName(t Type, i int) string {
	c := t.c()
	base := unsafe.Pointer(c._enum.constructs)
	ctor := (*C.hl_enum_construct)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof(C.hl_enum_construct{})))
	return utf16PtrToString(ctor.name)
}

// EnumGetIndex returns the constructor index an enum instance was
// allocated with.
func EnumGetIndex(v Value) int {
	return int(*(*C.int)(unsafe.Add(v.ptr, unsafe.Sizeof(uintptr(0)))))
}

// EnumGetName returns the constructor name of an enum instance.
func EnumGetName(v Value) string {
	t := TypeOf(v)
	return EnumConstructName(t, EnumGetIndex(v))
}

// EnumParamCount returns the number of parameters the constructor at
// index was declared with.
func EnumParamCount(t Type, index int) int {
	c := t.c()
	base := unsafe.Pointer(c._enum.constructs)
	ctor := (*C.hl_enum_construct)(unsafe.Add(base, uintptr(index)*unsafe.Sizeof(C.hl_enum_construct{})))
	return int(ctor.nparams)
}

// EnumGetParamCount returns v's own constructor's parameter count.
func EnumGetParamCount(v Value) int {
	return EnumParamCount(TypeOf(v), EnumGetIndex(v))
}

// EnumGetParam reads the ith parameter of an enum instance. Parameter
// physical offsets come from the per-constructor offset table, not a
// fixed stride, since params can mix primitive and pointer kinds
// (spec.md §4.5).
func EnumGetParam(v Value, i int) Value {
	t := TypeOf(v)
	index := EnumGetIndex(v)
	c := t.c()
	base := unsafe.Pointer(c._enum.constructs)
	ctor := (*C.hl_enum_construct)(unsafe.Add(base, uintptr(index)*unsafe.Sizeof(C.hl_enum_construct{})))
	offsets := unsafe.Slice(ctor.offsets, int(ctor.nparams))
	params := unsafe.Slice(ctor.params, int(ctor.nparams))
	off := offsets[i]
	kind := kindFromC(C.int(params[i].kind))
	return GetField(v, int(off), kind)
}

// EnumAlloc allocates an enum instance for the given constructor index
// and writes params into their declared offsets.
func EnumAlloc(t Type, index int, params []Value) Value {
	v := AllocEnum(t, index)
	c := t.c()
	base := unsafe.Pointer(c._enum.constructs)
	ctor := (*C.hl_enum_construct)(unsafe.Add(base, uintptr(index)*unsafe.Sizeof(C.hl_enum_construct{})))
	offsets := unsafe.Slice(ctor.offsets, int(ctor.nparams))
	ctypes := unsafe.Slice(ctor.params, int(ctor.nparams))
	for i, p := range params {
		if i >= len(offsets) {
			break
		}
		kind := kindFromC(C.int(ctypes[i].kind))
		SetField(v, int(offsets[i]), kind, p)
	}
	return v
}

// EnumIs reports whether v was constructed with the given index.
func EnumIs(v Value, index int) bool {
	if v.IsNull() {
		return false
	}
	return EnumGetIndex(v) == index
}

// EnumIsNamed reports whether v's constructor name matches name.
func EnumIsNamed(v Value, name string) bool {
	if v.IsNull() {
		return false
	}
	return EnumGetName(v) == name
}
