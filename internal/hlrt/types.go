package hlrt

/*
#include <hl.h>
*/
import "C"
import (
	"unicode/utf16"
	"unsafe"
)

// TypeCount returns the number of type descriptors compiled into mod's
// bytecode image.
func (mod Module) TypeCount() int {
	return int(mod.code.ntypes)
}

// TypeAt returns the nth type descriptor as compiled, in bytecode
// declaration order. Used by internal/types to enumerate all loaded
// types for FindType/ListTypes (spec.md §4.3).
func (mod Module) TypeAt(i int) Type {
	base := unsafe.Pointer(mod.code.types)
	p := (*C.hl_type)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof(C.hl_type{})))
	return typeFromC(p)
}

// TypeName returns a type's declared name, hashed-name keyed back into
// the bytecode's debug string table. Reflection-facing types carry the
// bare class name; runtime-layout types carry the sigil-prefixed name
// (spec.md §4.3's dual-descriptor convention).
func TypeName(t Type) string {
	c := t.c()
	switch kindFromC(C.int(c.kind)) {
	case KindObj, KindAbstract:
		if c.obj == nil || c.obj.name == nil {
			return ""
		}
		return utf16PtrToString(c.obj.name)
	case KindEnum:
		if c._enum == nil || c._enum.name == nil {
			return ""
		}
		return utf16PtrToString(c._enum.name)
	default:
		return ""
	}
}

// ClassSuper returns t's declared superclass descriptor, or the zero
// Type (found=false) if t has none.
func ClassSuper(t Type) (Type, bool) {
	c := t.c()
	if c.obj == nil || c.obj.super == nil {
		return Type{}, false
	}
	return typeFromC(c.obj.super), true
}

// ClassFieldCount returns the number of instance fields declared
// directly on t (not counting inherited fields).
func ClassFieldCount(t Type) int {
	c := t.c()
	if c.obj == nil {
		return 0
	}
	return int(c.obj.nfields)
}

// ClassFieldAt returns the name and kind of t's nth directly-declared
// field.
func ClassFieldAt(t Type, i int) (name string, kind Kind) {
	c := t.c()
	base := unsafe.Pointer(c.obj.fields)
	f := (*C.hl_obj_field)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof(C.hl_obj_field{})))
	return utf16PtrToString(f.name), kindFromC(C.int(f.t.kind))
}

// ClassMethodCount returns the number of methods in t's dispatch
// table (the runtime-layout descriptor's vtable, spec.md §4.3).
func ClassMethodCount(t Type) int {
	c := t.c()
	if c.obj == nil {
		return 0
	}
	return int(c.obj.nproto)
}

// ClassMethodAt returns the name of t's nth vtable entry.
func ClassMethodAt(t Type, i int) string {
	c := t.c()
	base := unsafe.Pointer(c.obj.proto)
	p := (*C.hl_obj_proto)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof(C.hl_obj_proto{})))
	return utf16PtrToString(p.name)
}

// ClassMethodFindex returns the function-table index backing t's nth
// vtable entry. The dispatch index is this field, not i itself — the
// method's position in the vtable and its function-table slot are
// unrelated (spec.md §4.3).
func ClassMethodFindex(t Type, i int) int {
	c := t.c()
	base := unsafe.Pointer(c.obj.proto)
	p := (*C.hl_obj_proto)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof(C.hl_obj_proto{})))
	return int(p.findex)
}

// FunctionAt resolves a function-table index to an invocable Function.
func (mod Module) FunctionAt(findex int) Function {
	p := C.hl_module_function_ptr(mod.m, C.int(findex))
	return Function{ptr: unsafe.Pointer(p)}
}

// FunctionParamTypes returns fn's declared parameter types in order.
// For an instance method this includes the implicit receiver as
// element 0, matching how CallMethod/NewInstance already prepend it to
// argv before dispatch (spec.md §4.4 step 3).
func FunctionParamTypes(fn Function) []Type {
	c := fn.c()
	if c == nil || c.t == nil || c.t.fun == nil {
		return nil
	}
	n := int(c.t.fun.nargs)
	if n == 0 {
		return nil
	}
	base := unsafe.Pointer(c.t.fun.args)
	out := make([]Type, n)
	for i := 0; i < n; i++ {
		pp := (**C.hl_type)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof((*C.hl_type)(nil))))
		out[i] = typeFromC(*pp)
	}
	return out
}

// IsStringType reports whether t is the VM's canonical string type, as
// opposed to some other value sharing its Bytes kind (spec.md §4.2's
// byte->string promotion target is identified by type identity, not
// kind, since raw bytes and strings share the same on-wire layout).
func IsStringType(t Type) bool {
	return t.c() == C.hl_type_bytes
}

// GlobalValue returns the module-wide static-storage instance backing
// t's static fields. Only valid after the module's entry point has run
// (spec.md §4.4 — a pre-entry access is the core's responsibility to
// reject, not this accessor's).
func (mod Module) GlobalValue(t Type) Value {
	gidx := t.c().obj.global_value
	if gidx == nil {
		return Value{}
	}
	p := C.hl_module_global_ptr(mod.m, gidx)
	return Value{ptr: unsafe.Pointer(p)}
}

// utf16PtrToString reads a NUL-terminated 16-bit code unit array, as
// the bytecode reader stores debug names (not a vdynamic string
// object — no header, just raw units).
func utf16PtrToString(p *C.uchar) string {
	if p == nil {
		return ""
	}
	units := (*uint16)(unsafe.Pointer(p))
	n := 0
	for *(*uint16)(unsafe.Add(unsafe.Pointer(units), uintptr(n)*2)) != 0 {
		n++
	}
	if n == 0 {
		return ""
	}
	slice := unsafe.Slice(units, n)
	return string(utf16.Decode(slice))
}
