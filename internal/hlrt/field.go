package hlrt

/*
#include <hl.h>
*/
import "C"
import "unsafe"

// FieldLookup resolves a hashed field name against an object's runtime
// type, returning the field's physical offset and kind. found is false
// if the type has no such field.
func FieldLookup(t Type, hash uint32) (offset int, kind Kind, found bool) {
	var f C.hl_field_lookup
	ok := C.hl_lookup_find(&t.c().vobj_proto.afields, C.int(t.c().vobj_proto.nfields), C.int(hash), &f)
	if ok == nil {
		return 0, 0, false
	}
	return int(ok.field_index), kindFromC(C.int(ok.t.kind)), true
}

// GetField reads a field off an object pointer by physical offset,
// using the accessor appropriate to kind. Mixing accessor and kind is
// the garbage-read hazard spec.md §4.4 calls out.
func GetField(obj Value, offset int, kind Kind) Value {
	base := uintptr(obj.ptr) + uintptr(offset)
	switch kind {
	case KindI32, KindUI8, KindUI16, KindBool:
		iv := *(*int32)(unsafe.Pointer(base))
		return NewInt32(iv)
	case KindI64:
		iv := *(*int64)(unsafe.Pointer(base))
		return NewInt64(iv)
	case KindF64, KindF32:
		fv := *(*float64)(unsafe.Pointer(base))
		return NewFloat64(fv)
	default:
		pv := *(*unsafe.Pointer)(unsafe.Pointer(base))
		return Value{ptr: pv}
	}
}

// SetField writes a field off an object pointer by physical offset.
func SetField(obj Value, offset int, kind Kind, v Value) {
	base := uintptr(obj.ptr) + uintptr(offset)
	switch kind {
	case KindI32, KindUI8, KindUI16, KindBool:
		i, _ := GetI32(v)
		*(*int32)(unsafe.Pointer(base)) = i
	case KindI64:
		i, _ := GetI64(v)
		*(*int64)(unsafe.Pointer(base)) = i
	case KindF64, KindF32:
		f, _ := GetF64(v)
		*(*float64)(unsafe.Pointer(base)) = f
	default:
		*(*unsafe.Pointer)(unsafe.Pointer(base)) = v.ptr
	}
}

// PrimType returns a shared, process-wide primitive type descriptor for
// the given kind, used wherever a boxed dynamic value needs a type
// pointer (field reads, marshalling).
func PrimType(k Kind) Type {
	switch k {
	case KindI32:
		return typeFromC(&C.hlt_i32)
	case KindI64:
		return typeFromC(&C.hlt_i64)
	case KindF64:
		return typeFromC(&C.hlt_f64)
	case KindBool:
		return typeFromC(&C.hlt_bool)
	default:
		return typeFromC(&C.hlt_dyn)
	}
}
