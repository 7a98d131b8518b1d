package hlrt

/*
#include <hl.h>
*/
import "C"
import "unsafe"

// ArrayLayoutKind distinguishes the two physical array wrapper shapes
// spec.md §4.5 calls out: a contiguous primitive buffer (ArrayBytes_*)
// or a pointer array (ArrayObj). The wrapper object's field order is
// [size, elements] regardless of which one it is, even though
// declaration order is the reverse (spec.md §4.3).
type ArrayLayoutKind int

const (
	ArrayLayoutBytes ArrayLayoutKind = iota
	ArrayLayoutObj
)

// LayoutForElem picks the wrapper layout appropriate for an element
// kind: primitive kinds get the packed ArrayBytes_* layout, everything
// else (objects, dynamics, other arrays) gets ArrayObj.
func LayoutForElem(k Kind) ArrayLayoutKind {
	switch k {
	case KindUI8, KindUI16, KindI32, KindI64, KindF32, KindF64, KindBool:
		return ArrayLayoutBytes
	default:
		return ArrayLayoutObj
	}
}

// varray mirrors hl_code's varray header: the array's own type, its
// element type (at), its length, then the packed element storage.
//
//	typedef struct {
//	    hl_type *t;
//	    hl_type *at;
//	    int size;
//	    int __pad;
//	} varray;
func rawArrayHeader(v Value) (elemType Type, size int) {
	c := (*C.varray)(v.ptr)
	return typeFromC(c.at), int(c.size)
}

// ArrayLength returns the length of a raw VM array.
func ArrayLength(v Value) int {
	if v.IsNull() {
		return 0
	}
	_, n := rawArrayHeader(v)
	return n
}

// ArrayElemType returns the element type of a raw VM array.
func ArrayElemType(v Value) Type {
	t, _ := rawArrayHeader(v)
	return t
}

func arrayDataPtr(v Value) unsafe.Pointer {
	return unsafe.Add(v.ptr, unsafe.Sizeof(C.varray{}))
}

// ArrayGetBytes reads the ith element of a packed primitive array.
func ArrayGetBytes(v Value, i int, kind Kind) Value {
	base := arrayDataPtr(v)
	switch kind {
	case KindI32, KindUI8, KindUI16, KindBool:
		x := *(*int32)(unsafe.Add(base, uintptr(i)*4))
		return NewInt32(x)
	case KindI64:
		x := *(*int64)(unsafe.Add(base, uintptr(i)*8))
		return NewInt64(x)
	case KindF32, KindF64:
		x := *(*float64)(unsafe.Add(base, uintptr(i)*8))
		return NewFloat64(x)
	default:
		return Value{}
	}
}

// ArraySetBytes writes the ith element of a packed primitive array.
func ArraySetBytes(v Value, i int, kind Kind, x Value) {
	base := arrayDataPtr(v)
	switch kind {
	case KindI32, KindUI8, KindUI16, KindBool:
		iv, _ := GetI32(x)
		*(*int32)(unsafe.Add(base, uintptr(i)*4)) = iv
	case KindI64:
		iv, _ := GetI64(x)
		*(*int64)(unsafe.Add(base, uintptr(i)*8)) = iv
	case KindF32, KindF64:
		fv, _ := GetF64(x)
		*(*float64)(unsafe.Add(base, uintptr(i)*8)) = fv
	}
}

// ArrayGetObj reads the ith element of a pointer array.
func ArrayGetObj(v Value, i int) Value {
	base := arrayDataPtr(v)
	p := *(*unsafe.Pointer)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof(uintptr(0))))
	return Value{ptr: p}
}

// ArraySetObj writes the ith element of a pointer array.
func ArraySetObj(v Value, i int, x Value) {
	base := arrayDataPtr(v)
	*(*unsafe.Pointer)(unsafe.Add(base, uintptr(i)*unsafe.Sizeof(uintptr(0)))) = x.ptr
}

// WrapArray builds the host-facing Array<T> object (one of
// hl.types.ArrayBytes_* or hl.types.ArrayObj) around a raw array,
// reading the wrapper's [size, elements] field offsets from its
// runtime layout rather than assuming declaration order (spec.md
// §4.3/§4.5).
func WrapArray(wrapperType Type, raw Value, length int) Value {
	obj := AllocObj(wrapperType)
	sizeOff, sizeKind, sizeOk := FieldLookup(wrapperType, HashName("length"))
	if sizeOk {
		SetField(obj, sizeOff, sizeKind, NewInt32(int32(length)))
	}
	elemOff, elemKind, elemOk := FieldLookup(wrapperType, HashName("array"))
	if elemOk {
		SetField(obj, elemOff, elemKind, raw)
	}
	return obj
}
