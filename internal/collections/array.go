// Package collections implements spec.md §4.5 (C5): adapters over the
// VM's array, map, enum, byte-buffer, and abstract-type representations.
package collections

import (
	"github.com/corvidhx/hlbridge/internal/errs"
	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/hlrt"
	"github.com/corvidhx/hlbridge/internal/invoke"
	"github.com/corvidhx/hlbridge/internal/types"
)

// Arrays adapts the two physical array layouts (ArrayBytes_* and
// ArrayObj) behind one index-based API.
type Arrays struct {
	res     *types.Resolver
	handles *handle.Registry
}

// NewArrays builds an array adapter bound to a type resolver and
// handle registry.
func NewArrays(res *types.Resolver, handles *handle.Registry) *Arrays {
	return &Arrays{res: res, handles: handles}
}

// wrapperClassName picks the Haxe standard-library wrapper class for
// an element kind: an ArrayBytes_* variant for i32, f64, f32 and ui16
// elements, or ArrayObj for every other kind (ui8, i64 and bool
// included).
func wrapperClassName(k hlrt.Kind) string {
	switch k {
	case hlrt.KindI32:
		return "hl.types.ArrayBytes_Int"
	case hlrt.KindF64:
		return "hl.types.ArrayBytes_F64"
	case hlrt.KindF32:
		return "hl.types.ArrayBytes_Single"
	case hlrt.KindUI16:
		return "hl.types.ArrayBytes_Bytes"
	default:
		return "hl.types.ArrayObj"
	}
}

// New allocates a raw array of length n holding elem-kind elements and
// wraps it in the correct host-facing Array<T> object.
func (a *Arrays) New(elemKind hlrt.Kind, n int) (*handle.Handle, error) {
	wrapperName := wrapperClassName(elemKind)
	wrapperType, err := a.res.FindType(wrapperName)
	if err != nil {
		return nil, errs.Wrap(errs.TypeNotFound, err, "array wrapper class %s not loaded", wrapperName)
	}
	raw := hlrt.AllocArray(hlrt.PrimType(elemKind), n)
	wrapped := hlrt.WrapArray(wrapperType.Type, raw, n)
	return a.handles.WrapRooted(wrapped)
}

func (a *Arrays) rawAndKind(wrapped *handle.Handle) (raw hlrt.Value, kind hlrt.Kind, err error) {
	if wrapped == nil || wrapped.IsNull() {
		return hlrt.Value{}, 0, errs.New(errs.NullValue, "nil array handle")
	}
	t := hlrt.TypeOf(wrapped.Value())
	d, ferr := a.res.FindType(hlrt.TypeName(t))
	if ferr != nil {
		return hlrt.Value{}, 0, errs.Wrap(errs.TypeNotFound, ferr, "array wrapper type not registered")
	}
	_, _, ok := types.FindField(d, "array")
	if !ok {
		return hlrt.Value{}, 0, errs.New(errs.InvalidType, "value is not an array wrapper")
	}
	off, k, _ := hlrt.FieldLookup(t, hlrt.HashName("array"))
	arrField := hlrt.GetField(wrapped.Value(), off, k)
	elem := hlrt.ArrayElemType(arrField)
	return arrField, elem.Kind(), nil
}

// Length returns the array's logical length, read from the wrapper's
// size field.
func (a *Arrays) Length(wrapped *handle.Handle) int {
	if wrapped == nil || wrapped.IsNull() {
		return 0
	}
	t := hlrt.TypeOf(wrapped.Value())
	off, k, ok := hlrt.FieldLookup(t, hlrt.HashName("length"))
	if !ok {
		return 0
	}
	v := hlrt.GetField(wrapped.Value(), off, k)
	n, _ := hlrt.GetI32(v)
	return int(n)
}

// Get reads the ith element, returning a null handle on out-of-range
// access (spec.md §4.5).
func (a *Arrays) Get(wrapped *handle.Handle, i int) *handle.Handle {
	raw, kind, err := a.rawAndKind(wrapped)
	if err != nil || i < 0 || i >= hlrt.ArrayLength(raw) {
		return a.handles.WrapBorrowed(hlrt.Value{})
	}
	if hlrt.LayoutForElem(kind) == hlrt.ArrayLayoutBytes {
		return a.handles.WrapBorrowed(hlrt.ArrayGetBytes(raw, i, kind))
	}
	return a.handles.WrapBorrowed(hlrt.ArrayGetObj(raw, i))
}

// Set writes the ith element. Out-of-range access fails.
func (a *Arrays) Set(wrapped *handle.Handle, i int, v *handle.Handle) error {
	raw, kind, err := a.rawAndKind(wrapped)
	if err != nil {
		return err
	}
	if i < 0 || i >= hlrt.ArrayLength(raw) {
		return errs.New(errs.InvalidArgument, "array index %d out of range", i)
	}
	if hlrt.LayoutForElem(kind) == hlrt.ArrayLayoutBytes {
		hlrt.ArraySetBytes(raw, i, kind, v.Value())
	} else {
		hlrt.ArraySetObj(raw, i, v.Value())
	}
	return nil
}

// Push appends a value, growing the array via the standard library's
// push method (spec.md §4.5 requires routing through the wrapper's own
// growth logic rather than reallocating the raw array ourselves).
func (a *Arrays) Push(eng *invoke.Engine, wrapped *handle.Handle, v *handle.Handle) error {
	_, err := eng.CallMethod(wrapped, "push", []*handle.Handle{v})
	return err
}
