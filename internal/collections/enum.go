package collections

import (
	"github.com/corvidhx/hlbridge/internal/errs"
	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/hlrt"
	"github.com/corvidhx/hlbridge/internal/types"
)

// Enums adapts Haxe enum introspection and construction.
type Enums struct {
	res     *types.Resolver
	handles *handle.Registry
}

// NewEnums builds an enum adapter bound to a type resolver and handle
// registry.
func NewEnums(res *types.Resolver, handles *handle.Registry) *Enums {
	return &Enums{res: res, handles: handles}
}

// ConstructCount returns the number of constructors declared on an
// enum type.
func (e *Enums) ConstructCount(enumTypeName string) (int, error) {
	d, err := e.res.FindType(enumTypeName)
	if err != nil {
		return 0, err
	}
	return hlrt.EnumConstructCount(d.Type), nil
}

// ConstructName returns the name of the ith constructor.
func (e *Enums) ConstructName(enumTypeName string, i int) (string, error) {
	d, err := e.res.FindType(enumTypeName)
	if err != nil {
		return "", err
	}
	return hlrt.EnumConstructName(d.Type, i), nil
}

// GetIndex returns the constructor index an enum value was allocated
// with.
func (e *Enums) GetIndex(v *handle.Handle) int {
	if v == nil || v.IsNull() {
		return -1
	}
	return hlrt.EnumGetIndex(v.Value())
}

// GetName returns the constructor name of an enum value.
func (e *Enums) GetName(v *handle.Handle) string {
	if v == nil || v.IsNull() {
		return ""
	}
	return hlrt.EnumGetName(v.Value())
}

// GetParamCount returns v's constructor's parameter count.
func (e *Enums) GetParamCount(v *handle.Handle) int {
	if v == nil || v.IsNull() {
		return 0
	}
	return hlrt.EnumGetParamCount(v.Value())
}

// GetParam reads the ith parameter of an enum value, borrowed.
func (e *Enums) GetParam(v *handle.Handle, i int) (*handle.Handle, error) {
	if v == nil || v.IsNull() {
		return nil, errs.New(errs.NullValue, "cannot read parameter of null enum value")
	}
	if i < 0 || i >= hlrt.EnumGetParamCount(v.Value()) {
		return nil, errs.New(errs.InvalidArgument, "enum parameter index %d out of range", i)
	}
	return e.handles.WrapBorrowed(hlrt.EnumGetParam(v.Value(), i)), nil
}

// Alloc constructs a new enum value for the given constructor index,
// writing params into their declared offsets. Returns a rooted handle.
func (e *Enums) Alloc(enumTypeName string, index int, params []*handle.Handle) (*handle.Handle, error) {
	d, err := e.res.FindType(enumTypeName)
	if err != nil {
		return nil, err
	}
	raw := make([]hlrt.Value, len(params))
	for i, p := range params {
		if p != nil {
			raw[i] = p.Value()
		}
	}
	v := hlrt.EnumAlloc(d.Type, index, raw)
	return e.handles.WrapRooted(v)
}

// Is reports whether v was constructed with the given index.
func (e *Enums) Is(v *handle.Handle, index int) bool {
	if v == nil {
		return false
	}
	return hlrt.EnumIs(v.Value(), index)
}

// IsNamed reports whether v's constructor name matches name.
func (e *Enums) IsNamed(v *handle.Handle, name string) bool {
	if v == nil {
		return false
	}
	return hlrt.EnumIsNamed(v.Value(), name)
}
