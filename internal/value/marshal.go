// Package value implements spec.md §4.2 (C2): two-directional conversion
// between host primitives/strings/buffers and VM values.
package value

import (
	"github.com/corvidhx/hlbridge/internal/errs"
	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/hlrt"
)

// FromInt32 boxes a host int32 as a rooted VM value.
func FromInt32(reg *handle.Registry, x int32) (*handle.Handle, error) {
	return reg.WrapRooted(hlrt.NewInt32(x))
}

// FromInt64 boxes a host int64 as a rooted VM value.
func FromInt64(reg *handle.Registry, x int64) (*handle.Handle, error) {
	return reg.WrapRooted(hlrt.NewInt64(x))
}

// FromFloat64 boxes a host float64 as a rooted VM value.
func FromFloat64(reg *handle.Registry, x float64) (*handle.Handle, error) {
	return reg.WrapRooted(hlrt.NewFloat64(x))
}

// FromBool boxes a host bool as a rooted VM value.
func FromBool(reg *handle.Registry, x bool) (*handle.Handle, error) {
	return reg.WrapRooted(hlrt.NewBool(x))
}

// FromString transcodes a host UTF-8 string to the VM's 16-bit encoding
// and wraps it as a rooted string value. Empty strings round-trip as
// empty, not null (spec.md §4.2).
func FromString(reg *handle.Registry, s string) (*handle.Handle, error) {
	units := ToUTF16(s)
	v := hlrt.NewString(units)
	return reg.WrapRooted(v)
}

// FromBytes produces a byte value referencing newly-allocated VM memory
// of the given length, copying buf into it.
func FromBytes(reg *handle.Registry, buf []byte) (*handle.Handle, error) {
	v := hlrt.AllocBytes(len(buf))
	if len(buf) > 0 {
		hlrt.CopyIntoBytes(v, buf)
	}
	return reg.WrapRooted(v)
}

// Null produces a host-observable null value whose type descriptor is
// "dynamic".
func Null(reg *handle.Registry) *handle.Handle {
	return reg.WrapBorrowed(hlrt.Value{})
}

// ToInt32 extracts a VM value as int32 via the integer-kind accessor.
// Returns fallback (not an error) on type mismatch or null, per
// spec.md §4.2's "Null received for a primitive extractor" rule.
func ToInt32(h *handle.Handle, fallback int32) int32 {
	if h == nil || h.IsNull() {
		return fallback
	}
	i, ok := hlrt.GetI32(h.Value())
	if !ok {
		return fallback
	}
	return i
}

// ToInt64 extracts a VM value as int64, with the same fallback rule.
func ToInt64(h *handle.Handle, fallback int64) int64 {
	if h == nil || h.IsNull() {
		return fallback
	}
	i, ok := hlrt.GetI64(h.Value())
	if !ok {
		return fallback
	}
	return i
}

// ToFloat64 extracts a VM value as float64 via the float-kind accessor.
func ToFloat64(h *handle.Handle, fallback float64) float64 {
	if h == nil || h.IsNull() {
		return fallback
	}
	f, ok := hlrt.GetF64(h.Value())
	if !ok {
		return fallback
	}
	return f
}

// ToBool extracts a VM value as bool.
func ToBool(h *handle.Handle, fallback bool) bool {
	if h == nil || h.IsNull() {
		return fallback
	}
	b, ok := hlrt.GetBool(h.Value())
	if !ok {
		return fallback
	}
	return b
}

// ToString transcodes a VM string value back to a host-owned UTF-8
// string. If v is an object of the VM's string type but not itself a
// raw string value, its to-string mechanism is invoked first. If v is a
// "boxed" dynamic, one level is unwrapped and re-dispatched (spec.md
// §4.2).
func ToString(h *handle.Handle) (string, error) {
	if h == nil || h.IsNull() {
		return "", errs.New(errs.NullValue, "cannot extract string from null")
	}
	v := h.Value()
	if hlrt.IsDynObj(v) {
		v = hlrt.Unwrap(v)
	}
	if !hlrt.IsStringKind(v) {
		v = hlrt.ToString(v)
	}
	units := hlrt.StringUnits(v)
	return FromUTF16(units), nil
}

// PromoteBytesToString performs the silent byte->string coercion spec.md
// §4.2/§9 requires when a host-built byte value is passed where a
// method declares a String parameter: the buffer's type tag is
// rewritten in place, which is zero-cost because the layout of both
// kinds (length + 16-bit code units) is identical.
func PromoteBytesToString(h *handle.Handle) *handle.Handle {
	hlrt.PromoteBytesToString(h.Value())
	return h
}
