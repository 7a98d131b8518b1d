package collections

import (
	"github.com/corvidhx/hlbridge/internal/errs"
	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/hlrt"
)

// Bytes adapts the VM's raw byte-buffer representation.
type Bytes struct {
	handles *handle.Registry
}

// NewBytes builds a byte-buffer adapter bound to a handle registry.
func NewBytes(handles *handle.Registry) *Bytes {
	return &Bytes{handles: handles}
}

// New allocates a zeroed byte buffer of the given size.
func (b *Bytes) New(size int) (*handle.Handle, error) {
	if size < 0 {
		return nil, errs.New(errs.InvalidArgument, "negative byte buffer size %d", size)
	}
	return b.handles.WrapRooted(hlrt.AllocBytes(size))
}

// Read copies n bytes starting at offset out of v.
func (b *Bytes) Read(v *handle.Handle, offset, n int) ([]byte, error) {
	if v == nil || v.IsNull() {
		return nil, errs.New(errs.NullValue, "cannot read from null bytes value")
	}
	return hlrt.BytesRead(v.Value(), offset, n), nil
}

// Write copies buf into v starting at offset.
func (b *Bytes) Write(v *handle.Handle, offset int, buf []byte) error {
	if v == nil || v.IsNull() {
		return errs.New(errs.NullValue, "cannot write to null bytes value")
	}
	hlrt.BytesWrite(v.Value(), offset, buf)
	return nil
}
