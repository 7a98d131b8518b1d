package collections

import (
	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/invoke"
	"github.com/corvidhx/hlbridge/internal/value"
)

// Maps adapts Haxe's standard Map<K,V> as method dispatches through the
// invocation engine — there is no raw-memory fast path for maps the
// way there is for arrays, since the underlying hash table layout is
// not part of the stable embedding surface (spec.md §4.5).
type Maps struct {
	eng *invoke.Engine
}

// NewMaps builds a map adapter bound to an invocation engine.
func NewMaps(eng *invoke.Engine) *Maps {
	return &Maps{eng: eng}
}

// New constructs a new instance of the given map class (e.g.
// "haxe.ds.StringMap" or "haxe.ds.IntMap"), selected by the caller
// based on key type.
func (m *Maps) New(className string) (*handle.Handle, error) {
	return m.eng.NewInstance(className, nil)
}

// Get dispatches to the map's "get" method.
func (m *Maps) Get(mapHandle *handle.Handle, key *handle.Handle) (*handle.Handle, error) {
	return m.eng.CallMethod(mapHandle, "get", []*handle.Handle{key})
}

// Set dispatches to the map's "set" method.
func (m *Maps) Set(mapHandle *handle.Handle, key, value *handle.Handle) error {
	_, err := m.eng.CallMethod(mapHandle, "set", []*handle.Handle{key, value})
	return err
}

// Has dispatches to the map's "exists" method and unboxes the boolean
// result.
func (m *Maps) Has(mapHandle *handle.Handle, key *handle.Handle) (bool, error) {
	res, err := m.eng.CallMethod(mapHandle, "exists", []*handle.Handle{key})
	if err != nil {
		return false, err
	}
	return value.ToBool(res, false), nil
}

// Keys dispatches to the map's "keys" method, returning an iterator
// handle (itself a VM value) for the caller to drive via CallMethod
// "hasNext"/"next".
func (m *Maps) Keys(mapHandle *handle.Handle) (*handle.Handle, error) {
	return m.eng.CallMethod(mapHandle, "keys", nil)
}
