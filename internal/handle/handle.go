// Package handle implements spec.md §4.1 (C1): owned/borrowed wrappers
// around VM values and the GC-root bookkeeping that keeps rooted values
// reachable independent of the host's call stack.
package handle

import (
	"sync"

	"github.com/corvidhx/hlbridge/internal/errs"
	"github.com/corvidhx/hlbridge/internal/hlrt"
)

// Handle is an owned wrapper around a VM value. See spec.md §3.2/§3.3
// for the ownership invariants this type enforces.
type Handle struct {
	value   hlrt.Value
	rooted  bool
	vm      *Registry
	release sync.Once
}

// Value returns the underlying VM value. Safe to call regardless of
// rooted/borrowed status — liveness is the caller's responsibility per
// spec.md §3.3.
func (h *Handle) Value() hlrt.Value { return h.value }

// IsRooted reports whether this handle registered a GC root.
func (h *Handle) IsRooted() bool { return h.rooted }

// IsNull reports whether the wrapped value is the VM null.
func (h *Handle) IsNull() bool { return h.value.IsNull() }

// Release removes the GC root (if any) and frees wrapper bookkeeping.
// Idempotent: safe to call multiple times or on a nil *Handle.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.release.Do(func() {
		if h.rooted {
			h.vm.unroot(h)
		}
	})
}

// Registry tracks every rooted Handle for one VM instance. The
// registry itself does not bound how many roots may exist; it tolerates
// roots being added and removed in any order (spec.md §4.1).
type Registry struct {
	mu    sync.Mutex
	roots map[*Handle]*hlrt.Value
}

// NewRegistry creates an empty root registry for one VM instance.
func NewRegistry() *Registry {
	return &Registry{roots: make(map[*Handle]*hlrt.Value)}
}

// WrapRooted registers a GC root on raw and returns a Handle with
// IsRooted() == true. Required for any value that (a) outlives the
// current host stack frame, (b) is handed to asynchronous host code,
// or (c) is placed inside a host heap-allocated struct (spec.md §4.1).
func (r *Registry) WrapRooted(raw hlrt.Value) (*Handle, error) {
	h := &Handle{value: raw, rooted: true, vm: r}

	r.mu.Lock()
	if r.roots == nil {
		r.mu.Unlock()
		return nil, errs.New(errs.OutOfMemory, "root registry not initialized")
	}
	slot := new(hlrt.Value)
	*slot = raw
	r.roots[h] = slot
	r.mu.Unlock()

	hlrt.RootAdd(slot)
	return h, nil
}

// WrapBorrowed returns a Handle with IsRooted() == false. Used for values
// whose liveness is guaranteed by an enclosing rooted object (e.g. a
// field read where the parent is held) or for temporaries scoped to one
// function call.
func (r *Registry) WrapBorrowed(raw hlrt.Value) *Handle {
	return &Handle{value: raw, rooted: false, vm: r}
}

// Len reports the number of currently live rooted handles. Exists only
// for diagnostics and the spec.md §8 handle-integrity property test; it
// has no effect on core semantics.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.roots)
}

func (r *Registry) unroot(h *Handle) {
	r.mu.Lock()
	slot, ok := r.roots[h]
	if ok {
		delete(r.roots, h)
	}
	r.mu.Unlock()
	if ok {
		hlrt.RootRemove(slot)
	}
}

// ReleaseAll force-releases every still-live rooted handle. Called by
// the VM instance during Destroy (spec.md §4.9) so no root registration
// outlives the runtime teardown.
func (r *Registry) ReleaseAll() {
	r.mu.Lock()
	slots := make([]*hlrt.Value, 0, len(r.roots))
	for _, slot := range r.roots {
		slots = append(slots, slot)
	}
	r.roots = make(map[*Handle]*hlrt.Value)
	r.mu.Unlock()

	for _, slot := range slots {
		hlrt.RootRemove(slot)
	}
}
