// Package callback implements spec.md §4.6 (C6): host-registered
// functions invoked from VM code, and the trampolines that wrap VM
// arguments for them. Grounded on the teacher's channel-demuxer
// pattern (request keyed by a stable identifier, response routed back
// through a map) adapted here to route VM call sites to host closures
// instead of RPC responses to waiting callers.
package callback

import (
	"sync"
	"unicode/utf16"

	"github.com/corvidhx/hlbridge/internal/errs"
	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/hlrt"
	"github.com/google/uuid"
)

// MaxArity bounds registered callbacks' argument count (spec.md §4.6 —
// 4 covers almost all uses; the trampoline has one compiled shape per
// arity up to this limit).
const MaxArity = 4

// HostFunc is a host-implemented function invocable from VM code. argv
// holds borrowed handles valid only for the duration of the call.
type HostFunc func(vm any, argv []*handle.Handle) (*handle.Handle, error)

type registration struct {
	id    uuid.UUID
	name  string
	arity int
	fn    HostFunc
	tramp hlrt.Function
}

// Dispatcher owns the name -> trampoline table for one VM instance.
type Dispatcher struct {
	vm      any
	handles *handle.Registry

	mu      sync.RWMutex
	byName  map[string]*registration
}

// NewDispatcher creates a callback dispatcher. vm is passed through to
// every HostFunc unchanged — it exists so callbacks can re-enter the
// owning VM instance (spec.md §4.6 explicitly permits this, since the
// calling thread is already registered with the VM's GC).
func NewDispatcher(vm any, handles *handle.Registry) *Dispatcher {
	return &Dispatcher{vm: vm, handles: handles, byName: make(map[string]*registration)}
}

// Register associates name with a host function of the given arity.
// Duplicate names are rejected.
func (d *Dispatcher) Register(name string, arity int, fn HostFunc) error {
	if arity < 0 || arity > MaxArity {
		return errs.New(errs.InvalidArgument, "callback arity %d exceeds limit %d", arity, MaxArity)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byName[name]; exists {
		return errs.New(errs.InvalidArgument, "callback %q already registered", name)
	}
	reg := &registration{id: uuid.New(), name: name, arity: arity, fn: fn}
	reg.tramp = d.buildTrampoline(reg)
	d.byName[name] = reg
	return nil
}

// Get returns a handle wrapping the trampoline for name, suitable for
// storage in a VM-side function-typed static field.
func (d *Dispatcher) Get(name string) (*handle.Handle, error) {
	d.mu.RLock()
	reg, ok := d.byName[name]
	d.mu.RUnlock()
	if !ok {
		return nil, errs.New(errs.MethodNotFound, "no callback registered as %q", name)
	}
	return d.handles.WrapBorrowed(hlrt.FunctionAsValue(reg.tramp)), nil
}

// dispatch is the Go-side body every trampoline closure calls into. It
// is invoked on the VM's own thread (whichever thread made the call
// that reached the trampoline), so it is GC-safe to touch VM memory
// without additional registration.
func (d *Dispatcher) dispatch(reg *registration, rawArgs []hlrt.Value) hlrt.Value {
	argv := make([]*handle.Handle, len(rawArgs))
	for i, a := range rawArgs {
		argv[i] = d.handles.WrapBorrowed(a)
	}
	result, err := reg.fn(d.vm, argv)
	if err != nil {
		// A host-side failure becomes a VM-thrown exception at this
		// boundary, not a null return the VM would mistake for a
		// legitimate result (spec.md §7).
		hlrt.SetThreadException(hlrt.NewString(utf16.Encode([]rune(err.Error()))))
		return hlrt.Value{}
	}
	if result == nil {
		return hlrt.Value{}
	}
	return result.Value()
}

// buildTrampoline allocates a VM closure whose native entry point
// unpacks arguments, calls dispatch, and returns the result to the
// caller. hlrt.NewTrampoline uses purego's NewCallback (purego is
// already used by hlrt/probe.go's symbol resolution) to produce a CDECL
// stub the VM can invoke through a normal function pointer; probe.go's
// dlsym-resolved soft-linked symbols use purego in the reverse
// direction.
func (d *Dispatcher) buildTrampoline(reg *registration) hlrt.Function {
	return hlrt.NewTrampoline(reg.arity, func(rawArgs []hlrt.Value) hlrt.Value {
		return d.dispatch(reg, rawArgs)
	})
}
