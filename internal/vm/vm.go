// Package vm implements spec.md §4.9 (C9): the VM instance lifecycle
// state machine, and §5's two concurrency configurations (host-driven
// and dedicated-thread). Grounded on the teacher's lifecycle.Manager —
// the same mutex-guarded string-constant state machine and
// log.Printf-style diagnostics — adapted from
// "managed guest process" states to "embedded VM instance" states.
package vm

import (
	"log"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/corvidhx/hlbridge/internal/callback"
	"github.com/corvidhx/hlbridge/internal/errs"
	"github.com/corvidhx/hlbridge/internal/eventloop"
	"github.com/corvidhx/hlbridge/internal/exception"
	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/hlrt"
	"github.com/corvidhx/hlbridge/internal/invoke"
	"github.com/corvidhx/hlbridge/internal/types"
)

// State mirrors spec.md §4.9's state machine.
const (
	StateNew         = "new"
	StateCreated     = "created"
	StateInitialized = "initialized"
	StateLoaded      = "loaded"
	StateReady       = "ready"
	StateDestroyed   = "destroyed"
)

// Mode selects which of §5's two concurrency configurations the
// instance runs under. Must be set before CallEntry.
type Mode int

const (
	// ModeHostDriven runs every operation on the thread that called
	// Init; the host is responsible for driving C8 itself.
	ModeHostDriven Mode = iota
	// ModeDedicatedThread spawns one OS thread to run CallEntry
	// (which may block in a Haxe while loop); other threads reach the
	// VM only through ThreadCallSync/ThreadCallAsync.
	ModeDedicatedThread
)

// processInitialized guards hlrt.GlobalInit, which spec.md §9 and the
// underlying runtime document as non-idempotent: calling it twice in
// one process is not supported.
var processInitialized sync.Once

// instanceCreated enforces spec.md §9's "exactly one VM instance per
// process" Non-goal at Create, rather than leaving it to be discovered
// only once Init runs. Never reset — Destroy is terminal, so a second
// Instance is never valid for the remaining life of the process.
var instanceCreated atomic.Bool

// Instance is one embedded VM. Exactly one module may be loaded into
// it at a time; Reload swaps the module in place.
type Instance struct {
	mu    sync.Mutex
	state string
	mode  Mode

	mod hlrt.Module

	Handles    *handle.Registry
	Types      *types.Resolver
	Invoke     *invoke.Engine
	Callbacks  *callback.Dispatcher
	Exceptions *exception.State
	Events     *eventloop.Driver

	thread  *dedicatedThread
	history eventRing
}

// RecentEvents returns recently recorded lifecycle/reload transitions,
// oldest first, for diagnostics (the inspector's status view).
func (i *Instance) RecentEvents() []Event {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.history.recent()
}

// recordEvent appends to the instance's diagnostics ring. Caller must
// hold i.mu.
func (i *Instance) recordEvent(note string) {
	i.history.push(Event{State: i.state, Note: note})
}

// Create allocates an instance wrapper and registers the calling
// thread with the VM's GC (spec.md §4.9 — required for any
// GC-safe call). Only one Instance may exist per process (spec.md §9's
// Non-goal); a second call returns AlreadyInitialized.
func Create() (*Instance, error) {
	if !instanceCreated.CompareAndSwap(false, true) {
		return nil, errs.New(errs.AlreadyInitialized, "a VM instance already exists in this process")
	}

	var stackMarker int
	hlrt.RegisterThread(unsafe.Pointer(&stackMarker))

	inst := &Instance{state: StateCreated}
	inst.Handles = handle.NewRegistry()
	inst.Exceptions = exception.NewState(inst.Handles)
	inst.Events = eventloop.NewDriver()
	inst.Callbacks = callback.NewDispatcher(inst, inst.Handles)
	return inst, nil
}

// SetMode configures §5's concurrency model. Must be called before
// CallEntry; has no effect afterward.
func (i *Instance) SetMode(m Mode) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.mode = m
}

// Init sets up the VM runtime. hlrt.GlobalInit runs at most once per
// process (guarded by processInitialized); Init returns
// AlreadyInitialized when the instance is not in the created state,
// e.g. on a second Init call. A second Instance never reaches Init,
// since Create admits only one per process — the underlying runtime
// supports exactly one live VM per process (spec.md §9's documented
// restriction, recorded as an explicit decision in DESIGN.md rather
// than worked around).
func (i *Instance) Init(args []string) error {
	i.mu.Lock()
	if i.state != StateCreated {
		i.mu.Unlock()
		return errs.New(errs.AlreadyInitialized, "instance not in created state")
	}
	i.mu.Unlock()

	processInitialized.Do(func() {
		hlrt.GlobalInit()
	})

	i.mu.Lock()
	i.state = StateInitialized
	i.recordEvent("runtime initialized")
	i.mu.Unlock()
	return nil
}

// LoadFile parses bytecode from disk and allocates a module.
func (i *Instance) LoadFile(path string) error {
	mod, err := hlrt.LoadFile(path)
	if err != nil {
		return errs.Wrap(errs.ModuleLoadFailed, err, "load bytecode file %s", path)
	}
	return i.bindModule(mod)
}

// LoadMemory parses bytecode from an in-memory buffer.
func (i *Instance) LoadMemory(buf []byte) error {
	mod, err := hlrt.LoadMemory(buf)
	if err != nil {
		return errs.Wrap(errs.ModuleLoadFailed, err, "load bytecode from memory")
	}
	return i.bindModule(mod)
}

func (i *Instance) bindModule(mod hlrt.Module) error {
	i.mu.Lock()
	if i.state != StateInitialized {
		i.mu.Unlock()
		return errs.New(errs.InitFailed, "module already loaded or instance not initialized")
	}
	i.mod = mod
	i.Types = types.NewResolver(mod)
	i.Invoke = invoke.New(mod, i.Types, i.Handles)
	i.state = StateLoaded
	i.recordEvent("module bound")
	i.mu.Unlock()
	return nil
}

// CallEntry invokes the module's entry function. In ModeHostDriven the
// entry point is expected to return and the caller drives C8 itself.
// In ModeDedicatedThread the entry point runs on a spawned thread,
// which may block indefinitely in a Haxe-level loop; CallEntry returns
// once the thread has started, not once the entry point returns.
func (i *Instance) CallEntry() error {
	i.mu.Lock()
	if i.state != StateLoaded {
		i.mu.Unlock()
		return errs.New(errs.EntryPointMissing, "no module loaded")
	}
	mode := i.mode
	mod := i.mod
	i.mu.Unlock()

	switch mode {
	case ModeDedicatedThread:
		th := newDedicatedThread(mod)
		i.mu.Lock()
		i.thread = th
		i.mu.Unlock()
		th.start()
	default:
		exc, ok := mod.CallEntry()
		if !ok {
			_ = exc
			return errs.New(errs.CallFailed, "module entry point raised an exception")
		}
	}

	i.mu.Lock()
	i.state = StateReady
	i.recordEvent("entry point ran")
	i.mu.Unlock()
	i.Invoke.MarkEntryRan()
	return nil
}

// Reload loads a new bytecode image and reconciles function pointers
// at existing call sites (spec.md §4.9). Only supported when the
// linked runtime exposes hot-reload primitives.
func (i *Instance) Reload(buf []byte) error {
	i.mu.Lock()
	if i.state != StateReady {
		i.mu.Unlock()
		return errs.New(errs.ReloadNotEnabled, "instance not in ready state")
	}
	mod := i.mod
	i.mu.Unlock()

	newMod, err := hlrt.ReloadModule(mod, buf)
	if err != nil {
		return errs.Wrap(errs.ReloadFailed, err, "reload module")
	}

	i.mu.Lock()
	i.mod = newMod
	i.recordEvent("module reloaded")
	i.mu.Unlock()
	i.Types.Reset(newMod)
	i.Invoke = invoke.New(newMod, i.Types, i.Handles)
	i.Invoke.MarkEntryRan()
	return nil
}

// Destroy releases all core-owned registries and tears down the
// runtime. Terminal: the runtime cannot be reinitialized afterward in
// this process (spec.md §4.9 — non-idempotent, matches
// hlrt.GlobalFree's documented restriction).
func (i *Instance) Destroy() error {
	i.mu.Lock()
	if i.state == StateDestroyed {
		i.mu.Unlock()
		return nil
	}
	th := i.thread
	i.state = StateDestroyed
	i.recordEvent("instance destroyed")
	i.mu.Unlock()

	if th != nil {
		if err := th.stop(); err != nil {
			log.Printf("hlbridge: dedicated VM thread stop: %v", err)
		}
	}

	i.Handles.ReleaseAll()
	hlrt.UnregisterThread()
	hlrt.GlobalFree()
	return nil
}

// ThreadCallSync pushes fn onto the dedicated VM thread's work queue
// and blocks until it has run. Only valid in ModeDedicatedThread; in
// ModeHostDriven fn runs inline instead, since there is no other
// thread to dispatch to (spec.md §5 — the host is always welcome to
// call the core directly on its own thread in that mode).
func (i *Instance) ThreadCallSync(fn func()) error {
	i.mu.Lock()
	th := i.thread
	i.mu.Unlock()
	if th == nil {
		fn()
		return nil
	}
	return th.callSync(fn)
}

// ThreadCallAsync queues fn on the dedicated VM thread and returns
// immediately; onComplete fires once fn has run. See ThreadCallSync
// for the ModeHostDriven fallback.
func (i *Instance) ThreadCallAsync(fn func(), onComplete func()) error {
	i.mu.Lock()
	th := i.thread
	i.mu.Unlock()
	if th == nil {
		fn()
		if onComplete != nil {
			onComplete()
		}
		return nil
	}
	return th.callAsync(fn, onComplete)
}

// State returns the instance's current lifecycle state.
func (i *Instance) State() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

