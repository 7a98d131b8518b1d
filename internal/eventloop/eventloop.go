// Package eventloop implements spec.md §4.8 (C8): driving the VM's two
// independent, optional cooperative event loops from the host's own
// per-frame tick.
package eventloop

import "github.com/corvidhx/hlbridge/internal/hlrt"

// Kind selects which loop(s) a call to Driver.Process should pump.
type Kind int

const (
	IO Kind = iota
	Haxe
	Both
)

// Driver pumps the VM runtime's asynchronous-I/O loop and the
// Haxe-level main-event loop, both probed for at runtime (spec.md §4.8
// — either may be entirely absent from a given linked build, in which
// case pumping it is a permanent no-op for the process).
type Driver struct{}

// NewDriver creates an event-loop driver. There is no per-VM state:
// both loops the driver pumps are process-global inside the VM
// runtime, matching spec.md's description of them as existing "inside
// the VM module" rather than per-instance.
func NewDriver() *Driver { return &Driver{} }

// Process makes one non-blocking pass of the requested loop(s).
func (d *Driver) Process(kind Kind) {
	switch kind {
	case IO:
		hlrt.AsyncIORunNoWait()
	case Haxe:
		d.processHaxe()
	case Both:
		hlrt.AsyncIORunNoWait()
		d.processHaxe()
	}
}

// processHaxe fires due Haxe-thread-local timers (progress), then runs
// registered MainLoop.add callbacks (tick). Both calls are required:
// skipping progress misses Haxe-level timers entirely (spec.md §4.8).
func (d *Driver) processHaxe() {
	hlrt.EventLoopProgress()
	hlrt.MainLoopTick()
}

// Update is the per-frame entry point: one BOTH pass, expected to be
// called once per host frame. Never blocks.
func (d *Driver) Update(deltaSeconds float64) {
	_ = deltaSeconds
	d.Process(Both)
}

// HasPending reports whether either probed loop is known to exist for
// this process. It cannot see into the loops' internal queues — only
// whether the symbols were found at all — so a true result means "this
// loop exists and might have work", not "there is definitely pending
// work".
func (d *Driver) HasPending(kind Kind) bool {
	switch kind {
	case IO:
		return hlrt.AsyncIOAvailable()
	case Haxe:
		return hlrt.HaxeEventLoopAvailable()
	default:
		return hlrt.AsyncIOAvailable() || hlrt.HaxeEventLoopAvailable()
	}
}
