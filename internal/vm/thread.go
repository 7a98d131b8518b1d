package vm

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"unsafe"

	"golang.org/x/sync/errgroup"

	"github.com/corvidhx/hlbridge/internal/hlrt"
)

// threadCallQueueDepth bounds how many pending ThreadCallSync/Async
// requests may queue before callers block. 256 is generous for the
// request-response traffic this bridge expects (per-call overhead
// dominates before the queue would ever fill); see DESIGN.md.
const threadCallQueueDepth = 256

// threadCall is one unit of work dispatched onto the dedicated VM
// thread. Grounded on the teacher's channelDemuxer.Call: push work,
// block (sync) or return immediately (async) on a response channel.
type threadCall struct {
	fn       func()
	done     chan struct{}
	onResult func()
}

// dedicatedThread runs a module's entry point on its own OS thread and
// accepts work from other goroutines through a bounded FIFO queue,
// implementing spec.md §5's dedicated-thread configuration.
type dedicatedThread struct {
	mod      hlrt.Module
	queue    chan *threadCall
	group    *errgroup.Group
	ctx      context.Context
	cancelFn context.CancelFunc
}

func newDedicatedThread(mod hlrt.Module) *dedicatedThread {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	return &dedicatedThread{
		mod:      mod,
		queue:    make(chan *threadCall, threadCallQueueDepth),
		group:    g,
		ctx:      ctx,
		cancelFn: cancel,
	}
}

// start spawns the dedicated thread. The entry point may block
// indefinitely in a Haxe-level loop; the queue is drained at whatever
// cooperative points the Haxe program reaches (typically inside its
// own event loop tick, which the host must have overridden to return
// promptly — spec.md §4.8).
func (t *dedicatedThread) start() {
	t.group.Go(func() error {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		warnIfStackTooSmall()

		var stackMarker int
		hlrt.RegisterThread(unsafe.Pointer(&stackMarker))
		defer hlrt.UnregisterThread()

		go t.drainLoop()

		exc, ok := t.mod.CallEntry()
		if !ok {
			_ = exc
			return fmt.Errorf("dedicated VM thread: entry point raised an exception")
		}
		return nil
	})
}

// drainLoop consumes queued calls. Real Haxe-side draining happens
// inside the VM's own cooperative points; this goroutine exists for
// calls issued after the entry point has already returned control
// (e.g. a host-driven bridge embedded by an app that also wants a
// worker thread), and is the thing ThreadCallSync/Async actually wait
// on.
func (t *dedicatedThread) drainLoop() {
	for {
		select {
		case <-t.ctx.Done():
			return
		case call := <-t.queue:
			call.fn()
			if call.onResult != nil {
				call.onResult()
			}
			close(call.done)
		}
	}
}

// callSync pushes fn onto the queue and blocks until it has run.
func (t *dedicatedThread) callSync(fn func()) error {
	call := &threadCall{fn: fn, done: make(chan struct{})}
	select {
	case t.queue <- call:
	case <-t.ctx.Done():
		return fmt.Errorf("dedicated VM thread stopped")
	}
	select {
	case <-call.done:
		return nil
	case <-t.ctx.Done():
		return fmt.Errorf("dedicated VM thread stopped while waiting for call")
	}
}

// callAsync pushes fn onto the queue and returns immediately;
// onComplete fires once fn has run, with no ordering guarantee
// relative to the caller's subsequent operations beyond the queue's
// own FIFO order (spec.md §5).
func (t *dedicatedThread) callAsync(fn func(), onComplete func()) error {
	call := &threadCall{fn: fn, done: make(chan struct{}), onResult: onComplete}
	select {
	case t.queue <- call:
		return nil
	case <-t.ctx.Done():
		return fmt.Errorf("dedicated VM thread stopped")
	}
}

// stop cancels the drain loop and waits for the entry-point goroutine
// to exit. Blocking, per spec.md §5's suspension-point list.
func (t *dedicatedThread) stop() error {
	t.cancelFn()
	if err := t.group.Wait(); err != nil {
		log.Printf("hlbridge: dedicated VM thread exited with error: %v", err)
		return err
	}
	return nil
}
