package hlrt

import (
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Optional runtime symbols probed via dlopen/dlsym rather than linked
// at build time. spec.md's design notes call these "soft linkage": the
// event-loop and hot-reload entry points are only present when the
// Haxe program actually uses `sys.thread.EventLoop`/`MainLoop`, or when
// libhl was built with hot-reload support. purego — already part of the
// dependency graph via wails' webview loader — is the natural fit: it
// resolves C symbols by name at runtime with no cgo declaration needed,
// so a missing symbol degrades to "unavailable" instead of a link error.
const (
	symAsyncIORunNoWait  = "hl_uv_run_nowait"
	symEventLoopProgress = "hl_eventloop_progress"
	symMainLoopTick      = "hl_mainloop_tick"
	symHLModuleReload    = "hl_module_reload"
)

var (
	probeOnce sync.Once
	handle    uintptr
	symbols   map[string]uintptr
)

func probeInit() {
	probeOnce.Do(func() {
		symbols = make(map[string]uintptr)
		h, err := purego.Dlopen("libhl", purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			// The symbols may still be resolvable against the main
			// executable's own symbol table (statically linked libhl).
			h, err = purego.Dlopen("", purego.RTLD_NOW|purego.RTLD_GLOBAL)
			if err != nil {
				return
			}
		}
		handle = h
		for _, name := range []string{symAsyncIORunNoWait, symEventLoopProgress, symMainLoopTick, symHLModuleReload} {
			if sym, err := purego.Dlsym(handle, name); err == nil {
				symbols[name] = sym
			}
		}
	})
}

func hasSymbol(name string) bool {
	probeInit()
	_, ok := symbols[name]
	return ok
}

// AsyncIOAvailable reports whether the linked libhl build exposes the
// runtime's async-I/O loop, without running a pass of it.
func AsyncIOAvailable() bool { return hasSymbol(symAsyncIORunNoWait) }

// HaxeEventLoopAvailable reports whether the module links against the
// Haxe-level event loop entry points.
func HaxeEventLoopAvailable() bool { return hasSymbol(symEventLoopProgress) || hasSymbol(symMainLoopTick) }

// EventLoopProgress calls the Haxe-thread-local event loop's progress
// entry (fires due timers). Returns false if the symbol is absent —
// the driver treats that as a permanent no-op for this process.
func EventLoopProgress() bool {
	if !hasSymbol(symEventLoopProgress) {
		return false
	}
	purego.SyscallN(symbols[symEventLoopProgress])
	return true
}

// MainLoopTick calls the Haxe-level MainLoop.tick entry (fires
// MainLoop.add-registered callbacks). Returns false if absent.
func MainLoopTick() bool {
	if !hasSymbol(symMainLoopTick) {
		return false
	}
	purego.SyscallN(symbols[symMainLoopTick])
	return true
}

// AsyncIORunNoWait runs one non-blocking pass of the VM runtime's
// async-I/O loop (I/O completions and runtime-level timers). Returns
// false if the linked libhl build has no async-I/O loop compiled in.
func AsyncIORunNoWait() bool {
	if !hasSymbol(symAsyncIORunNoWait) {
		return false
	}
	purego.SyscallN(symbols[symAsyncIORunNoWait])
	return true
}

func callHLModuleReload(oldMod, newMod unsafe.Pointer) bool {
	if !hasSymbol(symHLModuleReload) {
		return false
	}
	ret := purego.SyscallN(symbols[symHLModuleReload], uintptr(oldMod), uintptr(newMod))
	return ret != 0
}
