package hlrt

/*
#include <hl.h>
*/
import "C"
import "unsafe"

// HotReloadAvailable reports whether the linked libhl build exposes the
// hot-reload symbols. Some builds omit them entirely; spec.md §4.9/§6.1
// requires the core treat that as NotSupported rather than a link
// failure, so the probe happens at runtime via the dynamic loader (see
// probe.go), not at link time.
func HotReloadAvailable() bool {
	return hasSymbol(symHLModuleReload)
}

// ReloadModule loads a new bytecode image and asks the VM to reconcile
// function pointers at existing call sites so in-flight references
// (including CachedCall function values) keep working.
func ReloadModule(mod Module, buf []byte) (Module, error) {
	if !HotReloadAvailable() {
		return Module{}, errReloadNotSupported
	}
	newMod, err := LoadMemory(buf)
	if err != nil {
		return Module{}, err
	}
	ok := callHLModuleReload(unsafe.Pointer(mod.m), unsafe.Pointer(newMod.m))
	if !ok {
		return Module{}, errReloadFailed
	}
	return newMod, nil
}

var (
	errReloadNotSupported = &cError{"hot-reload symbols not present in linked libhl"}
	errReloadFailed        = &cError{"hl_module_reload rejected the new image"}
)
