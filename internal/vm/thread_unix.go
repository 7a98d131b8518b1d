//go:build unix

package vm

import (
	"log"

	"golang.org/x/sys/unix"
)

// minStackBytes is the smallest RLIMIT_STACK hlbridge considers safe
// for a thread that will run a Haxe entry point: the VM's conservative
// GC scanner walks the native stack, and a Go-spawned OS thread
// inherits the process default, which on some container runtimes is
// set low enough to matter.
const minStackBytes = 2 << 20

func warnIfStackTooSmall() {
	var lim unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_STACK, &lim); err != nil {
		return
	}
	if lim.Cur != unix.RLIM_INFINITY && lim.Cur < minStackBytes {
		log.Printf("hlbridge: RLIMIT_STACK is %d bytes, below the recommended %d for a VM thread", lim.Cur, minStackBytes)
	}
}
