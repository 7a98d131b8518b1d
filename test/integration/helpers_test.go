//go:build integration

package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/value"
	"github.com/corvidhx/hlbridge/internal/vm"
)

var fixturesDir string

func TestMain(m *testing.M) {
	_, thisFile, _, _ := runtime.Caller(0)
	fixturesDir = filepath.Join(filepath.Dir(thisFile), "fixtures")

	if _, err := os.Stat(fixturesDir); err != nil {
		fmt.Fprintf(os.Stderr, "fixtures not found at %s — compiled .hl fixture modules are required\n", fixturesDir)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// fixture returns the path to a compiled bytecode fixture by name
// (without the .hl extension).
func fixture(name string) string {
	return filepath.Join(fixturesDir, name+".hl")
}

// loadFixture creates, initializes, and loads a fixture module, running
// its entry point. t.Cleanup destroys the instance afterward.
func loadFixture(t *testing.T, name string) *vm.Instance {
	t.Helper()
	inst, err := vm.Create()
	if err != nil {
		t.Fatalf("vm.Create: %v", err)
	}
	if err := inst.Init(nil); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := inst.LoadFile(fixture(name)); err != nil {
		t.Fatalf("LoadFile(%s): %v", name, err)
	}
	if err := inst.CallEntry(); err != nil {
		t.Fatalf("CallEntry: %v", err)
	}
	t.Cleanup(func() {
		if err := inst.Destroy(); err != nil {
			t.Errorf("Destroy: %v", err)
		}
	})
	return inst
}

func mustInt32(t *testing.T, reg *handle.Registry, x int32) *handle.Handle {
	t.Helper()
	h, err := value.FromInt32(reg, x)
	if err != nil {
		t.Fatalf("FromInt32(%d): %v", x, err)
	}
	return h
}

func mustString(t *testing.T, reg *handle.Registry, s string) *handle.Handle {
	t.Helper()
	h, err := value.FromString(reg, s)
	if err != nil {
		t.Fatalf("FromString(%q): %v", s, err)
	}
	return h
}
