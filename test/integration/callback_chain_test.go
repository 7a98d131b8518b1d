//go:build integration

package integration

import (
	"testing"

	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/value"
)

// TestCallbackChain covers spec.md §8 scenario 5: a host callback
// stored into a Haxe static field and invoked from Haxe code.
func TestCallbackChain(t *testing.T) {
	inst := loadFixture(t, "callback_chain")

	err := inst.Callbacks.Register("onAdd", 2, func(_ any, argv []*handle.Handle) (*handle.Handle, error) {
		a := value.ToInt32(argv[0], 0)
		b := value.ToInt32(argv[1], 0)
		return value.FromInt32(inst.Handles, a+b)
	})
	if err != nil {
		t.Fatalf("register onAdd: %v", err)
	}

	tramp, err := inst.Callbacks.Get("onAdd")
	if err != nil {
		t.Fatalf("Callbacks.Get(onAdd): %v", err)
	}
	if err := inst.Invoke.SetStaticField("Callbacks", "onAdd", tramp); err != nil {
		t.Fatalf("SetStaticField(Callbacks.onAdd): %v", err)
	}

	a := mustInt32(t, inst.Handles, 10)
	b := mustInt32(t, inst.Handles, 20)
	result, err := inst.Invoke.CallStatic("Main", "callAddCallback", []*handle.Handle{a, b})
	if err != nil {
		t.Fatalf("callAddCallback: %v", err)
	}
	if got := value.ToInt32(result, -1); got != 30 {
		t.Fatalf("callAddCallback(10, 20) = %d, want 30", got)
	}

	recorded, err := inst.Invoke.GetStaticField("Main", "lastCallbackResult")
	if err != nil {
		t.Fatalf("GetStaticField(lastCallbackResult): %v", err)
	}
	if got := value.ToInt32(recorded, -1); got != 30 {
		t.Fatalf("Main.lastCallbackResult = %d, want 30", got)
	}
}
