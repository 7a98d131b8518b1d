//go:build integration

package integration

import (
	"testing"

	"github.com/corvidhx/hlbridge/internal/collections"
	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/hlrt"
	"github.com/corvidhx/hlbridge/internal/value"
)

// TestArrayRoundTrip covers spec.md §8 scenario 4: building a primitive
// Int array from the host and passing it to a Haxe method.
func TestArrayRoundTrip(t *testing.T) {
	inst := loadFixture(t, "array_roundtrip")
	arrays := collections.NewArrays(inst.Types, inst.Handles)

	values := []int32{5, 10, 15, 20}
	arr, err := arrays.New(hlrt.KindI32, len(values))
	if err != nil {
		t.Fatalf("arrays.New: %v", err)
	}
	for i, x := range values {
		if err := arrays.Set(arr, i, mustInt32(t, inst.Handles, x)); err != nil {
			t.Fatalf("arrays.Set(%d, %d): %v", i, x, err)
		}
	}

	result, err := inst.Invoke.CallStatic("Main", "sumIntArray", []*handle.Handle{arr})
	if err != nil {
		t.Fatalf("sumIntArray: %v", err)
	}
	if got := value.ToInt32(result, -1); got != 50 {
		t.Fatalf("sumIntArray([5,10,15,20]) = %d, want 50", got)
	}
}
