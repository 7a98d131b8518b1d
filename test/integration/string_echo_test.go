//go:build integration

package integration

import (
	"testing"

	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/value"
)

// TestStringEcho covers spec.md §8 scenario 2: UTF-16 round-tripping
// through a static method call.
func TestStringEcho(t *testing.T) {
	inst := loadFixture(t, "string_echo")

	name := mustString(t, inst.Handles, "world")
	result, err := inst.Invoke.CallStatic("Main", "greet", []*handle.Handle{name})
	if err != nil {
		t.Fatalf("greet: %v", err)
	}

	got, err := value.ToString(result)
	if err != nil {
		t.Fatalf("ToString(result): %v", err)
	}
	if want := "Hello, world!"; got != want {
		t.Fatalf("greet(\"world\") = %q, want %q", got, want)
	}
}
