//go:build integration

package integration

import (
	"os"
	"testing"

	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/value"
)

// TestReloadSafety covers spec.md §8's reload-safety property: a cached
// call against a function that did not change between images returns
// the same result after Reload.
func TestReloadSafety(t *testing.T) {
	inst := loadFixture(t, "reload_before")

	cc, err := inst.Invoke.CacheStatic("Game", "addPoints")
	if err != nil {
		t.Fatalf("CacheStatic(Game.addPoints): %v", err)
	}
	t.Cleanup(func() { inst.Invoke.ReleaseCached(cc) })

	n := mustInt32(t, inst.Handles, 10)
	before, err := inst.Invoke.CallCached(cc, []*handle.Handle{n})
	if err != nil {
		t.Fatalf("CallCached before reload: %v", err)
	}
	beforeResult := value.ToInt32(before, -1)

	newImage, err := os.ReadFile(fixture("reload_after"))
	if err != nil {
		t.Fatalf("read reload_after fixture: %v", err)
	}
	if err := inst.Reload(newImage); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	cc2, err := inst.Invoke.CacheStatic("Game", "addPoints")
	if err != nil {
		t.Fatalf("CacheStatic(Game.addPoints) after reload: %v", err)
	}
	t.Cleanup(func() { inst.Invoke.ReleaseCached(cc2) })

	after, err := inst.Invoke.CallCached(cc2, []*handle.Handle{n})
	if err != nil {
		t.Fatalf("CallCached after reload: %v", err)
	}
	if got := value.ToInt32(after, -1); got != beforeResult {
		t.Fatalf("addPoints(10) after reload = %d, want unchanged %d", got, beforeResult)
	}
}
