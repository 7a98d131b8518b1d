//go:build integration

package integration

import (
	"testing"

	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/value"
)

// TestHelloScore covers spec.md §8 scenario 1: static field reads,
// static method dispatch, and field-read-after-call ordering.
func TestHelloScore(t *testing.T) {
	inst := loadFixture(t, "hello_score")

	scoreH, err := inst.Invoke.GetStaticField("Game", "score")
	if err != nil {
		t.Fatalf("GetStaticField(score): %v", err)
	}
	if got := value.ToInt32(scoreH, -1); got != 0 {
		t.Fatalf("initial score = %d, want 0", got)
	}

	n := mustInt32(t, inst.Handles, 250)
	for i := 0; i < 2; i++ {
		if _, err := inst.Invoke.CallStatic("Game", "addPoints", []*handle.Handle{n}); err != nil {
			t.Fatalf("addPoints: %v", err)
		}
	}

	scoreH, err = inst.Invoke.GetStaticField("Game", "score")
	if err != nil {
		t.Fatalf("GetStaticField(score) after addPoints: %v", err)
	}
	if got := value.ToInt32(scoreH, -1); got != 500 {
		t.Fatalf("score after 2x addPoints(250) = %d, want 500", got)
	}
}
