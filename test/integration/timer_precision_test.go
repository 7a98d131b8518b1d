//go:build integration

package integration

import (
	"testing"
	"time"

	"github.com/corvidhx/hlbridge/internal/value"
)

// TestTimerPrecision covers spec.md §8 scenario 6: driving the
// Haxe-level event loop from a host tick until timers scheduled at
// 1ms, 10ms, and 100ms have all fired.
func TestTimerPrecision(t *testing.T) {
	inst := loadFixture(t, "timer_precision")

	deadline := time.Now().Add(250 * time.Millisecond)
	for time.Now().Before(deadline) {
		inst.Events.Update(0)

		fired, err := inst.Invoke.GetStaticField("Main", "allTimersFired")
		if err != nil {
			t.Fatalf("GetStaticField(allTimersFired): %v", err)
		}
		if value.ToBool(fired, false) {
			return
		}
		time.Sleep(time.Millisecond)
	}

	t.Fatalf("not all timers fired within 250ms")
}
