//go:build integration

package integration

import (
	"testing"

	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/value"
)

// TestPlayerLifecycle covers spec.md §8 scenario 3: constructor
// dispatch, field set/get, and repeated instance-method calls.
func TestPlayerLifecycle(t *testing.T) {
	inst := loadFixture(t, "player_lifecycle")

	player, err := inst.Invoke.NewInstance("Player", nil)
	if err != nil {
		t.Fatalf("NewInstance(Player): %v", err)
	}

	health := mustInt32(t, inst.Handles, 100)
	if err := inst.Invoke.SetField(player, "health", health); err != nil {
		t.Fatalf("SetField(health, 100): %v", err)
	}

	damage := mustInt32(t, inst.Handles, 25)
	if _, err := inst.Invoke.CallMethod(player, "takeDamage", []*handle.Handle{damage}); err != nil {
		t.Fatalf("takeDamage(25): %v", err)
	}

	got, err := inst.Invoke.CallMethod(player, "getHealth", nil)
	if err != nil {
		t.Fatalf("getHealth: %v", err)
	}
	if n := value.ToInt32(got, -1); n != 25 {
		t.Fatalf("getHealth after takeDamage(25) = %d, want 25", n)
	}

	alive, err := inst.Invoke.CallMethod(player, "checkAlive", nil)
	if err != nil {
		t.Fatalf("checkAlive: %v", err)
	}
	if !value.ToBool(alive, false) {
		t.Fatalf("checkAlive after 25 damage = false, want true")
	}

	damage2 := mustInt32(t, inst.Handles, 30)
	if _, err := inst.Invoke.CallMethod(player, "takeDamage", []*handle.Handle{damage2}); err != nil {
		t.Fatalf("takeDamage(30): %v", err)
	}

	alive, err = inst.Invoke.CallMethod(player, "checkAlive", nil)
	if err != nil {
		t.Fatalf("checkAlive: %v", err)
	}
	if value.ToBool(alive, true) {
		t.Fatalf("checkAlive after lethal damage = true, want false")
	}
}
