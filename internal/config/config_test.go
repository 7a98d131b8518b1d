package config

import (
	"testing"
	"time"
)

func TestDefaultFillsAllPaths(t *testing.T) {
	opts := Default()
	if opts.ModuleCacheDir == "" {
		t.Errorf("ModuleCacheDir empty")
	}
	if opts.HistoryDBPath == "" {
		t.Errorf("HistoryDBPath empty")
	}
	if opts.LogDir == "" {
		t.Errorf("LogDir empty")
	}
	if opts.DefaultMode != "host-driven" {
		t.Errorf("DefaultMode = %q, want host-driven", opts.DefaultMode)
	}
}

func TestMergeNilReturnsDefaults(t *testing.T) {
	merged, err := Merge(nil)
	if err != nil {
		t.Fatalf("Merge(nil): %v", err)
	}
	if merged.ModuleCacheDir != Default().ModuleCacheDir {
		t.Errorf("Merge(nil) did not return defaults")
	}
}

func TestMergeOverridesOnlySetFields(t *testing.T) {
	override := &Options{
		ModuleCacheDir: "/tmp/custom-cache",
	}
	merged, err := Merge(override)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.ModuleCacheDir != "/tmp/custom-cache" {
		t.Errorf("ModuleCacheDir = %q, want override", merged.ModuleCacheDir)
	}
	if merged.HistoryDBPath != Default().HistoryDBPath {
		t.Errorf("HistoryDBPath changed unexpectedly: %q", merged.HistoryDBPath)
	}
	if merged.EventLoopInterval != 16*time.Millisecond {
		t.Errorf("EventLoopInterval changed unexpectedly: %v", merged.EventLoopInterval)
	}
}
