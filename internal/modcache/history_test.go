package modcache

import (
	"path/filepath"
	"testing"
)

func TestHistoryRecordAndQuery(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	t.Cleanup(func() { h.Close() })

	if err := h.Record("oci://example/mod:latest", "sha256:aaa", EventPull); err != nil {
		t.Fatalf("Record pull: %v", err)
	}
	if err := h.Record("oci://example/mod:latest", "sha256:bbb", EventReload); err != nil {
		t.Fatalf("Record reload: %v", err)
	}

	events, err := h.Events("oci://example/mod:latest")
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Kind != EventPull || events[1].Kind != EventReload {
		t.Errorf("unexpected event kinds: %+v", events)
	}

	last, err := h.LastDigest("oci://example/mod:latest")
	if err != nil {
		t.Fatalf("LastDigest: %v", err)
	}
	if last != "sha256:bbb" {
		t.Errorf("LastDigest = %q, want sha256:bbb", last)
	}
}

func TestLastDigestUnknownRef(t *testing.T) {
	h, err := OpenHistory(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	t.Cleanup(func() { h.Close() })

	last, err := h.LastDigest("oci://nobody/pulled:this")
	if err != nil {
		t.Fatalf("LastDigest: %v", err)
	}
	if last != "" {
		t.Errorf("LastDigest = %q, want empty", last)
	}
}
