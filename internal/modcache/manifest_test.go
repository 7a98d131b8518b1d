package modcache

import (
	"path/filepath"
	"testing"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "module.yaml")

	want := &Manifest{
		Name:       "hello-score",
		Version:    "1.0.0",
		EntryClass: "Main",
		StaticFields: []FieldEntry{
			{Name: "VERSION", Kind: "string"},
		},
	}

	if err := WriteManifest(path, want); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}

	got, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	if got.Name != want.Name || got.Version != want.Version || got.EntryClass != want.EntryClass {
		t.Errorf("LoadManifest = %+v, want %+v", got, want)
	}
	if len(got.StaticFields) != 1 || got.StaticFields[0].Name != "VERSION" {
		t.Errorf("StaticFields = %+v", got.StaticFields)
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing manifest file")
	}
}
