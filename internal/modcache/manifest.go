package modcache

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes a bytecode module: what class the entry point
// lives on, and which static fields a host is expected to read after
// CallEntry. It is read and written only through LoadManifest and
// WriteManifest; neither the inspector nor the module cache reads it.
// Plays
// the role the teacher's kit manifest (internal/kit, parsed in
// internal/registry/kits.go) plays for installed kits.
type Manifest struct {
	Name         string       `yaml:"name"`
	Version      string       `yaml:"version"`
	EntryClass   string       `yaml:"entry_class"`
	StaticFields []FieldEntry `yaml:"static_fields,omitempty"`
}

// FieldEntry documents one static field a host may want to inspect.
type FieldEntry struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
}

// LoadManifest reads a module manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// WriteManifest writes m to path as YAML.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
