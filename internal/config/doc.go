// Package config provides the configuration system for strata.
//
// # Architecture
//
// Configuration is built from sources with higher sources overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← STRATA_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← strata.toml or strata.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML, YAML and environment sources, map merging
//   - watcher: fsnotify-based change notification for live reload
//
// # Basic Usage
//
//	cfg := config.New(config.WithFile(path))
//	if err := cfg.Load(ctx); err != nil {
//		return err
//	}
//	editor := cfg.Editor()
//
// Section accessors return snapshot structs; mutating them does not change
// the configuration.
package config
