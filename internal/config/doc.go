// Package config provides the configuration of the keytab tool.
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  5. Command Line Flags      │  ← Highest priority (applied by cmd/keytab)
//	├─────────────────────────────┤
//	│  4. Environment Variables   │  ← KEYTAB_*
//	├─────────────────────────────┤
//	│  3. Dotenv File             │  ← .env next to config.toml
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/keytab/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	[log]
//	level = "debug"
//
//	[translators]
//	paths = ["~/.local/share/konsole", "/usr/share/konsole"]
//	default = "default"
//
//	[watch]
//	debounce = "200ms"
//
// Environment variables: KEYTAB_LOG_LEVEL, KEYTAB_PATHS (an OS path list),
// KEYTAB_DEFAULT and KEYTAB_WATCH_DEBOUNCE. Other KEYTAB_SECTION_NAME
// variables map to section.name.
//
// # Basic Usage
//
//	cfg, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    return err
//	}
//	for _, dir := range cfg.Translators.Paths {
//	    loader.AddSearchPath(dir)
//	}
package config
