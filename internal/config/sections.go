package config

import (
	"fmt"
	"time"
)

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum level logged: debug, info, warn or error.
	Level string `toml:"level"`
}

// TranslatorsConfig holds translator lookup settings.
type TranslatorsConfig struct {
	// Paths are the directories searched for .keytab files, in order.
	// A leading "~" is expanded to the home directory.
	Paths []string `toml:"paths"`

	// Default is the translator used when a command is given no name.
	Default string `toml:"default"`
}

// WatchConfig holds file watching settings.
type WatchConfig struct {
	// Debounce is the quiet period before a changed file is reloaded.
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration written as a string like "200ms".
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
