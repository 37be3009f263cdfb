package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keytab/internal/config/loader"
)

// FileName is the name of the config file inside the config directory.
const FileName = "config.toml"

// maxIncludeDepth limits nested @include directives.
const maxIncludeDepth = 8

// Config is the keytab configuration.
type Config struct {
	Log         LogConfig         `toml:"log"`
	Translators TranslatorsConfig `toml:"translators"`
	Watch       WatchConfig       `toml:"watch"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Translators: TranslatorsConfig{
			Paths:   DefaultSearchPaths(),
			Default: "default",
		},
		Watch: WatchConfig{Debounce: Duration(100 * time.Millisecond)},
	}
}

// DefaultSearchPaths returns the user and system translator directories.
func DefaultSearchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "keytab"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".local", "share", "konsole"))
	}
	return append(paths, "/usr/share/konsole")
}

// DefaultPath returns the default config file path, or "" if the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keytab", FileName)
}

// Load builds the configuration from defaults, the TOML file at path, the
// .env file in the same directory and the KEYTAB_* environment. An empty
// path or a missing file leaves the defaults in place.
func Load(path string) (*Config, error) {
	env := loader.NewEnvLoader(loader.EnvPrefix)

	var layers []loader.Loader
	dotenvDir := "."
	if path != "" {
		layers = append(layers, includeLoader{loader.NewTOMLLoader(path), path})
		dotenvDir = filepath.Dir(path)
	}
	layers = append(layers,
		loader.NewDotEnvLoader(filepath.Join(dotenvDir, loader.DotEnvFile), env),
		env,
	)

	return LoadLayers(layers...)
}

// LoadLayers merges the given loaders over the defaults, in order, and
// decodes the result.
func LoadLayers(layers ...loader.Loader) (*Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return nil, err
	}

	for _, l := range layers {
		m, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, loader.Clone(m))
	}

	cfg, err := fromMap(merged)
	if err != nil {
		return nil, err
	}
	cfg.Translators.Paths = expandHome(cfg.Translators.Paths)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// includeLoader adapts TOMLLoader.LoadWithIncludes to the Loader interface.
type includeLoader struct {
	toml *loader.TOMLLoader
	path string
}

func (l includeLoader) Load() (map[string]any, error) {
	return l.toml.LoadWithIncludes(l.path, maxIncludeDepth)
}

var validLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return &ValidationError{Path: "log.level", Message: "unknown log level", Value: c.Log.Level}
	}
	if c.Watch.Debounce < 0 {
		return &ValidationError{Path: "watch.debounce", Message: "must not be negative", Value: c.Watch.Debounce.Std()}
	}
	if strings.TrimSpace(c.Translators.Default) == "" {
		return &ValidationError{Path: "translators.default", Message: "must not be empty", Value: c.Translators.Default}
	}
	return nil
}

// String returns the configuration in TOML form.
func (c *Config) String() string {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return string(data)
}

// toMap converts a config to the map form produced by the loaders.
func toMap(c *Config) (map[string]any, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return m, nil
}

// fromMap decodes a merged map into a config.
func fromMap(m map[string]any) (*Config, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// expandHome replaces a leading "~" with the home directory.
func expandHome(paths []string) []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return paths
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "~" {
			p = home
		} else if strings.HasPrefix(p, "~/") {
			p = filepath.Join(home, p[2:])
		}
		out = append(out, p)
	}
	return out
}
