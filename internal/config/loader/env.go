package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of keytab environment variables.
const EnvPrefix = "KEYTAB_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "KEYTAB_")
	mapping map[string]string // Env var -> config path
	lists   map[string]bool   // Env vars holding an OS path list
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "KEYTAB_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lists:   map[string]bool{prefix + "PATHS": true},
		environ: os.Environ,
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		lists:   make(map[string]bool),
		environ: os.Environ,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
// Mapped values are kept as strings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":      "log.level",
		prefix + "PATHS":          "translators.paths",
		prefix + "DEFAULT":        "translators.default",
		prefix + "WATCH_DEBOUNCE": "watch.debounce",
	}
}

// Load reads the process environment and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	vars := make(map[string]string)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if ok && strings.HasPrefix(name, l.prefix) {
			vars[name] = value
		}
	}
	return l.LoadVars(vars)
}

// LoadVars converts a set of variables to a configuration map. Variables
// without the prefix are ignored.
func (l *EnvLoader) LoadVars(vars map[string]string) (map[string]any, error) {
	config := make(map[string]any)

	for name, value := range vars {
		if !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		switch {
		case l.lists[name]:
			setByPath(config, path, splitList(value))
		case mapped:
			setByPath(config, path, value)
		default:
			// Convert KEYTAB_TRANSLATORS_DEFAULT to translators.default
			setByPath(config, l.envToPath(name), l.parseValue(value))
		}
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// RemoveMapping removes an environment variable mapping.
func (l *EnvLoader) RemoveMapping(envVar string) {
	delete(l.mapping, envVar)
	delete(l.lists, envVar)
}

// envToPath converts KEYTAB_WATCH_DEBOUNCE_TIME to watch.debounceTime.
func (l *EnvLoader) envToPath(env string) string {
	name := strings.TrimPrefix(env, l.prefix)

	parts := strings.Split(name, "_")
	if len(parts) == 1 {
		return strings.ToLower(name)
	}

	// First part is the section, the rest form the setting name in camelCase.
	settingName := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if len(part) > 0 {
			settingName += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}

	return strings.ToLower(parts[0]) + "." + settingName
}

// parseValue attempts to parse the string value into an appropriate type.
func (l *EnvLoader) parseValue(s string) any {
	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" {
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only if it contains a decimal point to avoid misinterpreting ints
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err == nil {
			return v
		}
	}

	return s
}

// splitList splits an OS path list, dropping empty elements.
func splitList(s string) []any {
	list := make([]any, 0)
	for _, p := range filepath.SplitList(s) {
		if p != "" {
			list = append(list, p)
		}
	}
	return list
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
