package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/keytab/internal/config/loader"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "default", cfg.Translators.Default)
	assert.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce.Std())
	require.NotEmpty(t, cfg.Translators.Paths)
	assert.Equal(t, "/usr/share/konsole", cfg.Translators.Paths[len(cfg.Translators.Paths)-1])
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, `
[log]
level = "debug"

[translators]
paths = ["~/keytabs", "/opt/keytabs"]
default = "linux"

[watch]
debounce = "250ms"
`)
	writeFile(t, filepath.Join(dir, loader.DotEnvFile), "KEYTAB_DEFAULT=vt420pc\nKEYTAB_LOG_LEVEL=error\n")
	t.Setenv("KEYTAB_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level, "environment beats dotenv and file")
	assert.Equal(t, "vt420pc", cfg.Translators.Default, "dotenv beats file")
	assert.Equal(t, []string{filepath.Join(home, "keytabs"), "/opt/keytabs"}, cfg.Translators.Paths)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce.Std())
}

func TestLoadEnvPaths(t *testing.T) {
	t.Setenv("KEYTAB_PATHS", "/one"+string(os.PathListSeparator)+"/two")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"/one", "/two"}, cfg.Translators.Paths)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		path    string
	}{
		{"level", "[log]\nlevel = \"loud\"\n", "log.level"},
		{"negative debounce", "[watch]\ndebounce = \"-1s\"\n", "watch.debounce"},
		{"empty default", "[translators]\ndefault = \"\"\n", "translators.default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			writeFile(t, path, tt.content)

			_, err := Load(path)
			require.ErrorIs(t, err, ErrInvalidConfig)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.path, verr.Path)
		})
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[watch]\ndebounce = \"soon\"\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[log\n")

	_, err := Load(path)
	var perr *loader.ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, path, perr.Path)
}

func TestConfigString(t *testing.T) {
	cfg := Default()
	cfg.Watch.Debounce = Duration(2 * time.Second)

	var got Config
	require.NoError(t, toml.Unmarshal([]byte(cfg.String()), &got))
	assert.Equal(t, *cfg, got)
}

func TestDuration(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Std())

	text, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("fast")))
}
