package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MemFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return &memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct {
	name string
}

func (f *memFileInfo) Name() string       { return f.name }
func (f *memFileInfo) Size() int64        { return 0 }
func (f *memFileInfo) Mode() fs.FileMode  { return 0644 }
func (f *memFileInfo) ModTime() time.Time { return time.Now() }
func (f *memFileInfo) IsDir() bool        { return false }
func (f *memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[log]
level = "debug"

[translators]
paths = ["/usr/share/konsole", "/home/u/.local/share/konsole"]
default = "linux"

[watch]
debounce = "250ms"
`)

	loader := NewTOMLLoaderWithFS(memfs, "/config.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	log, ok := config["log"].(map[string]any)
	if !ok {
		t.Fatal("expected log to be a map")
	}
	if log["level"] != "debug" {
		t.Errorf("log.level = %v, want debug", log["level"])
	}

	translators, ok := config["translators"].(map[string]any)
	if !ok {
		t.Fatal("expected translators to be a map")
	}
	paths, ok := translators["paths"].([]any)
	if !ok || len(paths) != 2 {
		t.Fatalf("translators.paths = %v (%T), want 2 paths", translators["paths"], translators["paths"])
	}
	if paths[0] != "/usr/share/konsole" {
		t.Errorf("paths[0] = %v", paths[0])
	}
}

func TestTOMLLoader_LoadNotExist(t *testing.T) {
	loader := NewTOMLLoaderWithFS(NewMemFS(), "/missing.toml")
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if config != nil {
		t.Errorf("expected nil config, got %v", config)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[log]\nlevel = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	if err == nil {
		t.Fatal("expected parse error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Path != "/bad.toml" {
		t.Errorf("Path = %q, want /bad.toml", perr.Path)
	}
	if perr.Line != 2 {
		t.Errorf("Line = %d, want 2", perr.Line)
	}
	if !strings.Contains(err.Error(), "/bad.toml") {
		t.Errorf("error %q does not mention the path", err)
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader(`[log]
level = "warn"`))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if config["log"].(map[string]any)["level"] != "warn" {
		t.Errorf("log.level = %v", config["log"])
	}
}

func TestTOMLLoader_LoadWithIncludes(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/etc/keytab/config.toml", `
"@include" = ["paths.toml", "/etc/keytab/log.toml"]

[log]
level = "error"
`)
	memfs.AddFile("/etc/keytab/paths.toml", `
[translators]
paths = ["/opt/keytabs"]
default = "vt100"
`)
	memfs.AddFile("/etc/keytab/log.toml", `
[log]
level = "debug"

[translators]
default = "linux"
`)

	loader := NewTOMLLoaderWithFS(memfs, "/etc/keytab/config.toml")
	config, err := loader.LoadWithIncludes("/etc/keytab/config.toml", 4)
	if err != nil {
		t.Fatalf("LoadWithIncludes failed: %v", err)
	}

	if _, ok := config[IncludeKey]; ok {
		t.Error("include key should be removed")
	}
	if got := config["log"].(map[string]any)["level"]; got != "error" {
		t.Errorf("log.level = %v, want error (main file wins)", got)
	}

	translators := config["translators"].(map[string]any)
	if translators["default"] != "linux" {
		t.Errorf("translators.default = %v, want linux (later include wins)", translators["default"])
	}
	if paths := translators["paths"].([]any); len(paths) != 1 || paths[0] != "/opt/keytabs" {
		t.Errorf("translators.paths = %v", paths)
	}
}

func TestTOMLLoader_IncludeDepth(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/loop.toml", `"@include" = "loop.toml"`)

	_, err := NewTOMLLoaderWithFS(memfs, "/loop.toml").LoadWithIncludes("/loop.toml", 3)
	if !errors.Is(err, ErrIncludeDepthExceeded) {
		t.Fatalf("expected ErrIncludeDepthExceeded, got %v", err)
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"log":         map[string]any{"level": "info"},
		"translators": map[string]any{"default": "default", "paths": []any{"/a"}},
	}
	src := map[string]any{
		"translators": map[string]any{"paths": []any{"/b", "/c"}},
		"watch":       map[string]any{"debounce": "1s"},
	}

	got := DeepMerge(dst, src)

	translators := got["translators"].(map[string]any)
	if translators["default"] != "default" {
		t.Errorf("default = %v, want kept", translators["default"])
	}
	if paths := translators["paths"].([]any); len(paths) != 2 {
		t.Errorf("paths = %v, want replaced", paths)
	}
	if _, ok := got["watch"]; !ok {
		t.Error("watch section should be added")
	}
	if DeepMerge(nil, nil) == nil {
		t.Error("DeepMerge(nil, nil) should return an empty map")
	}
}

func TestClone(t *testing.T) {
	src := map[string]any{
		"translators": map[string]any{"paths": []any{"/a"}},
	}
	dst := Clone(src)

	dst["translators"].(map[string]any)["paths"].([]any)[0] = "/changed"
	if src["translators"].(map[string]any)["paths"].([]any)[0] != "/a" {
		t.Error("Clone should deep copy nested slices")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}
