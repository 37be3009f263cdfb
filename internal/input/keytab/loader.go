package keytab

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file extension of keyboard translator files.
const Extension = ".keytab"

// ErrNotFound indicates no translator file exists for a name or path.
var ErrNotFound = errors.New("keyboard translator not found")

// Loader loads keyboard translators from files.
type Loader struct {
	// searchPaths are directories to search for translator files, in order.
	searchPaths []string

	opts []Option
}

// NewLoader creates a new translator loader. The options are passed to
// every Reader it creates.
func NewLoader(opts ...Option) *Loader {
	return &Loader{
		searchPaths: make([]string, 0),
		opts:        opts,
	}
}

// AddSearchPath adds a directory to search for translator files.
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// SearchPaths returns the search directories in precedence order.
func (l *Loader) SearchPaths() []string {
	return append([]string(nil), l.searchPaths...)
}

// LoadFile loads a translator from a file. A missing file yields an error
// wrapping ErrNotFound; a file without key lines yields an empty translator.
func (l *Loader) LoadFile(path string) (*Translator, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening keyboard translator: %w", err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), Extension)
	t, err := ReadTranslator(name, f, l.opts...)
	if err != nil {
		return nil, err
	}
	t.Path = path
	return t, nil
}

// Find loads the first translator named name found in the search paths.
func (l *Loader) Find(name string) (*Translator, error) {
	for _, dir := range l.searchPaths {
		path := filepath.Join(dir, name+Extension)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return l.LoadFile(path)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Load loads by path when nameOrPath looks like a file path, otherwise by
// name through the search paths.
func (l *Loader) Load(nameOrPath string) (*Translator, error) {
	if strings.HasSuffix(nameOrPath, Extension) || strings.ContainsRune(nameOrPath, filepath.Separator) {
		return l.LoadFile(nameOrPath)
	}
	return l.Find(nameOrPath)
}

// Names returns the sorted names of all translators in the search paths.
func (l *Loader) Names() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)

	for _, path := range l.files() {
		name := strings.TrimSuffix(filepath.Base(path), Extension)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}

// LoadAll loads every translator in the search paths. When a name occurs in
// several directories the earlier search path wins. Files that fail to load
// are skipped and reported in the returned error.
func (l *Loader) LoadAll() ([]*Translator, error) {
	seen := make(map[string]bool)
	translators := make([]*Translator, 0)
	var errs []error

	for _, path := range l.files() {
		name := strings.TrimSuffix(filepath.Base(path), Extension)
		if seen[name] {
			continue
		}
		seen[name] = true

		t, err := l.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		translators = append(translators, t)
	}

	return translators, errors.Join(errs...)
}

// files lists translator files in search path order.
func (l *Loader) files() []string {
	var files []string
	for _, dir := range l.searchPaths {
		matches, err := filepath.Glob(filepath.Join(dir, "*"+Extension))
		if err != nil {
			continue
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files
}
