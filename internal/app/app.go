package app

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/keytab/internal/config"
	"github.com/dshills/keytab/internal/input/keytab"
	"github.com/dshills/keytab/internal/watcher"
)

// Application holds the configuration, logger and translator loader
// shared by the command line tools.
type Application struct {
	mu sync.RWMutex

	config  *config.Config
	logger  *Logger
	metrics *Metrics
	loader  *keytab.Loader

	// translators caches loaded translators by name.
	translators map[string]*keytab.Translator

	watching atomic.Bool

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file. Empty uses
	// config.DefaultPath.
	ConfigPath string

	// Config replaces loading from ConfigPath when set.
	Config *config.Config

	// LogLevel overrides the configured log level.
	LogLevel string

	// LogOutput is where logs are written. Defaults to os.Stderr.
	LogOutput io.Writer

	// SearchPaths replaces the configured translator directories.
	SearchPaths []string
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:        opts,
		metrics:     NewMetrics(),
		translators: make(map[string]*keytab.Translator),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}

	return app, nil
}

// bootstrap initializes the components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg := app.opts.Config
	if cfg == nil {
		path := app.opts.ConfigPath
		if path == "" {
			path = config.DefaultPath()
		}
		loaded, err := config.Load(path)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		cfg = loaded
	}
	if len(app.opts.SearchPaths) > 0 {
		cfg.Translators.Paths = append([]string(nil), app.opts.SearchPaths...)
	}
	app.config = cfg

	// 2. Logger
	level := cfg.Log.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}
	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(level)
	if app.opts.LogOutput != nil {
		logCfg.Output = app.opts.LogOutput
	}
	app.logger = NewLogger(logCfg)

	// 3. Loader
	app.loader = app.newLoader(nil)

	app.logger.WithField("paths", strings.Join(app.loader.SearchPaths(), string(filepath.ListSeparator))).
		Debug("application initialized")
	return nil
}

// newLoader creates a loader over the configured search paths whose
// diagnostics go to the logger, the metrics and extra when non-nil.
func (app *Application) newLoader(extra keytab.DiagnosticSink) *keytab.Loader {
	logSink := DiagnosticLogger(app.logger)
	sink := func(d keytab.Diagnostic) {
		app.metrics.RecordDiagnostic()
		logSink(d)
		if extra != nil {
			extra(d)
		}
	}

	l := keytab.NewLoader(keytab.WithDiagnostics(sink))
	for _, dir := range app.config.Translators.Paths {
		l.AddSearchPath(dir)
	}
	return l
}

// Config returns the application configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Metrics returns the application's load statistics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Loader returns the translator loader.
func (app *Application) Loader() *keytab.Loader {
	return app.loader
}

// Translator returns the translator for a name or path, loading it on
// first use. An empty name selects the configured default.
func (app *Application) Translator(nameOrPath string) (*keytab.Translator, error) {
	if nameOrPath == "" {
		nameOrPath = app.config.Translators.Default
	}

	app.mu.RLock()
	t, ok := app.translators[nameOrPath]
	app.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := app.load(nameOrPath)
	if err != nil {
		return nil, err
	}

	app.mu.Lock()
	app.translators[nameOrPath] = t
	app.mu.Unlock()
	return t, nil
}

// Translators loads every translator in the search paths.
func (app *Application) Translators() ([]*keytab.Translator, error) {
	timer := StartTimer()
	all, err := app.loader.LoadAll()
	if len(all) > 0 {
		each := timer.Elapsed() / time.Duration(len(all))
		for _, t := range all {
			app.metrics.RecordLoad(each, len(t.Entries))
		}
	}
	if err != nil {
		app.metrics.RecordLoadError()
		return all, NewOperationError("load", "all", err)
	}
	return all, nil
}

// load reads a translator and records the result.
func (app *Application) load(nameOrPath string) (*keytab.Translator, error) {
	timer := StartTimer()
	t, err := app.loader.Load(nameOrPath)
	if err != nil {
		app.metrics.RecordLoadError()
		return nil, NewOperationError("load", nameOrPath, err)
	}

	app.metrics.RecordLoad(timer.Elapsed(), len(t.Entries))
	app.logger.WithFields(map[string]any{
		"name":    t.Name,
		"path":    t.Path,
		"entries": len(t.Entries),
	}).Debug("translator loaded")
	return t, nil
}

// CheckResult is the outcome of checking one translator file.
type CheckResult struct {
	Path        string
	Translator  *keytab.Translator
	Diagnostics []keytab.Diagnostic
	Err         error
}

// OK returns true if the file loaded without diagnostics.
func (r CheckResult) OK() bool {
	return r.Err == nil && len(r.Diagnostics) == 0
}

// Check loads each name or path and collects its diagnostics. The returned
// error reports the files that could not be loaded.
func (app *Application) Check(namesOrPaths []string) ([]CheckResult, error) {
	errs := NewErrorList()
	results := make([]CheckResult, 0, len(namesOrPaths))

	for _, target := range namesOrPaths {
		sink, diags := keytab.CollectDiagnostics()
		timer := StartTimer()
		t, err := app.newLoader(sink).Load(target)

		res := CheckResult{Path: target, Translator: t, Diagnostics: *diags}
		if err != nil {
			res.Err = NewOperationError("check", target, err)
			errs.Add(res.Err)
			app.metrics.RecordLoadError()
		} else {
			res.Path = t.Path
			app.metrics.RecordLoad(timer.Elapsed(), len(t.Entries))
		}
		results = append(results, res)
	}

	return results, errs.AsError()
}

// ReloadEvent reports a translator change seen by Watch.
type ReloadEvent struct {
	// Name is the translator name derived from the changed file.
	Name string

	// Path is the changed file.
	Path string

	// Op is the file operation.
	Op watcher.Op

	// Translator is the reloaded translator, or nil if none remains.
	Translator *keytab.Translator

	// Err is set when the reload failed.
	Err error
}

// Removed returns true if no translator with the name remains.
func (e ReloadEvent) Removed() bool {
	return e.Translator == nil && e.Err == nil
}

// Watch watches the search paths and reloads translators when their files
// change, calling handle for each reload. It returns when ctx is done.
func (app *Application) Watch(ctx context.Context, handle func(ReloadEvent)) error {
	if !app.watching.CompareAndSwap(false, true) {
		return ErrAlreadyWatching
	}
	defer app.watching.Store(false)

	w, err := watcher.New(
		watcher.WithDebounceDelay(app.config.Watch.Debounce.Std()),
		watcher.WithExtensions(keytab.Extension),
	)
	if err != nil {
		return NewComponentError("watcher", "create", err)
	}
	defer w.Close()

	log := app.logger.WithComponent("watcher")
	for _, dir := range app.loader.SearchPaths() {
		if err := w.Watch(dir); err != nil {
			if errors.Is(err, watcher.ErrPathNotExist) {
				log.WithField("path", dir).Debug("skipping missing search path")
				continue
			}
			return NewComponentError("watcher", "watch "+dir, err)
		}
		log.WithField("path", dir).Info("watching")
	}
	if len(w.WatchedPaths()) == 0 {
		return ErrNothingToWatch
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			re := app.reload(ev)
			if handle != nil {
				handle(re)
			}
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			log.Warn("watch error: %v", err)
		}
	}
}

// reload refreshes the cached translator named by a changed file. The
// search path order decides which file provides the name.
func (app *Application) reload(ev watcher.Event) ReloadEvent {
	name := strings.TrimSuffix(filepath.Base(ev.Path), keytab.Extension)
	re := ReloadEvent{Name: name, Path: ev.Path, Op: ev.Op}
	app.metrics.RecordReload()

	log := app.logger.WithFields(map[string]any{
		"name": name,
		"op":   ev.Op,
	})

	t, err := app.load(name)
	switch {
	case errors.Is(err, keytab.ErrNotFound):
		app.forget(name, ev.Path)
		log.Info("translator removed")
	case err != nil:
		re.Err = NewOperationError("reload", ev.Path, err)
		log.Warn("reload failed: %v", err)
	default:
		re.Translator = t
		app.mu.Lock()
		app.translators[name] = t
		app.translators[t.Path] = t
		app.mu.Unlock()
		log.WithField("entries", len(t.Entries)).Info("translator reloaded")
	}
	return re
}

// forget drops cached translators for a name and path.
func (app *Application) forget(name, path string) {
	app.mu.Lock()
	defer app.mu.Unlock()
	delete(app.translators, name)
	delete(app.translators, path)
}

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Is reports ErrInitialization for every InitError.
func (e *InitError) Is(target error) bool {
	return target == ErrInitialization
}
