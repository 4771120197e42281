// Package app wires configuration, logging, syntax rules, documents and
// the editor engine together for the command-line front end.
package app

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dshills/suptext/internal/config"
	"github.com/dshills/suptext/internal/document"
	"github.com/dshills/suptext/internal/engine"
	"github.com/dshills/suptext/internal/syntax"
	"github.com/dshills/suptext/internal/watcher"
)

// Options configures an App.
type Options struct {
	// ConfigPath is the TOML config file. Empty selects config.DefaultPath.
	ConfigPath string

	// RuleFiles and LuaFiles are appended to the configured sources.
	RuleFiles []string
	LuaFiles  []string

	// LogLevel overrides the configured level when set.
	LogLevel string

	// LogOutput defaults to os.Stderr.
	LogOutput io.Writer
}

// App holds the loaded configuration and the syntax registry shared by the
// documents it opens.
type App struct {
	cfg   config.Config
	log   *Logger
	theme *syntax.Theme

	mu       sync.RWMutex
	registry *syntax.Registry
}

// New loads configuration and builds the syntax registry. Rule files that
// fail to load are logged and skipped; only a config error is fatal.
func New(ctx context.Context, opts Options) (*App, error) {
	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, NewOperationError("load config", path, err)
	}
	cfg.Syntax.RuleFiles = append(cfg.Syntax.RuleFiles, opts.RuleFiles...)
	cfg.Syntax.LuaFiles = append(cfg.Syntax.LuaFiles, opts.LuaFiles...)
	if opts.LogLevel != "" {
		cfg.Logging.Level = opts.LogLevel
	}

	return NewWithConfig(ctx, *cfg, opts.LogOutput), nil
}

// NewWithConfig creates an app from an already loaded config.
func NewWithConfig(ctx context.Context, cfg config.Config, logOutput io.Writer) *App {
	lc := DefaultLoggerConfig()
	lc.Level = ParseLogLevel(cfg.Logging.Level)
	if logOutput != nil {
		lc.Output = logOutput
	}

	a := &App{
		cfg:   cfg,
		log:   NewLogger(lc),
		theme: syntax.ThemeByName(cfg.UI.Theme),
	}
	reg, err := a.buildRegistry(ctx)
	if err != nil {
		a.log.WithComponent("syntax").Warn("%v", err)
	}
	a.registry = reg
	return a
}

// Config returns the effective configuration.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() *Logger {
	return a.log
}

// Theme returns the configured color theme.
func (a *App) Theme() *syntax.Theme {
	return a.theme
}

// Registry returns the current syntax registry.
func (a *App) Registry() *syntax.Registry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.registry
}

// RuleSources returns the configured YAML and Lua rule files.
func (a *App) RuleSources() []string {
	out := make([]string, 0, len(a.cfg.Syntax.RuleFiles)+len(a.cfg.Syntax.LuaFiles))
	out = append(out, a.cfg.Syntax.RuleFiles...)
	return append(out, a.cfg.Syntax.LuaFiles...)
}

// ReloadRules rebuilds the registry from the built-in languages and the
// configured rule files. The new registry replaces the old one even when
// some sources failed; their errors are returned joined.
func (a *App) ReloadRules(ctx context.Context) (*syntax.Registry, error) {
	if len(a.RuleSources()) == 0 {
		return a.Registry(), ErrNoRuleSources
	}
	reg, err := a.buildRegistry(ctx)
	a.mu.Lock()
	a.registry = reg
	a.mu.Unlock()
	return reg, err
}

// buildRegistry layers built-in languages, then YAML files, then Lua
// scripts. A later definition of a language replaces an earlier one.
func (a *App) buildRegistry(ctx context.Context) (*syntax.Registry, error) {
	log := a.log.WithComponent("syntax")
	langs := syntax.Builtin()

	var errs []error
	for _, path := range a.cfg.Syntax.RuleFiles {
		ls, err := syntax.LoadYAMLFile(path)
		if err != nil {
			errs = append(errs, NewOperationError("load rules", path, err))
			continue
		}
		log.Debug("loaded %d languages from %s", len(ls), path)
		langs = append(langs, ls...)
	}
	for _, path := range a.cfg.Syntax.LuaFiles {
		ls, err := syntax.LoadLuaFile(ctx, path)
		if err != nil {
			errs = append(errs, NewOperationError("load script", path, err))
			continue
		}
		log.Debug("loaded %d languages from %s", len(ls), path)
		langs = append(langs, ls...)
	}

	reg, err := syntax.Build(langs, syntax.WithMatchTimeout(a.cfg.Syntax.MatchTimeout.Std()))
	if err != nil {
		errs = append(errs, err)
	}
	return reg, errors.Join(errs...)
}

// Session is one open document and its editor.
type Session struct {
	Doc    *document.Document
	Editor *engine.Editor

	app *App
}

// Open loads path into a new editor. Binary files are refused.
func (a *App) Open(path string, opts ...engine.Option) (*Session, error) {
	doc, err := document.Load(path, a.Registry())
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}
	if doc.Binary {
		return nil, NewOperationError("open", path, ErrBinaryFile)
	}
	a.log.WithField("language", doc.Language).Info("opened %s (%s)", doc.Name, doc.Encoding)
	return a.session(doc, opts...), nil
}

// OpenText creates a session over in-memory text, named path for language
// detection. Nothing is read from disk.
func (a *App) OpenText(path, text string, opts ...engine.Option) *Session {
	doc := &document.Document{
		Path:     path,
		Content:  text,
		Encoding: document.UTF8,
		Language: a.Registry().Detect(path),
	}
	return a.session(doc, opts...)
}

func (a *App) session(doc *document.Document, opts ...engine.Option) *Session {
	base := []engine.Option{
		engine.WithContent(doc.Content),
		engine.WithLanguage(doc.Language),
		engine.WithRegistry(a.Registry()),
		engine.WithLineCache(a.cfg.Syntax.CacheExpiration.Std(), a.cfg.Syntax.CacheCleanup.Std()),
		engine.WithLogger(a.log.WithComponent("engine")),
	}
	ed := engine.New(a.cfg.Editor, append(base, opts...)...)
	return &Session{Doc: doc, Editor: ed, app: a}
}

// Save writes the editor content back in the document's encoding and line
// ending style.
func (s *Session) Save() error {
	if err := s.Doc.Save(s.Editor.Text()); err != nil {
		return NewOperationError("save", s.Doc.Path, err)
	}
	s.app.log.Info("saved %s", s.Doc.Path)
	return nil
}

// Watch follows the document and the rule files on disk until ctx is
// done. A changed document replaces the editor content; a changed rule
// file rebuilds the registry. Each change is followed by a redraw.
func (s *Session) Watch(ctx context.Context, opts ...watcher.Option) error {
	a := s.app
	w, err := watcher.New(opts...)
	if err != nil {
		return err
	}
	defer w.Close()

	log := a.log.WithComponent("watcher")
	handlers := make(map[string]watcher.Handler)

	if s.Doc.Path != "" {
		if err := w.Watch(s.Doc.Path); err != nil {
			return NewOperationError("watch", s.Doc.Path, err)
		}
		reload := watcher.ReloadText(s.Editor, func(path string) (string, error) {
			doc, err := document.Load(path, nil)
			if err != nil {
				return "", err
			}
			return doc.Content, nil
		})
		handlers[s.Doc.Path] = func(ev watcher.Event) error {
			if err := reload(ev); err != nil {
				return err
			}
			s.Editor.Flush()
			return nil
		}
	}

	rules := func(watcher.Event) error {
		reg, err := a.ReloadRules(ctx)
		s.Editor.SetRegistry(reg)
		s.Editor.Flush()
		return err
	}
	for _, path := range a.RuleSources() {
		if err := w.Watch(path); err != nil {
			log.Warn("cannot watch %s: %v", path, err)
			continue
		}
		handlers[path] = rules
	}

	log.Info("watching %d files", len(handlers))
	err = watcher.Dispatch(ctx, w, handlers, log)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
