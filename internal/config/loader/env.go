package loader

import (
	"os"
	"sort"
	"strings"
)

// EnvLoader collects settings from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "SUPTEXT_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "SUPTEXT_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		environ: os.Environ,
	}
}

// NewEnvLoaderFrom creates a loader that reads the given KEY=VALUE list
// instead of the process environment.
func NewEnvLoaderFrom(prefix string, environ []string) *EnvLoader {
	l := NewEnvLoader(prefix)
	l.environ = func() []string { return environ }
	return l
}

// defaultEnvMapping returns the short aliases for common settings.
func defaultEnvMapping(prefix string) map[string]string {
	return map[string]string{
		prefix + "LOG_LEVEL":      "logging.level",
		prefix + "THEME":          "ui.theme",
		prefix + "TAB_SIZE":       "editor.tab_size",
		prefix + "USE_SPACES":     "editor.use_spaces",
		prefix + "AUTO_INDENT":    "editor.auto_indent",
		prefix + "BLINK_INTERVAL": "editor.blink_interval",
		prefix + "CASE_SENSITIVE": "editor.case_sensitive",
	}
}

// Setting is one environment override.
type Setting struct {
	Env   string
	Path  string
	Value string
}

// Load returns the overrides present in the environment, ordered by path.
// Empty values are valid values, not unset. When both a short alias and
// the long form name the same setting, the long form wins.
func (l *EnvLoader) Load() []Setting {
	byPath := make(map[string]Setting)
	long := make(map[string]bool)

	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		path, alias := l.mapping[name]
		if !alias {
			path = l.envToPath(name)
		}
		if path == "" || (alias && long[path]) {
			continue
		}
		long[path] = long[path] || !alias
		byPath[path] = Setting{Env: name, Path: path, Value: value}
	}

	out := make([]Setting, 0, len(byPath))
	for _, s := range byPath {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[envVar] = configPath
}

// envToPath converts SUPTEXT_EDITOR_TAB_SIZE to editor.tab_size. A name
// with no section part yields "".
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}
