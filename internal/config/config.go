package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/suptext/internal/config/loader"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SUPTEXT_"

// Config is the complete settings tree. It is passed explicitly to the
// components that need it; there is no global instance.
type Config struct {
	Editor  Editor  `toml:"editor"`
	UI      UI      `toml:"ui"`
	Syntax  Syntax  `toml:"syntax"`
	Logging Logging `toml:"logging"`
}

// Editor holds editing behavior.
type Editor struct {
	// TabSize is the number of spaces Tab inserts and Enter adds after a
	// block opener.
	TabSize int `toml:"tab_size"`

	// UseSpaces inserts spaces instead of a tab character.
	UseSpaces bool `toml:"use_spaces"`

	// AutoIndent copies the previous line's indentation on Enter.
	AutoIndent bool `toml:"auto_indent"`

	// CaseSensitive is the default for select-all-occurrences.
	CaseSensitive bool `toml:"case_sensitive"`

	// BlinkInterval is the multi-cursor blink period.
	BlinkInterval Duration `toml:"blink_interval"`

	// MaxUndo bounds the undo stack.
	MaxUndo int `toml:"max_undo"`
}

// UI holds presentation settings.
type UI struct {
	Theme string `toml:"theme"`
}

// Syntax configures rule table sources and the tokenizer.
type Syntax struct {
	// RuleFiles are YAML rule files loaded after the built-in languages.
	RuleFiles []string `toml:"rule_files"`

	// LuaFiles are Lua language scripts loaded after the rule files.
	LuaFiles []string `toml:"lua_files"`

	// MatchTimeout bounds a single rule match.
	MatchTimeout Duration `toml:"match_timeout"`

	// CacheExpiration is how long a classified line stays cached.
	CacheExpiration Duration `toml:"cache_expiration"`

	// CacheCleanup is the purge interval of the line cache.
	CacheCleanup Duration `toml:"cache_cleanup"`
}

// Logging configures the application logger.
type Logging struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level"`
}

// Duration is a time.Duration that reads and writes as "500ms" in TOML.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: Editor{
			TabSize:       4,
			UseSpaces:     true,
			AutoIndent:    true,
			CaseSensitive: true,
			BlinkInterval: Duration(500 * time.Millisecond),
			MaxUndo:       1000,
		},
		UI: UI{
			Theme: "dark",
		},
		Syntax: Syntax{
			MatchTimeout:    Duration(100 * time.Millisecond),
			CacheExpiration: Duration(5 * time.Minute),
			CacheCleanup:    Duration(10 * time.Minute),
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// DefaultPath returns the user settings file location.
func DefaultPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "suptext", "settings.toml")
	}
	return ""
}

// Load builds the settings from defaults, the TOML file at path (skipped
// when path is empty or the file does not exist) and SUPTEXT_ environment
// variables, in that order. The result is validated.
func Load(path string) (*Config, error) {
	return load(loader.NewTOMLLoader(), loader.NewEnvLoader(EnvPrefix), path)
}

func load(tl *loader.TOMLLoader, el *loader.EnvLoader, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := tl.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(el.Load()); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides. Unknown paths are rejected.
func (c *Config) ApplyEnv(settings []loader.Setting) error {
	for _, s := range settings {
		if err := c.set(s.Path, s.Value); err != nil {
			return &EnvError{Env: s.Env, Path: s.Path, Err: err}
		}
	}
	return nil
}

func (c *Config) set(path, value string) error {
	switch path {
	case "editor.tab_size":
		return setInt(&c.Editor.TabSize, value)
	case "editor.use_spaces":
		return setBool(&c.Editor.UseSpaces, value)
	case "editor.auto_indent":
		return setBool(&c.Editor.AutoIndent, value)
	case "editor.case_sensitive":
		return setBool(&c.Editor.CaseSensitive, value)
	case "editor.blink_interval":
		return c.Editor.BlinkInterval.UnmarshalText([]byte(value))
	case "editor.max_undo":
		return setInt(&c.Editor.MaxUndo, value)
	case "ui.theme":
		c.UI.Theme = value
	case "syntax.rule_files":
		c.Syntax.RuleFiles = splitList(value)
	case "syntax.lua_files":
		c.Syntax.LuaFiles = splitList(value)
	case "syntax.match_timeout":
		return c.Syntax.MatchTimeout.UnmarshalText([]byte(value))
	case "syntax.cache_expiration":
		return c.Syntax.CacheExpiration.UnmarshalText([]byte(value))
	case "syntax.cache_cleanup":
		return c.Syntax.CacheCleanup.UnmarshalText([]byte(value))
	case "logging.level":
		c.Logging.Level = value
	default:
		return ErrSettingNotFound
	}
	return nil
}

func setInt(dst *int, s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, s)
	}
	*dst = v
	return nil
}

func setBool(dst *bool, s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on", "1":
		*dst = true
	case "false", "no", "off", "0":
		*dst = false
	default:
		return fmt.Errorf("%w: %q is not a boolean", ErrTypeMismatch, s)
	}
	return nil
}

// splitList splits a path list on the OS list separator.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return filepath.SplitList(s)
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	var problems []error
	check := func(ok bool, path string, value any, msg string) {
		if !ok {
			problems = append(problems, &ValidationError{Path: path, Value: value, Message: msg})
		}
	}

	check(c.Editor.TabSize >= 1 && c.Editor.TabSize <= 16, "editor.tab_size", c.Editor.TabSize, "must be between 1 and 16")
	check(c.Editor.BlinkInterval > 0, "editor.blink_interval", c.Editor.BlinkInterval.Std(), "must be positive")
	check(c.Editor.MaxUndo > 0, "editor.max_undo", c.Editor.MaxUndo, "must be positive")
	check(c.Syntax.MatchTimeout > 0, "syntax.match_timeout", c.Syntax.MatchTimeout.Std(), "must be positive")
	check(c.Syntax.CacheExpiration >= 0, "syntax.cache_expiration", c.Syntax.CacheExpiration.Std(), "must not be negative")

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		check(false, "logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}

	return joinValidation(problems)
}
