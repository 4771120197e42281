// Package config loads suptext settings.
//
// Settings are resolved in three layers, later layers overriding earlier:
//
//	1. Built-in defaults (Default)
//	2. The user settings file, TOML (~/.config/suptext/settings.toml)
//	3. SUPTEXT_ environment variables
//
// The settings file mirrors the Config struct:
//
//	[editor]
//	tab_size = 4
//	use_spaces = true
//	auto_indent = true
//	case_sensitive = true
//	blink_interval = "500ms"
//
//	[ui]
//	theme = "dark"
//
//	[syntax]
//	rule_files = ["/home/me/.config/suptext/rules.yaml"]
//	lua_files = []
//
//	[logging]
//	level = "info"
//
// Environment variables use the long form SUPTEXT_<SECTION>_<KEY>, for
// example SUPTEXT_EDITOR_TAB_SIZE=2, or one of the short aliases
// SUPTEXT_TAB_SIZE, SUPTEXT_THEME and SUPTEXT_LOG_LEVEL. List settings are
// separated by the OS path list separator.
package config
