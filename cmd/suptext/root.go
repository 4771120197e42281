package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/suptext/internal/app"
)

type globalFlags struct {
	configPath string
	rules      []string
	luaFiles   []string
	logLevel   string
}

func (g *globalFlags) open(cmd *cobra.Command) (*app.App, error) {
	switch g.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", g.logLevel)
	}
	return app.New(commandContext(cmd), app.Options{
		ConfigPath: g.configPath,
		RuleFiles:  g.rules,
		LuaFiles:   g.luaFiles,
		LogLevel:   g.logLevel,
		LogOutput:  cmd.ErrOrStderr(),
	})
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "suptext",
		Short: "Rule-based syntax highlighting and multi-cursor editing",
		Long: `suptext classifies source lines with per-language rule tables and edits
files with a multi-cursor engine.

Languages come from the built-in tables, then YAML rule files, then Lua
scripts; a later definition of a language replaces an earlier one.

Examples:
  suptext highlight main.py
  suptext highlight --color --lang Python snippet.txt
  suptext edit notes.txt --select TODO --insert DONE --write
  suptext open main.py
  suptext languages --rules ./lua.yaml`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "",
		"config file (default: <user config dir>/suptext/settings.toml)")
	root.PersistentFlags().StringArrayVar(&g.rules, "rules", nil,
		"YAML rule file (can be repeated)")
	root.PersistentFlags().StringArrayVar(&g.luaFiles, "lua", nil,
		"Lua language script (can be repeated)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	root.AddCommand(
		newHighlightCmd(g),
		newEditCmd(g),
		newLanguagesCmd(g),
		newOpenCmd(g),
		newWatchCmd(g),
	)
	return root
}
