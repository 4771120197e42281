package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dshills/suptext/internal/app"
	"github.com/dshills/suptext/internal/document"
	"github.com/dshills/suptext/internal/engine"
	"github.com/dshills/suptext/internal/syntax"
)

func newHighlightCmd(g *globalFlags) *cobra.Command {
	var (
		lang   string
		color  string
		format string
		theme  string
	)

	cmd := &cobra.Command{
		Use:   "highlight FILE",
		Short: "Print a file's lines with their syntax spans",
		Long: `Print each line of FILE followed by its classified spans, as ANSI-colored
text, or as JSON Lines. FILE may be "-" to read standard input.

Colored output is used when --color is "always", or "auto" with a terminal
on standard output; --format json disables it.

Examples:
  suptext highlight main.py
  suptext highlight --color --theme light main.py
  suptext highlight --format json main.py | jq .spans
  cat snippet | suptext highlight --lang Python -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var sink engine.Sink
			switch {
			case format == "json":
				sink = engine.JSONSink{W: out}
			case format != "spans":
				return fmt.Errorf("unknown format %q (must be spans or json)", format)
			case useColor(color, out):
				t := a.Theme()
				if theme != "" {
					t = syntax.ThemeByName(theme)
				}
				sink = engine.ANSISink{W: out, Theme: t}
			default:
				sink = engine.SpanSink{W: out}
			}

			s, err := openArg(a, cmd.InOrStdin(), args[0], engine.WithSink(sink))
			if err != nil {
				return err
			}
			if lang != "" {
				if _, ok := a.Registry().Lookup(lang); !ok {
					return fmt.Errorf("unknown language %q (see suptext languages)", lang)
				}
				s.Editor.SetLanguage(lang)
			}
			s.Editor.Redraw()
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "language name, overriding detection")
	cmd.Flags().StringVar(&color, "color", "auto", "color output: auto, always or never")
	cmd.Flags().Lookup("color").NoOptDefVal = "always"
	cmd.Flags().StringVarP(&format, "format", "f", "spans", "output format: spans or json")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme, overriding the config (dark, light)")
	return cmd
}

func useColor(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "auto":
		f, ok := out.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	default:
		return false
	}
}

// openArg opens path, or standard input when path is "-".
func openArg(a *app.App, stdin io.Reader, path string, opts ...engine.Option) (*app.Session, error) {
	if path != "-" {
		return a.Open(path, opts...)
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	doc, err := document.FromBytes("", raw, nil)
	if err != nil {
		return nil, err
	}
	return a.OpenText("", doc.Content, opts...), nil
}
