package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/suptext/internal/engine"
	"github.com/dshills/suptext/internal/screen"
)

func newOpenCmd(g *globalFlags) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "open FILE",
		Short: "Edit a file in the terminal",
		Long: `Open FILE in an interactive terminal editor.

Keys:
  Ctrl-D  select all occurrences of the selection or word under the cursor
  Esc     leave multi-cursor mode
  Ctrl-Z  undo        Ctrl-Y  redo
  Ctrl-/  toggle comment
  Ctrl-S  save        Ctrl-Q  quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}

			scr, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := scr.Init(); err != nil {
				return err
			}
			defer scr.Fini()

			view := screen.NewView(scr, a.Theme(), a.Config().Editor.TabSize)
			s, err := a.Open(args[0], engine.WithSink(view))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if follow {
				go func() {
					if err := s.Watch(ctx); err != nil {
						a.Logger().WithComponent("watcher").Warn("%v", err)
					}
				}()
			}

			loop := screen.NewLoop(scr, view, s.Editor,
				screen.WithName(s.Doc.Name),
				screen.WithSave(s.Save),
				screen.WithLogger(a.Logger().WithComponent("screen")),
			)
			err = loop.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "reload the file and rule files when they change on disk")
	return cmd
}
