package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/suptext/internal/engine"
	"github.com/dshills/suptext/internal/watcher"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-print changed lines whenever FILE or a rule file changes",
		Long: `Print FILE's classified lines, then follow it on disk, reprinting them
whenever FILE or a rule file changes. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			s, err := a.Open(args[0], engine.WithSink(engine.SpanSink{W: cmd.OutOrStdout()}))
			if err != nil {
				return err
			}
			s.Editor.Redraw()

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return s.Watch(ctx, watcher.WithDelay(delay))
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", watcher.DefaultDelay, "debounce window for file changes")
	return cmd
}
