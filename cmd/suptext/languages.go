package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLanguagesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages with rule tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			reg := a.Registry()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tEXTENSIONS\tCOMMENT\tRULES")
			for _, name := range reg.Languages() {
				t, ok := reg.Lookup(name)
				if !ok {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", t.Language(), strings.Join(t.Extensions(), " "), t.Comment(), t.Len())
			}
			return tw.Flush()
		},
	}
}
