package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/suptext/internal/engine"
	"github.com/dshills/suptext/internal/engine/search"
)

type editFlags struct {
	selectTerm string
	insert     string
	backspace  int
	deleteN    int
	replace    string
	with       string
	ignoreCase bool
	wholeWord  bool
	comment    bool
	write      bool
}

func newEditCmd(g *globalFlags) *cobra.Command {
	f := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Apply a multi-cursor edit to a file",
		Long: `Select every occurrence of a term, then type, backspace or delete at all
cursors at once, as one undoable edit. The result is printed, or written
back to FILE with --write in its original encoding and line endings.

Steps run in this order: --replace, --select, --backspace, --delete,
--insert, --comment.

Examples:
  suptext edit notes.txt --select TODO --insert DONE
  suptext edit main.go --select oldName --insert newName --write
  suptext edit main.py --select "print(" --insert "log("
  suptext edit list.txt --select ", " --backspace 1
  suptext edit a.txt --replace colour --with color --ignore-case`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			s, err := a.Open(args[0])
			if err != nil {
				return err
			}

			if err := applyEdits(s.Editor, f, cmd.ErrOrStderr()); err != nil {
				return err
			}

			if f.write {
				return s.Save()
			}
			_, err = io.WriteString(cmd.OutOrStdout(), s.Editor.Text())
			return err
		},
	}

	cmd.Flags().StringVarP(&f.selectTerm, "select", "s", "", "select every occurrence of this term")
	cmd.Flags().StringVarP(&f.insert, "insert", "i", "", "text typed at every cursor")
	cmd.Flags().IntVar(&f.backspace, "backspace", 0, "backspaces pressed at every cursor")
	cmd.Flags().IntVar(&f.deleteN, "delete", 0, "forward deletes pressed at every cursor")
	cmd.Flags().StringVar(&f.replace, "replace", "", "replace every occurrence of this term (with --with)")
	cmd.Flags().StringVar(&f.with, "with", "", "replacement text for --replace")
	cmd.Flags().BoolVar(&f.ignoreCase, "ignore-case", false, "match terms case-insensitively")
	cmd.Flags().BoolVar(&f.wholeWord, "whole-word", false, "--replace matches whole words only")
	cmd.Flags().BoolVar(&f.comment, "comment", false, "toggle the line comment on the primary cursor's lines")
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "write the result back to FILE")
	return cmd
}

func applyEdits(ed *engine.Editor, f *editFlags, report io.Writer) error {
	if f.replace != "" {
		n := ed.ReplaceAll(f.replace, f.with, search.Options{
			CaseSensitive: !f.ignoreCase,
			WholeWord:     f.wholeWord,
		})
		fmt.Fprintf(report, "replaced %d occurrences\n", n)
	}

	if f.selectTerm != "" {
		if f.ignoreCase {
			ed.SetCaseSensitive(false)
		}
		n := ed.SelectAllOccurrences(f.selectTerm)
		if n == 0 {
			// A single match selects it without entering multi-cursor mode.
			opts := search.Options{CaseSensitive: ed.Config().CaseSensitive}
			if !ed.Find(f.selectTerm, opts, true) {
				return fmt.Errorf("no occurrences of %q", f.selectTerm)
			}
			n = 1
		}
		fmt.Fprintf(report, "selected %d occurrences\n", n)
	}

	for i := 0; i < f.backspace; i++ {
		ed.HandleKey(engine.Press(engine.KeyBackspace))
	}
	for i := 0; i < f.deleteN; i++ {
		ed.HandleKey(engine.Press(engine.KeyDelete))
	}
	if f.insert != "" {
		ed.HandleKey(engine.Text(f.insert))
	}
	if f.comment {
		ed.ToggleComment()
	}
	ed.Flush()
	return nil
}
