package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/parser"
	"sodagql/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Parse modules and report syntax diagnostics without transforming",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheckCmd,
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	useColor(cmd)
	out := cmd.OutOrStdout()

	fs := source.NewFileSet()
	failed := 0
	for _, path := range args {
		id, err := fs.Load(path)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
			continue
		}

		arenas := ast.NewBuilder(ast.Hints{})
		bag := diag.NewBag(100)
		parser.ParseFile(fs, fs.Get(id), arenas, parser.Options{
			MaxErrors: 100,
			Reporter:  &diag.BagReporter{Bag: bag},
		})

		bag.Sort()
		for _, d := range bag.Items() {
			renderDiagnostic(out, fs, d)
		}
		if bag.HasErrors() {
			failed++
		}
	}

	if !quiet(cmd) {
		fmt.Fprintf(out, "checked %d files, %d failed\n", len(args), failed)
	}
	if failed > 0 {
		return fmt.Errorf("check found errors in %d of %d files", failed, len(args))
	}
	return nil
}
