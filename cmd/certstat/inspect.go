package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spektr-org/certstat/ingest"
	"github.com/spektr-org/certstat/schema"
)

// newInspectCmd shows which header column realizes each feature in every
// input file, without counting anything.
func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show which header column each feature resolves to, per input file",
		Long: `Inspect reads only the header row of every input file and prints the column
each feature resolves to. It fails the same way a full run would when a
feature matches zero or several columns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := schema.LoadRegistry(a.fs, a.v.GetString("features"))
			if err != nil {
				return err
			}
			files, err := ingest.ListInputs(a.fs, a.v.GetString("input"))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range files {
				res, err := a.resolveFile(path, reg)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, path)
				printColumn(out, res.Status)
				for _, col := range res.Counted {
					printColumn(out, col)
				}
			}
			return nil
		},
	}
}

func (a *app) resolveFile(path string, reg schema.Registry) (schema.Resolution, error) {
	header, err := ingest.ReadHeader(a.fs, path)
	if err != nil {
		return schema.Resolution{}, err
	}
	return schema.Resolve(path, header, reg)
}

func printColumn(w io.Writer, col schema.Column) {
	fmt.Fprintf(w, "  %-12s %s (column %d)\n", col.Feature, col.Header, col.Index+1)
}
