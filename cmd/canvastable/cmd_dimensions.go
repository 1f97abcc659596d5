package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/lvillar/canvastable/tabletpl"
)

// runDimensionsCore lays out the document at path and prints its
// measurement in the requested format.
func runDimensionsCore(ctx context.Context, env *cliEnv, w io.Writer, path, format string) error {
	doc, err := tabletpl.Load(path)
	if err != nil {
		return err
	}
	m, err := tabletpl.Measure(ctx, doc, env.tableOptions()...)
	if err != nil {
		return err
	}
	return printValue(w, format, m)
}

func init() {
	dimensionsCmd := &cobra.Command{
		Use:   "dimensions DOCUMENT",
		Short: "Print the table area and column widths of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDimensionsCore(cmd.Context(), loadEnv(true), cmd.OutOrStdout(), args[0], flagFormat)
		},
	}
	rootCmd.AddCommand(dimensionsCmd)
}
