package main

import (
	"io"

	"github.com/spf13/cobra"
)

func runDefaultsCore(env *cliEnv, w io.Writer, format string) error {
	return printValue(w, format, env.settings)
}

func init() {
	defaultsCmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the settings documents are merged over",
		Long:  "Print the default settings with CANVASTABLE_* overrides applied. Document options are merged over these field by field.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDefaultsCore(loadEnv(true), cmd.OutOrStdout(), flagFormat)
		},
	}
	rootCmd.AddCommand(defaultsCmd)
}
