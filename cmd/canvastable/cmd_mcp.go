package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lvillar/canvastable/mcp"
)

// runMCPCore serves MCP requests from in until EOF or ctx is done.
func runMCPCore(ctx context.Context, env *cliEnv, in io.Reader, out io.Writer) error {
	server := mcp.NewServer(
		mcp.WithIO(in, out),
		mcp.WithLogger(env.log),
		mcp.WithTableOptions(env.tableOptions()...),
	)
	mcp.RegisterDefaultTools(server)
	mcp.RegisterDefaultResources(server)

	env.log.Infon("MCP server started")
	return server.Run(ctx)
}

func init() {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve table rendering over MCP on stdin/stdout",
		Long:  "Run an MCP server on stdio. Logs never go to stdout; set CANVASTABLE_LOGGER_ENABLE_FILE and CANVASTABLE_LOGGER_LOG_FILE_LOCATION to keep them.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runMCPCore(ctx, loadEnv(false), os.Stdin, os.Stdout)
		},
	}
	rootCmd.AddCommand(mcpCmd)
}
