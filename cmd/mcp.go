package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/timerdeck/internal/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server speaks over stdio and exposes tools to drive the timer, the task
queue, the history and the multi-timers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !app.config.MCP.Enabled {
			return errors.New("the MCP server is disabled in config (mcp.enabled)")
		}

		// stdout carries the protocol.
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Starting MCP server on stdio. Press Ctrl+C to stop.")

		server := mcp.NewServer(app.state, Version)
		app.logger.Info("mcp server starting", "version", Version)
		if err := server.Start(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
