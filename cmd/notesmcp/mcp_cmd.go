package main

import (
	"github.com/spf13/cobra"

	"github.com/saedabdu/mcp-apple-notes/internal/config"
	"github.com/saedabdu/mcp-apple-notes/internal/logging"
	mcpserver "github.com/saedabdu/mcp-apple-notes/internal/mcp"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server on stdio",
		Long:  "Starts the MCP server. Protocol framing goes to stdout, logs to stderr; point your MCP client at this command.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			mcpserver.Version = Version
			return mcpserver.Serve(cfg, logging.New(cfg.Log.Level))
		},
	}
}
