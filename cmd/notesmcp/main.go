// Package main is the entrypoint for the notesmcp CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "notesmcp",
		Short: "MCP server for Apple Notes",
		Long:  "notesmcp — exposes Apple Notes to MCP clients over stdio, backed by AppleScript automation.",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(mcpCmd())
	root.AddCommand(doctorCmd())
	root.AddCommand(listCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(treeCmd())
	root.AddCommand(configCmd())
	root.AddCommand(versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the notesmcp version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("notesmcp %s\n", Version)
			return nil
		},
	}
}
