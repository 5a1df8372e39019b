package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/saedabdu/mcp-apple-notes/internal/config"
	mcpserver "github.com/saedabdu/mcp-apple-notes/internal/mcp"
	"github.com/saedabdu/mcp-apple-notes/internal/notes"
)

func listCmd() *cobra.Command {
	var (
		folderPath string
		all        bool
		jsonOut    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes in a folder",
		Long:  "Lists the notes in one folder, or every note in the account with --all.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
			defer cancel()

			var items []notes.NoteInfo
			if all {
				items, err = svc.ListAllNotes(ctx)
			} else {
				items, err = svc.ListNotes(ctx, folderPath)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}
			for _, n := range items {
				if n.Folder != "" {
					fmt.Printf("%-10s %-30s %s\n", n.ID, n.Name, n.Folder)
				} else {
					fmt.Printf("%-10s %s\n", n.ID, n.Name)
				}
			}
			fmt.Printf("\n%d notes\n", len(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&folderPath, "folder", "", "Folder path (default: the 'Notes' folder)")
	cmd.Flags().BoolVar(&all, "all", false, "List every note in the account")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// newService builds a notes service from the effective config for one-shot
// CLI commands. Logging is suppressed; CLI output is the result itself.
func newService() (*notes.Service, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	return mcpserver.NewService(cfg, zerolog.Nop()), cfg, nil
}
