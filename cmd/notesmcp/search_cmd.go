package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func searchCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "search <keywords>",
		Short: "Search notes by keyword",
		Long:  "Searches every note (Recently Deleted included) for the given comma-separated keywords. Matching is case-insensitive substring containment.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
			defer cancel()

			matches, err := svc.SearchNotes(ctx, strings.Join(args, ","))
			if err != nil {
				return err
			}

			if jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}
			for _, m := range matches {
				fmt.Printf("%-10s %-30s %-20s %s\n", m.ID, m.Name, m.Folder, strings.Join(m.MatchedKeywords, ","))
			}
			fmt.Printf("\n%d matches\n", len(matches))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}
