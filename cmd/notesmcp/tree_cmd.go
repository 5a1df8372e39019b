package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saedabdu/mcp-apple-notes/internal/hierarchy"
)

func treeCmd() *cobra.Command {
	var (
		withNotes bool
		showIDs   bool
	)
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the folder hierarchy",
		Long:  "Renders the account's folder structure as an indented tree, optionally with the notes inside each folder.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
			defer cancel()

			var tree *hierarchy.Tree
			if withNotes {
				tree, err = svc.NotesStructure(ctx)
			} else {
				tree, err = svc.FolderStructure(ctx)
			}
			if err != nil {
				return err
			}
			if tree.Empty() {
				fmt.Println("No folders found.")
				return nil
			}
			fmt.Print(hierarchy.Render(tree, showIDs))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withNotes, "notes", false, "Include notes inside each folder")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show short folder ids")
	return cmd
}
