package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/saedabdu/mcp-apple-notes/internal/hierarchy"
)

// registerResources exposes read-only account snapshots. Resources are for
// clients that want context without issuing tool calls; both map onto the
// same service operations the tools use.
func registerResources(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         "notes://all",
		Name:        "All Notes",
		Description: "Every note in the account with its owning folder, as JSON",
		MIMEType:    "application/json",
	}, handleAllNotesResource)

	server.AddResource(&mcp.Resource{
		URI:         "notes://structure",
		Name:        "Folder Structure",
		Description: "The account's folder hierarchy rendered as an indented tree",
		MIMEType:    "text/plain",
	}, handleStructureResource)
}

func handleAllNotesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	items, err := svc.ListAllNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all notes: %w", err)
	}

	data, err := json.MarshalIndent(map[string]any{
		"notes": items,
		"count": len(items),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode notes: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "notes://all",
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

func handleStructureResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	tree, err := svc.FolderStructure(ctx)
	if err != nil {
		return nil, fmt.Errorf("folder structure: %w", err)
	}

	text := "No folders found."
	if !tree.Empty() {
		text = hierarchy.Render(tree, true)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      "notes://structure",
				MIMEType: "text/plain",
				Text:     text,
			},
		},
	}, nil
}
