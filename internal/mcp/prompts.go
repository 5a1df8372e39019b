package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/saedabdu/mcp-apple-notes/internal/hierarchy"
)

// registerPrompts wires prompt templates that seed a client conversation
// with live account state.
func registerPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "organize_notes",
		Description: "Review the current folder structure and propose a cleaner organization",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "focus",
				Description: "Optional area to focus on, e.g. a folder name or a topic",
				Required:    false,
			},
		},
	}, handleOrganizePrompt)
}

func handleOrganizePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	tree, err := svc.NotesStructure(ctx)
	if err != nil {
		return nil, fmt.Errorf("notes structure: %w", err)
	}

	structure := "The account has no folders yet."
	if !tree.Empty() {
		structure = hierarchy.Render(tree, false)
	}

	focus := ""
	if v, ok := req.Params.Arguments["focus"]; ok && v != "" {
		focus = fmt.Sprintf("\n\nFocus on: %s", v)
	}

	text := fmt.Sprintf(`Here is the current Apple Notes folder structure with the notes in each folder:

%s

Suggest a cleaner organization: folders to merge or rename, notes that look misplaced, and a concrete sequence of move_note / move_folder / rename_folder calls to get there. Folder nesting is limited to 5 levels.%s`, structure, focus)

	return &mcp.GetPromptResult{
		Description: "Organize Apple Notes folders",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}, nil
}
