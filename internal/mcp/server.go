// Package mcp implements the MCP server exposing Apple Notes operations.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/saedabdu/mcp-apple-notes/internal/applescript"
	"github.com/saedabdu/mcp-apple-notes/internal/config"
	"github.com/saedabdu/mcp-apple-notes/internal/hierarchy"
	"github.com/saedabdu/mcp-apple-notes/internal/notes"
)

// svc is shared by every handler. One service, no per-call state: each tool
// invocation is an independent osascript round trip.
var svc *notes.Service

// Version is set by the caller (main) before calling Serve.
var Version = "dev"

// Serve starts the MCP server on stdio. Logs go to the supplied logger, never
// stdout — stdout carries the protocol framing.
func Serve(cfg *config.Config, log zerolog.Logger) error {
	svc = NewService(cfg, log)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "apple-notes",
		Version: Version,
	}, nil)

	registerTools(server)
	registerResources(server)
	registerPrompts(server)

	log.Info().Str("version", Version).Str("account", cfg.Notes.Account).Msg("mcp server starting on stdio")
	return server.Run(context.Background(), &mcp.StdioTransport{})
}

// NewService wires a notes.Service from config.
func NewService(cfg *config.Config, log zerolog.Logger) *notes.Service {
	return &notes.Service{
		Runner: &applescript.Osascript{
			Path:    cfg.Script.OsascriptPath,
			Timeout: cfg.Timeout(),
			Log:     log,
		},
		Account:         cfg.Notes.Account,
		Folder:          cfg.Notes.DefaultFolder,
		AllowDuplicates: cfg.Notes.AllowDuplicates,
		Log:             log,
	}
}

func registerTools(server *mcp.Server) {
	// create_note
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_note",
		Description: "Create a new note in Apple Notes.\n\nArgs:\n  name: Note title. Wrapped in an <h1> heading automatically. Titles over 250 characters are truncated at a word boundary. Wrap the title in backticks (`like: this`) to allow characters that are otherwise rejected (< > : \" | ? *).\n  body: HTML body content (headings, paragraphs, lists, tables, links). Passed to Notes verbatim.\n  folder_path: Slash-delimited folder path (e.g. 'Work/Projects'), up to 5 levels. Missing folders are created. Defaults to the 'Notes' folder.\n\nReturns the created note's name, short id, and folder.",
	}, handleCreateNote)

	// read_note
	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_note",
		Description: "Read a note's full content and metadata by its short id (as returned by list or search tools).\n\nArgs:\n  note_id: Short note id (e.g. 'p1308')\n  folder_path: Optional folder path; when given the note must live directly in that folder.\n\nReturns name, body HTML, and creation/modification timestamps.",
	}, handleReadNote)

	// update_note
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title and/or body. The supplied name must still match the live note; if the note was renamed since you listed it, the call fails and you should list again for fresh ids.\n\nArgs:\n  note_id: Short note id\n  name: Current note title, for verification\n  new_name: New title (optional)\n  new_body: New HTML body (optional; omitting it keeps the current body)\n\nAt least one of new_name/new_body is required. Never moves the note.",
	}, handleUpdateNote)

	// delete_note
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note by id after verifying its name still matches.\n\nArgs:\n  note_id: Short note id\n  name: Current note title, for verification\n\nReturns the deleted note's name and id.",
	}, handleDeleteNote)

	// move_note
	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_note",
		Description: "Move a note between folders. The target folder must already exist — moving never creates folders.\n\nArgs:\n  note_id: Short note id\n  source_path: Folder path the note currently lives in\n  target_path: Folder path to move it to\n\nFails if source and target are the same.",
	}, handleMoveNote)

	// list_notes
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_notes",
		Description: "List the notes directly inside one folder.\n\nArgs:\n  folder_path: Slash-delimited folder path. Defaults to the 'Notes' folder.\n\nReturns name and short id per note, plus a count.",
	}, handleListNotes)

	// list_all_notes
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_all_notes",
		Description: "List every note in the account with its owning folder.\n\nReturns name, short id, and folder per note, plus a count.",
	}, handleListAllNotes)

	// search_notes
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_notes",
		Description: "Search every note (Recently Deleted included) for literal keywords. Matching is case-insensitive substring containment against the note's name and body — no ranking.\n\nArgs:\n  keywords: Comma-separated keyword list (e.g. 'milk,ideas')\n\nReturns matching notes with the keywords that hit.",
	}, handleSearchNotes)

	// create_folder
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_folder",
		Description: "Create a folder. Parent folders must already exist: folder structure is explicit, so create ancestors first.\n\nArgs:\n  folder_name: Name for the new folder (max 128 characters, no < > : \" | ? *)\n  folder_path: Parent path; empty creates at the root level. Total nesting is capped at 5 levels.\n\nFails if a sibling with the same name exists.",
	}, handleCreateFolder)

	// rename_folder
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rename_folder",
		Description: "Rename a folder in place.\n\nArgs:\n  folder_path: Path of the folder's parent (empty for root-level folders)\n  current_name: The folder's current name\n  new_name: The new name; must differ and must not collide with a sibling.",
	}, handleRenameFolder)

	// move_folder
	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_folder",
		Description: "Move a folder (and everything inside it) to another parent.\n\nArgs:\n  source_path: Path of the folder's current parent (empty for root level)\n  folder_name: Name of the folder to move\n  target_path: Path of the new parent; empty moves to the root level\n\nThe folder's deepest descendant counts toward the 5-level nesting cap.",
	}, handleMoveFolder)

	// delete_folder
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_folder",
		Description: "Delete a folder by id after verifying its name still matches. The folder's notes and subfolders are deleted with it.\n\nArgs:\n  folder_id: Short folder id (e.g. 'p2330')\n  name: Current folder name, for verification.",
	}, handleDeleteFolder)

	// get_folder_details
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_folder_details",
		Description: "Inspect one folder: its id and the folders and notes directly inside it. Does not recurse — use list_folder_with_structure for the full tree.\n\nArgs:\n  folder_path: Slash-delimited path of the folder to inspect.",
	}, handleGetFolderDetails)

	// list_folder_with_structure
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_folder_with_structure",
		Description: "Render the account's complete folder hierarchy as an indented tree with short folder ids.",
	}, handleFolderStructure)

	// list_notes_with_structure
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_notes_with_structure",
		Description: "Render the complete folder hierarchy with the notes inside each folder as an indented tree.",
	}, handleNotesStructure)
}

// Tool input types

type createNoteInput struct {
	Name       string `json:"name" jsonschema:"Note title"`
	Body       string `json:"body" jsonschema:"HTML body content"`
	FolderPath string `json:"folder_path,omitempty" jsonschema:"Target folder path (default 'Notes')"`
}

type readNoteInput struct {
	NoteID     string `json:"note_id" jsonschema:"Short note id"`
	FolderPath string `json:"folder_path,omitempty" jsonschema:"Folder the note must live in (optional)"`
}

type updateNoteInput struct {
	NoteID  string `json:"note_id" jsonschema:"Short note id"`
	Name    string `json:"name" jsonschema:"Current note title, for verification"`
	NewName string `json:"new_name,omitempty" jsonschema:"New title (optional)"`
	NewBody string `json:"new_body,omitempty" jsonschema:"New HTML body (optional)"`
}

type deleteNoteInput struct {
	NoteID string `json:"note_id" jsonschema:"Short note id"`
	Name   string `json:"name" jsonschema:"Current note title, for verification"`
}

type moveNoteInput struct {
	NoteID     string `json:"note_id" jsonschema:"Short note id"`
	SourcePath string `json:"source_path" jsonschema:"Folder path the note lives in"`
	TargetPath string `json:"target_path" jsonschema:"Folder path to move it to"`
}

type listNotesInput struct {
	FolderPath string `json:"folder_path,omitempty" jsonschema:"Folder path (default 'Notes')"`
}

type searchNotesInput struct {
	Keywords string `json:"keywords" jsonschema:"Comma-separated keyword list"`
}

type createFolderInput struct {
	FolderName string `json:"folder_name" jsonschema:"Name for the new folder"`
	FolderPath string `json:"folder_path,omitempty" jsonschema:"Parent path (empty for root)"`
}

type renameFolderInput struct {
	FolderPath  string `json:"folder_path,omitempty" jsonschema:"Path of the folder's parent (empty for root)"`
	CurrentName string `json:"current_name" jsonschema:"The folder's current name"`
	NewName     string `json:"new_name" jsonschema:"The new name"`
}

type moveFolderInput struct {
	SourcePath string `json:"source_path,omitempty" jsonschema:"Current parent path (empty for root)"`
	FolderName string `json:"folder_name" jsonschema:"Name of the folder to move"`
	TargetPath string `json:"target_path,omitempty" jsonschema:"New parent path (empty for root)"`
}

type deleteFolderInput struct {
	FolderID string `json:"folder_id" jsonschema:"Short folder id"`
	Name     string `json:"name" jsonschema:"Current folder name, for verification"`
}

type folderDetailsInput struct {
	FolderPath string `json:"folder_path" jsonschema:"Path of the folder to inspect"`
}

type emptyInput struct{}

// Tool handlers

func handleCreateNote(ctx context.Context, req *mcp.CallToolRequest, input createNoteInput) (*mcp.CallToolResult, any, error) {
	created, err := svc.CreateNote(ctx, input.Name, input.Body, input.FolderPath)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{
		"status":         "created",
		"name":           created.Name,
		"note_id":        created.ID,
		"folder":         created.Folder,
		"truncated_name": created.TruncatedName,
	}), nil, nil
}

func handleReadNote(ctx context.Context, req *mcp.CallToolRequest, input readNoteInput) (*mcp.CallToolResult, any, error) {
	detail, err := svc.ReadNote(ctx, input.NoteID, input.FolderPath)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(detail), nil, nil
}

func handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest, input updateNoteInput) (*mcp.CallToolResult, any, error) {
	updated, err := svc.UpdateNote(ctx, input.NoteID, input.Name, input.NewName, input.NewBody)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{
		"status":  "updated",
		"name":    updated.Name,
		"note_id": updated.ID,
	}), nil, nil
}

func handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest, input deleteNoteInput) (*mcp.CallToolResult, any, error) {
	deleted, err := svc.DeleteNote(ctx, input.NoteID, input.Name)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{
		"status":  "deleted",
		"name":    deleted.Name,
		"note_id": deleted.ID,
	}), nil, nil
}

func handleMoveNote(ctx context.Context, req *mcp.CallToolRequest, input moveNoteInput) (*mcp.CallToolResult, any, error) {
	moved, err := svc.MoveNote(ctx, input.NoteID, input.SourcePath, input.TargetPath)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{
		"status": "moved",
		"name":   moved.Name,
		"source": moved.Source,
		"target": moved.Target,
	}), nil, nil
}

func handleListNotes(ctx context.Context, req *mcp.CallToolRequest, input listNotesInput) (*mcp.CallToolResult, any, error) {
	items, err := svc.ListNotes(ctx, input.FolderPath)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{"notes": items, "count": len(items)}), nil, nil
}

func handleListAllNotes(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	items, err := svc.ListAllNotes(ctx)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{"notes": items, "count": len(items)}), nil, nil
}

func handleSearchNotes(ctx context.Context, req *mcp.CallToolRequest, input searchNotesInput) (*mcp.CallToolResult, any, error) {
	matches, err := svc.SearchNotes(ctx, input.Keywords)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{"matches": matches, "count": len(matches)}), nil, nil
}

func handleCreateFolder(ctx context.Context, req *mcp.CallToolRequest, input createFolderInput) (*mcp.CallToolResult, any, error) {
	created, err := svc.CreateFolder(ctx, input.FolderName, input.FolderPath)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{
		"status": "created",
		"name":   created.Name,
		"id":     created.ID,
		"path":   created.Path,
	}), nil, nil
}

func handleRenameFolder(ctx context.Context, req *mcp.CallToolRequest, input renameFolderInput) (*mcp.CallToolResult, any, error) {
	renamed, err := svc.RenameFolder(ctx, input.FolderPath, input.CurrentName, input.NewName)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{
		"status": "renamed",
		"old":    renamed.Old,
		"new":    renamed.New,
		"path":   renamed.Path,
	}), nil, nil
}

func handleMoveFolder(ctx context.Context, req *mcp.CallToolRequest, input moveFolderInput) (*mcp.CallToolResult, any, error) {
	moved, err := svc.MoveFolder(ctx, input.SourcePath, input.FolderName, input.TargetPath)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{
		"status": "moved",
		"name":   moved.Name,
		"source": moved.Source,
		"target": moved.Target,
	}), nil, nil
}

func handleDeleteFolder(ctx context.Context, req *mcp.CallToolRequest, input deleteFolderInput) (*mcp.CallToolResult, any, error) {
	deleted, err := svc.DeleteFolder(ctx, input.FolderID, input.Name)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(map[string]any{
		"status": "deleted",
		"name":   deleted.Name,
		"id":     deleted.ID,
	}), nil, nil
}

func handleGetFolderDetails(ctx context.Context, req *mcp.CallToolRequest, input folderDetailsInput) (*mcp.CallToolResult, any, error) {
	details, err := svc.FolderDetails(ctx, input.FolderPath)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(details), nil, nil
}

func handleFolderStructure(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	tree, err := svc.FolderStructure(ctx)
	if err != nil {
		return errorResult(err), nil, nil
	}
	if tree.Empty() {
		return textResult("No folders found."), nil, nil
	}
	return textResult(hierarchy.Render(tree, true)), nil, nil
}

func handleNotesStructure(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	tree, err := svc.NotesStructure(ctx)
	if err != nil {
		return errorResult(err), nil, nil
	}
	if tree.Empty() {
		return textResult("No folders found."), nil, nil
	}
	return textResult(hierarchy.Render(tree, true)), nil, nil
}

// Helpers

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}
	return textResult(string(data))
}

// errorResult turns an operation failure into a tool error with a corrective
// hint where one exists. Failures are never retried here: osascript calls
// are not safe to blindly re-run against live Notes state.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + errorMessage(err)},
		},
		IsError: true,
	}
}

func errorMessage(err error) string {
	var (
		invalid  *notes.InvalidArgumentError
		pathErr  *notes.PathNotFoundError
		depthErr *notes.DepthExceededError
		dupErr   *notes.DuplicateExistsError
		staleErr *notes.StaleReferenceError
		notFound *notes.NotFoundError
		script   *notes.ScriptError
		execErr  *applescript.ExecError
		timeout  *applescript.TimeoutError
	)
	switch {
	case errors.As(err, &invalid),
		errors.As(err, &pathErr),
		errors.As(err, &depthErr),
		errors.As(err, &dupErr),
		errors.As(err, &notFound):
		return err.Error()
	case errors.As(err, &staleErr):
		return err.Error() + " (the entity changed since it was listed)"
	case errors.As(err, &script):
		return "Notes reported: " + script.Message
	case errors.As(err, &execErr):
		return err.Error() + " (check that this process has Automation permission for Notes in System Settings)"
	case errors.As(err, &timeout):
		return err.Error() + " (Notes may be launching or syncing; try again)"
	default:
		return err.Error()
	}
}

