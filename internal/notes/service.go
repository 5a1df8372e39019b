// Package notes implements the Apple Notes operations: path resolution,
// identity verification, and the note/folder commands, each backed by a
// single osascript invocation.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/saedabdu/mcp-apple-notes/internal/applescript"
	"github.com/saedabdu/mcp-apple-notes/internal/hierarchy"
)

const (
	// DefaultAccount is the Notes account operations target unless
	// configured otherwise.
	DefaultAccount = "iCloud"

	// DefaultFolder receives notes when no folder path is given. Notes
	// creates this folder itself so it always exists.
	DefaultFolder = "Notes"
)

// Service executes Notes operations through an AppleScript runner. Every
// call is independent: no entity handle survives between calls, identities
// are re-verified per operation.
type Service struct {
	Runner applescript.Runner

	// Account is the Notes account name, DefaultAccount when empty.
	Account string

	// DefaultFolder is the target of note operations with an empty folder
	// path, DefaultFolder when empty.
	Folder string

	// AllowDuplicates disables the duplicate-name rejection on note
	// creation. Folder creation always rejects duplicates.
	AllowDuplicates bool

	Log zerolog.Logger
}

func (s *Service) account() string {
	if s.Account == "" {
		return DefaultAccount
	}
	return s.Account
}

func (s *Service) defaultFolder() string {
	if s.Folder == "" {
		return DefaultFolder
	}
	return s.Folder
}

// run executes one script body inside the account tell block and classifies
// the script's own "error:" channel.
func (s *Service) run(ctx context.Context, body string) (string, error) {
	raw, err := s.Runner.Run(ctx, applescript.TellNotes(s.account(), body))
	if err != nil {
		return "", err
	}
	if isScriptError(raw) {
		return "", scriptErr(raw)
	}
	return raw, nil
}

// notePath resolves a user-supplied folder path for note operations: empty
// means the default folder.
func (s *Service) notePath(folderPath string) ([]string, error) {
	components, err := SplitPath(folderPath)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return []string{s.defaultFolder()}, nil
	}
	return components, nil
}

// PathExists reports whether every component of folderPath resolves. The
// empty path is the root and always exists.
func (s *Service) PathExists(ctx context.Context, folderPath string) (bool, error) {
	components, err := SplitPath(folderPath)
	if err != nil {
		return false, err
	}
	if len(components) == 0 {
		return true, nil
	}
	raw, err := s.run(ctx, pathExistsBody(components))
	if err != nil {
		return false, err
	}
	return statusOf(raw) == "exists", nil
}

// noteStoreUUID probes any live note for the Core Data store UUID, needed to
// rebuild full identifiers from short primary keys.
func (s *Service) noteStoreUUID(ctx context.Context) (string, error) {
	raw, err := s.run(ctx, probeNoteStoreBody())
	if err != nil {
		return "", fmt.Errorf("probe note store: %w", err)
	}
	uuid, ok := storeUUID(raw)
	if !ok {
		return "", fmt.Errorf("probe note store: unexpected identifier %q", raw)
	}
	return uuid, nil
}

func (s *Service) folderStoreUUID(ctx context.Context) (string, error) {
	raw, err := s.run(ctx, probeFolderStoreBody())
	if err != nil {
		return "", fmt.Errorf("probe folder store: %w", err)
	}
	uuid, ok := storeUUID(raw)
	if !ok {
		return "", fmt.Errorf("probe folder store: unexpected identifier %q", raw)
	}
	return uuid, nil
}

// composeContent wraps the note title in a top-level heading and appends the
// body verbatim. The body is caller-supplied HTML and passes through
// untouched; only the script string literal syntax is escaped, at script
// build time.
func composeContent(name, body string) string {
	return "<h1>" + name + "</h1>" + body
}

// CreateNote creates a note in folderPath, materializing missing folders
// along the way. Over-long titles are truncated to the Notes limit at a word
// boundary rather than rejected.
func (s *Service) CreateNote(ctx context.Context, name, body, folderPath string) (*CreatedNote, error) {
	truncated := false
	validName, err := ValidateNoteName(name)
	if err != nil {
		var invalid *InvalidArgumentError
		if !errors.As(err, &invalid) || !strings.Contains(invalid.Reason, "exceeds Apple Notes limit") {
			return nil, err
		}
		validName, err = ValidateNoteName(TruncateNoteName(strings.TrimSpace(name)))
		if err != nil {
			return nil, err
		}
		truncated = true
	}

	components, err := s.notePath(folderPath)
	if err != nil {
		return nil, err
	}

	if !s.AllowDuplicates {
		if err := s.checkDuplicateNote(ctx, components, validName); err != nil {
			return nil, err
		}
	}

	raw, err := s.run(ctx, createNoteBody(components, composeContent(validName, body)))
	if err != nil {
		return nil, err
	}
	fields := splitFields(raw)
	if fields[0] != "created" {
		return nil, fmt.Errorf("unexpected create result %q", raw)
	}

	created := &CreatedNote{
		Name:          fieldAt(fields, 1),
		ID:            PrimaryKey(fieldAt(fields, 2)),
		Folder:        JoinPath(components),
		TruncatedName: truncated,
	}
	s.Log.Info().Str("name", created.Name).Str("folder", created.Folder).Msg("note created")
	return created, nil
}

// checkDuplicateNote rejects a name already present in the target folder.
// A missing folder is fine here: creation will materialize it, so it cannot
// hold a duplicate.
func (s *Service) checkDuplicateNote(ctx context.Context, components []string, name string) error {
	raw, err := s.run(ctx, listNotesBody(components, JoinPath(components)))
	if err != nil {
		return err
	}
	lines := splitLines(raw)
	if len(lines) == 0 || statusOf(lines[0]) == "missing" {
		return nil
	}
	for _, line := range lines[1:] {
		if fieldAt(splitFields(line), 0) == name {
			return &DuplicateExistsError{Kind: "note", Name: name, Path: JoinPath(components)}
		}
	}
	return nil
}

// ReadNote fetches a note by its short identifier. When folderPath is given
// the note must live directly in that folder.
func (s *Service) ReadNote(ctx context.Context, noteID, folderPath string) (*NoteDetail, error) {
	noteID = strings.TrimSpace(noteID)
	if noteID == "" {
		return nil, invalidf("note ID cannot be empty or contain only whitespace")
	}

	leaf := ""
	if strings.TrimSpace(folderPath) != "" {
		components, err := SplitPath(folderPath)
		if err != nil {
			return nil, err
		}
		leaf = components[len(components)-1]
	}

	uuid, err := s.noteStoreUUID(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.run(ctx, readNoteBody(fullNoteID(uuid, noteID), leaf))
	if err != nil {
		return nil, classifyNoteErr(err, noteID)
	}

	fields := splitFields(raw)
	switch fields[0] {
	case "wrongfolder":
		return nil, &NotFoundError{Kind: "note", Ref: noteID + " in folder " + folderPath}
	case "ok":
	default:
		return nil, fmt.Errorf("unexpected read result %q", raw)
	}

	// The body is raw HTML and may itself contain the field separator, so it
	// is re-joined from the middle fields.
	if len(fields) < 6 {
		return nil, fmt.Errorf("unexpected read result %q", raw)
	}
	return &NoteDetail{
		Name:     fields[1],
		ID:       PrimaryKey(fields[2]),
		Body:     strings.Join(fields[3:len(fields)-2], fieldSep),
		Created:  fields[len(fields)-2],
		Modified: fields[len(fields)-1],
	}, nil
}

// UpdateNote rewrites a note's title and/or body after verifying the
// supplied id+name still match the live note. Folder membership never
// changes here.
func (s *Service) UpdateNote(ctx context.Context, noteID, name, newName, newBody string) (*UpdatedNote, error) {
	noteID = strings.TrimSpace(noteID)
	if noteID == "" {
		return nil, invalidf("note ID cannot be empty or contain only whitespace")
	}
	expected, err := ValidateNoteName(name)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(newName) == "" && newBody == "" {
		return nil, invalidf("nothing to update: supply a new name, a new body, or both")
	}

	title := expected
	if strings.TrimSpace(newName) != "" {
		title, err = ValidateNoteName(newName)
		if err != nil {
			return nil, err
		}
	}

	uuid, err := s.noteStoreUUID(ctx)
	if err != nil {
		return nil, err
	}
	fullID := fullNoteID(uuid, noteID)

	body := newBody
	if body == "" {
		// Title-only update: keep the current body text below the heading.
		current, err := s.readVerified(ctx, fullID, noteID, expected)
		if err != nil {
			return nil, err
		}
		body = stripHeading(current.Body)
	}

	raw, err := s.run(ctx, updateNoteBody(fullID, expected, composeContent(title, body)))
	if err != nil {
		return nil, classifyNoteErr(err, noteID)
	}
	fields := splitFields(raw)
	switch fields[0] {
	case "mismatch":
		return nil, &StaleReferenceError{ID: noteID, Expected: expected, Actual: fieldAt(fields, 1)}
	case "ok":
	default:
		return nil, fmt.Errorf("unexpected update result %q", raw)
	}

	updated := &UpdatedNote{Name: fieldAt(fields, 1), ID: noteID}
	s.Log.Info().Str("note_id", noteID).Str("name", updated.Name).Msg("note updated")
	return updated, nil
}

// readVerified reads a note by full id, additionally enforcing the identity
// contract that plain reads skip.
func (s *Service) readVerified(ctx context.Context, fullID, noteID, expected string) (*NoteDetail, error) {
	raw, err := s.run(ctx, readNoteBody(fullID, ""))
	if err != nil {
		return nil, classifyNoteErr(err, noteID)
	}
	fields := splitFields(raw)
	if fields[0] != "ok" || len(fields) < 6 {
		return nil, fmt.Errorf("unexpected read result %q", raw)
	}
	if fields[1] != expected {
		return nil, &StaleReferenceError{ID: noteID, Expected: expected, Actual: fields[1]}
	}
	return &NoteDetail{
		Name: fields[1],
		ID:   PrimaryKey(fields[2]),
		Body: strings.Join(fields[3:len(fields)-2], fieldSep),
	}, nil
}

// stripHeading drops the leading <h1>…</h1> wrapper creation added, leaving
// the body proper. Content without the wrapper passes through whole.
func stripHeading(body string) string {
	lower := strings.ToLower(body)
	if !strings.HasPrefix(lower, "<h1") {
		return body
	}
	end := strings.Index(lower, "</h1>")
	if end < 0 {
		return body
	}
	return body[end+len("</h1>"):]
}

// DeleteNote removes a note after verifying the id+name pair. The name and
// identifier captured before deletion come back in the result.
func (s *Service) DeleteNote(ctx context.Context, noteID, name string) (*DeletedNote, error) {
	noteID = strings.TrimSpace(noteID)
	if noteID == "" {
		return nil, invalidf("note ID cannot be empty or contain only whitespace")
	}
	expected, err := ValidateNoteName(name)
	if err != nil {
		return nil, err
	}

	uuid, err := s.noteStoreUUID(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.run(ctx, deleteNoteBody(fullNoteID(uuid, noteID), expected))
	if err != nil {
		return nil, classifyNoteErr(err, noteID)
	}
	fields := splitFields(raw)
	switch fields[0] {
	case "mismatch":
		return nil, &StaleReferenceError{ID: noteID, Expected: expected, Actual: fieldAt(fields, 1)}
	case "deleted":
	default:
		return nil, fmt.Errorf("unexpected delete result %q", raw)
	}

	s.Log.Info().Str("note_id", noteID).Str("name", expected).Msg("note deleted")
	return &DeletedNote{Name: fieldAt(fields, 1), ID: PrimaryKey(fieldAt(fields, 2))}, nil
}

// MoveNote relocates a note from sourcePath to targetPath. The target folder
// must already exist; moving never creates structure.
func (s *Service) MoveNote(ctx context.Context, noteID, sourcePath, targetPath string) (*MovedNote, error) {
	noteID = strings.TrimSpace(noteID)
	if noteID == "" {
		return nil, invalidf("note ID cannot be empty or contain only whitespace")
	}
	source, err := s.notePath(sourcePath)
	if err != nil {
		return nil, err
	}
	target, err := s.notePath(targetPath)
	if err != nil {
		return nil, err
	}
	if JoinPath(source) == JoinPath(target) {
		return nil, invalidf("source and target folder are both %q: nothing to move", JoinPath(source))
	}

	uuid, err := s.noteStoreUUID(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.run(ctx, moveNoteBody(fullNoteID(uuid, noteID), source, target))
	if err != nil {
		return nil, classifyNoteErr(err, noteID)
	}
	fields := splitFields(raw)
	switch fields[0] {
	case "missing":
		return nil, &PathNotFoundError{Path: JoinPath(source), Component: fieldAt(fields, 1)}
	case "missing-target":
		return nil, &PathNotFoundError{Path: JoinPath(target), Component: fieldAt(fields, 1)}
	case "wrongfolder":
		return nil, &NotFoundError{Kind: "note", Ref: noteID + " in folder " + JoinPath(source)}
	case "moved":
	default:
		return nil, fmt.Errorf("unexpected move result %q", raw)
	}

	moved := &MovedNote{
		Name:   fieldAt(fields, 1),
		ID:     noteID,
		Source: JoinPath(source),
		Target: JoinPath(target),
	}
	s.Log.Info().Str("note_id", noteID).Str("source", moved.Source).Str("target", moved.Target).Msg("note moved")
	return moved, nil
}

// ListNotes enumerates the notes directly inside folderPath (the default
// folder when empty).
func (s *Service) ListNotes(ctx context.Context, folderPath string) ([]NoteInfo, error) {
	components, err := s.notePath(folderPath)
	if err != nil {
		return nil, err
	}

	raw, err := s.run(ctx, listNotesBody(components, JoinPath(components)))
	if err != nil {
		return nil, err
	}
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty list result")
	}
	header := splitFields(lines[0])
	if header[0] == "missing" {
		return nil, &PathNotFoundError{Path: JoinPath(components), Component: fieldAt(header, 1)}
	}

	return parseNoteItems(lines[1:]), nil
}

// ListAllNotes enumerates every note in the account with its owning folder.
func (s *Service) ListAllNotes(ctx context.Context) ([]NoteInfo, error) {
	raw, err := s.run(ctx, listAllNotesBody())
	if err != nil {
		return nil, err
	}
	lines := splitLines(raw)
	if len(lines) == 0 || statusOf(lines[0]) != "ok" {
		return nil, fmt.Errorf("unexpected list result %q", raw)
	}
	return parseNoteItems(lines[1:]), nil
}

func parseNoteItems(lines []string) []NoteInfo {
	items := make([]NoteInfo, 0, len(lines))
	for _, line := range lines {
		fields := splitFields(line)
		if len(fields) < 2 {
			continue
		}
		items = append(items, NoteInfo{
			Name:   fields[0],
			ID:     PrimaryKey(fields[1]),
			Folder: fieldAt(fields, 2),
		})
	}
	return items
}

// SearchNotes scans every note in the account, the Recently Deleted folder
// included, for the comma-separated keywords. Matching is the case-blind
// substring comparison AppleScript applies by default; every keyword that
// hit is reported per note.
func (s *Service) SearchNotes(ctx context.Context, keywords string) ([]SearchMatch, error) {
	var terms []string
	for _, kw := range strings.Split(keywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			terms = append(terms, kw)
		}
	}
	if len(terms) == 0 {
		return nil, invalidf("keywords cannot be empty: supply a comma-separated keyword list")
	}

	raw, err := s.run(ctx, searchBody(terms))
	if err != nil {
		return nil, err
	}
	lines := splitLines(raw)
	if len(lines) == 0 || statusOf(lines[0]) != "ok" {
		return nil, fmt.Errorf("unexpected search result %q", raw)
	}

	matches := make([]SearchMatch, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitFields(line)
		if len(fields) < 4 {
			continue
		}
		matches = append(matches, SearchMatch{
			ID:              PrimaryKey(fields[0]),
			Name:            fields[1],
			Folder:          fields[2],
			MatchedKeywords: strings.Split(fields[3], ","),
		})
	}
	return matches, nil
}

// CreateFolder creates a folder under parentPath. Ancestors must already
// exist: folder structure is explicit intent, never a side effect.
func (s *Service) CreateFolder(ctx context.Context, name, parentPath string) (*CreatedFolder, error) {
	validName, err := ValidateFolderName(name)
	if err != nil {
		return nil, err
	}
	parent, err := SplitPath(parentPath)
	if err != nil {
		return nil, err
	}
	if len(parent)+1 > MaxDepth {
		return nil, &DepthExceededError{Path: JoinPath(append(parent, validName)), Depth: len(parent) + 1}
	}

	if err := s.checkDuplicateFolder(ctx, parent, validName); err != nil {
		return nil, err
	}

	raw, err := s.run(ctx, createFolderBody(parent, validName))
	if err != nil {
		return nil, err
	}
	fields := splitFields(raw)
	switch fields[0] {
	case "missing":
		return nil, &PathNotFoundError{Path: JoinPath(parent), Component: fieldAt(fields, 1)}
	case "created":
	default:
		return nil, fmt.Errorf("unexpected create result %q", raw)
	}

	created := &CreatedFolder{
		Name: fieldAt(fields, 1),
		ID:   PrimaryKey(fieldAt(fields, 2)),
		Path: JoinPath(append(parent, validName)),
	}
	s.Log.Info().Str("path", created.Path).Msg("folder created")
	return created, nil
}

// checkDuplicateFolder rejects a sibling name collision, case-sensitively.
func (s *Service) checkDuplicateFolder(ctx context.Context, parent []string, name string) error {
	raw, err := s.run(ctx, listFoldersBody(parent))
	if err != nil {
		return err
	}
	lines := splitLines(raw)
	if len(lines) == 0 {
		return fmt.Errorf("empty folder list result")
	}
	header := splitFields(lines[0])
	if header[0] == "missing" {
		return &PathNotFoundError{Path: JoinPath(parent), Component: fieldAt(header, 1)}
	}
	for _, line := range lines[1:] {
		if fieldAt(splitFields(line), 0) == name {
			return &DuplicateExistsError{Kind: "folder", Name: name, Path: JoinPath(parent)}
		}
	}
	return nil
}

// ListFolders enumerates the folders directly under parentPath, or the root
// level for an empty path.
func (s *Service) ListFolders(ctx context.Context, parentPath string) ([]FolderInfo, error) {
	parent, err := SplitPath(parentPath)
	if err != nil {
		return nil, err
	}
	raw, err := s.run(ctx, listFoldersBody(parent))
	if err != nil {
		return nil, err
	}
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty folder list result")
	}
	header := splitFields(lines[0])
	if header[0] == "missing" {
		return nil, &PathNotFoundError{Path: JoinPath(parent), Component: fieldAt(header, 1)}
	}

	items := make([]FolderInfo, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := splitFields(line)
		if len(fields) < 2 {
			continue
		}
		items = append(items, FolderInfo{Name: fields[0], ID: PrimaryKey(fields[1])})
	}
	return items, nil
}

// RenameFolder renames the folder called currentName inside folderPath.
func (s *Service) RenameFolder(ctx context.Context, folderPath, currentName, newName string) (*RenamedFolder, error) {
	current, err := ValidateFolderName(currentName)
	if err != nil {
		return nil, err
	}
	next, err := ValidateFolderName(newName)
	if err != nil {
		return nil, err
	}
	if current == next {
		return nil, invalidf("new folder name %q is the same as the current name", next)
	}
	parent, err := SplitPath(folderPath)
	if err != nil {
		return nil, err
	}

	raw, err := s.run(ctx, renameFolderBody(parent, current, next))
	if err != nil {
		return nil, err
	}
	fields := splitFields(raw)
	switch fields[0] {
	case "missing":
		return nil, &PathNotFoundError{Path: JoinPath(parent), Component: fieldAt(fields, 1)}
	case "duplicate":
		return nil, &DuplicateExistsError{Kind: "folder", Name: next, Path: JoinPath(parent)}
	case "notfound":
		return nil, &NotFoundError{Kind: "folder", Ref: current}
	case "renamed":
	default:
		return nil, fmt.Errorf("unexpected rename result %q", raw)
	}

	s.Log.Info().Str("path", JoinPath(parent)).Str("old", current).Str("new", next).Msg("folder renamed")
	return &RenamedFolder{Old: current, New: next, Path: JoinPath(parent)}, nil
}

// MoveFolder relocates the folder called folderName from sourcePath to
// targetPath, descendants included. An empty targetPath is the root level.
func (s *Service) MoveFolder(ctx context.Context, sourcePath, folderName, targetPath string) (*MovedFolder, error) {
	name, err := ValidateFolderName(folderName)
	if err != nil {
		return nil, err
	}
	source, err := SplitPath(sourcePath)
	if err != nil {
		return nil, err
	}
	target, err := SplitPath(targetPath)
	if err != nil {
		return nil, err
	}
	if JoinPath(source) == JoinPath(target) {
		return nil, invalidf("cannot move folder %q to the same location", name)
	}

	// The folder moves with its whole subtree, so the depth check counts the
	// deepest descendant, not just the folder itself.
	subtree, err := s.subtreeDepth(ctx, append(append([]string{}, source...), name))
	if err != nil {
		return nil, err
	}
	if resulting := len(target) + 1 + subtree; resulting > MaxDepth {
		return nil, &DepthExceededError{Path: JoinPath(append(target, name)), Depth: resulting}
	}

	raw, err := s.run(ctx, moveFolderBody(source, name, target))
	if err != nil {
		return nil, err
	}
	fields := splitFields(raw)
	switch fields[0] {
	case "missing":
		return nil, &PathNotFoundError{Path: JoinPath(source), Component: fieldAt(fields, 1)}
	case "missing-target":
		return nil, &PathNotFoundError{Path: JoinPath(target), Component: fieldAt(fields, 1)}
	case "notfound":
		return nil, &NotFoundError{Kind: "folder", Ref: name}
	case "duplicate":
		return nil, &DuplicateExistsError{Kind: "folder", Name: name, Path: JoinPath(target)}
	case "moved":
	default:
		return nil, fmt.Errorf("unexpected move result %q", raw)
	}

	moved := &MovedFolder{Name: name, Source: JoinPath(source), Target: JoinPath(target)}
	s.Log.Info().Str("name", name).Str("source", moved.Source).Str("target", moved.Target).Msg("folder moved")
	return moved, nil
}

// subtreeDepth measures folder levels below the folder at components; 0 for
// a leaf folder.
func (s *Service) subtreeDepth(ctx context.Context, components []string) (int, error) {
	raw, err := s.run(ctx, subtreeDepthBody(components))
	if err != nil {
		return 0, err
	}
	fields := splitFields(raw)
	switch fields[0] {
	case "missing":
		return 0, &PathNotFoundError{Path: JoinPath(components), Component: fieldAt(fields, 1)}
	case "depth":
		depth, err := strconv.Atoi(strings.TrimSpace(fieldAt(fields, 1)))
		if err != nil {
			return 0, fmt.Errorf("unexpected depth result %q", raw)
		}
		return depth, nil
	default:
		return 0, fmt.Errorf("unexpected depth result %q", raw)
	}
}

// FolderDetails describes the folder at folderPath and its immediate
// children. Deep traversal is the structure listings' job.
func (s *Service) FolderDetails(ctx context.Context, folderPath string) (*FolderDetails, error) {
	components, err := SplitPath(folderPath)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		return nil, invalidf("folder path cannot be empty: name the folder to inspect")
	}

	raw, err := s.run(ctx, folderDetailsBody(components))
	if err != nil {
		return nil, err
	}
	lines := splitLines(raw)
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty details result")
	}
	header := splitFields(lines[0])
	switch header[0] {
	case "missing":
		return nil, &PathNotFoundError{Path: JoinPath(components), Component: fieldAt(header, 1)}
	case "ok":
	default:
		return nil, fmt.Errorf("unexpected details result %q", raw)
	}

	details := &FolderDetails{
		Name: fieldAt(header, 1),
		ID:   PrimaryKey(fieldAt(header, 2)),
		Path: JoinPath(components),
	}
	details.FolderCount, _ = strconv.Atoi(strings.TrimSpace(fieldAt(header, 3)))
	details.NoteCount, _ = strconv.Atoi(strings.TrimSpace(fieldAt(header, 4)))

	for _, line := range lines[1:] {
		fields := splitFields(line)
		if len(fields) < 3 {
			continue
		}
		switch fields[0] {
		case "folder":
			details.Folders = append(details.Folders, FolderInfo{Name: fields[1], ID: PrimaryKey(fields[2])})
		case "note":
			details.Notes = append(details.Notes, NoteInfo{Name: fields[1], ID: PrimaryKey(fields[2])})
		}
	}
	return details, nil
}

// DeleteFolder removes a folder by id+name after identity verification. The
// folder's contents are deleted with it; AppleScript offers no option to
// spare them.
func (s *Service) DeleteFolder(ctx context.Context, folderID, name string) (*DeletedFolder, error) {
	folderID = strings.TrimSpace(folderID)
	if folderID == "" {
		return nil, invalidf("folder ID cannot be empty or contain only whitespace")
	}
	expected, err := ValidateFolderName(name)
	if err != nil {
		return nil, err
	}

	uuid, err := s.folderStoreUUID(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := s.run(ctx, deleteFolderBody(fullFolderID(uuid, folderID), expected))
	if err != nil {
		return nil, classifyFolderErr(err, folderID)
	}
	fields := splitFields(raw)
	switch fields[0] {
	case "mismatch":
		return nil, &StaleReferenceError{ID: folderID, Expected: expected, Actual: fieldAt(fields, 1)}
	case "deleted":
	default:
		return nil, fmt.Errorf("unexpected delete result %q", raw)
	}

	s.Log.Info().Str("folder_id", folderID).Str("name", expected).Msg("folder deleted")
	return &DeletedFolder{Name: fieldAt(fields, 1), ID: PrimaryKey(fieldAt(fields, 2))}, nil
}

// FolderStructure dumps the account's folder hierarchy as a tree.
func (s *Service) FolderStructure(ctx context.Context) (*hierarchy.Tree, error) {
	raw, err := s.run(ctx, structureBody(false))
	if err != nil {
		return nil, err
	}
	return hierarchy.Build(hierarchy.ParseDump(raw)), nil
}

// NotesStructure dumps the folder hierarchy with the notes inside each
// folder.
func (s *Service) NotesStructure(ctx context.Context) (*hierarchy.Tree, error) {
	raw, err := s.run(ctx, structureBody(true))
	if err != nil {
		return nil, err
	}
	return hierarchy.Build(hierarchy.ParseDump(raw)), nil
}

// classifyNoteErr maps the script's lookup failure for a note id onto the
// typed NotFound, leaving other failures untouched.
func classifyNoteErr(err error, noteID string) error {
	var scriptError *ScriptError
	if errors.As(err, &scriptError) && strings.Contains(scriptError.Message, "note id") {
		return &NotFoundError{Kind: "note", Ref: noteID}
	}
	return err
}

func classifyFolderErr(err error, folderID string) error {
	var scriptError *ScriptError
	if errors.As(err, &scriptError) && strings.Contains(scriptError.Message, "folder id") {
		return &NotFoundError{Kind: "folder", Ref: folderID}
	}
	return err
}
