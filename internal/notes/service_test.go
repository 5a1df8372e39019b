package notes

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const testUUID = "AAAA-BBBB-CCCC"

func noteID(pk string) string   { return "x-coredata://" + testUUID + "/ICNote/" + pk }
func folderID(pk string) string { return "x-coredata://" + testUUID + "/ICFolder/" + pk }

// fakeRunner replays canned results in call order and records every script
// it was handed.
type fakeRunner struct {
	replies []string
	err     error
	scripts []string
}

func (f *fakeRunner) Run(_ context.Context, script string) (string, error) {
	f.scripts = append(f.scripts, script)
	if f.err != nil {
		return "", f.err
	}
	idx := len(f.scripts) - 1
	if idx < len(f.replies) {
		return f.replies[idx], nil
	}
	return "", nil
}

func newService(replies ...string) (*Service, *fakeRunner) {
	runner := &fakeRunner{replies: replies}
	return &Service{Runner: runner, Log: zerolog.Nop()}, runner
}

func TestCreateNote(t *testing.T) {
	svc, runner := newService(
		"ok\nOther note|||"+noteID("p1")+"|||Work",
		"created|||Standup|||"+noteID("p9"),
	)

	created, err := svc.CreateNote(context.Background(), "Standup", "<p>agenda</p>", "Work")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if created.Name != "Standup" || created.ID != "p9" || created.Folder != "Work" {
		t.Errorf("created = %+v", created)
	}
	if created.TruncatedName {
		t.Error("TruncatedName set for a short title")
	}
	if len(runner.scripts) != 2 {
		t.Fatalf("got %d scripts, want duplicate check then create", len(runner.scripts))
	}
	if !strings.Contains(runner.scripts[1], "<h1>Standup</h1><p>agenda</p>") {
		t.Errorf("create script missing composed content:\n%s", runner.scripts[1])
	}
}

func TestCreateNoteDuplicate(t *testing.T) {
	svc, _ := newService("ok\nStandup|||" + noteID("p1") + "|||Work")

	_, err := svc.CreateNote(context.Background(), "Standup", "", "Work")
	var dup *DuplicateExistsError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicateExistsError", err)
	}
	if dup.Name != "Standup" || dup.Kind != "note" {
		t.Errorf("dup = %+v", dup)
	}
}

func TestCreateNoteDuplicateAllowed(t *testing.T) {
	svc, runner := newService("created|||Standup|||" + noteID("p9"))
	svc.AllowDuplicates = true

	if _, err := svc.CreateNote(context.Background(), "Standup", "", "Work"); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if len(runner.scripts) != 1 {
		t.Errorf("got %d scripts, want create only (no duplicate check)", len(runner.scripts))
	}
}

func TestCreateNoteTruncatesLongTitle(t *testing.T) {
	long := strings.Repeat("word ", 60)
	svc, _ := newService(
		"ok",
		"created|||truncated title|||"+noteID("p2"),
	)

	created, err := svc.CreateNote(context.Background(), long, "", "Work")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if !created.TruncatedName {
		t.Error("TruncatedName not set for an over-long title")
	}
}

func TestCreateNoteDefaultsFolder(t *testing.T) {
	svc, runner := newService("ok", "created|||n|||"+noteID("p3"))

	created, err := svc.CreateNote(context.Background(), "n", "", "")
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	if created.Folder != DefaultFolder {
		t.Errorf("Folder = %q, want %q", created.Folder, DefaultFolder)
	}
	if !strings.Contains(runner.scripts[0], `{"Notes"}`) {
		t.Errorf("duplicate check not aimed at the default folder:\n%s", runner.scripts[0])
	}
}

func TestReadNote(t *testing.T) {
	svc, _ := newService(
		noteID("p1"),
		"ok|||Standup|||"+noteID("p5")+"|||<h1>Standup</h1><p>agenda</p>|||Monday, January 1, 2024|||Tuesday, January 2, 2024",
	)

	detail, err := svc.ReadNote(context.Background(), "p5", "")
	if err != nil {
		t.Fatalf("ReadNote: %v", err)
	}
	if detail.Name != "Standup" || detail.ID != "p5" {
		t.Errorf("detail = %+v", detail)
	}
	if detail.Body != "<h1>Standup</h1><p>agenda</p>" {
		t.Errorf("Body = %q", detail.Body)
	}
	if detail.Created == "" || detail.Modified == "" {
		t.Errorf("timestamps missing: %+v", detail)
	}
}

func TestReadNoteBodyWithSeparator(t *testing.T) {
	svc, _ := newService(
		noteID("p1"),
		"ok|||n|||"+noteID("p5")+"|||<p>a|||b</p>|||created|||modified",
	)

	detail, err := svc.ReadNote(context.Background(), "p5", "")
	if err != nil {
		t.Fatalf("ReadNote: %v", err)
	}
	if detail.Body != "<p>a|||b</p>" {
		t.Errorf("Body = %q, want separator preserved", detail.Body)
	}
}

func TestReadNoteNotFound(t *testing.T) {
	svc, _ := newService(
		noteID("p1"),
		`error:Can't get note id "`+noteID("p404")+`".`,
	)

	_, err := svc.ReadNote(context.Background(), "p404", "")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestReadNoteWrongFolder(t *testing.T) {
	svc, _ := newService(
		noteID("p1"),
		"wrongfolder|||Archive",
	)

	_, err := svc.ReadNote(context.Background(), "p5", "Work")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestUpdateNoteStaleReference(t *testing.T) {
	svc, _ := newService(
		noteID("p1"),
		"mismatch|||Renamed elsewhere",
	)

	_, err := svc.UpdateNote(context.Background(), "p5", "Old name", "", "<p>new</p>")
	var stale *StaleReferenceError
	if !errors.As(err, &stale) {
		t.Fatalf("err = %v, want StaleReferenceError", err)
	}
	if stale.Expected != "Old name" || stale.Actual != "Renamed elsewhere" {
		t.Errorf("stale = %+v", stale)
	}
}

func TestUpdateNoteBodyOnly(t *testing.T) {
	svc, runner := newService(
		noteID("p1"),
		"ok|||Standup|||"+noteID("p5"),
	)

	updated, err := svc.UpdateNote(context.Background(), "p5", "Standup", "", "<p>new agenda</p>")
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	if updated.Name != "Standup" || updated.ID != "p5" {
		t.Errorf("updated = %+v", updated)
	}
	last := runner.scripts[len(runner.scripts)-1]
	if !strings.Contains(last, "<h1>Standup</h1><p>new agenda</p>") {
		t.Errorf("update script missing recomposed content:\n%s", last)
	}
}

func TestUpdateNoteRenameKeepsBody(t *testing.T) {
	svc, runner := newService(
		noteID("p1"),
		"ok|||Standup|||"+noteID("p5")+"|||<h1>Standup</h1><p>agenda</p>|||c|||m",
		"ok|||Daily sync|||"+noteID("p5"),
	)

	_, err := svc.UpdateNote(context.Background(), "p5", "Standup", "Daily sync", "")
	if err != nil {
		t.Fatalf("UpdateNote: %v", err)
	}
	last := runner.scripts[len(runner.scripts)-1]
	if !strings.Contains(last, "<h1>Daily sync</h1><p>agenda</p>") {
		t.Errorf("rename did not keep the existing body:\n%s", last)
	}
}

func TestUpdateNoteNothingToDo(t *testing.T) {
	svc, runner := newService()
	_, err := svc.UpdateNote(context.Background(), "p5", "Standup", "", "")
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidArgumentError", err)
	}
	if len(runner.scripts) != 0 {
		t.Error("validation failure still reached the bridge")
	}
}

func TestDeleteNote(t *testing.T) {
	svc, _ := newService(
		noteID("p1"),
		"deleted|||Standup|||"+noteID("p5"),
	)

	deleted, err := svc.DeleteNote(context.Background(), "p5", "Standup")
	if err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if deleted.Name != "Standup" || deleted.ID != "p5" {
		t.Errorf("deleted = %+v", deleted)
	}
}

func TestMoveNote(t *testing.T) {
	svc, _ := newService(
		noteID("p1"),
		"moved|||Standup",
	)

	moved, err := svc.MoveNote(context.Background(), "p5", "Work", "Work/Archive")
	if err != nil {
		t.Fatalf("MoveNote: %v", err)
	}
	if moved.Source != "Work" || moved.Target != "Work/Archive" {
		t.Errorf("moved = %+v", moved)
	}
}

func TestMoveNoteSamePath(t *testing.T) {
	svc, runner := newService()
	_, err := svc.MoveNote(context.Background(), "p5", "Work", "Work")
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidArgumentError", err)
	}
	if len(runner.scripts) != 0 {
		t.Error("same-path move still reached the bridge")
	}
}

func TestMoveNoteTargetMissing(t *testing.T) {
	svc, _ := newService(
		noteID("p1"),
		"missing-target|||Archive",
	)

	_, err := svc.MoveNote(context.Background(), "p5", "Work", "Work/Archive")
	var pathErr *PathNotFoundError
	if !errors.As(err, &pathErr) {
		t.Fatalf("err = %v, want PathNotFoundError", err)
	}
	if pathErr.Component != "Archive" {
		t.Errorf("Component = %q, want Archive", pathErr.Component)
	}
}

func TestListNotes(t *testing.T) {
	svc, _ := newService("ok\nA|||" + noteID("p1") + "|||Work\nB|||" + noteID("p2") + "|||Work")

	items, err := svc.ListNotes(context.Background(), "Work")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(items) != 2 || items[0].ID != "p1" || items[1].Name != "B" {
		t.Errorf("items = %+v", items)
	}
}

func TestListNotesMissingFolder(t *testing.T) {
	svc, _ := newService("missing|||Projects")

	_, err := svc.ListNotes(context.Background(), "Work/Projects")
	var pathErr *PathNotFoundError
	if !errors.As(err, &pathErr) {
		t.Fatalf("err = %v, want PathNotFoundError", err)
	}
}

func TestListNotesSkipsMangledLines(t *testing.T) {
	svc, _ := newService("ok\nA|||" + noteID("p1") + "|||Work\nmangled\nB|||" + noteID("p2") + "|||Work")

	items, err := svc.ListNotes(context.Background(), "Work")
	if err != nil {
		t.Fatalf("ListNotes: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want the mangled line skipped", len(items))
	}
}

func TestSearchNotes(t *testing.T) {
	svc, _ := newService("ok\n" +
		noteID("p1") + "|||TODO list|||Notes|||milk\n" +
		noteID("p2") + "|||Ideas|||Notes|||ideas")

	matches, err := svc.SearchNotes(context.Background(), "milk,ideas")
	if err != nil {
		t.Fatalf("SearchNotes: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].Name != "TODO list" || matches[0].MatchedKeywords[0] != "milk" {
		t.Errorf("first match = %+v", matches[0])
	}
	if matches[1].Name != "Ideas" || matches[1].MatchedKeywords[0] != "ideas" {
		t.Errorf("second match = %+v", matches[1])
	}
}

func TestSearchNotesEmptyKeywords(t *testing.T) {
	svc, _ := newService()
	_, err := svc.SearchNotes(context.Background(), " , ,")
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidArgumentError", err)
	}
}

func TestCreateFolder(t *testing.T) {
	svc, _ := newService(
		"ok\nExisting|||"+folderID("p1"),
		"created|||Q1|||"+folderID("p7"),
	)

	created, err := svc.CreateFolder(context.Background(), "Q1", "Work/Projects/2024")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if created.Path != "Work/Projects/2024/Q1" || created.ID != "p7" {
		t.Errorf("created = %+v", created)
	}
}

func TestCreateFolderDuplicate(t *testing.T) {
	svc, _ := newService("ok\nWork|||" + folderID("p1"))

	_, err := svc.CreateFolder(context.Background(), "Work", "")
	var dup *DuplicateExistsError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicateExistsError", err)
	}
}

func TestCreateFolderDepthExceeded(t *testing.T) {
	svc, runner := newService()
	_, err := svc.CreateFolder(context.Background(), "f", "a/b/c/d/e")
	var depthErr *DepthExceededError
	if !errors.As(err, &depthErr) {
		t.Fatalf("err = %v, want DepthExceededError", err)
	}
	if len(runner.scripts) != 0 {
		t.Error("depth failure still reached the bridge")
	}
}

func TestCreateFolderParentMissing(t *testing.T) {
	svc, _ := newService("missing|||Projects")

	_, err := svc.CreateFolder(context.Background(), "Q1", "Work/Projects")
	var pathErr *PathNotFoundError
	if !errors.As(err, &pathErr) {
		t.Fatalf("err = %v, want PathNotFoundError", err)
	}
}

func TestRenameFolder(t *testing.T) {
	svc, _ := newService("renamed|||Q1|||Q1-renamed")

	renamed, err := svc.RenameFolder(context.Background(), "Work/Projects/2024", "Q1", "Q1-renamed")
	if err != nil {
		t.Fatalf("RenameFolder: %v", err)
	}
	if renamed.Old != "Q1" || renamed.New != "Q1-renamed" || renamed.Path != "Work/Projects/2024" {
		t.Errorf("renamed = %+v", renamed)
	}
}

func TestRenameFolderSameName(t *testing.T) {
	svc, _ := newService()
	_, err := svc.RenameFolder(context.Background(), "Work", "Q1", "Q1")
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want InvalidArgumentError", err)
	}
}

func TestRenameFolderDuplicate(t *testing.T) {
	svc, _ := newService("duplicate|||Q2")

	_, err := svc.RenameFolder(context.Background(), "Work", "Q1", "Q2")
	var dup *DuplicateExistsError
	if !errors.As(err, &dup) {
		t.Fatalf("err = %v, want DuplicateExistsError", err)
	}
}

func TestMoveFolder(t *testing.T) {
	svc, _ := newService(
		"depth|||0",
		"moved|||Q1",
	)

	moved, err := svc.MoveFolder(context.Background(), "Work/Projects", "Q1", "Work")
	if err != nil {
		t.Fatalf("MoveFolder: %v", err)
	}
	if moved.Source != "Work/Projects" || moved.Target != "Work" {
		t.Errorf("moved = %+v", moved)
	}
}

// A folder carries its subtree along, so the depth check adds the deepest
// descendant: target depth 4 + the folder + 2 levels below it breaks the
// 5-level cap.
func TestMoveFolderSubtreeDepthExceeded(t *testing.T) {
	svc, _ := newService("depth|||2")

	_, err := svc.MoveFolder(context.Background(), "Work", "Q1", "a/b/c/d")
	var depthErr *DepthExceededError
	if !errors.As(err, &depthErr) {
		t.Fatalf("err = %v, want DepthExceededError", err)
	}
	if depthErr.Depth != 7 {
		t.Errorf("Depth = %d, want 7", depthErr.Depth)
	}
}

func TestMoveFolderToRoot(t *testing.T) {
	svc, runner := newService(
		"depth|||0",
		"moved|||Q1",
	)

	moved, err := svc.MoveFolder(context.Background(), "Work/Projects", "Q1", "")
	if err != nil {
		t.Fatalf("MoveFolder: %v", err)
	}
	if moved.Target != "" {
		t.Errorf("Target = %q, want empty for root", moved.Target)
	}
	if !strings.Contains(runner.scripts[1], "set targetRef to primaryAccount") {
		t.Errorf("root move script does not target the account:\n%s", runner.scripts[1])
	}
}

func TestFolderDetails(t *testing.T) {
	svc, _ := newService("ok|||Projects|||" + folderID("p2") + "|||2|||1\n" +
		"folder|||Q1|||" + folderID("p3") + "\n" +
		"folder|||Q2|||" + folderID("p4") + "\n" +
		"note|||Roadmap|||" + noteID("p9"))

	details, err := svc.FolderDetails(context.Background(), "Work/Projects")
	if err != nil {
		t.Fatalf("FolderDetails: %v", err)
	}
	if details.Name != "Projects" || details.FolderCount != 2 || details.NoteCount != 1 {
		t.Errorf("details = %+v", details)
	}
	if len(details.Folders) != 2 || details.Folders[1].Name != "Q2" {
		t.Errorf("Folders = %+v", details.Folders)
	}
	if len(details.Notes) != 1 || details.Notes[0].ID != "p9" {
		t.Errorf("Notes = %+v", details.Notes)
	}
}

func TestDeleteFolderStaleReference(t *testing.T) {
	svc, _ := newService(
		folderID("p1"),
		"mismatch|||Renamed",
	)

	_, err := svc.DeleteFolder(context.Background(), "p7", "Old name")
	var stale *StaleReferenceError
	if !errors.As(err, &stale) {
		t.Fatalf("err = %v, want StaleReferenceError", err)
	}
}

func TestPathExists(t *testing.T) {
	svc, _ := newService("exists|||" + folderID("p1"))
	ok, err := svc.PathExists(context.Background(), "Work")
	if err != nil || !ok {
		t.Errorf("PathExists = %v, %v; want true", ok, err)
	}

	svc2, _ := newService("missing|||Projects")
	ok, err = svc2.PathExists(context.Background(), "Work/Projects")
	if err != nil || ok {
		t.Errorf("PathExists = %v, %v; want false", ok, err)
	}

	svc3, runner := newService()
	ok, err = svc3.PathExists(context.Background(), "")
	if err != nil || !ok {
		t.Errorf("PathExists(root) = %v, %v; want true", ok, err)
	}
	if len(runner.scripts) != 0 {
		t.Error("root existence check reached the bridge")
	}
}

func TestScriptErrorAccountHint(t *testing.T) {
	svc, _ := newService("error:Can't get account \"iCloud\".")

	_, err := svc.ListAllNotes(context.Background())
	var scriptError *ScriptError
	if !errors.As(err, &scriptError) {
		t.Fatalf("err = %v, want ScriptError", err)
	}
	if !strings.Contains(scriptError.Message, "enable iCloud Notes sync") {
		t.Errorf("Message = %q, want sync guidance attached", scriptError.Message)
	}
}

func TestAccountDefaultsInScript(t *testing.T) {
	svc, runner := newService("ok", "ok")
	if _, err := svc.ListAllNotes(context.Background()); err != nil {
		t.Fatalf("ListAllNotes: %v", err)
	}
	if !strings.Contains(runner.scripts[0], `account "iCloud"`) {
		t.Errorf("script not aimed at the default account:\n%s", runner.scripts[0])
	}

	svc.Account = "Work Account"
	if _, err := svc.ListAllNotes(context.Background()); err != nil {
		t.Fatalf("ListAllNotes: %v", err)
	}
	if !strings.Contains(runner.scripts[1], `account "Work Account"`) {
		t.Errorf("script not aimed at the configured account:\n%s", runner.scripts[1])
	}
}
