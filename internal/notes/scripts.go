package notes

import (
	"fmt"
	"strings"

	"github.com/saedabdu/mcp-apple-notes/internal/applescript"
)

// Script bodies below are wrapped in applescript.TellNotes by the service, so
// primaryAccount is always bound and any raised AppleScript error surfaces as
// an "error:" result line.
//
// Result protocol: the first line (or the whole result, for single-line
// replies) starts with a status token, fields separated by "|||". Status
// tokens the parsers understand: ok, created, deleted, moved, renamed, depth,
// exists, missing, missing-target, mismatch, wrongfolder, notfound,
// duplicate.

const fieldSep = "|||"

// sep is the AppleScript expression concatenating the field separator.
const sep = ` & "|||" & `

func probeNoteStoreBody() string {
	return `set sampleNote to note 1 of primaryAccount
return id of sampleNote as string`
}

func probeFolderStoreBody() string {
	return `set sampleFolder to folder 1 of primaryAccount
return id of sampleFolder as string`
}

func pathExistsBody(components []string) string {
	return applescript.FolderWalk(components) + `if currentFolder is missing value then
return "missing" & "|||" & componentName
end if
return "exists" & "|||" & (id of currentFolder as string)`
}

// folderWalkCreate resolves a path like applescript.FolderWalk but creates
// each missing component instead of bailing out. Used only by note creation,
// which is allowed to materialize its target path.
func folderWalkCreate(components []string) string {
	var b strings.Builder
	b.WriteString("set currentFolder to missing value\n")
	b.WriteString("set pathComponents to " + applescript.QuoteList(components) + "\n")
	b.WriteString(`repeat with i from 1 to count of pathComponents
set componentName to item i of pathComponents
set stepFound to false
if currentFolder is missing value then
repeat with rootFolder in folders of primaryAccount
if name of rootFolder is componentName then
set currentFolder to rootFolder
set stepFound to true
exit repeat
end if
end repeat
if not stepFound then
set currentFolder to make new folder at primaryAccount with properties {name:componentName}
end if
else
set parentFolder to currentFolder
repeat with subFolder in folders of parentFolder
if name of subFolder is componentName then
set currentFolder to subFolder
set stepFound to true
exit repeat
end if
end repeat
if not stepFound then
set currentFolder to make new folder at parentFolder with properties {name:componentName}
end if
end if
end repeat
`)
	return b.String()
}

func createNoteBody(components []string, content string) string {
	return folderWalkCreate(components) +
		"set newNote to make new note at currentFolder with properties {body:" + applescript.Quote(content) + "}\n" +
		`return "created"` + sep + "(name of newNote as string)" + sep + "(id of newNote as string)"
}

func listNotesBody(components []string, folderDisplay string) string {
	return applescript.FolderWalk(components) + `if currentFolder is missing value then
return "missing" & "|||" & componentName
end if
set out to "ok"
repeat with theNote in notes of currentFolder
set out to out & linefeed & (name of theNote as string)` + sep + "(id of theNote as string)" + sep + applescript.Quote(folderDisplay) + `
end repeat
return out`
}

func listAllNotesBody() string {
	return `set out to "ok"
repeat with theNote in notes of primaryAccount
set noteFolder to "Notes"
try
set noteFolder to name of container of theNote as string
end try
set out to out & linefeed & (name of theNote as string)` + sep + "(id of theNote as string)" + sep + `noteFolder
end repeat
return out`
}

func readNoteBody(fullID, leafFolder string) string {
	var b strings.Builder
	b.WriteString("set targetNote to note id " + applescript.Quote(fullID) + "\n")
	if leafFolder != "" {
		b.WriteString(`set containerName to name of container of targetNote as string
if containerName is not equal to ` + applescript.Quote(leafFolder) + ` then
return "wrongfolder" & "|||" & containerName
end if
`)
	}
	b.WriteString(`return "ok"` + sep + "(name of targetNote as string)" + sep + "(id of targetNote as string)" + sep +
		"(body of targetNote as string)" + sep + "((creation date of targetNote) as string)" + sep +
		"((modification date of targetNote) as string)")
	return b.String()
}

// verifyNoteName emits the identity check shared by mutating note scripts.
func verifyNoteName(expectedName string) string {
	return `set actualName to name of targetNote as string
if actualName is not equal to ` + applescript.Quote(expectedName) + ` then
return "mismatch" & "|||" & actualName
end if
`
}

func updateNoteBody(fullID, expectedName, content string) string {
	return "set targetNote to note id " + applescript.Quote(fullID) + "\n" +
		verifyNoteName(expectedName) +
		"set body of targetNote to " + applescript.Quote(content) + "\n" +
		`return "ok"` + sep + "(name of targetNote as string)" + sep + "(id of targetNote as string)"
}

func deleteNoteBody(fullID, expectedName string) string {
	return "set targetNote to note id " + applescript.Quote(fullID) + "\n" +
		verifyNoteName(expectedName) +
		`set savedId to id of targetNote as string
delete targetNote
return "deleted"` + sep + "actualName" + sep + "savedId"
}

func moveNoteBody(fullID string, source, target []string) string {
	var b strings.Builder
	b.WriteString(applescript.FolderWalk(source))
	b.WriteString(`if currentFolder is missing value then
return "missing" & "|||" & componentName
end if
set sourceFolder to currentFolder
`)
	b.WriteString(applescript.FolderWalk(target))
	b.WriteString(`if currentFolder is missing value then
return "missing-target" & "|||" & componentName
end if
set targetFolder to currentFolder
set targetNote to note id ` + applescript.Quote(fullID) + "\n")
	b.WriteString(`if (id of container of targetNote as string) is not equal to (id of sourceFolder as string) then
return "wrongfolder" & "|||" & (name of container of targetNote as string)
end if
move targetNote to targetFolder
return "moved"` + sep + "(name of targetNote as string)")
	return b.String()
}

// parentRefPrelude resolves parent path components and leaves the result in
// parentRef. An empty path means the account itself, whose direct folders
// are the root level.
func parentRefPrelude(components []string) string {
	if len(components) == 0 {
		return "set parentRef to primaryAccount\n"
	}
	return applescript.FolderWalk(components) + `if currentFolder is missing value then
return "missing" & "|||" & componentName
end if
set parentRef to currentFolder
`
}

func createFolderBody(parent []string, name string) string {
	return parentRefPrelude(parent) +
		"set newFolder to make new folder at parentRef with properties {name:" + applescript.Quote(name) + "}\n" +
		`return "created"` + sep + "(name of newFolder as string)" + sep + "(id of newFolder as string)"
}

func listFoldersBody(parent []string) string {
	return parentRefPrelude(parent) + `set out to "ok"
repeat with childFolder in folders of parentRef
set out to out & linefeed & (name of childFolder as string)` + sep + `(id of childFolder as string)
end repeat
return out`
}

func renameFolderBody(parent []string, currentName, newName string) string {
	return parentRefPrelude(parent) + `set theFolder to missing value
repeat with childFolder in folders of parentRef
if name of childFolder is ` + applescript.Quote(newName) + ` then
return "duplicate" & "|||" & ` + applescript.Quote(newName) + `
end if
if name of childFolder is ` + applescript.Quote(currentName) + ` then
set theFolder to childFolder
end if
end repeat
if theFolder is missing value then
return "notfound" & "|||" & ` + applescript.Quote(currentName) + `
end if
set name of theFolder to ` + applescript.Quote(newName) + `
return "renamed"` + sep + applescript.Quote(currentName) + sep + applescript.Quote(newName)
}

func moveFolderBody(sourceParent []string, name string, targetParent []string) string {
	var b strings.Builder
	b.WriteString(parentRefPrelude(sourceParent))
	b.WriteString(`set theFolder to missing value
repeat with childFolder in folders of parentRef
if name of childFolder is ` + applescript.Quote(name) + ` then
set theFolder to childFolder
exit repeat
end if
end repeat
if theFolder is missing value then
return "notfound" & "|||" & ` + applescript.Quote(name) + "\n" +
		`end if
set sourceRef to parentRef
`)
	if len(targetParent) == 0 {
		b.WriteString("set targetRef to primaryAccount\n")
	} else {
		b.WriteString(applescript.FolderWalk(targetParent))
		b.WriteString(`if currentFolder is missing value then
return "missing-target" & "|||" & componentName
end if
set targetRef to currentFolder
`)
	}
	b.WriteString(`repeat with childFolder in folders of targetRef
if name of childFolder is ` + applescript.Quote(name) + ` then
return "duplicate" & "|||" & ` + applescript.Quote(name) + "\n" +
		`end if
end repeat
move theFolder to targetRef
return "moved"` + sep + applescript.Quote(name))
	return b.String()
}

func deleteFolderBody(fullID, expectedName string) string {
	return "set targetFolder to folder id " + applescript.Quote(fullID) + "\n" +
		`set actualName to name of targetFolder as string
if actualName is not equal to ` + applescript.Quote(expectedName) + ` then
return "mismatch" & "|||" & actualName
end if
set savedId to id of targetFolder as string
delete targetFolder
return "deleted"` + sep + "actualName" + sep + "savedId"
}

func folderDetailsBody(components []string) string {
	return applescript.FolderWalk(components) + `if currentFolder is missing value then
return "missing" & "|||" & componentName
end if
set out to "ok"` + sep + "(name of currentFolder as string)" + sep + "(id of currentFolder as string)" + sep +
		"(count of folders of currentFolder)" + sep + `(count of notes of currentFolder)
repeat with childFolder in folders of currentFolder
set out to out & linefeed & "folder"` + sep + "(name of childFolder as string)" + sep + `(id of childFolder as string)
end repeat
repeat with theNote in notes of currentFolder
set out to out & linefeed & "note"` + sep + "(name of theNote as string)" + sep + `(id of theNote as string)
end repeat
return out`
}

// subtreeDepthBody measures how many folder levels hang below the folder at
// components. Notes caps nesting at MaxDepth, so four levels of probing is
// exhaustive.
func subtreeDepthBody(components []string) string {
	var b strings.Builder
	b.WriteString(applescript.FolderWalk(components))
	b.WriteString(`if currentFolder is missing value then
return "missing" & "|||" & componentName
end if
set maxDepth to 0
`)
	for level := 1; level <= MaxDepth-1; level++ {
		parent := "currentFolder"
		if level > 1 {
			parent = fmt.Sprintf("f%d", level-1)
		}
		b.WriteString(fmt.Sprintf("repeat with f%d in folders of %s\n", level, parent))
		b.WriteString(fmt.Sprintf("if maxDepth < %d then\nset maxDepth to %d\nend if\n", level, level))
	}
	for level := MaxDepth - 1; level >= 1; level-- {
		b.WriteString("end repeat\n")
	}
	b.WriteString(`return "depth" & "|||" & maxDepth`)
	return b.String()
}

// structureBody dumps the whole account as prefix-tagged lines for the
// hierarchy package. The account enumerates every folder at the top level,
// nested ones included, which is why the tree builder collapses echoed
// roots.
func structureBody(includeNotes bool) string {
	labels := []string{
		"Root Folder: ",
		"  ├── Subfolder: ",
		"    ├── Sub-subfolder: ",
		"      ├── Sub-sub-subfolder: ",
		"        ├── Sub-sub-sub-subfolder: ",
	}
	notePrefix := []string{
		"  ├── Note: ",
		"    ├── Note: ",
		"      ├── Note: ",
		"        ├── Note: ",
		"          ├── Note: ",
	}

	var b strings.Builder
	b.WriteString(`set out to ""
`)
	for level := 0; level < MaxDepth; level++ {
		parent := "primaryAccount"
		if level > 0 {
			parent = fmt.Sprintf("f%d", level-1)
		}
		b.WriteString(fmt.Sprintf("repeat with f%d in folders of %s\n", level, parent))
		b.WriteString(fmt.Sprintf("set out to out & %s & (name of f%d as string) & \" (ID: \" & (id of f%d as string) & \")\" & linefeed\n",
			applescript.Quote(labels[level]), level, level))
		if includeNotes {
			b.WriteString(fmt.Sprintf("repeat with theNote in notes of f%d\n", level))
			b.WriteString(fmt.Sprintf("set out to out & %s & (name of theNote as string) & linefeed\n", applescript.Quote(notePrefix[level])))
			b.WriteString("end repeat\n")
		}
	}
	for level := 0; level < MaxDepth; level++ {
		b.WriteString("end repeat\n")
	}
	b.WriteString("return out")
	return b.String()
}

func searchBody(keywords []string) string {
	return `set out to "ok"
set keywordList to ` + applescript.QuoteList(keywords) + `
repeat with theNote in notes of primaryAccount
set noteName to name of theNote as string
set noteBody to body of theNote as string
set hits to ""
repeat with kw in keywordList
if (noteName contains kw) or (noteBody contains kw) then
if hits is "" then
set hits to kw as string
else
set hits to hits & "," & (kw as string)
end if
end if
end repeat
if hits is not "" then
set noteFolder to "Notes"
try
set noteFolder to name of container of theNote as string
end try
set out to out & linefeed & (id of theNote as string)` + sep + "noteName" + sep + "noteFolder" + sep + `hits
end if
end repeat
return out`
}
