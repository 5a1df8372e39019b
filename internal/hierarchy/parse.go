// Package hierarchy rebuilds a nested folder/note tree from the flat,
// prefix-tagged lines the structure-dump scripts return, and renders it with
// tree-drawing glyphs.
package hierarchy

import "strings"

// Kind tags a parsed line as a folder or note entry.
type Kind int

const (
	KindFolder Kind = iota
	KindNote
)

// Line is one parsed entry of a structure dump. Depth 0 is a root folder;
// deeper entries carry two leading spaces per level. Notes have no identifier
// in the dump.
type Line struct {
	Depth int
	Kind  Kind
	ID    string
	Name  string
}

// Folder labels by nesting level, as emitted by the dump script.
var folderLabels = []string{
	"Root Folder:",
	"Subfolder:",
	"Sub-subfolder:",
	"Sub-sub-subfolder:",
	"Sub-sub-sub-subfolder:",
}

const noteLabel = "Note:"

// ParseLine decodes one dump line. ok is false for blank or malformed lines;
// callers skip those so a single bad line never loses the rest of the
// listing.
func ParseLine(raw string) (Line, bool) {
	indent := 0
	for indent < len(raw) && raw[indent] == ' ' {
		indent++
	}
	depth := indent / 2

	rest := strings.TrimSpace(raw)
	if rest == "" {
		return Line{}, false
	}
	rest = strings.TrimPrefix(rest, "├── ")
	rest = strings.TrimPrefix(rest, "└── ")

	if strings.HasPrefix(rest, noteLabel) {
		name := strings.TrimSpace(strings.TrimPrefix(rest, noteLabel))
		if name == "" {
			return Line{}, false
		}
		return Line{Depth: depth, Kind: KindNote, Name: name}, true
	}

	for _, label := range folderLabels {
		if !strings.HasPrefix(rest, label) {
			continue
		}
		name, id := splitNameID(strings.TrimSpace(strings.TrimPrefix(rest, label)))
		if name == "" {
			return Line{}, false
		}
		return Line{Depth: depth, Kind: KindFolder, ID: id, Name: name}, true
	}

	return Line{}, false
}

// splitNameID separates "Name (ID: x-coredata://...)" into its parts. The ID
// suffix is optional.
func splitNameID(s string) (name, id string) {
	idx := strings.LastIndex(s, "(ID:")
	if idx < 0 || !strings.HasSuffix(s, ")") {
		return strings.TrimSpace(s), ""
	}
	name = strings.TrimSpace(s[:idx])
	id = strings.TrimSpace(s[idx+len("(ID:") : len(s)-1])
	return name, id
}

// ParseDump splits raw script output into parsed lines, tolerating both the
// carriage returns AppleScript's `return` delimiter produces and ordinary
// newlines. Malformed lines are dropped.
func ParseDump(raw string) []Line {
	var lines []Line
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\r' || r == '\n'
	}) {
		if line, ok := ParseLine(part); ok {
			lines = append(lines, line)
		}
	}
	return lines
}
