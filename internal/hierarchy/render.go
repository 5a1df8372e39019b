package hierarchy

import "strings"

// Render draws the tree in indented text form. When showIDs is set, folder
// and note lines carry the short primary-key form of their identifier; the
// plain rendering strips identifiers entirely.
func Render(t *Tree, showIDs bool) string {
	var b strings.Builder

	for _, note := range t.RootNotes {
		b.WriteString(entryLabel(note.Name, note.ID, showIDs))
		b.WriteByte('\n')
	}

	for i, root := range t.Roots {
		b.WriteString(entryLabel(root.Name, root.ID, showIDs))
		b.WriteByte('\n')
		renderChildren(&b, root, "", showIDs)
		if i < len(t.Roots)-1 {
			b.WriteByte('\n')
		}
	}

	return b.String()
}

func renderChildren(b *strings.Builder, folder *Folder, prefix string, showIDs bool) {
	total := len(folder.Notes) + len(folder.Folders)
	pos := 0

	for _, note := range folder.Notes {
		pos++
		b.WriteString(prefix + glyph(pos == total) + entryLabel(note.Name, note.ID, showIDs))
		b.WriteByte('\n')
	}

	for _, child := range folder.Folders {
		pos++
		last := pos == total
		b.WriteString(prefix + glyph(last) + entryLabel(child.Name, child.ID, showIDs))
		b.WriteByte('\n')

		childPrefix := prefix + "│   "
		if last {
			childPrefix = prefix + "    "
		}
		renderChildren(b, child, childPrefix, showIDs)
	}
}

func glyph(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}

func entryLabel(name, id string, showIDs bool) string {
	if !showIDs || id == "" {
		return name
	}
	return name + " (ID: " + shortID(id) + ")"
}

// shortID reduces a full Core Data identifier to its trailing primary-key
// segment, e.g. x-coredata://UUID/ICFolder/p123 to p123.
func shortID(id string) string {
	if idx := strings.LastIndexByte(id, '/'); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
