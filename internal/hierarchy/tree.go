package hierarchy

// Note is a leaf entry inside a folder.
type Note struct {
	Name string
	ID   string
}

// Folder is one node of the rebuilt tree. ID is the full Core Data
// identifier when the dump carried one.
type Folder struct {
	Name    string
	ID      string
	Folders []*Folder
	Notes   []Note
}

// Tree is the reconstructed hierarchy. RootNotes holds notes that appeared
// before any folder line, attached to the implicit root container.
type Tree struct {
	Roots     []*Folder
	RootNotes []Note
}

// Empty reports whether the tree has no entries at all.
func (t *Tree) Empty() bool {
	return len(t.Roots) == 0 && len(t.RootNotes) == 0
}

// Build reconstructs the nested tree from parsed dump lines.
//
// The dump script enumerates every folder of the account as a root, so a
// nested folder shows up twice: once echoed at depth 0 and once under its
// real parent. Two rules repair that: depth-0 entries whose ID also appears
// at depth > 0 are dropped, and repeated depth-0 entries with the same ID are
// collapsed into one node holding the union of their children.
func Build(lines []Line) *Tree {
	tree := &Tree{}

	// IDs seen below the root level; their depth-0 echoes are not real roots.
	nested := make(map[string]bool)
	for _, line := range lines {
		if line.Kind == KindFolder && line.Depth > 0 && line.ID != "" {
			nested[line.ID] = true
		}
	}

	rootsByID := make(map[string]*Folder)
	rootsByName := make(map[string]*Folder)

	// stack[d] is the folder currently open at depth d.
	var stack []*Folder
	skipSubtree := false

	for _, line := range lines {
		if line.Depth == 0 && line.Kind == KindFolder {
			if nested[line.ID] {
				skipSubtree = true
				continue
			}
			skipSubtree = false

			node := rootsByID[line.ID]
			if node == nil && line.ID == "" {
				node = rootsByName[line.Name]
			}
			if node == nil {
				node = &Folder{Name: line.Name, ID: line.ID}
				tree.Roots = append(tree.Roots, node)
				if line.ID != "" {
					rootsByID[line.ID] = node
				} else {
					rootsByName[line.Name] = node
				}
			}
			stack = stack[:0]
			stack = append(stack, node)
			continue
		}

		if skipSubtree {
			continue
		}

		switch line.Kind {
		case KindNote:
			parent := nearestAncestor(stack, line.Depth)
			if parent == nil {
				tree.RootNotes = append(tree.RootNotes, Note{Name: line.Name, ID: line.ID})
				continue
			}
			parent.Notes = append(parent.Notes, Note{Name: line.Name, ID: line.ID})
		case KindFolder:
			parent := nearestAncestor(stack, line.Depth)
			if parent == nil {
				// Orphan depth>0 folder line; treat it as a root.
				node := &Folder{Name: line.Name, ID: line.ID}
				tree.Roots = append(tree.Roots, node)
				stack = append(stack[:0], node)
				continue
			}
			node := childByID(parent, line.ID)
			if node == nil {
				node = &Folder{Name: line.Name, ID: line.ID}
				parent.Folders = append(parent.Folders, node)
			}
			stack = setAtDepth(stack, line.Depth, node)
		}
	}

	return tree
}

// nearestAncestor returns the open folder just above depth, or nil when the
// stack has nothing shallower.
func nearestAncestor(stack []*Folder, depth int) *Folder {
	if len(stack) == 0 {
		return nil
	}
	idx := depth - 1
	if idx >= len(stack) {
		idx = len(stack) - 1
	}
	if idx < 0 {
		return nil
	}
	return stack[idx]
}

// childByID finds an existing child folder so echoed subtrees merge instead
// of duplicating.
func childByID(parent *Folder, id string) *Folder {
	if id == "" {
		return nil
	}
	for _, child := range parent.Folders {
		if child.ID == id {
			return child
		}
	}
	return nil
}

func setAtDepth(stack []*Folder, depth int, node *Folder) []*Folder {
	if depth < len(stack) {
		stack = stack[:depth]
	}
	return append(stack, node)
}
