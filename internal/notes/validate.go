package notes

import "strings"

const (
	// MaxDepth is the deepest folder nesting Notes tolerates before its UI
	// and AppleScript interface start misbehaving.
	MaxDepth = 5

	// MaxFolderNameLen matches the limit Notes enforces on folder names.
	MaxFolderNameLen = 128

	// MaxNoteNameLen is the Apple Notes title limit.
	MaxNoteNameLen = 250
)

// invalidChars are rejected in folder and note names. They collide with path
// syntax or with characters Notes itself refuses.
const invalidChars = `<>:"|?*`

// ValidateFolderName trims and checks a single folder name.
func ValidateFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidf("folder name cannot be empty or contain only whitespace")
	}
	if len(name) > MaxFolderNameLen {
		return "", invalidf("folder name exceeds maximum length of %d characters (current: %d)", MaxFolderNameLen, len(name))
	}
	if idx := strings.IndexAny(name, invalidChars); idx >= 0 {
		return "", invalidf("folder name contains invalid character %q", name[idx:idx+1])
	}
	return name, nil
}

// ValidateNoteName trims and checks a note title. Wrapping the title in
// backticks opts out of the invalid-character check, for titles that
// legitimately contain punctuation like colons or question marks; the length
// limit still applies.
func ValidateNoteName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidf("note name cannot be empty or contain only whitespace")
	}

	if strings.HasPrefix(name, "`") && strings.HasSuffix(name, "`") && len(name) >= 2 {
		escaped := name[1 : len(name)-1]
		if strings.TrimSpace(escaped) == "" {
			return "", invalidf("note name cannot be empty when using backtick escaping")
		}
		if len(escaped) > MaxNoteNameLen {
			return "", invalidf("note name exceeds Apple Notes limit of %d characters (current: %d)", MaxNoteNameLen, len(escaped))
		}
		return strings.TrimSpace(escaped), nil
	}

	if len(name) > MaxNoteNameLen {
		return "", invalidf("note name exceeds Apple Notes limit of %d characters (current: %d)", MaxNoteNameLen, len(name))
	}
	if idx := strings.IndexAny(name, invalidChars); idx >= 0 {
		return "", invalidf("note name contains invalid character %q; use backticks (`name`) to escape special characters", name[idx:idx+1])
	}
	return name, nil
}

// TruncateNoteName shortens an over-long title to the Notes limit, breaking
// at a word boundary when one falls in the last third of the kept text.
func TruncateNoteName(name string) string {
	if len(name) <= MaxNoteNameLen {
		return name
	}
	truncated := name[:MaxNoteNameLen-3]
	if idx := strings.LastIndexByte(truncated, ' '); idx > MaxNoteNameLen*7/10 {
		truncated = truncated[:idx]
	}
	return truncated + "..."
}

// SplitPath breaks a slash-delimited folder path into validated components.
// An empty path is the root and yields nil. Leading, trailing, or doubled
// separators produce empty components and are rejected rather than silently
// repaired.
func SplitPath(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	parts := strings.Split(path, "/")
	components := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, invalidf("folder path %q contains an empty component", path)
		}
		name, err := ValidateFolderName(part)
		if err != nil {
			return nil, err
		}
		components = append(components, name)
	}

	if len(components) > MaxDepth {
		return nil, &DepthExceededError{Path: path, Depth: len(components)}
	}
	return components, nil
}

// JoinPath is the inverse of SplitPath for display purposes.
func JoinPath(components []string) string {
	return strings.Join(components, "/")
}
