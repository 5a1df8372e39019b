package notes

// NoteInfo is one entry of a folder listing. ID is the short primary-key
// form.
type NoteInfo struct {
	Name   string `json:"name"`
	ID     string `json:"id"`
	Folder string `json:"folder,omitempty"`
}

// NoteDetail is a full note as returned by a read.
type NoteDetail struct {
	Name     string `json:"name"`
	ID       string `json:"note_id"`
	Body     string `json:"body"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}

// CreatedNote reports a successful note creation. TruncatedName is set when
// the requested title exceeded the Notes limit and was shortened.
type CreatedNote struct {
	Name          string `json:"name"`
	ID            string `json:"note_id"`
	Folder        string `json:"folder"`
	TruncatedName bool   `json:"truncated_name,omitempty"`
}

// UpdatedNote reports a successful note update.
type UpdatedNote struct {
	Name string `json:"name"`
	ID   string `json:"note_id"`
}

// DeletedNote reports a successful note deletion, with the metadata captured
// before the entity disappeared.
type DeletedNote struct {
	Name string `json:"name"`
	ID   string `json:"note_id"`
}

// MovedNote reports a successful note move.
type MovedNote struct {
	Name   string `json:"name"`
	ID     string `json:"note_id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// SearchMatch is one hit of a keyword search.
type SearchMatch struct {
	Name            string   `json:"name"`
	ID              string   `json:"id"`
	Folder          string   `json:"folder"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// FolderInfo is one entry of a folder listing.
type FolderInfo struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// CreatedFolder reports a successful folder creation.
type CreatedFolder struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Path string `json:"path"`
}

// RenamedFolder reports a successful folder rename.
type RenamedFolder struct {
	Old  string `json:"old"`
	New  string `json:"new"`
	Path string `json:"path"`
}

// MovedFolder reports a successful folder move.
type MovedFolder struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// DeletedFolder reports a successful folder deletion. Contents go with the
// folder; AppleScript offers no gentler option.
type DeletedFolder struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// FolderDetails describes a folder and its immediate children.
type FolderDetails struct {
	Name        string       `json:"name"`
	ID          string       `json:"id"`
	Path        string       `json:"path"`
	FolderCount int          `json:"folder_count"`
	NoteCount   int          `json:"note_count"`
	Folders     []FolderInfo `json:"folders"`
	Notes       []NoteInfo   `json:"notes"`
}
