package applescript

import (
	"strings"
	"testing"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Work", `"Work"`},
		{"empty", "", `""`},
		{"embedded quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"backslash then quote", `\"`, `"\\\""`},
		{"unicode untouched", "ノート 📝", `"ノート 📝"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.in); got != tt.want {
				t.Errorf("Quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestQuoteList(t *testing.T) {
	got := QuoteList([]string{"Work", "Projects"})
	want := `{"Work", "Projects"}`
	if got != want {
		t.Errorf("QuoteList = %s, want %s", got, want)
	}

	if got := QuoteList(nil); got != "{}" {
		t.Errorf("QuoteList(nil) = %s, want {}", got)
	}
}

func TestFolderWalk(t *testing.T) {
	script := FolderWalk([]string{"Work", "Q3"})

	for _, frag := range []string{
		`{"Work", "Q3"}`,
		"folders of primaryAccount",
		"folders of currentFolder",
		"set currentFolder to missing value",
	} {
		if !strings.Contains(script, frag) {
			t.Errorf("FolderWalk output missing %q", frag)
		}
	}
}

func TestTellNotes(t *testing.T) {
	script := TellNotes("iCloud", `return "ok"`)

	if !strings.HasPrefix(script, `tell application "Notes"`) {
		t.Errorf("script does not open a Notes tell block:\n%s", script)
	}
	if !strings.HasSuffix(script, "end tell") {
		t.Errorf("script does not close the tell block:\n%s", script)
	}
	for _, frag := range []string{
		`set primaryAccount to account "iCloud"`,
		`return "ok"`,
		`return "error:" & errMsg`,
	} {
		if !strings.Contains(script, frag) {
			t.Errorf("script missing %q", frag)
		}
	}
}
