package applescript

import "strings"

// Quote renders text as an AppleScript string literal. Backslashes and double
// quotes are the only characters the osascript string syntax treats specially.
func Quote(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 2)
	b.WriteByte('"')
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(text[i])
		}
	}
	b.WriteByte('"')
	return b.String()
}

// QuoteList renders items as an AppleScript list literal, e.g. {"a", "b"}.
func QuoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = Quote(item)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// FolderWalk emits the navigation fragment that resolves a folder path inside
// a `tell application "Notes"` block. It leaves the resolved folder in
// currentFolder, or `missing value` when a component is absent. account must
// already be bound to the variable primaryAccount by the surrounding script.
func FolderWalk(components []string) string {
	var b strings.Builder
	b.WriteString("set currentFolder to missing value\n")
	b.WriteString("set pathComponents to " + QuoteList(components) + "\n")
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
	else
		repeat with subFolder in folders of currentFolder
			if name of subFolder is componentName then
				set currentFolder to subFolder
				set stepFound to true
				exit repeat
			end if
		end repeat
	end if
	if not stepFound then
		set currentFolder to missing value
		exit repeat
	end if
end repeat
`)
	return b.String()
}

// TellNotes wraps body in the standard tell/try scaffolding. Script failures
// come back on stdout as an "error:" line so the caller can distinguish
// application errors from osascript failures.
func TellNotes(account, body string) string {
	var b strings.Builder
	b.WriteString("tell application \"Notes\"\n")
	b.WriteString("try\n")
	b.WriteString("set primaryAccount to account " + Quote(account) + "\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString("on error errMsg\n")
	b.WriteString("return \"error:\" & errMsg\n")
	b.WriteString("end try\n")
	b.WriteString("end tell")
	return b.String()
}
