package notes

import "strings"

// splitLines breaks a script result into trimmed, non-empty lines.
// AppleScript's linefeed joins give \n, but results that passed through the
// clipboard or older scripts may carry \r.
func splitLines(raw string) []string {
	var lines []string
	for _, line := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r'
	}) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitFields breaks one result line on the "|||" separator.
func splitFields(line string) []string {
	return strings.Split(line, fieldSep)
}

// statusOf returns the line's leading status token.
func statusOf(line string) string {
	return splitFields(line)[0]
}

// fieldAt returns fields[i] or "" when the line is short. Parsers prefer a
// partial value over an index panic on malformed bridge output.
func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
