// Package cli provides shared formatting helpers for CLI output.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// ANSI color constants.
const (
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Red    = "\033[31m"
	Cyan   = "\033[36m"
	Dim    = "\033[2m"
	Bold   = "\033[1m"
	Reset  = "\033[0m"
)

// Box width is the inner content width (between the border characters).
const boxWidth = 44

// Margin is the left indent for all branded output.
const margin = "  "

// ShortenHome replaces $HOME prefix with ~.
func ShortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

// FormatNumber adds comma separators (1234 -> "1,234").
func FormatNumber(n int) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return FormatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}

// Header prints a small heavy-border box with a title. Used by `notesmcp doctor`.
func Header(title string) {
	fmt.Println()
	heavyTop := margin + "┏" + strings.Repeat("━", boxWidth) + "┓"
	heavyBottom := margin + "┗" + strings.Repeat("━", boxWidth) + "┛"

	content := "  " + title
	padded := padRight(content, boxWidth)

	fmt.Printf("%s%s%s\n", Cyan, heavyTop, Reset)
	fmt.Printf("%s%s┃%s┃%s\n", Cyan, margin, padded, Reset)
	fmt.Printf("%s%s%s\n", Cyan, heavyBottom, Reset)
}

// Section prints a section divider line: ── Name ─────────────────
func Section(name string) {
	prefix := "── " + name + " "
	remaining := boxWidth + 2 - runeLen(prefix)
	if remaining < 0 {
		remaining = 0
	}
	rule := prefix + strings.Repeat("─", remaining)
	fmt.Printf("\n%s%s%s%s\n\n", margin, Cyan, rule, Reset)
}

// Pass prints a green check line.
func Pass(msg string) {
	fmt.Printf("%s%s✓%s %s\n", margin, Green, Reset, msg)
}

// Warn prints a yellow warning line.
func Warn(msg string) {
	fmt.Printf("%s%s!%s %s\n", margin, Yellow, Reset, msg)
}

// Fail prints a red cross line.
func Fail(msg string) {
	fmt.Printf("%s%s✗%s %s\n", margin, Red, Reset, msg)
}

// padRight pads s with spaces to exactly width characters.
// If s is longer than width, it is truncated.
func padRight(s string, width int) string {
	n := runeLen(s)
	if n >= width {
		r := []rune(s)
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-n)
}

// runeLen counts the display width in runes.
func runeLen(s string) int {
	return len([]rune(s))
}
