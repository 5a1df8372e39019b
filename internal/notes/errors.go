package notes

import (
	"fmt"
	"strings"
)

// InvalidArgumentError reports malformed input caught before any osascript
// call is made.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return e.Reason }

func invalidf(format string, args ...any) error {
	return &InvalidArgumentError{Reason: fmt.Sprintf(format, args...)}
}

// PathNotFoundError reports a folder path whose ancestor chain broke at
// Component.
type PathNotFoundError struct {
	Path      string
	Component string
}

func (e *PathNotFoundError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("folder path %q does not exist (no folder named %q): create parent folders first", e.Path, e.Component)
	}
	return fmt.Sprintf("folder path %q does not exist: create parent folders first", e.Path)
}

// DepthExceededError reports an operation that would nest entities deeper
// than Notes folders are allowed to go.
type DepthExceededError struct {
	Path  string
	Depth int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("path %q would reach nesting depth %d, maximum is %d levels", e.Path, e.Depth, MaxDepth)
}

// DuplicateExistsError reports a name collision at the target location.
type DuplicateExistsError struct {
	Kind string // "folder" or "note"
	Name string
	Path string
}

func (e *DuplicateExistsError) Error() string {
	where := e.Path
	if where == "" {
		where = "the root level"
	}
	return fmt.Sprintf("a %s named %q already exists at %s", e.Kind, e.Name, where)
}

// StaleReferenceError reports an id+name pair whose live entity no longer
// carries the expected name. The caller should re-list and retry with fresh
// identifiers.
type StaleReferenceError struct {
	ID       string
	Expected string
	Actual   string
}

func (e *StaleReferenceError) Error() string {
	return fmt.Sprintf("entity %s is no longer named %q (current name %q): list again to refresh identifiers", e.ID, e.Expected, e.Actual)
}

// NotFoundError reports an entity absent at execution time despite earlier
// checks passing.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Ref)
}

// ScriptError carries an application-level failure the script reported on
// stdout via its "error:" channel, as opposed to osascript itself failing.
type ScriptError struct {
	Message string
}

func (e *ScriptError) Error() string { return e.Message }

const scriptErrorPrefix = "error:"

// iCloud sync being off is by far the most common script failure; the
// guidance text rides along so clients can show it to the user.
const accountHint = "iCloud account not available. Please enable iCloud Notes sync"

// scriptErr classifies an "error:" result line from a script.
func scriptErr(result string) error {
	msg := strings.TrimSpace(strings.TrimPrefix(result, scriptErrorPrefix))
	if strings.Contains(msg, "Can't get account") || strings.Contains(msg, "Can’t get account") {
		msg = accountHint + " - " + msg
	}
	return &ScriptError{Message: msg}
}

func isScriptError(result string) bool {
	return strings.HasPrefix(result, scriptErrorPrefix)
}
