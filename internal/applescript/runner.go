// Package applescript runs AppleScript against the Notes application via
// osascript and provides helpers for building script text safely.
package applescript

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single osascript invocation. Notes can take several
// seconds to answer the first Apple Event after launch.
const DefaultTimeout = 45 * time.Second

// Runner executes one AppleScript and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// ExecError reports a non-zero osascript exit. Stderr is kept verbatim: it
// carries the user-actionable part (automation permission prompts, missing
// account), so callers surface it rather than retry.
type ExecError struct {
	ExitCode int
	Stderr   string
}

func (e *ExecError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		msg = "no error output"
	}
	return fmt.Sprintf("osascript exited %d: %s", e.ExitCode, msg)
}

// TimeoutError reports an abandoned call. The osascript process is killed on
// a best-effort basis and may linger briefly after the caller has failed.
type TimeoutError struct {
	Elapsed time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("osascript timed out after %s", e.Elapsed.Round(time.Millisecond))
}

// Osascript is the production Runner. It is stateless; every call is an
// independent subprocess.
type Osascript struct {
	Path    string // osascript binary, defaults to "osascript"
	Timeout time.Duration
	Log     zerolog.Logger
}

func (o *Osascript) Run(ctx context.Context, script string) (string, error) {
	bin := o.Path
	if bin == "" {
		bin = "osascript"
	}
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-e", script)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	o.Log.Debug().
		Dur("elapsed", elapsed).
		Int("script_bytes", len(script)).
		Bool("ok", err == nil).
		Msg("osascript run")

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", &TimeoutError{Elapsed: elapsed}
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", &ExecError{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return "", fmt.Errorf("run %s: %w", bin, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
