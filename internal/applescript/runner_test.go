package applescript

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// The runner always invokes its binary as `<bin> -e <script>`. perl shares
// that flag shape, so these tests use it as an osascript stand-in and can run
// on machines without Notes installed.

func requirePerl(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("perl"); err != nil {
		t.Skip("perl not available")
	}
}

func TestRunTrimsStdout(t *testing.T) {
	requirePerl(t)
	o := &Osascript{Path: "perl", Log: zerolog.Nop()}
	out, err := o.Run(context.Background(), `print "  hello  "`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "hello" {
		t.Errorf("out = %q, want %q", out, "hello")
	}
}

func TestRunExitError(t *testing.T) {
	requirePerl(t)
	o := &Osascript{Path: "perl", Log: zerolog.Nop()}
	_, err := o.Run(context.Background(), `print STDERR "no such note"; exit 3`)

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("err = %v, want *ExecError", err)
	}
	if execErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", execErr.ExitCode)
	}
	if !strings.Contains(execErr.Error(), "no such note") {
		t.Errorf("Error() = %q, want stderr included", execErr.Error())
	}
}

func TestRunTimeout(t *testing.T) {
	requirePerl(t)
	o := &Osascript{Path: "perl", Timeout: 50 * time.Millisecond, Log: zerolog.Nop()}
	_, err := o.Run(context.Background(), "sleep 5")

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("err = %v, want *TimeoutError", err)
	}
	if timeoutErr.Elapsed <= 0 {
		t.Errorf("Elapsed = %s, want > 0", timeoutErr.Elapsed)
	}
}

func TestRunMissingBinary(t *testing.T) {
	o := &Osascript{Path: "definitely-not-a-real-binary-9431", Log: zerolog.Nop()}
	_, err := o.Run(context.Background(), "return 1")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	var execErr *ExecError
	if errors.As(err, &execErr) {
		t.Errorf("missing binary should not classify as *ExecError: %v", err)
	}
}
