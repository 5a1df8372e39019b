package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/saedabdu/mcp-apple-notes/internal/cli"
	"github.com/saedabdu/mcp-apple-notes/internal/config"
	mcpserver "github.com/saedabdu/mcp-apple-notes/internal/mcp"
)

func doctorCmd() *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check system health and diagnose issues",
		Long:  "Runs health checks on your setup: verifies the OS, the osascript binary, your configuration, and that the Notes account is reachable.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(jsonOut)
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	return cmd
}

// DoctorResult represents a single health check result
type DoctorResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "pass", "skip", "fail"
	Message string `json:"message,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

// DoctorReport represents the complete health check report
type DoctorReport struct {
	Checks  []DoctorResult `json:"checks"`
	Summary struct {
		Total   int `json:"total"`
		Passed  int `json:"passed"`
		Skipped int `json:"skipped"`
		Failed  int `json:"failed"`
	} `json:"summary"`
}

func runDoctor(jsonOut bool) error {
	var results []DoctorResult

	// 1. Operating system. Everything downstream needs the Notes app.
	onDarwin := runtime.GOOS == "darwin"
	if onDarwin {
		results = append(results, DoctorResult{Name: "operating system", Status: "pass", Message: "macOS"})
	} else {
		results = append(results, DoctorResult{
			Name:    "operating system",
			Status:  "fail",
			Message: fmt.Sprintf("running on %s", runtime.GOOS),
			Hint:    "Apple Notes automation requires macOS",
		})
	}

	// 2. Configuration parses cleanly.
	cfg, err := config.LoadConfig()
	if err != nil {
		results = append(results, DoctorResult{
			Name:    "configuration",
			Status:  "fail",
			Message: err.Error(),
			Hint:    "fix or remove .notesmcp/config.toml",
		})
		cfg = config.DefaultConfig()
	} else {
		results = append(results, DoctorResult{
			Name:    "configuration",
			Status:  "pass",
			Message: fmt.Sprintf("account %q, default folder %q", cfg.Notes.Account, cfg.Notes.DefaultFolder),
		})
	}

	// 3. osascript binary.
	osascriptOK := false
	if path, err := exec.LookPath(cfg.Script.OsascriptPath); err != nil {
		results = append(results, DoctorResult{
			Name:    "osascript binary",
			Status:  "fail",
			Message: fmt.Sprintf("%q not found on PATH", cfg.Script.OsascriptPath),
			Hint:    "osascript ships with macOS; check the osascript_path config key",
		})
	} else {
		osascriptOK = true
		results = append(results, DoctorResult{Name: "osascript binary", Status: "pass", Message: cli.ShortenHome(path)})
	}

	// 4. Notes account round trip. Skipped when the prerequisites failed so
	// one root cause does not cascade into three failures.
	switch {
	case !onDarwin:
		results = append(results, DoctorResult{Name: "notes account", Status: "skip", Message: "not on macOS"})
	case !osascriptOK:
		results = append(results, DoctorResult{Name: "notes account", Status: "skip", Message: "osascript unavailable"})
	default:
		svc := mcpserver.NewService(cfg, zerolog.Nop())
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		folders, err := svc.ListFolders(ctx, "")
		cancel()
		if err != nil {
			results = append(results, DoctorResult{
				Name:    "notes account",
				Status:  "fail",
				Message: err.Error(),
				Hint:    "grant Automation permission for Notes in System Settings, and check the account name",
			})
		} else {
			results = append(results, DoctorResult{
				Name:    "notes account",
				Status:  "pass",
				Message: fmt.Sprintf("account %q reachable, %d root folders", cfg.Notes.Account, len(folders)),
			})
		}
	}

	report := DoctorReport{Checks: results}
	for _, r := range results {
		report.Summary.Total++
		switch r.Status {
		case "pass":
			report.Summary.Passed++
		case "skip":
			report.Summary.Skipped++
		case "fail":
			report.Summary.Failed++
		}
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		cli.Header("notesmcp doctor")
		for _, r := range results {
			line := r.Name
			if r.Message != "" {
				line += ": " + r.Message
			}
			switch r.Status {
			case "pass":
				cli.Pass(line)
			case "skip":
				cli.Warn(line + " (skipped)")
			case "fail":
				cli.Fail(line)
				if r.Hint != "" {
					fmt.Printf("      hint: %s\n", r.Hint)
				}
			}
		}
		fmt.Printf("\n  %d checks: %d passed, %d skipped, %d failed\n",
			report.Summary.Total, report.Summary.Passed, report.Summary.Skipped, report.Summary.Failed)
	}

	if report.Summary.Failed > 0 {
		return fmt.Errorf("%d health checks failed", report.Summary.Failed)
	}
	return nil
}
