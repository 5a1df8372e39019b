// Package logging configures zerolog for the notesmcp binary.
//
// All diagnostics go to stderr: stdout belongs to the MCP stdio transport
// and a single stray log line there corrupts the protocol stream.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the root logger at the given level, writing to stderr.
// Unknown level strings fall back to info.
func New(level string) zerolog.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter is New with an explicit sink, for tests.
func NewWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
