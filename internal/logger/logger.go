// Package logger provides constructors around charmbracelet/log's logger:
// Terse (no timestamp, no caller) for hot paths, New (with timestamps) for
// long-lived components, and NewWithConfig for fully custom options. The
// other packages of this module log through charmbracelet/log's
// package-level logger and do not call these constructors.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// Terse creates a charm log with no timestamp and no caller info, for
// components logging on a per-lookup or per-insert hot path (the core
// index, the dictionary loader's per-chunk progress).
func Terse(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// New creates a charm log with a timestamp, for long-lived components
// (the server loop, the CLI REPL) where knowing when an event happened
// matters more than keeping output compact.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a charm log with fully custom options, for callers
// that read level/caller/timestamp preferences out of the config file.
func NewWithConfig(prefix string, level log.Level, caller bool, showTimestamp bool, format log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stdout, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: showTimestamp,
		Formatter:       format,
	})
}
